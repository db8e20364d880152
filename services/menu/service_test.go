package menu

import (
	"context"
	"testing"
	"time"

	"foodsavvy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memMenuRepo struct {
	menus      map[string]*models.Menu
	items      map[string]*models.MenuItem
	categories map[string]*models.Category
	addOns     map[string]*models.AddOn
	nextMenuID int
}

func newMemMenuRepo() *memMenuRepo {
	return &memMenuRepo{
		menus:      map[string]*models.Menu{},
		items:      map[string]*models.MenuItem{},
		categories: map[string]*models.Category{},
		addOns:     map[string]*models.AddOn{},
	}
}

func menuKey(weekday int, weekOf string) string {
	return string(rune('0'+weekday)) + "|" + weekOf
}

func (m *memMenuRepo) FindMenu(ctx context.Context, weekday int, weekOf string) (*models.Menu, error) {
	return m.menus[menuKey(weekday, weekOf)], nil
}
func (m *memMenuRepo) FindActiveMenu(ctx context.Context, weekday int) (*models.Menu, error) {
	for _, menu := range m.menus {
		if menu.ServiceDay == weekday && menu.IsActive {
			return menu, nil
		}
	}
	return nil, nil
}
func (m *memMenuRepo) GetOrCreateMenu(ctx context.Context, weekday int, weekOf string) (*models.Menu, error) {
	key := menuKey(weekday, weekOf)
	if menu, ok := m.menus[key]; ok {
		return menu, nil
	}
	m.nextMenuID++
	menu := &models.Menu{
		ID:         string(rune('A' + m.nextMenuID)),
		ServiceDay: weekday,
		WeekOf:     weekOf,
		IsTemplate: weekOf == "",
		IsActive:   true,
	}
	m.menus[key] = menu
	return menu, nil
}
func (m *memMenuRepo) ItemsByMenu(ctx context.Context, menuID string, includeArchived bool) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range m.items {
		if item.MenuID != menuID {
			continue
		}
		if item.Archived && !includeArchived {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}
func (m *memMenuRepo) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	var out []models.MenuItem
	for _, item := range m.items {
		out = append(out, *item)
	}
	return out, nil
}
func (m *memMenuRepo) GetItem(ctx context.Context, id string) (*models.MenuItem, error) {
	if item, ok := m.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, nil
}
func (m *memMenuRepo) InsertItem(ctx context.Context, item *models.MenuItem) error {
	copied := *item
	m.items[item.ID] = &copied
	return nil
}
func (m *memMenuRepo) UpdateItem(ctx context.Context, item *models.MenuItem) error {
	copied := *item
	m.items[item.ID] = &copied
	return nil
}
func (m *memMenuRepo) DeleteItem(ctx context.Context, id string) error {
	delete(m.items, id)
	return nil
}
func (m *memMenuRepo) ArchiveItem(ctx context.Context, id string) error {
	if item, ok := m.items[id]; ok {
		item.Archived = true
	}
	return nil
}
func (m *memMenuRepo) DeleteItemsByMenu(ctx context.Context, menuID string) error {
	for id, item := range m.items {
		if item.MenuID == menuID {
			delete(m.items, id)
		}
	}
	return nil
}
func (m *memMenuRepo) ReplaceVariants(ctx context.Context, itemID string, variants []models.Variant) ([]models.Variant, error) {
	if item, ok := m.items[itemID]; ok {
		item.Variants = variants
	}
	return variants, nil
}
func (m *memMenuRepo) SetAddOnLinks(ctx context.Context, itemID string, addOnIDs []string) error {
	if item, ok := m.items[itemID]; ok {
		item.AddOnIDs = addOnIDs
	}
	return nil
}
func (m *memMenuRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	return nil, nil
}
func (m *memMenuRepo) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return m.categories[id], nil
}
func (m *memMenuRepo) SaveCategory(ctx context.Context, cat *models.Category) error {
	m.categories[cat.ID] = cat
	return nil
}
func (m *memMenuRepo) DeleteCategory(ctx context.Context, id string) error {
	delete(m.categories, id)
	return nil
}
func (m *memMenuRepo) ListAddOns(ctx context.Context) ([]models.AddOn, error) { return nil, nil }
func (m *memMenuRepo) AddOnsByIDs(ctx context.Context, ids []string) ([]models.AddOn, error) {
	var out []models.AddOn
	for _, id := range ids {
		if a, ok := m.addOns[id]; ok {
			out = append(out, *a)
		}
	}
	return out, nil
}
func (m *memMenuRepo) SaveAddOn(ctx context.Context, addOn *models.AddOn) error {
	m.addOns[addOn.ID] = addOn
	return nil
}
func (m *memMenuRepo) DeleteAddOn(ctx context.Context, id string) error {
	delete(m.addOns, id)
	return nil
}

type stubOrders struct {
	refs map[string]int64
}

func (s *stubOrders) Create(ctx context.Context, o *models.Order) error { return nil }
func (s *stubOrders) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return nil, nil
}
func (s *stubOrders) GetByPaymentIntentID(ctx context.Context, id string) (*models.Order, error) {
	return nil, nil
}
func (s *stubOrders) List(ctx context.Context) ([]models.Order, error) { return nil, nil }
func (s *stubOrders) UpdateStatus(ctx context.Context, id, st string) (*models.Order, error) {
	return nil, nil
}
func (s *stubOrders) IncrementRefunded(ctx context.Context, id string, a int64) (*models.Order, error) {
	return nil, nil
}
func (s *stubOrders) SetEmailSent(ctx context.Context, id string, at time.Time) error { return nil }
func (s *stubOrders) UsedQuantitiesByDate(ctx context.Context, d string) (map[string]int, error) {
	return map[string]int{}, nil
}
func (s *stubOrders) SlotCountsByDate(ctx context.Context, d string) (map[string]int, error) {
	return map[string]int{}, nil
}
func (s *stubOrders) CountByMenuItem(ctx context.Context, id string) (int64, error) {
	return s.refs[id], nil
}

type nilEngine struct{}

func (nilEngine) ItemRemaining(ctx context.Context, d string, items []models.MenuItem) (map[string]*int, error) {
	out := make(map[string]*int, len(items))
	for _, it := range items {
		out[it.ID] = it.CapacityPerDay
	}
	return out, nil
}
func (nilEngine) SlotRemaining(ctx context.Context, d string) (*models.DayAvailability, error) {
	return &models.DayAvailability{Date: d}, nil
}

func newTestService(refs map[string]int64) (*DefaultMenuService, *memMenuRepo) {
	repo := newMemMenuRepo()
	return &DefaultMenuService{
		Repo:         repo,
		Orders:       &stubOrders{refs: refs},
		Availability: nilEngine{},
	}, repo
}

func seedItem(t *testing.T, svc *DefaultMenuService, weekday int, name string, priced bool) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{Name: name}
	if priced {
		item.Variants = []models.Variant{{ID: "v1", Label: "Regular", PriceCents: 1200}}
	}
	saved, err := svc.UpsertItem(context.Background(), weekday, "", item)
	require.NoError(t, err)
	return saved
}

func TestPublicMenuFiltersUnpriceable(t *testing.T) {
	svc, _ := newTestService(nil)
	seedItem(t, svc, 1, "Pasta", true)
	seedItem(t, svc, 1, "Draft Dish", false)

	items, err := svc.PublicMenuByDay(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Pasta", items[0].Name)
}

func TestPublicMenuExcludesArchived(t *testing.T) {
	svc, repo := newTestService(nil)
	item := seedItem(t, svc, 1, "Pasta", true)
	require.NoError(t, repo.ArchiveItem(context.Background(), item.ID))

	items, err := svc.PublicMenuByDay(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPublicMenuEmptyWhenNoMenu(t *testing.T) {
	svc, _ := newTestService(nil)
	items, err := svc.PublicMenuByDay(context.Background(), 3, "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDeleteItemWithHistoryArchives(t *testing.T) {
	svc, repo := newTestService(nil)
	item := seedItem(t, svc, 1, "Pasta", true)
	svc.Orders = &stubOrders{refs: map[string]int64{item.ID: 3}}

	require.NoError(t, svc.DeleteItem(context.Background(), item.ID))

	stored, err := repo.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Archived)
}

func TestDeleteItemWithoutHistoryHardDeletes(t *testing.T) {
	svc, repo := newTestService(nil)
	item := seedItem(t, svc, 1, "Pasta", true)

	require.NoError(t, svc.DeleteItem(context.Background(), item.ID))

	stored, err := repo.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestDeleteUnknownItem(t *testing.T) {
	svc, _ := newTestService(nil)
	err := svc.DeleteItem(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCopyDayAppendsAndReplaces(t *testing.T) {
	svc, _ := newTestService(nil)
	seedItem(t, svc, 1, "Pasta", true)
	seedItem(t, svc, 1, "Soup", true)
	seedItem(t, svc, 2, "Old Tuesday Dish", true)

	// Append keeps the target's existing item.
	copied, err := svc.CopyDay(context.Background(), 1, 2, "", false)
	require.NoError(t, err)
	assert.Equal(t, 2, copied)

	_, items, err := svc.AdminMenuByDay(context.Background(), 2, "")
	require.NoError(t, err)
	assert.Len(t, items, 3)

	// Replace wipes the target first.
	copied, err = svc.CopyDay(context.Background(), 1, 2, "", true)
	require.NoError(t, err)
	assert.Equal(t, 2, copied)

	_, items, err = svc.AdminMenuByDay(context.Background(), 2, "")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCopyDayClonesGetFreshIDs(t *testing.T) {
	svc, _ := newTestService(nil)
	src := seedItem(t, svc, 1, "Pasta", true)

	_, err := svc.CopyDay(context.Background(), 1, 2, "", false)
	require.NoError(t, err)

	_, items, err := svc.AdminMenuByDay(context.Background(), 2, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotEqual(t, src.ID, items[0].ID)
	assert.Equal(t, src.Name, items[0].Name)
}

func TestCopyDaySameDayRejected(t *testing.T) {
	svc, _ := newTestService(nil)
	_, err := svc.CopyDay(context.Background(), 1, 1, "", false)
	assert.Error(t, err)
}

func TestStartWeekClonesTemplates(t *testing.T) {
	svc, _ := newTestService(nil)
	seedItem(t, svc, 1, "Monday Pasta", true)
	seedItem(t, svc, 3, "Wednesday Soup", true)

	// 2026-09-03 falls in the week of Monday 2026-08-31.
	cloned, err := svc.StartWeek(context.Background(), "2026-09-03")
	require.NoError(t, err)
	assert.Equal(t, 2, cloned)

	_, monItems, err := svc.AdminMenuByDay(context.Background(), 1, "2026-08-31")
	require.NoError(t, err)
	assert.Len(t, monItems, 1)
}

func TestSuggestionsReturnsLinkedAddOns(t *testing.T) {
	svc, repo := newTestService(nil)
	item := seedItem(t, svc, 1, "Pasta", true)
	require.NoError(t, repo.SaveAddOn(context.Background(), &models.AddOn{ID: "a1", Name: "Garlic Bread", PriceCents: 300}))
	require.NoError(t, repo.SaveAddOn(context.Background(), &models.AddOn{ID: "a2", Name: "Side Salad", PriceCents: 450}))
	require.NoError(t, svc.LinkAddOns(context.Background(), item.ID, []string{"a1", "a2"}))

	addOns, err := svc.Suggestions(context.Background(), item.ID)
	require.NoError(t, err)
	require.Len(t, addOns, 2)
	assert.Equal(t, "Garlic Bread", addOns[0].Name)
	assert.Equal(t, "Side Salad", addOns[1].Name)
}

func TestSuggestionsUnknownItemEmpty(t *testing.T) {
	svc, _ := newTestService(nil)
	addOns, err := svc.Suggestions(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, addOns)
}

func TestSuggestionsItemWithoutLinks(t *testing.T) {
	svc, _ := newTestService(nil)
	item := seedItem(t, svc, 1, "Pasta", true)

	addOns, err := svc.Suggestions(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Empty(t, addOns)
}
