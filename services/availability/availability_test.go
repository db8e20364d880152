package availability

import (
	"context"
	"testing"
	"time"

	"foodsavvy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	usedByDate  map[string]map[string]int
	slotsByDate map[string]map[string]int
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error { return nil }
func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) GetByPaymentIntentID(ctx context.Context, id string) (*models.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) List(ctx context.Context) ([]models.Order, error) { return nil, nil }
func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) IncrementRefunded(ctx context.Context, id string, amount int64) (*models.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) SetEmailSent(ctx context.Context, id string, at time.Time) error { return nil }
func (f *fakeOrderRepo) UsedQuantitiesByDate(ctx context.Context, dateKey string) (map[string]int, error) {
	if m, ok := f.usedByDate[dateKey]; ok {
		return m, nil
	}
	return map[string]int{}, nil
}
func (f *fakeOrderRepo) SlotCountsByDate(ctx context.Context, dateKey string) (map[string]int, error) {
	if m, ok := f.slotsByDate[dateKey]; ok {
		return m, nil
	}
	return map[string]int{}, nil
}
func (f *fakeOrderRepo) CountByMenuItem(ctx context.Context, menuItemID string) (int64, error) {
	return 0, nil
}

type fakeDeliveryRepo struct {
	settings  *models.DeliverySettings
	templates []models.SlotTemplate
	blackouts map[string]bool
}

func (f *fakeDeliveryRepo) GetSettings(ctx context.Context) (*models.DeliverySettings, error) {
	return f.settings, nil
}
func (f *fakeDeliveryRepo) UpsertSettings(ctx context.Context, s *models.DeliverySettings) error {
	return nil
}
func (f *fakeDeliveryRepo) ListSlotTemplates(ctx context.Context, activeOnly bool) ([]models.SlotTemplate, error) {
	return f.templates, nil
}
func (f *fakeDeliveryRepo) ReplaceSlotTemplates(ctx context.Context, slots []models.SlotTemplate) error {
	return nil
}
func (f *fakeDeliveryRepo) ListBlackouts(ctx context.Context) ([]models.BlackoutDate, error) {
	return nil, nil
}
func (f *fakeDeliveryRepo) ReplaceBlackouts(ctx context.Context, b []models.BlackoutDate) error {
	return nil
}
func (f *fakeDeliveryRepo) IsBlackout(ctx context.Context, dateKey string) (bool, error) {
	return f.blackouts[dateKey], nil
}

func intPtr(v int) *int { return &v }

func newEngine(orders *fakeOrderRepo, delivery *fakeDeliveryRepo) *DefaultEngine {
	return &DefaultEngine{Orders: orders, Delivery: delivery}
}

func TestItemRemainingSubtractsUsed(t *testing.T) {
	orders := &fakeOrderRepo{usedByDate: map[string]map[string]int{
		"2026-09-01": {"pasta": 3},
	}}
	engine := newEngine(orders, &fakeDeliveryRepo{})

	items := []models.MenuItem{
		{ID: "pasta", CapacityPerDay: intPtr(5)},
		{ID: "soup"},
	}
	remaining, err := engine.ItemRemaining(context.Background(), "2026-09-01", items)
	require.NoError(t, err)

	require.NotNil(t, remaining["pasta"])
	assert.Equal(t, 2, *remaining["pasta"])
	assert.Nil(t, remaining["soup"])
}

func TestItemRemainingClampsAtZero(t *testing.T) {
	orders := &fakeOrderRepo{usedByDate: map[string]map[string]int{
		"2026-09-01": {"pasta": 9},
	}}
	engine := newEngine(orders, &fakeDeliveryRepo{})

	remaining, err := engine.ItemRemaining(context.Background(), "2026-09-01",
		[]models.MenuItem{{ID: "pasta", CapacityPerDay: intPtr(5)}})
	require.NoError(t, err)
	assert.Equal(t, 0, *remaining["pasta"])
}

func TestItemRemainingNormalizesTimestampDates(t *testing.T) {
	orders := &fakeOrderRepo{usedByDate: map[string]map[string]int{
		"2026-09-01": {"pasta": 1},
	}}
	engine := newEngine(orders, &fakeDeliveryRepo{})

	remaining, err := engine.ItemRemaining(context.Background(), "2026-09-01T00:00:00.000Z",
		[]models.MenuItem{{ID: "pasta", CapacityPerDay: intPtr(5)}})
	require.NoError(t, err)
	assert.Equal(t, 4, *remaining["pasta"])
}

func TestItemRemainingIsIdempotent(t *testing.T) {
	orders := &fakeOrderRepo{usedByDate: map[string]map[string]int{
		"2026-09-01": {"pasta": 2},
	}}
	engine := newEngine(orders, &fakeDeliveryRepo{})
	items := []models.MenuItem{{ID: "pasta", CapacityPerDay: intPtr(5)}}

	first, err := engine.ItemRemaining(context.Background(), "2026-09-01", items)
	require.NoError(t, err)
	second, err := engine.ItemRemaining(context.Background(), "2026-09-01", items)
	require.NoError(t, err)
	assert.Equal(t, *first["pasta"], *second["pasta"])
}

func TestSlotRemainingCountsReservations(t *testing.T) {
	orders := &fakeOrderRepo{slotsByDate: map[string]map[string]int{
		"2026-09-01": {"Lunch": 4},
	}}
	delivery := &fakeDeliveryRepo{
		settings: &models.DeliverySettings{ID: models.DeliverySettingsID},
		templates: []models.SlotTemplate{
			{ID: "a", Label: "Lunch", Capacity: 6, Active: true},
			{ID: "b", Label: "Dinner", Capacity: 6, Active: true},
		},
	}
	engine := newEngine(orders, delivery)

	day, err := engine.SlotRemaining(context.Background(), "2026-09-01")
	require.NoError(t, err)
	require.Len(t, day.Slots, 2)
	assert.Equal(t, 2, day.Slots[0].Remaining)
	assert.Equal(t, 4, day.Slots[0].Reserved)
	assert.Equal(t, 6, day.Slots[1].Remaining)
}

func TestSlotRemainingBlackoutReturnsEmpty(t *testing.T) {
	delivery := &fakeDeliveryRepo{
		settings:  &models.DeliverySettings{ID: models.DeliverySettingsID},
		templates: []models.SlotTemplate{{ID: "a", Label: "Lunch", Capacity: 6, Active: true}},
		blackouts: map[string]bool{"2026-09-01": true},
	}
	engine := newEngine(&fakeOrderRepo{}, delivery)

	day, err := engine.SlotRemaining(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.Empty(t, day.Slots)
}

func TestSlotRemainingWithoutSettings(t *testing.T) {
	engine := newEngine(&fakeOrderRepo{}, &fakeDeliveryRepo{})
	_, err := engine.SlotRemaining(context.Background(), "2026-09-01")
	assert.ErrorIs(t, err, ErrSettingsNotConfigured)
}
