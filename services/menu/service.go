// File: services/menu/service.go
package menu

import (
	"context"
	"errors"
	"fmt"
	"time"

	menuRepo "foodsavvy/database/repository/menu"
	orderRepo "foodsavvy/database/repository/order"
	"foodsavvy/models"
	"foodsavvy/services/availability"
	"foodsavvy/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMenuNotFound is returned when a weekday has no configured menu.
var ErrMenuNotFound = errors.New("menu: not found")

// ErrItemNotFound is returned for unknown menu item ids.
var ErrItemNotFound = errors.New("menu: item not found")

// Service is the menu boundary: the public day menu and the admin catalog
// operations behind it.
type Service interface {
	// PublicMenuByDay returns the sellable items for a weekday. When dateKey
	// is non-empty, remaining capacity for that service date is attached to
	// each capacity-limited item.
	PublicMenuByDay(ctx context.Context, weekday int, dateKey string) ([]models.PublicMenuItem, error)
	// Suggestions returns the add-ons linked to a menu item, for the
	// storefront's suggestion strip. An unknown item yields an empty list.
	Suggestions(ctx context.Context, itemID string) ([]models.AddOn, error)

	AdminMenuByDay(ctx context.Context, weekday int, weekOf string) (*models.Menu, []models.MenuItem, error)
	UpsertItem(ctx context.Context, weekday int, weekOf string, item *models.MenuItem) (*models.MenuItem, error)
	// DeleteItem hard-deletes items with no order history and archives the
	// rest so past orders keep resolving.
	DeleteItem(ctx context.Context, itemID string) error
	ReplaceVariants(ctx context.Context, itemID string, variants []models.Variant) ([]models.Variant, error)
	LinkAddOns(ctx context.Context, itemID string, addOnIDs []string) error
	// CopyDay clones one weekday's items onto another. With replace set the
	// target's existing items are removed first.
	CopyDay(ctx context.Context, fromWeekday, toWeekday int, weekOf string, replace bool) (int, error)
	// StartWeek clones every weekday template into concrete menus for the
	// week containing dateKey.
	StartWeek(ctx context.Context, dateKey string) (int, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	SaveCategory(ctx context.Context, cat *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	ListAddOns(ctx context.Context) ([]models.AddOn, error)
	SaveAddOn(ctx context.Context, addOn *models.AddOn) (*models.AddOn, error)
	DeleteAddOn(ctx context.Context, id string) error
}

// DefaultMenuService implements Service over the menu and order repositories
// plus the availability engine.
type DefaultMenuService struct {
	Repo         menuRepo.MenuRepository
	Orders       orderRepo.OrderRepository
	Availability availability.Engine
}

// priceable reports whether an item has at least one purchasable variant.
func priceable(item *models.MenuItem) bool {
	for _, v := range item.Variants {
		if v.PriceCents > 0 {
			return true
		}
	}
	return false
}

// decorate flattens an item into its public wire shape, resolving the
// category and add-on links.
func (s *DefaultMenuService) decorate(ctx context.Context, item models.MenuItem) (models.PublicMenuItem, error) {
	out := models.PublicMenuItem{MenuItem: item, AddOns: []models.AddOn{}}
	if item.CategoryID != "" {
		cat, err := s.Repo.GetCategory(ctx, item.CategoryID)
		if err != nil {
			return out, err
		}
		out.Category = cat
	}
	if len(item.AddOnIDs) > 0 {
		addOns, err := s.Repo.AddOnsByIDs(ctx, item.AddOnIDs)
		if err != nil {
			return out, err
		}
		out.AddOns = addOns
	}
	return out, nil
}

func (s *DefaultMenuService) PublicMenuByDay(ctx context.Context, weekday int, dateKey string) ([]models.PublicMenuItem, error) {
	menu, err := s.Repo.FindActiveMenu(ctx, weekday)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return []models.PublicMenuItem{}, nil
	}

	items, err := s.Repo.ItemsByMenu(ctx, menu.ID, false)
	if err != nil {
		return nil, err
	}

	sellable := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if priceable(&item) {
			sellable = append(sellable, item)
		}
	}

	var remaining map[string]*int
	if dateKey != "" && len(sellable) > 0 {
		key, err := utils.NormalizeDateKey(dateKey)
		if err != nil {
			return nil, err
		}
		remaining, err = s.Availability.ItemRemaining(ctx, key, sellable)
		if err != nil {
			return nil, err
		}
	}

	out := make([]models.PublicMenuItem, 0, len(sellable))
	for _, item := range sellable {
		pub, err := s.decorate(ctx, item)
		if err != nil {
			return nil, err
		}
		if remaining != nil {
			pub.Remaining = remaining[item.ID]
		}
		out = append(out, pub)
	}
	return out, nil
}

func (s *DefaultMenuService) Suggestions(ctx context.Context, itemID string) ([]models.AddOn, error) {
	item, err := s.Repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || len(item.AddOnIDs) == 0 {
		return []models.AddOn{}, nil
	}
	return s.Repo.AddOnsByIDs(ctx, item.AddOnIDs)
}

func (s *DefaultMenuService) AdminMenuByDay(ctx context.Context, weekday int, weekOf string) (*models.Menu, []models.MenuItem, error) {
	menu, err := s.Repo.GetOrCreateMenu(ctx, weekday, weekOf)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.Repo.ItemsByMenu(ctx, menu.ID, true)
	if err != nil {
		return nil, nil, err
	}
	return menu, items, nil
}

func (s *DefaultMenuService) UpsertItem(ctx context.Context, weekday int, weekOf string, item *models.MenuItem) (*models.MenuItem, error) {
	menu, err := s.Repo.GetOrCreateMenu(ctx, weekday, weekOf)
	if err != nil {
		return nil, err
	}
	item.MenuID = menu.ID

	if item.ID == "" {
		item.ID = uuid.New().String()
		item.CreatedAt = time.Now().UTC()
		if err := s.Repo.InsertItem(ctx, item); err != nil {
			return nil, err
		}
		return item, nil
	}

	existing, err := s.Repo.GetItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrItemNotFound
	}
	item.CreatedAt = existing.CreatedAt
	if item.Variants == nil {
		item.Variants = existing.Variants
	}
	if item.AddOnIDs == nil {
		item.AddOnIDs = existing.AddOnIDs
	}
	if err := s.Repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *DefaultMenuService) DeleteItem(ctx context.Context, itemID string) error {
	item, err := s.Repo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}

	refs, err := s.Orders.CountByMenuItem(ctx, itemID)
	if err != nil {
		return err
	}
	if refs > 0 {
		utils.GetLogger().Info("Archiving menu item with order history",
			zap.String("itemId", itemID), zap.Int64("orderLines", refs))
		return s.Repo.ArchiveItem(ctx, itemID)
	}
	return s.Repo.DeleteItem(ctx, itemID)
}

func (s *DefaultMenuService) ReplaceVariants(ctx context.Context, itemID string, variants []models.Variant) ([]models.Variant, error) {
	item, err := s.Repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	for i := range variants {
		if variants[i].ID == "" {
			variants[i].ID = uuid.New().String()
		}
	}
	return s.Repo.ReplaceVariants(ctx, itemID, variants)
}

func (s *DefaultMenuService) LinkAddOns(ctx context.Context, itemID string, addOnIDs []string) error {
	item, err := s.Repo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	if addOnIDs == nil {
		addOnIDs = []string{}
	}
	return s.Repo.SetAddOnLinks(ctx, itemID, addOnIDs)
}

func (s *DefaultMenuService) CopyDay(ctx context.Context, fromWeekday, toWeekday int, weekOf string, replace bool) (int, error) {
	if fromWeekday == toWeekday {
		return 0, errors.New("menu: source and target day are the same")
	}

	source, err := s.Repo.FindMenu(ctx, fromWeekday, weekOf)
	if err != nil {
		return 0, err
	}
	if source == nil {
		return 0, ErrMenuNotFound
	}
	target, err := s.Repo.GetOrCreateMenu(ctx, toWeekday, weekOf)
	if err != nil {
		return 0, err
	}

	if replace {
		if err := s.Repo.DeleteItemsByMenu(ctx, target.ID); err != nil {
			return 0, err
		}
	}

	return s.cloneItems(ctx, source.ID, target.ID)
}

// cloneItems copies every non-archived item of one menu onto another with
// fresh ids.
func (s *DefaultMenuService) cloneItems(ctx context.Context, fromMenuID, toMenuID string) (int, error) {
	items, err := s.Repo.ItemsByMenu(ctx, fromMenuID, false)
	if err != nil {
		return 0, err
	}
	copied := 0
	for _, item := range items {
		clone := item
		clone.ID = uuid.New().String()
		clone.MenuID = toMenuID
		clone.CreatedAt = time.Now().UTC()
		variants := make([]models.Variant, len(item.Variants))
		for i, v := range item.Variants {
			variants[i] = models.Variant{ID: uuid.New().String(), Label: v.Label, PriceCents: v.PriceCents}
		}
		clone.Variants = variants
		if err := s.Repo.InsertItem(ctx, &clone); err != nil {
			return copied, fmt.Errorf("menu: clone item %s: %w", item.ID, err)
		}
		copied++
	}
	return copied, nil
}

func (s *DefaultMenuService) StartWeek(ctx context.Context, dateKey string) (int, error) {
	key, err := utils.NormalizeDateKey(dateKey)
	if err != nil {
		return 0, err
	}
	day, err := utils.DateKeyToUTCNoon(key)
	if err != nil {
		return 0, err
	}
	weekOf := utils.StartOfWeek(day).Format(utils.DateKeyLayout)

	total := 0
	for weekday := 0; weekday < 7; weekday++ {
		tmpl, err := s.Repo.FindMenu(ctx, weekday, "")
		if err != nil {
			return total, err
		}
		if tmpl == nil || !tmpl.IsTemplate {
			continue
		}
		target, err := s.Repo.GetOrCreateMenu(ctx, weekday, weekOf)
		if err != nil {
			return total, err
		}
		if err := s.Repo.DeleteItemsByMenu(ctx, target.ID); err != nil {
			return total, err
		}
		n, err := s.cloneItems(ctx, tmpl.ID, target.ID)
		if err != nil {
			return total, err
		}
		total += n
	}
	utils.GetLogger().Info("Week menus started from templates",
		zap.String("weekOf", weekOf), zap.Int("itemsCloned", total))
	return total, nil
}

func (s *DefaultMenuService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *DefaultMenuService) SaveCategory(ctx context.Context, cat *models.Category) (*models.Category, error) {
	if cat.Name == "" {
		return nil, errors.New("menu: category name is required")
	}
	if cat.ID == "" {
		cat.ID = uuid.New().String()
	}
	if err := s.Repo.SaveCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *DefaultMenuService) DeleteCategory(ctx context.Context, id string) error {
	return s.Repo.DeleteCategory(ctx, id)
}

func (s *DefaultMenuService) ListAddOns(ctx context.Context) ([]models.AddOn, error) {
	return s.Repo.ListAddOns(ctx)
}

func (s *DefaultMenuService) SaveAddOn(ctx context.Context, addOn *models.AddOn) (*models.AddOn, error) {
	if addOn.Name == "" {
		return nil, errors.New("menu: add-on name is required")
	}
	if addOn.ID == "" {
		addOn.ID = uuid.New().String()
	}
	if err := s.Repo.SaveAddOn(ctx, addOn); err != nil {
		return nil, err
	}
	return addOn, nil
}

func (s *DefaultMenuService) DeleteAddOn(ctx context.Context, id string) error {
	return s.Repo.DeleteAddOn(ctx, id)
}
