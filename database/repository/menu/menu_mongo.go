package menuRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodsavvy/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var dayLabel = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (r *mongoMenuRepo) FindMenu(ctx context.Context, weekday int, weekOf string) (*models.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"serviceDay": weekday}
	if weekOf == "" {
		filter["isTemplate"] = true
	} else {
		filter["weekOf"] = weekOf
	}

	var menu models.Menu
	err := r.menus.FindOne(ctx, filter).Decode(&menu)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find menu: %w", err)
	}
	return &menu, nil
}

func (r *mongoMenuRepo) FindActiveMenu(ctx context.Context, weekday int) (*models.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var menu models.Menu
	err := r.menus.FindOne(ctx, bson.M{"serviceDay": weekday, "isActive": true}).Decode(&menu)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find active menu: %w", err)
	}
	return &menu, nil
}

func (r *mongoMenuRepo) GetOrCreateMenu(ctx context.Context, weekday int, weekOf string) (*models.Menu, error) {
	menu, err := r.FindMenu(ctx, weekday, weekOf)
	if err != nil || menu != nil {
		return menu, err
	}

	name := dayLabel[weekday] + " Template"
	if weekOf != "" {
		name = fmt.Sprintf("%s %s", dayLabel[weekday], weekOf)
	}
	menu = &models.Menu{
		ID:         uuid.New().String(),
		Name:       name,
		ServiceDay: weekday,
		WeekOf:     weekOf,
		IsTemplate: weekOf == "",
		IsActive:   true,
		CreatedAt:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.menus.InsertOne(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to create menu: %w", err)
	}
	return menu, nil
}

func (r *mongoMenuRepo) ItemsByMenu(ctx context.Context, menuID string, includeArchived bool) ([]models.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"menuId": menuID}
	if !includeArchived {
		filter["archived"] = false
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.items.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mongoMenuRepo) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.items.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mongoMenuRepo) GetItem(ctx context.Context, id string) (*models.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var item models.MenuItem
	err := r.items.FindOne(ctx, bson.M{"id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *mongoMenuRepo) InsertItem(ctx context.Context, item *models.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	if _, err := r.items.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	return nil
}

func (r *mongoMenuRepo) UpdateItem(ctx context.Context, item *models.MenuItem) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":           item.Name,
		"description":    item.Description,
		"imageUrl":       item.ImageURL,
		"categoryId":     item.CategoryID,
		"capacityPerDay": item.CapacityPerDay,
		"menuId":         item.MenuID,
	}}
	res, err := r.items.UpdateOne(ctx, bson.M{"id": item.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoMenuRepo) DeleteItem(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.items.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoMenuRepo) ArchiveItem(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.items.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"archived": true}})
	if err != nil {
		return fmt.Errorf("failed to archive menu item: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoMenuRepo) DeleteItemsByMenu(ctx context.Context, menuID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.items.DeleteMany(ctx, bson.M{"menuId": menuID}); err != nil {
		return fmt.Errorf("failed to clear menu items: %w", err)
	}
	return nil
}

// ReplaceVariants swaps the item's variant list in one shot, assigning IDs to
// new variants. Mirrors the admin "batch replace" editing model.
func (r *mongoMenuRepo) ReplaceVariants(ctx context.Context, itemID string, variants []models.Variant) ([]models.Variant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	for i := range variants {
		if variants[i].ID == "" {
			variants[i].ID = uuid.New().String()
		}
	}
	res, err := r.items.UpdateOne(ctx, bson.M{"id": itemID}, bson.M{"$set": bson.M{"variants": variants}})
	if err != nil {
		return nil, fmt.Errorf("failed to replace variants: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return variants, nil
}

func (r *mongoMenuRepo) SetAddOnLinks(ctx context.Context, itemID string, addOnIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if addOnIDs == nil {
		addOnIDs = []string{}
	}
	res, err := r.items.UpdateOne(ctx, bson.M{"id": itemID}, bson.M{"$set": bson.M{"addOnIds": addOnIDs}})
	if err != nil {
		return fmt.Errorf("failed to link add-ons: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
