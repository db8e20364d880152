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

func (r *mongoMenuRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var cats []models.Category
	if err := cursor.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *mongoMenuRepo) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cat models.Category
	err := r.categories.FindOne(ctx, bson.M{"id": id}).Decode(&cat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *mongoMenuRepo) SaveCategory(ctx context.Context, cat *models.Category) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if cat.ID == "" {
		cat.ID = uuid.New().String()
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.categories.ReplaceOne(ctx, bson.M{"id": cat.ID}, cat, opts); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

func (r *mongoMenuRepo) DeleteCategory(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.categories.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	// Detach the category from any items still pointing at it.
	_, err = r.items.UpdateMany(ctx, bson.M{"categoryId": id}, bson.M{"$set": bson.M{"categoryId": ""}})
	return err
}

func (r *mongoMenuRepo) ListAddOns(ctx context.Context) ([]models.AddOn, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.addons.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list add-ons: %w", err)
	}
	defer cursor.Close(ctx)

	var addOns []models.AddOn
	if err := cursor.All(ctx, &addOns); err != nil {
		return nil, err
	}
	return addOns, nil
}

func (r *mongoMenuRepo) AddOnsByIDs(ctx context.Context, ids []string) ([]models.AddOn, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.addons.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch add-ons: %w", err)
	}
	defer cursor.Close(ctx)

	var addOns []models.AddOn
	if err := cursor.All(ctx, &addOns); err != nil {
		return nil, err
	}
	return addOns, nil
}

func (r *mongoMenuRepo) SaveAddOn(ctx context.Context, addOn *models.AddOn) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if addOn.ID == "" {
		addOn.ID = uuid.New().String()
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.addons.ReplaceOne(ctx, bson.M{"id": addOn.ID}, addOn, opts); err != nil {
		return fmt.Errorf("failed to save add-on: %w", err)
	}
	return nil
}

func (r *mongoMenuRepo) DeleteAddOn(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.addons.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete add-on: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	// Unlink from items that referenced it.
	_, err = r.items.UpdateMany(ctx, bson.M{"addOnIds": id}, bson.M{"$pull": bson.M{"addOnIds": id}})
	return err
}
