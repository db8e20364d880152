package deliveryRepo

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

func (r *mongoDeliveryRepo) GetSettings(ctx context.Context) (*models.DeliverySettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var settings models.DeliverySettings
	err := r.settings.FindOne(ctx, bson.M{"id": models.DeliverySettingsID}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load delivery settings: %w", err)
	}
	return &settings, nil
}

func (r *mongoDeliveryRepo) UpsertSettings(ctx context.Context, settings *models.DeliverySettings) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	settings.ID = models.DeliverySettingsID
	opts := options.Replace().SetUpsert(true)
	if _, err := r.settings.ReplaceOne(ctx, bson.M{"id": settings.ID}, settings, opts); err != nil {
		return fmt.Errorf("failed to save delivery settings: %w", err)
	}
	return nil
}

func (r *mongoDeliveryRepo) ListSlotTemplates(ctx context.Context, activeOnly bool) ([]models.SlotTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "startMin", Value: 1}})
	cursor, err := r.slots.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list slot templates: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.SlotTemplate
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *mongoDeliveryRepo) ReplaceSlotTemplates(ctx context.Context, slots []models.SlotTemplate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.slots.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear slot templates: %w", err)
	}
	if len(slots) == 0 {
		return nil
	}
	docs := make([]interface{}, len(slots))
	for i, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		docs[i] = slot
	}
	if _, err := r.slots.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert slot templates: %w", err)
	}
	return nil
}

func (r *mongoDeliveryRepo) ListBlackouts(ctx context.Context) ([]models.BlackoutDate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.blackouts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list blackout dates: %w", err)
	}
	defer cursor.Close(ctx)

	var blackouts []models.BlackoutDate
	if err := cursor.All(ctx, &blackouts); err != nil {
		return nil, err
	}
	return blackouts, nil
}

func (r *mongoDeliveryRepo) ReplaceBlackouts(ctx context.Context, blackouts []models.BlackoutDate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.blackouts.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear blackout dates: %w", err)
	}
	if len(blackouts) == 0 {
		return nil
	}
	docs := make([]interface{}, len(blackouts))
	for i, b := range blackouts {
		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		docs[i] = b
	}
	if _, err := r.blackouts.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert blackout dates: %w", err)
	}
	return nil
}

func (r *mongoDeliveryRepo) IsBlackout(ctx context.Context, dateKey string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.blackouts.CountDocuments(ctx, bson.M{"date": dateKey})
	if err != nil {
		return false, fmt.Errorf("failed to check blackout date: %w", err)
	}
	return count > 0, nil
}
