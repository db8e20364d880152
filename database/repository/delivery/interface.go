// File: database/repository/delivery/interface.go
package deliveryRepo

import (
	"context"

	"foodsavvy/database"
	"foodsavvy/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// DeliveryRepository persists the delivery settings singleton, the slot
// templates, and the blackout dates.
type DeliveryRepository interface {
	// GetSettings returns (nil, nil) when the singleton has not been
	// configured yet.
	GetSettings(ctx context.Context) (*models.DeliverySettings, error)
	UpsertSettings(ctx context.Context, settings *models.DeliverySettings) error

	ListSlotTemplates(ctx context.Context, activeOnly bool) ([]models.SlotTemplate, error)
	// ReplaceSlotTemplates swaps the whole template set in one shot, the way
	// the admin editor saves them.
	ReplaceSlotTemplates(ctx context.Context, slots []models.SlotTemplate) error

	ListBlackouts(ctx context.Context) ([]models.BlackoutDate, error)
	ReplaceBlackouts(ctx context.Context, blackouts []models.BlackoutDate) error
	IsBlackout(ctx context.Context, dateKey string) (bool, error)
}

type mongoDeliveryRepo struct {
	settings  *mongo.Collection
	slots     *mongo.Collection
	blackouts *mongo.Collection
}

// NewMongoDeliveryRepo constructs a new MongoDB DeliveryRepository.
func NewMongoDeliveryRepo() DeliveryRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoDeliveryRepo{
		settings:  db.Collection("delivery_settings"),
		slots:     db.Collection("slot_templates"),
		blackouts: db.Collection("blackout_dates"),
	}
}
