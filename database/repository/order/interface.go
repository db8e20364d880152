// File: database/repository/order/interface.go
package orderRepo

import (
	"context"
	"time"

	"foodsavvy/database"
	"foodsavvy/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// OrderRepository is the persistence boundary for paid orders. The
// availability engine reads through the aggregate queries; everything else is
// plain CRUD.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// GetByPaymentIntentID returns (nil, nil) when no order exists for the
	// intent, so the webhook's idempotency check reads naturally.
	GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Order, error)
	IncrementRefunded(ctx context.Context, id string, amountCents int64) (*models.Order, error)
	SetEmailSent(ctx context.Context, id string, at time.Time) error

	// UsedQuantitiesByDate sums ordered quantities per menu item across all
	// delivery groups scheduled for the given service date.
	UsedQuantitiesByDate(ctx context.Context, dateKey string) (map[string]int, error)
	// SlotCountsByDate counts reserved delivery groups per slot label for the
	// given service date.
	SlotCountsByDate(ctx context.Context, dateKey string) (map[string]int, error)
	// CountByMenuItem reports how many order lines reference a menu item,
	// used to decide soft vs hard delete.
	CountByMenuItem(ctx context.Context, menuItemID string) (int64, error)
}

type mongoOrderRepo struct {
	coll *mongo.Collection
}

// NewMongoOrderRepo constructs a new MongoDB OrderRepository.
func NewMongoOrderRepo() OrderRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoOrderRepo{
		coll: db.Collection("orders"),
	}
}
