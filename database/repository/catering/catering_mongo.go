// File: database/repository/catering/catering_mongo.go
package cateringRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodsavvy/database"
	"foodsavvy/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CateringRepository persists catering inquiries and the guest users they
// create.
type CateringRepository interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	CreateOrder(ctx context.Context, order *models.CateringOrder) error
	ListOrders(ctx context.Context) ([]models.CateringOrder, error)
	GetOrder(ctx context.Context, id string) (*models.CateringOrder, error)
}

type mongoCateringRepo struct {
	orders *mongo.Collection
	users  *mongo.Collection
}

// NewMongoCateringRepo constructs a new MongoDB CateringRepository.
func NewMongoCateringRepo() CateringRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoCateringRepo{
		orders: db.Collection("catering_orders"),
		users:  db.Collection("users"),
	}
}

func (r *mongoCateringRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

func (r *mongoCateringRepo) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if _, err := r.users.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *mongoCateringRepo) CreateOrder(ctx context.Context, order *models.CateringOrder) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if _, err := r.orders.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to create catering order: %w", err)
	}
	return nil
}

func (r *mongoCateringRepo) ListOrders(ctx context.Context) ([]models.CateringOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.orders.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list catering orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.CateringOrder
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *mongoCateringRepo) GetOrder(ctx context.Context, id string) (*models.CateringOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var order models.CateringOrder
	err := r.orders.FindOne(ctx, bson.M{"id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
