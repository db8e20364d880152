// File: database/repository/menu/interface.go
package menuRepo

import (
	"context"

	"foodsavvy/database"
	"foodsavvy/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// MenuRepository is the persistence boundary for weekday menus, their items,
// and the category/add-on catalog.
type MenuRepository interface {
	// Menus.
	FindMenu(ctx context.Context, weekday int, weekOf string) (*models.Menu, error)
	FindActiveMenu(ctx context.Context, weekday int) (*models.Menu, error)
	GetOrCreateMenu(ctx context.Context, weekday int, weekOf string) (*models.Menu, error)

	// Items.
	ItemsByMenu(ctx context.Context, menuID string, includeArchived bool) ([]models.MenuItem, error)
	ListItems(ctx context.Context) ([]models.MenuItem, error)
	GetItem(ctx context.Context, id string) (*models.MenuItem, error)
	InsertItem(ctx context.Context, item *models.MenuItem) error
	UpdateItem(ctx context.Context, item *models.MenuItem) error
	DeleteItem(ctx context.Context, id string) error
	ArchiveItem(ctx context.Context, id string) error
	DeleteItemsByMenu(ctx context.Context, menuID string) error
	ReplaceVariants(ctx context.Context, itemID string, variants []models.Variant) ([]models.Variant, error)
	SetAddOnLinks(ctx context.Context, itemID string, addOnIDs []string) error

	// Categories.
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	SaveCategory(ctx context.Context, cat *models.Category) error
	DeleteCategory(ctx context.Context, id string) error

	// Add-ons.
	ListAddOns(ctx context.Context) ([]models.AddOn, error)
	AddOnsByIDs(ctx context.Context, ids []string) ([]models.AddOn, error)
	SaveAddOn(ctx context.Context, addOn *models.AddOn) error
	DeleteAddOn(ctx context.Context, id string) error
}

type mongoMenuRepo struct {
	menus      *mongo.Collection
	items      *mongo.Collection
	categories *mongo.Collection
	addons     *mongo.Collection
}

// NewMongoMenuRepo constructs a new MongoDB MenuRepository.
func NewMongoMenuRepo() MenuRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoMenuRepo{
		menus:      db.Collection("menus"),
		items:      db.Collection("menu_items"),
		categories: db.Collection("categories"),
		addons:     db.Collection("addons"),
	}
}
