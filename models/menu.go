package models

import "time"

// Menu is one weekday's menu. A template menu (IsTemplate=true, WeekOf empty)
// backs the recurring weekday; concrete weeks are cloned from it with WeekOf
// set to the Monday date key of that week.
type Menu struct {
	ID         string    `bson:"id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	ServiceDay int       `bson:"serviceDay" json:"serviceDay"` // 0=Sunday .. 6=Saturday
	WeekOf     string    `bson:"weekOf,omitempty" json:"weekOf,omitempty"`
	IsTemplate bool      `bson:"isTemplate" json:"isTemplate"`
	IsActive   bool      `bson:"isActive" json:"isActive"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// Variant is a priced option of a menu item. Identity is (menuItemId, label);
// the price may change between edits.
type Variant struct {
	ID         string `bson:"id" json:"id"`
	Label      string `bson:"label" json:"label"`
	PriceCents int64  `bson:"priceCents" json:"priceCents"`
}

// MenuItem is a sellable dish on a weekday menu. CapacityPerDay is the maximum
// units sellable per service date; nil means unlimited. Items with order
// history are archived instead of deleted.
type MenuItem struct {
	ID             string    `bson:"id" json:"id"`
	MenuID         string    `bson:"menuId" json:"menuId"`
	Name           string    `bson:"name" json:"name"`
	Description    string    `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL       string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CategoryID     string    `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	CapacityPerDay *int      `bson:"capacityPerDay,omitempty" json:"capacityPerDay,omitempty"`
	Archived       bool      `bson:"archived" json:"archived"`
	Variants       []Variant `bson:"variants,omitempty" json:"variants,omitempty"`
	AddOnIDs       []string  `bson:"addOnIds,omitempty" json:"-"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// Category groups menu items for display.
type Category struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// AddOn is a side that can be attached to menu items. Add-ons carry no
// per-day capacity.
type AddOn struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	PriceCents  int64  `bson:"priceCents" json:"priceCents"`
}

// PublicMenuItem is the wire shape of a menu item on the public menu:
// add-ons flattened, category resolved, and Remaining attached when the
// request pinned a concrete service date. Remaining nil means unlimited
// (or no date was supplied).
type PublicMenuItem struct {
	MenuItem
	Category  *Category `json:"category,omitempty"`
	AddOns    []AddOn   `json:"addOns"`
	Remaining *int      `json:"remaining"`
}
