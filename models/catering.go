package models

import "time"

// User exists to attach catering inquiries to a contact. Customers checking
// out normally stay anonymous; users created from inquiries are guests.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name,omitempty" json:"name,omitempty"`
	Email     string    `bson:"email" json:"email"`
	IsGuest   bool      `bson:"isGuest" json:"isGuest"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// CateringItem is one requested line of a catering inquiry.
type CateringItem struct {
	Name       string `bson:"name" json:"name"`
	Quantity   int    `bson:"quantity" json:"quantity"`
	PriceCents int64  `bson:"priceCents" json:"priceCents"`
}

// CateringOrder is a catering inquiry. Unlike regular orders it is persisted
// before any payment happens and starts out pending.
type CateringOrder struct {
	ID              string         `bson:"id" json:"id"`
	UserID          string         `bson:"userId" json:"userId"`
	User            *User          `bson:"user,omitempty" json:"user,omitempty"`
	EventDate       time.Time      `bson:"eventDate" json:"eventDate"`
	GuestCount      int            `bson:"guestCount" json:"guestCount"`
	SpecialRequests string         `bson:"specialRequests,omitempty" json:"specialRequests,omitempty"`
	Status          string         `bson:"status" json:"status"`
	TotalCents      int64          `bson:"totalCents" json:"totalCents"`
	Items           []CateringItem `bson:"items" json:"items"`
	CreatedAt       time.Time      `bson:"createdAt" json:"createdAt"`
}
