package models

import "time"

// Order statuses form a small fulfillment state machine. Orders only exist
// after payment succeeded, so "pending" is rare and only reachable by admin
// action.
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusCompleted      = "completed"
)

// AllowedOrderStatuses is the closed set admin status updates are checked
// against.
var AllowedOrderStatuses = map[string]bool{
	OrderStatusPending:        true,
	OrderStatusConfirmed:      true,
	OrderStatusPreparing:      true,
	OrderStatusOutForDelivery: true,
	OrderStatusCompleted:      true,
}

const (
	FulfillmentDelivery = "delivery"
	FulfillmentPickup   = "pickup"
)

// OrderItem is one purchased line of a delivery group.
type OrderItem struct {
	MenuItemID string `bson:"menuItemId" json:"menuItemId"`
	Name       string `bson:"name" json:"name"`
	Quantity   int    `bson:"quantity" json:"quantity"`
	PriceCents int64  `bson:"priceCents" json:"priceCents"`
}

// OrderAddOn is a purchased add-on. Add-ons are recorded by name; they have
// no capacity semantics.
type OrderAddOn struct {
	Name        string `bson:"name" json:"name"`
	Quantity    int    `bson:"quantity" json:"quantity"`
	PriceCents  int64  `bson:"priceCents" json:"priceCents"`
	ServiceDate string `bson:"serviceDate,omitempty" json:"serviceDate,omitempty"`
}

// DeliveryGroup buckets the line items of one order that are scheduled for
// the same (service date, slot) pair, letting a single payment cover items
// for different days.
type DeliveryGroup struct {
	ServiceDate string      `bson:"serviceDate" json:"serviceDate"` // YYYY-MM-DD
	Slot        string      `bson:"slot,omitempty" json:"slot,omitempty"`
	Items       []OrderItem `bson:"items" json:"items"`
}

// Order is the authoritative record of a paid checkout, created from the
// payment webhook.
type Order struct {
	ID                    string          `bson:"id" json:"id"`
	Fulfillment           string          `bson:"fulfillment" json:"fulfillment"` // "delivery" or "pickup"
	Status                string          `bson:"status" json:"status"`
	TotalCents            int64           `bson:"totalCents" json:"totalCents"`
	RefundedCents         int64           `bson:"refundedCents" json:"refundedCents"`
	Address               string          `bson:"address,omitempty" json:"address,omitempty"`
	Phone                 string          `bson:"phone,omitempty" json:"phone,omitempty"`
	CustomerEmail         string          `bson:"customerEmail,omitempty" json:"customerEmail,omitempty"`
	CustomerName          string          `bson:"customerName,omitempty" json:"customerName,omitempty"`
	StripePaymentIntentID string          `bson:"stripePaymentIntentId" json:"stripePaymentIntentId"`
	DeliveryGroups        []DeliveryGroup `bson:"deliveryGroups" json:"deliveryGroups"`
	AddOns                []OrderAddOn    `bson:"addOns,omitempty" json:"addOns,omitempty"`
	EmailSentAt           *time.Time      `bson:"emailSentAt,omitempty" json:"emailSentAt,omitempty"`
	CreatedAt             time.Time       `bson:"createdAt" json:"createdAt"`
}

// ItemQuantities sums ordered quantities per menu item across all delivery
// groups of the order.
func (o *Order) ItemQuantities() map[string]int {
	out := make(map[string]int)
	for _, g := range o.DeliveryGroups {
		for _, it := range g.Items {
			out[it.MenuItemID] += it.Quantity
		}
	}
	return out
}
