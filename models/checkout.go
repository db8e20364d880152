package models

// CheckoutMetadata is the decoded form of the metadata bag stashed on the
// payment intent. It is the de facto wire contract between checkout and
// fulfillment: the webhook materializes the authoritative order by parsing
// this back out.
type CheckoutMetadata struct {
	Type     string // "delivery" or "pickup"
	Name     string
	Email    string
	Address  string
	Phone    string
	Schedule map[string]string // service date key -> selected slot label
	Items    []MetadataItem
	AddOns   []MetadataAddOn
}

// MetadataItem is one priced cart line on the wire.
type MetadataItem struct {
	MenuItemID  string `json:"menuItemId"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	PriceCents  int64  `json:"priceCents"`
	ServiceDate string `json:"serviceDate,omitempty"`
}

// MetadataAddOn is one add-on cart line on the wire.
type MetadataAddOn struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	PriceCents  int64  `json:"priceCents"`
	ServiceDate string `json:"serviceDate,omitempty"`
}

// Quote is the priced breakdown of a checkout. All amounts are cents.
type Quote struct {
	ItemsCents    int64    `json:"itemsCents"`
	DeliveryCents int64    `json:"deliveryCents"`
	TaxCents      int64    `json:"taxCents"`
	TotalCents    int64    `json:"totalCents"`
	DistanceMiles *float64 `json:"distanceMiles,omitempty"`
}
