package models

import "fmt"

// UnscheduledGroupKey buckets legacy/dateless cart lines for grouping and
// display.
const UnscheduledGroupKey = "unscheduled"

// LineEntry is the payload of a cart line. Exactly two variants exist:
// PricedItemEntry for capacity-limited menu items and AddOnEntry for
// add-ons, which carry no capacity semantics.
type LineEntry interface {
	entryID(serviceDate string) string
}

// PricedItemEntry is a (menu item, variant) instance scheduled for a service
// date. CapacityPerDay and RemainingAtAdd are availability snapshots taken at
// add-to-cart time; nil means unknown/unlimited.
type PricedItemEntry struct {
	MenuItemID     string
	VariantID      string
	CapacityPerDay *int
	RemainingAtAdd *int
}

func (e PricedItemEntry) entryID(serviceDate string) string {
	id := fmt.Sprintf("%s-%s", e.MenuItemID, e.VariantID)
	if serviceDate != "" {
		id += "-" + serviceDate
	}
	return id
}

// AddOnEntry is an add-on instance. Add-ons inherit the date of the item
// they were added with, only for grouping.
type AddOnEntry struct {
	AddOnID string
}

func (e AddOnEntry) entryID(serviceDate string) string {
	id := "addon-" + e.AddOnID
	if serviceDate != "" {
		id += "-" + serviceDate
	}
	return id
}

// CartLine is one line of the in-memory cart. The ID is composed from the
// entry identity plus the service date, so the same dish ordered for two
// different days never collides.
type CartLine struct {
	ID          string
	Name        string
	PriceCents  int64
	Quantity    int
	ServiceDate string // YYYY-MM-DD, or "" for legacy/dateless lines
	Entry       LineEntry
}

// NewCartLine builds a line with its day-aware ID derived from the entry.
func NewCartLine(name string, priceCents int64, quantity int, serviceDate string, entry LineEntry) CartLine {
	return CartLine{
		ID:          entry.entryID(serviceDate),
		Name:        name,
		PriceCents:  priceCents,
		Quantity:    quantity,
		ServiceDate: serviceDate,
		Entry:       entry,
	}
}

// GroupKey is the normalized service date the line is grouped under, with
// dateless lines falling into the unscheduled bucket.
func (l CartLine) GroupKey() string {
	if l.ServiceDate == "" {
		return UnscheduledGroupKey
	}
	return l.ServiceDate
}

// PricedItem returns the priced-item payload, or false for add-on lines.
func (l CartLine) PricedItem() (PricedItemEntry, bool) {
	e, ok := l.Entry.(PricedItemEntry)
	return e, ok
}
