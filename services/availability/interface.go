// File: services/availability/interface.go
package availability

import (
	"context"

	"foodsavvy/models"
)

// Engine answers "how many units of item X remain for service date D" and
// "how many slot seats remain for date D". Every call recomputes from the
// current order rows; there is no cache to invalidate.
type Engine interface {
	// ItemRemaining reports remaining units per menu item ID for the given
	// service date. Items without a per-day capacity map to nil (unlimited).
	ItemRemaining(ctx context.Context, dateKey string, items []models.MenuItem) (map[string]*int, error)
	// SlotRemaining reports per-slot seat remainders for the given date.
	// Blacked-out dates return an empty slot list rather than an error.
	SlotRemaining(ctx context.Context, dateKey string) (*models.DayAvailability, error)
}
