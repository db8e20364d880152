package availability

import (
	"context"
	"errors"
	"fmt"

	deliveryRepo "foodsavvy/database/repository/delivery"
	orderRepo "foodsavvy/database/repository/order"
	"foodsavvy/models"
	"foodsavvy/utils"
)

// ErrSettingsNotConfigured is returned when slot availability is requested
// before the delivery settings singleton exists.
var ErrSettingsNotConfigured = errors.New("delivery settings not configured")

// DefaultEngine computes availability straight from order rows.
type DefaultEngine struct {
	Orders   orderRepo.OrderRepository
	Delivery deliveryRepo.DeliveryRepository
}

func (e *DefaultEngine) ItemRemaining(ctx context.Context, dateKey string, items []models.MenuItem) (map[string]*int, error) {
	dateKey, err := utils.NormalizeDateKey(dateKey)
	if err != nil {
		return nil, err
	}

	used, err := e.Orders.UsedQuantitiesByDate(ctx, dateKey)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}

	remaining := make(map[string]*int, len(items))
	for _, item := range items {
		if item.CapacityPerDay == nil {
			remaining[item.ID] = nil
			continue
		}
		left := *item.CapacityPerDay - used[item.ID]
		if left < 0 {
			left = 0
		}
		remaining[item.ID] = &left
	}
	return remaining, nil
}

func (e *DefaultEngine) SlotRemaining(ctx context.Context, dateKey string) (*models.DayAvailability, error) {
	dateKey, err := utils.NormalizeDateKey(dateKey)
	if err != nil {
		return nil, err
	}

	settings, err := e.Delivery.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}
	if settings == nil {
		return nil, ErrSettingsNotConfigured
	}

	// A blacked-out date is fully blocked: report no slots, not an error.
	blocked, err := e.Delivery.IsBlackout(ctx, dateKey)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}
	if blocked {
		return &models.DayAvailability{Date: dateKey, Slots: []models.SlotAvailability{}}, nil
	}

	templates, err := e.Delivery.ListSlotTemplates(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}
	reserved, err := e.Orders.SlotCountsByDate(ctx, dateKey)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}

	slots := make([]models.SlotAvailability, 0, len(templates))
	for _, t := range templates {
		taken := reserved[t.Label]
		left := t.Capacity - taken
		if left < 0 {
			left = 0
		}
		slots = append(slots, models.SlotAvailability{
			Label:     t.Label,
			Capacity:  t.Capacity,
			Reserved:  taken,
			Remaining: left,
			Active:    t.Active,
		})
	}
	return &models.DayAvailability{Date: dateKey, Slots: slots}, nil
}
