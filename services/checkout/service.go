// File: services/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"

	deliveryRepo "foodsavvy/database/repository/delivery"
	menuRepo "foodsavvy/database/repository/menu"
	orderRepo "foodsavvy/database/repository/order"
	"foodsavvy/models"
	"foodsavvy/services/availability"
	"foodsavvy/utils"

	"go.uber.org/zap"
)

// SoldOutError reports that a capacity-limited item cannot cover the
// requested units for a service date once orders and in-flight holds are
// counted.
type SoldOutError struct {
	MenuItemID string
	DateKey    string
	Remaining  int
}

func (e *SoldOutError) Error() string {
	return fmt.Sprintf("checkout: item %s has %d left for %s", e.MenuItemID, e.Remaining, e.DateKey)
}

// SlotUnavailableError reports a selected slot with no seats left (or on a
// blacked-out date).
type SlotUnavailableError struct {
	DateKey string
	Slot    string
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("checkout: slot %q is not available on %s", e.Slot, e.DateKey)
}

// ErrScheduleIncomplete means a dated cart group has no selected slot.
var ErrScheduleIncomplete = errors.New("checkout: every scheduled day needs a selected time slot")

// ErrOutOfRange means the delivery address sits beyond the configured max
// radius (or no fee tier covers it).
var ErrOutOfRange = errors.New("checkout: address is outside the delivery range")

// HoldLedger is the slice of HoldStore the service needs; split out so tests
// can run without Redis.
type HoldLedger interface {
	HeldItemUnits(ctx context.Context, dateKey, menuItemID string) (int, error)
	HeldSlotSeats(ctx context.Context, dateKey, slotLabel string) (int, error)
	Place(ctx context.Context, paymentIntentID string, itemUnits map[[2]string]int, slotSeats map[[2]string]int) error
	Settle(ctx context.Context, paymentIntentID string) error
}

// PaymentIntentRequest is one checkout handed over for payment.
type PaymentIntentRequest struct {
	AmountCents int64
	Name        string
	Email       string
	Type        string // "delivery" or "pickup"
	Metadata    models.CheckoutMetadata
}

// PaymentIntentResult carries what the payment form needs.
type PaymentIntentResult struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
}

// Service is the checkout boundary: quoting and payment-intent creation.
type Service interface {
	// QuoteDelivery prices a delivery checkout for a destination, resolving
	// the tiered fee from the configured origin. Returns ErrOutOfRange
	// beyond the radius.
	QuoteDelivery(ctx context.Context, itemsCents int64, destLat, destLng float64) (*models.Quote, error)
	// QuotePickup prices a pickup checkout; the fee is always zero.
	QuotePickup(ctx context.Context, itemsCents int64) *models.Quote
	// CreatePaymentIntent re-validates capacity server-side, creates the
	// intent with the checkout stashed as metadata, and places a TTL hold
	// on the reserved units and seats.
	CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntentResult, error)
}

// DefaultCheckoutService implements Service against the repositories, the
// availability engine, the hold ledger, and the payment gateway.
type DefaultCheckoutService struct {
	Orders       orderRepo.OrderRepository
	Menu         menuRepo.MenuRepository
	Delivery     deliveryRepo.DeliveryRepository
	Availability availability.Engine
	Holds        HoldLedger
	Gateway      PaymentGateway
	TaxRate      float64
}

func (s *DefaultCheckoutService) QuoteDelivery(ctx context.Context, itemsCents int64, destLat, destLng float64) (*models.Quote, error) {
	settings, err := s.Delivery.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil || settings.OriginLat == nil || settings.OriginLng == nil {
		return nil, availability.ErrSettingsNotConfigured
	}

	miles := HaversineMiles(*settings.OriginLat, *settings.OriginLng, destLat, destLng)
	fee := FeeForDistance(settings, miles)
	if fee == nil {
		return nil, ErrOutOfRange
	}

	quote := BuildQuote(itemsCents, models.FulfillmentDelivery, *fee, s.TaxRate)
	quote.DistanceMiles = &miles
	return &quote, nil
}

func (s *DefaultCheckoutService) QuotePickup(ctx context.Context, itemsCents int64) *models.Quote {
	quote := BuildQuote(itemsCents, models.FulfillmentPickup, 0, s.TaxRate)
	return &quote
}

func (s *DefaultCheckoutService) CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntentResult, error) {
	logger := utils.GetLogger()

	if req.AmountCents <= 0 || req.Name == "" || req.Email == "" || req.Type == "" {
		return nil, errors.New("checkout: missing required fields")
	}

	itemUnits, err := s.requestedUnits(req.Metadata)
	if err != nil {
		return nil, err
	}
	slotSeats, err := s.validateSchedule(req, itemUnits)
	if err != nil {
		return nil, err
	}
	if err := s.checkItemCapacity(ctx, itemUnits); err != nil {
		return nil, err
	}
	if req.Type == models.FulfillmentDelivery {
		if err := s.checkSlotCapacity(ctx, slotSeats); err != nil {
			return nil, err
		}
	} else {
		slotSeats = nil
	}

	intentID, clientSecret, err := s.Gateway.CreateIntent(ctx, req.AmountCents, req.Email, EncodeMetadata(req.Metadata))
	if err != nil {
		return nil, err
	}

	if err := s.Holds.Place(ctx, intentID, itemUnits, slotSeats); err != nil {
		// The intent exists either way; a missing hold only weakens the
		// oversell guard, so log and carry on.
		logger.Error("checkout: failed to place hold", zap.String("paymentIntentId", intentID), zap.Error(err))
	}

	return &PaymentIntentResult{PaymentIntentID: intentID, ClientSecret: clientSecret}, nil
}

// requestedUnits sums requested quantities per (date, menu item), validating
// date keys on the way.
func (s *DefaultCheckoutService) requestedUnits(m models.CheckoutMetadata) (map[[2]string]int, error) {
	units := make(map[[2]string]int)
	for _, item := range m.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("checkout: invalid quantity for item %s", item.MenuItemID)
		}
		date := item.ServiceDate
		if date != "" {
			key, err := utils.NormalizeDateKey(date)
			if err != nil {
				return nil, err
			}
			date = key
		}
		units[[2]string{date, item.MenuItemID}] += item.Quantity
	}
	return units, nil
}

// validateSchedule checks that every dated group has a selected slot and
// returns the (date, slot) seats to hold.
func (s *DefaultCheckoutService) validateSchedule(req PaymentIntentRequest, itemUnits map[[2]string]int) (map[[2]string]int, error) {
	if req.Type != models.FulfillmentDelivery {
		return nil, nil
	}
	seats := make(map[[2]string]int)
	for key := range itemUnits {
		date := key[0]
		if date == "" {
			continue
		}
		slot, ok := req.Metadata.Schedule[date]
		if !ok || slot == "" {
			return nil, ErrScheduleIncomplete
		}
		seats[[2]string{date, slot}] = 1
	}
	return seats, nil
}

func (s *DefaultCheckoutService) checkItemCapacity(ctx context.Context, itemUnits map[[2]string]int) error {
	// Group the request by date so each date costs one aggregation.
	byDate := make(map[string]map[string]int)
	for key, qty := range itemUnits {
		date, itemID := key[0], key[1]
		if date == "" {
			continue // undated legacy lines carry no capacity date
		}
		if byDate[date] == nil {
			byDate[date] = make(map[string]int)
		}
		byDate[date][itemID] += qty
	}

	for date, wanted := range byDate {
		used, err := s.Orders.UsedQuantitiesByDate(ctx, date)
		if err != nil {
			return err
		}
		for itemID, qty := range wanted {
			item, err := s.Menu.GetItem(ctx, itemID)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("checkout: unknown menu item %s", itemID)
			}
			if item.CapacityPerDay == nil {
				continue
			}
			held, err := s.Holds.HeldItemUnits(ctx, date, itemID)
			if err != nil {
				return err
			}
			remaining := *item.CapacityPerDay - used[itemID] - held
			if remaining < 0 {
				remaining = 0
			}
			if qty > remaining {
				return &SoldOutError{MenuItemID: itemID, DateKey: date, Remaining: remaining}
			}
		}
	}
	return nil
}

func (s *DefaultCheckoutService) checkSlotCapacity(ctx context.Context, slotSeats map[[2]string]int) error {
	for key := range slotSeats {
		date, slot := key[0], key[1]
		day, err := s.Availability.SlotRemaining(ctx, date)
		if err != nil {
			return err
		}
		found := false
		for _, sa := range day.Slots {
			if sa.Label != slot {
				continue
			}
			found = true
			held, err := s.Holds.HeldSlotSeats(ctx, date, slot)
			if err != nil {
				return err
			}
			if sa.Remaining-held < 1 {
				return &SlotUnavailableError{DateKey: date, Slot: slot}
			}
		}
		// Blacked-out dates come back with no slots at all.
		if !found {
			return &SlotUnavailableError{DateKey: date, Slot: slot}
		}
	}
	return nil
}
