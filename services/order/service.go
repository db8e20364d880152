// File: services/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	orderRepo "foodsavvy/database/repository/order"
	"foodsavvy/models"
	"foodsavvy/services/checkout"
	"foodsavvy/services/mailer"
	"foodsavvy/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidStatus is returned for status values outside the fulfillment
// state machine.
var ErrInvalidStatus = errors.New("order: invalid status")

// ErrNotFound is returned when an order id or payment intent has no order.
var ErrNotFound = errors.New("order: not found")

// ErrNothingToRefund means the order's total is already fully refunded.
var ErrNothingToRefund = errors.New("order: nothing left to refund")

// Service owns the order lifecycle: materializing orders from payment
// webhooks, listing and status changes for admin, and refunds.
type Service interface {
	// HandlePaymentSucceeded materializes the authoritative order from a
	// succeeded payment intent. Safe to call repeatedly for the same intent.
	HandlePaymentSucceeded(ctx context.Context, paymentIntentID string, amountCents int64, metadata map[string]string) error
	// GetByPaymentIntent returns ErrNotFound until the webhook has landed,
	// which the client polls against after payment.
	GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Order, error)
	// Refund refunds up to the remaining refundable amount through the
	// payment gateway and records it on the order.
	Refund(ctx context.Context, id string, amountCents int64) (*models.Order, error)
}

// DefaultOrderService implements Service on the order repository, the
// payment gateway, the hold ledger, and the mailer.
type DefaultOrderService struct {
	Repo    orderRepo.OrderRepository
	Gateway checkout.PaymentGateway
	Holds   checkout.HoldLedger
	Mailer  mailer.Mailer
}

func (s *DefaultOrderService) HandlePaymentSucceeded(ctx context.Context, paymentIntentID string, amountCents int64, metadata map[string]string) error {
	logger := utils.GetLogger()

	existing, err := s.Repo.GetByPaymentIntentID(ctx, paymentIntentID)
	if err != nil {
		return err
	}
	if existing != nil {
		// Duplicate delivery. The order stands; only retry the email if the
		// first attempt never went out.
		if existing.EmailSentAt == nil {
			s.sendConfirmation(ctx, existing)
		}
		return nil
	}

	meta := checkout.DecodeMetadata(metadata)
	order := buildOrder(paymentIntentID, amountCents, meta)

	if err := s.Repo.Create(ctx, order); err != nil {
		return fmt.Errorf("order: create from intent %s: %w", paymentIntentID, err)
	}
	logger.Info("Order created from payment",
		zap.String("orderId", order.ID),
		zap.String("paymentIntentId", paymentIntentID),
		zap.Int64("totalCents", order.TotalCents))

	// The order now backs the counted reservation, so release the hold.
	if s.Holds != nil {
		if err := s.Holds.Settle(ctx, paymentIntentID); err != nil {
			logger.Warn("Failed to settle hold",
				zap.String("paymentIntentId", paymentIntentID), zap.Error(err))
		}
	}

	s.sendConfirmation(ctx, order)
	return nil
}

// buildOrder turns decoded checkout metadata into the persisted order shape,
// bucketing items into delivery groups keyed by service date.
func buildOrder(paymentIntentID string, amountCents int64, meta models.CheckoutMetadata) *models.Order {
	groups := make(map[string]*models.DeliveryGroup)
	for _, item := range meta.Items {
		date := item.ServiceDate
		g, ok := groups[date]
		if !ok {
			g = &models.DeliveryGroup{
				ServiceDate: date,
				Slot:        meta.Schedule[date],
			}
			groups[date] = g
		}
		g.Items = append(g.Items, models.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
		})
	}

	dates := make([]string, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	deliveryGroups := make([]models.DeliveryGroup, 0, len(groups))
	for _, d := range dates {
		deliveryGroups = append(deliveryGroups, *groups[d])
	}

	addOns := make([]models.OrderAddOn, 0, len(meta.AddOns))
	for _, a := range meta.AddOns {
		addOns = append(addOns, models.OrderAddOn{
			Name:        a.Name,
			Quantity:    a.Quantity,
			PriceCents:  a.PriceCents,
			ServiceDate: a.ServiceDate,
		})
	}

	return &models.Order{
		ID:                    uuid.New().String(),
		Fulfillment:           meta.Type,
		Status:                models.OrderStatusConfirmed,
		TotalCents:            amountCents,
		Address:               meta.Address,
		Phone:                 meta.Phone,
		CustomerEmail:         meta.Email,
		CustomerName:          meta.Name,
		StripePaymentIntentID: paymentIntentID,
		DeliveryGroups:        deliveryGroups,
		AddOns:                addOns,
		CreatedAt:             time.Now().UTC(),
	}
}

// sendConfirmation emails the customer and stamps the order on success.
// Email failure never fails the webhook; the next duplicate delivery will
// retry.
func (s *DefaultOrderService) sendConfirmation(ctx context.Context, order *models.Order) {
	logger := utils.GetLogger()
	if s.Mailer == nil || order.CustomerEmail == "" {
		return
	}
	if err := s.Mailer.SendOrderConfirmation(ctx, order); err != nil {
		logger.Error("Failed to send order confirmation",
			zap.String("orderId", order.ID), zap.Error(err))
		return
	}
	if err := s.Repo.SetEmailSent(ctx, order.ID, time.Now().UTC()); err != nil {
		logger.Warn("Failed to record email timestamp",
			zap.String("orderId", order.ID), zap.Error(err))
	}
}

func (s *DefaultOrderService) GetByPaymentIntent(ctx context.Context, paymentIntentID string) (*models.Order, error) {
	order, err := s.Repo.GetByPaymentIntentID(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

func (s *DefaultOrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.Repo.List(ctx)
}

func (s *DefaultOrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

func (s *DefaultOrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	if !models.AllowedOrderStatuses[status] {
		return nil, ErrInvalidStatus
	}
	order, err := s.Repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

func (s *DefaultOrderService) Refund(ctx context.Context, id string, amountCents int64) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	refundable := order.TotalCents - order.RefundedCents
	if refundable <= 0 {
		return nil, ErrNothingToRefund
	}
	if amountCents <= 0 || amountCents > refundable {
		amountCents = refundable
	}

	if err := s.Gateway.Refund(ctx, order.StripePaymentIntentID, amountCents); err != nil {
		return nil, fmt.Errorf("order: refund %s: %w", id, err)
	}

	updated, err := s.Repo.IncrementRefunded(ctx, id, amountCents)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Order refunded",
		zap.String("orderId", id), zap.Int64("amountCents", amountCents))
	return updated, nil
}
