// File: services/catering/service.go
package catering

import (
	"context"
	"errors"
	"strings"
	"time"

	cateringRepo "foodsavvy/database/repository/catering"
	"foodsavvy/models"
	"foodsavvy/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned for unknown catering order ids.
var ErrNotFound = errors.New("catering: not found")

// Inquiry is a submitted catering request before validation.
type Inquiry struct {
	Name            string                `json:"name"`
	Email           string                `json:"email"`
	EventDate       string                `json:"eventDate"` // YYYY-MM-DD
	GuestCount      int                   `json:"guestCount"`
	SpecialRequests string                `json:"specialRequests"`
	Items           []models.CateringItem `json:"items"`
}

// Service handles catering inquiries: intake on the public side, review on
// the admin side.
type Service interface {
	Submit(ctx context.Context, inq Inquiry) (*models.CateringOrder, error)
	List(ctx context.Context) ([]models.CateringOrder, error)
	Get(ctx context.Context, id string) (*models.CateringOrder, error)
}

// DefaultCateringService implements Service on the catering repository.
type DefaultCateringService struct {
	Repo cateringRepo.CateringRepository
}

func (s *DefaultCateringService) Submit(ctx context.Context, inq Inquiry) (*models.CateringOrder, error) {
	inq.Email = strings.TrimSpace(strings.ToLower(inq.Email))
	if inq.Email == "" {
		return nil, errors.New("catering: email is required")
	}
	if inq.GuestCount <= 0 {
		return nil, errors.New("catering: guest count must be positive")
	}
	if len(inq.Items) == 0 {
		return nil, errors.New("catering: at least one item is required")
	}
	eventKey, err := utils.NormalizeDateKey(inq.EventDate)
	if err != nil {
		return nil, err
	}
	eventDate, err := utils.DateKeyToUTCNoon(eventKey)
	if err != nil {
		return nil, err
	}

	user, err := s.Repo.FindUserByEmail(ctx, inq.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &models.User{
			ID:      uuid.New().String(),
			Name:    inq.Name,
			Email:   inq.Email,
			IsGuest: true,
		}
		if err := s.Repo.CreateUser(ctx, user); err != nil {
			return nil, err
		}
	}

	// The client's per-line prices are trusted for display only; the total
	// is always recomputed server-side.
	var total int64
	for _, item := range inq.Items {
		if item.Quantity <= 0 {
			return nil, errors.New("catering: item quantities must be positive")
		}
		total += item.PriceCents * int64(item.Quantity)
	}

	order := &models.CateringOrder{
		ID:              uuid.New().String(),
		UserID:          user.ID,
		User:            user,
		EventDate:       eventDate,
		GuestCount:      inq.GuestCount,
		SpecialRequests: inq.SpecialRequests,
		Status:          models.OrderStatusPending,
		TotalCents:      total,
		Items:           inq.Items,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Catering inquiry received",
		zap.String("orderId", order.ID),
		zap.String("eventDate", eventKey),
		zap.Int("guests", inq.GuestCount))
	return order, nil
}

func (s *DefaultCateringService) List(ctx context.Context) ([]models.CateringOrder, error) {
	return s.Repo.ListOrders(ctx)
}

func (s *DefaultCateringService) Get(ctx context.Context, id string) (*models.CateringOrder, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}
