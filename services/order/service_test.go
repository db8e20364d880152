package order

import (
	"context"
	"testing"
	"time"

	"foodsavvy/models"
	"foodsavvy/services/checkout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memOrderRepo struct {
	orders []*models.Order
}

func (m *memOrderRepo) Create(ctx context.Context, order *models.Order) error {
	m.orders = append(m.orders, order)
	return nil
}
func (m *memOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}
func (m *memOrderRepo) GetByPaymentIntentID(ctx context.Context, pi string) (*models.Order, error) {
	for _, o := range m.orders {
		if o.StripePaymentIntentID == pi {
			return o, nil
		}
	}
	return nil, nil
}
func (m *memOrderRepo) List(ctx context.Context) ([]models.Order, error) {
	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}
func (m *memOrderRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	o, _ := m.GetByID(ctx, id)
	if o != nil {
		o.Status = status
	}
	return o, nil
}
func (m *memOrderRepo) IncrementRefunded(ctx context.Context, id string, amount int64) (*models.Order, error) {
	o, _ := m.GetByID(ctx, id)
	if o != nil {
		o.RefundedCents += amount
	}
	return o, nil
}
func (m *memOrderRepo) SetEmailSent(ctx context.Context, id string, at time.Time) error {
	o, _ := m.GetByID(ctx, id)
	if o != nil {
		o.EmailSentAt = &at
	}
	return nil
}
func (m *memOrderRepo) UsedQuantitiesByDate(ctx context.Context, dateKey string) (map[string]int, error) {
	return map[string]int{}, nil
}
func (m *memOrderRepo) SlotCountsByDate(ctx context.Context, dateKey string) (map[string]int, error) {
	return map[string]int{}, nil
}
func (m *memOrderRepo) CountByMenuItem(ctx context.Context, menuItemID string) (int64, error) {
	return 0, nil
}

type fakeGateway struct {
	refunds []int64
}

func (f *fakeGateway) CreateIntent(ctx context.Context, amountCents int64, receiptEmail string, metadata map[string]string) (string, string, error) {
	return "pi_test", "secret", nil
}
func (f *fakeGateway) Refund(ctx context.Context, paymentIntentID string, amountCents int64) error {
	f.refunds = append(f.refunds, amountCents)
	return nil
}

type fakeHolds struct {
	settled []string
}

func (f *fakeHolds) HeldItemUnits(ctx context.Context, dateKey, menuItemID string) (int, error) {
	return 0, nil
}
func (f *fakeHolds) HeldSlotSeats(ctx context.Context, dateKey, slotLabel string) (int, error) {
	return 0, nil
}
func (f *fakeHolds) Place(ctx context.Context, pi string, items map[[2]string]int, slots map[[2]string]int) error {
	return nil
}
func (f *fakeHolds) Settle(ctx context.Context, pi string) error {
	f.settled = append(f.settled, pi)
	return nil
}

type fakeMailer struct {
	sent []string
	fail bool
}

func (f *fakeMailer) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	if f.fail {
		return assert.AnError
	}
	f.sent = append(f.sent, order.ID)
	return nil
}

func intentMetadata() map[string]string {
	return checkout.EncodeMetadata(models.CheckoutMetadata{
		Type:    models.FulfillmentDelivery,
		Name:    "Dana",
		Email:   "dana@example.com",
		Address: "123 Main St",
		Schedule: map[string]string{
			"2026-09-01": "Lunch",
			"2026-09-02": "Dinner",
		},
		Items: []models.MetadataItem{
			{MenuItemID: "pasta", Name: "Pasta", Quantity: 2, PriceCents: 1200, ServiceDate: "2026-09-01"},
			{MenuItemID: "soup", Name: "Soup", Quantity: 1, PriceCents: 700, ServiceDate: "2026-09-02"},
			{MenuItemID: "salad", Name: "Salad", Quantity: 1, PriceCents: 900, ServiceDate: "2026-09-01"},
		},
		AddOns: []models.MetadataAddOn{
			{Name: "Garlic Bread", Quantity: 1, PriceCents: 300, ServiceDate: "2026-09-01"},
		},
	})
}

func newService() (*DefaultOrderService, *memOrderRepo, *fakeGateway, *fakeHolds, *fakeMailer) {
	repo := &memOrderRepo{}
	gw := &fakeGateway{}
	holds := &fakeHolds{}
	mail := &fakeMailer{}
	return &DefaultOrderService{Repo: repo, Gateway: gw, Holds: holds, Mailer: mail}, repo, gw, holds, mail
}

func TestPaymentSucceededMaterializesOrder(t *testing.T) {
	svc, repo, _, holds, mail := newService()

	err := svc.HandlePaymentSucceeded(context.Background(), "pi_1", 4910, intentMetadata())
	require.NoError(t, err)
	require.Len(t, repo.orders, 1)

	o := repo.orders[0]
	assert.Equal(t, models.OrderStatusConfirmed, o.Status)
	assert.Equal(t, int64(4910), o.TotalCents)
	assert.Equal(t, "pi_1", o.StripePaymentIntentID)
	assert.Equal(t, "dana@example.com", o.CustomerEmail)

	// Items bucket into per-date delivery groups with the scheduled slot.
	require.Len(t, o.DeliveryGroups, 2)
	assert.Equal(t, "2026-09-01", o.DeliveryGroups[0].ServiceDate)
	assert.Equal(t, "Lunch", o.DeliveryGroups[0].Slot)
	assert.Len(t, o.DeliveryGroups[0].Items, 2)
	assert.Equal(t, "2026-09-02", o.DeliveryGroups[1].ServiceDate)
	assert.Equal(t, "Dinner", o.DeliveryGroups[1].Slot)

	require.Len(t, o.AddOns, 1)
	assert.Equal(t, []string{"pi_1"}, holds.settled)
	assert.Equal(t, []string{o.ID}, mail.sent)
	assert.NotNil(t, o.EmailSentAt)
}

func TestPaymentSucceededIsIdempotent(t *testing.T) {
	svc, repo, _, holds, mail := newService()
	meta := intentMetadata()

	require.NoError(t, svc.HandlePaymentSucceeded(context.Background(), "pi_1", 4910, meta))
	require.NoError(t, svc.HandlePaymentSucceeded(context.Background(), "pi_1", 4910, meta))

	assert.Len(t, repo.orders, 1)
	// Hold settles once, email sends once.
	assert.Len(t, holds.settled, 1)
	assert.Len(t, mail.sent, 1)
}

func TestDuplicateWebhookRetriesFailedEmail(t *testing.T) {
	svc, repo, _, _, mail := newService()
	mail.fail = true

	require.NoError(t, svc.HandlePaymentSucceeded(context.Background(), "pi_1", 4910, intentMetadata()))
	require.Len(t, repo.orders, 1)
	assert.Nil(t, repo.orders[0].EmailSentAt)

	mail.fail = false
	require.NoError(t, svc.HandlePaymentSucceeded(context.Background(), "pi_1", 4910, intentMetadata()))
	assert.Len(t, repo.orders, 1)
	assert.Len(t, mail.sent, 1)
	assert.NotNil(t, repo.orders[0].EmailSentAt)
}

func TestGetByPaymentIntentPendingUntilWebhook(t *testing.T) {
	svc, _, _, _, _ := newService()

	_, err := svc.GetByPaymentIntent(context.Background(), "pi_unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _, _ := newService()
	_, err := svc.UpdateStatus(context.Background(), "any", "teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRefundClampsToRemaining(t *testing.T) {
	svc, repo, gw, _, _ := newService()
	require.NoError(t, svc.HandlePaymentSucceeded(context.Background(), "pi_1", 4910, intentMetadata()))
	id := repo.orders[0].ID

	// Over-large request clamps to the full total.
	o, err := svc.Refund(context.Background(), id, 999999)
	require.NoError(t, err)
	assert.Equal(t, int64(4910), o.RefundedCents)
	assert.Equal(t, []int64{4910}, gw.refunds)

	// Nothing left afterwards.
	_, err = svc.Refund(context.Background(), id, 100)
	assert.ErrorIs(t, err, ErrNothingToRefund)
}

func TestPartialRefund(t *testing.T) {
	svc, repo, gw, _, _ := newService()
	require.NoError(t, svc.HandlePaymentSucceeded(context.Background(), "pi_1", 4910, intentMetadata()))
	id := repo.orders[0].ID

	o, err := svc.Refund(context.Background(), id, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), o.RefundedCents)

	o, err = svc.Refund(context.Background(), id, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4910), o.RefundedCents)
	assert.Equal(t, []int64{1000, 3910}, gw.refunds)
}
