// File: services/mailer/mailer.go
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sort"

	"foodsavvy/config"
	"foodsavvy/models"
	"foodsavvy/utils"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Mailer sends transactional email for the shop.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
}

// ResendMailer sends through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
	reply  string
}

// NewResendMailer builds a mailer from config. Returns nil when no API key
// is configured so callers can treat email as optional.
func NewResendMailer() *ResendMailer {
	if config.AppConfig.ResendAPIKey == "" {
		return nil
	}
	return &ResendMailer{
		client: resend.NewClient(config.AppConfig.ResendAPIKey),
		from:   config.AppConfig.EmailFrom,
		reply:  config.AppConfig.EmailReplyTo,
	}
}

var confirmationTmpl = template.Must(template.New("orderConfirmation").
	Funcs(template.FuncMap{"centsToDollars": centsToDollars}).
	Parse(`
<h2>Thanks for your order, {{.Order.CustomerName}}!</h2>
<p>Order <strong>{{.Order.ID}}</strong> is confirmed.</p>
{{range .Days}}
<h3>{{.Date}}{{if .Slot}} &mdash; {{.Slot}}{{end}}</h3>
<ul>
{{range .Items}}<li>{{.Quantity}} &times; {{.Name}} ({{centsToDollars .PriceCents}})</li>
{{end}}</ul>
{{end}}
{{if .AddOns}}<h3>Add-ons</h3>
<ul>
{{range .AddOns}}<li>{{.Quantity}} &times; {{.Name}}</li>
{{end}}</ul>{{end}}
<p>Total: <strong>{{centsToDollars .Order.TotalCents}}</strong></p>
{{if .Order.Address}}<p>Delivering to: {{.Order.Address}}</p>{{end}}
`))

type confirmationDay struct {
	Date  string
	Slot  string
	Items []models.OrderItem
}

type confirmationData struct {
	Order  *models.Order
	Days   []confirmationDay
	AddOns []models.OrderAddOn
}

func centsToDollars(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func renderConfirmation(order *models.Order) (string, error) {
	days := make([]confirmationDay, 0, len(order.DeliveryGroups))
	for _, g := range order.DeliveryGroups {
		days = append(days, confirmationDay{Date: g.ServiceDate, Slot: g.Slot, Items: g.Items})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	var buf bytes.Buffer
	data := confirmationData{Order: order, Days: days, AddOns: order.AddOns}
	if err := confirmationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (m *ResendMailer) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	logger := utils.GetLogger()

	html, err := renderConfirmation(order)
	if err != nil {
		return fmt.Errorf("mailer: render confirmation: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{order.CustomerEmail},
		Subject: fmt.Sprintf("Order confirmed: %s", order.ID),
		Html:    html,
	}
	if m.reply != "" {
		params.ReplyTo = m.reply
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("mailer: send confirmation: %w", err)
	}
	logger.Info("Order confirmation sent",
		zap.String("orderId", order.ID),
		zap.String("emailId", sent.Id))
	return nil
}
