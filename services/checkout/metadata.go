package checkout

import (
	"encoding/json"

	"foodsavvy/models"
	"foodsavvy/utils"

	"go.uber.org/zap"
)

// Metadata keys stashed on the payment intent. This is the wire contract
// between checkout and the webhook that materializes the order, so renaming
// a key is a breaking change for in-flight payments.
const (
	metaType     = "type"
	metaName     = "name"
	metaEmail    = "email"
	metaAddress  = "address"
	metaPhone    = "phone"
	metaSchedule = "schedule"
	metaItems    = "menuItems"
	metaAddOns   = "addOns"
)

// EncodeMetadata flattens the checkout payload into the string map Stripe
// accepts. Cart contents and the date→slot schedule ride as JSON blobs.
func EncodeMetadata(m models.CheckoutMetadata) map[string]string {
	out := map[string]string{
		metaType:    m.Type,
		metaName:    m.Name,
		metaEmail:   m.Email,
		metaAddress: m.Address,
		metaPhone:   m.Phone,
	}
	if len(m.Schedule) > 0 {
		if b, err := json.Marshal(m.Schedule); err == nil {
			out[metaSchedule] = string(b)
		}
	}
	if b, err := json.Marshal(m.Items); err == nil {
		out[metaItems] = string(b)
	}
	if b, err := json.Marshal(m.AddOns); err == nil {
		out[metaAddOns] = string(b)
	}
	return out
}

// DecodeMetadata parses the stashed metadata back out at webhook time.
// Malformed JSON is logged and decodes to empty values — order creation must
// not crash on a bad bag.
func DecodeMetadata(raw map[string]string) models.CheckoutMetadata {
	logger := utils.GetLogger()
	m := models.CheckoutMetadata{
		Type:     raw[metaType],
		Name:     raw[metaName],
		Email:    raw[metaEmail],
		Address:  raw[metaAddress],
		Phone:    raw[metaPhone],
		Schedule: map[string]string{},
	}
	if m.Type == "" {
		m.Type = models.FulfillmentDelivery
	}

	if s := raw[metaSchedule]; s != "" {
		if err := json.Unmarshal([]byte(s), &m.Schedule); err != nil {
			logger.Warn("checkout: malformed schedule metadata", zap.Error(err))
			m.Schedule = map[string]string{}
		}
	}
	// Legacy single-day checkouts carried deliveryDate/deliverySlot instead
	// of a schedule map.
	if len(m.Schedule) == 0 {
		if date := raw["deliveryDate"]; date != "" {
			if key, err := utils.NormalizeDateKey(date); err == nil {
				m.Schedule[key] = raw["deliverySlot"]
			}
		}
	}

	if s := raw[metaItems]; s != "" {
		if err := json.Unmarshal([]byte(s), &m.Items); err != nil {
			logger.Warn("checkout: malformed menuItems metadata", zap.Error(err))
			m.Items = nil
		}
	}
	if s := raw[metaAddOns]; s != "" {
		if err := json.Unmarshal([]byte(s), &m.AddOns); err != nil {
			logger.Warn("checkout: malformed addOns metadata", zap.Error(err))
			m.AddOns = nil
		}
	}
	return m
}
