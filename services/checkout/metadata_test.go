package checkout

import (
	"testing"

	"foodsavvy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataRoundTrip(t *testing.T) {
	in := models.CheckoutMetadata{
		Type:    models.FulfillmentDelivery,
		Name:    "Dana",
		Email:   "dana@example.com",
		Address: "123 Main St",
		Phone:   "555-0100",
		Schedule: map[string]string{
			"2026-09-01": "11:00 AM - 1:00 PM",
			"2026-09-02": "5:00 PM - 7:00 PM",
		},
		Items: []models.MetadataItem{
			{MenuItemID: "pasta", Name: "Pasta (Small)", Quantity: 2, PriceCents: 1200, ServiceDate: "2026-09-01"},
			{MenuItemID: "soup", Name: "Soup", Quantity: 1, PriceCents: 700, ServiceDate: "2026-09-02"},
		},
		AddOns: []models.MetadataAddOn{
			{Name: "Garlic Bread", Quantity: 1, PriceCents: 300, ServiceDate: "2026-09-01"},
		},
	}

	out := DecodeMetadata(EncodeMetadata(in))
	assert.Equal(t, in.Type, out.Type)
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.Schedule, out.Schedule)
	assert.Equal(t, in.Items, out.Items)
	assert.Equal(t, in.AddOns, out.AddOns)
}

func TestDecodeMalformedBlobsAreLenient(t *testing.T) {
	out := DecodeMetadata(map[string]string{
		"type":      "delivery",
		"name":      "Dana",
		"schedule":  "{not json",
		"menuItems": "[broken",
		"addOns":    "also broken",
	})
	assert.Equal(t, "Dana", out.Name)
	assert.Empty(t, out.Schedule)
	assert.Nil(t, out.Items)
	assert.Nil(t, out.AddOns)
}

func TestDecodeDefaultsTypeToDelivery(t *testing.T) {
	out := DecodeMetadata(map[string]string{"name": "Dana"})
	assert.Equal(t, models.FulfillmentDelivery, out.Type)
}

func TestDecodeLegacySingleDayKeys(t *testing.T) {
	out := DecodeMetadata(map[string]string{
		"type":         "delivery",
		"deliveryDate": "2026-09-01T00:00:00.000Z",
		"deliverySlot": "11:00 AM - 1:00 PM",
	})
	require.Len(t, out.Schedule, 1)
	assert.Equal(t, "11:00 AM - 1:00 PM", out.Schedule["2026-09-01"])
}

func TestScheduleMapWinsOverLegacyKeys(t *testing.T) {
	out := DecodeMetadata(map[string]string{
		"schedule":     `{"2026-09-02":"5:00 PM - 7:00 PM"}`,
		"deliveryDate": "2026-09-01",
		"deliverySlot": "11:00 AM - 1:00 PM",
	})
	require.Len(t, out.Schedule, 1)
	assert.Equal(t, "5:00 PM - 7:00 PM", out.Schedule["2026-09-02"])
}
