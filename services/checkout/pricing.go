// File: services/checkout/pricing.go
package checkout

import (
	"math"
	"sort"

	"foodsavvy/models"
)

// HaversineMiles computes the straight-line distance between two coordinates
// in miles.
func HaversineMiles(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusMiles = 3958.8
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// FeeForDistance resolves the delivery fee for a distance against the tier
// table. Returns nil when the distance exceeds the max radius or no tier
// covers it — an out-of-range address, which blocks checkout.
func FeeForDistance(settings *models.DeliverySettings, miles float64) *int64 {
	if settings == nil {
		return nil
	}
	if settings.MaxRadiusMiles != nil && miles > *settings.MaxRadiusMiles {
		return nil
	}
	tiers := make([]models.FeeTier, len(settings.FeeTiers))
	copy(tiers, settings.FeeTiers)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].ToMiles < tiers[j].ToMiles })
	for _, t := range tiers {
		if miles <= t.ToMiles {
			fee := t.FeeCents
			return &fee
		}
	}
	return nil
}

// TaxCents applies the sales tax rate to a cent amount, rounding half up.
func TaxCents(amountCents int64, rate float64) int64 {
	return int64(math.Round(float64(amountCents) * rate))
}

// BuildQuote prices a checkout: items subtotal, delivery fee (always zero
// for pickup), sales tax on items+fee, and the grand total. deliveryCents is
// what FeeForDistance resolved for the customer's address; it is ignored for
// pickup.
func BuildQuote(itemsCents int64, fulfillment string, deliveryCents int64, taxRate float64) models.Quote {
	fee := deliveryCents
	if fulfillment == models.FulfillmentPickup {
		fee = 0
	}
	tax := TaxCents(itemsCents+fee, taxRate)
	return models.Quote{
		ItemsCents:    itemsCents,
		DeliveryCents: fee,
		TaxCents:      tax,
		TotalCents:    itemsCents + fee + tax,
	}
}
