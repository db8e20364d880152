package checkout

import (
	"testing"

	"foodsavvy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func tieredSettings() *models.DeliverySettings {
	return &models.DeliverySettings{
		ID:             models.DeliverySettingsID,
		MaxRadiusMiles: floatPtr(10),
		FeeTiers: []models.FeeTier{
			{ToMiles: 3, FeeCents: 300},
			{ToMiles: 6, FeeCents: 500},
			{ToMiles: 10, FeeCents: 800},
		},
	}
}

func TestFeeForDistancePicksFirstCoveringTier(t *testing.T) {
	fee := FeeForDistance(tieredSettings(), 4.2)
	require.NotNil(t, fee)
	assert.Equal(t, int64(500), *fee)
}

func TestFeeForDistanceBoundaryIsInclusive(t *testing.T) {
	fee := FeeForDistance(tieredSettings(), 3.0)
	require.NotNil(t, fee)
	assert.Equal(t, int64(300), *fee)
}

func TestFeeForDistanceBeyondRadius(t *testing.T) {
	assert.Nil(t, FeeForDistance(tieredSettings(), 12))
}

func TestFeeForDistanceBeyondLastTier(t *testing.T) {
	s := tieredSettings()
	s.MaxRadiusMiles = nil
	assert.Nil(t, FeeForDistance(s, 11))
}

func TestFeeForDistanceUnsortedTiers(t *testing.T) {
	s := tieredSettings()
	s.FeeTiers = []models.FeeTier{
		{ToMiles: 10, FeeCents: 800},
		{ToMiles: 3, FeeCents: 300},
		{ToMiles: 6, FeeCents: 500},
	}
	fee := FeeForDistance(s, 2)
	require.NotNil(t, fee)
	assert.Equal(t, int64(300), *fee)
}

func TestTaxRoundsHalfUp(t *testing.T) {
	// 6.625% of $10.00 = 66.25 cents, rounds to 66.
	assert.Equal(t, int64(66), TaxCents(1000, 0.06625))
	// 6.625% of $11.40 = 75.525 cents, rounds to 76.
	assert.Equal(t, int64(76), TaxCents(1140, 0.06625))
}

func TestBuildQuoteDelivery(t *testing.T) {
	q := BuildQuote(5000, models.FulfillmentDelivery, 500, 0.06625)
	assert.Equal(t, int64(5000), q.ItemsCents)
	assert.Equal(t, int64(500), q.DeliveryCents)
	// Tax applies to items plus fee.
	assert.Equal(t, TaxCents(5500, 0.06625), q.TaxCents)
	assert.Equal(t, q.ItemsCents+q.DeliveryCents+q.TaxCents, q.TotalCents)
}

func TestBuildQuotePickupZeroesFee(t *testing.T) {
	q := BuildQuote(5000, models.FulfillmentPickup, 500, 0.06625)
	assert.Equal(t, int64(0), q.DeliveryCents)
	assert.Equal(t, TaxCents(5000, 0.06625), q.TaxCents)
}

func TestHaversineKnownDistance(t *testing.T) {
	// Philadelphia city hall to Camden NJ waterfront, roughly 2 miles.
	miles := HaversineMiles(39.9526, -75.1652, 39.9449, -75.1197)
	assert.InDelta(t, 2.45, miles, 0.3)
}

func TestHaversineZeroDistance(t *testing.T) {
	assert.InDelta(t, 0, HaversineMiles(40, -75, 40, -75), 1e-9)
}
