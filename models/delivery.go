package models

// DeliverySettingsID is the fixed ID of the delivery settings singleton.
const DeliverySettingsID = "1"

// FeeTier maps a distance ceiling (miles) to a delivery fee. Tiers are
// matched in ascending toMiles order; the first tier covering the distance
// wins.
type FeeTier struct {
	ToMiles  float64 `bson:"toMiles" json:"toMiles"`
	FeeCents int64   `bson:"feeCents" json:"feeCents"`
}

// DeliverySettings is the singleton delivery configuration: the kitchen's
// origin, the hard radius cutoff, and the mileage fee table.
type DeliverySettings struct {
	ID             string    `bson:"id" json:"id"`
	OriginAddress  string    `bson:"originAddress,omitempty" json:"originAddress,omitempty"`
	OriginLat      *float64  `bson:"originLat,omitempty" json:"originLat,omitempty"`
	OriginLng      *float64  `bson:"originLng,omitempty" json:"originLng,omitempty"`
	MaxRadiusMiles *float64  `bson:"maxRadiusMiles,omitempty" json:"maxRadiusMiles,omitempty"`
	FeeTiers       []FeeTier `bson:"feeTiers,omitempty" json:"feeTiers"`
}

// SlotTemplate is a named time window with its own seating capacity. The
// same templates apply to every day; there is no per-day slot customization.
type SlotTemplate struct {
	ID       string `bson:"id" json:"id"`
	Label    string `bson:"label" json:"label"`
	StartMin int    `bson:"startMin" json:"startMin"` // minutes from midnight
	EndMin   int    `bson:"endMin" json:"endMin"`
	Capacity int    `bson:"capacity" json:"capacity"`
	Active   bool   `bson:"active" json:"active"`
}

// BlackoutDate excludes a calendar date from delivery availability entirely.
type BlackoutDate struct {
	ID     string `bson:"id" json:"id"`
	Date   string `bson:"date" json:"date"` // YYYY-MM-DD
	Reason string `bson:"reason,omitempty" json:"reason,omitempty"`
}

// SlotAvailability is the per-slot remainder reported by the availability
// endpoint for one date.
type SlotAvailability struct {
	Label     string `json:"label"`
	Capacity  int    `json:"capacity"`
	Reserved  int    `json:"reserved"`
	Remaining int    `json:"remaining"`
	Active    bool   `json:"active"`
}

// DayAvailability is the availability response for a single date. A blacked
// out date reports an empty slot list, a deliberate "no service" signal
// rather than an error.
type DayAvailability struct {
	Date  string             `json:"date"`
	Slots []SlotAvailability `json:"slots"`
}

// DeliveryConfig is the public bundle of settings, slot templates and
// blackout dates the checkout UI needs.
type DeliveryConfig struct {
	Settings  *DeliverySettings `json:"settings"`
	Slots     []SlotTemplate    `json:"slots"`
	Blackouts []BlackoutDate    `json:"blackouts"`
}
