package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodsavvy/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// HoldStore tracks short-lived checkout reservations in Redis. A hold is
// placed when a payment intent is created and covers the item units and slot
// seats the customer is about to pay for; the webhook settles it, and an
// abandoned checkout simply expires with the TTL. Counters and the
// per-intent record share the same TTL, so a stale counter can linger for at
// most one hold window after its record expires.
type HoldStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewHoldStore wires a hold store over the given Redis client.
func NewHoldStore(client *redis.Client, ttl time.Duration) *HoldStore {
	return &HoldStore{Client: client, TTL: ttl}
}

// holdRecord is what we need to undo a hold: the counter deltas it applied.
type holdRecord struct {
	Items map[string]int `json:"items"` // key: date|menuItemId
	Slots map[string]int `json:"slots"` // key: date|slotLabel
}

func itemHoldKey(dateKey, menuItemID string) string {
	return fmt.Sprintf("hold:item:%s:%s", dateKey, menuItemID)
}

func slotHoldKey(dateKey, slotLabel string) string {
	return fmt.Sprintf("hold:slot:%s:%s", dateKey, slotLabel)
}

func intentHoldKey(paymentIntentID string) string {
	return "hold:intent:" + paymentIntentID
}

// releaseHold decrements a hold counter without letting it cross zero. A
// counter that already expired with the TTL stays absent instead of being
// recreated with a negative value and no expiry.
var releaseHold = redis.NewScript(`
local v = redis.call("GET", KEYS[1])
if not v then
	return 0
end
local n = tonumber(v) - tonumber(ARGV[1])
if n <= 0 then
	redis.call("DEL", KEYS[1])
	return 0
end
redis.call("DECRBY", KEYS[1], ARGV[1])
return n
`)

// HeldItemUnits reports how many units of an item are currently held for a
// date by other in-flight checkouts.
func (h *HoldStore) HeldItemUnits(ctx context.Context, dateKey, menuItemID string) (int, error) {
	n, err := h.Client.Get(ctx, itemHoldKey(dateKey, menuItemID)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("holds: %w", err)
	}
	return n, nil
}

// HeldSlotSeats reports how many seats of a slot are currently held for a
// date.
func (h *HoldStore) HeldSlotSeats(ctx context.Context, dateKey, slotLabel string) (int, error) {
	n, err := h.Client.Get(ctx, slotHoldKey(dateKey, slotLabel)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("holds: %w", err)
	}
	return n, nil
}

// Place records a hold for a payment intent: item units per (date, item) and
// one seat per (date, slot).
func (h *HoldStore) Place(ctx context.Context, paymentIntentID string, itemUnits map[[2]string]int, slotSeats map[[2]string]int) error {
	rec := holdRecord{Items: map[string]int{}, Slots: map[string]int{}}

	pipe := h.Client.TxPipeline()
	for key, units := range itemUnits {
		k := itemHoldKey(key[0], key[1])
		pipe.IncrBy(ctx, k, int64(units))
		pipe.Expire(ctx, k, h.TTL)
		rec.Items[key[0]+"|"+key[1]] = units
	}
	for key, seats := range slotSeats {
		k := slotHoldKey(key[0], key[1])
		pipe.IncrBy(ctx, k, int64(seats))
		pipe.Expire(ctx, k, h.TTL)
		rec.Slots[key[0]+"|"+key[1]] = seats
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("holds: failed to place hold: %w", err)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("holds: %w", err)
	}
	if err := h.Client.Set(ctx, intentHoldKey(paymentIntentID), data, h.TTL).Err(); err != nil {
		return fmt.Errorf("holds: failed to record hold: %w", err)
	}
	return nil
}

// Settle releases the hold for a payment intent, typically because the
// webhook just converted it into a real order. A missing record means the
// hold already expired; that is not an error.
func (h *HoldStore) Settle(ctx context.Context, paymentIntentID string) error {
	logger := utils.GetLogger()

	data, err := h.Client.Get(ctx, intentHoldKey(paymentIntentID)).Bytes()
	if err == redis.Nil {
		logger.Debug("holds: no active hold to settle", zap.String("paymentIntentId", paymentIntentID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("holds: %w", err)
	}

	var rec holdRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("holds: corrupt hold record: %w", err)
	}

	for key, units := range rec.Items {
		date, itemID, ok := splitHoldKey(key)
		if !ok {
			continue
		}
		if err := releaseHold.Run(ctx, h.Client, []string{itemHoldKey(date, itemID)}, units).Err(); err != nil {
			return fmt.Errorf("holds: failed to settle hold: %w", err)
		}
	}
	for key, seats := range rec.Slots {
		date, label, ok := splitHoldKey(key)
		if !ok {
			continue
		}
		if err := releaseHold.Run(ctx, h.Client, []string{slotHoldKey(date, label)}, seats).Err(); err != nil {
			return fmt.Errorf("holds: failed to settle hold: %w", err)
		}
	}
	if err := h.Client.Del(ctx, intentHoldKey(paymentIntentID)).Err(); err != nil {
		return fmt.Errorf("holds: failed to settle hold: %w", err)
	}
	return nil
}

func splitHoldKey(key string) (string, string, bool) {
	for i := 0; i < len(key); i++ {
		if key[i] == '|' {
			return key[:i], key[i+1:], true
		}
	}
	return "", "", false
}
