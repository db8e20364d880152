package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHoldStore(t *testing.T) (*HoldStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewHoldStore(client, 15*time.Minute), mr
}

func TestHoldPlaceAndSettle(t *testing.T) {
	store, _ := newTestHoldStore(t)
	ctx := context.Background()

	itemUnits := map[[2]string]int{{"2026-09-01", "item-1"}: 2}
	slotSeats := map[[2]string]int{{"2026-09-01", "Lunch"}: 1}
	require.NoError(t, store.Place(ctx, "pi_1", itemUnits, slotSeats))

	held, err := store.HeldItemUnits(ctx, "2026-09-01", "item-1")
	require.NoError(t, err)
	assert.Equal(t, 2, held)
	seats, err := store.HeldSlotSeats(ctx, "2026-09-01", "Lunch")
	require.NoError(t, err)
	assert.Equal(t, 1, seats)

	require.NoError(t, store.Settle(ctx, "pi_1"))

	held, err = store.HeldItemUnits(ctx, "2026-09-01", "item-1")
	require.NoError(t, err)
	assert.Equal(t, 0, held)
	seats, err = store.HeldSlotSeats(ctx, "2026-09-01", "Lunch")
	require.NoError(t, err)
	assert.Equal(t, 0, seats)
}

func TestHoldSettleKeepsOtherIntents(t *testing.T) {
	store, _ := newTestHoldStore(t)
	ctx := context.Background()

	key := [2]string{"2026-09-01", "item-1"}
	require.NoError(t, store.Place(ctx, "pi_1", map[[2]string]int{key: 2}, nil))
	require.NoError(t, store.Place(ctx, "pi_2", map[[2]string]int{key: 1}, nil))

	require.NoError(t, store.Settle(ctx, "pi_1"))

	held, err := store.HeldItemUnits(ctx, "2026-09-01", "item-1")
	require.NoError(t, err)
	assert.Equal(t, 1, held)
}

func TestHoldSettleAfterCounterExpiry(t *testing.T) {
	store, mr := newTestHoldStore(t)
	ctx := context.Background()

	require.NoError(t, store.Place(ctx, "pi_1", map[[2]string]int{{"2026-09-01", "item-1"}: 3}, nil))

	// Counter expired while the intent record was still live. Settling must
	// not recreate it with a negative value.
	mr.Del(itemHoldKey("2026-09-01", "item-1"))

	require.NoError(t, store.Settle(ctx, "pi_1"))

	held, err := store.HeldItemUnits(ctx, "2026-09-01", "item-1")
	require.NoError(t, err)
	assert.Equal(t, 0, held)
	assert.False(t, mr.Exists(itemHoldKey("2026-09-01", "item-1")))
}

func TestHoldSettleMissingRecord(t *testing.T) {
	store, _ := newTestHoldStore(t)
	require.NoError(t, store.Settle(context.Background(), "pi_missing"))
}
