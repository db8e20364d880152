package orderRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// UsedQuantitiesByDate runs the capacity aggregation: unwind delivery groups,
// keep the ones scheduled for dateKey, then sum line quantities per menu item.
func (r *mongoOrderRepo) UsedQuantitiesByDate(ctx context.Context, dateKey string) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$unwind": "$deliveryGroups"},
		{"$match": bson.M{"deliveryGroups.serviceDate": dateKey}},
		{"$unwind": "$deliveryGroups.items"},
		{"$group": bson.M{
			"_id":  "$deliveryGroups.items.menuItemId",
			"used": bson.M{"$sum": "$deliveryGroups.items.quantity"},
		}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate used quantities: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		MenuItemID string `bson:"_id"`
		Used       int    `bson:"used"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	used := make(map[string]int, len(rows))
	for _, row := range rows {
		used[row.MenuItemID] = row.Used
	}
	return used, nil
}

// SlotCountsByDate counts reserved delivery groups per slot label for a date.
// Groups without a slot (pickup) are ignored.
func (r *mongoOrderRepo) SlotCountsByDate(ctx context.Context, dateKey string) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$unwind": "$deliveryGroups"},
		{"$match": bson.M{
			"deliveryGroups.serviceDate": dateKey,
			"deliveryGroups.slot":        bson.M{"$nin": bson.A{nil, ""}},
		}},
		{"$group": bson.M{
			"_id":      "$deliveryGroups.slot",
			"reserved": bson.M{"$sum": 1},
		}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate slot counts: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Slot     string `bson:"_id"`
		Reserved int    `bson:"reserved"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Slot] = row.Reserved
	}
	return counts, nil
}

func (r *mongoOrderRepo) CountByMenuItem(ctx context.Context, menuItemID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"deliveryGroups.items.menuItemId": menuItemID})
	if err != nil {
		return 0, fmt.Errorf("failed to count order references: %w", err)
	}
	return count, nil
}
