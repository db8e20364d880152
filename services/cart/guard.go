package cart

import "foodsavvy/models"

// maxAllowedLocked computes the per-day ceiling for one line relative to its
// siblings:
//
//  1. Add-on lines are never capacity-limited.
//  2. Baseline is the availability snapshot taken at add time
//     (remainingAtAdd), falling back to capacityPerDay, else unlimited.
//  3. Sibling lines are all other lines of the same menu item in the same
//     date group; their quantities eat into the baseline.
//
// The ceiling is "how high may THIS line go", so the line's own quantity is
// excluded from the sibling sum. Returns (ceiling, true) for limited lines
// and (0, false) for unlimited ones.
func (s *Store) maxAllowedLocked(line models.CartLine) (int, bool) {
	item, ok := line.PricedItem()
	if !ok {
		return 0, false
	}

	var baseline int
	switch {
	case item.RemainingAtAdd != nil:
		baseline = *item.RemainingAtAdd
	case item.CapacityPerDay != nil:
		baseline = *item.CapacityPerDay
	default:
		return 0, false
	}

	// others = sum of quantities contributed by all OTHER lines of the same
	// item/date, whether or not this line is in the cart yet.
	groupKey := line.GroupKey()
	others := 0
	for _, l := range s.lines {
		if l.ID == line.ID {
			continue
		}
		sibling, ok := l.PricedItem()
		if !ok || sibling.MenuItemID != item.MenuItemID || l.GroupKey() != groupKey {
			continue
		}
		others += l.Quantity
	}

	max := baseline - others
	if max < 0 {
		max = 0
	}
	return max, true
}
