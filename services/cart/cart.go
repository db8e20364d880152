// File: services/cart/cart.go
package cart

import (
	"fmt"
	"sort"
	"sync"

	"foodsavvy/models"
)

// CapacityError reports an add or increment that would push a date group
// past its per-day ceiling.
type CapacityError struct {
	LineID     string
	MenuItemID string
	DateKey    string
	Allowed    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cart: only %d more available for item %s on %s", e.Allowed, e.MenuItemID, e.DateKey)
}

// Store is an explicitly-owned cart state container. It replaces the ambient
// context the UI used to mutate: callers construct one, inject it where
// needed, and every quantity change goes through the capacity guard.
type Store struct {
	mu    sync.Mutex
	lines []models.CartLine
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{}
}

// Group is one date bucket of cart lines, keyed by normalized service date
// (or the unscheduled bucket for dateless lines).
type Group struct {
	Key   string
	Lines []models.CartLine
}

// Lines returns a copy of the cart contents.
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len reports the number of lines in the cart.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// SubtotalCents sums price*quantity across all lines.
func (s *Store) SubtotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, l := range s.lines {
		total += l.PriceCents * int64(l.Quantity)
	}
	return total
}

// Groups returns the cart bucketed by service date, sorted chronologically
// (ISO date keys sort correctly); the unscheduled bucket sorts last.
func (s *Store) Groups() []Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	byKey := make(map[string][]models.CartLine)
	for _, l := range s.lines {
		key := l.GroupKey()
		byKey[key] = append(byKey[key], l)
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == models.UnscheduledGroupKey {
			return false
		}
		if keys[j] == models.UnscheduledGroupKey {
			return true
		}
		return keys[i] < keys[j]
	})

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, Group{Key: k, Lines: byKey[k]})
	}
	return groups
}

// DatedGroupKeys returns the date keys of all scheduled groups, used by
// checkout to verify every day has a selected slot.
func (s *Store) DatedGroupKeys() []string {
	var keys []string
	for _, g := range s.Groups() {
		if g.Key != models.UnscheduledGroupKey {
			keys = append(keys, g.Key)
		}
	}
	return keys
}

// Add inserts a line or merges into an existing line with the same ID. The
// merged quantity is checked against the group ceiling; on violation the
// cart is left unchanged.
func (s *Store) Add(line models.CartLine) error {
	if line.Quantity <= 0 {
		return fmt.Errorf("cart: quantity must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(line.ID); idx >= 0 {
		return s.setQuantityLocked(idx, s.lines[idx].Quantity+line.Quantity)
	}

	// A fresh line: its ceiling counts existing siblings of the same item
	// and date.
	if max, limited := s.maxAllowedLocked(line); limited && line.Quantity > max {
		return s.capacityError(line, max)
	}
	s.lines = append(s.lines, line)
	return nil
}

// Increment raises a line's quantity by one, rejecting the change if it
// would exceed the per-day ceiling.
func (s *Store) Increment(lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(lineID)
	if idx < 0 {
		return fmt.Errorf("cart: no line %q", lineID)
	}
	return s.setQuantityLocked(idx, s.lines[idx].Quantity+1)
}

// Decrement lowers a line's quantity by one. At zero the line is removed
// entirely; the cart never holds a zero-quantity line.
func (s *Store) Decrement(lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(lineID)
	if idx < 0 {
		return
	}
	if s.lines[idx].Quantity <= 1 {
		s.removeLocked(idx)
		return
	}
	s.lines[idx].Quantity--
}

// Remove deletes a line regardless of quantity.
func (s *Store) Remove(lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(lineID); idx >= 0 {
		s.removeLocked(idx)
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// MaxAllowed reports the current ceiling for a line. The second return is
// false when the line is not capacity-limited.
func (s *Store) MaxAllowed(lineID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(lineID)
	if idx < 0 {
		return 0, false
	}
	line := s.lines[idx]
	return s.maxAllowedLocked(line)
}

func (s *Store) indexOf(lineID string) int {
	for i, l := range s.lines {
		if l.ID == lineID {
			return i
		}
	}
	return -1
}

func (s *Store) removeLocked(idx int) {
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
}

func (s *Store) setQuantityLocked(idx, quantity int) error {
	if quantity <= 0 {
		s.removeLocked(idx)
		return nil
	}
	line := s.lines[idx]
	if max, limited := s.maxAllowedLocked(line); limited && quantity > max {
		return s.capacityError(line, max)
	}
	s.lines[idx].Quantity = quantity
	return nil
}

func (s *Store) capacityError(line models.CartLine, allowed int) error {
	item, _ := line.PricedItem()
	return &CapacityError{
		LineID:     line.ID,
		MenuItemID: item.MenuItemID,
		DateKey:    line.GroupKey(),
		Allowed:    allowed,
	}
}
