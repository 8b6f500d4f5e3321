// Package order implements the dense-rank bookkeeping shared by task lists
// and tasks. Ranks within one scope (a user's lists, or a list's tasks with
// the same completion flag) are positive integers; appends go to max+1 and
// moves shift every peer between the old and new position by one.
package order

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound    = errors.New("item is not in scope")
	ErrOrderOutOfRange = errors.New("order is bigger than scope size")
)

// Item is one ranked row of a scope.
type Item struct {
	ID        uuid.UUID
	SortOrder int
}

// Update is a row whose rank changed.
type Update struct {
	ID        uuid.UUID
	SortOrder int
}

// NextOrder returns the rank for an append given the current scope maximum.
// A zero max means the scope is empty.
func NextOrder(max int) int {
	return max + 1
}

// PlanMove computes the updates that move itemID to target within items.
// Peers strictly between the old and new rank shift one step toward the
// vacated slot; everything else is untouched. Only changed rows are
// returned, the moving item last. Moving an item onto its own rank yields
// just that row, which makes a retry of the same move harmless.
func PlanMove(items []Item, itemID uuid.UUID, target int) ([]Update, error) {
	var moving *Item
	max := 0
	for i := range items {
		if items[i].SortOrder > max {
			max = items[i].SortOrder
		}
		if items[i].ID == itemID {
			moving = &items[i]
		}
	}
	if moving == nil {
		return nil, ErrItemNotFound
	}
	if target > max {
		return nil, ErrOrderOutOfRange
	}

	current := moving.SortOrder
	updates := make([]Update, 0, len(items))
	for i := range items {
		it := items[i]
		if it.ID == itemID {
			continue
		}
		switch {
		case target <= it.SortOrder && it.SortOrder < current:
			updates = append(updates, Update{ID: it.ID, SortOrder: it.SortOrder + 1})
		case current < it.SortOrder && it.SortOrder <= target:
			updates = append(updates, Update{ID: it.ID, SortOrder: it.SortOrder - 1})
		}
	}
	updates = append(updates, Update{ID: itemID, SortOrder: target})
	return updates, nil
}
