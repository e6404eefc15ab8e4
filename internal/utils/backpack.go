package utils

import (
	"fmt"

	"github.com/hunter-yen/hunter-server/internal/domain"
)

// BackpackLookupLinearScanThreshold defines when to switch from linear scan to map-based lookup.
// Linear scan is faster for small batches even with large backpacks.
const BackpackLookupLinearScanThreshold = 10

// FindSlot finds the stack for itemID.
// Returns the index of the stack and the quantity found, or -1, 0 if absent.
func FindSlot(backpack []domain.BackpackItem, itemID string) (int, int) {
	for i, slot := range backpack {
		if slot.ItemID == itemID {
			return i, slot.Quantity
		}
	}
	return -1, 0
}

// Quantity returns how many of itemID the backpack holds.
func Quantity(backpack []domain.BackpackItem, itemID string) int {
	_, qty := FindSlot(backpack, itemID)
	return qty
}

// HasItems reports whether every requirement is covered.
func HasItems(backpack []domain.BackpackItem, required []domain.ItemQuantity) bool {
	for _, req := range required {
		if Quantity(backpack, req.ItemID) < req.Quantity {
			return false
		}
	}
	return true
}

// AddToBackpack adds qty of itemID, creating the stack when absent.
func AddToBackpack(backpack []domain.BackpackItem, itemID string, qty int) ([]domain.BackpackItem, error) {
	if qty <= 0 {
		return backpack, fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrInvalidInput, qty)
	}
	if idx, _ := FindSlot(backpack, itemID); idx >= 0 {
		backpack[idx].Quantity += qty
		return backpack, nil
	}
	return append(backpack, domain.BackpackItem{ItemID: itemID, Quantity: qty}), nil
}

// RemoveFromBackpack removes qty of itemID. A stack that reaches zero is deleted.
// Removing more than held returns ErrInsufficientQuantity and leaves the backpack unchanged.
func RemoveFromBackpack(backpack []domain.BackpackItem, itemID string, qty int) ([]domain.BackpackItem, error) {
	if qty <= 0 {
		return backpack, fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrInvalidInput, qty)
	}
	idx, have := FindSlot(backpack, itemID)
	if have < qty {
		return backpack, fmt.Errorf("%w: %s has %d, need %d", domain.ErrInsufficientQuantity, itemID, have, qty)
	}
	if have == qty {
		return append(backpack[:idx], backpack[idx+1:]...), nil
	}
	backpack[idx].Quantity -= qty
	return backpack, nil
}

// AddItemsToBackpack adds many stacks using a hybrid lookup strategy.
// Small batches use a linear scan to avoid map allocation; larger batches use a slot map.
// Non-positive quantities are skipped.
func AddItemsToBackpack(backpack []domain.BackpackItem, items []domain.ItemQuantity) []domain.BackpackItem {
	if len(items) == 0 {
		return backpack
	}

	var slotMap map[string]int
	if len(items) >= BackpackLookupLinearScanThreshold {
		slotMap = make(map[string]int, len(backpack))
		for i, slot := range backpack {
			slotMap[slot.ItemID] = i
		}
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if slotMap != nil {
			if idx, exists := slotMap[item.ItemID]; exists {
				backpack[idx].Quantity += item.Quantity
			} else {
				backpack = append(backpack, domain.BackpackItem{ItemID: item.ItemID, Quantity: item.Quantity})
				slotMap[item.ItemID] = len(backpack) - 1
			}
			continue
		}
		found := false
		for i := range backpack {
			if backpack[i].ItemID == item.ItemID {
				backpack[i].Quantity += item.Quantity
				found = true
				break
			}
		}
		if !found {
			backpack = append(backpack, domain.BackpackItem{ItemID: item.ItemID, Quantity: item.Quantity})
		}
	}
	return backpack
}

// RemoveItemsFromBackpack removes every requirement or nothing.
func RemoveItemsFromBackpack(backpack []domain.BackpackItem, items []domain.ItemQuantity) ([]domain.BackpackItem, error) {
	need := make(map[string]int, len(items))
	order := make([]string, 0, len(items))
	for _, req := range items {
		if req.Quantity <= 0 {
			continue
		}
		if _, seen := need[req.ItemID]; !seen {
			order = append(order, req.ItemID)
		}
		need[req.ItemID] += req.Quantity
	}
	for _, id := range order {
		if have := Quantity(backpack, id); have < need[id] {
			return backpack, fmt.Errorf("%w: %s has %d, need %d", domain.ErrInsufficientQuantity, id, have, need[id])
		}
	}
	var err error
	for _, id := range order {
		if backpack, err = RemoveFromBackpack(backpack, id, need[id]); err != nil {
			return backpack, err
		}
	}
	return backpack, nil
}

// DropsToQuantities collapses a drop list into per-item quantities, keeping first-seen order.
func DropsToQuantities(drops []string) []domain.ItemQuantity {
	out := make([]domain.ItemQuantity, 0, len(drops))
	idx := make(map[string]int, len(drops))
	for _, id := range drops {
		if i, ok := idx[id]; ok {
			out[i].Quantity++
			continue
		}
		idx[id] = len(out)
		out = append(out, domain.ItemQuantity{ItemID: id, Quantity: 1})
	}
	return out
}
