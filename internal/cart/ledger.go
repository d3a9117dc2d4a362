package cart

// Pure ledger transitions. Every function takes the current state and
// returns the next one without mutating its input; totals are always
// recomputed from the item list so they can never drift.

func recompute(items []Item) (total float64, count int) {
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
		count += item.Quantity
	}
	return total, count
}

func validItem(item Item) bool {
	return item.ProductID > 0 && item.Quantity > 0 && item.Stock > 0
}

func clampQuantity(qty, stock int) int {
	if qty > stock {
		qty = stock
	}
	if qty < 1 {
		qty = 1
	}
	return qty
}

func copyItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func withTotals(s State, items []Item) State {
	total, count := recompute(items)
	s.Items = items
	s.Total = total
	s.ItemCount = count
	s.Err = ""
	return s
}

// Add puts an item into the ledger. A userID different from the current
// owner resets the ledger to a single-item cart under the new owner
// (each user's cart is persisted and reloaded independently). Adding an
// existing product sums quantities, clamped to the item's stock.
func Add(s State, userID int, item Item) (State, error) {
	if !validItem(item) {
		s.Err = ErrInvalidItem.Error()
		return s, ErrInvalidItem
	}
	item.Quantity = clampQuantity(item.Quantity, item.Stock)

	if s.UserID != userID {
		return withTotals(State{UserID: userID}, []Item{item}), nil
	}

	items := copyItems(s.Items)
	found := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity = clampQuantity(items[i].Quantity+item.Quantity, items[i].Stock)
			found = true
			break
		}
	}
	if !found {
		items = append(items, item)
	}
	return withTotals(s, items), nil
}

// Remove deletes the entry. A mismatched userID is a no-op: it guards
// against stale dispatches racing a user switch.
func Remove(s State, userID, productID int) State {
	if s.UserID != userID {
		return s
	}
	items := make([]Item, 0, len(s.Items))
	for _, item := range s.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	return withTotals(s, items)
}

// SetQuantity sets an absolute quantity, clamped to the item's stock.
// Negative quantities are rejected into the ledger error field; zero
// removes the item.
func SetQuantity(s State, userID, productID, quantity int) (State, error) {
	if s.UserID != userID {
		return s, nil
	}
	if quantity < 0 {
		s.Err = ErrNegativeQuantity.Error()
		return s, ErrNegativeQuantity
	}

	items := make([]Item, 0, len(s.Items))
	for _, item := range s.Items {
		if item.ProductID == productID {
			qty := quantity
			if qty > item.Stock {
				qty = item.Stock
			}
			if qty == 0 {
				continue
			}
			item.Quantity = qty
		}
		items = append(items, item)
	}
	return withTotals(s, items), nil
}

// AdjustQuantity adds delta to the current quantity, clamped into
// [0, stock]; zero removes the item.
func AdjustQuantity(s State, userID, productID, delta int) State {
	if s.UserID != userID {
		return s
	}
	items := make([]Item, 0, len(s.Items))
	for _, item := range s.Items {
		if item.ProductID == productID {
			qty := item.Quantity + delta
			if qty > item.Stock {
				qty = item.Stock
			}
			if qty <= 0 {
				continue
			}
			item.Quantity = qty
		}
		items = append(items, item)
	}
	return withTotals(s, items)
}

// Clear empties the ledger if owned by userID.
func Clear(s State, userID int) State {
	if s.UserID != userID {
		return s
	}
	return withTotals(s, []Item{})
}

// Load replaces the ledger with a stored snapshot for userID. A stored
// list containing any malformed item degrades to an empty cart rather
// than loading partial garbage.
func Load(s State, userID int, items []Item) State {
	for _, item := range items {
		if !validItem(item) {
			items = []Item{}
			break
		}
	}
	return withTotals(State{UserID: userID}, copyItems(items))
}

// LoadFailure records a storage load failure as ledger error state.
func LoadFailure(s State, userID int, msg string) State {
	return State{UserID: userID, Items: []Item{}, Err: msg}
}
