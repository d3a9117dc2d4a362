package wishlist

// Pure ledger transitions, mirroring the cart's but tracking presence
// only.

func copyItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func withItems(s State, items []Item) State {
	s.Items = items
	s.ItemCount = len(items)
	s.Err = ""
	return s
}

// Add saves an item. It is idempotent: an already-present productId is
// a no-op. A userID different from the current owner resets the ledger
// to a single-item wishlist under the new owner.
func Add(s State, userID int, item Item) (State, error) {
	if item.ProductID <= 0 {
		s.Err = ErrInvalidItem.Error()
		return s, ErrInvalidItem
	}

	if s.UserID != userID {
		return withItems(State{UserID: userID}, []Item{item}), nil
	}

	for _, existing := range s.Items {
		if existing.ProductID == item.ProductID {
			return s, nil
		}
	}
	return withItems(s, append(copyItems(s.Items), item)), nil
}

// Remove deletes the entry; a mismatched userID is a no-op.
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
	return withItems(s, items)
}

// Clear empties the wishlist if owned by userID.
func Clear(s State, userID int) State {
	if s.UserID != userID {
		return s
	}
	return withItems(s, []Item{})
}

// Load replaces the wishlist with a stored snapshot for userID.
func Load(s State, userID int, items []Item) State {
	valid := make([]Item, 0, len(items))
	for _, item := range items {
		if item.ProductID > 0 {
			valid = append(valid, item)
		}
	}
	return withItems(State{UserID: userID}, valid)
}

// LoadFailure records a storage load failure as ledger error state.
func LoadFailure(s State, userID int, msg string) State {
	return State{UserID: userID, Items: []Item{}, Err: msg}
}
