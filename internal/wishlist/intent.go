package wishlist

// Intents mirror the cart's tagged-union operations.

type Intent interface{ isIntent() }

type AddItem struct {
	UserID int
	Item   Item
}

type RemoveItem struct {
	UserID    int
	ProductID int
}

type ClearWishlist struct {
	UserID int
}

type LoadFromStorage struct {
	UserID int
	Items  []Item
}

type LoadFromStorageFailed struct {
	UserID int
	Err    string
}

func (AddItem) isIntent()               {}
func (RemoveItem) isIntent()            {}
func (ClearWishlist) isIntent()         {}
func (LoadFromStorage) isIntent()       {}
func (LoadFromStorageFailed) isIntent() {}

// Reduce is the pure transition function (state, intent) -> state.
func Reduce(s State, intent Intent) State {
	switch in := intent.(type) {
	case AddItem:
		next, _ := Add(s, in.UserID, in.Item)
		return next
	case RemoveItem:
		return Remove(s, in.UserID, in.ProductID)
	case ClearWishlist:
		return Clear(s, in.UserID)
	case LoadFromStorage:
		return Load(s, in.UserID, in.Items)
	case LoadFromStorageFailed:
		return LoadFailure(s, in.UserID, in.Err)
	default:
		return s
	}
}
