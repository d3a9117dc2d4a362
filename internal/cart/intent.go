package cart

// Intents are the tagged-union form of the ledger operations: the UI (or
// a handler) dispatches an intent and Reduce computes the next state
// deterministically from the old one.

type Intent interface{ isIntent() }

type AddItem struct {
	UserID int
	Item   Item
}

type RemoveItem struct {
	UserID    int
	ProductID int
}

type SetItemQuantity struct {
	UserID    int
	ProductID int
	Quantity  int
}

type AdjustItemQuantity struct {
	UserID    int
	ProductID int
	Delta     int
}

type ClearCart struct {
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
func (SetItemQuantity) isIntent()       {}
func (AdjustItemQuantity) isIntent()    {}
func (ClearCart) isIntent()             {}
func (LoadFromStorage) isIntent()       {}
func (LoadFromStorageFailed) isIntent() {}

// Reduce is the pure transition function (state, intent) -> state.
// Validation failures land in the state's error field.
func Reduce(s State, intent Intent) State {
	switch in := intent.(type) {
	case AddItem:
		next, _ := Add(s, in.UserID, in.Item)
		return next
	case RemoveItem:
		return Remove(s, in.UserID, in.ProductID)
	case SetItemQuantity:
		next, _ := SetQuantity(s, in.UserID, in.ProductID, in.Quantity)
		return next
	case AdjustItemQuantity:
		return AdjustQuantity(s, in.UserID, in.ProductID, in.Delta)
	case ClearCart:
		return Clear(s, in.UserID)
	case LoadFromStorage:
		return Load(s, in.UserID, in.Items)
	case LoadFromStorageFailed:
		return LoadFailure(s, in.UserID, in.Err)
	default:
		return s
	}
}
