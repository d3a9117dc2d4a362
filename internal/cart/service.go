package cart

import (
	"log"
	"sync"

	"github.com/kittipat-s/storefront-backend/internal/storage"
)

// StorageKey is the key the per-user cart map lives under.
const StorageKey = "carts"

// Service owns the session's active cart ledger and mirrors every
// mutation to the persistence gateway. Saves are best-effort: a failure
// lands in the ledger error field and is logged, never fatal.
type Service struct {
	mu      sync.Mutex
	state   State
	gateway *storage.Gateway
}

func NewService(gateway *storage.Gateway) *Service {
	return &Service{gateway: gateway}
}

// Get returns the ledger for userID, loading it from storage first when
// the active ledger belongs to someone else.
func (s *Service) Get(userID int) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOwner(userID)
	return s.state
}

// Add dispatches an add-item intent. Adding under a new owner discards
// the previous in-memory cart, so no load happens first.
func (s *Service) Add(userID int, item Item) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Add(s.state, userID, item)
	if err != nil {
		s.state = next
		return next, err
	}
	s.commit(userID, next)
	return s.state, nil
}

func (s *Service) Remove(userID, productID int) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOwner(userID)
	s.commit(userID, Remove(s.state, userID, productID))
	return s.state
}

func (s *Service) SetQuantity(userID, productID, quantity int) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOwner(userID)

	next, err := SetQuantity(s.state, userID, productID, quantity)
	if err != nil {
		s.state = next
		return next, err
	}
	s.commit(userID, next)
	return s.state, nil
}

func (s *Service) AdjustQuantity(userID, productID, delta int) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOwner(userID)
	s.commit(userID, AdjustQuantity(s.state, userID, productID, delta))
	return s.state
}

func (s *Service) Clear(userID int) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOwner(userID)
	s.commit(userID, Clear(s.state, userID))
	return s.state
}

// ClearOnLogout drops the in-memory ledger only; the persisted cart
// stays so it reloads on the next sign-in. The ledger goes back to
// unowned so even the same user's next access reloads from storage.
func (s *Service) ClearOnLogout(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.UserID != userID {
		return
	}
	s.state = State{}
}

// ensureOwner switches the active ledger to userID's persisted cart.
// Callers must hold the mutex.
func (s *Service) ensureOwner(userID int) {
	if s.state.UserID == userID {
		return
	}

	var snap Snapshot
	_, err := s.gateway.Load(userID, &snap)
	if err != nil {
		log.Printf("cart: load for user %d failed: %v", userID, err)
		s.state = LoadFailure(s.state, userID, "failed to load cart from storage")
		return
	}
	s.state = Load(s.state, userID, snap.Items)
}

// commit installs the next state and mirrors it to storage.
// Callers must hold the mutex.
func (s *Service) commit(userID int, next State) {
	if err := s.gateway.Save(userID, next.snapshot()); err != nil {
		log.Printf("cart: save for user %d failed: %v", userID, err)
		next.Err = "failed to save cart"
	}
	s.state = next
}
