package wishlist

import (
	"log"
	"sync"

	"github.com/kittipat-s/storefront-backend/internal/storage"
)

// StorageKey is the key the per-user wishlist map lives under.
const StorageKey = "wishlists"

// Service owns the session's active wishlist and mirrors mutations to
// the persistence gateway, best-effort.
type Service struct {
	mu      sync.Mutex
	state   State
	gateway *storage.Gateway
}

func NewService(gateway *storage.Gateway) *Service {
	return &Service{gateway: gateway}
}

// Get returns the wishlist for userID, loading it from storage first
// when the active ledger belongs to someone else.
func (s *Service) Get(userID int) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOwner(userID)
	return s.state
}

// Add dispatches an add intent. Adding under a new owner discards the
// previous in-memory wishlist.
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

func (s *Service) Clear(userID int) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOwner(userID)
	s.commit(userID, Clear(s.state, userID))
	return s.state
}

// ClearOnLogout drops the in-memory wishlist only; the persisted one
// stays for the next sign-in. The ledger goes back to unowned so even
// the same user's next access reloads from storage.
func (s *Service) ClearOnLogout(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.UserID != userID {
		return
	}
	s.state = State{}
}

func (s *Service) ensureOwner(userID int) {
	if s.state.UserID == userID {
		return
	}

	var snap Snapshot
	_, err := s.gateway.Load(userID, &snap)
	if err != nil {
		log.Printf("wishlist: load for user %d failed: %v", userID, err)
		s.state = LoadFailure(s.state, userID, "failed to load wishlist from storage")
		return
	}
	s.state = Load(s.state, userID, snap.Items)
}

func (s *Service) commit(userID int, next State) {
	if err := s.gateway.Save(userID, next.snapshot()); err != nil {
		log.Printf("wishlist: save for user %d failed: %v", userID, err)
		next.Err = "failed to save wishlist"
	}
	s.state = next
}
