package user

import (
	"encoding/json"

	"github.com/kittipat-s/storefront-backend/internal/storage"
)

// SessionKey is the fixed storage key for the auth session blob.
const SessionKey = "auth_data"

// Session is the persisted auth state: the signed-in user and an opaque
// token, written on login/signup success and deleted on logout.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// SessionStore persists the session blob in the key-value store.
type SessionStore struct {
	kv storage.KV
}

func NewSessionStore(kv storage.KV) *SessionStore {
	return &SessionStore{kv: kv}
}

func (s *SessionStore) Save(u User, token string) error {
	raw, err := json.Marshal(Session{User: sanitizeUser(u), Token: token})
	if err != nil {
		return err
	}
	return s.kv.Set(SessionKey, string(raw))
}

// Load returns the stored session. A corrupt blob reports a load
// failure instead of propagating a decode panic or partial data.
func (s *SessionStore) Load() (Session, bool, error) {
	blob, ok, err := s.kv.Get(SessionKey)
	if err != nil {
		return Session{}, false, err
	}
	if !ok || blob == "" {
		return Session{}, false, nil
	}

	var session Session
	if err := json.Unmarshal([]byte(blob), &session); err != nil {
		return Session{}, false, storage.ErrCorrupt
	}
	if session.User.ID == 0 || session.Token == "" {
		return Session{}, false, storage.ErrCorrupt
	}
	return session, true, nil
}

func (s *SessionStore) Clear() error {
	return s.kv.Delete(SessionKey)
}
