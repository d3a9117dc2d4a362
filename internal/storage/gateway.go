package storage

import (
	"encoding/json"
	"strconv"
)

// Gateway persists per-user snapshots for one concern (carts, wishlists)
// under a single key. The stored value is one JSON object mapping user id
// to snapshot, so every save is a read-modify-write of the whole map:
// concurrent writers are not coordinated, last writer wins.
type Gateway struct {
	kv  KV
	key string
}

func NewGateway(kv KV, key string) *Gateway {
	return &Gateway{kv: kv, key: key}
}

// Save writes the user's slice of the map, preserving everyone else's.
// A corrupt existing blob is replaced with a fresh map rather than
// blocking all future saves.
func (g *Gateway) Save(userID int, snapshot any) error {
	all, err := g.loadAll()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	all[strconv.Itoa(userID)] = raw

	blob, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return g.kv.Set(g.key, string(blob))
}

// Load decodes the user's slice into out. It reports false when the user
// has no stored snapshot, and ErrCorrupt when the blob or the slice
// cannot be decoded. Missing fields in a stored snapshot keep their zero
// values, so partial legacy records load fine.
func (g *Gateway) Load(userID int, out any) (bool, error) {
	blob, ok, err := g.kv.Get(g.key)
	if err != nil {
		return false, err
	}
	if !ok || blob == "" {
		return false, nil
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal([]byte(blob), &all); err != nil {
		return false, ErrCorrupt
	}

	raw, ok := all[strconv.Itoa(userID)]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, ErrCorrupt
	}
	return true, nil
}

// Delete removes the user's slice, leaving other users untouched.
func (g *Gateway) Delete(userID int) error {
	all, err := g.loadAll()
	if err != nil {
		return err
	}
	delete(all, strconv.Itoa(userID))

	blob, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return g.kv.Set(g.key, string(blob))
}

// loadAll reads the whole per-user map for a write. A backend read
// failure aborts the caller: writing over a blob we could not read
// would drop every other user's data. A corrupt blob still starts
// fresh so one bad write cannot brick the store forever.
func (g *Gateway) loadAll() (map[string]json.RawMessage, error) {
	all := make(map[string]json.RawMessage)
	blob, ok, err := g.kv.Get(g.key)
	if err != nil {
		return nil, err
	}
	if !ok || blob == "" {
		return all, nil
	}
	if err := json.Unmarshal([]byte(blob), &all); err != nil {
		return make(map[string]json.RawMessage), nil
	}
	return all, nil
}

