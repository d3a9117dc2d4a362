package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Items []string `json:"items"`
	Total float64  `json:"total"`
}

func TestGateway_SaveAndLoad(t *testing.T) {
	g := NewGateway(NewMemoryKV(), "carts")

	require.NoError(t, g.Save(7, snapshot{Items: []string{"mascara"}, Total: 100}))

	var got snapshot
	found, err := g.Load(7, &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"mascara"}, got.Items)
	assert.Equal(t, 100.0, got.Total)
}

func TestGateway_LoadMissingUser(t *testing.T) {
	g := NewGateway(NewMemoryKV(), "carts")

	var got snapshot
	found, err := g.Load(7, &got)
	require.NoError(t, err)
	assert.False(t, found)

	// key exists but holds no entry for this user
	require.NoError(t, g.Save(8, snapshot{}))
	found, err = g.Load(7, &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGateway_SavePreservesOtherUsers(t *testing.T) {
	g := NewGateway(NewMemoryKV(), "carts")

	require.NoError(t, g.Save(7, snapshot{Total: 100}))
	require.NoError(t, g.Save(8, snapshot{Total: 20}))

	var seven, eight snapshot
	found, err := g.Load(7, &seven)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 100.0, seven.Total)

	found, err = g.Load(8, &eight)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 20.0, eight.Total)
}

func TestGateway_Delete(t *testing.T) {
	g := NewGateway(NewMemoryKV(), "carts")

	require.NoError(t, g.Save(7, snapshot{Total: 100}))
	require.NoError(t, g.Save(8, snapshot{Total: 20}))
	require.NoError(t, g.Delete(7))

	var got snapshot
	found, err := g.Load(7, &got)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = g.Load(8, &got)
	require.NoError(t, err)
	assert.True(t, found, "deleting one user must keep the others")
}

func TestGateway_CorruptBlob(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set("carts", "{not json"))

	g := NewGateway(kv, "carts")

	var got snapshot
	_, err := g.Load(7, &got)
	assert.ErrorIs(t, err, ErrCorrupt)

	// saving over the corrupt blob starts a fresh map
	require.NoError(t, g.Save(7, snapshot{Total: 100}))
	found, err := g.Load(7, &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 100.0, got.Total)
}

func TestGateway_CorruptUserSlice(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set("carts", `{"7": "not an object"}`))

	g := NewGateway(kv, "carts")

	var got snapshot
	_, err := g.Load(7, &got)
	assert.ErrorIs(t, err, ErrCorrupt)
}

// flakyKV wraps a MemoryKV and fails reads on demand.
type flakyKV struct {
	*MemoryKV
	getErr error
}

func (f *flakyKV) Get(key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.MemoryKV.Get(key)
}

func TestGateway_ReadFailureAbortsSave(t *testing.T) {
	kv := &flakyKV{MemoryKV: NewMemoryKV()}
	g := NewGateway(kv, "carts")

	require.NoError(t, g.Save(7, snapshot{Total: 100}))
	require.NoError(t, g.Save(8, snapshot{Total: 20}))

	// a transient backend failure must not let a save replace the map
	kv.getErr = assert.AnError
	assert.Error(t, g.Save(9, snapshot{Total: 1}))
	assert.Error(t, g.Delete(7))

	kv.getErr = nil
	var got snapshot
	found, err := g.Load(7, &got)
	require.NoError(t, err)
	require.True(t, found, "user 7 must survive the failed write")
	assert.Equal(t, 100.0, got.Total)

	found, err = g.Load(8, &got)
	require.NoError(t, err)
	require.True(t, found, "user 8 must survive the failed write")
}

func TestGateway_SeparateKeysAreIndependent(t *testing.T) {
	kv := NewMemoryKV()
	carts := NewGateway(kv, "carts")
	wishlists := NewGateway(kv, "wishlists")

	require.NoError(t, carts.Save(7, snapshot{Total: 100}))
	require.NoError(t, wishlists.Save(7, snapshot{Total: 1}))

	var got snapshot
	found, err := carts.Load(7, &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 100.0, got.Total)
}
