package localstate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpo-portal/tpo-ui-api/internal/ports"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	store := New(path)

	require.NoError(t, store.Set(ctx, "user_data", []byte(`{"id":1}`)))
	require.NoError(t, store.Set(ctx, "auth_token", []byte("tok")))

	got, err := store.Get(ctx, "user_data")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(got))

	// A fresh store over the same file sees the same data.
	reopened := New(path)
	got, err = reopened.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.Equal(t, "tok", string(got))
}

func TestStore_MissingKey(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "state.json"))
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), "state.json"))

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	require.NoError(t, store.Delete(ctx, "k"))
	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)

	// Deleting an absent key is a no-op.
	assert.NoError(t, store.Delete(ctx, "k"))
}

func TestStore_CorruptFileReadsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

	store := New(path)
	_, err := store.Get(ctx, "user_data")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)

	// Writing after corruption recovers the file.
	require.NoError(t, store.Set(ctx, "user_data", []byte(`{}`)))
	got, err := store.Get(ctx, "user_data")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))
}
