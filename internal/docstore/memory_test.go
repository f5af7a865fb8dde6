package docstore

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryReadWrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, ok, err := store.Read(ctx, "sales")
	require.NoError(t, err)
	assert.False(t, ok, "empty store has no sales")

	require.NoError(t, store.Write(ctx, "sales/0xabc/launches/k1", map[string]interface{}{"saleName": "One"}))
	require.NoError(t, store.Write(ctx, "sales/0xdef/launches/k2", map[string]interface{}{"saleName": "Two"}))

	var tree map[string]map[string]map[string]map[string]string
	ok, err = ReadInto(ctx, store, "sales", &tree)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "One", tree["0xabc"]["launches"]["k1"]["saleName"])
	assert.Equal(t, "Two", tree["0xdef"]["launches"]["k2"]["saleName"])

	raw, ok, err := store.Read(ctx, "/sales/0xabc/launches/k1/saleName/")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `"One"`, string(raw))

	// Writes replace the whole subtree.
	require.NoError(t, store.Write(ctx, "sales/0xabc", map[string]interface{}{"launches": map[string]interface{}{}}))
	_, ok, err = store.Read(ctx, "sales/0xabc/launches/k1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Write(ctx, "sales/0xdef", nil))
	_, ok, err = store.Read(ctx, "sales/0xdef")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryPushGeneratesDistinctKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		key, err := store.Push(ctx, "sales/0xabc/history", map[string]int{"n": i})
		require.NoError(t, err)
		require.False(t, seen[key], "duplicate push key %s", key)
		seen[key] = true
	}

	raw, ok, err := store.Read(ctx, "sales/0xabc/history")
	require.NoError(t, err)
	require.True(t, ok)

	var children map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &children))
	assert.Len(t, children, 50)
}

func TestMemoryRejectsRootWrites(t *testing.T) {
	store := NewMemory()
	assert.ErrorIs(t, store.Write(context.Background(), "/", 1), ErrInvalidPath)

	_, err := store.Push(context.Background(), "", 1)
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestPaths(t *testing.T) {
	wallet := "0xABCdef0000000000000000000000000000000001"
	assert.Equal(t, "users/0xabcdef0000000000000000000000000000000001/tokens", UserTokensPath(wallet))
	assert.Equal(t, "users/0xabcdef0000000000000000000000000000000001/tokens/0xToken", UserTokenPath(wallet, "0xToken"))
	assert.Equal(t, "sales/0xabcdef0000000000000000000000000000000001/launches", LaunchesPath(wallet))
	assert.Equal(t, "sales/0xabcdef0000000000000000000000000000000001/history", HistoryPath(" "+wallet))
}
