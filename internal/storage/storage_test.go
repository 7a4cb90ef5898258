package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, store.Set(ctx, "k", record{Name: "a", Count: 2}))

	var got record
	require.NoError(t, store.Get(ctx, "k", &got))
	assert.Equal(t, record{Name: "a", Count: 2}, got)
}

func TestMemory_MissingKey(t *testing.T) {
	store := NewMemory()

	var out string
	err := store.Get(context.Background(), "ontbreekt", &out)
	assert.ErrorIs(t, err, ErrNoValue)
}

func TestMemory_SetReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Set(ctx, "k", []string{"een"}))
	require.NoError(t, store.Set(ctx, "k", []string{"twee"}))

	var got []string
	require.NoError(t, store.Get(ctx, "k", &got))
	assert.Equal(t, []string{"twee"}, got)
}
