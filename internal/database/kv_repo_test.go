package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwillems/mailintake/internal/storage"
)

func TestKV_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewKV(newTestDB(t))

	require.NoError(t, kv.Set(ctx, "k", []string{"een", "twee"}))

	var got []string
	require.NoError(t, kv.Get(ctx, "k", &got))
	assert.Equal(t, []string{"een", "twee"}, got)
}

func TestKV_MissingKey(t *testing.T) {
	kv := NewKV(newTestDB(t))

	var out []string
	err := kv.Get(context.Background(), "ontbreekt", &out)
	assert.ErrorIs(t, err, storage.ErrNoValue)
}

func TestKV_SetReplaces(t *testing.T) {
	ctx := context.Background()
	kv := NewKV(newTestDB(t))

	require.NoError(t, kv.Set(ctx, "k", "eerste"))
	require.NoError(t, kv.Set(ctx, "k", "tweede"))

	var got string
	require.NoError(t, kv.Get(ctx, "k", &got))
	assert.Equal(t, "tweede", got)
}

func TestKV_BacksCustomerResolver(t *testing.T) {
	ctx := context.Background()
	kv := NewKV(newTestDB(t))

	// The resolver collection survives a round trip through the table
	require.NoError(t, kv.Set(ctx, "customer_email_mappings", []map[string]string{
		{"email": "jan@klant.nl", "customer_id": "c1"},
	}))

	var mappings []map[string]string
	require.NoError(t, kv.Get(ctx, "customer_email_mappings", &mappings))
	require.Len(t, mappings, 1)
	assert.Equal(t, "c1", mappings[0]["customer_id"])
}
