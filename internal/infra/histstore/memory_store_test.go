package histstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/finbuddy/finance-advisor/internal/domain/advisor"
)

func TestMemoryStoreKeepsMostRecent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(3)

	for i := 0; i < 5; i++ {
		msg := advisor.Message{ID: fmt.Sprintf("m%d", i), Role: advisor.RoleUser, Text: fmt.Sprintf("q%d", i)}
		require.NoError(t, store.Append(ctx, "u1", msg))
	}

	msgs, err := store.List(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	require.Equal(t, "m2", msgs[0].ID)
	require.Equal(t, "m4", msgs[2].ID)
}

func TestMemoryStoreListLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	for i := 0; i < 4; i++ {
		require.NoError(t, store.Append(ctx, "u1", advisor.Message{ID: fmt.Sprintf("m%d", i)}))
	}

	msgs, err := store.List(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "m2", msgs[0].ID)
	require.Equal(t, "m3", msgs[1].ID)
}

func TestMemoryStoreIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	require.NoError(t, store.Append(ctx, "u1", advisor.Message{ID: "a"}))
	require.NoError(t, store.Append(ctx, "u2", advisor.Message{ID: "b"}))

	msgs, err := store.List(ctx, "u2", 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "b", msgs[0].ID)
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	require.NoError(t, store.Append(ctx, "u1", advisor.Message{ID: "a"}))
	require.NoError(t, store.Clear(ctx, "u1"))

	msgs, err := store.List(ctx, "u1", 0)
	require.NoError(t, err)
	require.Empty(t, msgs)
}
