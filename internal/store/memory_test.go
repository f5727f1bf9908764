package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BNDS-Robin23/spanish-rogue/internal/game"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	s := game.NewSession(nil, nil)
	require.NoError(t, st.Save(ctx, s))

	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Same(t, s, got)

	_, err = st.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
