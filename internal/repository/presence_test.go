package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gamehub-backend/testing/suite"
)

func TestPresenceRepository_Bind(t *testing.T) {
	ctx, st := suite.New(t)

	presenceRepo := NewPresenceRepository(st.Storage)

	// Given: a named player on a live connection
	err := presenceRepo.Bind(ctx, "alice", "conn-1")

	// Then: both directions of the mapping resolve
	require.NoError(t, err)

	connID, err := presenceRepo.ConnID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "conn-1", connID)

	name, err := presenceRepo.Name(ctx, "conn-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", name)
}

func TestPresenceRepository_Rebind(t *testing.T) {
	ctx, st := suite.New(t)

	presenceRepo := NewPresenceRepository(st.Storage)

	// Given: alice bound to an old connection
	require.NoError(t, presenceRepo.Bind(ctx, "alice", "conn-1"))

	// When: she reconnects under a new connection
	require.NoError(t, presenceRepo.Bind(ctx, "alice", "conn-2"))

	// Then: her name resolves to the new connection
	connID, err := presenceRepo.ConnID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "conn-2", connID)
}

func TestPresenceRepository_NotFound(t *testing.T) {
	ctx, st := suite.New(t)

	presenceRepo := NewPresenceRepository(st.Storage)

	t.Run("Unknown name", func(t *testing.T) {
		_, err := presenceRepo.ConnID(ctx, "nobody")

		require.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("Unknown connection", func(t *testing.T) {
		_, err := presenceRepo.Name(ctx, "conn-99")

		require.ErrorIs(t, err, ErrPlayerNotFound)
	})
}

func TestPresenceRepository_Unbind(t *testing.T) {
	ctx, st := suite.New(t)

	presenceRepo := NewPresenceRepository(st.Storage)

	// Given: a bound player
	require.NoError(t, presenceRepo.Bind(ctx, "alice", "conn-1"))

	// When: the binding is removed
	require.NoError(t, presenceRepo.Unbind(ctx, "alice", "conn-1"))

	// Then: neither direction resolves anymore
	_, err := presenceRepo.ConnID(ctx, "alice")
	require.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = presenceRepo.Name(ctx, "conn-1")
	require.ErrorIs(t, err, ErrPlayerNotFound)
}
