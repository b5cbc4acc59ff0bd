package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/lier-bua/gear-catalog-api/internal/adapters/postgres"
	"github.com/lier-bua/gear-catalog-api/internal/adapters/postgres/testutil"
	docstoreport "github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

func TestStore_NilPool_Unavailable(t *testing.T) {
	t.Parallel()

	s := NewStore(nil)
	ctx := context.Background()

	_, err := s.Create(ctx, docstoreport.Members, docstoreport.Document{"name": "x"})
	assert.ErrorIs(t, err, docstoreport.ErrUnavailable)
	_, err = s.Query(ctx, docstoreport.Members, nil)
	assert.ErrorIs(t, err, docstoreport.ErrUnavailable)
	assert.ErrorIs(t, s.Ping(ctx), docstoreport.ErrUnavailable)
}

func TestStore_ClosedPool_Unavailable(t *testing.T) {
	dsn := testutil.DatabaseURL(t)
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{MaxConns: 1})
	require.NoError(t, err)
	s := NewStore(pool)
	pool.Close()

	_, err = s.Create(ctx, docstoreport.Reports, docstoreport.Document{"type": "repair"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, docstoreport.ErrUnavailable), "err=%v", err)

	_, err = s.Query(ctx, docstoreport.Equipment, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, docstoreport.ErrUnavailable), "err=%v", err)
}
