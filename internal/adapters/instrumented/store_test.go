package instrumented

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lier-bua/gear-catalog-api/internal/adapters/contracttest"
	memdocstore "github.com/lier-bua/gear-catalog-api/internal/adapters/memory/docstore"
	"github.com/lier-bua/gear-catalog-api/internal/platform/metrics"
	"github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

type downStore struct{ docstore.Store }

func (downStore) Query(context.Context, docstore.Collection, docstore.Predicate) ([]docstore.Document, error) {
	return nil, fmt.Errorf("%w: refused", docstore.ErrUnavailable)
}

func TestContract_InstrumentedDocStore(t *testing.T) {
	contracttest.RunDocStore(t, func(t *testing.T) (docstore.Store, func()) {
		t.Helper()
		return NewStore(memdocstore.NewStore(), nil), nil
	})
}

func TestStore_RecordsOutcomes(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	ctx := context.Background()
	s := NewStore(memdocstore.NewStore(), m)
	_, err = s.Create(ctx, docstore.Members, docstore.Document{"name": "Ana"})
	require.NoError(t, err)
	_, err = s.Query(ctx, docstore.Members, nil)
	require.NoError(t, err)

	down := NewStore(downStore{}, m)
	_, err = down.Query(ctx, docstore.Equipment, nil)
	require.Error(t, err)

	expected := `
# HELP gear_catalog_store_operations_total Document store operations by operation, collection and outcome.
# TYPE gear_catalog_store_operations_total counter
gear_catalog_store_operations_total{collection="equipment",operation="query",outcome="unavailable"} 1
gear_catalog_store_operations_total{collection="member",operation="create",outcome="ok"} 1
gear_catalog_store_operations_total{collection="member",operation="query",outcome="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "gear_catalog_store_operations_total"))
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	assert.Equal(t, metrics.OutcomeOK, Outcome(nil))
	assert.Equal(t, metrics.OutcomeUnavailable, Outcome(fmt.Errorf("%w: x", docstore.ErrUnavailable)))
	assert.Equal(t, metrics.OutcomeWriteFailed, Outcome(fmt.Errorf("%w: x", docstore.ErrWriteFailed)))
	assert.Equal(t, metrics.OutcomeError, Outcome(errors.New("x")))
}
