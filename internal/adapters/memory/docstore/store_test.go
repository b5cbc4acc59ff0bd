package docstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

func TestStore_CreateUnencodable_WriteFailedAndNothingStored(t *testing.T) {
	t.Parallel()

	s := NewStore()
	_, err := s.Create(context.Background(), docstore.Reports, docstore.Document{"bad": func() {}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, docstore.ErrWriteFailed), "err=%v", err)
	assert.Equal(t, 0, s.Len(docstore.Reports))
}

func TestStore_ConcurrentCreates(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := s.Create(ctx, docstore.Reservations, docstore.Document{"equipment_id": "eq-1", "n": i})
			if err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			ids <- id
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	docs, err := s.Query(ctx, docstore.Reservations, nil)
	require.NoError(t, err)
	assert.Len(t, docs, n)
}

func TestStore_ReturnedDocumentsAreCopies(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ctx := context.Background()
	in := docstore.Document{"title": "Ski"}
	_, err := s.Create(ctx, docstore.Equipment, in)
	require.NoError(t, err)
	in["title"] = "changed after create"

	docs, err := s.Query(ctx, docstore.Equipment, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	docs[0]["title"] = "changed after query"

	again, err := s.Query(ctx, docstore.Equipment, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ski", again[0]["title"], fmt.Sprintf("store leaked a shared map: %v", again[0]))
}
