package contracttest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	docstoreport "github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

type CleanupFunc = func()

type DocStoreFactory func(t *testing.T) (docstoreport.Store, CleanupFunc)

// RunDocStore exercises the behavior every docstore.Store adapter must share.
// Collections are namespaced per run so a shared backing database is fine.
func RunDocStore(t *testing.T, newStore DocStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	ns := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	coll := func(name string) docstoreport.Collection {
		return docstoreport.Collection("contract_" + ns + "_" + name)
	}

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	// Empty collection.
	empty, err := store.Query(ctx, coll("empty"), nil)
	if err != nil {
		t.Fatalf("Query empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no documents, got %d", len(empty))
	}

	// Create assigns distinct ids; Query returns insertion order with IDField set.
	items := coll("items")
	titles := []string{"Ski Set", "Tent", "Kayak", "Snowshoes"}
	ids := make([]string, 0, len(titles))
	for i, title := range titles {
		id, err := store.Create(ctx, items, docstoreport.Document{
			docstoreport.IDField: "caller-chosen",
			"title":              title,
			"rank":               i,
			"tags":               []string{"t" + fmt.Sprint(i)},
			"is_active":          i%2 == 0,
			"size":               nil,
		})
		if err != nil {
			t.Fatalf("Create %q: %v", title, err)
		}
		if id == "" || id == "caller-chosen" {
			t.Fatalf("Create %q returned id %q", title, id)
		}
		for _, prev := range ids {
			if prev == id {
				t.Fatalf("duplicate id %q", id)
			}
		}
		ids = append(ids, id)
	}

	all, err := store.Query(ctx, items, nil)
	if err != nil {
		t.Fatalf("Query all: %v", err)
	}
	if len(all) != len(titles) {
		t.Fatalf("Query all len=%d, want %d", len(all), len(titles))
	}
	for i, d := range all {
		if d[docstoreport.IDField] != ids[i] {
			t.Fatalf("doc %d id=%v, want %s", i, d[docstoreport.IDField], ids[i])
		}
		if d["title"] != titles[i] {
			t.Fatalf("doc %d title=%v, want %s (insertion order)", i, d["title"], titles[i])
		}
	}

	// Values come back in encoding/json shapes.
	first := all[0]
	if rank, ok := first["rank"].(float64); !ok || rank != 0 {
		t.Fatalf("rank=%#v, want float64(0)", first["rank"])
	}
	tags, ok := first["tags"].([]any)
	if !ok || len(tags) != 1 || tags[0] != "t0" {
		t.Fatalf("tags=%#v, want []any{\"t0\"}", first["tags"])
	}
	if v, ok := first["size"]; !ok || v != nil {
		t.Fatalf("size=%#v present=%v, want explicit null", v, ok)
	}
	if first["is_active"] != true {
		t.Fatalf("is_active=%#v", first["is_active"])
	}

	// Predicate filtering keeps order.
	active, err := store.Query(ctx, items, func(d docstoreport.Document) bool {
		return d["is_active"] == true
	})
	if err != nil {
		t.Fatalf("Query active: %v", err)
	}
	if len(active) != 2 || active[0]["title"] != "Ski Set" || active[1]["title"] != "Kayak" {
		t.Fatalf("unexpected active docs: %+v", active)
	}

	// Repeated query over unchanged data is stable.
	again, err := store.Query(ctx, items, nil)
	if err != nil {
		t.Fatalf("Query again: %v", err)
	}
	for i := range all {
		if again[i][docstoreport.IDField] != all[i][docstoreport.IDField] {
			t.Fatalf("order changed between queries at %d", i)
		}
	}

	// Collections are isolated.
	other := coll("other")
	if _, err := store.Create(ctx, other, docstoreport.Document{"title": "Other"}); err != nil {
		t.Fatalf("Create other: %v", err)
	}
	stillFour, err := store.Query(ctx, items, nil)
	if err != nil {
		t.Fatalf("Query items: %v", err)
	}
	if len(stillFour) != len(titles) {
		t.Fatalf("items len=%d after writing another collection", len(stillFour))
	}

	// Collections lists non-empty collections, sorted.
	cs, err := store.Collections(ctx)
	if err != nil {
		t.Fatalf("Collections: %v", err)
	}
	var mine []docstoreport.Collection
	for i, c := range cs {
		if i > 0 && cs[i-1] > c {
			t.Fatalf("collections not sorted: %v", cs)
		}
		if strings.HasPrefix(string(c), "contract_"+ns+"_") {
			mine = append(mine, c)
		}
	}
	if len(mine) != 2 || mine[0] != items || mine[1] != other {
		t.Fatalf("collections=%v, want [%s %s]", mine, items, other)
	}

	// Concurrent creates each land exactly once.
	burst := coll("burst")
	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := store.Create(ctx, burst, docstoreport.Document{"n": i}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent Create: %v", err)
	}
	got, err := store.Query(ctx, burst, nil)
	if err != nil {
		t.Fatalf("Query burst: %v", err)
	}
	if len(got) != n {
		t.Fatalf("burst len=%d, want %d", len(got), n)
	}
}
