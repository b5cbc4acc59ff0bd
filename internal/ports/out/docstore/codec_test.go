package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_DropsCallerIDAndNormalizesShapes(t *testing.T) {
	t.Parallel()

	b, err := Encode(Document{
		IDField:     "caller-chosen",
		"title":     "Ski",
		"tags":      []string{"a", "b"},
		"is_active": true,
		"size":      nil,
	})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "caller-chosen")

	doc, err := Decode("id-1", b)
	require.NoError(t, err)
	assert.Equal(t, "id-1", doc[IDField])
	assert.Equal(t, []any{"a", "b"}, doc["tags"])
	assert.Equal(t, true, doc["is_active"])
	v, ok := doc["size"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestEncode_RejectsUnencodableValues(t *testing.T) {
	t.Parallel()

	_, err := Encode(Document{"bad": make(chan int)})
	require.Error(t, err)
}

func TestPredicate_NilMatchesAll(t *testing.T) {
	t.Parallel()

	var p Predicate
	assert.True(t, p.Matches(Document{}))
	p = func(d Document) bool { return d["x"] == "y" }
	assert.False(t, p.Matches(Document{}))
	assert.True(t, p.Matches(Document{"x": "y"}))
}
