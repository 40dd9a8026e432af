package sequencedmap_test

import (
	"encoding/json"
	"testing"

	"github.com/speakeasy-api/clientgen/sequencedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_SetGet_Success(t *testing.T) {
	t.Parallel()

	m := sequencedmap.New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	v, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, 3, m.Len())
}

func TestMap_Set_UpdateKeepsPosition(t *testing.T) {
	t.Parallel()

	m := sequencedmap.New(
		sequencedmap.NewElem("first", 1),
		sequencedmap.NewElem("second", 2),
		sequencedmap.NewElem("third", 3),
	)

	m.Set("second", 20)

	keys := []string{}
	vals := []int{}
	for k, v := range m.All() {
		keys = append(keys, k)
		vals = append(vals, v)
	}

	assert.Equal(t, []string{"first", "second", "third"}, keys)
	assert.Equal(t, []int{1, 20, 3}, vals)
}

func TestMap_IterationOrder(t *testing.T) {
	t.Parallel()

	m := sequencedmap.New[string, string]()
	m.Set("z", "1")
	m.Set("a", "2")
	m.Set("m", "3")

	keys := []string{}
	for k := range m.Keys() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)

	vals := []string{}
	for v := range m.Values() {
		vals = append(vals, v)
	}
	assert.Equal(t, []string{"1", "2", "3"}, vals)
}

func TestMap_Delete(t *testing.T) {
	t.Parallel()

	m := sequencedmap.New(
		sequencedmap.NewElem("a", 1),
		sequencedmap.NewElem("b", 2),
		sequencedmap.NewElem("c", 3),
	)

	m.Delete("b")
	m.Delete("missing")

	assert.Equal(t, 2, m.Len())
	assert.False(t, m.Has("b"))

	keys := []string{}
	for k := range m.Keys() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"a", "c"}, keys)
}

func TestMap_NilSafety(t *testing.T) {
	t.Parallel()

	var m *sequencedmap.Map[string, int]

	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Has("a"))
	assert.Equal(t, 0, m.GetOrZero("a"))

	for range m.All() {
		t.Fatal("expected no iteration over nil map")
	}

	m.Delete("a")
}

func TestFrom(t *testing.T) {
	t.Parallel()

	src := sequencedmap.New(
		sequencedmap.NewElem("x", 1),
		sequencedmap.NewElem("y", 2),
	)

	dst := sequencedmap.From(src.All())

	assert.Equal(t, 2, dst.Len())
	assert.Equal(t, 1, dst.GetOrZero("x"))
	assert.Equal(t, 2, dst.GetOrZero("y"))
}

func TestMap_MarshalJSON_PreservesOrder(t *testing.T) {
	t.Parallel()

	m := sequencedmap.New(
		sequencedmap.NewElem("zebra", 1),
		sequencedmap.NewElem("apple", 2),
		sequencedmap.NewElem("mango", 3),
	)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":1,"apple":2,"mango":3}`, string(data))
}

func TestMap_MarshalJSON_Nested(t *testing.T) {
	t.Parallel()

	inner := sequencedmap.New(sequencedmap.NewElem[string, any]("b", "x"))
	m := sequencedmap.New(sequencedmap.NewElem[string, any]("a", inner))

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"b":"x"}}`, string(data))
}
