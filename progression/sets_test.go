package progression

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntSetAddIsIdempotent(t *testing.T) {
	s := NewIntSet(0)

	assert.True(t, s.Add(2))
	assert.False(t, s.Add(2))
	assert.Equal(t, []int{0, 2}, s.Values())
}

func TestIntSetJSONRoundTrip(t *testing.T) {
	s := NewIntSet(3, 1, 2, 1)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2,3]`, string(b))

	var out IntSet
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, s, out)
}

func TestIntSetScanValue(t *testing.T) {
	s := NewIntSet(0, 4)

	v, err := s.Value()
	require.NoError(t, err)

	var out IntSet
	require.NoError(t, out.Scan(v))
	assert.Equal(t, s, out)

	var fromNil IntSet
	require.NoError(t, fromNil.Scan(nil))
	assert.Empty(t, fromNil.Values())
}

func TestStringSetDeduplicates(t *testing.T) {
	s := NewStringSet("lesson-1", "lesson-2", "lesson-1")

	assert.Equal(t, []string{"lesson-1", "lesson-2"}, s.Values())
	assert.True(t, s.Has("lesson-2"))

	s.Remove("lesson-2")
	assert.False(t, s.Has("lesson-2"))
}

func TestStringSetScanBytes(t *testing.T) {
	var s StringSet
	require.NoError(t, s.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, []string{"a", "b"}, s.Values())

	assert.Error(t, s.Scan(42))
}
