package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_Immutable(t *testing.T) {
	data := map[string]any{"landed": true}
	s := NewSnapshot(data)
	data["landed"] = false
	assert.True(t, s.Bool("landed"))

	m := s.Map()
	m["landed"] = false
	assert.True(t, s.Bool("landed"))

	next := s.With("landed", false)
	assert.True(t, s.Bool("landed"))
	assert.False(t, next.Bool("landed"))
}

func TestSnapshot_Accessors(t *testing.T) {
	s := NewSnapshot(map[string]any{
		"landed":   true,
		"position": "gate",
		"fuel":     40,
		"fuel64":   int64(41),
		"whole":    42.0,
		"partial":  1.5,
	})

	assert.True(t, s.Bool("landed"))
	assert.False(t, s.Bool("position"))
	assert.Equal(t, "gate", s.String("position"))
	assert.Equal(t, "", s.String("fuel"))
	assert.Equal(t, 40, s.Int("fuel"))
	assert.Equal(t, 41, s.Int("fuel64"))
	assert.Equal(t, 42, s.Int("whole"))
	assert.Equal(t, 0, s.Int("partial"))
	assert.Equal(t, "gate", s.Get("position"))
	assert.Nil(t, s.Get("missing"))
	assert.True(t, s.Has("fuel"))
	assert.Equal(t, 6, s.Len())
	assert.Equal(t, []string{"fuel", "fuel64", "landed", "partial", "position", "whole"}, s.Keys())

	_, ok := s.Lookup("missing")
	assert.False(t, ok)
}

func TestSnapshot_MergeWithout(t *testing.T) {
	s := NewSnapshot(map[string]any{"a": 1, "b": 2})

	merged := s.Merge(map[string]any{"b": 3, "c": 4})
	assert.Equal(t, map[string]any{"a": 1, "b": 3, "c": 4}, merged.Map())
	assert.Equal(t, 2, s.Int("b"))

	removed := s.Without("a")
	assert.False(t, removed.Has("a"))
	assert.True(t, s.Has("a"))
	assert.Equal(t, s, s.Without("missing"))
}

func TestSnapshot_ZeroValue(t *testing.T) {
	var s Snapshot
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Get("x"))
	assert.Equal(t, map[string]any{}, s.Map())
	assert.True(t, s.With("x", 1).Has("x"))
}

func TestSnapshot_JSON(t *testing.T) {
	b, err := json.Marshal(NewSnapshot(map[string]any{"landed": true}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"landed":true}`, string(b))
}

func TestStatic(t *testing.T) {
	snap := NewSnapshot(map[string]any{"landed": true})
	assert.Equal(t, snap, NewStatic(snap).State())
}
