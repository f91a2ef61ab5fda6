package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/randalmurphal/statecraft/pkg/statecraft/config"
)

func TestNewValues(t *testing.T) {
	assert.NotNil(t, config.NewValues(nil).Raw())
	assert.False(t, config.NewValues(nil).Has("x"))
}

func TestValues_Accessors(t *testing.T) {
	v := config.NewValues(map[string]any{
		"name":     "take off",
		"secret":   true,
		"count":    3,
		"count64":  int64(4),
		"whole":    5.0,
		"fraction": 5.5,
		"ratio":    0.25,
		"timeout":  "30s",
		"seconds":  2,
		"aliases":  []any{"launch", "depart"},
		"mixed":    []any{"a", 1},
		"single":   "solo",
		"metadata": map[string]any{"category": "flight"},
		"commands": []any{map[string]any{"name": "a"}, "skip", map[string]any{"name": "b"}},
	})

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", v.String("name", "x"), "take off"},
		{"string default on type mismatch", v.String("secret", "x"), "x"},
		{"string default on missing", v.String("missing", "x"), "x"},
		{"bool", v.Bool("secret", false), true},
		{"bool default", v.Bool("name", false), false},
		{"int", v.Int("count", 0), 3},
		{"int from int64", v.Int("count64", 0), 4},
		{"int from whole float", v.Int("whole", 0), 5},
		{"int rejects fraction", v.Int("fraction", -1), -1},
		{"float", v.Float("ratio", 0), 0.25},
		{"float from int", v.Float("count", 0), 3.0},
		{"duration string", v.Duration("timeout", 0), 30 * time.Second},
		{"duration seconds", v.Duration("seconds", 0), 2 * time.Second},
		{"duration default", v.Duration("name", time.Minute), time.Minute},
		{"string slice", v.StringSlice("aliases", nil), []string{"launch", "depart"}},
		{"string slice from string", v.StringSlice("single", nil), []string{"solo"}},
		{"string slice mixed", v.StringSlice("mixed", []string{"d"}), []string{"d"}},
		{"sub", v.Sub("metadata").String("category", ""), "flight"},
		{"sub missing", v.Sub("missing").Has("category"), false},
		{"list skips non-maps", len(v.List("commands")), 2},
		{"list missing", len(v.List("missing")), 0},
		{"any", v.Any("count", nil), 3},
		{"any default", v.Any("missing", "d"), "d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
