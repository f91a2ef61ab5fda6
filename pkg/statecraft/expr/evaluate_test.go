package expr

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	vars := map[string]any{
		"landed":   true,
		"airborne": false,
		"fuel":     40,
		"altitude": 1200.5,
		"status":   "holding",
		"empty":    "",
		"cargo":    []any{"mail", "crates"},
		"crew":     []string{"pilot", "navigator"},
		"aircraft": map[string]any{
			"model": "cessna",
			"gear":  map[string]any{"down": true},
		},
	}

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"bool equality", "landed == true", true},
		{"bool equality false", "airborne == true", false},
		{"bare truthy", "landed", true},
		{"bare falsy", "airborne", false},
		{"not keyword", "not airborne", true},
		{"bang", "!landed", false},
		{"double negation", "not not landed", true},
		{"numeric equality across types", "fuel == 40.0", true},
		{"not equal", "status != 'holding'", false},
		{"double quoted", `status == "holding"`, true},
		{"greater", "fuel > 10", true},
		{"less or equal", "fuel <= 39", false},
		{"float compare", "altitude >= 1200", true},
		{"negative literal", "fuel > -1", true},
		{"and", "landed and fuel > 10", true},
		{"and short", "landed && airborne", false},
		{"or", "airborne or fuel > 10", true},
		{"or symbol", "airborne || empty", false},
		{"precedence and binds tighter", "landed or airborne and airborne", true},
		{"parentheses", "(landed or airborne) and airborne", false},
		{"string contains", "status contains 'hold'", true},
		{"slice contains", "cargo contains 'mail'", true},
		{"string slice contains", "crew contains 'pilot'", true},
		{"slice not contains", "cargo contains 'fuel'", false},
		{"dotted path", "aircraft.model == 'cessna'", true},
		{"nested path", "aircraft.gear.down", true},
		{"unknown path is nil", "aircraft.wings == nil", true},
		{"unknown variable falsy", "missing", false},
		{"empty string falsy", "empty", false},
		{"non-empty slice truthy", "cargo", true},
		{"null literal", "null", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := Compile(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cond.Eval(vars))
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		msg  string
	}{
		{"empty", "   ", "empty condition"},
		{"unterminated string", "status == 'open", "unterminated string"},
		{"dangling operator", "fuel >", "unexpected end of condition"},
		{"missing paren", "(landed or airborne", "expected )"},
		{"trailing tokens", "landed airborne", `unexpected "airborne"`},
		{"bad character", "fuel # 2", "unexpected character #"},
		{"keyword as operand", "and landed", `unexpected keyword "and"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expr)
			require.Error(t, err)

			var syntaxErr *SyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, tt.expr, syntaxErr.Src)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestCondition_Reuse(t *testing.T) {
	cond := MustCompile("landed == true")
	assert.Equal(t, "landed == true", cond.Source())

	assert.True(t, cond.Eval(map[string]any{"landed": true}))
	assert.False(t, cond.Eval(map[string]any{"landed": false}))
	assert.False(t, cond.Eval(nil))

	assert.Panics(t, func() { MustCompile("(") })
}

// mapper exposes its state through Map(), like a state snapshot.
type mapper map[string]any

func (m mapper) Map() map[string]any { return m }

func TestLookup(t *testing.T) {
	vars := map[string]any{
		"flat.key": "direct",
		"a":        map[string]any{"b": map[string]any{"c": 3}},
		"snap":     mapper{"landed": true},
		"scalar":   5,
	}

	v, ok := Lookup(vars, "flat.key")
	assert.True(t, ok)
	assert.Equal(t, "direct", v)

	v, ok = Lookup(vars, "a.b.c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = Lookup(vars, "snap.landed")
	assert.True(t, ok)
	assert.Equal(t, true, v)

	_, ok = Lookup(vars, "scalar.x")
	assert.False(t, ok)

	_, ok = Lookup(vars, "a.missing")
	assert.False(t, ok)
}

func TestWithOperator(t *testing.T) {
	c := New(WithOperator("startswith", func(l, r any) bool {
		return strings.HasPrefix(format(l), format(r))
	}))

	cond := c.MustCompile("status startswith 'hold'")
	assert.True(t, cond.Eval(map[string]any{"status": "holding"}))
	assert.False(t, cond.Eval(map[string]any{"status": "cruising"}))

	_, err := Compile("status startswith 'hold'")
	assert.Error(t, err, "default compiler does not know custom operators")
}

func TestIsTruthy(t *testing.T) {
	truthy := []any{true, "x", 1, int64(-1), 0.5, uint(2), []any{1}, map[string]any{"k": 1}, struct{}{}}
	falsy := []any{nil, false, "", 0, int64(0), 0.0, uint(0), []any{}, []string{}, map[string]any{}}

	for _, v := range truthy {
		assert.True(t, IsTruthy(v), "%#v", v)
	}
	for _, v := range falsy {
		assert.False(t, IsTruthy(v), "%#v", v)
	}
}

func TestToFloat64(t *testing.T) {
	assert.Equal(t, 3.0, ToFloat64(3))
	assert.Equal(t, 2.5, ToFloat64("2.5"))
	assert.Equal(t, 0.0, ToFloat64("abc"))
	assert.Equal(t, 0.0, ToFloat64(nil))
}
