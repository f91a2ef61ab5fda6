package event_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	screrrors "github.com/randalmurphal/statecraft/pkg/statecraft/errors"
	"github.com/randalmurphal/statecraft/pkg/statecraft/event"
)

func TestNew_BuildsChain(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  []string
	}{
		{"root only", nil, []string{event.Root}},
		{"single type", []string{"a"}, []string{event.Root, "a"}},
		{"duplicates keep first", []string{"a", "b", "a", "c", "b"}, []string{event.Root, "a", "b", "c"}},
		{"leading root absorbed", []string{event.Root, "a"}, []string{event.Root, "a"}},
		{"empty names ignored", []string{"", "a", ""}, []string{event.Root, "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt := event.New(nil, tt.types...)
			assert.Equal(t, tt.want, evt.Chain())
			assert.Equal(t, tt.want[len(tt.want)-1], evt.Type())
		})
	}
}

func TestEvent_IsImmutable(t *testing.T) {
	data := map[string]any{"destination": "runway"}
	evt := event.New(data, "taxi")

	data["destination"] = "gate"
	assert.Equal(t, "runway", evt.Get("destination"))

	got := evt.Data()
	got["destination"] = "hangar"
	assert.Equal(t, "runway", evt.Get("destination"))

	chain := evt.Chain()
	chain[1] = "other"
	assert.Equal(t, "taxi", evt.Type())

	changed := evt.With("destination", "gate")
	assert.Equal(t, "runway", evt.Get("destination"))
	assert.Equal(t, "gate", changed.Get("destination"))
	assert.Equal(t, evt.Chain(), changed.Chain())
}

func TestEvent_NestedDataIsCopied(t *testing.T) {
	route := map[string]any{"via": []any{"alpha", map[string]any{"hold": "bravo"}}}
	crew := []string{"pilot", "copilot"}
	evt := event.New(map[string]any{"route": route, "crew": crew}, "taxi")

	route["via"].([]any)[1].(map[string]any)["hold"] = "charlie"
	crew[0] = "stowaway"
	want := map[string]any{
		"route": map[string]any{"via": []any{"alpha", map[string]any{"hold": "bravo"}}},
		"crew":  []string{"pilot", "copilot"},
	}
	assert.Equal(t, want, evt.Data())

	evt.Data()["route"].(map[string]any)["via"] = nil
	evt.Get("crew").([]string)[1] = "stowaway"
	v, ok := evt.Value("route")
	require.True(t, ok)
	v.(map[string]any)["extra"] = true
	assert.Equal(t, want, evt.Data())

	gate := map[string]any{"name": "B4"}
	changed := evt.With("gate", gate)
	gate["name"] = "C1"
	assert.Equal(t, map[string]any{"name": "B4"}, changed.Get("gate"))
	assert.Equal(t, want, evt.Data())
}

func TestEvent_ChainMatching(t *testing.T) {
	evt := event.New(nil, "a", "b", "c")

	for _, x := range []string{event.Root, "a", "b", "c"} {
		assert.True(t, evt.Is(x), "Is(%q)", x)
	}
	for _, x := range []string{"d", "", "ab"} {
		assert.False(t, evt.Is(x), "Is(%q)", x)
	}

	for _, x := range []string{event.Root, "a", "b"} {
		assert.True(t, evt.HasStrictAncestor(x), "HasStrictAncestor(%q)", x)
	}
	for _, x := range []string{"c", "d"} {
		assert.False(t, evt.HasStrictAncestor(x), "HasStrictAncestor(%q)", x)
	}
}

func TestEvent_Value(t *testing.T) {
	evt := event.New(map[string]any{"set": nil}, "a")

	v, ok := evt.Value("set")
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = evt.Value("unset")
	assert.False(t, ok)
	assert.Nil(t, evt.Get("unset"))
}

func TestEvent_Equal(t *testing.T) {
	a := event.New(map[string]any{"n": 1, "tags": []string{"x"}}, "a", "b")
	same := event.New(map[string]any{"n": 1, "tags": []string{"x"}}, "a", "b")
	otherData := event.New(map[string]any{"n": 2, "tags": []string{"x"}}, "a", "b")
	otherChain := event.New(map[string]any{"n": 1, "tags": []string{"x"}}, "a")

	assert.True(t, a.Equal(same))
	assert.False(t, a.Equal(otherData))
	assert.False(t, a.Equal(otherChain))
	assert.False(t, a.Equal(nil))
}

func TestEvent_Matches(t *testing.T) {
	ns := event.NewNamespace("flight")
	moved := ns.Define("Moved")
	evt := moved.MustNew(nil)

	tests := []struct {
		name    string
		operand any
		want    bool
	}{
		{"type in chain", "flight.moved", true},
		{"root", event.Root, true},
		{"unrelated type", "flight.landed", false},
		{"schema", moved, true},
		{"equal event", moved.MustNew(nil), true},
		{"different event", event.New(nil, "flight.moved", "x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evt.Matches(tt.operand)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvent_ComparisonRejectsInvalidOperands(t *testing.T) {
	evt := event.New(nil, "a")
	var nilEvent *event.Event
	var nilSchema *event.Schema

	operands := map[string]any{
		"nil":        nil,
		"nil event":  nilEvent,
		"nil schema": nilSchema,
		"int":        42,
		"struct":     struct{}{},
	}

	for name, operand := range operands {
		t.Run(name, func(t *testing.T) {
			_, err := evt.Matches(operand)
			assert.ErrorIs(t, err, screrrors.ErrInvalidArgument)

			_, err = evt.DescendsFrom(operand)
			assert.ErrorIs(t, err, screrrors.ErrInvalidArgument)

			_, err = evt.StrictlyDescendsFrom(operand)
			assert.ErrorIs(t, err, screrrors.ErrInvalidArgument)

			var argErr *screrrors.InvalidArgumentError
			assert.True(t, errors.As(err, &argErr))
		})
	}
}

func TestEvent_DescendsFrom(t *testing.T) {
	parent := event.New(nil, "a")
	child := event.New(nil, "a", "b")

	ok, err := child.DescendsFrom(parent)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = child.StrictlyDescendsFrom(parent)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = child.StrictlyDescendsFrom("b")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = child.DescendsFrom("b")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = parent.DescendsFrom(child)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvent_MapRoundTrip(t *testing.T) {
	events := []*event.Event{
		event.New(nil),
		event.New(map[string]any{"destination": "runway"}, "taxi"),
		event.New(map[string]any{"n": 3, "ok": true}, "a", "b", "c"),
	}

	for _, evt := range events {
		t.Run(evt.Type(), func(t *testing.T) {
			back, err := event.FromMap(evt.ToMap())
			require.NoError(t, err)
			assert.True(t, evt.Equal(back))
		})
	}
}

func TestFromMap(t *testing.T) {
	t.Run("accepts generic sequences", func(t *testing.T) {
		evt, err := event.FromMap(map[string]any{
			"event_types": []any{"event", "a", "b"},
			"data":        map[string]any{"k": "v"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{event.Root, "a", "b"}, evt.Chain())
		assert.Equal(t, "v", evt.Get("k"))
	})

	t.Run("missing types yields root event", func(t *testing.T) {
		evt, err := event.FromMap(map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, event.Root, evt.Type())
	})

	t.Run("rejects non-sequence types", func(t *testing.T) {
		_, err := event.FromMap(map[string]any{"event_types": "a"})
		assert.ErrorIs(t, err, screrrors.ErrInvalidArgument)
	})

	t.Run("rejects non-string type entries", func(t *testing.T) {
		_, err := event.FromMap(map[string]any{"event_types": []any{"a", 1}})
		assert.ErrorIs(t, err, screrrors.ErrInvalidArgument)
	})

	t.Run("rejects non-map data", func(t *testing.T) {
		_, err := event.FromMap(map[string]any{"data": []string{"x"}})
		assert.ErrorIs(t, err, screrrors.ErrInvalidArgument)
	})
}

func TestEvent_JSON(t *testing.T) {
	evt := event.New(map[string]any{"destination": "runway"}, "taxi")

	b, err := json.Marshal(evt)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event_types":["event","taxi"],"data":{"destination":"runway"}}`, string(b))

	var back event.Event
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, evt.Equal(&back))

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"event_types":1}`), &back), screrrors.ErrInvalidArgument)
}

func TestEvent_String(t *testing.T) {
	evt := event.New(map[string]any{"b": 2, "a": 1}, "taxi")
	assert.Equal(t, "taxi{a=1 b=2}", evt.String())
}
