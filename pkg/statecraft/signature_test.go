package statecraft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	screrrors "github.com/randalmurphal/statecraft/pkg/statecraft/errors"
)

func signatureClass() *Class {
	return NewClassFunc("navigate", noop,
		WithArgument("heading"),
		WithArgument("altitude", Optional()),
		WithKeyword("speed"),
		WithKeyword("runway", Required()),
		WithKeyword("tower", Required()),
	)
}

func TestNewSignature(t *testing.T) {
	sig := signatureClass().Signature()

	assert.Equal(t, 1, sig.MinArguments)
	assert.Equal(t, 2, sig.MaxArguments)
	assert.Equal(t, []string{"runway", "tower"}, sig.RequiredKeywords)
	assert.Equal(t, []string{"speed"}, sig.OptionalKeywords)
	assert.Equal(t, []string{"runway", "speed", "tower"}, sig.AllowedKeywords())
}

func TestNewSignature_Empty(t *testing.T) {
	sig := NewSignature(Properties{})
	ok, res := sig.Match(nil, nil)
	assert.True(t, ok)
	assert.Nil(t, res)
	assert.Empty(t, sig.AllowedKeywords())
}

func TestSignature_Match(t *testing.T) {
	sig := signatureClass().Signature()
	valid := map[string]any{"runway": "27L", "tower": "ktower"}

	tests := []struct {
		name   string
		args   []any
		kwargs map[string]any
		kinds  []string
	}{
		{"minimum", []any{90}, valid, nil},
		{"maximum", []any{90, 3000}, map[string]any{"runway": "27L", "tower": "k", "speed": 120}, nil},
		{"not enough arguments", nil, valid, []string{screrrors.KindNotEnoughArguments}},
		{"too many arguments", []any{1, 2, 3}, valid, []string{screrrors.KindTooManyArguments}},
		{"invalid keyword", []any{90}, map[string]any{"runway": "27L", "tower": "k", "flaps": 10}, []string{screrrors.KindInvalidKeywords}},
		{"missing keyword", []any{90}, map[string]any{"runway": "27L"}, []string{screrrors.KindMissingKeywords}},
		{
			"everything at once",
			[]any{1, 2, 3},
			map[string]any{"flaps": 10},
			[]string{screrrors.KindTooManyArguments, screrrors.KindInvalidKeywords, screrrors.KindMissingKeywords},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, res := sig.Match(tt.args, tt.kwargs)
			if tt.kinds == nil {
				assert.True(t, ok)
				assert.Nil(t, res)
				return
			}
			assert.False(t, ok)
			require.NotNil(t, res)
			assert.Equal(t, tt.kinds, res.Errors.Kinds())
		})
	}
}

func TestSignature_Match_Params(t *testing.T) {
	sig := signatureClass().Signature()
	_, res := sig.Match(nil, map[string]any{"tower": "k", "flaps": 10, "gear": "down"})
	require.NotNil(t, res)

	notEnough, ok := res.Errors.Find(screrrors.KindNotEnoughArguments)
	require.True(t, ok)
	assert.Equal(t, 1, notEnough.Params["expected"])
	assert.Equal(t, 0, notEnough.Params["actual"])

	invalid, ok := res.Errors.Find(screrrors.KindInvalidKeywords)
	require.True(t, ok)
	assert.Equal(t, []string{"runway", "speed", "tower"}, invalid.Params["expected"])
	assert.Equal(t, []string{"flaps", "gear", "tower"}, invalid.Params["actual"])
	assert.Equal(t, []string{"flaps", "gear"}, invalid.Params["invalid"])

	missing, ok := res.Errors.Find(screrrors.KindMissingKeywords)
	require.True(t, ok)
	assert.Equal(t, []string{"runway", "tower"}, missing.Params["expected"])
	assert.Equal(t, []string{"runway"}, missing.Params["missing"])
}

func TestProperties_Declarations(t *testing.T) {
	c := taxiClass()
	p := c.Properties()

	assert.Equal(t, "Taxi to a destination", p.Description)
	assert.Empty(t, p.Arguments)
	require.Contains(t, p.Keywords, "to")
	assert.Equal(t, Keyword{Name: "to", Required: true, Description: "where to taxi"}, p.Keywords["to"])
	assert.Equal(t, []Example{{Command: "$COMMAND to=runway", Description: "line up", Header: "Ground"}}, p.Examples)

	// Properties returns a copy.
	p.Keywords["extra"] = Keyword{Name: "extra"}
	assert.NotContains(t, c.Properties().Keywords, "extra")
}
