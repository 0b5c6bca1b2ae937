package sqlerr

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex_EndDefaultsToStart(t *testing.T) {
	e := Lex("character not understood", 4)
	assert.Equal(t, 4, e.Start)
	assert.Equal(t, 4, e.End)
	assert.Equal(t, KindLex, e.Kind)
}

func TestAs_Wrapped(t *testing.T) {
	base := Exec(Span{Start: 1, End: 3}, "table %s does not exist", "x")
	wrapped := fmt.Errorf("exec: %w", base)

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "table x does not exist", got.Message)
	assert.True(t, IsKind(wrapped, KindExec))
	assert.False(t, IsKind(wrapped, KindParse))
}

func TestHighlight(t *testing.T) {
	src := "select * from nope"
	e := Exec(Span{Start: 14, End: 18}, "table nope does not exist")

	out := Highlight(src, e)
	assert.Equal(t, "select * from "+ansiBright+ansiUnderline+ansiRed+"nope"+ansiReset, out)
	assert.Equal(t, "nope", Excerpt(src, e))
}

func TestHighlight_ZeroWidthAndClamp(t *testing.T) {
	out := Highlight("ab", Lex("x", 5))
	assert.Equal(t, "ab"+ansiBright+ansiUnderline+ansiRed+"^"+ansiReset, out)
}

func TestError_JSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(Exec(Span{Start: 3, End: 7}, "column %s is not nullable", "a"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"execution","message":"column a is not nullable","start":3,"end":7}`, string(b))

	var back Error
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, KindExec, back.Kind)
	assert.Equal(t, Span{Start: 3, End: 7}, back.Span())

	require.Error(t, json.Unmarshal([]byte(`{"kind":"nope"}`), &back))
}
