package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_ReadPeekConsume(t *testing.T) {
	toks, err := Tokenize("insert into t")
	require.NoError(t, err)
	c := NewCursor(toks)

	assert.True(t, c.Read().IsKeyword(KwInsert))
	assert.True(t, c.Peek().IsKeyword(KwInto))
	assert.True(t, c.Consume().IsKeyword(KwInsert))
	assert.Equal(t, 1, c.Pos())
	assert.True(t, c.Prev().IsKeyword(KwInsert))

	c.Consume()
	assert.Equal(t, "t", c.Consume().Text)
	assert.Equal(t, TokenEOF, c.Read().Type)
	assert.Equal(t, TokenEOF, c.Peek().Type)
}

func TestCursor_StaysOnEOF(t *testing.T) {
	toks, err := Tokenize("")
	require.NoError(t, err)
	c := NewCursor(toks)

	for i := 0; i < 3; i++ {
		assert.Equal(t, TokenEOF, c.Consume().Type)
	}
	assert.Equal(t, 0, c.Pos())
}

func TestCursor_AppendsMissingEOF(t *testing.T) {
	c := NewCursor([]Token{{Type: TokenIdentifier, Text: "x", Begin: 0, End: 1}})
	c.Consume()
	tok := c.Read()
	assert.Equal(t, TokenEOF, tok.Type)
	assert.Equal(t, 1, tok.Begin)

	_, ok := c.At(5)
	assert.False(t, ok)
}
