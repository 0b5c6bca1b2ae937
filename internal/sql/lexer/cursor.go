package lexer

// Cursor is a position-addressable view over a token sequence that ends
// with TokenEOF. It never moves past the EOF sentinel.
type Cursor struct {
	tokens []Token
	pos    int
}

// NewCursor wraps tokens produced by Tokenize.
func NewCursor(tokens []Token) *Cursor {
	if n := len(tokens); n == 0 || tokens[n-1].Type != TokenEOF {
		end := 0
		if n > 0 {
			end = tokens[n-1].End
		}
		tokens = append(tokens, Token{Type: TokenEOF, Begin: end, End: end})
	}
	return &Cursor{tokens: tokens}
}

// Read returns the current token.
func (c *Cursor) Read() Token { return c.tokens[c.pos] }

// Peek returns the token after the current one.
func (c *Cursor) Peek() Token {
	if c.pos+1 < len(c.tokens) {
		return c.tokens[c.pos+1]
	}
	return c.tokens[len(c.tokens)-1]
}

// Consume returns the current token and advances, staying on EOF.
func (c *Cursor) Consume() Token {
	t := c.tokens[c.pos]
	if t.Type != TokenEOF {
		c.pos++
	}
	return t
}

// Pos returns the index of the current token.
func (c *Cursor) Pos() int { return c.pos }

// At returns the token at index i.
func (c *Cursor) At(i int) (Token, bool) {
	if i < 0 || i >= len(c.tokens) {
		return Token{}, false
	}
	return c.tokens[i], true
}

// Prev returns the most recently consumed token, or the current one at the start.
func (c *Cursor) Prev() Token {
	if c.pos == 0 {
		return c.tokens[0]
	}
	return c.tokens[c.pos-1]
}
