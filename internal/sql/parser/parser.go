// Package parser turns a token stream into statement trees. It knows
// nothing about the store: name resolution against existing tables is
// left to the executor.
package parser

import (
	"strings"

	"github.com/tuannm99/novarel/internal/sql/lexer"
	"github.com/tuannm99/novarel/internal/sqlerr"
)

type parser struct {
	c *lexer.Cursor
}

// Parse parses the statement starting at the cursor. On success the cursor
// sits on the first token after the statement, which is not consumed.
func Parse(c *lexer.Cursor) (Statement, error) {
	tok := c.Read()
	if tok.Type != lexer.TokenKeyword {
		return nil, sqlerr.Parse(tok.Span(), "statement has to begin with a keyword")
	}

	p := &parser{c: c}
	switch tok.Keyword {
	case lexer.KwCreate:
		return p.parseCreateTable()
	case lexer.KwInsert:
		return p.parseInsert()
	case lexer.KwSelect:
		return p.parseSelect()
	default:
		return nil, sqlerr.Parse(tok.Span(), "no statement begins with the keyword %s", upper(tok.Keyword))
	}
}

// ParseAll parses every statement of a script. Statements are separated by
// one or more ';'; empty statements are skipped. Nothing is returned unless
// the whole script parses.
func ParseAll(c *lexer.Cursor) ([]Statement, error) {
	var out []Statement
	for {
		for c.Read().Type == lexer.TokenSemicolon {
			c.Consume()
		}
		if c.Read().Type == lexer.TokenEOF {
			return out, nil
		}

		stmt, err := Parse(c)
		if err != nil {
			return nil, err
		}
		if tok := c.Read(); tok.Type != lexer.TokenSemicolon && tok.Type != lexer.TokenEOF {
			return nil, sqlerr.Parse(tok.Span(), "%s statement is already finished", StatementName(stmt))
		}
		out = append(out, stmt)
	}
}

// StatementName is the keyword phrase a statement starts with.
func StatementName(s Statement) string {
	switch s.(type) {
	case *CreateTableStmt:
		return "CREATE TABLE"
	case *InsertStmt:
		return "INSERT"
	case *SelectStmt:
		return "SELECT"
	default:
		return "unknown"
	}
}

func upper(k lexer.Keyword) string { return strings.ToUpper(k.String()) }

// ----- shared helpers -----

func (p *parser) expectType(tt lexer.TokenType, msg string) (lexer.Token, error) {
	tok := p.c.Read()
	if tok.Type != tt {
		if msg == "" {
			msg = "expected " + tt.String()
			if tok.Type != lexer.TokenEOF {
				msg += ", found " + tok.Describe()
			}
		}
		return tok, sqlerr.Parse(tok.Span(), "%s", msg)
	}
	return p.c.Consume(), nil
}

// expectKeyword consumes keyword k. context is appended to the error.
func (p *parser) expectKeyword(k lexer.Keyword, context string) (lexer.Token, error) {
	tok := p.c.Read()
	if !tok.IsKeyword(k) {
		msg := "expected keyword " + upper(k)
		if context != "" {
			msg += " " + context
		}
		return tok, sqlerr.Parse(tok.Span(), "%s", msg)
	}
	return p.c.Consume(), nil
}

// expectIdentifier consumes an identifier; what names it in the error.
func (p *parser) expectIdentifier(what string) (Ident, error) {
	tok := p.c.Read()
	if tok.Type != lexer.TokenIdentifier {
		if tok.Type == lexer.TokenKeyword {
			return Ident{}, sqlerr.Parse(tok.Span(),
				"expected %s, keyword %s cannot be used as an identifier", what, upper(tok.Keyword))
		}
		return Ident{}, sqlerr.Parse(tok.Span(), "expected %s", what)
	}
	p.c.Consume()
	return Ident{Name: tok.Text, Span: tok.Span()}, nil
}

// identifierList parses `a, b, c`. Repeats are reported by the caller.
func (p *parser) identifierList(what string) ([]Ident, error) {
	first, err := p.expectIdentifier(what)
	if err != nil {
		return nil, err
	}
	out := []Ident{first}
	for p.c.Read().Type == lexer.TokenComma {
		p.c.Consume()
		id, err := p.expectIdentifier(what)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// parenIdentifierList parses `( a, b, c )` and returns the span of the
// closing parenthesis as well.
func (p *parser) parenIdentifierList(what string) ([]Ident, lexer.Token, error) {
	if _, err := p.expectType(lexer.TokenOpenParen, ""); err != nil {
		return nil, lexer.Token{}, err
	}
	ids, err := p.identifierList(what)
	if err != nil {
		return nil, lexer.Token{}, err
	}
	closing, err := p.expectType(lexer.TokenCloseParen, "expected ',' or ')' after "+what)
	if err != nil {
		return nil, lexer.Token{}, err
	}
	return ids, closing, nil
}

// firstRepeat returns the first identifier whose name already occurred.
func firstRepeat(ids []Ident) (Ident, bool) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id.Name]; ok {
			return id, true
		}
		seen[id.Name] = struct{}{}
	}
	return Ident{}, false
}
