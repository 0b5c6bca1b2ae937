package parser

import (
	"github.com/tuannm99/novarel/internal/sql/lexer"
	"github.com/tuannm99/novarel/internal/sqlerr"
)

// SELECT * FROM name
// SELECT col, ... FROM name
func (p *parser) parseSelect() (Statement, error) {
	start := p.c.Consume() // SELECT
	stmt := &SelectStmt{}

	if tok := p.c.Read(); tok.Type == lexer.TokenOperator && tok.Operator == lexer.OpMultiply {
		p.c.Consume()
	} else {
		cols, err := p.identifierList("column name or '*'")
		if err != nil {
			return nil, err
		}
		stmt.Columns = cols
	}

	if _, err := p.expectKeyword(lexer.KwFrom, "after the selected columns"); err != nil {
		return nil, err
	}
	table, err := p.expectIdentifier("table name")
	if err != nil {
		return nil, err
	}
	stmt.Table = table
	stmt.span = sqlerr.Join(start.Span(), table.Span)
	return stmt, nil
}
