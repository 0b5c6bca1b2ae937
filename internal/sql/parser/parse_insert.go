package parser

import (
	"github.com/tuannm99/novarel/internal/sql/lexer"
	"github.com/tuannm99/novarel/internal/sqlerr"
)

// parseInsert parses
//
//	INSERT INTO name [ ( col, ... ) ] VALUES ( value, ... ) [, ( value, ... )]...
func (p *parser) parseInsert() (Statement, error) {
	start := p.c.Consume() // INSERT
	if _, err := p.expectKeyword(lexer.KwInto, "after INSERT"); err != nil {
		return nil, err
	}
	table, err := p.expectIdentifier("table name")
	if err != nil {
		return nil, err
	}
	stmt := &InsertStmt{Table: table}

	if p.c.Read().Type == lexer.TokenOpenParen {
		cols, _, err := p.parenIdentifierList("column name")
		if err != nil {
			return nil, err
		}
		if dup, ok := firstRepeat(cols); ok {
			return nil, sqlerr.Parse(dup.Span, "column %s cannot be inserted twice", dup.Name)
		}
		stmt.Columns = cols
	}

	if _, err := p.expectKeyword(lexer.KwValues, "before the rows to insert"); err != nil {
		return nil, err
	}
	for {
		row, err := p.parseValueRow()
		if err != nil {
			return nil, err
		}
		stmt.Rows = append(stmt.Rows, row)
		if p.c.Read().Type != lexer.TokenComma {
			break
		}
		p.c.Consume()
	}
	stmt.span = sqlerr.Join(start.Span(), p.c.Prev().Span())
	return stmt, nil
}

func (p *parser) parseValueRow() (ValueRow, error) {
	open, err := p.expectType(lexer.TokenOpenParen, "expected '(' to start a row of values")
	if err != nil {
		return ValueRow{}, err
	}
	var row ValueRow
	if p.c.Read().Type != lexer.TokenCloseParen {
		for {
			lit, err := p.parseLiteral()
			if err != nil {
				return ValueRow{}, err
			}
			row.Values = append(row.Values, lit)
			if p.c.Read().Type != lexer.TokenComma {
				break
			}
			p.c.Consume()
		}
	}
	closing, err := p.expectType(lexer.TokenCloseParen, "expected ',' or ')' in row of values")
	if err != nil {
		return ValueRow{}, err
	}
	row.Span = sqlerr.Join(open.Span(), closing.Span())
	return row, nil
}

func (p *parser) parseLiteral() (Literal, error) {
	tok := p.c.Read()
	lit := Literal{Span: tok.Span()}
	switch {
	case tok.Type == lexer.TokenNumber:
		lit.Kind = LitNumber
		lit.Text = tok.Text
		lit.Number = tok.Number
		lit.HasPoint = tok.HasPoint
	case tok.Type == lexer.TokenString:
		lit.Kind = LitString
		lit.Str = tok.Str
	case tok.IsKeyword(lexer.KwTrue), tok.IsKeyword(lexer.KwFalse):
		lit.Kind = LitBool
		lit.Bool = tok.Keyword == lexer.KwTrue
	case tok.IsKeyword(lexer.KwNull):
		lit.Kind = LitNull
	default:
		return Literal{}, sqlerr.Parse(tok.Span(),
			"constant value expected, such as a string, number, boolean or null")
	}
	p.c.Consume()
	return lit, nil
}
