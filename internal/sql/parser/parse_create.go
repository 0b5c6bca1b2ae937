package parser

import (
	"strings"

	"github.com/tuannm99/novarel/internal/record"
	"github.com/tuannm99/novarel/internal/sql/lexer"
	"github.com/tuannm99/novarel/internal/sqlerr"
)

// parseCreateTable parses
//
//	CREATE TABLE name ( column-or-constraint [, ...] )
//
// Columns and constraints may be interleaved in any order.
func (p *parser) parseCreateTable() (Statement, error) {
	start := p.c.Consume() // CREATE
	if _, err := p.expectKeyword(lexer.KwTable, "for CREATE TABLE statement"); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier("table name")
	if err != nil {
		return nil, err
	}
	stmt := &CreateTableStmt{Table: name}

	if _, err := p.expectType(lexer.TokenOpenParen, ""); err != nil {
		return nil, err
	}
	if p.c.Read().Type != lexer.TokenCloseParen {
		for {
			if err := p.parseDefinition(stmt); err != nil {
				return nil, err
			}
			if p.c.Read().Type != lexer.TokenComma {
				break
			}
			p.c.Consume()
		}
	}
	end, err := p.expectType(lexer.TokenCloseParen,
		"expected either ')' to end table definition or ',' for the next column or constraint definition")
	if err != nil {
		return nil, err
	}
	stmt.span = sqlerr.Join(start.Span(), end.Span())
	return stmt, nil
}

func (p *parser) parseDefinition(stmt *CreateTableStmt) error {
	tok := p.c.Read()
	switch {
	case tok.IsKeyword(lexer.KwConstraint):
		p.c.Consume()
		if _, err := p.expectIdentifier("constraint name"); err != nil {
			return err
		}
		next := p.c.Read()
		switch {
		case next.IsKeyword(lexer.KwPrimary):
			return p.parsePrimaryConstraint(stmt)
		case next.IsKeyword(lexer.KwForeign):
			return p.parseForeignConstraint(stmt)
		default:
			return sqlerr.Parse(next.Span(), "expected PRIMARY KEY or FOREIGN KEY after constraint name")
		}
	case tok.IsKeyword(lexer.KwPrimary):
		return p.parsePrimaryConstraint(stmt)
	case tok.IsKeyword(lexer.KwForeign):
		return p.parseForeignConstraint(stmt)
	case tok.Type == lexer.TokenIdentifier:
		return p.parseColumn(stmt)
	default:
		return sqlerr.Parse(tok.Span(), "expected column name for a column definition or a constraint definition")
	}
}

func primaryKeyConflict(stmt *CreateTableStmt, at sqlerr.Span) error {
	return sqlerr.Parse(at,
		"PRIMARY KEY is already declared as (%s), list every primary key column in a single PRIMARY KEY constraint",
		strings.Join(identNames(stmt.PrimaryKey), ", "))
}

// PRIMARY KEY ( col, ... )
func (p *parser) parsePrimaryConstraint(stmt *CreateTableStmt) error {
	first := p.c.Consume() // PRIMARY
	key, err := p.expectKeyword(lexer.KwKey, "after PRIMARY")
	if err != nil {
		return err
	}
	if len(stmt.PrimaryKey) > 0 {
		return primaryKeyConflict(stmt, sqlerr.Join(first.Span(), key.Span()))
	}
	cols, closing, err := p.parenIdentifierList("column name")
	if err != nil {
		return err
	}
	if dup, ok := firstRepeat(cols); ok {
		return sqlerr.Parse(dup.Span, "PRIMARY KEY cannot contain columns more than once")
	}
	stmt.PrimaryKey = cols
	stmt.PrimaryKeySpan = sqlerr.Join(first.Span(), closing.Span())
	return nil
}

// FOREIGN KEY ( col, ... ) REFERENCES table ( col, ... )
func (p *parser) parseForeignConstraint(stmt *CreateTableStmt) error {
	first := p.c.Consume() // FOREIGN
	if _, err := p.expectKeyword(lexer.KwKey, "after FOREIGN"); err != nil {
		return err
	}
	cols, _, err := p.parenIdentifierList("column name")
	if err != nil {
		return err
	}
	if dup, ok := firstRepeat(cols); ok {
		return sqlerr.Parse(dup.Span, "FOREIGN KEY cannot contain columns more than once")
	}
	if _, err := p.expectKeyword(lexer.KwReferences, "after FOREIGN KEY column list"); err != nil {
		return err
	}
	table, err := p.expectIdentifier("table name")
	if err != nil {
		return err
	}
	refs, closing, err := p.parenIdentifierList(table.Name + " column name")
	if err != nil {
		return err
	}
	if dup, ok := firstRepeat(refs); ok {
		return sqlerr.Parse(dup.Span, "already mentioned %s column name %s", table.Name, dup.Name)
	}
	span := sqlerr.Join(first.Span(), closing.Span())
	if len(cols) != len(refs) {
		return sqlerr.Parse(span, "FOREIGN KEY has %d column(s) but references %d column(s) of %s",
			len(cols), len(refs), table.Name)
	}
	stmt.ForeignKeys = append(stmt.ForeignKeys, ForeignKeyDef{
		Columns:    cols,
		RefTable:   table,
		RefColumns: refs,
		Span:       span,
	})
	return nil
}

// name type [ (length) ] [ REFERENCES t [ (col) ] | PRIMARY KEY | NOT NULL ]...
func (p *parser) parseColumn(stmt *CreateTableStmt) error {
	name, err := p.expectIdentifier("column name")
	if err != nil {
		return err
	}
	for _, c := range stmt.Columns {
		if c.Name.Name == name.Name {
			return sqlerr.Parse(name.Span, "column %s is already defined", name.Name)
		}
	}

	col := ColumnDef{Name: name}
	typeTok := p.c.Read()
	if typeTok.Type != lexer.TokenIdentifier {
		return sqlerr.Parse(typeTok.Span(), "column type expected")
	}
	typ, ok := record.LookupType(typeTok.Text)
	if !ok {
		return sqlerr.Parse(typeTok.Span(), "type '%s' does not exist", typeTok.Text)
	}
	p.c.Consume()
	col.Type = typ

	// varchar(30) and friends
	if p.c.Read().Type == lexer.TokenOpenParen {
		p.c.Consume()
		n := p.c.Read()
		if n.Type != lexer.TokenNumber || n.HasPoint || n.Number < 0 {
			return sqlerr.Parse(n.Span(), "expected type length")
		}
		p.c.Consume()
		col.Length = int(n.Number)
		if _, err := p.expectType(lexer.TokenCloseParen, "expected ')' after type length"); err != nil {
			return err
		}
	}

	referenced := false
	for {
		tok := p.c.Read()
		switch {
		case tok.IsKeyword(lexer.KwReferences):
			p.c.Consume()
			if referenced {
				return sqlerr.Parse(tok.Span(),
					"for a column to reference more than one table use a FOREIGN KEY constraint")
			}
			referenced = true
			table, err := p.expectIdentifier("table name")
			if err != nil {
				return err
			}
			fk := ForeignKeyDef{Columns: []Ident{name}, RefTable: table}
			if p.c.Read().Type == lexer.TokenOpenParen {
				p.c.Consume()
				ref, err := p.expectIdentifier("column name")
				if err != nil {
					return err
				}
				if _, err := p.expectType(lexer.TokenCloseParen, "expected ')' after referenced column"); err != nil {
					return err
				}
				fk.RefColumns = []Ident{ref}
			}
			fk.Span = sqlerr.Join(tok.Span(), p.c.Prev().Span())
			stmt.ForeignKeys = append(stmt.ForeignKeys, fk)

		case tok.IsKeyword(lexer.KwPrimary):
			p.c.Consume()
			key, err := p.expectKeyword(lexer.KwKey, "after PRIMARY")
			if err != nil {
				return err
			}
			span := sqlerr.Join(tok.Span(), key.Span())
			if len(stmt.PrimaryKey) > 0 {
				return primaryKeyConflict(stmt, span)
			}
			stmt.PrimaryKey = []Ident{name}
			stmt.PrimaryKeySpan = span

		case tok.IsKeyword(lexer.KwNot):
			p.c.Consume()
			if _, err := p.expectKeyword(lexer.KwNull, "after NOT"); err != nil {
				return err
			}
			if col.NotNull {
				return sqlerr.Parse(sqlerr.Join(tok.Span(), p.c.Prev().Span()),
					"NOT NULL attribute can only be set once")
			}
			col.NotNull = true

		default:
			col.Span = sqlerr.Join(name.Span, p.c.Prev().Span())
			stmt.Columns = append(stmt.Columns, col)
			return nil
		}
	}
}
