package parser

import (
	"github.com/tuannm99/novarel/internal/record"
	"github.com/tuannm99/novarel/internal/sqlerr"
)

// Statement is the root interface for all SQL statements.
type Statement interface {
	stmtNode()
	// Span covers the statement from its leading keyword to its last token.
	Span() sqlerr.Span
}

// Ident is a name together with where it was written.
type Ident struct {
	Name string
	Span sqlerr.Span
}

func identNames(ids []Ident) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Name
	}
	return out
}

// ----- CREATE TABLE -----

type ColumnDef struct {
	Name    Ident
	Type    record.ColumnType
	Length  int // declared (length), 0 when absent; not enforced
	NotNull bool
	Span    sqlerr.Span
}

// ForeignKeyDef is one declared reference to another table. RefColumns is
// nil for the inline `REFERENCES t` form, meaning t's primary key.
type ForeignKeyDef struct {
	Columns    []Ident
	RefTable   Ident
	RefColumns []Ident
	Span       sqlerr.Span
}

// ColumnNames returns the source column names.
func (fk ForeignKeyDef) ColumnNames() []string { return identNames(fk.Columns) }

type CreateTableStmt struct {
	Table   Ident
	Columns []ColumnDef

	// PrimaryKey is set by either the inline or the table-level form.
	PrimaryKey     []Ident
	PrimaryKeySpan sqlerr.Span

	ForeignKeys []ForeignKeyDef
	span        sqlerr.Span
}

func (*CreateTableStmt) stmtNode()           {}
func (s *CreateTableStmt) Span() sqlerr.Span { return s.span }

// ----- INSERT -----

type ValueRow struct {
	Values []Literal
	Span   sqlerr.Span
}

type InsertStmt struct {
	Table Ident
	// Columns is nil when no column list was given.
	Columns []Ident
	Rows    []ValueRow
	span    sqlerr.Span
}

func (*InsertStmt) stmtNode()           {}
func (s *InsertStmt) Span() sqlerr.Span { return s.span }

// ----- SELECT -----

type SelectStmt struct {
	Table Ident
	// Columns is nil for `*`.
	Columns []Ident
	span    sqlerr.Span
}

func (*SelectStmt) stmtNode()           {}
func (s *SelectStmt) Span() sqlerr.Span { return s.span }

// ----- Literals -----

type LiteralKind uint8

const (
	LitNumber LiteralKind = iota + 1
	LitString
	LitBool
	LitNull
)

func (k LiteralKind) String() string {
	switch k {
	case LitNumber:
		return "NUMBER"
	case LitString:
		return "TEXT"
	case LitBool:
		return "BOOLEAN"
	case LitNull:
		return "NULL"
	default:
		return "UNKNOWN"
	}
}

// Literal is a constant written in a VALUES row.
type Literal struct {
	Kind LiteralKind

	Text     string  // number spelling
	Number   float64 // LitNumber
	HasPoint bool    // LitNumber
	Str      string  // LitString
	Bool     bool    // LitBool

	Span sqlerr.Span
}
