package catalog

import (
	"fmt"
	"strings"

	"github.com/tuannm99/novarel/internal/record"
)

// TableID is a table's stable position in its Database.
type TableID int

// Relation links foreign-key columns of From to the referenced columns of
// To. Both column lists have the same length and pairwise equal types.
type Relation struct {
	From        TableID
	FromColumns []int
	To          TableID
	ToColumns   []int
}

// Row is one committed (or pending) record.
//   - Index is assigned at insert time, strictly increasing per table.
//   - Values holds one value per column, in column order.
//   - Refs holds one slot per incoming relation of the row's table, listing
//     the indices of source rows that reference this row.
type Row struct {
	Index  int64
	Values []any
	Refs   [][]int64
}

type Table struct {
	ID     TableID
	Name   string
	Schema record.Schema

	// PrimaryKey lists column indices in declaration order. Immutable.
	PrimaryKey []int

	Internal []*Relation // outgoing: this table holds the foreign key
	External []*Relation // incoming: this table is referenced

	Rows []*Row

	byName map[string]int
}

// NewTable builds a table from its columns. Columns named in pk become
// primary and non-nullable; indices are assigned by position.
func NewTable(name string, cols []record.Column, pk []int) (*Table, error) {
	t := &Table{
		Name:   name,
		byName: make(map[string]int, len(cols)),
	}
	t.Schema.Cols = make([]record.Column, len(cols))
	for i, c := range cols {
		if _, dup := t.byName[c.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate column %q in table %q", c.Name, name)
		}
		c.Index = i
		c.Primary = false
		t.Schema.Cols[i] = c
		t.byName[c.Name] = i
	}
	for _, idx := range pk {
		if idx < 0 || idx >= len(cols) {
			return nil, fmt.Errorf("catalog: primary key column %d out of range", idx)
		}
		if t.Schema.Cols[idx].Primary {
			return nil, fmt.Errorf("catalog: column %q listed twice in primary key", t.Schema.Cols[idx].Name)
		}
		t.Schema.Cols[idx].Primary = true
		t.Schema.Cols[idx].Nullable = false
	}
	t.PrimaryKey = append([]int(nil), pk...)
	return t, nil
}

// Column looks a column up by name.
func (t *Table) Column(name string) (record.Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return record.Column{}, false
	}
	return t.Schema.Cols[i], true
}

// Columns returns the column metadata in declaration order.
func (t *Table) Columns() []record.Column { return t.Schema.Cols }

// RowCount returns the number of committed rows.
func (t *Table) RowCount() int { return len(t.Rows) }

// NewRow allocates a row with one empty reverse-lookup slot per incoming relation.
func (t *Table) NewRow(index int64, values []any) *Row {
	return &Row{
		Index:  index,
		Values: values,
		Refs:   make([][]int64, len(t.External)),
	}
}

// ExternalSlot returns the reverse-lookup slot of an incoming relation, or -1.
func (t *Table) ExternalSlot(rel *Relation) int {
	for i, r := range t.External {
		if r == rel {
			return i
		}
	}
	return -1
}

// Referencing returns the rows of rel's source table that reference row.
func (db *Database) Referencing(row *Row, rel *Relation) []*Row {
	target := db.TableByID(rel.To)
	slot := target.ExternalSlot(rel)
	if slot < 0 || slot >= len(row.Refs) {
		return nil
	}
	src := db.TableByID(rel.From)
	out := make([]*Row, 0, len(row.Refs[slot]))
	for _, idx := range row.Refs[slot] {
		out = append(out, src.Rows[idx])
	}
	return out
}

// Describe renders the relation as its FOREIGN KEY clause.
func (db *Database) Describe(rel *Relation) string {
	from, to := db.TableByID(rel.From), db.TableByID(rel.To)
	return fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
		columnList(from, rel.FromColumns), to.Name, columnList(to, rel.ToColumns))
}

// SchemaLines renders the table definition, one column or constraint per line.
func (db *Database) SchemaLines(t *Table) []string {
	lines := make([]string, 0, len(t.Schema.Cols)+1+len(t.Internal))
	for _, c := range t.Schema.Cols {
		line := c.Name + " " + c.Type.String()
		switch {
		case c.Primary:
			line += " PRIMARY KEY"
		case !c.Nullable:
			line += " NOT NULL"
		}
		lines = append(lines, line)
	}
	if len(t.PrimaryKey) > 1 {
		lines = append(lines, "PRIMARY KEY ("+columnList(t, t.PrimaryKey)+")")
	}
	for _, rel := range t.Internal {
		lines = append(lines, db.Describe(rel))
	}
	return lines
}

func columnList(t *Table, idx []int) string {
	names := make([]string, len(idx))
	for i, c := range idx {
		names[i] = t.Schema.Cols[c].Name
	}
	return strings.Join(names, ", ")
}
