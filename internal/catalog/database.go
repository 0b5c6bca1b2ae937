package catalog

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrTableExists   = errors.New("novarel: table already exists")
	ErrTableNotFound = errors.New("novarel: table not found")
	ErrBadRelation   = errors.New("novarel: invalid relation")
)

// Database is the in-memory relational store: an arena of tables addressed
// by TableID, with a name index. It is not safe for concurrent use; the
// host serializes calls.
type Database struct {
	tables []*Table
	byName map[string]TableID
}

func NewDatabase() *Database {
	return &Database{byName: make(map[string]TableID)}
}

// Table looks a table up by name.
func (db *Database) Table(name string) (*Table, bool) {
	id, ok := db.byName[name]
	if !ok {
		return nil, false
	}
	return db.tables[id], true
}

// TableByID resolves a relation endpoint. It panics on ids not issued by db.
func (db *Database) TableByID(id TableID) *Table {
	return db.tables[id]
}

// TableNames returns the table names in creation order.
func (db *Database) TableNames() []string {
	out := make([]string, len(db.tables))
	for i, t := range db.tables {
		out[i] = t.Name
	}
	return out
}

// AddTable registers t together with its outgoing relations. Every
// relation's From is set to t. Either everything is added or nothing is.
func (db *Database) AddTable(t *Table, rels []*Relation) error {
	if _, exists := db.byName[t.Name]; exists {
		return fmt.Errorf("%w: %s", ErrTableExists, t.Name)
	}
	for _, rel := range rels {
		if err := db.checkRelation(t, rel); err != nil {
			return err
		}
	}

	t.ID = TableID(len(db.tables))
	db.tables = append(db.tables, t)
	db.byName[t.Name] = t.ID

	for _, rel := range rels {
		rel.From = t.ID
		target := db.tables[rel.To]
		t.Internal = append(t.Internal, rel)
		target.External = append(target.External, rel)
		// keep row width in sync with the incoming relation count
		for _, row := range target.Rows {
			row.Refs = append(row.Refs, nil)
		}
	}

	slog.Debug("catalog: table added",
		"table", t.Name,
		"id", t.ID,
		"columns", t.Schema.NumCols(),
		"relations", len(rels),
	)
	return nil
}

func (db *Database) checkRelation(from *Table, rel *Relation) error {
	if rel.To < 0 || int(rel.To) >= len(db.tables) {
		return fmt.Errorf("%w: unknown target table %d", ErrBadRelation, rel.To)
	}
	to := db.tables[rel.To]
	if len(rel.FromColumns) == 0 || len(rel.FromColumns) != len(rel.ToColumns) {
		return fmt.Errorf("%w: column count %d vs %d", ErrBadRelation, len(rel.FromColumns), len(rel.ToColumns))
	}
	for i := range rel.FromColumns {
		f, c := rel.FromColumns[i], rel.ToColumns[i]
		if f < 0 || f >= from.Schema.NumCols() || c < 0 || c >= to.Schema.NumCols() {
			return fmt.Errorf("%w: column index out of range", ErrBadRelation)
		}
		if from.Schema.Cols[f].Type != to.Schema.Cols[c].Type {
			return fmt.Errorf("%w: %s.%s and %s.%s differ in type", ErrBadRelation,
				from.Name, from.Schema.Cols[f].Name, to.Name, to.Schema.Cols[c].Name)
		}
	}
	return nil
}

// RefLink records that source row Source (of the relation's From table)
// references row Row of the relation's To table.
type RefLink struct {
	Relation *Relation
	Row      int64
	Source   int64
}

// Commit appends rows to t and records their reverse lookups. Callers
// validate first; Commit itself cannot fail halfway.
func (db *Database) Commit(t *Table, rows []*Row, links []RefLink) {
	t.Rows = append(t.Rows, rows...)
	for _, l := range links {
		target := db.tables[l.Relation.To]
		slot := target.ExternalSlot(l.Relation)
		row := target.Rows[l.Row]
		row.Refs[slot] = append(row.Refs[slot], l.Source)
	}
	slog.Debug("catalog: rows committed", "table", t.Name, "rows", len(rows), "links", len(links))
}
