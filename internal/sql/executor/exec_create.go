package executor

import (
	"fmt"
	"log/slog"

	"github.com/tuannm99/novarel/internal/catalog"
	"github.com/tuannm99/novarel/internal/record"
	"github.com/tuannm99/novarel/internal/sql/parser"
	"github.com/tuannm99/novarel/internal/sqlerr"
)

// execCreateTable builds the table and its relations completely before the
// store is touched, so a failing statement adds nothing.
func (e *Executor) execCreateTable(s *parser.CreateTableStmt) (*Result, error) {
	name := s.Table.Name
	if _, exists := e.DB.Table(name); exists {
		return nil, sqlerr.Exec(s.Table.Span, "table %s already exists", name)
	}

	cols := make([]record.Column, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = record.Column{
			Name:     c.Name.Name,
			Type:     c.Type,
			Nullable: !c.NotNull,
		}
	}

	pk := make([]int, 0, len(s.PrimaryKey))
	for _, id := range s.PrimaryKey {
		idx := columnIndex(cols, id.Name)
		if idx < 0 {
			return nil, sqlerr.Exec(id.Span, "PRIMARY KEY column %s does not exist in table %s", id.Name, name)
		}
		pk = append(pk, idx)
	}

	table, err := catalog.NewTable(name, cols, pk)
	if err != nil {
		return nil, sqlerr.Exec(s.Span(), "%v", err)
	}

	rels, err := e.resolveRelations(s, table)
	if err != nil {
		return nil, err
	}
	if err := e.DB.AddTable(table, rels); err != nil {
		return nil, sqlerr.Exec(s.Span(), "%v", err)
	}

	slog.Debug("executor: table created", "table", name, "relations", len(rels))
	return &Result{
		Statement: parser.StatementName(s),
		Message:   fmt.Sprintf("table %s created", name),
	}, nil
}

func columnIndex(cols []record.Column, name string) int {
	for i, c := range cols {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// resolveRelations turns the declared foreign keys into relations against
// existing tables. The i-th source column is paired with the i-th target
// column: the explicit target list in written order, or the target's
// primary key in declaration order.
func (e *Executor) resolveRelations(s *parser.CreateTableStmt, table *catalog.Table) ([]*catalog.Relation, error) {
	var rels []*catalog.Relation
	for _, fk := range s.ForeignKeys {
		target, ok := e.DB.Table(fk.RefTable.Name)
		if !ok {
			if fk.RefTable.Name == table.Name {
				return nil, sqlerr.Exec(fk.RefTable.Span, "table %s cannot reference itself", table.Name)
			}
			return nil, sqlerr.Exec(fk.RefTable.Span, "table %s does not exist", fk.RefTable.Name)
		}

		var to []int
		if fk.RefColumns == nil {
			if len(target.PrimaryKey) == 0 {
				return nil, sqlerr.Exec(fk.Span, "table %s has no PRIMARY KEY to reference", target.Name)
			}
			if len(target.PrimaryKey) != len(fk.Columns) {
				return nil, sqlerr.Exec(fk.Span,
					"PRIMARY KEY of table %s does not contain the same number of columns as the FOREIGN KEY", target.Name)
			}
			to = append(to, target.PrimaryKey...)
		} else {
			for _, ref := range fk.RefColumns {
				col, ok := target.Column(ref.Name)
				if !ok {
					return nil, sqlerr.Exec(ref.Span, "column %s not found in table %s", ref.Name, target.Name)
				}
				if !col.Primary {
					return nil, sqlerr.Exec(fk.Span,
						"FOREIGN KEY has to reference the full PRIMARY KEY of table %s", target.Name)
				}
				to = append(to, col.Index)
			}
			if len(to) != len(target.PrimaryKey) {
				return nil, sqlerr.Exec(fk.Span,
					"FOREIGN KEY has to reference the full PRIMARY KEY of table %s", target.Name)
			}
		}

		from := make([]int, len(fk.Columns))
		for i, id := range fk.Columns {
			col, ok := table.Column(id.Name)
			if !ok {
				return nil, sqlerr.Exec(id.Span, "column %s does not exist in table %s", id.Name, table.Name)
			}
			ref := target.Schema.Cols[to[i]]
			if col.Type != ref.Type {
				return nil, sqlerr.Exec(fk.Span,
					"FOREIGN KEY and PRIMARY KEY columns do not match types: %s is %s, %s.%s is %s",
					col.Name, col.Type, target.Name, ref.Name, ref.Type)
			}
			from[i] = col.Index
		}

		rel := &catalog.Relation{FromColumns: from, To: target.ID, ToColumns: to}
		if duplicateRelation(rels, rel) {
			continue
		}
		rels = append(rels, rel)
	}
	return rels, nil
}

// duplicateRelation reports whether rels already holds a relation to the
// same table with the same set of (from, to) column pairs.
func duplicateRelation(rels []*catalog.Relation, rel *catalog.Relation) bool {
	for _, other := range rels {
		if other.To != rel.To || len(other.FromColumns) != len(rel.FromColumns) {
			continue
		}
		pairs := make(map[[2]int]struct{}, len(other.FromColumns))
		for i := range other.FromColumns {
			pairs[[2]int{other.FromColumns[i], other.ToColumns[i]}] = struct{}{}
		}
		same := true
		for i := range rel.FromColumns {
			if _, ok := pairs[[2]int{rel.FromColumns[i], rel.ToColumns[i]}]; !ok {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}
	return false
}
