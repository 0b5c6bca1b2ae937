package executor

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/tuannm99/novarel/internal/catalog"
	"github.com/tuannm99/novarel/internal/record"
	"github.com/tuannm99/novarel/internal/sql/parser"
	"github.com/tuannm99/novarel/internal/sqlerr"
)

// execInsert validates every row before committing any of them. Reverse
// lookups found while checking foreign keys are buffered and applied by
// Commit together with the rows.
func (e *Executor) execInsert(s *parser.InsertStmt) (*Result, error) {
	table, ok := e.DB.Table(s.Table.Name)
	if !ok {
		return nil, sqlerr.Exec(s.Table.Span, "cannot insert into table %s, it does not exist", s.Table.Name)
	}
	cols, err := insertColumns(table, s)
	if err != nil {
		return nil, err
	}

	pending := make([]*catalog.Row, 0, len(s.Rows))
	var links []catalog.RefLink
	next := int64(table.RowCount())

	for _, vr := range s.Rows {
		if err := checkArity(cols, vr); err != nil {
			return nil, err
		}
		values := make([]any, table.Schema.NumCols())
		for i, lit := range vr.Values {
			v, err := coerce(cols[i], lit)
			if err != nil {
				return nil, err
			}
			values[cols[i].Index] = v
		}

		row := table.NewRow(next, values)
		if err := checkPrimaryKey(table, pending, row, vr.Span); err != nil {
			return nil, err
		}
		rowLinks, err := e.checkForeignKeys(table, row, vr.Span)
		if err != nil {
			return nil, err
		}
		links = append(links, rowLinks...)
		pending = append(pending, row)
		next++
	}

	e.DB.Commit(table, pending, links)
	slog.Debug("executor: rows inserted", "table", table.Name, "rows", len(pending))
	return &Result{
		Statement:    parser.StatementName(s),
		AffectedRows: int64(len(pending)),
	}, nil
}

// insertColumns resolves the effective column list of an INSERT.
func insertColumns(table *catalog.Table, s *parser.InsertStmt) ([]record.Column, error) {
	if s.Columns == nil {
		return table.Columns(), nil
	}
	cols := make([]record.Column, 0, len(s.Columns))
	given := make(map[string]struct{}, len(s.Columns))
	for _, id := range s.Columns {
		col, ok := table.Column(id.Name)
		if !ok {
			return nil, sqlerr.Exec(id.Span, "column %s does not exist in table %s", id.Name, table.Name)
		}
		cols = append(cols, col)
		given[id.Name] = struct{}{}
	}

	listSpan := sqlerr.Join(s.Columns[0].Span, s.Columns[len(s.Columns)-1].Span)
	for _, col := range table.Columns() {
		if _, ok := given[col.Name]; !ok && !col.Nullable {
			return nil, sqlerr.Exec(listSpan,
				"columns that should be inserted should contain column %s, as it is not nullable", col.Name)
		}
	}
	return cols, nil
}

func columnNames(cols []record.Column) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func checkArity(cols []record.Column, vr parser.ValueRow) error {
	got := len(vr.Values)
	switch {
	case got < len(cols):
		missing := cols[got:]
		p := plural(len(missing))
		return sqlerr.Exec(vr.Span, "value%s expected for column%s: %s", p, p, columnNames(missing))
	case got > len(cols):
		excess := sqlerr.Join(vr.Values[len(cols)].Span, vr.Values[got-1].Span)
		p := plural(len(cols))
		return sqlerr.Exec(excess, "only expected %d value%s for column%s: %s, instead got %d values",
			len(cols), p, p, columnNames(cols), got)
	}
	return nil
}

// coerce converts a literal to the stored value of col.
//
//	BOOLEAN  true, false
//	INT      numbers without a decimal point; true/false as 1/0
//	FLOAT    any number; true/false as 1/0
//	TEXT     strings
//
// NULL is accepted by nullable columns only.
func coerce(col record.Column, lit parser.Literal) (any, error) {
	if lit.Kind == parser.LitNull {
		if !col.Nullable {
			return nil, sqlerr.Exec(lit.Span, "column %s is not nullable", col.Name)
		}
		return nil, nil
	}

	switch col.Type {
	case record.ColBool:
		if lit.Kind == parser.LitBool {
			return lit.Bool, nil
		}
	case record.ColInt:
		switch {
		case lit.Kind == parser.LitBool:
			return boolNumber(lit.Bool), nil
		case lit.Kind == parser.LitNumber && !lit.HasPoint:
			n, err := strconv.ParseInt(lit.Text, 10, 64)
			if err != nil {
				return nil, sqlerr.Exec(lit.Span, "value %s is out of range for column %s of type INT", lit.Text, col.Name)
			}
			return n, nil
		}
	case record.ColFloat:
		switch lit.Kind {
		case parser.LitBool:
			return float64(boolNumber(lit.Bool)), nil
		case parser.LitNumber:
			return lit.Number, nil
		}
	case record.ColText:
		if lit.Kind == parser.LitString {
			return lit.Str, nil
		}
	}
	return nil, sqlerr.Exec(lit.Span, "column %s is of type %s and cannot accept a value of type %s",
		col.Name, col.Type, literalType(lit))
}

func boolNumber(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func literalType(lit parser.Literal) string {
	if lit.Kind == parser.LitNumber {
		if lit.HasPoint {
			return record.ColFloat.String()
		}
		return record.ColInt.String()
	}
	return lit.Kind.String()
}

// checkPrimaryKey scans committed and pending rows for the same key.
func checkPrimaryKey(table *catalog.Table, pending []*catalog.Row, row *catalog.Row, span sqlerr.Span) error {
	if len(table.PrimaryKey) == 0 {
		return nil
	}
	same := func(other *catalog.Row) bool {
		for _, c := range table.PrimaryKey {
			if other.Values[c] != row.Values[c] {
				return false
			}
		}
		return true
	}
	for _, rows := range [][]*catalog.Row{table.Rows, pending} {
		for _, other := range rows {
			if same(other) {
				return sqlerr.Exec(span,
					"could not insert rows, because a row with the identical primary key (%s) already exists",
					keyString(table, row))
			}
		}
	}
	return nil
}

func keyString(table *catalog.Table, row *catalog.Row) string {
	parts := make([]string, len(table.PrimaryKey))
	for i, c := range table.PrimaryKey {
		parts[i] = record.FormatValue(row.Values[c])
	}
	return strings.Join(parts, ", ")
}

// checkForeignKeys finds, for every outgoing relation whose columns are not
// all NULL, the committed target row the candidate references.
func (e *Executor) checkForeignKeys(table *catalog.Table, row *catalog.Row, span sqlerr.Span) ([]catalog.RefLink, error) {
	var links []catalog.RefLink
	for _, rel := range table.Internal {
		allNull := true
		for _, c := range rel.FromColumns {
			if row.Values[c] != nil {
				allNull = false
				break
			}
		}
		if allNull {
			continue
		}

		target := e.DB.TableByID(rel.To)
		match := findReferenced(target, rel, row)
		if match == nil {
			return nil, sqlerr.Exec(span,
				"could not insert rows, because this row does not fulfill constraint %s", e.DB.Describe(rel))
		}
		links = append(links, catalog.RefLink{Relation: rel, Row: match.Index, Source: row.Index})
	}
	return links, nil
}

func findReferenced(target *catalog.Table, rel *catalog.Relation, row *catalog.Row) *catalog.Row {
rows:
	for _, candidate := range target.Rows {
		for i := range rel.FromColumns {
			if row.Values[rel.FromColumns[i]] != candidate.Values[rel.ToColumns[i]] {
				continue rows
			}
		}
		return candidate
	}
	return nil
}
