package executor

import (
	"github.com/tuannm99/novarel/internal/catalog"
	"github.com/tuannm99/novarel/internal/sql/parser"
	"github.com/tuannm99/novarel/internal/sqlerr"
)

// execSelect is a full scan in row-index order.
func (e *Executor) execSelect(s *parser.SelectStmt) (*Result, error) {
	table, ok := e.DB.Table(s.Table.Name)
	if !ok {
		return nil, sqlerr.Exec(s.Table.Span, "table %s does not exist", s.Table.Name)
	}

	idx, names, err := projection(table, s.Columns)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, table.RowCount())
	for _, r := range table.Rows {
		out := make([]any, len(idx))
		for i, c := range idx {
			out[i] = r.Values[c]
		}
		rows = append(rows, out)
	}
	return &Result{
		Statement: parser.StatementName(s),
		Columns:   names,
		Rows:      rows,
	}, nil
}

func projection(table *catalog.Table, cols []parser.Ident) ([]int, []string, error) {
	if cols == nil {
		idx := make([]int, table.Schema.NumCols())
		for i := range idx {
			idx[i] = i
		}
		return idx, table.Schema.Names(), nil
	}
	idx := make([]int, len(cols))
	names := make([]string, len(cols))
	for i, id := range cols {
		col, ok := table.Column(id.Name)
		if !ok {
			return nil, nil, sqlerr.Exec(id.Span, "column %s does not exist in table %s", id.Name, table.Name)
		}
		idx[i] = col.Index
		names[i] = col.Name
	}
	return idx, names, nil
}
