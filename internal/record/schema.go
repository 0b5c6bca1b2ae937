package record

import (
	"fmt"
	"strconv"
	"strings"
)

type ColumnType uint8

const (
	ColInt ColumnType = iota + 1
	ColFloat
	ColText
	ColBool
)

func (t ColumnType) String() string {
	switch t {
	case ColInt:
		return "INT"
	case ColFloat:
		return "FLOAT"
	case ColText:
		return "TEXT"
	case ColBool:
		return "BOOLEAN"
	default:
		return fmt.Sprintf("ColumnType(%d)", uint8(t))
	}
}

// typeNames maps every accepted (lowercase) type spelling.
var typeNames = map[string]ColumnType{
	"int":     ColInt,
	"integer": ColInt,
	"float":   ColFloat,
	"real":    ColFloat,
	"number":  ColFloat,
	"text":    ColText,
	"varchar": ColText,
	"boolean": ColBool,
	"bool":    ColBool,
}

// LookupType resolves a column type name.
func LookupType(name string) (ColumnType, bool) {
	t, ok := typeNames[strings.ToLower(name)]
	return t, ok
}

// Column is the metadata of one table column.
// Index is the column's position among the table's values.
type Column struct {
	Name     string
	Type     ColumnType
	Primary  bool
	Nullable bool // always false when Primary
	Index    int
}

// Schema is the ordered column list of a table.
type Schema struct {
	Cols []Column
}

func (s Schema) NumCols() int { return len(s.Cols) }

// Names returns the column names in order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Cols))
	for i, c := range s.Cols {
		out[i] = c.Name
	}
	return out
}

// Values held in rows are one of int64, float64, string, bool or nil (NULL).

// FormatValue renders a stored value the way the REPL prints it.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", x)
	}
}
