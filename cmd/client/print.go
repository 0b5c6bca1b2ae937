package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tuannm99/novarel"
	"github.com/tuannm99/novarel/internal/record"
	"github.com/tuannm99/novarel/internal/sqlerr"
)

func printResults(w io.Writer, results []*novarel.Result) {
	for _, res := range results {
		printResult(w, res)
	}
}

func printResult(w io.Writer, res *novarel.Result) {
	if res.Statement != "SELECT" {
		// DDL/DML
		if res.Message != "" {
			fmt.Fprintln(w, res.Message)
			return
		}
		fmt.Fprintf(w, "OK (%d affected)\n", res.AffectedRows)
		return
	}

	cols := res.Columns
	cells := make([][]string, len(res.Rows))
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c)
	}
	for r, row := range res.Rows {
		cells[r] = make([]string, len(cols))
		for i := range cols {
			s := "NULL"
			if i < len(row) {
				s = record.FormatValue(row[i])
			}
			cells[r][i] = s
			widths[i] = max(widths[i], len(s))
		}
	}

	printRow := func(values []string) {
		for i := range cols {
			if i > 0 {
				fmt.Fprint(w, " | ")
			}
			fmt.Fprint(w, padRight(values[i], widths[i]))
		}
		fmt.Fprintln(w)
	}

	printRow(cols)
	for i := range cols {
		if i > 0 {
			fmt.Fprint(w, "-+-")
		}
		fmt.Fprint(w, strings.Repeat("-", widths[i]))
	}
	fmt.Fprintln(w)
	for _, row := range cells {
		printRow(row)
	}
	fmt.Fprintf(w, "(%d rows)\n", len(res.Rows))
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

// printError shows located errors with the offending range marked in src.
func printError(w io.Writer, src string, err error) {
	var e *sqlerr.Error
	if !errors.As(err, &e) {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "%s error: %s\n", e.Kind, e.Message)
	fmt.Fprintf(w, "  %s\n", sqlerr.Highlight(src, e))
}

func printTable(w io.Writer, info *novarel.TableInfo) {
	fmt.Fprintf(w, "table %s (%d rows)\n", info.Name, info.Rows)
	for _, line := range info.Schema {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if len(info.ReferencedBy) > 0 {
		fmt.Fprintln(w, "referenced by:")
		for _, line := range info.ReferencedBy {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
