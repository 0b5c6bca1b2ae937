// Package executor runs parsed statements against a catalog.Database.
package executor

import (
	"fmt"
	"log/slog"

	"github.com/tuannm99/novarel/internal/catalog"
	"github.com/tuannm99/novarel/internal/sql/lexer"
	"github.com/tuannm99/novarel/internal/sql/parser"
)

// Executor executes statements against a Database. Like the Database it is
// not safe for concurrent use.
type Executor struct {
	DB *catalog.Database
}

func NewExecutor(db *catalog.Database) *Executor {
	return &Executor{DB: db}
}

// ExecSQL runs a script of ';'-separated statements.
//
// The whole text is tokenized and every statement is parsed before anything
// runs, so a lexical or parse error anywhere leaves the store untouched.
// Statements then run in order; the first execution error stops the script
// and is returned together with the results of the statements before it.
func (e *Executor) ExecSQL(sql string) ([]*Result, error) {
	toks, err := lexer.Tokenize(sql)
	if err != nil {
		return nil, err
	}
	stmts, err := parser.ParseAll(lexer.NewCursor(toks))
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(stmts))
	for _, stmt := range stmts {
		res, err := e.Execute(stmt)
		if err != nil {
			slog.Debug("executor: statement failed",
				"statement", parser.StatementName(stmt),
				"err", err,
			)
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Execute applies one statement. Every statement is all-or-nothing.
func (e *Executor) Execute(stmt parser.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *parser.CreateTableStmt:
		return e.execCreateTable(s)
	case *parser.InsertStmt:
		return e.execInsert(s)
	case *parser.SelectStmt:
		return e.execSelect(s)
	default:
		return nil, fmt.Errorf("executor: unsupported statement type %T", stmt)
	}
}
