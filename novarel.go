// Package novarel is the top-level facade: an in-memory relational store
// driven by CREATE TABLE, INSERT and SELECT statements.
package novarel

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tuannm99/novarel/internal/catalog"
	"github.com/tuannm99/novarel/internal/sql/executor"
)

// Database serializes every call, so one value may be shared between
// goroutines.
type Database struct {
	mu  sync.Mutex
	cat *catalog.Database
	ex  *executor.Executor
}

func NewDatabase() *Database {
	cat := catalog.NewDatabase()
	return &Database{cat: cat, ex: executor.NewExecutor(cat)}
}

// Exec runs a script of ';'-separated statements. See executor.ExecSQL.
func (db *Database) Exec(sql string) ([]*Result, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.ex.ExecSQL(sql)
}

// TableNames lists tables in creation order.
func (db *Database) TableNames() []string {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.cat.TableNames()
}

// Table describes the named table. Names are matched case-insensitively,
// like identifiers in statements.
func (db *Database) Table(name string) (TableInfo, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	name = strings.ToLower(name)
	t, ok := db.cat.Table(name)
	if !ok {
		return TableInfo{}, fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	info := TableInfo{
		Name:   t.Name,
		Schema: db.cat.SchemaLines(t),
		Rows:   t.RowCount(),
	}
	for _, rel := range t.External {
		info.ReferencedBy = append(info.ReferencedBy,
			db.cat.TableByID(rel.From).Name+": "+db.cat.Describe(rel))
	}
	return info, nil
}
