package novarel

import (
	"github.com/tuannm99/novarel/internal/catalog"
	"github.com/tuannm99/novarel/internal/sql/executor"
	"github.com/tuannm99/novarel/internal/sqlerr"
)

// Result is the outcome of one statement.
type Result = executor.Result

// Error is a located statement failure; Start/End slice the source text.
type Error = sqlerr.Error

var ErrTableNotFound = catalog.ErrTableNotFound

// TableInfo describes one table for listings.
type TableInfo struct {
	Name   string   `json:"name"`
	Schema []string `json:"schema"`
	Rows   int      `json:"rows"`
	// ReferencedBy lists the foreign keys of other tables pointing here.
	ReferencedBy []string `json:"referenced_by,omitempty"`
}
