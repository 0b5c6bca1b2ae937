package relwire

import (
	"github.com/tuannm99/novarel"
	"github.com/tuannm99/novarel/internal/sqlerr"
)

// Op selects what a request asks for. The zero value executes SQL.
type Op string

const (
	OpExecute  Op = ""
	OpTables   Op = "tables"
	OpDescribe Op = "describe"
)

// ExecuteRequest carries one script of ';'-separated statements, or a
// catalog lookup when Op is set (Table names the table for OpDescribe).
type ExecuteRequest struct {
	ID    uint64 `json:"id"`
	Op    Op     `json:"op,omitempty"`
	SQL   string `json:"sql,omitempty"`
	Table string `json:"table,omitempty"`
}

// ExecuteResponse answers the request with the same ID. Results holds the
// statements that completed; Error is set when one failed.
type ExecuteResponse struct {
	ID      uint64             `json:"id"`
	Results []*novarel.Result  `json:"results,omitempty"`
	Tables  []string           `json:"tables,omitempty"`
	Table   *novarel.TableInfo `json:"table,omitempty"`
	Error   *sqlerr.Error      `json:"error,omitempty"`
	// Failure reports errors that are not tied to the request text.
	Failure string `json:"failure,omitempty"`
}

// wireError keeps located errors intact and wraps anything else as an
// execution error over the whole request.
func wireError(sql string, err error) *sqlerr.Error {
	if e, ok := sqlerr.As(err); ok {
		return e
	}
	return sqlerr.Exec(sqlerr.Span{Start: 0, End: len([]rune(sql))}, "%v", err)
}

func dispatch(db *novarel.Database, req ExecuteRequest) ExecuteResponse {
	resp := ExecuteResponse{ID: req.ID}
	switch req.Op {
	case OpExecute:
		res, err := db.Exec(req.SQL)
		resp.Results = res
		if err != nil {
			resp.Error = wireError(req.SQL, err)
		}
	case OpTables:
		resp.Tables = db.TableNames()
		if resp.Tables == nil {
			resp.Tables = []string{}
		}
	case OpDescribe:
		info, err := db.Table(req.Table)
		if err != nil {
			resp.Failure = err.Error()
			break
		}
		resp.Table = &info
	default:
		resp.Failure = "relwire: unknown op " + string(req.Op)
	}
	return resp
}
