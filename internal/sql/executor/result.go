package executor

// Result is the generic statement result returned to the caller.
type Result struct {
	// Statement names the statement kind, e.g. "INSERT".
	Statement string `json:"statement"`

	Columns []string `json:"columns,omitempty"`
	Rows    [][]any  `json:"rows,omitempty"`

	// For DML:
	AffectedRows int64 `json:"affected_rows"`

	Message string `json:"message,omitempty"`
}
