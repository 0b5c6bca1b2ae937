package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tuannm99/novarel"
	"github.com/tuannm99/novarel/internal/sqlerr"
)

type Handler struct {
	db      *novarel.Database
	appName string
}

func NewHandler(db *novarel.Database, appName string) *Handler {
	return &Handler{db: db, appName: appName}
}

type ExecuteRequest struct {
	SQL string `json:"sql" binding:"required"`
}

// ExecuteResult is the data of an execute response. Location is set when a
// statement failed and points into the submitted text.
type ExecuteResult struct {
	ExecutionID uuid.UUID         `json:"execution_id"`
	Results     []*novarel.Result `json:"results"`
	Location    *sqlerr.Error     `json:"location,omitempty"`
}

// Execute runs the submitted script against the shared database.
func (h *Handler) Execute(c *gin.Context) {
	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err, "Invalid request body: sql is required")
		return
	}

	execID := uuid.New()
	results, err := h.db.Exec(req.SQL)
	out := ExecuteResult{ExecutionID: execID, Results: results}
	if out.Results == nil {
		out.Results = []*novarel.Result{}
	}
	if err != nil {
		e, ok := sqlerr.As(err)
		if !ok {
			slog.Error("httpapi: execute", "execution_id", execID, "err", err)
			fail(c, http.StatusInternalServerError, err, "Failed to execute statements")
			return
		}
		slog.Debug("httpapi: statement failed", "execution_id", execID, "kind", e.Kind, "err", e.Message)
		out.Location = e
		respond(c, http.StatusBadRequest, "error", out, "Statement failed", err)
		return
	}
	success(c, http.StatusOK, out, "Statements executed successfully")
}

func (h *Handler) ListTables(c *gin.Context) {
	success(c, http.StatusOK, gin.H{"tables": h.db.TableNames()}, "")
}

func (h *Handler) GetTable(c *gin.Context) {
	name := c.Param("name")
	info, err := h.db.Table(name)
	if err != nil {
		if errors.Is(err, novarel.ErrTableNotFound) {
			fail(c, http.StatusNotFound, err, "Table not found")
			return
		}
		fail(c, http.StatusInternalServerError, err, "Failed to describe table")
		return
	}
	success(c, http.StatusOK, info, "")
}

func (h *Handler) Health(c *gin.Context) {
	success(c, http.StatusOK, gin.H{"name": h.appName}, "ok")
}
