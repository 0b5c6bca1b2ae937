package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novarel"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *novarel.Database) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := novarel.NewDatabase()
	return NewRouter(db, Config{AppName: "novarel-test"}), db
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestExecute_Success(t *testing.T) {
	r, db := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/v1/execute", ExecuteRequest{
		SQL: "create table t(id int primary key, name text); insert into t values (1, 'a'), (2, 'b')",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", env.Status)

	var data ExecuteResult
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.ExecutionID.String())
	require.Len(t, data.Results, 2)
	assert.Equal(t, int64(2), data.Results[1].AffectedRows)
	assert.Nil(t, data.Location)

	info, err := db.Table("t")
	require.NoError(t, err)
	assert.Equal(t, 2, info.Rows)
}

func TestExecute_StatementError(t *testing.T) {
	r, _ := newTestRouter(t)

	sql := "create table t(id int primary key); insert into t values ('x')"
	w, env := do(t, r, http.MethodPost, "/api/v1/execute", ExecuteRequest{SQL: sql})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", env.Status)
	assert.Contains(t, env.Error, "cannot accept a value of type TEXT")

	var data ExecuteResult
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotNil(t, data.Location)
	assert.Equal(t, "'x'", sql[data.Location.Start:data.Location.End])
	assert.Len(t, data.Results, 1)
}

func TestExecute_BadBody(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/v1/execute", map[string]string{"query": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", env.Status)
}

func TestTables(t *testing.T) {
	r, db := newTestRouter(t)
	_, err := db.Exec("create table a(id int primary key); create table b(aid int references a)")
	require.NoError(t, err)

	w, env := do(t, r, http.MethodGet, "/api/v1/tables", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tables":["a","b"]}`, string(env.Data))

	w, env = do(t, r, http.MethodGet, "/api/v1/tables/a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var info novarel.TableInfo
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, []string{"id INT PRIMARY KEY"}, info.Schema)
	assert.Equal(t, []string{"b: FOREIGN KEY (aid) REFERENCES a (id)"}, info.ReferencedBy)

	w, _ = do(t, r, http.MethodGet, "/api/v1/tables/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	w, env := do(t, r, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"novarel-test"}`, string(env.Data))
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/execute", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
