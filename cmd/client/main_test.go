package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novarel"
)

func TestStatementComplete(t *testing.T) {
	assert.False(t, statementComplete("select * from t"))
	assert.True(t, statementComplete("select * from t;"))
	assert.False(t, statementComplete("insert into t values ('a;"))
	assert.False(t, statementComplete(`insert into t values ('it\';`))
	assert.True(t, statementComplete(`insert into t values ('it\'s');`))
}

func TestCompactOneLine(t *testing.T) {
	assert.Equal(t, "create table t( a int )", compactOneLine("create table t(\n\ta int\n)"))
}

func TestHistory_AppendLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "history")
	h := NewHistory(path)
	require.NoError(t, h.Append("select *\nfrom t;"))
	require.NoError(t, h.Append("  "))
	require.NoError(t, h.Append("insert into t values (1);"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "select * from t;\ninsert into t values (1);\n", string(b))

	loaded := NewHistory(path)
	require.NoError(t, loaded.Load(1))
	assert.Equal(t, []string{"insert into t values (1);"}, loaded.lines)
}

func TestExecuteAndPrint(t *testing.T) {
	be := localBackend{db: novarel.NewDatabase()}
	var out bytes.Buffer

	require.NoError(t, execute(&out, be, "create table t(id int primary key, name text); insert into t values (1, 'ann'), (2, null);"))
	assert.Equal(t, "table t created\nOK (2 affected)\n", out.String())

	out.Reset()
	require.NoError(t, execute(&out, be, "select * from t"))
	assert.Equal(t,
		"id | name\n"+
			"---+-----\n"+
			"1  | ann \n"+
			"2  | NULL\n"+
			"(2 rows)\n", out.String())
}

func TestExecute_PrintsHighlightedError(t *testing.T) {
	be := localBackend{db: novarel.NewDatabase()}
	var out bytes.Buffer

	err := execute(&out, be, "create table t(a int); insert into t values ('x')")
	require.Error(t, err)
	assert.Contains(t, out.String(), "table t created\n")
	assert.Contains(t, out.String(), "execution error: column a is of type INT and cannot accept a value of type TEXT")
	assert.Contains(t, out.String(), "\x1b[1m\x1b[4m\x1b[31m'x'\x1b[0m")
}

func TestRunMeta(t *testing.T) {
	be := localBackend{db: novarel.NewDatabase()}
	h := NewHistory("")
	var out bytes.Buffer

	assert.False(t, runMeta(&out, be, h, "\\dt"))
	assert.Equal(t, "no tables\n", out.String())

	_, err := be.Exec("create table p(id int primary key); create table c(pid int references p)")
	require.NoError(t, err)

	out.Reset()
	runMeta(&out, be, h, "\\dt")
	assert.Equal(t, "p\nc\n", out.String())

	out.Reset()
	runMeta(&out, be, h, "\\d P")
	assert.Equal(t, "table p (0 rows)\n  id INT PRIMARY KEY\nreferenced by:\n  c: FOREIGN KEY (pid) REFERENCES p (id)\n", out.String())

	out.Reset()
	runMeta(&out, be, h, "\\d nope")
	assert.Contains(t, out.String(), "error: novarel: table not found: nope")

	out.Reset()
	runMeta(&out, be, h, "\\nope")
	assert.Equal(t, "unknown command: \\nope\n", out.String())

	assert.True(t, runMeta(&out, be, h, "\\q"))
	assert.True(t, runMeta(&out, be, h, "exit"))
}
