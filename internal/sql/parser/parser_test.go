package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novarel/internal/record"
	"github.com/tuannm99/novarel/internal/sql/lexer"
	"github.com/tuannm99/novarel/internal/sqlerr"
)

func cursor(t *testing.T, sql string) *lexer.Cursor {
	t.Helper()
	toks, err := lexer.Tokenize(sql)
	require.NoError(t, err)
	return lexer.NewCursor(toks)
}

func parseOne(t *testing.T, sql string) Statement {
	t.Helper()
	stmt, err := Parse(cursor(t, sql))
	require.NoError(t, err)
	return stmt
}

func parseErr(t *testing.T, sql string) *sqlerr.Error {
	t.Helper()
	_, err := Parse(cursor(t, sql))
	require.Error(t, err)
	e, ok := sqlerr.As(err)
	require.True(t, ok, "want *sqlerr.Error, got %T", err)
	require.Equal(t, sqlerr.KindParse, e.Kind)
	return e
}

func asCreate(t *testing.T, stmt Statement) *CreateTableStmt {
	t.Helper()
	s, ok := stmt.(*CreateTableStmt)
	require.True(t, ok, "want *CreateTableStmt, got %T", stmt)
	return s
}

func TestParse_CreateTable_CompositePrimaryKey(t *testing.T) {
	sql := "create table a(a int not null, b int not null, primary key(a,b))"
	s := asCreate(t, parseOne(t, sql))

	assert.Equal(t, "a", s.Table.Name)
	require.Len(t, s.Columns, 2)
	assert.Equal(t, "a", s.Columns[0].Name.Name)
	assert.Equal(t, record.ColInt, s.Columns[0].Type)
	assert.True(t, s.Columns[0].NotNull)
	assert.Equal(t, []string{"a", "b"}, identNames(s.PrimaryKey))

	assert.Equal(t, strings.Index(sql, "primary"), s.PrimaryKeySpan.Start)
	assert.Equal(t, len(sql)-1, s.PrimaryKeySpan.End)
	assert.Equal(t, sqlerr.Span{Start: 0, End: len(sql)}, s.Span())
}

func TestParse_CreateTable_InlineConstraints(t *testing.T) {
	s := asCreate(t, parseOne(t, "create table child(id int primary key, p int references parent, q int references other(code))"))

	assert.Equal(t, []string{"id"}, identNames(s.PrimaryKey))
	require.Len(t, s.ForeignKeys, 2)

	assert.Equal(t, []string{"p"}, s.ForeignKeys[0].ColumnNames())
	assert.Equal(t, "parent", s.ForeignKeys[0].RefTable.Name)
	assert.Nil(t, s.ForeignKeys[0].RefColumns)

	assert.Equal(t, []string{"q"}, s.ForeignKeys[1].ColumnNames())
	assert.Equal(t, []string{"code"}, identNames(s.ForeignKeys[1].RefColumns))
}

func TestParse_CreateTable_ForeignKeyConstraint(t *testing.T) {
	sql := "create table b(a int, b int, constraint fk_ab foreign key(a,b) references a(b,a))"
	s := asCreate(t, parseOne(t, sql))

	require.Len(t, s.ForeignKeys, 1)
	fk := s.ForeignKeys[0]
	assert.Equal(t, []string{"a", "b"}, fk.ColumnNames())
	assert.Equal(t, "a", fk.RefTable.Name)
	assert.Equal(t, []string{"b", "a"}, identNames(fk.RefColumns))
	assert.Equal(t, strings.Index(sql, "foreign"), fk.Span.Start)
	assert.Equal(t, len(sql)-1, fk.Span.End)
}

func TestParse_CreateTable_TypeAliasesAndLength(t *testing.T) {
	s := asCreate(t, parseOne(t, "CREATE TABLE t(name VARCHAR(30), n integer, f real, ok bool, x number)"))

	require.Len(t, s.Columns, 5)
	assert.Equal(t, record.ColText, s.Columns[0].Type)
	assert.Equal(t, 30, s.Columns[0].Length)
	assert.Equal(t, record.ColInt, s.Columns[1].Type)
	assert.Equal(t, record.ColFloat, s.Columns[2].Type)
	assert.Equal(t, record.ColBool, s.Columns[3].Type)
	assert.Equal(t, record.ColFloat, s.Columns[4].Type)
	assert.False(t, s.Columns[0].NotNull)
}

func TestParse_CreateTable_EmptyDefinition(t *testing.T) {
	s := asCreate(t, parseOne(t, "create table t()"))
	assert.Empty(t, s.Columns)
}

func TestParse_CreateTable_SecondPrimaryKey(t *testing.T) {
	cases := []string{
		"create table t(a int primary key, b int, primary key(b))",
		"create table t(primary key(a), a int primary key)",
		"create table t(a int, primary key(a), primary key(a))",
		"create table t(a int primary key primary key)",
	}
	for _, sql := range cases {
		e := parseErr(t, sql)
		assert.Contains(t, e.Message, "PRIMARY KEY is already declared as (a)", sql)
		assert.Equal(t, strings.LastIndex(sql, "primary"), e.Start, sql)
		assert.Equal(t, strings.LastIndex(sql, "key")+3, e.End, sql)
	}
}

func TestParse_CreateTable_UnknownType(t *testing.T) {
	sql := "create table t(a money)"
	e := parseErr(t, sql)
	assert.Equal(t, "type 'money' does not exist", e.Message)
	assert.Equal(t, strings.Index(sql, "money"), e.Start)
	assert.Equal(t, strings.Index(sql, "money")+5, e.End)
}

func TestParse_CreateTable_Errors(t *testing.T) {
	cases := []struct {
		sql string
		msg string
	}{
		{"create table t(a int, a text)", "column a is already defined"},
		{"create table t(a int not null not null)", "NOT NULL attribute can only be set once"},
		{"create table t(a int references p references q)", "for a column to reference more than one table use a FOREIGN KEY constraint"},
		{"create table t(a int, foreign key(a,a) references p(x,y))", "FOREIGN KEY cannot contain columns more than once"},
		{"create table t(a int, primary key(a,a))", "PRIMARY KEY cannot contain columns more than once"},
		{"create table t(a int, b int, foreign key(a,b) references p(x))", "FOREIGN KEY has 2 column(s) but references 1 column(s) of p"},
		{"create table t(a int, constraint c unique(a))", "expected PRIMARY KEY or FOREIGN KEY after constraint name"},
		{"create table select(a int)", "expected table name, keyword SELECT cannot be used as an identifier"},
		{"create t(a int)", "expected keyword TABLE for CREATE TABLE statement"},
		{"create table t(a)", "column type expected"},
		{"create table t(a varchar(1.5))", "expected type length"},
		{"create table t(1)", "expected column name for a column definition or a constraint definition"},
	}
	for _, tc := range cases {
		e := parseErr(t, tc.sql)
		assert.Equal(t, tc.msg, e.Message, tc.sql)
	}
}

func TestParse_CreateTable_MissingCloseParen(t *testing.T) {
	sql := "create table t(a int"
	e := parseErr(t, sql)
	assert.Contains(t, e.Message, "expected either ')' to end table definition")
	assert.Equal(t, len(sql), e.Start)
	assert.Equal(t, len(sql), e.End)
}

func TestParse_Insert(t *testing.T) {
	sql := "insert into b(a,b) values (10,10),(20,10)"
	stmt := parseOne(t, sql)

	s, ok := stmt.(*InsertStmt)
	require.True(t, ok, "want *InsertStmt, got %T", stmt)
	assert.Equal(t, "b", s.Table.Name)
	assert.Equal(t, []string{"a", "b"}, identNames(s.Columns))
	require.Len(t, s.Rows, 2)
	assert.Equal(t, float64(20), s.Rows[1].Values[0].Number)
	assert.Equal(t, strings.Index(sql, "(20"), s.Rows[1].Span.Start)
	assert.Equal(t, len(sql), s.Rows[1].Span.End)
}

func TestParse_Insert_Literals(t *testing.T) {
	stmt := parseOne(t, "INSERT INTO t VALUES (1, 2.5, 'Hi', true, FALSE, null, -3)")

	s := stmt.(*InsertStmt)
	assert.Nil(t, s.Columns)
	require.Len(t, s.Rows, 1)
	v := s.Rows[0].Values
	require.Len(t, v, 7)

	assert.Equal(t, LitNumber, v[0].Kind)
	assert.False(t, v[0].HasPoint)
	assert.Equal(t, LitNumber, v[1].Kind)
	assert.True(t, v[1].HasPoint)
	assert.Equal(t, 2.5, v[1].Number)
	assert.Equal(t, LitString, v[2].Kind)
	assert.Equal(t, "Hi", v[2].Str)
	assert.Equal(t, LitBool, v[3].Kind)
	assert.True(t, v[3].Bool)
	assert.False(t, v[4].Bool)
	assert.Equal(t, LitNull, v[5].Kind)
	assert.Equal(t, float64(-3), v[6].Number)
}

func TestParse_Insert_Errors(t *testing.T) {
	cases := []struct {
		sql string
		msg string
	}{
		{"insert into t(a, b, a) values (1,2,3)", "column a cannot be inserted twice"},
		{"insert into t values (a)", "constant value expected, such as a string, number, boolean or null"},
		{"insert into t (1)", "expected column name"},
		{"insert into t", "expected keyword VALUES before the rows to insert"},
		{"insert t values (1)", "expected keyword INTO after INSERT"},
		{"insert into t values (1 2)", "expected ',' or ')' in row of values"},
		{"insert into t values 1", "expected '(' to start a row of values"},
	}
	for _, tc := range cases {
		e := parseErr(t, tc.sql)
		assert.Equal(t, tc.msg, e.Message, tc.sql)
	}
}

func TestParse_Select(t *testing.T) {
	s, ok := parseOne(t, "select * from users").(*SelectStmt)
	require.True(t, ok)
	assert.Equal(t, "users", s.Table.Name)
	assert.Nil(t, s.Columns)

	s, ok = parseOne(t, "SELECT id, name FROM users").(*SelectStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"id", "name"}, identNames(s.Columns))

	e := parseErr(t, "select * users")
	assert.Equal(t, "expected keyword FROM after the selected columns", e.Message)
}

func TestParse_Dispatch(t *testing.T) {
	e := parseErr(t, "users select")
	assert.Equal(t, "statement has to begin with a keyword", e.Message)
	assert.Equal(t, 0, e.Start)
	assert.Equal(t, 5, e.End)

	e = parseErr(t, "where x")
	assert.Equal(t, "no statement begins with the keyword WHERE", e.Message)
}

func TestParse_LeavesCursorOnTerminator(t *testing.T) {
	c := cursor(t, "insert into t values (1); select * from t")
	_, err := Parse(c)
	require.NoError(t, err)
	assert.Equal(t, lexer.TokenSemicolon, c.Read().Type)
}

func TestParseAll(t *testing.T) {
	stmts, err := ParseAll(cursor(t, ";create table a(x int);; insert into a values (1);select * from a"))
	require.NoError(t, err)
	require.Len(t, stmts, 3)
	assert.Equal(t, "CREATE TABLE", StatementName(stmts[0]))
	assert.Equal(t, "INSERT", StatementName(stmts[1]))
	assert.Equal(t, "SELECT", StatementName(stmts[2]))

	stmts, err = ParseAll(cursor(t, "  "))
	require.NoError(t, err)
	assert.Empty(t, stmts)
}

func TestParseAll_StatementAlreadyFinished(t *testing.T) {
	sql := "create table a(x int); select * from a b"
	stmts, err := ParseAll(cursor(t, sql))
	require.Error(t, err)
	assert.Nil(t, stmts)

	e, ok := sqlerr.As(err)
	require.True(t, ok)
	assert.Equal(t, "SELECT statement is already finished", e.Message)
	assert.Equal(t, len(sql)-1, e.Start)
	assert.Equal(t, len(sql), e.End)
}
