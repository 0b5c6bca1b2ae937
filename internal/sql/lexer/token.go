package lexer

import (
	"fmt"

	"github.com/tuannm99/novarel/internal/sqlerr"
)

// TokenType tags the variant carried by a Token.
type TokenType uint8

const (
	TokenKeyword TokenType = iota + 1
	TokenOperator
	TokenIdentifier
	TokenNumber
	TokenString
	TokenDot
	TokenComma
	TokenSemicolon
	TokenOpenParen
	TokenCloseParen
	TokenEOF
)

var tokenTypeNames = map[TokenType]string{
	TokenKeyword:    "keyword",
	TokenOperator:   "operator",
	TokenIdentifier: "identifier",
	TokenNumber:     "number",
	TokenString:     "string",
	TokenDot:        "'.'",
	TokenComma:      "','",
	TokenSemicolon:  "';'",
	TokenOpenParen:  "'('",
	TokenCloseParen: "')'",
	TokenEOF:        "end of input",
}

func (t TokenType) String() string {
	if s, ok := tokenTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", uint8(t))
}

type Keyword uint8

const (
	KwNone Keyword = iota
	KwCreate
	KwSelect
	KwTable
	KwInsert
	KwInto
	KwValues
	KwPrimary
	KwFrom
	KwForeign
	KwKey
	KwReferences
	KwConstraint
	KwInner
	KwLeft
	KwRight
	KwOuter
	KwJoin
	KwOrder
	KwWhere
	KwGroup
	KwBy
	KwHaving
	KwNull
	KwAs
	KwAuto
	KwIncrement
	KwIs
	KwBetween
	KwAnd
	KwOr
	KwIn
	KwLike
	KwNot
	KwOffset
	KwLimit
	KwUnion
	KwAsc
	KwDesc
	KwTrue
	KwFalse
	KwDefault
)

// keywords maps the literal (lowercase) spelling of every keyword.
var keywords = map[string]Keyword{
	"create":     KwCreate,
	"select":     KwSelect,
	"table":      KwTable,
	"insert":     KwInsert,
	"into":       KwInto,
	"values":     KwValues,
	"primary":    KwPrimary,
	"from":       KwFrom,
	"foreign":    KwForeign,
	"key":        KwKey,
	"references": KwReferences,
	"constraint": KwConstraint,
	"inner":      KwInner,
	"left":       KwLeft,
	"right":      KwRight,
	"outer":      KwOuter,
	"join":       KwJoin,
	"order":      KwOrder,
	"where":      KwWhere,
	"group":      KwGroup,
	"by":         KwBy,
	"having":     KwHaving,
	"null":       KwNull,
	"as":         KwAs,
	"auto":       KwAuto,
	"increment":  KwIncrement,
	"is":         KwIs,
	"between":    KwBetween,
	"and":        KwAnd,
	"or":         KwOr,
	"in":         KwIn,
	"like":       KwLike,
	"not":        KwNot,
	"offset":     KwOffset,
	"limit":      KwLimit,
	"union":      KwUnion,
	"asc":        KwAsc,
	"desc":       KwDesc,
	"true":       KwTrue,
	"false":      KwFalse,
	"default":    KwDefault,
}

var keywordNames = func() map[Keyword]string {
	m := make(map[Keyword]string, len(keywords))
	for s, k := range keywords {
		m[k] = s
	}
	return m
}()

func (k Keyword) String() string {
	if s, ok := keywordNames[k]; ok {
		return s
	}
	return "none"
}

// LookupKeyword returns the keyword spelled exactly as s.
func LookupKeyword(s string) (Keyword, bool) {
	k, ok := keywords[s]
	return k, ok
}

type Operator uint8

const (
	OpNone Operator = iota
	OpEqual
	OpNotEqual
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual
	OpPlus
	OpMinus
	OpMultiply
	OpDivide
)

var operators = map[string]Operator{
	"=":  OpEqual,
	"<>": OpNotEqual,
	">":  OpGreater,
	">=": OpGreaterEqual,
	"<":  OpLess,
	"<=": OpLessEqual,
	"+":  OpPlus,
	"-":  OpMinus,
	"*":  OpMultiply,
	"/":  OpDivide,
}

var operatorNames = func() map[Operator]string {
	m := make(map[Operator]string, len(operators))
	for s, o := range operators {
		m[o] = s
	}
	return m
}()

func (o Operator) String() string {
	if s, ok := operatorNames[o]; ok {
		return s
	}
	return "none"
}

// Token is one lexical unit. Only the payload fields of its Type are set.
type Token struct {
	Type TokenType

	Keyword  Keyword  // TokenKeyword
	Operator Operator // TokenOperator

	// Text is the identifier name for TokenIdentifier and the source
	// spelling for TokenNumber.
	Text     string
	Number   float64 // TokenNumber
	HasPoint bool    // TokenNumber
	Str      string  // TokenString

	// Begin inclusive, End exclusive, in characters.
	Begin int
	End   int
}

// Span returns the token's source range.
func (t Token) Span() sqlerr.Span {
	return sqlerr.Span{Start: t.Begin, End: t.End}
}

// IsKeyword reports whether t is the keyword k.
func (t Token) IsKeyword(k Keyword) bool {
	return t.Type == TokenKeyword && t.Keyword == k
}

// Describe renders the token for error messages.
func (t Token) Describe() string {
	switch t.Type {
	case TokenKeyword:
		return "keyword " + t.Keyword.String()
	case TokenOperator:
		return "operator " + t.Operator.String()
	case TokenIdentifier:
		return "identifier " + t.Text
	case TokenNumber:
		return "number " + t.Text
	case TokenString:
		return fmt.Sprintf("string %q", t.Str)
	default:
		return t.Type.String()
	}
}
