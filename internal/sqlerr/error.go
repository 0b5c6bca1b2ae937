package sqlerr

import (
	"errors"
	"fmt"
)

// Kind separates the failure families of a statement.
type Kind uint8

const (
	KindLex Kind = iota + 1
	KindParse
	KindExec
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "lex"
	case KindParse:
		return "parse"
	case KindExec:
		return "execution"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "lex":
		*k = KindLex
	case "parse":
		*k = KindParse
	case "execution":
		*k = KindExec
	default:
		return fmt.Errorf("sqlerr: unknown error kind %q", b)
	}
	return nil
}

// Span is a character range in the source text, end exclusive.
type Span struct {
	Start int
	End   int
}

// Join returns the span covering a through b.
func Join(a, b Span) Span {
	return Span{Start: a.Start, End: b.End}
}

// Error is a located statement failure. Start/End slice the statement text.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error at %d:%d: %s", e.Kind, e.Start, e.End, e.Message)
}

// Span returns the error range.
func (e *Error) Span() Span { return Span{Start: e.Start, End: e.End} }

func newError(kind Kind, msg string, start int, end ...int) *Error {
	e := &Error{Kind: kind, Message: msg, Start: start, End: start}
	if len(end) > 0 {
		e.End = end[0]
	}
	return e
}

// Lex builds a lexical error. End defaults to start.
func Lex(msg string, start int, end ...int) *Error {
	return newError(KindLex, msg, start, end...)
}

// Parse builds a parse error covering span.
func Parse(span Span, format string, args ...any) *Error {
	return newError(KindParse, fmt.Sprintf(format, args...), span.Start, span.End)
}

// Exec builds an execution error covering span.
func Exec(span Span, format string, args ...any) *Error {
	return newError(KindExec, fmt.Sprintf(format, args...), span.Start, span.End)
}

// As unwraps err into a *Error.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err is a located error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
