package lexer

import (
	"strconv"
	"strings"
)

type status uint8

const (
	statusValid status = iota
	statusInvalid
	statusFinished
)

// recognizer is a per-token-kind state machine. It is fed one lowercase
// character at a time until it reports finished or invalid.
type recognizer interface {
	kind() TokenType
	reset()
	// feed consumes c; eof marks the position past the last character.
	feed(c rune, eof bool) status
	// accept validates a finished match over lower[begin:end].
	accept(lower []rune, begin, end int) bool
	// token builds the token for a match; ok=false means nothing is emitted.
	token(lower, src []rune, begin, end int) (tok Token, ok bool)
	// explains reports whether this recognizer may describe a lexing failure.
	explains() bool
	errorMessage() string
}

// acceptAll is embedded by recognizers without a fixed vocabulary.
type acceptAll struct{}

func (acceptAll) accept([]rune, int, int) bool { return true }

func isLower(c rune) bool { return c >= 'a' && c <= 'z' }
func isDigit(c rune) bool { return c >= '0' && c <= '9' }

// ----- whitespace -----

type whitespaceRecognizer struct {
	acceptAll
	seen bool
}

func (r *whitespaceRecognizer) kind() TokenType { return 0 }
func (r *whitespaceRecognizer) reset()          { r.seen = false }

func (r *whitespaceRecognizer) feed(c rune, eof bool) status {
	ws := !eof && (c == ' ' || c == '\n' || c == '\t' || c == '\r')
	if r.seen {
		if !ws {
			return statusFinished
		}
		return statusValid
	}
	if ws {
		r.seen = true
		return statusValid
	}
	return statusInvalid
}

func (r *whitespaceRecognizer) token([]rune, []rune, int, int) (Token, bool) {
	return Token{}, false
}

func (r *whitespaceRecognizer) explains() bool      { return false }
func (r *whitespaceRecognizer) errorMessage() string { return "" }

// ----- single character punctuation -----

type charRecognizer struct {
	acceptAll
	typ  TokenType
	char rune
	has  bool
}

func (r *charRecognizer) kind() TokenType { return r.typ }
func (r *charRecognizer) reset()          { r.has = false }

func (r *charRecognizer) feed(c rune, eof bool) status {
	if r.has {
		return statusFinished
	}
	if !eof && c == r.char {
		r.has = true
		return statusValid
	}
	return statusInvalid
}

func (r *charRecognizer) token([]rune, []rune, int, int) (Token, bool) {
	return Token{Type: r.typ}, true
}

func (r *charRecognizer) explains() bool      { return false }
func (r *charRecognizer) errorMessage() string { return "" }

// ----- operator -----

const operatorChars = "+-*/=<>&%$?"

type operatorRecognizer struct {
	inOperator bool
	op         Operator
}

func (r *operatorRecognizer) kind() TokenType { return TokenOperator }

func (r *operatorRecognizer) reset() {
	r.inOperator = false
	r.op = OpNone
}

func (r *operatorRecognizer) feed(c rune, eof bool) status {
	if !eof && strings.ContainsRune(operatorChars, c) {
		r.inOperator = true
		return statusValid
	}
	if r.inOperator {
		return statusFinished
	}
	return statusInvalid
}

func (r *operatorRecognizer) accept(lower []rune, begin, end int) bool {
	op, ok := operators[string(lower[begin:end])]
	if ok {
		r.op = op
	}
	return ok
}

func (r *operatorRecognizer) token([]rune, []rune, int, int) (Token, bool) {
	return Token{Type: TokenOperator, Operator: r.op}, true
}

func (r *operatorRecognizer) explains() bool { return true }

func (r *operatorRecognizer) errorMessage() string {
	if r.inOperator {
		return "not a valid operator"
	}
	return ""
}

// ----- keyword -----

type keywordRecognizer struct {
	inKeyword bool
	kw        Keyword
}

func (r *keywordRecognizer) kind() TokenType { return TokenKeyword }

func (r *keywordRecognizer) reset() {
	r.inKeyword = false
	r.kw = KwNone
}

func (r *keywordRecognizer) feed(c rune, eof bool) status {
	if !eof && isLower(c) {
		r.inKeyword = true
		return statusValid
	}
	if r.inKeyword {
		return statusFinished
	}
	return statusInvalid
}

// accept admits only the enumerated keyword spellings; any other word is
// left to the identifier recognizer.
func (r *keywordRecognizer) accept(lower []rune, begin, end int) bool {
	kw, ok := LookupKeyword(string(lower[begin:end]))
	if ok {
		r.kw = kw
	}
	return ok
}

func (r *keywordRecognizer) token([]rune, []rune, int, int) (Token, bool) {
	return Token{Type: TokenKeyword, Keyword: r.kw}, true
}

func (r *keywordRecognizer) explains() bool      { return false }
func (r *keywordRecognizer) errorMessage() string { return "" }

// ----- identifier -----

// identifierRecognizer matches bare names (letter, then letters, digits,
// '-' or '_') and names quoted with '`' or '"'.
type identifierRecognizer struct {
	acceptAll
	started bool
	quote   rune // 0 for bare identifiers
	first   bool
	closed  bool

	startsWrong     bool
	nothingAfter    bool
	closingExpected bool
}

func (r *identifierRecognizer) kind() TokenType { return TokenIdentifier }

func (r *identifierRecognizer) reset() {
	*r = identifierRecognizer{first: true}
}

func (r *identifierRecognizer) problem() bool {
	return r.startsWrong || r.nothingAfter || r.closingExpected
}

func identTail(c rune) bool { return isDigit(c) || c == '-' || c == '_' }
func identChar(c rune) bool { return isLower(c) || identTail(c) }

func (r *identifierRecognizer) feed(c rune, eof bool) status {
	if r.closed {
		if r.problem() {
			return statusInvalid
		}
		return statusFinished
	}
	if !r.started {
		r.started = true
		if !eof && (c == '`' || c == '"') {
			r.quote = c
			return statusValid
		}
	}
	if r.first {
		r.first = false
		if eof || !identChar(c) {
			r.nothingAfter = r.quote != 0
			return statusInvalid
		}
		if identTail(c) {
			r.startsWrong = true
		}
		return statusValid
	}
	if !eof && identChar(c) {
		return statusValid
	}
	if r.quote == 0 {
		if r.problem() {
			return statusInvalid
		}
		return statusFinished
	}
	if !eof && c == r.quote {
		r.closed = true
		return statusValid
	}
	r.closingExpected = true
	return statusInvalid
}

func (r *identifierRecognizer) token(lower, _ []rune, begin, end int) (Token, bool) {
	if r.quote != 0 {
		begin++
		end--
	}
	return Token{Type: TokenIdentifier, Text: string(lower[begin:end])}, true
}

func (r *identifierRecognizer) explains() bool { return true }

func (r *identifierRecognizer) errorMessage() string {
	switch {
	case r.startsWrong:
		return "identifier must start with a letter"
	case r.nothingAfter:
		return "content expected after opening quote " + string(r.quote)
	case r.closingExpected:
		return "closing quote " + string(r.quote) + " expected"
	}
	return ""
}

// ----- number -----

type numberState uint8

const (
	numBeforeToken numberState = iota
	numBeforeDot
	numOnDot
	numAfterDot
)

type numberRecognizer struct {
	acceptAll
	state  numberState
	digits int
}

func (r *numberRecognizer) kind() TokenType { return TokenNumber }

func (r *numberRecognizer) reset() {
	r.state = numBeforeToken
	r.digits = 0
}

func (r *numberRecognizer) feed(c rune, eof bool) status {
	digit := !eof && isDigit(c)
	switch r.state {
	case numBeforeToken:
		if !eof && (c == '-' || digit) {
			r.state = numBeforeDot
			if digit {
				r.digits++
			}
			return statusValid
		}
		return statusInvalid
	case numBeforeDot:
		switch {
		case digit:
			r.digits++
			return statusValid
		case !eof && c == '.':
			r.state = numOnDot
			return statusValid
		case r.digits == 0:
			// a lone '-' is not a number
			return statusInvalid
		}
		return statusFinished
	case numOnDot:
		if digit {
			r.state = numAfterDot
			return statusValid
		}
		return statusInvalid
	default:
		if digit {
			return statusValid
		}
		return statusFinished
	}
}

func (r *numberRecognizer) token(lower, _ []rune, begin, end int) (Token, bool) {
	text := string(lower[begin:end])
	// the grammar admits only strings ParseFloat understands
	v, _ := strconv.ParseFloat(text, 64)
	return Token{
		Type:     TokenNumber,
		Text:     text,
		Number:   v,
		HasPoint: r.state != numBeforeDot,
	}, true
}

func (r *numberRecognizer) explains() bool { return true }

func (r *numberRecognizer) errorMessage() string {
	if r.state == numOnDot {
		return "at least one digit required after the decimal point"
	}
	return ""
}

// ----- string -----

type stringRecognizer struct {
	acceptAll
	open    bool
	closed  bool
	escaped bool
}

func (r *stringRecognizer) kind() TokenType { return TokenString }

func (r *stringRecognizer) reset() {
	*r = stringRecognizer{}
}

func (r *stringRecognizer) feed(c rune, eof bool) status {
	switch {
	case r.closed:
		return statusFinished
	case !r.open:
		if !eof && c == '\'' {
			r.open = true
			return statusValid
		}
		return statusInvalid
	case eof:
		return statusInvalid
	case r.escaped:
		r.escaped = false
	case c == '\\':
		r.escaped = true
	case c == '\'':
		r.closed = true
	}
	return statusValid
}

// token decodes the literal from the source text so case is preserved.
func (r *stringRecognizer) token(_, src []rune, begin, end int) (Token, bool) {
	var b strings.Builder
	escaped := false
	for _, c := range src[begin+1 : end-1] {
		switch {
		case escaped:
			if c == 'n' {
				c = '\n'
			}
			b.WriteRune(c)
			escaped = false
		case c == '\\':
			escaped = true
		default:
			b.WriteRune(c)
		}
	}
	return Token{Type: TokenString, Str: b.String()}, true
}

func (r *stringRecognizer) explains() bool { return true }

func (r *stringRecognizer) errorMessage() string {
	if r.open {
		return "unterminated string literal"
	}
	return ""
}
