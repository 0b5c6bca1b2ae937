// Package lexer turns statement text into tokens.
//
// Every token kind has its own recognizer. All recognizers are fed the same
// character in a fixed registration order; a match is emitted once a
// recognizer finishes and no recognizer registered after it is still
// extending a candidate. Among simultaneously finished recognizers the
// earliest registered wins. Matching is case-insensitive: recognizers see
// the lowercased text, string literals keep their source spelling.
package lexer

import (
	"unicode"

	"github.com/tuannm99/novarel/internal/sqlerr"
)

// newRecognizers returns the recognizers in priority order. The order is
// load-bearing: it resolves every tie between finished candidates.
func newRecognizers() []recognizer {
	return []recognizer{
		&whitespaceRecognizer{},
		&operatorRecognizer{},
		&keywordRecognizer{},
		&identifierRecognizer{},
		&numberRecognizer{},
		&stringRecognizer{},
		&charRecognizer{typ: TokenDot, char: '.'},
		&charRecognizer{typ: TokenComma, char: ','},
		&charRecognizer{typ: TokenSemicolon, char: ';'},
		&charRecognizer{typ: TokenOpenParen, char: '('},
		&charRecognizer{typ: TokenCloseParen, char: ')'},
	}
}

type lexer struct {
	src   []rune
	lower []rune

	recs   []recognizer
	states []status

	tokens []Token
	begin  int // first character of the current candidate
	pos    int
	last   int // recognizer that was last valid, -1 if none
}

// Tokenize splits text into tokens. The result always ends with exactly one
// TokenEOF whose Begin and End equal the input length.
func Tokenize(text string) ([]Token, error) {
	src := []rune(text)
	lower := make([]rune, len(src))
	for i, c := range src {
		lower[i] = unicode.ToLower(c)
	}

	l := &lexer{
		src:   src,
		lower: lower,
		recs:  newRecognizers(),
		last:  -1,
	}
	l.states = make([]status, len(l.recs))
	l.reset()

	if err := l.run(); err != nil {
		return nil, err
	}
	n := len(src)
	l.tokens = append(l.tokens, Token{Type: TokenEOF, Begin: n, End: n})
	return l.tokens, nil
}

func (l *lexer) reset() {
	for i, r := range l.recs {
		r.reset()
		l.states[i] = statusValid
	}
}

func (l *lexer) run() error {
	n := len(l.lower)
	for l.pos = 0; l.pos <= n; l.pos++ {
		eof := l.pos == n
		if eof && l.begin == l.pos {
			// nothing pending
			return nil
		}
		var c rune
		if !eof {
			c = l.lower[l.pos]
		}

		valid, validErr, finished := -1, -1, -1
		for i, r := range l.recs {
			if l.states[i] != statusValid {
				continue
			}
			st := r.feed(c, eof)
			if eof && st == statusValid {
				// nothing can extend a match past the end
				st = statusInvalid
			}
			l.states[i] = st

			switch st {
			case statusValid:
				if valid < 0 {
					valid = i
				}
				if validErr < 0 && r.explains() {
					validErr = i
				}
			case statusFinished:
				if finished < 0 && r.accept(l.lower, l.begin, l.pos) {
					finished = i
				}
			}
		}

		switch {
		case finished >= 0 && valid > finished:
			// a later recognizer is still extending its match; withhold
		case finished >= 0:
			l.emit(finished)
			l.begin = l.pos
			if !eof {
				// the terminating character starts the next candidate
				l.pos--
			}
			l.reset()
			l.last = -1
			continue
		case valid < 0:
			return l.fail()
		}

		if validErr >= 0 {
			l.last = validErr
		} else {
			l.last = valid
		}
	}
	return nil
}

func (l *lexer) emit(i int) {
	tok, ok := l.recs[i].token(l.lower, l.src, l.begin, l.pos)
	if !ok {
		return
	}
	tok.Begin = l.begin
	tok.End = l.pos
	l.tokens = append(l.tokens, tok)
}

func (l *lexer) fail() error {
	if l.last >= 0 && l.recs[l.last].explains() {
		r := l.recs[l.last]
		msg := r.errorMessage()
		if msg == "" {
			msg = "malformed " + r.kind().String()
		}
		return sqlerr.Lex(msg, l.begin, l.pos)
	}
	end := l.pos
	if end < len(l.src) {
		end++
	}
	return sqlerr.Lex("character not understood", l.pos, end)
}
