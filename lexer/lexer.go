package lexer

import (
	"strings"

	"github.com/coreos/pkg/capnslog"

	"github.com/pontaoski/minicc/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minicc", "lexer")

var keywords = map[string]bool{
	"int":    true,
	"float":  true,
	"char":   true,
	"return": true,
	"if":     true,
	"else":   true,
	"while":  true,
	"for":    true,
}

var twoCharOps = []string{"==", "!=", "<=", ">="}

const singleCharOps = "+-*/=<>(){};"

// Lexer walks comment-free source text one rune at a time. Characters that
// start no token are dropped without a diagnostic.
type Lexer struct {
	pos   types.Position
	input []rune
	off   int
}

func NewLexer(text string) *Lexer {
	return &Lexer{
		pos:   types.Position{Line: 1, Column: 0},
		input: []rune(StripComments(text)),
	}
}

// StripComments removes // and /* */ comments. Newlines ending a line
// comment are kept; an unterminated block comment runs to the end of input.
func StripComments(code string) string {
	var out strings.Builder
	inSingle, inMulti := false, false

	src := []rune(code)
	for i := 0; i < len(src); i++ {
		next := rune(0)
		if i+1 < len(src) {
			next = src[i+1]
		}

		switch {
		case inSingle:
			if src[i] == '\n' {
				inSingle = false
				out.WriteRune('\n')
			}
		case inMulti:
			if src[i] == '*' && next == '/' {
				inMulti = false
				i++
			}
		case src[i] == '/' && next == '/':
			inSingle = true
			i++
		case src[i] == '/' && next == '*':
			inMulti = true
			i++
		default:
			out.WriteRune(src[i])
		}
	}

	return out.String()
}

func (l *Lexer) peekAt(n int) (rune, bool) {
	if l.off+n >= len(l.input) {
		return 0, false
	}
	return l.input[l.off+n], true
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n && l.off < len(l.input); i++ {
		if l.input[l.off] == '\n' {
			l.pos.Line++
			l.pos.Column = 0
		} else {
			l.pos.Column++
		}
		l.off++
	}
}

func (l *Lexer) emit(kind types.TokenKind, n int) types.Token {
	from := l.pos
	from.Column++
	lit := string(l.input[l.off : l.off+n])
	l.advance(n)

	return types.Token{
		Kind:     kind,
		Lexeme:   lit,
		Location: types.Span{From: from, To: l.pos},
	}
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func firstChar(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func otherChar(r rune) bool {
	return firstChar(r) || isDigit(r)
}

func (l *Lexer) digitsAt(n int) int {
	count := 0
	for {
		r, ok := l.peekAt(n + count)
		if !ok || !isDigit(r) {
			return count
		}
		count++
	}
}

// Lex returns the next token, or an EOF token once the input is exhausted.
// Patterns are tried in a fixed priority order at every position.
func (l *Lexer) Lex() types.Token {
	for {
		r, ok := l.peekAt(0)
		if !ok {
			return types.Token{Kind: types.EOF, Location: types.SingleCharSpan(l.pos)}
		}

		if isSpace(r) {
			l.advance(1)
			continue
		}

		if next, ok := l.peekAt(1); ok {
			pair := string([]rune{r, next})
			for _, op := range twoCharOps {
				if pair == op {
					return l.emit(types.SYMBOL, 2)
				}
			}
		}

		if strings.ContainsRune(singleCharOps, r) {
			return l.emit(types.SYMBOL, 1)
		}

		if r == '\'' {
			c, okC := l.peekAt(1)
			end, okE := l.peekAt(2)
			if okC && okE && c != '\'' && end == '\'' {
				return l.emit(types.CHAR, 3)
			}
		}

		if whole := l.digitsAt(0); whole > 0 {
			if dot, ok := l.peekAt(whole); ok && dot == '.' {
				if frac := l.digitsAt(whole + 1); frac > 0 {
					return l.emit(types.FLOAT, whole+1+frac)
				}
			}
			return l.emit(types.INTEGER, whole)
		}

		if firstChar(r) {
			n := 1
			for {
				c, ok := l.peekAt(n)
				if !ok || !otherChar(c) {
					break
				}
				n++
			}

			if keywords[string(l.input[l.off:l.off+n])] {
				return l.emit(types.KEYWORD, n)
			}
			return l.emit(types.IDENTIFIER, n)
		}

		plog.Tracef("%s: dropping unrecognized character %q", l.pos, r)
		l.advance(1)
	}
}

func (l *Lexer) lexToEOF() (ret []types.Token) {
	t := l.Lex()
	for t.Kind != types.EOF {
		ret = append(ret, t)
		t = l.Lex()
	}
	return
}

// Scan tokenizes text. The result carries no end marker; callers detect the
// end of the stream by index.
func Scan(text string) []types.Token {
	tokens := NewLexer(text).lexToEOF()
	plog.Debugf("scanned %d tokens", len(tokens))
	return tokens
}

// Listing renders tokens one per line as TOKEN(<kind>, "<lexeme>").
func Listing(tokens []types.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}
