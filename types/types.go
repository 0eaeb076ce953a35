package types

import (
	"fmt"
)

type Position struct {
	Line   int
	Column int
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota

	KEYWORD
	IDENTIFIER
	INTEGER
	FLOAT
	CHAR
	SYMBOL
)

func (t TokenKind) String() string {
	data := map[TokenKind]string{
		EOF:        "EOF",
		KEYWORD:    "KEYWORD",
		IDENTIFIER: "IDENTIFIER",
		INTEGER:    "INTEGER",
		FLOAT:      "FLOAT",
		CHAR:       "CHAR",
		SYMBOL:     "SYMBOL",
	}
	return data[t]
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.From, s.To)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

// Token is immutable once the scanner produces it.
type Token struct {
	Kind     TokenKind
	Lexeme   string
	Location Span
}

func (t Token) String() string {
	return fmt.Sprintf("TOKEN(%s, \"%s\")", t.Kind, t.Lexeme)
}

// Is reports whether the token has kind k and, when given, one of the lexemes.
func (t Token) Is(k TokenKind, lexemes ...string) bool {
	if t.Kind != k {
		return false
	}
	if len(lexemes) == 0 {
		return true
	}
	for _, l := range lexemes {
		if t.Lexeme == l {
			return true
		}
	}
	return false
}
