package parser

import (
	"github.com/coreos/pkg/capnslog"

	"github.com/pontaoski/minicc/ast"
	"github.com/pontaoski/minicc/errors"
	"github.com/pontaoski/minicc/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minicc", "parser")

// Parser builds a tree from a token slice. It never aborts: problems are
// recorded in diags and the offending construct is skipped.
type Parser struct {
	tokens  []types.Token
	current int
	diags   *errors.Diagnostics
}

func NewParser(tokens []types.Token, diags *errors.Diagnostics) *Parser {
	if diags == nil {
		diags = &errors.Diagnostics{}
	}
	return &Parser{tokens: tokens, diags: diags}
}

// Parse is shorthand for NewParser(tokens, diags).Parse().
func Parse(tokens []types.Token, diags *errors.Diagnostics) *ast.Node {
	return NewParser(tokens, diags).Parse()
}

// Parse consumes the whole token slice. Tokens that start no recognized
// construct are stepped over, so it always terminates.
func (p *Parser) Parse() *ast.Node {
	root := ast.New(ast.Root, "")

	for !p.atEnd() {
		start := p.current

		node := p.parseFunction()
		if node == nil {
			node = p.parseStatement()
		}

		if node != nil {
			root.Add(node)
			continue
		}
		if p.current == start {
			p.skip()
		}
	}

	plog.Debugf("parsed %d top-level nodes, %d diagnostics", len(root.Children), p.diags.Len())
	return root
}

func (p *Parser) atEnd() bool {
	return p.current >= len(p.tokens)
}

func (p *Parser) peekAt(n int) types.Token {
	if p.current+n >= len(p.tokens) {
		return types.Token{Kind: types.EOF}
	}
	return p.tokens[p.current+n]
}

func (p *Parser) peek() types.Token {
	return p.peekAt(0)
}

func (p *Parser) advance() types.Token {
	tok := p.peek()
	if !p.atEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) skip() {
	tok := p.advance()
	plog.Tracef("%s: skipping %s", tok.Location, tok)
}

// peekIs reports whether the next token is a symbol or keyword spelled as one of lexemes.
func (p *Parser) peekIs(lexemes ...string) bool {
	tok := p.peek()
	return tok.Is(types.SYMBOL, lexemes...) || tok.Is(types.KEYWORD, lexemes...)
}

func (p *Parser) match(lexeme string) bool {
	if p.peekIs(lexeme) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(lexeme string) bool {
	if p.match(lexeme) {
		return true
	}
	p.diags.Add(errors.ExpectedToken{Expected: lexeme, Got: p.peek().Lexeme})
	return false
}

func (p *Parser) peekIsType() bool {
	return p.peek().Is(types.KEYWORD, "int", "float", "char")
}

// parseFunction recognizes `int main ( ) { ... }`. Any other name after
// `int` is left for statement parsing.
func (p *Parser) parseFunction() *ast.Node {
	if !p.peek().Is(types.KEYWORD, "int") || !p.peekAt(1).Is(types.IDENTIFIER, "main") {
		return nil
	}

	p.advance()
	name := p.advance()
	p.expect("(")
	p.expect(")")
	p.expect("{")

	fn := ast.New(ast.Function, name.Lexeme, ast.New(ast.ReturnType, "int"))
	block := ast.New(ast.Block, "")

	for !p.atEnd() && !p.peekIs("}") {
		start := p.current

		var stmt *ast.Node
		switch {
		case p.peekIsType():
			stmt = p.parseVarDecl()
		case p.peekIs("return"):
			stmt = p.parseReturn()
		case p.peekIs("{"):
			p.skipGroup()
		}

		if stmt != nil {
			block.Add(stmt)
		} else if p.current == start {
			p.skip()
		}
	}
	p.expect("}")

	fn.Add(block)
	return fn
}

// skipGroup steps over a nested `{ ... }` without building anything for it.
func (p *Parser) skipGroup() {
	depth := 0
	for !p.atEnd() {
		switch {
		case p.peekIs("{"):
			depth++
		case p.peekIs("}"):
			depth--
		}
		p.skip()
		if depth == 0 {
			return
		}
	}
}

func (p *Parser) parseStatement() *ast.Node {
	switch {
	case p.peekIsType():
		return p.parseVarDecl()
	case p.peekIs("return"):
		return p.parseReturn()
	case p.peek().Kind == types.IDENTIFIER && p.peekAt(1).Is(types.SYMBOL, "="):
		return p.parseAssignment()
	}
	return nil
}

// VarDecl := ("int"|"float"|"char") IDENTIFIER [ "=" Expression ] ";"
func (p *Parser) parseVarDecl() *ast.Node {
	typeTok := p.advance()

	nameTok := p.peek()
	if nameTok.Kind != types.IDENTIFIER {
		p.diags.Add(errors.MissingName{After: typeTok.Lexeme, Got: nameTok.Lexeme})
		return nil
	}
	p.advance()

	decl := ast.New(ast.VarDecl, "",
		ast.New(ast.Type, typeTok.Lexeme),
		ast.New(ast.Name, nameTok.Lexeme),
	)

	if p.match("=") {
		expr := p.parseExpression()
		if expr == nil {
			p.diags.Add(errors.MalformedInitializer{Name: nameTok.Lexeme})
			return nil
		}
		decl.Add(expr)
	}

	if !p.expect(";") {
		return nil
	}

	return decl
}

// Return := "return" [ Expression ] ";"
func (p *Parser) parseReturn() *ast.Node {
	p.advance()
	ret := ast.New(ast.Return, "")

	if !p.peekIs(";") {
		expr := p.parseExpression()
		if expr == nil {
			p.diags.Add(errors.MalformedExpression{Got: p.peek().Lexeme})
		} else {
			ret.Add(expr)
		}
	}
	p.expect(";")

	return ret
}

func (p *Parser) parseAssignment() *ast.Node {
	name := p.advance()
	p.advance()

	expr := p.parseExpression()
	if expr == nil {
		p.diags.Add(errors.MalformedExpression{Got: p.peek().Lexeme})
		return nil
	}
	p.expect(";")

	return ast.New(ast.Assignment, name.Lexeme, expr)
}

func (p *Parser) parseOperand() *ast.Node {
	tok := p.peek()
	switch tok.Kind {
	case types.IDENTIFIER:
		p.advance()
		return ast.New(ast.Identifier, tok.Lexeme)
	case types.INTEGER, types.FLOAT, types.CHAR:
		p.advance()
		return ast.New(ast.Literal, tok.Lexeme)
	}
	return nil
}

// Expression := Operand [ ("+"|"-"|"*"|"/") Operand ]
//
// At most one operator is recognized.
func (p *Parser) parseExpression() *ast.Node {
	left := p.parseOperand()
	if left == nil {
		return nil
	}

	if !p.peek().Is(types.SYMBOL, "+", "-", "*", "/") {
		return left
	}
	op := p.advance()

	right := p.parseOperand()
	if right == nil {
		return nil
	}

	return ast.New(ast.BinaryOp, op.Lexeme, left, right)
}
