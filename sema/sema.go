// Package sema checks declarations and types over the syntax tree.
//
// All state lives in a Context. A Context is not safe for concurrent use and
// must be Reset before every run; diagnostics are collected, never fatal.
package sema

import (
	"strings"

	"github.com/coreos/pkg/capnslog"

	"github.com/pontaoski/minicc/ast"
	"github.com/pontaoski/minicc/errors"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minicc", "sema")

const (
	Int     = "int"
	Float   = "float"
	Char    = "char"
	Unknown = "unknown"
)

// DefaultKnownFunctions is the closed set of function names analysis accepts.
var DefaultKnownFunctions = []string{"main", "add", "sub"}

type Context struct {
	Symbols     *SymbolTable
	Diagnostics *errors.Diagnostics

	known map[string]bool
}

// NewContext returns an empty context. A nil known list means DefaultKnownFunctions.
func NewContext(known []string) *Context {
	if known == nil {
		known = DefaultKnownFunctions
	}

	c := &Context{
		Symbols:     NewSymbolTable(),
		Diagnostics: &errors.Diagnostics{},
		known:       make(map[string]bool),
	}
	for _, name := range known {
		c.known[name] = true
	}

	return c
}

func (c *Context) Reset() {
	c.Symbols.Reset()
	c.Diagnostics.Reset()
}

// InferType computes the type name of an expression node from the current
// symbol table. Character literals infer as int; only declarations carry char.
func (c *Context) InferType(n *ast.Node) string {
	if n == nil {
		return Unknown
	}

	switch n.Kind {
	case ast.Literal:
		if strings.Contains(n.Value, ".") {
			return Float
		}
		return Int
	case ast.Identifier:
		if typ, ok := c.Symbols.Lookup(n.Value); ok {
			return typ
		}
		return Unknown
	case ast.BinaryOp:
		left := c.InferType(n.Child(0))
		right := c.InferType(n.Child(1))
		if left == Float || right == Float {
			return Float
		}
		if left == Int && right == Int {
			return Int
		}
		return Unknown
	}

	return Unknown
}

// Analyze walks n depth first, filling the symbol table and appending
// diagnostics. Every reachable node is visited exactly once.
func (c *Context) Analyze(n *ast.Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case ast.VarDecl:
		c.analyzeVarDecl(n)
		return
	case ast.Identifier:
		_, n.IsDeclared = c.Symbols.Lookup(n.Value)
		if !n.IsDeclared {
			c.Diagnostics.Add(errors.Undeclared{Name: n.Value})
		}
		n.InferredType = c.InferType(n)
		return
	case ast.Literal:
		n.InferredType = c.InferType(n)
		return
	case ast.BinaryOp:
		left, right := n.Child(0), n.Child(1)
		if left == nil || right == nil {
			return
		}

		c.Analyze(left)
		c.Analyze(right)

		if lt, rt := c.InferType(left), c.InferType(right); lt != rt {
			c.Diagnostics.Add(errors.BinaryMismatch{Left: lt, Right: rt})
		}
		n.InferredType = c.InferType(n)
		return
	case ast.Assignment:
		c.analyzeAssignment(n)
		return
	case ast.Function:
		if !c.known[n.Value] {
			c.Diagnostics.Add(errors.UndefinedFunction{Name: n.Value})
		}
	}

	for _, child := range n.Children {
		c.Analyze(child)
	}
}

func (c *Context) analyzeVarDecl(n *ast.Node) {
	if len(n.Children) < 2 {
		return
	}

	typ := n.Child(0).Value
	name := n.Child(1).Value

	if c.Symbols.Declare(name, typ) {
		plog.Tracef("declared %s: %s", name, typ)
	} else {
		c.Diagnostics.Add(errors.Redeclared{Name: name})
	}
	n.IsDeclared = true
	n.InferredType = typ

	init := n.Child(2)
	if init == nil {
		return
	}

	c.Analyze(init)
	if got := c.InferType(init); got != typ {
		c.Diagnostics.Add(errors.InitMismatch{Name: name, Expected: typ, Got: got})
	}
}

func (c *Context) analyzeAssignment(n *ast.Node) {
	expected, ok := c.Symbols.Lookup(n.Value)
	n.IsDeclared = ok
	if !ok {
		c.Diagnostics.Add(errors.AssignUndeclared{Name: n.Value})
		return
	}

	expr := n.Child(0)
	c.Analyze(expr)
	if actual := c.InferType(expr); actual != expected {
		c.Diagnostics.Add(errors.AssignMismatch{Name: n.Value, Expected: expected, Got: actual})
	}
	n.InferredType = expected
}
