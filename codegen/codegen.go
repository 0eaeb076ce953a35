// Package codegen lowers the syntax tree into textual register IR using
// llir/llvm. Each main function becomes one IR function. Statements after a
// return start a new unnamed block, so every return is emitted. Blocks and
// registers share one numbering per function, starting with the entry
// block's `0:` label.
package codegen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coreos/pkg/capnslog"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/pontaoski/minicc/ast"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minicc", "codegen")

type ctx struct {
	block    *ir.Block
	slots    map[string]value.Value
	varTypes map[string]types.Type
}

// Generate builds a module holding one function per Function node.
func Generate(root *ast.Node) *ir.Module {
	m := ir.NewModule()
	if root == nil {
		return m
	}

	for _, child := range root.Children {
		if child.Kind == ast.Function {
			codegenFunction(m, child)
		}
	}

	return m
}

// Text renders Generate(root) as IR assembly.
func Text(root *ast.Node) string {
	return Generate(root).String()
}

func codegenFunction(m *ir.Module, n *ast.Node) {
	fn := m.NewFunc(n.Value, types.I32)
	c := &ctx{
		block:    fn.NewBlock(""),
		slots:    make(map[string]value.Value),
		varTypes: make(map[string]types.Type),
	}

	if body := n.Find(ast.Block); body != nil {
		for _, stmt := range body.Children {
			if c.block.Term != nil {
				plog.Tracef("%s: opening a block after return", n.Value)
				c.block = fn.NewBlock("")
			}
			codegenStatement(c, stmt)
		}
	}

	if c.block.Term == nil {
		c.block.NewRet(constant.NewInt(types.I32, 0))
	}

	plog.Debugf("lowered %s: %d blocks", n.Value, len(fn.Blocks))
}

func codegenStatement(c *ctx, n *ast.Node) {
	switch n.Kind {
	case ast.VarDecl:
		if len(n.Children) < 2 {
			return
		}

		name := sanitizeVarName(n.Child(1).Value)
		typ := storageType(n.Child(0).Value)
		c.varTypes[name] = typ

		alloca := c.block.NewAlloca(typ)
		alloca.SetName(name)
		c.slots[name] = alloca

		if init := n.Child(2); init != nil {
			val := codegenExpression(c, init, typ)
			c.block.NewStore(retyped{Value: val, typ: typ}, alloca)
		}
	case ast.Return:
		var val value.Value = constant.NewInt(types.I32, 0)
		if expr := n.Child(0); expr != nil {
			val = codegenExpression(c, expr, types.I32)
		}

		// The terminator is i32 whatever the expression's type.
		c.block.NewRet(retyped{Value: val, typ: types.I32})
	}
}

// codegenExpression emits the instructions computing n and returns the
// resulting register or literal. hint types bare literal operands.
func codegenExpression(c *ctx, n *ast.Node, hint types.Type) value.Value {
	switch n.Kind {
	case ast.Literal:
		return literal{typ: hint, text: literalText(n.Value)}
	case ast.Identifier:
		name := sanitizeVarName(n.Value)
		typ := c.typeOf(name)

		src, ok := c.slots[name]
		if !ok {
			plog.Warningf("load of unallocated variable %s", name)
			src = slot{name: name, elem: typ}
		}
		return c.block.NewLoad(typ, src)
	case ast.BinaryOp:
		left, right := n.Child(0), n.Child(1)
		if left == nil || right == nil {
			break
		}

		typ := c.binaryType(left, right)
		x := retyped{Value: codegenExpression(c, left, typ), typ: typ}
		y := codegenExpression(c, right, typ)

		return codegenBinary(c.block, n.Value, isFloat(typ), x, y)
	}

	return literal{typ: hint, text: "0"}
}

func codegenBinary(b *ir.Block, op string, float bool, x, y value.Value) value.Value {
	switch {
	case op == "-" && float:
		return b.NewFSub(x, y)
	case op == "-":
		return b.NewSub(x, y)
	case op == "*" && float:
		return b.NewFMul(x, y)
	case op == "*":
		return b.NewMul(x, y)
	case op == "/" && float:
		return b.NewFDiv(x, y)
	case op == "/":
		return b.NewSDiv(x, y)
	case float:
		return b.NewFAdd(x, y)
	default:
		return b.NewAdd(x, y)
	}
}

func (c *ctx) typeOf(name string) types.Type {
	if t, ok := c.varTypes[name]; ok {
		return t
	}
	return types.I32
}

// binaryType picks the operation type: the left identifier's type, else the
// right identifier's, else float for a decimal left literal, else i32.
func (c *ctx) binaryType(left, right *ast.Node) types.Type {
	switch {
	case left.Kind == ast.Identifier:
		return c.typeOf(sanitizeVarName(left.Value))
	case right.Kind == ast.Identifier:
		return c.typeOf(sanitizeVarName(right.Value))
	case left.Kind == ast.Literal && strings.Contains(left.Value, "."):
		return types.Float
	}
	return types.I32
}

// literalText renders a literal operand: decimals in scientific notation
// with six fractional digits, single non-digit characters as their code,
// everything else unchanged.
func literalText(s string) string {
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return s
		}
		return fmt.Sprintf("%.6e", f)
	}

	inner := s
	if len(s) >= 3 && s[0] == '\'' && s[len(s)-1] == '\'' {
		inner = s[1 : len(s)-1]
	}
	if r, size := utf8.DecodeRuneInString(inner); size > 0 && size == len(inner) && !unicode.IsDigit(r) {
		return strconv.Itoa(int(r))
	}

	return inner
}

func sanitizeVarName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
}
