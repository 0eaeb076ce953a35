// Package interp evaluates variable initializers over 32-bit integers. It
// only serves as a diagnostic display and never feeds IR generation.
package interp

import (
	"sort"
	"strconv"

	"github.com/coreos/pkg/capnslog"

	"github.com/pontaoski/minicc/ast"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minicc", "interp")

type Env map[string]int32

// Names returns the bound variable names in sorted order.
func (e Env) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run walks the tree in pre-order and binds every initialized declaration.
func Run(root *ast.Node) Env {
	env := Env{}
	ast.Walk(root, func(n *ast.Node) {
		if n.Kind != ast.VarDecl || len(n.Children) < 3 {
			return
		}
		env[n.Child(1).Value] = Eval(env, n.Child(2))
	})
	return env
}

// Eval computes an expression. Unset identifiers read as zero and division
// by zero yields zero.
func Eval(env Env, n *ast.Node) int32 {
	if n == nil {
		return 0
	}

	switch n.Kind {
	case ast.Literal:
		return parseLeadingInt(n.Value)
	case ast.Identifier:
		return env[n.Value]
	case ast.BinaryOp:
		left := Eval(env, n.Child(0))
		right := Eval(env, n.Child(1))
		switch n.Value {
		case "+":
			return left + right
		case "-":
			return left - right
		case "*":
			return left * right
		case "/":
			if right == 0 {
				return 0
			}
			return left / right
		}
	}

	return 0
}

// parseLeadingInt reads the base-10 integer at the start of s, so float
// literals truncate and character literals read as zero.
func parseLeadingInt(s string) int32 {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	v, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		plog.Debugf("literal %q does not read as an integer, using 0", s)
		return 0
	}
	return int32(v)
}
