package interp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pontaoski/minicc/ast"
	"github.com/pontaoski/minicc/lexer"
	"github.com/pontaoski/minicc/parser"
)

func run(src string) Env {
	return Run(parser.Parse(lexer.Scan(src), nil))
}

func TestRun(t *testing.T) {
	env := run("int main(){ int a = 10; int b = 20; int c = a + b; return c; }")

	assert.Equal(t, Env{"a": 10, "b": 20, "c": 30}, env)
	assert.Equal(t, []string{"a", "b", "c"}, env.Names())
}

func TestOperators(t *testing.T) {
	env := run("int a = 7; int s = a - 10; int m = a * 3; int d = a / 2; int z = a / 0;")

	assert.Equal(t, int32(-3), env["s"])
	assert.Equal(t, int32(21), env["m"])
	assert.Equal(t, int32(3), env["d"])
	assert.Equal(t, int32(0), env["z"])
}

func TestCoercions(t *testing.T) {
	env := run("float f = 2.75; char c = 'x'; int u = nope + 1; int big = 99999999999;")

	assert.Equal(t, int32(2), env["f"])
	assert.Equal(t, int32(0), env["c"])
	assert.Equal(t, int32(1), env["u"])
	assert.Equal(t, int32(0), env["big"])
}

func TestDeclarationsWithoutInitializerAreUnbound(t *testing.T) {
	env := run("int a; int b = a + 4;")

	_, ok := env["a"]
	assert.False(t, ok)
	assert.Equal(t, int32(4), env["b"])
}

func TestWrapsLikeInt32(t *testing.T) {
	env := Env{"max": math.MaxInt32, "min": math.MinInt32}

	add := ast.New(ast.BinaryOp, "+", ast.New(ast.Identifier, "max"), ast.New(ast.Literal, "1"))
	assert.Equal(t, int32(math.MinInt32), Eval(env, add))

	div := ast.New(ast.BinaryOp, "/", ast.New(ast.Identifier, "min"), ast.New(ast.Literal, "-1"))
	assert.Equal(t, int32(math.MinInt32), Eval(env, div))
}
