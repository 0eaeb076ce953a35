package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontaoski/minicc/config"
	"github.com/pontaoski/minicc/interp"
)

const sumProgram = "int main(){ int a = 10; int b = 20; int c = a + b; return c; }"

func newCompiler() *Compiler {
	return New(config.Default())
}

func TestSumScenario(t *testing.T) {
	c := newCompiler()

	a := c.Analyze(sumProgram)
	assert.Empty(t, a.Diagnostics)
	assert.Equal(t, int32(30), a.Env["c"])

	ir := c.IR(sumProgram)
	assert.Equal(t, 3, strings.Count(ir, "alloca i32"))
	assert.Equal(t, 1, strings.Count(ir, "add i32"))
	assert.Equal(t, 1, strings.Count(ir, "ret i32"))

	assert.Equal(t, "Execution result: 30", Execute(Optimize(ir)))
}

func TestRedeclarationScenario(t *testing.T) {
	a := newCompiler().Analyze("int main(){ int a = 5; float a = 2.0; return a; }")

	assert.Equal(t, []string{"Variable 'a' re-declared."}, a.Diagnostics)
	typ, ok := a.Symbols.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "int", typ)
	assert.Nil(t, a.Env)
}

func TestUndeclaredScenario(t *testing.T) {
	a := newCompiler().Analyze("int main(){ return x; }")

	assert.Equal(t, []string{"Undeclared variable: x."}, a.Diagnostics)
	assert.Nil(t, a.Env, "interpreter must not run")
}

func TestStateDoesNotLeakAcrossRuns(t *testing.T) {
	c := newCompiler()

	first := c.Analyze("int a = 1;")
	require.Empty(t, first.Diagnostics)

	second := c.Analyze("int a = 1;")
	assert.Empty(t, second.Diagnostics)
	assert.Equal(t, 1, second.Symbols.Len())
}

func TestReport(t *testing.T) {
	c := newCompiler()

	assert.Equal(t, `• ROOT
  • Return
    • Literal: 1

✅ Semantic analysis passed.
`, c.AST("return 1;"))

	assert.Equal(t, `• ROOT
  • Return
    • Identifier: y

--- Semantic Errors ---
❌ Undeclared variable: y.
`, c.AST("return y;"))
}

func TestSyntaxDiagnosticsAreReported(t *testing.T) {
	report := newCompiler().AST("int main(){ int a = 1 }")

	assert.Contains(t, report, "❌ Expected ';' but got '}'")
}

func TestKnownFunctionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.KnownFunctions = []string{"start"}

	a := New(cfg).Analyze("int main(){ return 0; }")
	assert.Equal(t, []string{"Function not defined: main."}, a.Diagnostics)
}

func TestScan(t *testing.T) {
	assert.Equal(t, "TOKEN(KEYWORD, \"int\")\nTOKEN(IDENTIFIER, \"x\")\n", newCompiler().Scan("int x"))
}

func TestRun(t *testing.T) {
	r := newCompiler().Run("int main(){ int a = 6 * 7; return a; }")

	assert.Contains(t, r.Tokens, "TOKEN(SYMBOL, \"*\")")
	assert.Contains(t, r.AST, "Semantic analysis passed.")
	assert.Equal(t, interp.Env{"a": 42}, r.Env)
	assert.Contains(t, r.IR, "mul i32 6, 7")
	assert.True(t, strings.HasPrefix(r.OptimizedIR, "; Optimized IR\n"))
	assert.Contains(t, r.OptimizedIR, "add i32 42")
	assert.NotContains(t, r.OptimizedIR, "mul")
	assert.Equal(t, "Execution result: 42", r.Execution)
}

func TestRunWithoutFunction(t *testing.T) {
	r := newCompiler().Run("int x = 1;")

	assert.Equal(t, "Execution error: no recognizable return.", r.Execution)
}

func TestRunDirectReturn(t *testing.T) {
	assert.Equal(t, "Execution result: 42", newCompiler().Run("int main() { return 42; }").Execution)
}
