package main

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sumProgram = "int main(){ int a = 10; int b = 20; int c = a + b; return c; }"

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cfg := filepath.Join(t.TempDir(), "minicc.yml")
	argv := append([]string{"minicc", "--config", cfg, "--log-level", "ERROR"}, args...)
	err := newApp(&out, &errOut).Run(argv)
	return out.String(), err
}

func writeSource(t *testing.T, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "prog.c")
	require.NoError(t, ioutil.WriteFile(path, []byte(text), 0644))
	return path
}

func TestRunCommand(t *testing.T) {
	out, err := runApp(t, "run", writeSource(t, sumProgram))

	require.NoError(t, err)
	assert.Equal(t, "Execution result: 30\n", out)
}

func TestRunCommandOnIR(t *testing.T) {
	ir := "define i32 @main() {\n0:\n  %1 = call i32 @sub(i32 9, i32 4)\n  ret i32 %1\n}\n"
	out, err := runApp(t, "run", "--ir", writeSource(t, ir))

	require.NoError(t, err)
	assert.Equal(t, "Execution result: 5\n", out)
}

func TestIRCommand(t *testing.T) {
	out, err := runApp(t, "ir", writeSource(t, sumProgram))

	require.NoError(t, err)
	assert.Contains(t, out, "define i32 @main()")
	assert.Contains(t, out, "%c = alloca i32")
}

func TestOptimizeCommand(t *testing.T) {
	out, err := runApp(t, "optimize", "--ir", writeSource(t, "%1 = mul i32 6, 7\n"))

	require.NoError(t, err)
	assert.Contains(t, out, "; Optimized IR")
	assert.Contains(t, out, "%1 = add i32 42")
}

func TestTokensCommand(t *testing.T) {
	out, err := runApp(t, "tokens", writeSource(t, "int a;"))

	require.NoError(t, err)
	assert.Contains(t, out, `TOKEN(KEYWORD, "int")`)
	assert.Contains(t, out, `TOKEN(IDENTIFIER, "a")`)
}

func TestTokensDumpOnlyScans(t *testing.T) {
	src := writeSource(t, "int c = 3;")
	cfg := filepath.Join(t.TempDir(), "minicc.yml")

	var out, errOut bytes.Buffer
	require.NoError(t, newApp(&out, &errOut).Run([]string{"minicc", "--config", cfg, "--log-level", "INFO", "tokens", "--dump", src}))
	assert.Contains(t, out.String(), `"int"`)
	assert.NotContains(t, errOut.String(), "value of c")

	out.Reset()
	errOut.Reset()
	require.NoError(t, newApp(&out, &errOut).Run([]string{"minicc", "--config", cfg, "--log-level", "INFO", "ast", src}))
	assert.Contains(t, errOut.String(), "value of c: 3")
}

func TestASTCommandWithEnv(t *testing.T) {
	out, err := runApp(t, "ast", "--env", writeSource(t, sumProgram))

	require.NoError(t, err)
	assert.Contains(t, out, "✅ Semantic analysis passed.")
	assert.Contains(t, out, "c = 30\n")
}

func TestASTCommandReportsErrors(t *testing.T) {
	out, err := runApp(t, "ast", "--env", writeSource(t, "int main(){ return x; }"))

	require.NoError(t, err)
	assert.Contains(t, out, "❌ Undeclared variable: x.")
	assert.NotContains(t, out, " = ")
}

func TestAllCommand(t *testing.T) {
	out, err := runApp(t, "all", writeSource(t, sumProgram))

	require.NoError(t, err)
	for _, title := range []string{"== Tokens ==", "== AST ==", "== IR ==", "== Optimized IR ==", "== Execution =="} {
		assert.Contains(t, out, title)
	}
	assert.Contains(t, out, "Execution result: 30")
}

func TestInitCommand(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "minicc.yml")

	var out bytes.Buffer
	app := newApp(&out, ioutil.Discard)
	require.NoError(t, app.Run([]string{"minicc", "--config", cfg, "init"}))

	data, err := ioutil.ReadFile(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "KnownFunctions")

	assert.Error(t, newApp(&out, ioutil.Discard).Run([]string{"minicc", "--config", cfg, "init"}))
}

func TestMissingInput(t *testing.T) {
	_, err := runApp(t, "run")
	assert.Error(t, err)

	_, err = runApp(t, "run", filepath.Join(t.TempDir(), "absent.c"))
	assert.Error(t, err)
}
