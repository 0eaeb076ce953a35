// Package pipeline exposes each compilation stage as a text-in, text-out
// call for a host to display.
//
// A Compiler owns the analysis state shared by the stages and resets it at
// the start of every call. It is not reentrant: callers must finish with one
// call's output before starting the next.
package pipeline

import (
	"strings"

	"github.com/coreos/pkg/capnslog"

	"github.com/pontaoski/minicc/ast"
	"github.com/pontaoski/minicc/codegen"
	"github.com/pontaoski/minicc/config"
	"github.com/pontaoski/minicc/extract"
	"github.com/pontaoski/minicc/interp"
	"github.com/pontaoski/minicc/lexer"
	"github.com/pontaoski/minicc/optimize"
	"github.com/pontaoski/minicc/parser"
	"github.com/pontaoski/minicc/sema"
	"github.com/pontaoski/minicc/types"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minicc", "pipeline")

const (
	passed       = "\n✅ Semantic analysis passed.\n"
	errorsHeader = "\n--- Semantic Errors ---\n"
)

type Compiler struct {
	cfg config.Config
	ctx *sema.Context
}

func New(cfg config.Config) *Compiler {
	return &Compiler{
		cfg: cfg,
		ctx: sema.NewContext(cfg.KnownFunctions),
	}
}

// Analysis is everything the front half of the pipeline learns about a program.
type Analysis struct {
	Tokens      []types.Token
	Root        *ast.Node
	Diagnostics []string
	// Symbols is shared with the Compiler and cleared by its next call.
	Symbols *sema.SymbolTable

	// Env is nil unless Diagnostics is empty.
	Env interp.Env
}

// Result bundles the text every stage returned for one program.
type Result struct {
	Tokens      string
	AST         string
	IR          string
	OptimizedIR string
	Execution   string
	Env         interp.Env
}

func (c *Compiler) reset() {
	c.ctx.Reset()
}

// Scan returns the token listing for src.
func (c *Compiler) Scan(src string) string {
	return lexer.Listing(lexer.Scan(src))
}

// Analyze scans, parses and checks src, then runs the reference
// interpreter when no diagnostics were recorded.
func (c *Compiler) Analyze(src string) Analysis {
	c.reset()

	tokens := lexer.Scan(src)
	root := parser.Parse(tokens, c.ctx.Diagnostics)
	c.ctx.Analyze(root)

	a := Analysis{
		Tokens:      tokens,
		Root:        root,
		Diagnostics: c.ctx.Diagnostics.Strings(),
		Symbols:     c.ctx.Symbols,
	}

	if len(a.Diagnostics) == 0 {
		a.Env = interp.Run(root)
		if v, ok := a.Env[c.cfg.Probe]; ok {
			plog.Infof("value of %s: %d", c.cfg.Probe, v)
		}
	} else {
		plog.Debugf("%d diagnostics, skipping interpretation", len(a.Diagnostics))
	}

	return a
}

// Report renders the tree followed by the diagnostics or a success marker.
func Report(a Analysis) string {
	var b strings.Builder
	b.WriteString(a.Root.String())

	if len(a.Diagnostics) == 0 {
		b.WriteString(passed)
		return b.String()
	}

	b.WriteString(errorsHeader)
	for _, d := range a.Diagnostics {
		b.WriteString("❌ ")
		b.WriteString(d)
		b.WriteByte('\n')
	}
	return b.String()
}

// AST returns the tree and diagnostics report for src.
func (c *Compiler) AST(src string) string {
	return Report(c.Analyze(src))
}

// IR lowers src without semantic checks; syntax diagnostics are discarded.
func (c *Compiler) IR(src string) string {
	c.reset()

	root := parser.Parse(lexer.Scan(src), c.ctx.Diagnostics)
	return codegen.Text(root)
}

// Optimize folds constants in IR text.
func Optimize(ir string) string {
	return optimize.Fold(ir)
}

// Execute extracts the result string from IR text.
func Execute(ir string) string {
	return extract.Extract(ir)
}

// Run performs every stage on src in order.
func (c *Compiler) Run(src string) Result {
	r := Result{Tokens: c.Scan(src)}

	a := c.Analyze(src)
	r.AST = Report(a)
	r.Env = a.Env

	r.IR = c.IR(src)
	r.OptimizedIR = Optimize(r.IR)
	r.Execution = Execute(r.OptimizedIR)

	return r
}
