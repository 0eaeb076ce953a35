// Package extract reads an execution result out of IR text by pattern
// matching. It does not execute instructions.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/coreos/pkg/capnslog"

	"github.com/pontaoski/minicc/optimize"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minicc", "extract")

const NoReturn = "Execution error: no recognizable return."

var (
	directRet   = regexp.MustCompile(`ret i32 (-?\d+)`)
	callPattern = regexp.MustCompile(`call i32 @(\w+)\(i32 (-?\d+), i32 (-?\d+)\)`)
	regRet      = regexp.MustCompile(`ret i32 (%[\w.]+)`)

	defLine   = regexp.MustCompile(`^\s*(%[\w.]+) = (.*)$`)
	loadDef   = regexp.MustCompile(`^load \w+, \w+\* (%[\w.]+)$`)
	binaryDef = regexp.MustCompile(`^(\w+) i32 (\S+), (\S+)$`)
	foldedDef = regexp.MustCompile(`^add i32 (-?\d+)$`)
	callDef   = regexp.MustCompile(`^call i32 @\w+\(i32 -?\d+, i32 -?\d+\)$`)
	storeLine = regexp.MustCompile(`^\s*store \w+ (\S+), \w+\* (%[\w.]+)$`)
)

// Calls is the fixed table of functions a call site may name.
var Calls = map[string]func(a, b int32) (int32, bool){
	"add":    func(a, b int32) (int32, bool) { return a + b, true },
	"sub":    func(a, b int32) (int32, bool) { return a - b, true },
	"mul":    func(a, b int32) (int32, bool) { return a * b, true },
	"div":    divide,
	"divide": divide,
}

func divide(a, b int32) (int32, bool) {
	if b == 0 {
		return 0, false
	}
	return a / b, true
}

func success(v int32) string {
	return fmt.Sprintf("Execution result: %d", v)
}

// Extract tries, in order: an integer literal return anywhere in the text,
// a two-literal call site, and a returned register traced back through its
// defining lines to literal leaves. Failing all three it returns NoReturn.
func Extract(ir string) string {
	if m := directRet.FindStringSubmatch(ir); m != nil {
		if v, err := strconv.ParseInt(m[1], 10, 32); err == nil {
			return success(int32(v))
		}
	}

	if m := callPattern.FindStringSubmatch(ir); m != nil {
		return evalCall(m[1], m[2], m[3])
	}

	if m := regRet.FindStringSubmatch(ir); m != nil {
		t := newTracer(ir)
		if v, ok := t.resolve(m[1], t.retLine(m[0])); ok {
			return success(v)
		}
		plog.Debugf("could not trace %s back to constants", m[1])
	}

	return NoReturn
}

func evalCall(name, a, b string) string {
	fn, ok := Calls[name]
	if !ok {
		return fmt.Sprintf("Execution error: unsupported function '%s'", name)
	}

	x, errA := strconv.ParseInt(a, 10, 32)
	y, errB := strconv.ParseInt(b, 10, 32)
	if errA != nil || errB != nil {
		return NoReturn
	}

	v, ok := fn(int32(x), int32(y))
	if !ok {
		return "Execution error: division by zero."
	}
	return success(v)
}

type store struct {
	line  int
	value string
}

// tracer indexes register definitions and stores by line number.
type tracer struct {
	lines  []string
	defs   map[string]int
	stores map[string][]store
	depth  int
}

func newTracer(ir string) *tracer {
	t := &tracer{
		lines:  strings.Split(ir, "\n"),
		defs:   make(map[string]int),
		stores: make(map[string][]store),
	}

	for i, l := range t.lines {
		if strings.HasPrefix(strings.TrimSpace(l), ";") {
			continue
		}
		if m := defLine.FindStringSubmatch(l); m != nil {
			t.defs[m[1]] = i
		}
		if m := storeLine.FindStringSubmatch(l); m != nil {
			t.stores[m[2]] = append(t.stores[m[2]], store{line: i, value: m[1]})
		}
	}

	return t
}

func (t *tracer) retLine(match string) int {
	for i, l := range t.lines {
		if strings.Contains(l, match) {
			return i
		}
	}
	return len(t.lines)
}

// resolve computes the integer an operand holds when line at executes.
func (t *tracer) resolve(operand string, at int) (int32, bool) {
	if !strings.HasPrefix(operand, "%") {
		v, err := strconv.ParseInt(operand, 10, 32)
		return int32(v), err == nil
	}

	t.depth++
	defer func() { t.depth-- }()
	if t.depth > len(t.lines) {
		return 0, false
	}

	line, ok := t.defs[operand]
	if !ok || line >= at {
		return 0, false
	}
	rhs := defLine.FindStringSubmatch(t.lines[line])[2]

	if m := foldedDef.FindStringSubmatch(rhs); m != nil {
		return t.resolve(m[1], line)
	}
	if m := loadDef.FindStringSubmatch(rhs); m != nil {
		return t.lastStore(m[1], line)
	}
	if callDef.MatchString(rhs) {
		m := callPattern.FindStringSubmatch(rhs)
		fn, ok := Calls[m[1]]
		if !ok {
			return 0, false
		}
		a, err := strconv.ParseInt(m[2], 10, 32)
		if err != nil {
			return 0, false
		}
		b, err := strconv.ParseInt(m[3], 10, 32)
		if err != nil {
			return 0, false
		}
		return fn(int32(a), int32(b))
	}
	if m := binaryDef.FindStringSubmatch(rhs); m != nil {
		x, ok := t.resolve(m[2], line)
		if !ok {
			return 0, false
		}
		y, ok := t.resolve(m[3], line)
		if !ok {
			return 0, false
		}
		return optimize.Apply(m[1], x, y)
	}

	return 0, false
}

func (t *tracer) lastStore(slot string, before int) (int32, bool) {
	stores := t.stores[slot]
	for i := len(stores) - 1; i >= 0; i-- {
		if stores[i].line < before {
			return t.resolve(stores[i].value, stores[i].line)
		}
	}
	return 0, false
}
