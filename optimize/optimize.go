// Package optimize folds constant integer arithmetic in IR text, one line at
// a time, in a single forward pass.
package optimize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/coreos/pkg/capnslog"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minicc", "optimize")

// Banner is the comment line heading every optimized listing.
const Banner = "; Optimized IR"

var constOp = regexp.MustCompile(`^(\s*%[\w\d]+ = )(\w+) i32 (-?\d+), (-?\d+)`)

// Fold rewrites `%r = op i32 <int>, <int>` lines into `%r = add i32 <result>`.
// The folded line is always labelled add whatever the folded opcode.
// Division by zero, unknown opcodes and operands outside 32 bits leave the
// line untouched. Other lines pass through unchanged, line endings included.
func Fold(ir string) string {
	var out strings.Builder
	out.WriteString(Banner)
	out.WriteByte('\n')

	folded := 0
	first := true
	for rest := ir; rest != ""; {
		line, eol := rest, "\n"
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			rest = ""
		}
		if strings.HasSuffix(line, "\r") {
			line, eol = line[:len(line)-1], "\r\n"
		}

		if first {
			first = false
			if line == Banner {
				continue
			}
		}

		if rewritten, ok := FoldLine(line); ok {
			plog.Tracef("folded %q -> %q", line, rewritten)
			line = rewritten
			folded++
		}
		out.WriteString(line)
		out.WriteString(eol)
	}

	plog.Debugf("folded %d lines", folded)
	return out.String()
}

// FoldLine folds a single line, reporting whether it changed.
func FoldLine(line string) (string, bool) {
	m := constOp.FindStringSubmatch(line)
	if m == nil {
		return line, false
	}

	lhs, err := strconv.ParseInt(m[3], 10, 32)
	if err != nil {
		return line, false
	}
	rhs, err := strconv.ParseInt(m[4], 10, 32)
	if err != nil {
		return line, false
	}

	result, ok := Apply(m[2], int32(lhs), int32(rhs))
	if !ok {
		return line, false
	}

	return m[1] + "add i32 " + strconv.FormatInt(int64(result), 10), true
}

// Apply evaluates an integer opcode with 32-bit wrap-around. It reports
// false for unknown opcodes and division by zero.
func Apply(op string, lhs, rhs int32) (int32, bool) {
	switch op {
	case "add":
		return lhs + rhs, true
	case "sub":
		return lhs - rhs, true
	case "mul":
		return lhs * rhs, true
	case "sdiv":
		if rhs == 0 {
			return 0, false
		}
		return lhs / rhs, true
	}
	return 0, false
}
