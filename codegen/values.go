package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// storageTypes maps source type names to IR storage types; anything else is i32.
var storageTypes = map[string]types.Type{
	"int":   types.I32,
	"float": types.Float,
	"char":  types.I8,
}

func storageType(name string) types.Type {
	if t, ok := storageTypes[name]; ok {
		return t
	}
	return types.I32
}

func isFloat(t types.Type) bool {
	return t.Equal(types.Float)
}

// literal is an operand written verbatim into the instruction that uses it.
type literal struct {
	typ  types.Type
	text string
}

func (l literal) String() string {
	return fmt.Sprintf("%s %s", l.typ, l.text)
}

func (l literal) Type() types.Type {
	return l.typ
}

func (l literal) Ident() string {
	return l.text
}

// retyped prints an existing value under another type. Stores use the
// variable's storage type, binary operations the operation type, and
// returns are always i32.
type retyped struct {
	value.Value
	typ types.Type
}

func (r retyped) String() string {
	return fmt.Sprintf("%s %s", r.typ, r.Ident())
}

func (r retyped) Type() types.Type {
	return r.typ
}

// slot names storage for a variable that was never allocated in the
// current function.
type slot struct {
	name string
	elem types.Type
}

func (s slot) String() string {
	return fmt.Sprintf("%s %s", s.Type(), s.Ident())
}

func (s slot) Type() types.Type {
	return types.NewPointer(s.elem)
}

func (s slot) Ident() string {
	return "%" + s.name
}
