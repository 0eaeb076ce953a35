package sema

import "sort"

// SymbolTable is one flat scope mapping variable names to declared type
// names. The first declaration of a name wins.
type SymbolTable struct {
	types map[string]string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{types: make(map[string]string)}
}

// Declare records name with typ unless name is already present, in which
// case the existing entry is kept and false is returned.
func (s *SymbolTable) Declare(name, typ string) bool {
	if _, ok := s.types[name]; ok {
		return false
	}
	s.types[name] = typ
	return true
}

func (s *SymbolTable) Lookup(name string) (string, bool) {
	typ, ok := s.types[name]
	return typ, ok
}

func (s *SymbolTable) Len() int {
	return len(s.types)
}

func (s *SymbolTable) Names() []string {
	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *SymbolTable) Reset() {
	s.types = make(map[string]string)
}
