package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessages(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want string
	}{
		{ExpectedToken{";", "}"}, "Expected ';' but got '}'"},
		{ExpectedToken{")", ""}, "Expected ')' but got ''"},
		{Redeclared{"a"}, "Variable 'a' re-declared."},
		{Undeclared{"x"}, "Undeclared variable: x."},
		{InitMismatch{"c", "char", "int"}, "Type mismatch in initialization of 'c': expected char, got int."},
		{BinaryMismatch{"int", "float"}, "Type mismatch in binary operation: int vs float."},
		{AssignUndeclared{"y"}, "Assignment to undeclared variable: y."},
		{AssignMismatch{"y", "int", "float"}, "Type mismatch in assignment to 'y': expected int, got float."},
		{UndefinedFunction{"foo"}, "Function not defined: foo."},
	} {
		assert.Equal(t, tc.want, tc.err.Error())
	}
}

func TestDiagnostics(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.Empty())

	d.Add(Undeclared{"x"})
	d.Add(Redeclared{"a"})

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []string{"Undeclared variable: x.", "Variable 'a' re-declared."}, d.Strings())
	assert.Equal(t, Undeclared{"x"}, d.Errors()[0])

	d.Reset()
	assert.True(t, d.Empty())
	assert.Empty(t, d.Strings())
}
