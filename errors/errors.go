// Package errors holds the diagnostics produced while parsing and
// analysing a program. Each type renders the exact message shown to users.
package errors

import (
	"fmt"
)

type ExpectedToken struct {
	Expected string
	Got      string
}

func (e ExpectedToken) Error() string {
	return fmt.Sprintf("Expected '%s' but got '%s'", e.Expected, e.Got)
}

type MissingName struct {
	After string
	Got   string
}

func (e MissingName) Error() string {
	return fmt.Sprintf("Expected variable name after '%s' but got '%s'", e.After, e.Got)
}

type MalformedInitializer struct {
	Name string
}

func (e MalformedInitializer) Error() string {
	return fmt.Sprintf("Malformed initializer for '%s'.", e.Name)
}

type MalformedExpression struct {
	Got string
}

func (e MalformedExpression) Error() string {
	return fmt.Sprintf("Expected expression but got '%s'", e.Got)
}

type Redeclared struct {
	Name string
}

func (e Redeclared) Error() string {
	return fmt.Sprintf("Variable '%s' re-declared.", e.Name)
}

type Undeclared struct {
	Name string
}

func (e Undeclared) Error() string {
	return fmt.Sprintf("Undeclared variable: %s.", e.Name)
}

type InitMismatch struct {
	Name     string
	Expected string
	Got      string
}

func (e InitMismatch) Error() string {
	return fmt.Sprintf("Type mismatch in initialization of '%s': expected %s, got %s.", e.Name, e.Expected, e.Got)
}

type BinaryMismatch struct {
	Left  string
	Right string
}

func (e BinaryMismatch) Error() string {
	return fmt.Sprintf("Type mismatch in binary operation: %s vs %s.", e.Left, e.Right)
}

type AssignUndeclared struct {
	Name string
}

func (e AssignUndeclared) Error() string {
	return fmt.Sprintf("Assignment to undeclared variable: %s.", e.Name)
}

type AssignMismatch struct {
	Name     string
	Expected string
	Got      string
}

func (e AssignMismatch) Error() string {
	return fmt.Sprintf("Type mismatch in assignment to '%s': expected %s, got %s.", e.Name, e.Expected, e.Got)
}

type UndefinedFunction struct {
	Name string
}

func (e UndefinedFunction) Error() string {
	return fmt.Sprintf("Function not defined: %s.", e.Name)
}

// Diagnostics is an append-only, ordered list of non-fatal problems.
type Diagnostics struct {
	list []error
}

func (d *Diagnostics) Add(err error) {
	d.list = append(d.list, err)
}

func (d *Diagnostics) Reset() {
	d.list = nil
}

func (d *Diagnostics) Len() int {
	return len(d.list)
}

func (d *Diagnostics) Empty() bool {
	return len(d.list) == 0
}

func (d *Diagnostics) Errors() []error {
	return append([]error(nil), d.list...)
}

// Strings renders every diagnostic in the order it was recorded.
func (d *Diagnostics) Strings() []string {
	ret := make([]string, 0, len(d.list))
	for _, err := range d.list {
		ret = append(ret, err.Error())
	}
	return ret
}
