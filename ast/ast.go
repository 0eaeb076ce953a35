package ast

import (
	"strings"
)

type Kind int

const (
	Root Kind = iota
	Literal
	Identifier
	BinaryOp
	VarDecl
	Assignment
	Return
	Function
	Block
	ReturnType
	Type
	Name
)

func (k Kind) String() string {
	data := map[Kind]string{
		Root:       "ROOT",
		Literal:    "Literal",
		Identifier: "Identifier",
		BinaryOp:   "BinaryOp",
		VarDecl:    "VarDecl",
		Assignment: "Assignment",
		Return:     "Return",
		Function:   "Function",
		Block:      "Block",
		ReturnType: "ReturnType",
		Type:       "Type",
		Name:       "Name",
	}
	return data[k]
}

// Node is one tree node. A node exclusively owns its children; nothing
// points back up the tree.
//
// Child layout per kind:
//   VarDecl    [Type, Name, optional initializer]
//   BinaryOp   [left, right], Value is the operator
//   Assignment [value], Value is the target name
//   Return     [optional value]
//   Function   [ReturnType, Block], Value is the function name
type Node struct {
	Kind     Kind
	Value    string
	Children []*Node

	// Written only by semantic analysis.
	InferredType string
	IsDeclared   bool
}

func New(kind Kind, value string, children ...*Node) *Node {
	return &Node{Kind: kind, Value: value, Children: children}
}

func (n *Node) Add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Find returns the first direct child of the given kind.
func (n *Node) Find(k Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == k {
			return c
		}
	}
	return nil
}

// Walk visits n and its subtree in pre-order.
func Walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// String prints the subtree with two spaces of indent per depth.
func (n *Node) String() string {
	var b strings.Builder
	n.print(&b, 0)
	return b.String()
}

func (n *Node) print(b *strings.Builder, indent int) {
	if n == nil {
		return
	}

	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString("• ")
	b.WriteString(n.Kind.String())
	if n.Value != "" {
		b.WriteString(": ")
		b.WriteString(n.Value)
	}
	b.WriteByte('\n')

	for _, c := range n.Children {
		c.print(b, indent+1)
	}
}
