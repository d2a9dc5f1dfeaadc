/*
 * cminus
 *
 * Copyright 2024 The cminus Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package ast defines the tagged tree node family shared by the scanner's
token kinds and the parser's grammar-directed construction. A Node
carries a kind tag, a tag-specific payload, up to three owned children
and a right-sibling link used to form linear lists of declarations,
statements, arguments and parameters.
*/
package ast

import (
	"fmt"
	"strings"

	"github.com/krotik/common/stringutil"

	"github.com/go-cminus/cminus/token"
)

/*
NodeKind is the top-level discriminator of a Node.
*/
type NodeKind int

/*
The four node kinds plus Prog, the root.
*/
const (
	Prog NodeKind = iota
	DeclNode
	ParamNode
	StmtNode
	ExpNode
)

func (k NodeKind) String() string {
	switch k {
	case Prog:
		return "Prog"
	case DeclNode:
		return "Decl"
	case ParamNode:
		return "Param"
	case StmtNode:
		return "Stmt"
	case ExpNode:
		return "Exp"
	}
	return "?"
}

/*
SubKind is the second-level discriminator of a Node; its meaning
depends on the owning NodeKind.
*/
type SubKind int

/*
Decl sub-kinds.
*/
const (
	IdInt SubKind = iota
	IdChar
	ArrayInt
	ArrayChar
	FunInt
	FunChar
	FunVoid
)

/*
Param sub-kinds.
*/
const (
	PIdInt SubKind = iota
	PIdChar
	PArrayInt
	PArrayChar
	PVoid
)

/*
Stmt sub-kinds.
*/
const (
	If SubKind = iota
	While
	Return
	Compound
)

/*
Exp sub-kinds.
*/
const (
	Op SubKind = iota
	Const
	Id
	Assign
	Call
)

var declNames = map[SubKind]string{
	IdInt: "Id_Int", IdChar: "Id_Char",
	ArrayInt: "Array_Int", ArrayChar: "Array_Char",
	FunInt: "Fun_Int", FunChar: "Fun_Char", FunVoid: "Fun_Void",
}

var paramNames = map[SubKind]string{
	PIdInt: "PId_Int", PIdChar: "PId_Char",
	PArrayInt: "PArray_Int", PArrayChar: "PArray_Char", PVoid: "Void",
}

var stmtNames = map[SubKind]string{
	If: "If", While: "While", Return: "Return", Compound: "Compound",
}

var expNames = map[SubKind]string{
	Op: "Op", Const: "Const", Id: "Id", Assign: "Assign", Call: "Call",
}

/*
ExprType is the placeholder type annotation carried by Exp nodes,
reserved for a later semantic-analysis pass.
*/
type ExprType int

/*
The only ExprType known to the front-end; the type checker that would
assign Integer/Boolean/etc. is out of scope.
*/
const (
	VoidType ExprType = iota
)

/*
Payload holds the tag-specific value a node carries: a literal value,
an owned name, or an operator token kind. At most one field is
meaningful for any given node, determined by NodeKind/SubKind.
*/
type Payload struct {
	Name  string     // Decl/Param/Id/Call name, an owned copy of the lexeme
	Value int        // Const literal value
	Op    token.Kind // Exp Op operator
}

/*
Node is the uniform tree record. Children slots not used by a
construct are left nil; Sibling forms an acyclic right-chain of list
elements (declarations, statements, arguments, parameters).
*/
type Node struct {
	Kind    NodeKind
	Sub     SubKind
	Children [3]*Node
	Sibling *Node

	Payload Payload

	Line     int
	ExprType ExprType
}

/*
subKindString renders Sub according to Kind.
*/
func (n *Node) subKindString() string {
	switch n.Kind {
	case DeclNode:
		return declNames[n.Sub]
	case ParamNode:
		return paramNames[n.Sub]
	case StmtNode:
		return stmtNames[n.Sub]
	case ExpNode:
		return expNames[n.Sub]
	}
	return "Prog"
}

// Constructors
// ============

/*
NewProg creates the root Prog node, anchoring the declaration list in
Children[0].
*/
func NewProg(declList *Node, line int) *Node {
	n := &Node{Kind: Prog, Line: line}
	n.Children[0] = declList
	return n
}

/*
NewDecl creates a Decl node of the given sub-kind, stamped with the
current scanner line.
*/
func NewDecl(sub SubKind, name string, line int) *Node {
	return &Node{Kind: DeclNode, Sub: sub, Payload: Payload{Name: name}, Line: line}
}

/*
NewParam creates a Param node of the given sub-kind.
*/
func NewParam(sub SubKind, name string, line int) *Node {
	return &Node{Kind: ParamNode, Sub: sub, Payload: Payload{Name: name}, Line: line}
}

/*
NewStmt creates a Stmt node of the given sub-kind.
*/
func NewStmt(sub SubKind, line int) *Node {
	return &Node{Kind: StmtNode, Sub: sub, Line: line}
}

/*
NewExp creates an Exp node of the given sub-kind; ExprType starts at
VoidType, reserved for later semantic analysis.
*/
func NewExp(sub SubKind, line int) *Node {
	return &Node{Kind: ExpNode, Sub: sub, Line: line, ExprType: VoidType}
}

/*
NewConst creates an Exp Const node holding a literal integer value.
*/
func NewConst(value int, line int) *Node {
	n := NewExp(Const, line)
	n.Payload.Value = value
	return n
}

/*
NewId creates an Exp Id node referencing name.
*/
func NewId(name string, line int) *Node {
	n := NewExp(Id, line)
	n.Payload.Name = name
	return n
}

/*
NewCall creates an Exp Call node referencing the function name.
*/
func NewCall(name string, line int) *Node {
	n := NewExp(Call, line)
	n.Payload.Name = name
	return n
}

/*
NewOp creates an Exp Op node for the given operator token.
*/
func NewOp(op token.Kind, line int) *Node {
	n := NewExp(Op, line)
	n.Payload.Op = op
	return n
}

// List helpers
// ============

/*
AppendSibling appends tail to the right-sibling chain rooted at head
and returns the (possibly new) head. Passing a nil head starts a new
chain with tail as its only element.
*/
func AppendSibling(head, tail *Node) *Node {
	if tail == nil {
		return head
	}
	if head == nil {
		return tail
	}
	last := head
	for last.Sibling != nil {
		last = last.Sibling
	}
	last.Sibling = tail
	return head
}

// Traversal
// =========

/*
Walk performs a pre-order traversal: for each node in the sibling
chain rooted at n, it visits the node, then recurses into its children
in index order, then moves to the next sibling.
*/
func Walk(n *Node, visit func(*Node)) {
	for cur := n; cur != nil; cur = cur.Sibling {
		visit(cur)
		for _, c := range cur.Children {
			if c != nil {
				Walk(c, visit)
			}
		}
	}
}

/*
String returns a multi-line, indented debug dump of the subtree rooted
at n, one line per node, following children then the sibling chain.
*/
func (n *Node) String() string {
	var b strings.Builder
	n.levelString(&b, 0)
	return b.String()
}

func (n *Node) levelString(b *strings.Builder, depth int) {
	for cur := n; cur != nil; cur = cur.Sibling {
		b.WriteString(stringutil.GenerateRollingString(" ", depth*2))
		b.WriteString(fmt.Sprintf("%s.%s", cur.Kind, cur.subKindString()))

		switch {
		case cur.Payload.Name != "":
			b.WriteString(fmt.Sprintf(" %q", cur.Payload.Name))
		case cur.Kind == ExpNode && cur.Sub == Const:
			b.WriteString(fmt.Sprintf(" %d", cur.Payload.Value))
		case cur.Kind == ExpNode && cur.Sub == Op:
			b.WriteString(fmt.Sprintf(" %s", cur.Payload.Op))
		}

		b.WriteString(fmt.Sprintf(" (line %d)\n", cur.Line))

		for _, c := range cur.Children {
			if c != nil {
				c.levelString(b, depth+1)
			}
		}
	}
}
