/*
 * cminus
 *
 * Copyright 2024 The cminus Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package ast

import (
	"testing"

	"github.com/go-cminus/cminus/token"
)

func TestPrettyPrintSimpleDecl(t *testing.T) {
	n := NewDecl(IdInt, "x", 1)

	got, err := PrettyPrint(n)
	if err != nil {
		t.Fatal(err)
	}
	if got != "int x;" {
		t.Errorf("got %q, want %q", got, "int x;")
	}
}

func TestPrettyPrintArrayDecl(t *testing.T) {
	n := NewDecl(ArrayInt, "a", 1)
	n.Children[0] = NewConst(10, 1)

	got, err := PrettyPrint(n)
	if err != nil {
		t.Fatal(err)
	}
	if got != "int a[10];" {
		t.Errorf("got %q, want %q", got, "int a[10];")
	}
}

func TestPrettyPrintAssignAndOp(t *testing.T) {
	lhs := NewId("x", 1)
	rhs := NewOp(token.PLUS, 1)
	rhs.Children[0] = NewId("x", 1)
	rhs.Children[1] = NewConst(1, 1)

	assign := NewExp(Assign, 1)
	assign.Children[0] = lhs
	assign.Children[1] = rhs

	got, err := ppNode(assign)
	if err != nil {
		t.Fatal(err)
	}
	if got != "x = x + 1" {
		t.Errorf("got %q, want %q", got, "x = x + 1")
	}
}

func TestPrettyPrintCall(t *testing.T) {
	call := NewCall("f", 1)
	call.Children[0] = AppendSibling(NewConst(1, 1), NewId("y", 1))

	got, err := ppNode(call)
	if err != nil {
		t.Fatal(err)
	}
	if got != "f(1, y)" {
		t.Errorf("got %q, want %q", got, "f(1, y)")
	}
}

func TestPrettyPrintWhileWithAssignmentBody(t *testing.T) {
	cond := NewOp(token.LT, 1)
	cond.Children[0] = NewId("i", 1)
	cond.Children[1] = NewConst(10, 1)

	bodyAssign := NewExp(Assign, 1)
	bodyAssign.Children[0] = NewId("i", 1)
	rhs := NewOp(token.PLUS, 1)
	rhs.Children[0] = NewId("i", 1)
	rhs.Children[1] = NewConst(1, 1)
	bodyAssign.Children[1] = rhs

	loop := NewStmt(While, 1)
	loop.Children[0] = cond
	loop.Children[1] = bodyAssign

	got, err := ppNode(loop)
	if err != nil {
		t.Fatal(err)
	}
	want := "while (i < 10) i = i + 1;"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrettyPrintIfElseWithAssignmentBranches(t *testing.T) {
	cond := NewOp(token.EQ, 1)
	cond.Children[0] = NewId("a", 1)
	cond.Children[1] = NewId("b", 1)

	then := NewExp(Assign, 1)
	then.Children[0] = NewId("c", 1)
	then.Children[1] = NewConst(1, 1)

	els := NewExp(Assign, 1)
	els.Children[0] = NewId("c", 1)
	els.Children[1] = NewConst(2, 1)

	ifStmt := NewStmt(If, 1)
	ifStmt.Children[0] = cond
	ifStmt.Children[1] = then
	ifStmt.Children[2] = els

	got, err := ppNode(ifStmt)
	if err != nil {
		t.Fatal(err)
	}
	want := "if (a == b) c = 1; else c = 2;"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrettyPrintFunctionWithCompoundBody(t *testing.T) {
	body := NewStmt(Compound, 1)
	body.Children[1] = NewStmt(Return, 1)
	body.Children[1].Children[0] = NewId("a", 1)

	fn := NewDecl(FunInt, "f", 1)
	fn.Children[0] = NewParam(PIdInt, "a", 1)
	fn.Children[1] = body

	want := "int f(int a) {\n    return a;\n}"

	got, err := PrettyPrint(fn)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
