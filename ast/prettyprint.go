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
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/krotik/common/stringutil"
)

/*
IndentationLevel is the number of spaces used for one level of
indentation by PrettyPrint.
*/
const IndentationLevel = 4

/*
prettyPrinterMap holds templates for constructs whose rendering is a
fixed arrangement of up to three already-rendered child strings, keyed
by "<subkind name>_<number of children used>". Constructs with a
variable number of children (lists, function bodies) are handled in
code by ppSpecialCase instead of appearing here.
*/
var prettyPrinterMap map[string]*template.Template

func init() {
	prettyPrinterMap = map[string]*template.Template{
		"Id_Int_0":    template.Must(template.New("t").Parse("int {{.name}};")),
		"Id_Char_0":   template.Must(template.New("t").Parse("char {{.name}};")),
		"Array_Int_1": template.Must(template.New("t").Parse("int {{.name}}[{{.c1}}];")),
		"Array_Char_1": template.Must(template.New("t").Parse("char {{.name}}[{{.c1}}];")),

		"PId_Int_0":     template.Must(template.New("t").Parse("int {{.name}}")),
		"PId_Char_0":    template.Must(template.New("t").Parse("char {{.name}}")),
		"PArray_Int_0":  template.Must(template.New("t").Parse("int {{.name}}[]")),
		"PArray_Char_0": template.Must(template.New("t").Parse("char {{.name}}[]")),
		"Void_0":        template.Must(template.New("t").Parse("void")),

		"Return_0": template.Must(template.New("t").Parse("return;")),
		"Return_1": template.Must(template.New("t").Parse("return {{.c1}};")),

		"Op_2":     template.Must(template.New("t").Parse("{{.c1}} {{.op}} {{.c2}}")),
		"Const_0":  template.Must(template.New("t").Parse("{{.val}}")),
		"Id_0":     template.Must(template.New("t").Parse("{{.name}}")),
		"Assign_2": template.Must(template.New("t").Parse("{{.c1}} = {{.c2}}")),
	}
}

/*
PrettyPrint renders the subtree rooted at n as C-subset source text. It
is the out-of-core consumer the AST package is built to feed: it walks
the tree with the same pre-order discipline as Walk, but builds a
string bottom-up instead of calling a visitor.
*/
func PrettyPrint(n *Node) (string, error) {
	if n != nil && n.Kind == Prog {
		n = n.Children[0]
	}

	var buf bytes.Buffer
	if err := ppDeclList(n, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

/*
ppDeclList renders a sibling chain of declarations, one per line.
*/
func ppDeclList(head *Node, buf *bytes.Buffer) error {
	for cur := head; cur != nil; cur = cur.Sibling {
		s, err := ppNode(cur)
		if err != nil {
			return err
		}
		buf.WriteString(s)
		if cur.Sibling != nil {
			buf.WriteString("\n")
		}
	}
	return nil
}

/*
ppNode renders a single node (not its siblings).
*/
func ppNode(n *Node) (string, error) {
	if special, ok, err := ppSpecialCase(n); ok || err != nil {
		return special, err
	}

	key := fmt.Sprintf("%s_%d", n.subKindString(), numUsedChildren(n))

	tmpl, ok := prettyPrinterMap[key]
	if !ok {
		return "", fmt.Errorf("no pretty-printer template for %s (line %d)", key, n.Line)
	}

	params, err := childParams(n)
	if err != nil {
		return "", err
	}
	params["name"] = n.Payload.Name
	params["val"] = fmt.Sprint(n.Payload.Value)
	params["op"] = n.Payload.Op.String()

	var out bytes.Buffer
	if err := tmpl.Execute(&out, params); err != nil {
		return "", err
	}
	return out.String(), nil
}

/*
ppSpecialCase handles constructs whose shape does not fit a fixed
per-slot template: function declarations, compound statements,
if-statements (optional else), calls and array-indexed identifiers.
*/
func ppSpecialCase(n *Node) (string, bool, error) {
	switch {
	case n.Kind == DeclNode && (n.Sub == FunInt || n.Sub == FunChar || n.Sub == FunVoid):
		typeName := map[SubKind]string{FunInt: "int", FunChar: "char", FunVoid: "void"}[n.Sub]

		params, err := ppCommaList(n.Children[0])
		if err != nil {
			return "", true, err
		}
		body, err := ppNode(n.Children[1])
		if err != nil {
			return "", true, err
		}
		return fmt.Sprintf("%s %s(%s) %s", typeName, n.Payload.Name, params, body), true, nil

	case n.Kind == StmtNode && n.Sub == Compound:
		var buf bytes.Buffer
		buf.WriteString("{\n")
		if err := ppBlockList(n.Children[0], ppNode, &buf); err != nil {
			return "", true, err
		}
		if err := ppBlockList(n.Children[1], ppStmt, &buf); err != nil {
			return "", true, err
		}
		buf.WriteString("}")
		return buf.String(), true, nil

	case n.Kind == StmtNode && n.Sub == While:
		cond, err := ppNode(n.Children[0])
		if err != nil {
			return "", true, err
		}
		body, err := ppStmt(n.Children[1])
		if err != nil {
			return "", true, err
		}
		return fmt.Sprintf("while (%s) %s", cond, body), true, nil

	case n.Kind == StmtNode && n.Sub == If:
		cond, err := ppNode(n.Children[0])
		if err != nil {
			return "", true, err
		}
		then, err := ppStmt(n.Children[1])
		if err != nil {
			return "", true, err
		}
		if n.Children[2] == nil {
			return fmt.Sprintf("if (%s) %s", cond, then), true, nil
		}
		els, err := ppStmt(n.Children[2])
		if err != nil {
			return "", true, err
		}
		return fmt.Sprintf("if (%s) %s else %s", cond, then, els), true, nil

	case n.Kind == ExpNode && n.Sub == Call:
		args, err := ppCommaList(n.Children[0])
		if err != nil {
			return "", true, err
		}
		return fmt.Sprintf("%s(%s)", n.Payload.Name, args), true, nil

	case n.Kind == ExpNode && n.Sub == Id && n.Children[0] != nil:
		idx, err := ppNode(n.Children[0])
		if err != nil {
			return "", true, err
		}
		return fmt.Sprintf("%s[%s]", n.Payload.Name, idx), true, nil
	}

	return "", false, nil
}

/*
ppCommaList renders a sibling chain of params/args separated by ", ".
*/
func ppCommaList(head *Node) (string, error) {
	var parts []string
	for cur := head; cur != nil; cur = cur.Sibling {
		s, err := ppNode(cur)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", "), nil
}

/*
ppStmt renders a single statement slot (an if/while/return/compound, or
a bare expression used as an expression-statement). Expression
statements need a trailing ';' that the control-flow constructs already
supply for themselves.
*/
func ppStmt(n *Node) (string, error) {
	s, err := ppNode(n)
	if err != nil {
		return "", err
	}
	if n.Kind == ExpNode {
		return s + ";", nil
	}
	return s, nil
}

/*
ppBlockList renders a sibling chain (local declarations or statements)
inside a compound statement, one per line, indented, using render to
turn each node into text.
*/
func ppBlockList(head *Node, render func(*Node) (string, error), buf *bytes.Buffer) error {
	indent := stringutil.GenerateRollingString(" ", IndentationLevel)
	for cur := head; cur != nil; cur = cur.Sibling {
		s, err := render(cur)
		if err != nil {
			return err
		}
		for _, line := range strings.Split(s, "\n") {
			buf.WriteString(indent)
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	return nil
}

/*
childParams renders n's non-nil children into the "c1".."c3" template
params, keyed by slot position; nil slots are skipped.
*/
func childParams(n *Node) (map[string]interface{}, error) {
	params := map[string]interface{}{}
	for i, c := range n.Children {
		if c == nil {
			continue
		}
		s, err := ppNode(c)
		if err != nil {
			return nil, err
		}
		params[fmt.Sprintf("c%d", i+1)] = s
	}
	return params, nil
}

/*
numUsedChildren counts the non-nil entries in Children, used to pick
the right template variant for constructs with optional slots.
*/
func numUsedChildren(n *Node) int {
	count := 0
	for _, c := range n.Children {
		if c != nil {
			count++
		}
	}
	return count
}
