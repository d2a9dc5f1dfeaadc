/*
 * cminus
 *
 * Copyright 2024 The cminus Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package scanner

import (
	"strings"
	"testing"

	"github.com/go-cminus/cminus/token"
)

func tokensOf(src string) []token.Token {
	sc := New("test", strings.NewReader(src))
	var toks []token.Token
	for {
		tok := sc.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.ENDFILE {
			break
		}
	}
	return toks
}

func TestKeywordsAndPunctuation(t *testing.T) {
	toks := tokensOf("if else while return void int char bool ( ) [ ] { } ; ,")

	want := []token.Kind{
		token.IF, token.ELSE, token.WHILE, token.RETURN, token.VOID,
		token.INT, token.CHAR, token.BOOL,
		token.LPAREN, token.RPAREN, token.LBRACK, token.RBRACK,
		token.LBRACE, token.RBRACE, token.SEMI, token.COMMA,
		token.ENDFILE,
	}

	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestOperators(t *testing.T) {
	toks := tokensOf("+ - * / = == != < <= > >=")

	want := []token.Kind{
		token.PLUS, token.MINUS, token.TIMES, token.OVER,
		token.ASSIGN, token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE,
		token.ENDFILE,
	}

	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestIdentifiersAndNumbers(t *testing.T) {
	toks := tokensOf("foo 123 bar456")

	if toks[0].Kind != token.ID || toks[0].Val != "foo" {
		t.Errorf("token 0: got %v", toks[0])
	}
	if toks[1].Kind != token.NUM || toks[1].Val != "123" {
		t.Errorf("token 1: got %v", toks[1])
	}
	// Digits are not part of identifiers: "bar456" scans as ID("bar")
	// followed by NUM("456").
	if toks[2].Kind != token.ID || toks[2].Val != "bar" {
		t.Errorf("token 2: got %v", toks[2])
	}
	if toks[3].Kind != token.NUM || toks[3].Val != "456" {
		t.Errorf("token 3: got %v", toks[3])
	}
}

func TestComments(t *testing.T) {
	toks := tokensOf("a /* comment \n spanning lines */ b")

	if toks[0].Kind != token.ID || toks[0].Val != "a" {
		t.Fatalf("token 0: got %v", toks[0])
	}
	if toks[1].Kind != token.ID || toks[1].Val != "b" {
		t.Fatalf("token 1: got %v", toks[1])
	}
}

func TestUnterminatedCommentYieldsEndfileSilently(t *testing.T) {
	toks := tokensOf("a /* never closed")

	if toks[0].Kind != token.ID {
		t.Fatalf("token 0: got %v", toks[0])
	}
	if toks[1].Kind != token.ENDFILE {
		t.Fatalf("token 1: got %v, want ENDFILE", toks[1])
	}
}

func TestBangWithoutEqualsIsError(t *testing.T) {
	toks := tokensOf("! a")

	if toks[0].Kind != token.ERROR {
		t.Fatalf("token 0: got %v, want ERROR", toks[0])
	}
	if toks[1].Kind != token.ID || toks[1].Val != "a" {
		t.Fatalf("token 1: got %v", toks[1])
	}
}

func TestLineNumbersAdvanceAcrossLines(t *testing.T) {
	sc := New("test", strings.NewReader("int x;\nint y;\n"))

	tok := sc.NextToken() // int
	if tok.Line != 1 {
		t.Errorf("got line %d, want 1", tok.Line)
	}

	for tok.Kind != token.SEMI {
		tok = sc.NextToken()
	}

	tok = sc.NextToken() // int on the second line
	if tok.Line != 2 {
		t.Errorf("got line %d, want 2", tok.Line)
	}
}

/*
TestCheckpointIdempotence exercises the Mark/Restore contract: marking
before a token, consuming it, restoring, and scanning again reproduces
the same token - this holds even across a line-buffer flip, since the
scanner re-scans the cached alternate buffer instead of reloading.
*/
func TestCheckpointIdempotence(t *testing.T) {
	sc := New("test", strings.NewReader("int foo(void){ return 1; }\n"))

	// Drain up to the identifier "foo".
	tok := sc.NextToken()
	for tok.Val != "foo" {
		tok = sc.NextToken()
	}

	m := sc.Mark()
	t1 := sc.NextToken()

	sc.Restore(m)
	t2 := sc.NextToken()

	if t1.Kind != t2.Kind || t1.Val != t2.Val {
		t.Errorf("checkpoint not idempotent: t1=%v t2=%v", t1, t2)
	}

	t3 := sc.NextToken()
	if t3.Kind != token.VOID {
		t.Errorf("token stream did not resume correctly after restore: got %v", t3)
	}
}

/*
TestCheckpointAcrossLineFlip exercises the harder case: the checkpoint
is taken just before the scanner has to load a new input line, so the
restore crosses a buffer flip and the scanner must resume normal
loading once the re-scanned line is consumed again.
*/
func TestCheckpointAcrossLineFlip(t *testing.T) {
	sc := New("test", strings.NewReader("int\nfoo;\nint bar;\n"))

	tok := sc.NextToken() // int, line 1
	if tok.Kind != token.INT {
		t.Fatalf("got %v, want INT", tok)
	}

	m := sc.Mark()

	t1 := sc.NextToken() // foo, line 2 - crosses the flip
	if t1.Val != "foo" {
		t.Fatalf("got %v, want foo", t1)
	}

	sc.Restore(m)
	t2 := sc.NextToken()
	if t2.Kind != t1.Kind || t2.Val != t1.Val {
		t.Fatalf("checkpoint across line flip not idempotent: t1=%v t2=%v", t1, t2)
	}

	// Loading must resume normally past the re-scanned buffer: the rest
	// of the input (semicolon, then a whole new line) must still come
	// through correctly.
	rest := []token.Kind{token.SEMI, token.INT, token.ID, token.SEMI, token.ENDFILE}
	for i, want := range rest {
		got := sc.NextToken()
		if got.Kind != want {
			t.Errorf("token %d after restore: got %s, want %s", i, got.Kind, want)
		}
	}
}
