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
Package parser implements a predictive recursive-descent parser that
builds a typed AST from a token stream. The grammar's points of
genuine ambiguity - a leading type keyword and identifier could start
either a variable or a function declaration, and a leading identifier
in an expression could start a plain reference, a call or the left-hand
side of an assignment - are resolved by checkpointing the scanner,
reading ahead far enough to tell the two apart, and restoring before
committing to one of the two parse paths.
*/
package parser

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-cminus/cminus/ast"
	"github.com/go-cminus/cminus/scanner"
	"github.com/go-cminus/cminus/token"
	"github.com/go-cminus/cminus/util"
)

/*
Parser drives a single left-to-right pass over a token stream, with a
current-token register primed by NextToken on Parse. Errors accumulate
in Errors; Error mirrors the presence of at least one of them, exposed
separately because most callers only need to know whether the parse
succeeded.
*/
type Parser struct {
	sc     *scanner.Scanner
	tok    token.Token
	source string

	Errors ErrorList
	Error  bool
}

/*
New creates a Parser reading from r, identified by source for error
messages. Listing/trace output, if enabled via config, is discarded.
*/
func New(source string, r io.Reader) *Parser {
	return NewWithLogger(source, r, util.NewNullLogger())
}

/*
NewWithLogger creates a Parser whose scanner writes echo/trace-scan
output to logger.
*/
func NewWithLogger(source string, r io.Reader, logger util.Logger) *Parser {
	return &Parser{
		sc:     scanner.NewWithLogger(source, r, logger),
		source: source,
	}
}

/*
Parse runs the parser to completion and returns the AST root together
with the error flag. After the root has been built, exactly one more
token is required to be ENDFILE; anything else is reported as trailing
input.
*/
func (p *Parser) Parse() (*ast.Node, bool) {
	p.advance()

	root := p.program()

	if p.tok.Kind != token.ENDFILE {
		p.errorAt(p.tok.Line, "Code ends before file")
	}

	return root, p.Error
}

// Token-stream helpers
// ====================

func (p *Parser) advance() {
	p.tok = p.sc.NextToken()
}

func (p *Parser) errorAt(line int, detail string) {
	p.Error = true
	p.Errors.Add(p.source, line, detail)
}

/*
expect consumes the current token if it matches k, otherwise reports a
syntax error naming the offending lexeme and discards one token - the
grammar has no multi-token resynchronization. Running into ENDFILE at a
match site means the input was truncated, which is reported with the
same "Code ends before file" message as the post-parse trailing-token
check rather than a generic mismatch message.
*/
func (p *Parser) expect(k token.Kind) {
	if p.tok.Kind == k {
		p.advance()
		return
	}
	if p.tok.Kind == token.ENDFILE {
		p.errorAt(p.tok.Line, "Code ends before file")
		return
	}
	p.errorAt(p.tok.Line, fmt.Sprintf("expected %s, found %s", k, p.tok))
	p.advance()
}

/*
expectID consumes an ID token and returns its lexeme and line, or
reports an error and returns an empty name without consuming the
mismatched token (the caller decides how to recover).
*/
func (p *Parser) expectID() (string, int) {
	if p.tok.Kind == token.ENDFILE {
		p.errorAt(p.tok.Line, "Code ends before file")
		return "", p.tok.Line
	}
	if p.tok.Kind != token.ID {
		p.errorAt(p.tok.Line, fmt.Sprintf("expected identifier, found %s", p.tok))
		return "", p.tok.Line
	}
	name, line := p.tok.Val, p.tok.Line
	p.advance()
	return name, line
}

/*
numValue parses the current NUM token's lexeme, reporting a syntax
error on overflow instead of saturating.
*/
func (p *Parser) numValue() int {
	v, err := strconv.Atoi(p.tok.Val)
	if err != nil {
		p.errorAt(p.tok.Line, fmt.Sprintf("integer literal %q out of range", p.tok.Val))
		return 0
	}
	return v
}

// List construction
// ==================

/*
nodeList accumulates a sibling chain with O(1) appends via a tail
pointer; add ignores nil (the shape expr_stmt's empty ';' and failed
sub-parses produce).
*/
type nodeList struct {
	head, tail *ast.Node
}

func (l *nodeList) add(n *ast.Node) {
	if n == nil {
		return
	}
	if l.head == nil {
		l.head = n
	} else {
		l.tail.Sibling = n
	}
	l.tail = n
}

// program → decl_list
// ====================

func (p *Parser) program() *ast.Node {
	line := p.tok.Line
	return ast.NewProg(p.declList(), line)
}

func (p *Parser) startsDecl() bool {
	switch p.tok.Kind {
	case token.INT, token.CHAR, token.VOID:
		return true
	}
	return false
}

// decl_list → decl { decl }
// ==========================

func (p *Parser) declList() *ast.Node {
	var list nodeList
	for p.startsDecl() {
		list.add(p.decl())
	}
	return list.head
}

/*
decl resolves the var-declaration-vs-function-declaration ambiguity by
reading the type keyword and the identifier, peeking at the token that
follows, then restoring the scanner to just after the type keyword so
var_tail/fun_tail can be parsed normally with the identifier as the
current token again.
*/
func (p *Parser) decl() *ast.Node {
	typeTok := p.tok.Kind
	typeLine := p.tok.Line

	mark := p.sc.Mark()
	p.advance() // ID

	if p.tok.Kind != token.ID {
		if p.tok.Kind == token.ENDFILE {
			p.errorAt(p.tok.Line, "Code ends before file")
			return nil
		}
		p.errorAt(p.tok.Line, fmt.Sprintf("expected identifier, found %s", p.tok))
		p.advance()
		return nil
	}

	p.advance() // lookahead: the disambiguating token
	isFun := p.tok.Kind == token.LPAREN

	p.sc.Restore(mark)
	p.advance() // re-prime: current token is the identifier again

	if isFun {
		return p.funDecl(typeTok, typeLine)
	}
	return p.varDecl(typeTok, typeLine)
}

func (p *Parser) varDecl(typeTok token.Kind, line int) *ast.Node {
	name := p.tok.Val
	p.advance() // consume ID
	return p.declTail(typeTok, name, line)
}

/*
declTail parses var_tail (';' or an array bound) given a type and name
already read. Shared by top-level variable declarations and local
declarations inside a compound statement.
*/
func (p *Parser) declTail(typeTok token.Kind, name string, line int) *ast.Node {
	if typeTok == token.VOID {
		p.errorAt(line, "variable cannot be declared void")
	}

	if p.tok.Kind == token.LBRACK {
		p.advance()
		sizeLine := p.tok.Line

		size := 0
		if p.tok.Kind == token.NUM {
			size = p.numValue()
			p.advance()
		} else {
			p.errorAt(p.tok.Line, fmt.Sprintf("expected array size, found %s", p.tok))
		}

		p.expect(token.RBRACK)
		p.expect(token.SEMI)

		sub := ast.ArrayInt
		if typeTok == token.CHAR {
			sub = ast.ArrayChar
		}

		n := ast.NewDecl(sub, name, line)
		n.Children[0] = ast.NewConst(size, sizeLine)
		return n
	}

	p.expect(token.SEMI)

	sub := ast.IdInt
	if typeTok == token.CHAR {
		sub = ast.IdChar
	}
	return ast.NewDecl(sub, name, line)
}

func (p *Parser) funDecl(typeTok token.Kind, line int) *ast.Node {
	name := p.tok.Val
	p.advance() // consume ID
	p.expect(token.LPAREN)
	params := p.paramList()
	p.expect(token.RPAREN)
	body := p.compoundStmt()

	var sub ast.SubKind
	switch typeTok {
	case token.CHAR:
		sub = ast.FunChar
	case token.VOID:
		sub = ast.FunVoid
	default:
		sub = ast.FunInt
	}

	n := ast.NewDecl(sub, name, line)
	n.Children[0] = params
	n.Children[1] = body
	return n
}

// params → 'void' | param_list
// =============================

func (p *Parser) paramList() *ast.Node {
	if p.tok.Kind == token.VOID {
		line := p.tok.Line
		p.advance()
		return ast.NewParam(ast.PVoid, "", line)
	}

	var list nodeList
	list.add(p.param())
	for p.tok.Kind == token.COMMA {
		p.advance()
		list.add(p.param())
	}
	return list.head
}

func (p *Parser) param() *ast.Node {
	line := p.tok.Line
	typeTok := p.tok.Kind

	if typeTok != token.INT && typeTok != token.CHAR {
		p.errorAt(line, fmt.Sprintf("expected a parameter type, found %s", p.tok))
		p.advance()
		return nil
	}
	p.advance()

	name, _ := p.expectID()

	array := false
	if p.tok.Kind == token.LBRACK {
		p.advance()
		p.expect(token.RBRACK)
		array = true
	}

	var sub ast.SubKind
	switch {
	case typeTok == token.CHAR && array:
		sub = ast.PArrayChar
	case typeTok == token.CHAR:
		sub = ast.PIdChar
	case array:
		sub = ast.PArrayInt
	default:
		sub = ast.PIdInt
	}

	return ast.NewParam(sub, name, line)
}

// compound_stmt → '{' local_decls stmt_list '}'
// ==============================================

func (p *Parser) compoundStmt() *ast.Node {
	line := p.tok.Line
	p.expect(token.LBRACE)
	locals := p.localDecls()
	stmts := p.stmtList()
	p.expect(token.RBRACE)

	n := ast.NewStmt(ast.Compound, line)
	n.Children[0] = locals
	n.Children[1] = stmts
	return n
}

/*
localDecls accepts only the prefix of int/char declarations at the
start of a compound statement - the stricter of the two behaviors
spec.md's open questions call out, matching ordinary block-scoping.
*/
func (p *Parser) localDecls() *ast.Node {
	var list nodeList
	for p.tok.Kind == token.INT || p.tok.Kind == token.CHAR {
		typeTok := p.tok.Kind
		line := p.tok.Line
		p.advance()
		name, _ := p.expectID()
		list.add(p.declTail(typeTok, name, line))
	}
	return list.head
}

// stmt_list → { statement }
// ==========================

func (p *Parser) stmtList() *ast.Node {
	var list nodeList
	for p.startsStmt() {
		list.add(p.statement())
	}
	return list.head
}

func (p *Parser) startsStmt() bool {
	switch p.tok.Kind {
	case token.IF, token.WHILE, token.RETURN, token.LBRACE,
		token.SEMI, token.ID, token.NUM, token.LPAREN:
		return true
	}
	return false
}

func (p *Parser) statement() *ast.Node {
	switch p.tok.Kind {
	case token.IF:
		return p.ifStmt()
	case token.WHILE:
		return p.whileStmt()
	case token.RETURN:
		return p.returnStmt()
	case token.LBRACE:
		return p.compoundStmt()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) ifStmt() *ast.Node {
	line := p.tok.Line
	p.advance() // 'if'
	p.expect(token.LPAREN)
	cond := p.exp()
	p.expect(token.RPAREN)
	then := p.statement()

	n := ast.NewStmt(ast.If, line)
	n.Children[0] = cond
	n.Children[1] = then

	if p.tok.Kind == token.ELSE {
		p.advance()
		n.Children[2] = p.statement()
	}
	return n
}

func (p *Parser) whileStmt() *ast.Node {
	line := p.tok.Line
	p.advance() // 'while'
	p.expect(token.LPAREN)
	cond := p.exp()
	p.expect(token.RPAREN)
	body := p.statement()

	n := ast.NewStmt(ast.While, line)
	n.Children[0] = cond
	n.Children[1] = body
	return n
}

func (p *Parser) returnStmt() *ast.Node {
	line := p.tok.Line
	p.advance() // 'return'

	n := ast.NewStmt(ast.Return, line)
	if p.tok.Kind != token.SEMI {
		n.Children[0] = p.exp()
	}
	p.expect(token.SEMI)
	return n
}

func (p *Parser) exprStmt() *ast.Node {
	if p.tok.Kind == token.SEMI {
		p.advance()
		return nil
	}
	e := p.exp()
	p.expect(token.SEMI)
	return e
}

// exp → var '=' exp | simple_exp
// ================================

/*
exp speculatively parses a var when the current token is an
identifier: if the token that follows the (optional) array index is
'=', the var becomes the left-hand side of a right-associative
assignment; otherwise the speculative parse is discarded, the scanner
is restored to just after the identifier, and simple_exp is parsed
from scratch.
*/
func (p *Parser) exp() *ast.Node {
	if p.tok.Kind != token.ID {
		return p.simpleExp()
	}

	idTok := p.tok
	name := p.tok.Val
	line := p.tok.Line
	mark := p.sc.Mark()
	p.advance() // lookahead: what follows the identifier

	varNode := ast.NewId(name, line)
	if p.tok.Kind == token.LBRACK {
		p.advance()
		varNode.Children[0] = p.exp()
		p.expect(token.RBRACK)
	}

	if p.tok.Kind == token.ASSIGN {
		p.advance()
		rhs := p.exp()

		n := ast.NewExp(ast.Assign, line)
		n.Children[0] = varNode
		n.Children[1] = rhs
		return n
	}

	p.sc.Restore(mark)
	p.tok = idTok // current token is the identifier again; the scanner resumes just after it
	return p.simpleExp()
}

// simple_exp → additive [ relop additive ]
// ==========================================

func (p *Parser) simpleExp() *ast.Node {
	left := p.additive()

	if isRelop(p.tok.Kind) {
		op := p.tok.Kind
		line := p.tok.Line
		p.advance()
		right := p.additive()

		n := ast.NewOp(op, line)
		n.Children[0] = left
		n.Children[1] = right
		return n
	}
	return left
}

func isRelop(k token.Kind) bool {
	switch k {
	case token.LT, token.LE, token.GT, token.GE, token.EQ, token.NE:
		return true
	}
	return false
}

// additive → term { ('+'|'-') term }
// ====================================

func (p *Parser) additive() *ast.Node {
	left := p.term()
	for p.tok.Kind == token.PLUS || p.tok.Kind == token.MINUS {
		op := p.tok.Kind
		line := p.tok.Line
		p.advance()
		right := p.term()

		n := ast.NewOp(op, line)
		n.Children[0] = left
		n.Children[1] = right
		left = n
	}
	return left
}

// term → factor { ('*'|'/') factor }
// =====================================

func (p *Parser) term() *ast.Node {
	left := p.factor()
	for p.tok.Kind == token.TIMES || p.tok.Kind == token.OVER {
		op := p.tok.Kind
		line := p.tok.Line
		p.advance()
		right := p.factor()

		n := ast.NewOp(op, line)
		n.Children[0] = left
		n.Children[1] = right
		left = n
	}
	return left
}

// factor → '(' exp ')' | NUM | ID ( '(' args ')' | [ '[' exp ']' ] )
// =====================================================================

/*
factor resolves the call-vs-variable-reference ambiguity the same way
decl resolves var-vs-function: checkpoint after the identifier, peek
one token, restore if it wasn't '('.
*/
func (p *Parser) factor() *ast.Node {
	switch p.tok.Kind {
	case token.LPAREN:
		p.advance()
		e := p.exp()
		p.expect(token.RPAREN)
		return e

	case token.NUM:
		line := p.tok.Line
		val := p.numValue()
		p.advance()
		return ast.NewConst(val, line)

	case token.ID:
		name := p.tok.Val
		line := p.tok.Line
		mark := p.sc.Mark()
		p.advance() // lookahead

		if p.tok.Kind == token.LPAREN {
			p.advance()
			args := p.argsList()
			p.expect(token.RPAREN)

			call := ast.NewCall(name, line)
			call.Children[0] = args
			return call
		}

		p.sc.Restore(mark)
		p.advance() // re-prime: current token is the lookahead again

		idNode := ast.NewId(name, line)
		if p.tok.Kind == token.LBRACK {
			p.advance()
			idNode.Children[0] = p.exp()
			p.expect(token.RBRACK)
		}
		return idNode

	default:
		p.errorAt(p.tok.Line, fmt.Sprintf("unexpected token %s in expression", p.tok))
		p.advance()
		return nil
	}
}

// args → [ exp { ',' exp } ]
// =============================

func (p *Parser) argsList() *ast.Node {
	if p.tok.Kind == token.RPAREN {
		return nil
	}

	var list nodeList
	list.add(p.exp())
	for p.tok.Kind == token.COMMA {
		p.advance()
		list.add(p.exp())
	}
	return list.head
}
