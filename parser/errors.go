/*
 * cminus
 *
 * Copyright 2024 The cminus Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import "fmt"

/*
SyntaxError describes a single syntax error detected while parsing.
Source identifies the input the error was found in; Line is the
1-based source line; Detail is a human-readable message naming the
offending construct.
*/
type SyntaxError struct {
	Source string
	Line   int
	Detail string
}

/*
Error returns "<source>:<line>: <detail>".
*/
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Detail)
}

/*
ErrorList accumulates every SyntaxError encountered during a parse,
additive to the boolean Error flag: callers that only need to know
"did this fail" can check len(list) == 0, callers that want to report
every problem found in one pass can range over it.
*/
type ErrorList []*SyntaxError

/*
Error implements the error interface, joining every message with a
newline.
*/
func (l ErrorList) Error() string {
	if len(l) == 0 {
		return "no errors"
	}
	s := l[0].Error()
	for _, e := range l[1:] {
		s += "\n" + e.Error()
	}
	return s
}

/*
Add appends a new syntax error at line with the given detail message.
*/
func (l *ErrorList) Add(source string, line int, detail string) {
	*l = append(*l, &SyntaxError{Source: source, Line: line, Detail: detail})
}
