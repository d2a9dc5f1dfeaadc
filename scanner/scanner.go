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
Package scanner implements the lexical DFA scanner for the C-subset
front-end. The scanner reads its source one line at a time into a
two-slot ring of line buffers so that a checkpoint taken near the end
of one line can be rewound and re-scanned without re-opening the
input.
*/
package scanner

import (
	"bufio"
	"io"

	"github.com/go-cminus/cminus/config"
	"github.com/go-cminus/cminus/token"
	"github.com/go-cminus/cminus/util"
)

/*
eof is the sentinel rune returned once the input is fully exhausted.
*/
const eof = -1

/*
state identifies a DFA state of the scanner.
*/
type state int

/*
The scanner's DFA states, named after the constructs they recognize.
*/
const (
	stateStart state = iota
	stateInNum
	stateInID
	stateInComment
	stateAfterSlash
	stateAfterStarInComment
	stateAfterEq
	stateAfterLt
	stateAfterGt
	stateInBang
	stateDone
)

/*
Position is an opaque checkpoint returned by Mark and consumed by
Restore. It captures the token-boundary position the scanner was at:
the buffer-relative start index of the next token, plus a snapshot of
which line buffer was active and how long it was.
*/
type Position struct {
	active int
	pos    int
	size   int
}

/*
Scanner is the DFA scanner. It exposes NextToken, Mark and Restore; the
parser is the only intended caller of Mark/Restore.
*/
type Scanner struct {
	name   string
	reader *bufio.Reader

	buf    [2]string // the two line buffers
	active int       // index of the buffer currently being read
	pos    int       // position within buf[active]
	size   int       // length of buf[active]
	reload bool       // if false, the next buffer flip reuses cached content instead of reading
	atEOF  bool       // the underlying reader has been exhausted

	line int // monotonic line counter

	lastLexeme string // lexeme of the most recently produced token

	logger      util.Logger
	maxTokenLen int
	maxLineLen  int
}

/*
New creates a Scanner reading from r, identified by name for error
messages. Listing/trace output, if enabled via config, is discarded.
*/
func New(name string, r io.Reader) *Scanner {
	return NewWithLogger(name, r, util.NewNullLogger())
}

/*
NewWithLogger creates a Scanner that writes its echo/trace-scan output
to logger.
*/
func NewWithLogger(name string, r io.Reader, logger util.Logger) *Scanner {
	return &Scanner{
		name:        name,
		reader:      bufio.NewReader(r),
		reload:      true,
		logger:      logger,
		maxTokenLen: config.Int(config.MaxTokenLen),
		maxLineLen:  config.Int(config.MaxLineLen),
	}
}

/*
Line returns the current line number.
*/
func (s *Scanner) Line() int {
	return s.line
}

/*
LastLexeme returns the lexeme of the most recently produced token.
*/
func (s *Scanner) LastLexeme() string {
	return s.lastLexeme
}

/*
Mark returns a checkpoint at the current token boundary.
*/
func (s *Scanner) Mark() Position {
	return Position{s.active, s.pos, s.size}
}

/*
Restore rewinds the scanner to a checkpoint previously returned by
Mark. If the restore crosses a line-buffer flip, the scanner enters a
"do not reload" mode so that the next buffer flip re-scans the cached
alternate buffer instead of reading a fresh input line; normal loading
resumes once that cached buffer is consumed again. Callers must call
NextToken once after Restore before relying on further lookahead.
*/
func (s *Scanner) Restore(m Position) {
	if m.active != s.active {
		s.reload = false
	}
	s.active = m.active
	s.pos = m.pos
	s.size = m.size
}

/*
readLine reads the next input line, bounded by the configured maximum
line length, and echoes it to the logger if EchoSource is set.
*/
func (s *Scanner) readLine() (string, bool) {
	if s.atEOF {
		return "", false
	}

	line, err := s.reader.ReadString('\n')
	if line == "" && err != nil {
		s.atEOF = true
		return "", false
	}

	if err != nil {
		// Last line of the input with no trailing newline.
		s.atEOF = true
	}

	if len(line) > s.maxLineLen {
		line = line[:s.maxLineLen]
	}

	s.line++

	if config.Bool(config.EchoSource) {
		s.logger.LogInfo(s.line, ": ", line)
	}

	return line, true
}

/*
readChar returns the next character from the line-buffer ring,
reading a new line or re-scanning a cached one as needed. Returns eof
once the input is exhausted.
*/
func (s *Scanner) readChar() rune {
	if s.pos < s.size {
		c := s.buf[s.active][s.pos]
		s.pos++
		return rune(c)
	}

	s.active = 1 - s.active

	if s.reload {
		line, ok := s.readLine()
		if !ok {
			// Leave an empty buffer behind so pushback and a later
			// re-scan of this slot both see nothing left to read.
			s.buf[s.active] = ""
			s.size = 0
			s.pos = 0
			return eof
		}

		s.buf[s.active] = line
		s.size = len(line)
		s.pos = 0
	} else {
		// Re-scan the alternate buffer that was already cached before the
		// checkpoint was taken; don't consume a fresh input line.
		s.size = len(s.buf[s.active])
		s.pos = 0
		s.reload = true
	}

	if s.pos >= s.size {
		return eof
	}

	c := s.buf[s.active][s.pos]
	s.pos++
	return rune(c)
}

/*
pushback backs up the read cursor by one character. A no-op at EOF; the
DFA never needs more than one character of pushback per token.
*/
func (s *Scanner) pushback() {
	if s.pos > 0 {
		s.pos--
	}
}

/*
NextToken scans and returns the next token from the input.
*/
func (s *Scanner) NextToken() token.Token {
	var lexeme []byte
	var kind token.Kind
	var tokLine int

	st := stateStart

	for st != stateDone {
		c := s.readChar()
		save := true

		switch st {
		case stateStart:
			tokLine = s.line

			switch {
			case isDigit(c):
				st = stateInNum
			case isAlpha(c):
				st = stateInID
			case c == '!':
				st = stateInBang
			case c == '=':
				st = stateAfterEq
			case c == '<':
				st = stateAfterLt
			case c == '>':
				st = stateAfterGt
			case c == ' ' || c == '\t' || c == '\n' || c == '\r':
				save = false
			case c == '/':
				save = false
				st = stateAfterSlash
			default:
				st = stateDone
				save = false
				switch c {
				case eof:
					kind = token.ENDFILE
				case '+':
					kind = token.PLUS
				case '-':
					kind = token.MINUS
				case '*':
					kind = token.TIMES
				case '(':
					kind = token.LPAREN
				case ')':
					kind = token.RPAREN
				case '[':
					kind = token.LBRACK
				case ']':
					kind = token.RBRACK
				case '{':
					kind = token.LBRACE
				case '}':
					kind = token.RBRACE
				case ';':
					kind = token.SEMI
				case ',':
					kind = token.COMMA
				default:
					kind = token.ERROR
					save = true
				}
			}

		case stateAfterSlash:
			if c == '*' {
				st = stateInComment
				save = false
			} else {
				s.pushback()
				save = false
				kind = token.OVER
				st = stateDone
			}

		case stateInComment:
			save = false
			if c == eof {
				st = stateDone
				kind = token.ENDFILE
			} else if c == '*' {
				st = stateAfterStarInComment
			}

		case stateAfterStarInComment:
			save = false
			if c == eof {
				st = stateDone
				kind = token.ENDFILE
			} else if c == '/' {
				st = stateStart
			} else {
				st = stateInComment
			}

		case stateAfterEq:
			st = stateDone
			if c == '=' {
				kind = token.EQ
			} else {
				kind = token.ASSIGN
				s.pushback()
				save = false
			}

		case stateAfterLt:
			st = stateDone
			if c == '=' {
				kind = token.LE
			} else {
				kind = token.LT
				s.pushback()
				save = false
			}

		case stateAfterGt:
			st = stateDone
			if c == '=' {
				kind = token.GE
			} else {
				kind = token.GT
				s.pushback()
				save = false
			}

		case stateInBang:
			st = stateDone
			if c == '=' {
				kind = token.NE
			} else {
				kind = token.ERROR
				s.pushback()
				save = false
			}

		case stateInNum:
			if !isDigit(c) {
				s.pushback()
				save = false
				st = stateDone
				kind = token.NUM
			}

		case stateInID:
			if !isAlpha(c) {
				s.pushback()
				save = false
				st = stateDone
				kind = token.ID
			}
		}

		if save && len(lexeme) < s.maxTokenLen {
			lexeme = append(lexeme, byte(c))
		}
	}

	lex := string(lexeme)
	s.lastLexeme = lex

	if kind == token.ID {
		kind = token.Lookup(lex)
	}

	tok := token.Token{Kind: kind, Val: lex, Line: tokLine}

	if config.Bool(config.TraceScan) {
		s.logger.LogDebug(tokLine, ": ", tok.String())
	}

	return tok
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
