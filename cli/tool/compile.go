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
Package tool implements the compile command: it reads a single source
file, drives the parser, and prints either the pretty-printed AST or
the accumulated syntax errors. This is the file I/O / command-line
collaborator spec.md names as external to the core packages.
*/
package tool

import (
	"flag"
	"fmt"
	"os"

	"github.com/krotik/common/fileutil"

	"github.com/go-cminus/cminus/ast"
	"github.com/go-cminus/cminus/config"
	"github.com/go-cminus/cminus/parser"
	"github.com/go-cminus/cminus/util"
)

/*
Compiler parses command-line flags and drives a single compile run.
*/
type Compiler struct {
	flags *flag.FlagSet

	echo  bool
	trace bool
	level string
	log   string

	out util.Logger
}

/*
NewCompiler creates a Compiler writing its listing/trace output to a
stdout logger.
*/
func NewCompiler() *Compiler {
	return NewCompilerWithLogger(util.NewStdOutLogger())
}

/*
NewCompilerWithLogger creates a Compiler writing its listing/trace
output to the given logger. Tests use this to inject a MemoryLogger and
assert on the output without touching stdout.
*/
func NewCompilerWithLogger(logger util.Logger) *Compiler {
	return &Compiler{
		flags: flag.NewFlagSet("cminus", flag.ContinueOnError),
		out:   logger,
	}
}

/*
ParseArgs parses the tool's own flags (as opposed to the top-level
tool-selection argument already consumed by cminus.go) and returns the
remaining positional arguments.
*/
func (c *Compiler) ParseArgs(args []string) ([]string, error) {
	c.flags.BoolVar(&c.echo, "echo", false, "Echo each source line as it is read")
	c.flags.BoolVar(&c.trace, "trace", false, "Trace every scanned token")
	c.flags.StringVar(&c.level, "level", "debug", "Minimum log level to report: debug, info or error")
	c.flags.StringVar(&c.log, "log", "", "Write listing/trace output to this file instead of stdout")

	c.flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cminus compile [-echo] [-trace] [-level debug|info|error] [-log file] <file>")
		c.flags.PrintDefaults()
	}

	if err := c.flags.Parse(args); err != nil {
		return nil, err
	}
	return c.flags.Args(), nil
}

/*
Compile reads path, parses it, and writes the pretty-printed AST (or
the collected syntax errors) to the compiler's logger. It returns a
non-nil error if the file does not exist, cannot be opened, or the
parse raised the error flag.
*/
func (c *Compiler) Compile(path string) error {
	if exists, err := fileutil.PathExists(path); err != nil {
		return fmt.Errorf("could not check %v: %w", path, err)
	} else if !exists {
		return fmt.Errorf("no such file: %v", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open %v: %w", path, err)
	}
	defer f.Close()

	config.Config[config.EchoSource] = c.echo
	config.Config[config.TraceScan] = c.trace

	out := c.out
	if c.log != "" {
		logFile, err := os.Create(c.log)
		if err != nil {
			return fmt.Errorf("could not create %v: %w", c.log, err)
		}
		defer logFile.Close()
		out = util.NewBufferLogger(logFile)
	}

	level := c.level
	if level == "" {
		level = "debug"
	}
	leveled, err := util.NewLogLevelLogger(out, level)
	if err != nil {
		return err
	}

	p := parser.NewWithLogger(path, f, leveled)
	root, hasErrors := p.Parse()

	if hasErrors {
		for _, e := range p.Errors {
			leveled.LogError(e.Error())
		}
		return p.Errors
	}

	return c.printTree(root, leveled)
}

func (c *Compiler) printTree(root *ast.Node, out util.Logger) error {
	rendered, err := ast.PrettyPrint(root)
	if err != nil {
		return err
	}
	out.LogInfo(rendered)
	return nil
}

/*
Run parses args and compiles the named file, returning a process exit
code: 0 on success, 1 if the parse reported any syntax errors, 2 on a
usage or I/O error.
*/
func (c *Compiler) Run(args []string) int {
	rest, err := c.ParseArgs(args)
	if err != nil {
		return 2
	}

	if len(rest) != 1 {
		c.flags.Usage()
		return 2
	}

	if err := c.Compile(rest[0]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if _, ok := err.(parser.ErrorList); ok {
			return 1
		}
		return 2
	}
	return 0
}
