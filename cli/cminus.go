/*
 * cminus
 *
 * Copyright 2024 The cminus Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package main

import (
	"fmt"
	"os"

	"github.com/go-cminus/cminus/cli/tool"
	"github.com/go-cminus/cminus/config"
)

func main() {

	args := os.Args[1:]

	if len(args) > 0 && args[0] == "compile" {
		args = args[1:]
	} else if len(args) == 0 || args[0] == "-h" || args[0] == "-help" || args[0] == "--help" {
		fmt.Println(fmt.Sprintf("Usage of %s <file>", os.Args[0]))
		fmt.Println()
		fmt.Println(fmt.Sprintf("cminus %v - C-subset front-end", config.ProductVersion))
		fmt.Println()
		fmt.Println("Parses a single source file and prints its syntax tree, or the")
		fmt.Println("syntax errors found while parsing it.")
		fmt.Println()
		os.Exit(2)
	}

	c := tool.NewCompiler()
	os.Exit(c.Run(args))
}
