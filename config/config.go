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
Package config holds the front-end's global knobs: echo/trace flags and
the scanner's buffer limits. These mirror the source dialect's
EchoSource/TraceScan globals and the MAXTOKENLEN/BUFLEN constants.
*/
package config

import (
	"fmt"
	"strconv"

	"github.com/krotik/common/errorutil"
)

// Global variables
// ================

/*
ProductVersion is the current version of the cminus front-end.
*/
const ProductVersion = "1.0.0"

/*
Known configuration options for the front-end.
*/
const (
	EchoSource  = "EchoSource"  // Echo each source line as it is read
	TraceScan   = "TraceScan"   // Log every token as it is scanned
	MaxTokenLen = "MaxTokenLen" // Max length of an ID/NUM lexeme
	MaxLineLen  = "MaxLineLen"  // Max length of a source line
)

/*
DefaultConfig is the default configuration.
*/
var DefaultConfig = map[string]interface{}{
	EchoSource:  false,
	TraceScan:   false,
	MaxTokenLen: 40,
	MaxLineLen:  255,
}

/*
Config is the actual config which is used.
*/
var Config map[string]interface{}

/*
Initialise the config.
*/
func init() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}

	Config = data
}

// Helper functions
// ================

/*
Str reads a config value as a string value.
*/
func Str(key string) string {
	return fmt.Sprint(Config[key])
}

/*
Int reads a config value as an int value.
*/
func Int(key string) int {
	ret, err := strconv.ParseInt(fmt.Sprint(Config[key]), 10, 64)

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return int(ret)
}

/*
Bool reads a config value as a boolean value.
*/
func Bool(key string) bool {
	ret, err := strconv.ParseBool(fmt.Sprint(Config[key]))

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}
