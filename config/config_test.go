/*
 * cminus
 *
 * Copyright 2024 The cminus Authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package config

import (
	"testing"
)

func TestConfig(t *testing.T) {

	if res := Str(MaxTokenLen); res != "40" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(MaxTokenLen); res != 40 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(MaxLineLen); res != 255 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Bool(EchoSource); res {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Bool(TraceScan); res {
		t.Error("Unexpected result:", res)
		return
	}

	Config[EchoSource] = true

	if res := Bool(EchoSource); !res {
		t.Error("Unexpected result:", res)
		return
	}

	Config[EchoSource] = false
}

func TestConfigPanicsOnBadValue(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected a panic for a malformed config value")
		}
	}()

	Config[MaxTokenLen] = "not a number"
	defer func() { Config[MaxTokenLen] = DefaultConfig[MaxTokenLen] }()

	Int(MaxTokenLen)
}
