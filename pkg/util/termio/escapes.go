// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package termio

import (
	"fmt"
	"strings"
)

// TERM_RED represents red
const TERM_RED = uint(1)

// TERM_GREEN represents green
const TERM_GREEN = uint(2)

// TERM_CYAN represents cyan
const TERM_CYAN = uint(6)

// AnsiStyle is a combination of ANSI graphic attributes (e.g. bold, red) used
// for formatting text in a terminal.  The empty style leaves text unchanged.
type AnsiStyle struct {
	codes []uint
}

// Bold returns this style with bold text added.
func (p AnsiStyle) Bold() AnsiStyle {
	return p.with(1)
}

// FgColour returns this style with a given foreground colour.
func (p AnsiStyle) FgColour(col uint) AnsiStyle {
	return p.with(30 + col)
}

// Apply this style to some text, resetting the terminal afterwards.
func (p AnsiStyle) Apply(text string) string {
	if len(p.codes) == 0 {
		return text
	}
	//
	codes := make([]string, len(p.codes))
	//
	for i, c := range p.codes {
		codes[i] = fmt.Sprintf("%d", c)
	}
	//
	return fmt.Sprintf("\033[%sm%s\033[0m", strings.Join(codes, ";"), text)
}

func (p AnsiStyle) with(code uint) AnsiStyle {
	codes := make([]uint, len(p.codes), len(p.codes)+1)
	copy(codes, p.codes)
	//
	return AnsiStyle{append(codes, code)}
}
