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
	"os"

	"golang.org/x/term"
)

// Palette determines how different kinds of output are styled.  Styling is
// only applied when writing to a terminal.
type Palette struct {
	Error     AnsiStyle
	Highlight AnsiStyle
	Location  AnsiStyle
}

// NewPalette constructs a palette suitable for a given output file.  When the
// file is not a terminal, all styles are empty.
func NewPalette(f *os.File) Palette {
	if !term.IsTerminal(int(f.Fd())) {
		return Palette{}
	}
	//
	return Palette{
		Error:     AnsiStyle{}.Bold().FgColour(TERM_RED),
		Highlight: AnsiStyle{}.FgColour(TERM_GREEN),
		Location:  AnsiStyle{}.Bold().FgColour(TERM_CYAN),
	}
}
