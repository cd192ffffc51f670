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
package parsec

// SNIPPET_LENGTH determines how many characters of unexpected input are shown
// in an error message.
const SNIPPET_LENGTH = 10

// Cursor identifies a position within an immutable piece of text.  Cursors are
// values: advancing a cursor produces a new cursor and leaves the original
// untouched, which is what makes backtracking free.
type Cursor struct {
	// Text being parsed.  This is shared between all cursors and must never be
	// modified.
	text []rune
	// Index of the next character to be consumed.
	index int
}

// NewCursor constructs a cursor positioned at the start of a given text.
func NewCursor(text []rune) Cursor {
	return Cursor{text, 0}
}

// Index returns the position of this cursor within the original text.
func (c Cursor) Index() int {
	return c.index
}

// Remaining returns the characters which have not yet been consumed.
func (c Cursor) Remaining() []rune {
	return c.text[c.index:]
}

// AtEnd checks whether all characters have been consumed.
func (c Cursor) AtEnd() bool {
	return c.index >= len(c.text)
}

// Advance returns a new cursor which is n characters further into the text.
func (c Cursor) Advance(n int) Cursor {
	return Cursor{c.text, min(len(c.text), c.index+n)}
}

// Slice returns the text between this cursor and some later cursor over the
// same text.
func (c Cursor) Slice(end Cursor) string {
	return string(c.text[c.index:end.index])
}

// Snippet returns a short piece of the unconsumed text, for use in error
// messages.
func (c Cursor) Snippet() string {
	n := min(len(c.text), c.index+SNIPPET_LENGTH)
	return string(c.text[c.index:n])
}
