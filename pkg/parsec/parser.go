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

import (
	"fmt"
	"strings"
)

// Result is the state produced by running a parser.  On success, it holds the
// value produced along with the cursor positioned after the consumed input.
// On failure, it holds an error and the cursor is left where the parser gave
// up.  A failed result is terminal: no combinator continues parsing from it.
type Result[T any] struct {
	cursor Cursor
	value  T
	err    *Error
}

func success[T any](cursor Cursor, value T) Result[T] {
	return Result[T]{cursor, value, nil}
}

func failure[T any](cursor Cursor, err *Error) Result[T] {
	var empty T
	//
	return Result[T]{cursor, empty, err}
}

// Ok checks whether this result represents a successful parse.
func (r Result[T]) Ok() bool {
	return r.err == nil
}

// Value returns the value produced by a successful parse.
func (r Result[T]) Value() T {
	return r.value
}

// Cursor returns the position reached by the parser.
func (r Result[T]) Cursor() Cursor {
	return r.cursor
}

// Err returns the error of a failed parse (or nil if it succeeded).
func (r Result[T]) Err() *Error {
	return r.err
}

// Parser is a function from a position in the text to a result.  Parsers hold
// no state of their own, hence can be freely shared and composed.
type Parser[T any] func(Cursor) Result[T]

// Run a parser over a given string, starting from its first character.
func (p Parser[T]) Run(text string) Result[T] {
	return p(NewCursor([]rune(text)))
}

// RunAt runs this parser from a given position.
func (p Parser[T]) RunAt(cursor Cursor) Result[T] {
	return p(cursor)
}

// Succeed constructs a parser which consumes nothing and always produces a
// given value.
func Succeed[T any](value T) Parser[T] {
	return func(c Cursor) Result[T] {
		return success(c, value)
	}
}

// Fail constructs a parser which consumes nothing and always fails with a given
// message.
func Fail[T any](kind ErrorKind, format string, args ...any) Parser[T] {
	msg := fmt.Sprintf(format, args...)
	//
	return func(c Cursor) Result[T] {
		return failure[T](c, newError(c.index, kind, msg, nil))
	}
}

// ============================================================================
// Text
// ============================================================================

// Str constructs a parser which matches exactly a given string.
func Str(s string) Parser[string] {
	expected := []rune(s)
	//
	return func(c Cursor) Result[string] {
		if hasPrefix(c.Remaining(), expected) {
			return success(c.Advance(len(expected)), s)
		}
		//
		return failure[string](c, unexpected(c, fmt.Sprintf("%q", s)))
	}
}

// StrFold constructs a parser which matches either the all lower-case or the
// all upper-case form of a given string (e.g. "mov" or "MOV", but not "Mov").
// The value produced is always the lower-case form.
func StrFold(s string) Parser[string] {
	var (
		lower = []rune(strings.ToLower(s))
		upper = []rune(strings.ToUpper(s))
		name  = strings.ToLower(s)
	)
	//
	return func(c Cursor) Result[string] {
		if hasPrefix(c.Remaining(), lower) || hasPrefix(c.Remaining(), upper) {
			return success(c.Advance(len(lower)), name)
		}
		//
		return failure[string](c, unexpected(c, fmt.Sprintf("%q", name)))
	}
}

// Char constructs a parser which matches exactly a given character.
func Char(r rune) Parser[rune] {
	return func(c Cursor) Result[rune] {
		if input := c.Remaining(); len(input) > 0 && input[0] == r {
			return success(c.Advance(1), r)
		}
		//
		return failure[rune](c, unexpected(c, fmt.Sprintf("%q", r)))
	}
}

// CharClass identifies a set of characters.
type CharClass func(rune) bool

// IsLetter matches the ASCII letters.
func IsLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// IsDigit matches the decimal digits.
func IsDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// IsHexDigit matches the hexadecimal digits (in either case).
func IsHexDigit(r rune) bool {
	return IsDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

// IsAlphanumeric matches ASCII letters, digits and underscores.
func IsAlphanumeric(r rune) bool {
	return IsLetter(r) || IsDigit(r) || r == '_'
}

// IsBlank matches spaces and tabs.  Newlines are deliberately excluded, since
// they separate statements.
func IsBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// Satisfy constructs a parser which consumes the longest (non-empty) run of
// characters belonging to a given class.  The name is used for error
// reporting.
func Satisfy(name string, class CharClass) Parser[string] {
	return func(c Cursor) Result[string] {
		var (
			input = c.Remaining()
			n     = 0
		)
		//
		for n < len(input) && class(input[n]) {
			n++
		}
		//
		if n == 0 {
			return failure[string](c, unexpected(c, name))
		}
		//
		return success(c.Advance(n), string(input[:n]))
	}
}

// Letters matches one or more ASCII letters.
var Letters = Satisfy("letters", IsLetter)

// Digits matches one or more decimal digits.
var Digits = Satisfy("digits", IsDigit)

// HexDigits matches one or more hexadecimal digits.
var HexDigits = Satisfy("hex digits", IsHexDigit)

// Alphanumeric matches one or more letters, digits or underscores.
var Alphanumeric = Satisfy("identifier", IsAlphanumeric)

// Whitespace matches one or more spaces or tabs.
var Whitespace = Satisfy("whitespace", IsBlank)

// OptionalWhitespace matches zero or more spaces or tabs.
var OptionalWhitespace Parser[string] = func(c Cursor) Result[string] {
	var (
		input = c.Remaining()
		n     = 0
	)
	//
	for n < len(input) && IsBlank(input[n]) {
		n++
	}
	//
	return success(c.Advance(n), string(input[:n]))
}

// Newline matches a single line terminator ("\n" or "\r\n").
var Newline = Choice(Str("\n"), Str("\r\n"))

// EndOfInput succeeds only when all of the input has been consumed.
var EndOfInput Parser[struct{}] = func(c Cursor) Result[struct{}] {
	if c.AtEnd() {
		return success(c, struct{}{})
	}
	//
	return failure[struct{}](c, unexpected(c, "end of input"))
}

func hasPrefix(input []rune, prefix []rune) bool {
	if len(input) < len(prefix) {
		return false
	}
	//
	for i, r := range prefix {
		if input[i] != r {
			return false
		}
	}
	//
	return true
}

func unexpected(c Cursor, expected string) *Error {
	if c.AtEnd() {
		return unexpectedEnd(c, expected)
	}
	//
	msg := fmt.Sprintf("expected %s, found %q", expected, c.Snippet())
	return newError(c.index, SYNTAX, msg, nil)
}

func unexpectedEnd(c Cursor, expected string) *Error {
	msg := fmt.Sprintf("expected %s, found end of input", expected)
	return newError(c.index, SYNTAX, msg, nil)
}
