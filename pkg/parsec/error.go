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

import "fmt"

// ErrorKind classifies the failure of a parser.  Most failures are plain syntax
// errors, but grammars can use the other kinds to report failures which are
// more specific than "this didn't match".
type ErrorKind uint

// SYNTAX indicates the input did not match the expected construct.
const SYNTAX ErrorKind = 0

// UNKNOWN_REGISTER indicates a well-formed name which is not a register.
const UNKNOWN_REGISTER ErrorKind = 1

// UNKNOWN_MNEMONIC indicates a well-formed name which is not an instruction.
const UNKNOWN_MNEMONIC ErrorKind = 2

// INVALID_LITERAL indicates a well-formed literal whose value is out of range.
const INVALID_LITERAL ErrorKind = 3

func (k ErrorKind) String() string {
	switch k {
	case SYNTAX:
		return "syntax error"
	case UNKNOWN_REGISTER:
		return "unknown register"
	case UNKNOWN_MNEMONIC:
		return "unknown mnemonic"
	case INVALID_LITERAL:
		return "invalid literal"
	default:
		return fmt.Sprintf("error(%d)", uint(k))
	}
}

// Error describes why (and where) a parser gave up.  An error may have a cause,
// which is the failure of some nested parser that explains it.  For example, a
// choice reports failure at the position it was attempted, but retains as its
// cause whichever alternative made the most progress.
type Error struct {
	// Index in the original text where the parser gave up.
	Index int
	// Kind of failure.
	Kind ErrorKind
	// Human-readable description of what was expected.
	Message string
	// Underlying failure (or nil).
	Cause *Error
}

// Reject constructs an error which has not yet been positioned.  This is used
// by the functions given to Refine, which reports the error at the position
// its parser started from.
func Reject(kind ErrorKind, format string, args ...any) *Error {
	return &Error{-1, kind, fmt.Sprintf(format, args...), nil}
}

func newError(index int, kind ErrorKind, msg string, cause *Error) *Error {
	return &Error{index, kind, msg, cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Index, e.Message)
}

// Deepest walks the chain of causes for this error and returns the one which
// progressed furthest through the input.  On a tie, the innermost error wins
// (since it is the most precise), except that a specific failure (e.g. an
// unknown register) is never displaced by a generic syntax error.
func (e *Error) Deepest() *Error {
	best := e
	//
	for c := e.Cause; c != nil; c = c.Cause {
		if further(c, best) || (c.Index == best.Index && (c.Kind != SYNTAX || best.Kind == SYNTAX)) {
			best = c
		}
	}
	//
	return best
}

// Determine whether a given error progressed further than another.
func further(e *Error, than *Error) bool {
	if e.Index != than.Index {
		return e.Index > than.Index
	}
	//
	return than.Kind == SYNTAX && e.Kind != SYNTAX
}
