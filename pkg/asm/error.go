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
package asm

import "fmt"

// ErrorKind identifies the reason an assembly run failed.
type ErrorKind uint

// UNKNOWN_MNEMONIC indicates an instruction (or instruction form) which is
// absent from the instruction set.
const UNKNOWN_MNEMONIC ErrorKind = 0

// UNRESOLVED_LABEL indicates a reference to a label which is never declared.
const UNRESOLVED_LABEL ErrorKind = 1

// DUPLICATE_LABEL indicates a label which is declared more than once.
const DUPLICATE_LABEL ErrorKind = 2

// OPERAND_MISMATCH indicates operands which do not fit the addressing mode of
// the instruction.
const OPERAND_MISMATCH ErrorKind = 3

// ADDRESS_OVERFLOW indicates a program which does not fit in the 16-bit address
// space.
const ADDRESS_OVERFLOW ErrorKind = 4

// SIZE_MISMATCH indicates an instruction whose encoding disagrees with the size
// declared for it.
const SIZE_MISMATCH ErrorKind = 5

// DUPLICATE_STRUCTURE indicates a structure (or a member of a structure) which
// is declared more than once.
const DUPLICATE_STRUCTURE ErrorKind = 6

// UNRESOLVED_MEMBER indicates a reference to a structure which is never
// declared, or to a member which the structure does not declare.
const UNRESOLVED_MEMBER ErrorKind = 7

func (k ErrorKind) String() string {
	switch k {
	case UNKNOWN_MNEMONIC:
		return "unknown mnemonic"
	case UNRESOLVED_LABEL:
		return "unresolved label"
	case DUPLICATE_LABEL:
		return "duplicate label"
	case OPERAND_MISMATCH:
		return "operand mismatch"
	case ADDRESS_OVERFLOW:
		return "address overflow"
	case SIZE_MISMATCH:
		return "size mismatch"
	case DUPLICATE_STRUCTURE:
		return "duplicate structure"
	case UNRESOLVED_MEMBER:
		return "unresolved member"
	default:
		return fmt.Sprintf("error(%d)", uint(k))
	}
}

// Error describes a fatal problem encountered whilst assembling.  The node
// identifies the offending item (an ast.Node, ast.Operand or ast.Member), such
// that it can be mapped back to the source text.
type Error struct {
	Kind    ErrorKind
	Node    any
	Message string
}

func newError(kind ErrorKind, node any, format string, args ...any) *Error {
	return &Error{kind, node, fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
