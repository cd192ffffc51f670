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

import (
	"github.com/consensys/go-asm16/pkg/asm/ast"
	"github.com/consensys/go-asm16/pkg/isa"
	log "github.com/sirupsen/logrus"
)

// Encode is the second pass of the assembler.  This walks the nodes in program
// order, emitting the opcode of each instruction followed by its operands in
// the order fixed by its addressing mode.  Label and member references are
// resolved using the tables produced by the first pass.
func Encode(set *isa.Set, nodes []ast.Node, labels Labels, structures Structures) ([]byte, error) {
	var code []byte
	//
	for _, node := range nodes {
		insn, ok := node.(*ast.Instruction)
		// Labels and structures emit nothing
		if !ok {
			continue
		}
		//
		form, err := selectForm(set, insn)
		//
		if err != nil {
			return nil, err
		}
		//
		start := len(code)
		code = append(code, form.Opcode)
		//
		for i, slot := range form.Category.Slots() {
			env := environment{labels, structures, insn.Operands[i]}
			//
			if code, err = encodeOperand(code, set, env, slot); err != nil {
				return nil, err
			}
		}
		// Sanity check against the first pass
		if n := uint(len(code) - start); n != form.Size {
			return nil, newError(SIZE_MISMATCH, insn, "%s encoded as %d bytes (declared %d)", form.Name, n, form.Size)
		}
	}
	//
	log.Debugf("encoded %d byte(s)", len(code))
	//
	return code, nil
}

// Encode a single operand in a given slot.  Values occupying a 16-bit slot are
// written high byte first.
func encodeOperand(code []byte, set *isa.Set, env environment, slot isa.Slot) ([]byte, *Error) {
	switch slot {
	case isa.REGISTER, isa.REGISTER_POINTER:
		index, _ := set.Register(env.operand.(*ast.Register).Name)
		//
		return append(code, index), nil
	case isa.LITERAL8:
		value, err := env.evaluate()
		//
		if err != nil {
			return code, err
		}
		//
		_, low := split(value)
		//
		return append(code, low), nil
	default:
		value, err := env.evaluate()
		//
		if err != nil {
			return code, err
		}
		//
		high, low := split(value)
		//
		return append(code, high, low), nil
	}
}

// Resolves the references within a single (top-level) operand.  Failures are
// reported against the operand, since that is what the source map knows.
type environment struct {
	labels     Labels
	structures Structures
	operand    ast.Operand
}

// Label implements ast.Environment.
func (p environment) Label(ref *ast.LabelRef) (uint16, error) {
	if addr, ok := p.labels.Lookup(ref.Name); ok {
		return addr, nil
	}
	//
	return 0, newError(UNRESOLVED_LABEL, p.operand, "unknown label \"%s\"", ref.Name)
}

// Member implements ast.Environment.  The address of a member is that of the
// label plus the offset of the member (wrapping around at 16 bits).
func (p environment) Member(ref *ast.MemberRef) (uint16, error) {
	addr, err := p.Label(ast.NewLabelRef(ref.Label))
	//
	if err != nil {
		return 0, err
	} else if !p.structures.Has(ref.Structure) {
		return 0, newError(UNRESOLVED_MEMBER, p.operand, "unknown structure \"%s\"", ref.Structure)
	}
	//
	offset, ok := p.structures.Offset(ref.Structure, ref.Member)
	//
	if !ok {
		return 0, newError(UNRESOLVED_MEMBER, p.operand, "structure \"%s\" has no member \"%s\"", ref.Structure,
			ref.Member)
	}
	//
	return addr + offset, nil
}

// Evaluate the operand as a value.
func (p environment) evaluate() (uint16, *Error) {
	value, err := ast.Evaluate(p.operand, p)
	//
	if e, ok := err.(*Error); ok {
		return 0, e
	} else if err != nil {
		return 0, newError(OPERAND_MISMATCH, p.operand, "%s", err.Error())
	}
	//
	return value, nil
}

// Split a 16-bit value into its high and low bytes.
func split(value uint16) (byte, byte) {
	return byte((value >> 8) & 0xff), byte(value & 0xff)
}
