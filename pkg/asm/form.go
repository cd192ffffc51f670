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
)

// Determine the instruction form used by a given instruction.  Instructions
// produced by the parser already name their form, in which case it is checked
// against the operands.  Otherwise, the first form of the mnemonic which fits
// the operands is chosen.
func selectForm(set *isa.Set, insn *ast.Instruction) (isa.Instruction, *Error) {
	if insn.Form != "" {
		form, ok := set.Instruction(insn.Form)
		//
		if !ok || form.Mnemonic != insn.Mnemonic {
			return form, newError(UNKNOWN_MNEMONIC, insn, "unknown instruction \"%s\"", insn.Form)
		}
		//
		return form, checkOperands(set, insn, form)
	}
	//
	forms := set.Forms(insn.Mnemonic)
	//
	if len(forms) == 0 {
		return isa.Instruction{}, newError(UNKNOWN_MNEMONIC, insn, "unknown instruction \"%s\"", insn.Mnemonic)
	}
	//
	for _, form := range forms {
		if checkOperands(set, insn, form) == nil {
			return form, nil
		}
	}
	//
	return isa.Instruction{}, newError(OPERAND_MISMATCH, insn, "invalid operands for \"%s\"", insn.Mnemonic)
}

// Check the operands of an instruction match the shape of a given form.
func checkOperands(set *isa.Set, insn *ast.Instruction, form isa.Instruction) *Error {
	slots := form.Category.Slots()
	//
	if len(slots) != len(insn.Operands) {
		return newError(OPERAND_MISMATCH, insn, "%s expects %d operand(s), found %d", form.Name, len(slots),
			len(insn.Operands))
	}
	//
	for i, slot := range slots {
		if err := checkOperand(set, slot, insn.Operands[i]); err != nil {
			return err
		}
	}
	//
	return nil
}

func checkOperand(set *isa.Set, slot isa.Slot, operand ast.Operand) *Error {
	var ok bool
	//
	switch o := operand.(type) {
	case *ast.Register:
		_, known := set.Register(o.Name)
		//
		if !known {
			return newError(OPERAND_MISMATCH, operand, "unknown register \"%s\"", o.Name)
		}
		//
		ok = (slot == isa.REGISTER && !o.Pointer) || (slot == isa.REGISTER_POINTER && o.Pointer)
	case *ast.Literal:
		ok = slot == isa.LITERAL || slot == isa.LITERAL8
	case *ast.Address:
		ok = slot == isa.MEMORY
	case *ast.LabelRef, *ast.MemberRef, *ast.Expression:
		ok = slot == isa.LITERAL || slot == isa.LITERAL8 || slot == isa.MEMORY
	}
	//
	if !ok {
		return newError(OPERAND_MISMATCH, operand, "expected %s, found \"%s\"", slot.String(), operand.String())
	}
	//
	return nil
}
