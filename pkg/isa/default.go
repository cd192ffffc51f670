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
package isa

// REGISTERS of the 16-bit virtual machine, in encoding order.
var REGISTERS = []string{"ip", "acc", "r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8", "sp", "fp"}

// INSTRUCTIONS of the 16-bit virtual machine.
var INSTRUCTIONS = []Instruction{
	// Moves
	insn("MOV_LIT_REG", "mov", 0x10, LIT_REG),
	insn("MOV_REG_REG", "mov", 0x11, REG_REG),
	insn("MOV_REG_MEM", "mov", 0x12, REG_MEM),
	insn("MOV_MEM_REG", "mov", 0x13, MEM_REG),
	insn("MOV_LIT_MEM", "mov", 0x1b, LIT_MEM),
	insn("MOV_REG_PTR_REG", "mov", 0x1c, REG_PTR_REG),
	insn("MOV_LIT_OFF_REG", "mov", 0x1d, LIT_OFF_REG),
	// Arithmetic
	insn("ADD_REG_REG", "add", 0x14, REG_REG),
	insn("ADD_LIT_REG", "add", 0x3f, LIT_REG),
	insn("SUB_LIT_REG", "sub", 0x16, LIT_REG),
	insn("SUB_REG_LIT", "sub", 0x1e, REG_LIT),
	insn("SUB_REG_REG", "sub", 0x1f, REG_REG),
	insn("INC_REG", "inc", 0x35, SINGLE_REG),
	insn("DEC_REG", "dec", 0x36, SINGLE_REG),
	insn("MUL_LIT_REG", "mul", 0x20, LIT_REG),
	insn("MUL_REG_REG", "mul", 0x21, REG_REG),
	// Bitwise
	insn("LSF_REG_LIT", "lsf", 0x26, REG_LIT8),
	insn("LSF_REG_REG", "lsf", 0x27, REG_REG),
	insn("RSF_REG_LIT", "rsf", 0x2a, REG_LIT8),
	insn("RSF_REG_REG", "rsf", 0x2b, REG_REG),
	insn("AND_REG_LIT", "and", 0x2e, REG_LIT),
	insn("AND_REG_REG", "and", 0x2f, REG_REG),
	insn("OR_REG_LIT", "or", 0x30, REG_LIT),
	insn("OR_REG_REG", "or", 0x31, REG_REG),
	insn("XOR_REG_LIT", "xor", 0x32, REG_LIT),
	insn("XOR_REG_REG", "xor", 0x33, REG_REG),
	insn("NOT", "not", 0x34, SINGLE_REG),
	// Branching (compare acc against the first operand)
	insn("JNE_LIT", "jne", 0x15, LIT_MEM),
	insn("JNE_REG", "jne", 0x40, REG_MEM),
	insn("JEQ_REG", "jeq", 0x3e, REG_MEM),
	insn("JEQ_LIT", "jeq", 0x41, LIT_MEM),
	insn("JLT_REG", "jlt", 0x42, REG_MEM),
	insn("JLT_LIT", "jlt", 0x43, LIT_MEM),
	insn("JGT_REG", "jgt", 0x44, REG_MEM),
	insn("JGT_LIT", "jgt", 0x45, LIT_MEM),
	insn("JLE_REG", "jle", 0x46, REG_MEM),
	insn("JLE_LIT", "jle", 0x47, LIT_MEM),
	insn("JGE_REG", "jge", 0x48, REG_MEM),
	insn("JGE_LIT", "jge", 0x49, LIT_MEM),
	// Stack and subroutines
	insn("PSH_LIT", "psh", 0x17, SINGLE_LIT),
	insn("PSH_REG", "psh", 0x18, SINGLE_REG),
	insn("POP", "pop", 0x1a, SINGLE_REG),
	insn("CAL_LIT", "cal", 0x5e, SINGLE_LIT),
	insn("CAL_REG", "cal", 0x5f, SINGLE_REG),
	insn("RET", "ret", 0x60, NO_ARGS),
	insn("HLT", "hlt", 0xff, NO_ARGS),
	// Interrupts
	insn("INT", "int", 0xfd, SINGLE_LIT),
	insn("RET_INT", "rti", 0xfc, NO_ARGS),
}

// Default returns the instruction set of the 16-bit virtual machine.
func Default() *Set {
	set, err := NewSet(REGISTERS, INSTRUCTIONS)
	// Should be impossible, since the tables above are fixed.
	if err != nil {
		panic(err)
	}
	//
	return set
}

func insn(name string, mnemonic string, opcode uint8, category Category) Instruction {
	return Instruction{name, mnemonic, opcode, category, category.Size()}
}
