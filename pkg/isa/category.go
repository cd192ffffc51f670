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

import "fmt"

// Slot describes one operand position of an instruction, and hence how the
// operand in that position is written and encoded.
type Slot uint

// LITERAL is a 16-bit value, encoded high byte first.
const LITERAL Slot = 0

// LITERAL8 is an 8-bit value, encoded as the low byte only.
const LITERAL8 Slot = 1

// MEMORY is a 16-bit absolute address, encoded high byte first.
const MEMORY Slot = 2

// REGISTER is a register, encoded as its index in the register table.
const REGISTER Slot = 3

// REGISTER_POINTER is a register holding an address, encoded as the register
// index.
const REGISTER_POINTER Slot = 4

// Width returns the number of bytes used to encode an operand in this slot.
func (s Slot) Width() uint {
	switch s {
	case LITERAL, MEMORY:
		return 2
	case LITERAL8, REGISTER, REGISTER_POINTER:
		return 1
	default:
		panic(fmt.Sprintf("unknown slot %d", uint(s)))
	}
}

func (s Slot) String() string {
	switch s {
	case LITERAL:
		return "literal"
	case LITERAL8:
		return "8-bit literal"
	case MEMORY:
		return "memory address"
	case REGISTER:
		return "register"
	case REGISTER_POINTER:
		return "register pointer"
	default:
		return fmt.Sprintf("slot(%d)", uint(s))
	}
}

// Category is the addressing mode of an instruction.  This fixes the number,
// order and kind of its operands, and therefore also its encoded size.
type Category uint

// LIT_REG takes a literal then a register (e.g. "mov $42, r1").
const LIT_REG Category = 0

// REG_LIT takes a register then a 16-bit literal (e.g. "sub r1, $02").
const REG_LIT Category = 1

// REG_LIT8 takes a register then an 8-bit literal (e.g. "lsf r1, $04").
const REG_LIT8 Category = 2

// REG_REG takes two registers (e.g. "add r1, r2").
const REG_REG Category = 3

// REG_MEM takes a register then a memory address (e.g. "mov r1, &0050").
const REG_MEM Category = 4

// MEM_REG takes a memory address then a register (e.g. "mov &0050, r1").
const MEM_REG Category = 5

// LIT_MEM takes a literal then a memory address (e.g. "jne $00, &0100").
const LIT_MEM Category = 6

// REG_PTR_REG takes a register pointer then a register (e.g. "mov &r1, r2").
const REG_PTR_REG Category = 7

// LIT_OFF_REG takes a literal, a register pointer (the offset) and a register
// (e.g. "mov $40, &r1, r2").
const LIT_OFF_REG Category = 8

// NO_ARGS takes no operands (e.g. "hlt").
const NO_ARGS Category = 9

// SINGLE_REG takes a single register (e.g. "inc r1").
const SINGLE_REG Category = 10

// SINGLE_LIT takes a single literal (e.g. "psh $10").
const SINGLE_LIT Category = 11

// Shapes of each category, indexed by category.
var categories = []struct {
	name  string
	slots []Slot
}{
	{"litReg", []Slot{LITERAL, REGISTER}},
	{"regLit", []Slot{REGISTER, LITERAL}},
	{"regLit8", []Slot{REGISTER, LITERAL8}},
	{"regReg", []Slot{REGISTER, REGISTER}},
	{"regMem", []Slot{REGISTER, MEMORY}},
	{"memReg", []Slot{MEMORY, REGISTER}},
	{"litMem", []Slot{LITERAL, MEMORY}},
	{"regPtrReg", []Slot{REGISTER_POINTER, REGISTER}},
	{"litOffReg", []Slot{LITERAL, REGISTER_POINTER, REGISTER}},
	{"noArgs", []Slot{}},
	{"singleReg", []Slot{REGISTER}},
	{"singleLit", []Slot{LITERAL}},
}

// ParseCategory converts the name of a category (e.g. "litReg") into a
// category.
func ParseCategory(name string) (Category, error) {
	for i, c := range categories {
		if c.name == name {
			return Category(i), nil
		}
	}
	//
	return 0, fmt.Errorf("unknown addressing mode \"%s\"", name)
}

// Valid checks whether this is one of the known categories.
func (c Category) Valid() bool {
	return uint(c) < uint(len(categories))
}

// Slots returns the operand slots of this category, in the order they are
// written and encoded.
func (c Category) Slots() []Slot {
	return categories[c].slots
}

// Arity returns the number of operands for this category.
func (c Category) Arity() uint {
	return uint(len(categories[c].slots))
}

// Size returns the number of bytes required to encode an instruction of this
// category, including its opcode.
func (c Category) Size() uint {
	size := uint(1)
	//
	for _, s := range categories[c].slots {
		size += s.Width()
	}
	//
	return size
}

// HasPointer checks whether any operand of this category is a register
// pointer.
func (c Category) HasPointer() bool {
	for _, s := range categories[c].slots {
		if s == REGISTER_POINTER {
			return true
		}
	}
	//
	return false
}

func (c Category) String() string {
	if c.Valid() {
		return categories[c].name
	}
	//
	return fmt.Sprintf("category(%d)", uint(c))
}
