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

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Instruction describes one form of an instruction.  A mnemonic can have
// several forms, one for each addressing mode it supports (e.g. "mov" has
// MOV_LIT_REG, MOV_REG_REG, etc).
type Instruction struct {
	// Unique name of this form (e.g. "MOV_LIT_REG").
	Name string
	// Mnemonic used in assembly source (e.g. "mov").
	Mnemonic string
	// Opcode emitted as the first byte.
	Opcode uint8
	// Addressing mode.
	Category Category
	// Total encoded size in bytes, including the opcode.
	Size uint
}

func (i Instruction) String() string {
	return fmt.Sprintf("%s(%s 0x%02x %s %d)", i.Name, i.Mnemonic, i.Opcode, i.Category.String(), i.Size)
}

// Set is a closed table of instructions and registers for a given machine.
// Sets are immutable once constructed and can be shared freely.
type Set struct {
	registers    []string
	instructions []Instruction
	// Index of each register.
	registerIndex map[string]uint8
	// Index of each instruction by name.
	byName map[string]int
	// Forms of each mnemonic (in table order).
	byMnemonic map[string][]Instruction
}

// NewSet constructs an instruction set from a given register table and
// instruction table.  A register is encoded as its position in the register
// table.  This checks the tables are well-formed: names are unique, opcodes
// are unique, and each declared size matches the shape of its addressing mode.
func NewSet(registers []string, instructions []Instruction) (*Set, error) {
	var set = &Set{
		registers:     slices.Clone(registers),
		instructions:  slices.Clone(instructions),
		registerIndex: make(map[string]uint8),
		byName:        make(map[string]int),
		byMnemonic:    make(map[string][]Instruction),
	}
	//
	if len(registers) == 0 {
		return nil, fmt.Errorf("register table is empty")
	} else if len(registers) > math.MaxUint8+1 {
		return nil, fmt.Errorf("too many registers (%d)", len(registers))
	}
	//
	for i, r := range registers {
		if !isIdentifier(r) {
			return nil, fmt.Errorf("invalid register name \"%s\"", r)
		} else if _, ok := set.registerIndex[r]; ok {
			return nil, fmt.Errorf("duplicate register \"%s\"", r)
		}
		//
		set.registerIndex[r] = uint8(i)
	}
	//
	opcodes := make(map[uint8]string)
	//
	for i, insn := range instructions {
		if err := checkInstruction(insn); err != nil {
			return nil, err
		} else if _, ok := set.byName[insn.Name]; ok {
			return nil, fmt.Errorf("duplicate instruction \"%s\"", insn.Name)
		} else if other, ok := opcodes[insn.Opcode]; ok {
			return nil, fmt.Errorf("instructions \"%s\" and \"%s\" share opcode 0x%02x", other, insn.Name, insn.Opcode)
		}
		//
		opcodes[insn.Opcode] = insn.Name
		set.byName[insn.Name] = i
		set.byMnemonic[insn.Mnemonic] = append(set.byMnemonic[insn.Mnemonic], insn)
	}
	//
	return set, nil
}

func checkInstruction(insn Instruction) error {
	switch {
	case insn.Name == "":
		return fmt.Errorf("instruction with opcode 0x%02x has no name", insn.Opcode)
	case !isMnemonic(insn.Mnemonic):
		return fmt.Errorf("instruction \"%s\" has invalid mnemonic \"%s\"", insn.Name, insn.Mnemonic)
	case !insn.Category.Valid():
		return fmt.Errorf("instruction \"%s\" has unknown addressing mode %d", insn.Name, uint(insn.Category))
	case insn.Size != insn.Category.Size():
		return fmt.Errorf("instruction \"%s\" declares size %d, but %s requires %d", insn.Name, insn.Size,
			insn.Category.String(), insn.Category.Size())
	}
	//
	return nil
}

// Instruction looks up an instruction form by name.
func (s *Set) Instruction(name string) (Instruction, bool) {
	if i, ok := s.byName[name]; ok {
		return s.instructions[i], true
	}
	//
	return Instruction{}, false
}

// Instructions returns every instruction form in table order.
func (s *Set) Instructions() []Instruction {
	return slices.Clone(s.instructions)
}

// Forms returns the instruction forms for a given mnemonic, in table order.
// This is empty if the mnemonic is unknown.
func (s *Set) Forms(mnemonic string) []Instruction {
	return slices.Clone(s.byMnemonic[mnemonic])
}

// Mnemonics returns the known mnemonics in sorted order.
func (s *Set) Mnemonics() []string {
	var names []string
	//
	for m := range s.byMnemonic {
		names = append(names, m)
	}
	//
	slices.Sort(names)
	//
	return names
}

// Registers returns the register table.
func (s *Set) Registers() []string {
	return slices.Clone(s.registers)
}

// RegisterName returns the name of the register with a given index.
func (s *Set) RegisterName(index uint8) string {
	return s.registers[index]
}

// Register determines the index of a given register.  Register names match
// either exactly, or in all upper-case form (e.g. "ACC" for "acc").
func (s *Set) Register(name string) (uint8, bool) {
	if i, ok := s.registerIndex[name]; ok {
		return i, true
	} else if name == strings.ToUpper(name) {
		i, ok := s.registerIndex[strings.ToLower(name)]
		return i, ok
	}
	//
	return 0, false
}

// Mnemonics are made of letters only.
func isMnemonic(name string) bool {
	if name == "" {
		return false
	}
	//
	for _, r := range name {
		if !isLetter(r) {
			return false
		}
	}
	//
	return true
}

// Identifiers start with a letter, followed by letters, digits or underscores.
func isIdentifier(name string) bool {
	for i, r := range name {
		if !isLetter(r) && (i == 0 || !(('0' <= r && r <= '9') || r == '_')) {
			return false
		}
	}
	//
	return name != ""
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
