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
	"encoding/json"
	"fmt"
	"os"
)

// jsonSet is the on-disk description of an instruction set, for example:
//
//	{
//	  "registers": ["r1", "r2"],
//	  "instructions": [
//	    {"name": "MOV_LIT_REG", "mnemonic": "mov", "opcode": 16, "category": "litReg"}
//	  ]
//	}
//
// The size of an instruction may be omitted, in which case it is determined by
// its category.
type jsonSet struct {
	Registers    []string          `json:"registers"`
	Instructions []jsonInstruction `json:"instructions"`
}

type jsonInstruction struct {
	Name     string `json:"name"`
	Mnemonic string `json:"mnemonic"`
	Opcode   uint8  `json:"opcode"`
	Category string `json:"category"`
	Size     uint   `json:"size,omitempty"`
}

// ReadFile reads an instruction set from a JSON file.
func ReadFile(filename string) (*Set, error) {
	bytes, err := os.ReadFile(filename)
	//
	if err != nil {
		return nil, err
	}
	//
	set, err := Read(bytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return set, nil
}

// Read parses an instruction set from its JSON description.
func Read(bytes []byte) (*Set, error) {
	var (
		raw          jsonSet
		instructions []Instruction
	)
	//
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return nil, err
	}
	//
	for _, ri := range raw.Instructions {
		category, err := ParseCategory(ri.Category)
		//
		if err != nil {
			return nil, fmt.Errorf("instruction \"%s\": %w", ri.Name, err)
		}
		//
		size := ri.Size
		if size == 0 {
			size = category.Size()
		}
		//
		instructions = append(instructions, Instruction{ri.Name, ri.Mnemonic, ri.Opcode, category, size})
	}
	//
	return NewSet(raw.Registers, instructions)
}

// Write produces the JSON description of a given instruction set.
func Write(set *Set) ([]byte, error) {
	var raw = jsonSet{Registers: set.Registers()}
	//
	for _, insn := range set.Instructions() {
		raw.Instructions = append(raw.Instructions,
			jsonInstruction{insn.Name, insn.Mnemonic, insn.Opcode, insn.Category.String(), insn.Size})
	}
	//
	return json.MarshalIndent(raw, "", "  ")
}
