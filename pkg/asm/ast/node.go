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
package ast

import (
	"fmt"
	"strings"
)

// Node is a single statement of an assembly program: either a label, an
// instruction or a structure declaration.  Nodes appear in program order,
// which is also the order of the bytes they encode to.
type Node interface {
	fmt.Stringer
	// Marker to prevent other types implementing this interface.
	isNode()
}

// Label declares a name for the address of whatever instruction follows it.
type Label struct {
	Name string
}

// NewLabel constructs a new label declaration.
func NewLabel(name string) *Label {
	return &Label{name}
}

func (p *Label) isNode() {}

func (p *Label) String() string {
	return fmt.Sprintf("%s:", p.Name)
}

// Instruction is a use of a given instruction form with some operands.
type Instruction struct {
	// Mnemonic as written (in lower-case).
	Mnemonic string
	// Name of the instruction form selected by the parser (e.g. MOV_LIT_REG).
	Form string
	// Operands in the order written.
	Operands []Operand
}

// NewInstruction constructs a new instruction.
func NewInstruction(mnemonic string, form string, operands ...Operand) *Instruction {
	return &Instruction{mnemonic, form, operands}
}

func (p *Instruction) isNode() {}

func (p *Instruction) String() string {
	var builder strings.Builder
	//
	builder.WriteString(p.Mnemonic)
	//
	for i, o := range p.Operands {
		if i == 0 {
			builder.WriteString(" ")
		} else {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(o.String())
	}
	//
	return builder.String()
}

// Structure declares a named layout of fields (e.g. "structure Point { x: $00,
// y: $02 }"), where each member names an offset.  Structures emit no code, but
// can be used to access fields relative to a label.
type Structure struct {
	Name string
	// Indicates the structure is exported (i.e. written "+structure").
	Export bool
	// Members in declaration order.
	Members []*Member
}

// Member is a single field of a structure.
type Member struct {
	Name   string
	Offset uint16
}

// NewStructure constructs a new structure declaration.
func NewStructure(name string, export bool, members ...*Member) *Structure {
	return &Structure{name, export, members}
}

// NewMember constructs a new member of a structure.
func NewMember(name string, offset uint16) *Member {
	return &Member{name, offset}
}

func (p *Structure) isNode() {}

func (p *Structure) String() string {
	var builder strings.Builder
	//
	if p.Export {
		builder.WriteString("+")
	}
	//
	builder.WriteString(fmt.Sprintf("structure %s {", p.Name))
	//
	for i, m := range p.Members {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(fmt.Sprintf(" %s", m.String()))
	}
	//
	builder.WriteString(" }")
	//
	return builder.String()
}

func (p *Member) String() string {
	return fmt.Sprintf("%s: $%02x", p.Name, p.Offset)
}
