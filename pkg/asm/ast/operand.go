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
)

// Operand is an argument of an instruction.  How an operand is encoded depends
// on the slot it occupies within the instruction's addressing mode.
type Operand interface {
	fmt.Stringer
	// Marker to prevent other types implementing this interface.
	isOperand()
}

// Register names a machine register, either directly (e.g. "r1") or as a
// pointer to memory (e.g. "&r1").
type Register struct {
	Name string
	// Indicates the register is used as a pointer.
	Pointer bool
}

// NewRegister constructs a (direct) register operand.
func NewRegister(name string) *Register {
	return &Register{name, false}
}

// NewRegisterPointer constructs a register pointer operand.
func NewRegisterPointer(name string) *Register {
	return &Register{name, true}
}

func (p *Register) isOperand() {}

func (p *Register) String() string {
	if p.Pointer {
		return fmt.Sprintf("&%s", p.Name)
	}
	//
	return p.Name
}

// Literal is an immediate 16-bit value (e.g. "$2a").
type Literal struct {
	Value uint16
}

// NewLiteral constructs a literal operand.
func NewLiteral(value uint16) *Literal {
	return &Literal{value}
}

func (p *Literal) isOperand() {}

func (p *Literal) String() string {
	return fmt.Sprintf("$%02x", p.Value)
}

// Address is an absolute memory address (e.g. "&0050").
type Address struct {
	Value uint16
}

// NewAddress constructs a memory address operand.
func NewAddress(value uint16) *Address {
	return &Address{value}
}

func (p *Address) isOperand() {}

func (p *Address) String() string {
	return fmt.Sprintf("&%04x", p.Value)
}

// LabelRef refers to the address of a label (e.g. "!loop").  This remains
// unresolved until all labels have been assigned addresses.
type LabelRef struct {
	Name string
}

// NewLabelRef constructs a label reference operand.
func NewLabelRef(name string) *LabelRef {
	return &LabelRef{name}
}

func (p *LabelRef) isOperand() {}

func (p *LabelRef) String() string {
	return fmt.Sprintf("!%s", p.Name)
}

// Expression is a binary arithmetic operation over literals and label
// references, written within square brackets (e.g. "[!table + $02]").
type Expression struct {
	// One of '+', '-' or '*'.
	Operator rune
	Left     Operand
	Right    Operand
}

// NewExpression constructs a binary expression operand.
func NewExpression(operator rune, left Operand, right Operand) *Expression {
	return &Expression{operator, left, right}
}

func (p *Expression) isOperand() {}

func (p *Expression) String() string {
	return fmt.Sprintf("[%s %c %s]", p.Left.String(), p.Operator, p.Right.String())
}

// MemberRef refers to a member of a structure laid out at the address of a
// label (e.g. "<Point> !origin.y").  This denotes the address of the label plus
// the offset of the member.
type MemberRef struct {
	Structure string
	Label     string
	Member    string
}

// NewMemberRef constructs a structure member reference operand.
func NewMemberRef(structure string, label string, member string) *MemberRef {
	return &MemberRef{structure, label, member}
}

func (p *MemberRef) isOperand() {}

func (p *MemberRef) String() string {
	return fmt.Sprintf("<%s> !%s.%s", p.Structure, p.Label, p.Member)
}

// Environment resolves the symbolic parts of an operand.
type Environment interface {
	// Label returns the address of a given label.
	Label(ref *LabelRef) (uint16, error)
	// Member returns the address of a given structure member.
	Member(ref *MemberRef) (uint16, error)
}

// Evaluate an operand which denotes a value, using a given environment to
// resolve label and member references.  Registers do not denote values and are
// rejected.
func Evaluate(operand Operand, env Environment) (uint16, error) {
	switch o := operand.(type) {
	case *Literal:
		return o.Value, nil
	case *Address:
		return o.Value, nil
	case *LabelRef:
		return env.Label(o)
	case *MemberRef:
		return env.Member(o)
	case *Expression:
		lhs, err := Evaluate(o.Left, env)
		if err != nil {
			return 0, err
		}
		//
		rhs, err := Evaluate(o.Right, env)
		if err != nil {
			return 0, err
		}
		// Arithmetic wraps around at 16 bits.
		switch o.Operator {
		case '+':
			return lhs + rhs, nil
		case '-':
			return lhs - rhs, nil
		case '*':
			return lhs * rhs, nil
		default:
			return 0, fmt.Errorf("unknown operator '%c'", o.Operator)
		}
	default:
		return 0, fmt.Errorf("operand %s does not denote a value", operand.String())
	}
}
