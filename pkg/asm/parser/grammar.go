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
package parser

import (
	"slices"
	"strconv"
	"strings"

	"github.com/consensys/go-asm16/pkg/asm/ast"
	"github.com/consensys/go-asm16/pkg/isa"
	"github.com/consensys/go-asm16/pkg/parsec"
)

// Operand is an operand along with the region of text it was parsed from.
type Operand = parsec.Located[ast.Operand]

// Member is a member of a structure along with the region of text it was
// parsed from.
type Member = parsec.Located[*ast.Member]

// Statement is the result of parsing a single line.  Blank lines (and lines
// holding only a comment) produce a statement without a node.
type Statement struct {
	Node ast.Node
	// Region of text covered by the node (excluding trailing whitespace,
	// comments and the line terminator).
	Start int
	End   int
	// Located operands of an instruction, in order.
	Operands []Operand
	// Located members of a structure, in order.
	Members []Member
}

// Result of matching one form of an instruction.
type formMatch struct {
	form     isa.Instruction
	operands parsec.Located[[]Operand]
}

// Grammar holds the parsers for the assembly language of a given instruction
// set.  The set determines which mnemonics and registers are recognised, and
// what operands each mnemonic accepts.
type Grammar struct {
	set *isa.Set
	// Terminals
	identifier parsec.Parser[string]
	hexValue   parsec.Parser[uint16]
	separator  parsec.Parser[[]string]
	endOfLine  parsec.Parser[struct{}]
	// Operands
	bracketed parsec.Parser[ast.Operand]
	literal   parsec.Parser[ast.Operand]
	memory    parsec.Parser[ast.Operand]
	register  parsec.Parser[ast.Operand]
	pointer   parsec.Parser[ast.Operand]
	// Statements
	label       parsec.Parser[Statement]
	structure   parsec.Parser[Statement]
	instruction parsec.Parser[Statement]
	line        parsec.Parser[Statement]
	program     parsec.Parser[[]Statement]
}

// NewGrammar constructs the grammar for a given instruction set.
func NewGrammar(set *isa.Set) *Grammar {
	g := &Grammar{set: set}
	// Terminals
	g.identifier = parsec.Map(parsec.Sequence(parsec.Letters, parsec.Optional(parsec.Alphanumeric, "")), concat)
	g.hexValue = parsec.Refine(parsec.HexDigits, parseHex)
	g.separator = parsec.Sequence(parsec.OptionalWhitespace, parsec.Str(","), parsec.OptionalWhitespace)
	g.endOfLine = parsec.Expect(endOfLine(), "end of line")
	// Operands
	g.bracketed = g.bracketedExpression()
	g.literal = g.literalOperand()
	g.memory = g.memoryOperand()
	g.register = g.registerOperand()
	g.pointer = parsec.Map(parsec.Right(parsec.Str("&"), g.register), func(o ast.Operand) ast.Operand {
		return ast.NewRegisterPointer(o.(*ast.Register).Name)
	})
	// Statements
	g.label = g.labelStatement()
	g.structure = g.structureStatement()
	g.instruction = g.instructionStatement()
	g.line = g.lineStatement()
	g.program = parsec.ManyTill(g.line, parsec.EndOfInput)
	//
	return g
}

// Program returns the parser for an entire source file.
func (g *Grammar) Program() parsec.Parser[[]Statement] {
	return g.program
}

// Line returns the parser for a single line (including its terminator).
func (g *Grammar) Line() parsec.Parser[Statement] {
	return g.line
}

// ============================================================================
// Statements
// ============================================================================

// line := ws* [ label | structure | instruction ] ws* [comment] ( newline | EOF )
func (g *Grammar) lineStatement() parsec.Parser[Statement] {
	blank := parsec.Map(g.endOfLine, func(struct{}) Statement { return Statement{} })
	//
	return parsec.Right(parsec.OptionalWhitespace, parsec.Choice(blank, g.label, g.structure, g.instruction))
}

// label := identifier ':'
func (g *Grammar) labelStatement() parsec.Parser[Statement] {
	name := parsec.Locate(parsec.Left(g.identifier, parsec.Str(":")))
	name = parsec.Expect(name, "label")
	//
	return parsec.Left(parsec.Map(name, func(l parsec.Located[string]) Statement {
		return Statement{ast.NewLabel(l.Value), l.Start, l.End, nil, nil}
	}), g.endOfLine)
}

// structure := ['+'] "structure" ws+ identifier '{' [ member { ',' member } ] '}'
// member    := identifier ':' '$' hex
//
// The keyword is matched in the same way as a mnemonic.  Unlike other
// statements, the body of a structure may span several lines.
func (g *Grammar) structureStatement() parsec.Parser[Statement] {
	keyword := parsec.Refine(parsec.Letters, func(word string) (string, *parsec.Error) {
		if word == "structure" || word == "STRUCTURE" {
			return word, nil
		}
		//
		return "", parsec.Reject(parsec.SYNTAX, "expected \"structure\", found \"%s\"", word)
	})
	//
	var (
		gap    = parsec.Optional(parsec.Satisfy("whitespace", isSpace), "")
		header = parsec.Sequence(parsec.Optional(parsec.Str("+"), ""), keyword, parsec.Whitespace)
		key    = parsec.Left(g.identifier, parsec.Sequence(gap, parsec.Str(":"), gap, parsec.Str("$")))
	)
	//
	member := parsec.Locate(parsec.Chain(key, func(name string) parsec.Parser[*ast.Member] {
		return parsec.Map(g.hexValue, func(offset uint16) *ast.Member { return ast.NewMember(name, offset) })
	}))
	// An empty body is matched separately, so that a malformed member is
	// reported rather than an unexpected closing brace.
	var (
		opening = parsec.Left(parsec.Str("{"), gap)
		closing = parsec.Right(gap, parsec.Str("}"))
		empty   = parsec.Map(closing, func(string) []Member { return nil })
		sep     = parsec.Sequence(gap, parsec.Str(","), gap)
		body    = parsec.Right(opening, parsec.Choice(empty, parsec.Left(parsec.SepBy1(member, sep), closing)))
	)
	//
	decl := parsec.Locate(parsec.Chain(header, func(h []string) parsec.Parser[Statement] {
		return parsec.Chain(parsec.Left(g.identifier, gap), func(name string) parsec.Parser[Statement] {
			return parsec.Map(body, func(members []Member) Statement {
				var nodes []*ast.Member
				//
				for _, m := range members {
					nodes = append(nodes, m.Value)
				}
				//
				return Statement{Node: ast.NewStructure(name, h[0] == "+", nodes...), Members: members}
			})
		})
	}))
	//
	return parsec.Left(parsec.Map(decl, func(l parsec.Located[Statement]) Statement {
		stmt := l.Value
		stmt.Start, stmt.End = l.Start, l.End
		//
		return stmt
	}), g.endOfLine)
}

// instruction := mnemonic [ ws+ operand { ',' operand } ]
//
// The mnemonic determines which forms are possible, and each form determines
// the operands expected.  The first form to match the entire line is chosen.
func (g *Grammar) instructionStatement() parsec.Parser[Statement] {
	var (
		table    = make(map[string]parsec.Parser[formMatch])
		mnemonic = parsec.Map(parsec.Letters, g.canonicalMnemonic)
	)
	//
	for _, m := range g.set.Mnemonics() {
		var forms []parsec.Parser[formMatch]
		//
		for _, f := range orderForms(g.set.Forms(m)) {
			forms = append(forms, g.form(f))
		}
		//
		table[m] = parsec.Choice(forms...)
	}
	//
	unknown := func(name string) *parsec.Error {
		return parsec.Reject(parsec.UNKNOWN_MNEMONIC, "unknown instruction \"%s\"", name)
	}
	//
	dispatch := parsec.Locate(parsec.Dispatch(mnemonic, table, unknown))
	//
	return parsec.Map(dispatch, func(l parsec.Located[formMatch]) Statement {
		var (
			match    = l.Value
			operands = make([]ast.Operand, len(match.operands.Value))
		)
		//
		for i, o := range match.operands.Value {
			operands[i] = o.Value
		}
		//
		insn := ast.NewInstruction(match.form.Mnemonic, match.form.Name, operands...)
		//
		return Statement{insn, l.Start, match.operands.End, match.operands.Value, nil}
	})
}

// Construct the parser for the operands of a given instruction form, up to
// and including the end of the line.
func (g *Grammar) form(insn isa.Instruction) parsec.Parser[formMatch] {
	var slots []parsec.Parser[Operand]
	//
	for i, s := range insn.Category.Slots() {
		p := parsec.Locate(g.slot(s))
		//
		if i > 0 {
			p = parsec.Right(g.separator, p)
		}
		//
		slots = append(slots, p)
	}
	//
	operands := parsec.Sequence(slots...)
	//
	if len(slots) > 0 {
		operands = parsec.Right(parsec.Whitespace, operands)
	}
	//
	return parsec.Map(parsec.Left(parsec.Locate(operands), g.endOfLine),
		func(ops parsec.Located[[]Operand]) formMatch {
			return formMatch{insn, ops}
		})
}

func (g *Grammar) slot(slot isa.Slot) parsec.Parser[ast.Operand] {
	switch slot {
	case isa.LITERAL, isa.LITERAL8:
		return g.literal
	case isa.MEMORY:
		return g.memory
	case isa.REGISTER:
		return g.register
	case isa.REGISTER_POINTER:
		return g.pointer
	default:
		return parsec.Fail[ast.Operand](parsec.SYNTAX, "unsupported operand %s", slot.String())
	}
}

// Mnemonics are matched as written, or in all upper-case form.
func (g *Grammar) canonicalMnemonic(name string) string {
	if len(g.set.Forms(name)) == 0 && name == strings.ToUpper(name) {
		return strings.ToLower(name)
	}
	//
	return name
}

// Forms using a register pointer (e.g. "&r1") are tried before those using a
// memory address (e.g. "&0050"), since a register name such as "acc" is also a
// valid hexadecimal address.
func orderForms(forms []isa.Instruction) []isa.Instruction {
	slices.SortStableFunc(forms, func(a, b isa.Instruction) int {
		switch {
		case a.Category.HasPointer() == b.Category.HasPointer():
			return 0
		case a.Category.HasPointer():
			return -1
		default:
			return 1
		}
	})
	//
	return forms
}

// ============================================================================
// Operands
// ============================================================================

// literal := '$' hex | '!' identifier | '[' expr ']'
func (g *Grammar) literalOperand() parsec.Parser[ast.Operand] {
	return parsec.Choice(g.hexLiteral(), g.labelRef(), g.bracketed)
}

// memory := '&' hex | '&' '[' expr ']'
func (g *Grammar) memoryOperand() parsec.Parser[ast.Operand] {
	address := parsec.Map(g.hexValue, func(v uint16) ast.Operand { return ast.NewAddress(v) })
	// A constant within brackets is still an address.
	expr := parsec.Map(g.bracketed, func(o ast.Operand) ast.Operand {
		if l, ok := o.(*ast.Literal); ok {
			return ast.NewAddress(l.Value)
		}
		//
		return o
	})
	//
	return parsec.Right(parsec.Str("&"), parsec.Choice(address, expr))
}

// register := identifier (which must name a register)
func (g *Grammar) registerOperand() parsec.Parser[ast.Operand] {
	return parsec.Refine(g.identifier, func(name string) (ast.Operand, *parsec.Error) {
		if index, ok := g.set.Register(name); ok {
			// Use the name as given in the register table.
			return ast.NewRegister(g.set.RegisterName(index)), nil
		}
		//
		return nil, parsec.Reject(parsec.UNKNOWN_REGISTER, "unknown register \"%s\"", name)
	})
}

func (g *Grammar) hexLiteral() parsec.Parser[ast.Operand] {
	return parsec.Map(parsec.Right(parsec.Str("$"), g.hexValue), func(v uint16) ast.Operand {
		return ast.NewLiteral(v)
	})
}

func (g *Grammar) labelRef() parsec.Parser[ast.Operand] {
	return parsec.Map(parsec.Right(parsec.Str("!"), g.identifier), func(name string) ast.Operand {
		return ast.NewLabelRef(name)
	})
}

// Whitespace within a structure body may include line terminators.
func isSpace(r rune) bool {
	return parsec.IsBlank(r) || r == '\n' || r == '\r'
}

func concat(parts []string) string {
	return strings.Join(parts, "")
}

func parseHex(digits string) (uint16, *parsec.Error) {
	value, err := strconv.ParseUint(digits, 16, 16)
	//
	if err != nil {
		return 0, parsec.Reject(parsec.INVALID_LITERAL, "hex literal \"%s\" does not fit in 16 bits", digits)
	}
	//
	return uint16(value), nil
}

// Match the end of a statement, including any trailing whitespace and comment.
func endOfLine() parsec.Parser[struct{}] {
	var (
		comment = parsec.Right(parsec.Str(";"),
			parsec.Optional(parsec.Satisfy("comment", func(r rune) bool { return r != '\n' && r != '\r' }), ""))
		newline = parsec.Map(parsec.Newline, func(string) struct{} { return struct{}{} })
	)
	//
	return parsec.Right(parsec.OptionalWhitespace,
		parsec.Right(parsec.Optional(comment, ""), parsec.Choice(newline, parsec.EndOfInput)))
}
