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
	"testing"

	"github.com/consensys/go-asm16/pkg/asm/ast"
	"github.com/consensys/go-asm16/pkg/isa"
	"github.com/consensys/go-asm16/pkg/util/source"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Instructions
// ============================================================================

func TestParse_00(t *testing.T) {
	checkProgram(t, "mov $2a, r1",
		ast.NewInstruction("mov", "MOV_LIT_REG", ast.NewLiteral(0x2a), ast.NewRegister("r1")))
}

func TestParse_01(t *testing.T) {
	checkProgram(t, "mov r1, r2\nmov &0050, acc\nmov acc, &0050\nmov $10, &00ff",
		ast.NewInstruction("mov", "MOV_REG_REG", ast.NewRegister("r1"), ast.NewRegister("r2")),
		ast.NewInstruction("mov", "MOV_MEM_REG", ast.NewAddress(0x50), ast.NewRegister("acc")),
		ast.NewInstruction("mov", "MOV_REG_MEM", ast.NewRegister("acc"), ast.NewAddress(0x50)),
		ast.NewInstruction("mov", "MOV_LIT_MEM", ast.NewLiteral(0x10), ast.NewAddress(0xff)))
}

func TestParse_02(t *testing.T) {
	// Register pointers take priority over addresses which look like registers.
	checkProgram(t, "mov &acc, r1\nmov $04, &r1, r2\nmov $10, &acc",
		ast.NewInstruction("mov", "MOV_REG_PTR_REG", ast.NewRegisterPointer("acc"), ast.NewRegister("r1")),
		ast.NewInstruction("mov", "MOV_LIT_OFF_REG", ast.NewLiteral(0x4), ast.NewRegisterPointer("r1"),
			ast.NewRegister("r2")),
		ast.NewInstruction("mov", "MOV_LIT_MEM", ast.NewLiteral(0x10), ast.NewAddress(0xacc)))
}

func TestParse_03(t *testing.T) {
	checkProgram(t, "hlt\nret\ninc r1\npsh $ff\npsh sp",
		ast.NewInstruction("hlt", "HLT"),
		ast.NewInstruction("ret", "RET"),
		ast.NewInstruction("inc", "INC_REG", ast.NewRegister("r1")),
		ast.NewInstruction("psh", "PSH_LIT", ast.NewLiteral(0xff)),
		ast.NewInstruction("psh", "PSH_REG", ast.NewRegister("sp")))
}

func TestParse_04(t *testing.T) {
	// Upper-case mnemonics and registers
	checkProgram(t, "MOV $2A, R1\nHLT",
		ast.NewInstruction("mov", "MOV_LIT_REG", ast.NewLiteral(0x2a), ast.NewRegister("r1")),
		ast.NewInstruction("hlt", "HLT"))
}

// ============================================================================
// Labels, comments and whitespace
// ============================================================================

func TestParse_05(t *testing.T) {
	var text = `start:
  mov $0a, r1 ; counter
loop:
  dec r1
  jne $00, &[!loop]
  hlt
`
	//
	checkProgram(t, text,
		ast.NewLabel("start"),
		ast.NewInstruction("mov", "MOV_LIT_REG", ast.NewLiteral(0x0a), ast.NewRegister("r1")),
		ast.NewLabel("loop"),
		ast.NewInstruction("dec", "DEC_REG", ast.NewRegister("r1")),
		ast.NewInstruction("jne", "JNE_LIT", ast.NewLiteral(0), ast.NewLabelRef("loop")),
		ast.NewInstruction("hlt", "HLT"))
}

func TestParse_06(t *testing.T) {
	checkProgram(t, "; header\n\n\t \n  hlt ; stop\r\n;\n",
		ast.NewInstruction("hlt", "HLT"))
}

func TestParse_07(t *testing.T) {
	checkProgram(t, "")
	checkProgram(t, "\n\n")
	checkProgram(t, "end_2:", ast.NewLabel("end_2"))
}

func TestParse_08(t *testing.T) {
	checkProgram(t, "mov\t$01 ,  r2   ",
		ast.NewInstruction("mov", "MOV_LIT_REG", ast.NewLiteral(0x1), ast.NewRegister("r2")))
}

// ============================================================================
// Expressions
// ============================================================================

func TestParse_09(t *testing.T) {
	var (
		two   = ast.NewLiteral(2)
		three = ast.NewLiteral(3)
		x     = ast.NewLabelRef("x")
		expr  = ast.NewExpression('+', two, ast.NewExpression('*', x, three))
	)
	//
	checkProgram(t, "mov [$02 + !x * $03], r1",
		ast.NewInstruction("mov", "MOV_LIT_REG", expr, ast.NewRegister("r1")))
}

func TestParse_10(t *testing.T) {
	var (
		sum  = ast.NewExpression('+', ast.NewLiteral(1), ast.NewLiteral(2))
		expr = ast.NewExpression('-', ast.NewExpression('*', sum, ast.NewLiteral(3)), ast.NewLiteral(4))
	)
	//
	checkProgram(t, "mov [ ($01 + $02) * $03 - $04 ], r1",
		ast.NewInstruction("mov", "MOV_LIT_REG", expr, ast.NewRegister("r1")))
}

func TestParse_11(t *testing.T) {
	// Constant expressions used as addresses become addresses.
	checkProgram(t, "mov r1, &[$0050]\nmov r1, &[!out + [$01]]",
		ast.NewInstruction("mov", "MOV_REG_MEM", ast.NewRegister("r1"), ast.NewAddress(0x50)),
		ast.NewInstruction("mov", "MOV_REG_MEM", ast.NewRegister("r1"),
			ast.NewExpression('+', ast.NewLabelRef("out"), ast.NewLiteral(1))))
}

// ============================================================================
// Structures
// ============================================================================

func TestParse_13(t *testing.T) {
	var text = "+structure Point { x: $00, y: $02 }\nSTRUCTURE Empty {}\nstructure Multi {\n  a: $10,\n  b: $20\n}\nhlt"
	//
	checkProgram(t, text,
		ast.NewStructure("Point", true, ast.NewMember("x", 0), ast.NewMember("y", 2)),
		ast.NewStructure("Empty", false),
		ast.NewStructure("Multi", false, ast.NewMember("a", 0x10), ast.NewMember("b", 0x20)),
		ast.NewInstruction("hlt", "HLT"))
}

func TestParse_14(t *testing.T) {
	checkProgram(t, "mov [<Point> !origin.y], r1\npsh [<P>p.x * $02]",
		ast.NewInstruction("mov", "MOV_LIT_REG", ast.NewMemberRef("Point", "origin", "y"), ast.NewRegister("r1")),
		ast.NewInstruction("psh", "PSH_LIT", ast.NewExpression('*', ast.NewMemberRef("P", "p", "x"),
			ast.NewLiteral(2))))
}

func TestParse_15(t *testing.T) {
	var text = "structure S {\n  a: $01, bb: $02 }"
	//
	program, errs := Parse(source.NewSourceFile("test.asm", []byte(text)), isa.Default())
	require.Empty(t, errs)
	require.Len(t, program.Nodes, 1)
	//
	structure := program.Nodes[0].(*ast.Structure)
	checkSpan(t, program.SourceMap, structure, 0, 33)
	checkSpan(t, program.SourceMap, structure.Members[0], 16, 22)
	checkSpan(t, program.SourceMap, structure.Members[1], 24, 31)
}

// ============================================================================
// Source mapping
// ============================================================================

func TestParse_12(t *testing.T) {
	var text = "loop:\n  mov $2a, r1 ; x\n"
	//
	program, errs := Parse(source.NewSourceFile("test.asm", []byte(text)), isa.Default())
	require.Empty(t, errs)
	require.Len(t, program.Nodes, 2)
	//
	checkSpan(t, program.SourceMap, program.Nodes[0], 0, 5)
	checkSpan(t, program.SourceMap, program.Nodes[1], 8, 19)
	//
	insn := program.Nodes[1].(*ast.Instruction)
	checkSpan(t, program.SourceMap, insn.Operands[0], 12, 15)
	checkSpan(t, program.SourceMap, insn.Operands[1], 17, 19)
}

// ============================================================================
// Errors
// ============================================================================

func TestParseInvalid_00(t *testing.T) {
	checkSyntaxError(t, "mov $2a, r9", 9, "unknown register \"r9\"")
}

func TestParseInvalid_01(t *testing.T) {
	checkSyntaxError(t, "hlt\nfoo r1\n", 4, "unknown instruction \"foo\"")
	checkSyntaxError(t, "Mov $2a, r1", 0, "unknown instruction \"Mov\"")
}

func TestParseInvalid_02(t *testing.T) {
	checkSyntaxError(t, "mov $10000, r1", 5, "hex literal \"10000\" does not fit in 16 bits")
}

func TestParseInvalid_03(t *testing.T) {
	checkSyntaxError(t, "hlt r1", 3, "expected end of line, found \" r1\"")
	checkSyntaxError(t, "loop: hlt", 5, "expected end of line, found \" hlt\"")
}

func TestParseInvalid_04(t *testing.T) {
	checkSyntaxError(t, "mov [$01 + ], r1", 9, "expected \"]\", found \"+ ], r1\"")
	checkSyntaxError(t, "mov $01, ", 9, "expected \"&\", found end of input")
}

func TestParseInvalid_05(t *testing.T) {
	// Restricted register table
	set, err := isa.NewSet([]string{"r1", "r2"}, []isa.Instruction{
		{Name: "MOV_LIT_REG", Mnemonic: "mov", Opcode: 0x10, Category: isa.LIT_REG, Size: 4},
	})
	require.NoError(t, err)
	//
	_, errs := Parse(source.NewSourceFile("test.asm", []byte("mov $2a, acc")), set)
	require.Len(t, errs, 1)
	require.Equal(t, "unknown register \"acc\"", errs[0].Message())
}

func TestParseInvalid_06(t *testing.T) {
	checkSyntaxError(t, "structure S { a: $10000 }", 18, "hex literal \"10000\" does not fit in 16 bits")
	checkSyntaxError(t, "structure S { a: $01", 20, "expected \"}\", found end of input")
	checkSyntaxError(t, "structure S", 11, "expected \"{\", found end of input")
	checkSyntaxError(t, "structure S { a: $01 } hlt", 22, "expected end of line, found \" hlt\"")
}

// ============================================================================
// Helpers
// ============================================================================

func checkProgram(t *testing.T, text string, expected ...ast.Node) {
	t.Helper()
	//
	program, errs := Parse(source.NewSourceFile("test.asm", []byte(text)), isa.Default())
	require.Empty(t, errs)
	require.Equal(t, len(expected), len(program.Nodes))
	//
	for i := range expected {
		require.Equal(t, expected[i], program.Nodes[i], "node %d", i)
	}
}

func checkSyntaxError(t *testing.T, text string, index int, msg string) {
	t.Helper()
	//
	_, errs := Parse(source.NewSourceFile("test.asm", []byte(text)), isa.Default())
	require.Len(t, errs, 1)
	require.Equal(t, msg, errs[0].Message())
	//
	span := errs[0].Span()
	require.Equal(t, index, span.Start())
}

func checkSpan(t *testing.T, srcmap *source.Map[any], item any, start int, end int) {
	t.Helper()
	//
	span := srcmap.Get(item)
	require.Equal(t, start, span.Start())
	require.Equal(t, end, span.End())
}
