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
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/consensys/go-asm16/pkg/asm/ast"
	"github.com/consensys/go-asm16/pkg/asm/parser"
	"github.com/consensys/go-asm16/pkg/isa"
	"github.com/consensys/go-asm16/pkg/util/source"
	"github.com/stretchr/testify/require"
)

func Test_Mov(t *testing.T) {
	check(t, "mov")
}

func Test_Countdown(t *testing.T) {
	check(t, "countdown")
}

func Test_Subroutine(t *testing.T) {
	check(t, "subroutine")
}

// ===================================================================
// Encoding
// ===================================================================

func TestAssemble_00(t *testing.T) {
	set, err := isa.NewSet([]string{"r1", "r2"}, []isa.Instruction{
		{Name: "MOV_LIT_REG", Mnemonic: "mov", Opcode: 0x10, Category: isa.LIT_REG, Size: 4},
	})
	require.NoError(t, err)
	//
	image, errs := AssembleFile(set, source.NewSourceFile("test.asm", []byte("mov $2a, r1")))
	require.Empty(t, errs)
	require.Equal(t, []byte{0x10, 0x00, 0x2a, 0x00}, image.Code)
	require.Equal(t, "test.asm", image.Filename)
}

func TestAssemble_01(t *testing.T) {
	// Forms are chosen from the operands when not already known.
	image, err := Assemble(isa.Default(), []ast.Node{
		ast.NewInstruction("mov", "", ast.NewLiteral(0x1234), ast.NewRegister("r1")),
		ast.NewInstruction("mov", "", ast.NewRegisterPointer("r1"), ast.NewRegister("r2")),
		ast.NewInstruction("lsf", "", ast.NewRegister("r2"), ast.NewLiteral(0x1ff)),
		ast.NewInstruction("hlt", ""),
	})
	require.NoError(t, err)
	require.Equal(t, []byte{0x10, 0x12, 0x34, 0x02, 0x1c, 0x02, 0x03, 0x26, 0x03, 0xff, 0xff}, image.Code)
}

func TestAssemble_02(t *testing.T) {
	// Expressions wrap around at 16 bits.
	image, err := Assemble(isa.Default(), []ast.Node{
		ast.NewLabel("zero"),
		ast.NewInstruction("psh", "PSH_LIT", ast.NewExpression('-', ast.NewLabelRef("zero"), ast.NewLiteral(1))),
		ast.NewInstruction("psh", "PSH_LIT", ast.NewExpression('*', ast.NewLiteral(0x100), ast.NewLiteral(0x100))),
	})
	require.NoError(t, err)
	require.Equal(t, []byte{0x17, 0xff, 0xff, 0x17, 0x00, 0x00}, image.Code)
}

func TestAssemble_03(t *testing.T) {
	var text = `+structure Point {
  x: $00,
  y: $02
}
start:
  mov [<Point> !origin.y], r1
  mov &[<Point> origin.x + $01], r2
  hlt
origin:
`
	//
	image, errs := AssembleFile(isa.Default(), source.NewSourceFile("test.asm", []byte(text)))
	require.Empty(t, errs)
	// Structures emit no code, hence origin is at 0x09.
	require.Equal(t, []byte{0x10, 0x00, 0x0b, 0x02, 0x13, 0x00, 0x0a, 0x03, 0xff}, image.Code)
	//
	offset, ok := image.Structures.Offset("Point", "y")
	require.True(t, ok)
	require.Equal(t, uint16(2), offset)
	require.Equal(t, []string{"x", "y"}, image.Structures.Members("Point"))
	require.True(t, image.Structures.Exported("Point"))
	require.Equal(t, []string{"Point"}, image.Structures.Names())
}

func TestAssemble_04(t *testing.T) {
	// Member addresses wrap around at 16 bits.
	image, err := Assemble(isa.Default(), []ast.Node{
		ast.NewStructure("S", false, ast.NewMember("far", 0xffff)),
		ast.NewLabel("here"),
		ast.NewInstruction("psh", "PSH_LIT", ast.NewExpression('+', ast.NewMemberRef("S", "here", "far"),
			ast.NewLiteral(2))),
	})
	require.NoError(t, err)
	require.Equal(t, []byte{0x17, 0x00, 0x01}, image.Code)
	require.False(t, image.Structures.Exported("S"))
	require.Equal(t, 1, image.Structures.Len())
}

func TestSplit_00(t *testing.T) {
	for v := range 0x10000 {
		high, low := split(uint16(v))
		require.Equal(t, uint16(v), uint16(high)<<8|uint16(low))
	}
}

// ===================================================================
// Labels
// ===================================================================

func TestLabels_00(t *testing.T) {
	var set = isa.Default()
	//
	program := parse(t, set, "countdown")
	labels, err := ResolveLabels(set, program.Nodes)
	require.NoError(t, err)
	require.Equal(t, []string{"start", "loop", "end"}, labels.Names())
	require.Equal(t, 3, labels.Len())
	// Each label addresses the bytes emitted by everything before it.
	for i, node := range program.Nodes {
		if label, ok := node.(*ast.Label); ok {
			code, err := Encode(set, program.Nodes[:i], labels, Structures{})
			require.NoError(t, err)
			//
			addr, ok := labels.Lookup(label.Name)
			require.True(t, ok)
			require.Equal(t, len(code), int(addr), label.Name)
		}
	}
}

func TestLabels_01(t *testing.T) {
	_, ok := Labels{}.Lookup("missing")
	require.False(t, ok)
	require.Equal(t, 0, Labels{}.Len())
	require.Empty(t, Labels{}.Names())
}

// ===================================================================
// Errors
// ===================================================================

func TestAssembleInvalid_00(t *testing.T) {
	checkInvalid(t, "mov $2a, r9\nhlt", 9, 10, "unknown register \"r9\"")
}

func TestAssembleInvalid_01(t *testing.T) {
	checkInvalid(t, "jne $00, &[!nowhere]\nhlt", 9, 20, "unknown label \"nowhere\"")
	checkInvalid(t, "mov [!a + !b], r1\na:", 4, 13, "unknown label \"b\"")
}

func TestAssembleInvalid_02(t *testing.T) {
	checkInvalid(t, "a:\na:\nhlt", 3, 5, "label \"a\" already declared")
}

func TestAssembleInvalid_03(t *testing.T) {
	var set = isa.Default()
	//
	checkError(t, set, UNKNOWN_MNEMONIC, ast.NewInstruction("nop", ""))
	checkError(t, set, UNKNOWN_MNEMONIC, ast.NewInstruction("mov", "HLT"))
	checkError(t, set, OPERAND_MISMATCH, ast.NewInstruction("inc", "", ast.NewLiteral(1)))
	checkError(t, set, OPERAND_MISMATCH,
		ast.NewInstruction("mov", "MOV_LIT_REG", ast.NewRegister("r1"), ast.NewRegister("r2")))
	checkError(t, set, OPERAND_MISMATCH, ast.NewInstruction("mov", "MOV_LIT_REG", ast.NewLiteral(1)))
	checkError(t, set, OPERAND_MISMATCH, ast.NewInstruction("inc", "INC_REG", ast.NewRegister("r9")))
	checkError(t, set, OPERAND_MISMATCH, ast.NewInstruction("inc", "INC_REG", ast.NewRegisterPointer("r1")))
	checkError(t, set, UNRESOLVED_LABEL, ast.NewInstruction("psh", "PSH_LIT", ast.NewLabelRef("x")))
}

func TestAssembleInvalid_04(t *testing.T) {
	var (
		set   = isa.Default()
		nodes []ast.Node
	)
	// Fill memory exactly
	for range MAX_PROGRAM_SIZE / 4 {
		nodes = append(nodes, ast.NewInstruction("mov", "MOV_LIT_REG", ast.NewLiteral(0), ast.NewRegister("r1")))
	}
	//
	image, err := Assemble(set, nodes)
	require.NoError(t, err)
	require.Len(t, image.Code, MAX_PROGRAM_SIZE)
	//
	checkError(t, set, ADDRESS_OVERFLOW, append(nodes, ast.NewInstruction("hlt", "HLT"))...)
	checkError(t, set, ADDRESS_OVERFLOW, append(nodes, ast.NewLabel("end"))...)
}

func TestAssembleInvalid_05(t *testing.T) {
	checkInvalid(t, "structure S { a: $01 }\nstructure S { b: $02 }", 23, 45, "structure \"S\" already declared")
	checkInvalid(t, "structure S { a: $01, a: $02 }", 22, 28, "member \"a\" already declared in \"S\"")
}

func TestAssembleInvalid_06(t *testing.T) {
	checkInvalid(t, "x:\npsh [<T> !x.a]", 7, 17, "unknown structure \"T\"")
	checkInvalid(t, "structure S { a: $01 }\nx:\npsh [<S> !x.b]", 30, 40, "structure \"S\" has no member \"b\"")
	checkInvalid(t, "structure S { a: $01 }\npsh [<S> !y.a]", 27, 37, "unknown label \"y\"")
	//
	var set = isa.Default()
	//
	checkError(t, set, UNRESOLVED_MEMBER, ast.NewLabel("x"),
		ast.NewInstruction("psh", "PSH_LIT", ast.NewMemberRef("S", "x", "a")))
	checkError(t, set, DUPLICATE_STRUCTURE, ast.NewStructure("S", false), ast.NewStructure("S", true))
}

// ===================================================================
// Batch
// ===================================================================

func TestAssembleFiles_00(t *testing.T) {
	var (
		files = readFiles(t, "mov", "countdown", "subroutine", "mov")
		bad   = source.NewSourceFile("bad.asm", []byte("hlt\nmov $2a, r9\n"))
	)
	// Insert an invalid file in the middle.
	files = append(files[:2], append([]source.File{*bad}, files[2:]...)...)
	//
	images, errs, err := AssembleFiles(context.Background(), isa.Default(), files, 2)
	require.NoError(t, err)
	require.Len(t, images, 5)
	require.Len(t, errs, 1)
	require.Equal(t, "bad.asm", errs[0].SourceFile().Filename())
	require.Nil(t, images[2].Code)
	//
	for i, name := range []string{"mov", "countdown", "", "subroutine", "mov"} {
		if name != "" {
			require.Equal(t, readHex(t, name), images[i].Code, name)
		}
	}
}

func TestAssembleFiles_01(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	//
	_, _, err := AssembleFiles(ctx, isa.Default(), readFiles(t, "mov", "countdown"), 0)
	require.ErrorIs(t, err, context.Canceled)
}

// ===================================================================
// Test Helpers
// ===================================================================

// Determines the (relative) location of the test directory.  That is where
// the assembly files and their expected machine code are found.
const TestDir = "../../testdata/asm16"

// Check that a given assembly file assembles to the expected machine code.
func check(t *testing.T, test string) {
	// Enable testing each file in parallel
	t.Parallel()
	//
	files := readFiles(t, test)
	image, errs := AssembleFile(isa.Default(), &files[0])
	//
	if len(errs) > 0 {
		t.Fatalf("Error assembling %s: %v\n", test, errs)
	}
	//
	require.Equal(t, readHex(t, test), image.Code)
}

func checkInvalid(t *testing.T, text string, start int, end int, msg string) {
	t.Helper()
	//
	image, errs := AssembleFile(isa.Default(), source.NewSourceFile("test.asm", []byte(text)))
	require.Nil(t, image.Code)
	require.Len(t, errs, 1)
	require.Equal(t, msg, errs[0].Message())
	//
	span := errs[0].Span()
	require.Equal(t, start, span.Start())
	require.Equal(t, end, span.End())
}

func checkError(t *testing.T, set *isa.Set, kind ErrorKind, nodes ...ast.Node) {
	t.Helper()
	//
	var e *Error
	//
	image, err := Assemble(set, nodes)
	require.Nil(t, image.Code)
	require.ErrorAs(t, err, &e)
	require.Equal(t, kind, e.Kind, e.Message)
}

func parse(t *testing.T, set *isa.Set, test string) parser.Program {
	files := readFiles(t, test)
	program, errs := parser.Parse(&files[0], set)
	require.Empty(t, errs)
	//
	return program
}

func readFiles(t *testing.T, tests ...string) []source.File {
	var filenames []string
	//
	for _, test := range tests {
		filenames = append(filenames, fmt.Sprintf("%s/%s.asm", TestDir, test))
	}
	//
	files, err := source.ReadFiles(filenames...)
	require.NoError(t, err)
	//
	return files
}

// Read the expected machine code for a given test, written as whitespace
// separated hex bytes.
func readHex(t *testing.T, test string) []byte {
	bytes, err := os.ReadFile(fmt.Sprintf("%s/%s.hex", TestDir, test))
	require.NoError(t, err)
	//
	code, err := hex.DecodeString(strings.Join(strings.Fields(string(bytes)), ""))
	require.NoError(t, err)
	//
	return code
}
