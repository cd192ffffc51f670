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
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/consensys/go-asm16/pkg/asm/ast"
	"github.com/consensys/go-asm16/pkg/isa"
	"github.com/consensys/go-asm16/pkg/util/source"
	"github.com/consensys/go-asm16/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Load the instruction set given by the --isa flag, or the default instruction
// set if none is given.
func loadInstructionSet(cmd *cobra.Command) *isa.Set {
	filename := GetString(cmd, "isa")
	//
	if filename == "" {
		return isa.Default()
	}
	//
	log.Debug(fmt.Sprintf("reading instruction set %s", filename))
	//
	set, err := isa.ReadFile(filename)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return set
}

// Read the given source files, or exit if any cannot be read.
func readSourceFiles(filenames []string) []source.File {
	for _, n := range filenames {
		log.Debug(fmt.Sprintf("including source file %s", n))
	}
	//
	srcfiles, err := source.ReadFiles(filenames...)
	// Sanity check for errors
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	return srcfiles
}

// Determine where the image for a given source file is written.  An explicit
// output overrides the default, which is the source file with its extension
// replaced.
func outputFilename(srcfile string, output string, asHex bool) string {
	if output != "" {
		return output
	}
	//
	ext := ".bin"
	//
	if asHex {
		ext = ".hex"
	}
	//
	return strings.TrimSuffix(srcfile, filepath.Ext(srcfile)) + ext
}

// Format machine code as lines of (at most) eight space-separated hex bytes.
func formatHex(code []byte) string {
	var builder strings.Builder
	//
	for i, b := range code {
		if i != 0 && i%8 == 0 {
			builder.WriteString("\n")
		} else if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(fmt.Sprintf("%02x", b))
	}
	//
	if len(code) > 0 {
		builder.WriteString("\n")
	}
	//
	return builder.String()
}

// Format a node, annotating instructions with the form selected.
func formatNode(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Label:
		return n.String()
	case *ast.Instruction:
		return fmt.Sprintf("\t%-24s; %s", n.String(), n.Form)
	default:
		return node.String()
	}
}

// Format a node prefixed with the number of the line on which it begins.
func formatLine(srcmap *source.Map[any], node ast.Node) string {
	var (
		span = srcmap.Get(node)
		line = srcmap.Source().FindFirstEnclosingLine(span)
	)
	//
	return fmt.Sprintf("%4d %s", line.Number(), formatNode(node))
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	var (
		palette    = termio.NewPalette(os.Stdout)
		span       = err.Span()
		line       = err.FirstEnclosingLine()
		lineOffset = span.Start() - line.Start()
		// Calculate length (ensures don't overflow line)
		length = max(1, min(line.Length()-lineOffset, span.Length()))
	)
	// Print error + line number
	location := fmt.Sprintf("%s:%d:%d-%d", err.SourceFile().Filename(), line.Number(), 1+lineOffset,
		1+lineOffset+length)
	fmt.Printf("%s %s\n", palette.Location.Apply(location), palette.Error.Apply(err.Message()))
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(line.String())
	// Print indent, preserving tabs so the highlight lines up.
	fmt.Print(indent(line.String(), lineOffset))
	// Print highlight
	fmt.Println(palette.Highlight.Apply(strings.Repeat("^", length)))
}

func indent(text string, n int) string {
	var builder strings.Builder
	//
	for i, r := range []rune(text) {
		if i >= n {
			break
		} else if r == '\t' {
			builder.WriteRune('\t')
		} else {
			builder.WriteRune(' ')
		}
	}
	//
	return builder.String()
}
