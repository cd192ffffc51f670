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

	"github.com/consensys/go-asm16/pkg/asm/parser"
	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file1.asm file2.asm ...",
	Short: "parse source files and print the resulting statements.",
	Long: `Parse one or more source files and print each statement in normalised
form, prefixed by its line number and along with the instruction form selected
for it.  This is useful for
checking how operands have been interpreted.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runParseCmd,
}

func runParseCmd(cmd *cobra.Command, args []string) {
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	var (
		set     = loadInstructionSet(cmd)
		dump    = GetFlag(cmd, "dump")
		grammar = parser.NewGrammar(set)
		failed  = false
	)
	//
	for _, srcfile := range readSourceFiles(args) {
		program, errors := parser.NewParser(&srcfile, grammar).Parse()
		//
		for _, err := range errors {
			printSyntaxError(&err)
			//
			failed = true
		}
		//
		if len(errors) != 0 {
			continue
		} else if dump {
			fmt.Print(spew.Sdump(program.Nodes))
		} else {
			writeProgram(program)
		}
	}
	//
	if failed {
		os.Exit(4)
	}
}

func writeProgram(program parser.Program) {
	for _, node := range program.Nodes {
		fmt.Println(formatLine(program.SourceMap, node))
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().Bool("dump", false, "dump the syntax tree in full")
}
