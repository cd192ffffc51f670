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

	"github.com/consensys/go-asm16/pkg/isa"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var isaCmd = &cobra.Command{
	Use:   "isa [flags]",
	Short: "print the instruction set.",
	Long: `Print the instruction set in use (either the default, or that given by
--isa).  With --json, the instruction set is written in the same format
accepted by --isa, which provides a starting point for custom instruction sets.`,
	Args: cobra.NoArgs,
	Run:  runIsaCmd,
}

func runIsaCmd(cmd *cobra.Command, args []string) {
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	set := loadInstructionSet(cmd)
	//
	if GetFlag(cmd, "json") {
		bytes, err := isa.Write(set)
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		fmt.Println(string(bytes))
		//
		return
	}
	//
	writeInstructionSet(set)
}

func writeInstructionSet(set *isa.Set) {
	fmt.Println("registers:")
	//
	for i, r := range set.Registers() {
		fmt.Printf("\t%02x\t%s\n", i, r)
	}
	//
	fmt.Println("instructions:")
	//
	for _, insn := range set.Instructions() {
		fmt.Printf("\t%02x\t%-6s\t%-16s\t%-10s\t%d\n", insn.Opcode, insn.Mnemonic, insn.Name, insn.Category.String(),
			insn.Size)
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(isaCmd)
	isaCmd.Flags().Bool("json", false, "write the instruction set as JSON")
}
