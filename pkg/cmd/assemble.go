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
	"context"
	"fmt"
	"os"

	"github.com/consensys/go-asm16/pkg/asm"
	"github.com/consensys/go-asm16/pkg/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble [flags] file1.asm file2.asm ...",
	Short: "assemble source files into machine code.",
	Long: `Assemble one or more source files into flat machine code images.  Each
file is assembled independently, and its image written alongside it (e.g.
prog.asm becomes prog.bin).`,
	Args: cobra.MinimumNArgs(1),
	Run:  runAssembleCmd,
}

func runAssembleCmd(cmd *cobra.Command, args []string) {
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	var (
		stats  = util.NewPerfStats()
		set    = loadInstructionSet(cmd)
		output = GetString(cmd, "output")
		asHex  = GetFlag(cmd, "hex")
		labels = GetFlag(cmd, "labels")
		jobs   = GetUint(cmd, "jobs")
	)
	//
	if output != "" && len(args) > 1 {
		fmt.Println("--output requires exactly one source file")
		os.Exit(2)
	}
	// Assemble source files, or print errors
	images, errors, err := asm.AssembleFiles(context.Background(), set, readSourceFiles(args), int(jobs))
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	} else if len(errors) != 0 {
		// Report errors
		for _, err := range errors {
			printSyntaxError(&err)
		}
		// Fail
		os.Exit(4)
	}
	//
	for _, image := range images {
		writeImage(image, outputFilename(image.Filename, output, asHex), asHex)
		//
		if labels {
			writeLabels(image)
		}
	}
	//
	stats.Log("Assembling")
}

func writeImage(image asm.Image, filename string, asHex bool) {
	var bytes = image.Code
	//
	if asHex {
		bytes = []byte(formatHex(image.Code))
	}
	//
	if filename == "-" {
		_, _ = os.Stdout.Write(bytes)
		return
	}
	//
	log.Debugf("writing %d byte(s) to %s", len(image.Code), filename)
	//
	if err := os.WriteFile(filename, bytes, 0644); err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
}

func writeLabels(image asm.Image) {
	for _, name := range image.Labels.Names() {
		addr, _ := image.Labels.Lookup(name)
		fmt.Printf("%s\t%04x\t%s\n", image.Filename, addr, name)
	}
	// Exported structures are listed by the offsets of their members.
	for _, name := range image.Structures.Names() {
		if !image.Structures.Exported(name) {
			continue
		}
		//
		for _, member := range image.Structures.Members(name) {
			offset, _ := image.Structures.Offset(name, member)
			fmt.Printf("%s\t%04x\t<%s>.%s\n", image.Filename, offset, name, member)
		}
	}
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(assembleCmd)
	assembleCmd.Flags().StringP("output", "o", "", "output file (\"-\" for stdout)")
	assembleCmd.Flags().Bool("hex", false, "write machine code as hex text")
	assembleCmd.Flags().Bool("labels", false, "print the address of every label (and the offsets of exported structures)")
	assembleCmd.Flags().UintP("jobs", "j", 0, "number of files to assemble in parallel (0 for one per CPU)")
}
