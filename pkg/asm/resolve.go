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
	"github.com/consensys/go-asm16/pkg/asm/ast"
	"github.com/consensys/go-asm16/pkg/isa"
	log "github.com/sirupsen/logrus"
)

// MAX_PROGRAM_SIZE is the number of bytes addressable by the machine.
const MAX_PROGRAM_SIZE = 0x10000

// ResolveLabels is the first pass of the assembler.  This walks the nodes in
// program order assigning each label the address of the instruction which
// follows it, where the address of an instruction is the total size of all
// instructions preceding it.
func ResolveLabels(set *isa.Set, nodes []ast.Node) (Labels, error) {
	var (
		addresses = make(map[string]uint16)
		counter   uint
	)
	//
	for _, node := range nodes {
		switch n := node.(type) {
		case *ast.Label:
			if _, ok := addresses[n.Name]; ok {
				return Labels{}, newError(DUPLICATE_LABEL, n, "label \"%s\" already declared", n.Name)
			} else if counter >= MAX_PROGRAM_SIZE {
				return Labels{}, newError(ADDRESS_OVERFLOW, n, "label \"%s\" beyond end of memory", n.Name)
			}
			//
			addresses[n.Name] = uint16(counter)
		case *ast.Instruction:
			form, err := selectForm(set, n)
			//
			if err != nil {
				return Labels{}, err
			}
			//
			counter += form.Size
			//
			if counter > MAX_PROGRAM_SIZE {
				return Labels{}, newError(ADDRESS_OVERFLOW, n, "program exceeds %d bytes", MAX_PROGRAM_SIZE)
			}
		}
	}
	//
	log.Debugf("resolved %d label(s) over %d byte(s)", len(addresses), counter)
	//
	return Labels{addresses}, nil
}
