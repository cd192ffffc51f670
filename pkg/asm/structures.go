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
	"maps"
	"slices"

	"github.com/consensys/go-asm16/pkg/asm/ast"
	log "github.com/sirupsen/logrus"
)

// Structures is the table of structure layouts produced by the first pass of
// the assembler.  Like labels, structures are immutable once constructed.
type Structures struct {
	layouts map[string]layout
}

type layout struct {
	export bool
	// Member names in declaration order.
	members []string
	offsets map[string]uint16
}

// ResolveStructures collects the structure declarations of a program.  Since
// structures emit no code, this is independent of label resolution.
func ResolveStructures(nodes []ast.Node) (Structures, error) {
	layouts := make(map[string]layout)
	//
	for _, node := range nodes {
		s, ok := node.(*ast.Structure)
		//
		if !ok {
			continue
		} else if _, ok := layouts[s.Name]; ok {
			return Structures{}, newError(DUPLICATE_STRUCTURE, s, "structure \"%s\" already declared", s.Name)
		}
		//
		l := layout{s.Export, nil, make(map[string]uint16)}
		//
		for _, m := range s.Members {
			if _, ok := l.offsets[m.Name]; ok {
				return Structures{}, newError(DUPLICATE_STRUCTURE, m, "member \"%s\" already declared in \"%s\"",
					m.Name, s.Name)
			}
			//
			l.members = append(l.members, m.Name)
			l.offsets[m.Name] = m.Offset
		}
		//
		layouts[s.Name] = l
	}
	//
	log.Debugf("resolved %d structure(s)", len(layouts))
	//
	return Structures{layouts}, nil
}

// Has checks whether a given structure is declared.
func (p Structures) Has(name string) bool {
	_, ok := p.layouts[name]
	return ok
}

// Offset returns the offset of a given member within a given structure.
func (p Structures) Offset(structure string, member string) (uint16, bool) {
	offset, ok := p.layouts[structure].offsets[member]
	return offset, ok
}

// Members returns the member names of a given structure in declaration order.
func (p Structures) Members(structure string) []string {
	return slices.Clone(p.layouts[structure].members)
}

// Exported checks whether a given structure is marked for export.
func (p Structures) Exported(structure string) bool {
	return p.layouts[structure].export
}

// Names returns the declared structures in alphabetical order.
func (p Structures) Names() []string {
	return slices.Sorted(maps.Keys(p.layouts))
}

// Len returns the number of declared structures.
func (p Structures) Len() int {
	return len(p.layouts)
}
