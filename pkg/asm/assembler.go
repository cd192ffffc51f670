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
	"github.com/consensys/go-asm16/pkg/asm/parser"
	"github.com/consensys/go-asm16/pkg/isa"
	"github.com/consensys/go-asm16/pkg/util/source"
)

// Image is the machine code assembled from a single source file, along with
// the addresses of its labels and the layout of its structures.
type Image struct {
	Filename   string
	Code       []byte
	Labels     Labels
	Structures Structures
}

// Assemble runs both passes of the assembler over a given sequence of nodes,
// producing either the complete machine code or the first fatal error.  No
// partial output is returned on failure.  The filename of the resulting image
// is left empty.
func Assemble(set *isa.Set, nodes []ast.Node) (Image, error) {
	labels, err := ResolveLabels(set, nodes)
	//
	if err != nil {
		return Image{}, err
	}
	//
	structures, err := ResolveStructures(nodes)
	//
	if err != nil {
		return Image{}, err
	}
	//
	code, err := Encode(set, nodes, labels, structures)
	//
	if err != nil {
		return Image{}, err
	}
	//
	return Image{"", code, labels, structures}, nil
}

// AssembleFile parses and assembles a given source file.  Any errors arising
// are mapped back to the region of the source file responsible.
func AssembleFile(set *isa.Set, srcfile *source.File) (Image, []source.SyntaxError) {
	return assemble(set, parser.NewGrammar(set), srcfile)
}

func assemble(set *isa.Set, grammar *parser.Grammar, srcfile *source.File) (Image, []source.SyntaxError) {
	program, errs := parser.NewParser(srcfile, grammar).Parse()
	//
	if len(errs) > 0 {
		return Image{}, errs
	}
	//
	image, err := Assemble(set, program.Nodes)
	// Errors not attributable to any part of the file are reported at its start.
	if e, ok := err.(*Error); ok && program.SourceMap.Has(e.Node) {
		return Image{}, program.SourceMap.SyntaxErrors(e.Node, e.Message)
	} else if err != nil {
		return Image{}, []source.SyntaxError{*srcfile.SyntaxError(source.NewSpan(0, 0), err.Error())}
	}
	//
	image.Filename = srcfile.Filename()
	//
	return image, nil
}
