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
	"github.com/consensys/go-asm16/pkg/asm/ast"
	"github.com/consensys/go-asm16/pkg/isa"
	"github.com/consensys/go-asm16/pkg/parsec"
	"github.com/consensys/go-asm16/pkg/util/source"
)

// Program is the result of parsing an assembly source file.
type Program struct {
	// Nodes in program order.
	Nodes []ast.Node
	// Maps nodes (and operands) back to the text they were parsed from.
	SourceMap *source.Map[any]
}

// Parse accepts a given source file representing an assembly language program,
// and parses it into a sequence of nodes for the given instruction set.  If
// the file cannot be parsed, a syntax error is returned identifying the point
// where parsing got furthest.
func Parse(srcfile *source.File, set *isa.Set) (Program, []source.SyntaxError) {
	return NewParser(srcfile, NewGrammar(set)).Parse()
}

// ============================================================================
// Parser
// ============================================================================

// Parser is a parser for the assembly language of a given instruction set.
type Parser struct {
	srcfile *source.File
	grammar *Grammar
	// Source mapping
	srcmap *source.Map[any]
}

// NewParser constructs a new parser for a given source file.  A grammar can be
// shared between any number of parsers.
func NewParser(srcfile *source.File, grammar *Grammar) *Parser {
	// Construct (initially empty) source mapping
	srcmap := source.NewSourceMap[any](srcfile)
	//
	return &Parser{srcfile, grammar, srcmap}
}

// Parse the given source file into a sequence of zero or more nodes, or a
// syntax error.
func (p *Parser) Parse() (Program, []source.SyntaxError) {
	var nodes []ast.Node
	//
	r := p.grammar.Program().RunAt(parsec.NewCursor(p.srcfile.Contents()))
	//
	if !r.Ok() {
		return Program{}, []source.SyntaxError{*p.syntaxError(r.Err())}
	}
	//
	for _, stmt := range r.Value() {
		if stmt.Node == nil {
			// Blank line
			continue
		}
		// Record spans for error reporting.
		p.srcmap.Put(stmt.Node, source.NewSpan(stmt.Start, stmt.End))
		//
		for _, o := range stmt.Operands {
			p.srcmap.Put(o.Value, source.NewSpan(o.Start, o.End))
		}
		//
		for _, m := range stmt.Members {
			p.srcmap.Put(m.Value, source.NewSpan(m.Start, m.End))
		}
		//
		nodes = append(nodes, stmt.Node)
	}
	//
	return Program{nodes, p.srcmap}, nil
}

// Report the failure which progressed furthest through the input.
func (p *Parser) syntaxError(err *parsec.Error) *source.SyntaxError {
	deepest := err.Deepest()
	//
	return p.srcfile.SyntaxErrorAt(deepest.Index, deepest.Message)
}
