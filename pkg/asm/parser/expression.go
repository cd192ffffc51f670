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
	"github.com/consensys/go-asm16/pkg/parsec"
)

// The right-hand side of a binary operation, awaiting its left-hand side.
type binaryTail struct {
	operator rune
	rhs      ast.Operand
}

// bracketed := '[' expr ']'
//
// expr   := term { ('+' | '-') term }
// term   := factor { '*' factor }
// factor := '$' hex | '!' identifier | member | '(' expr ')' | '[' expr ']'
// member := '<' identifier '>' ['!'] identifier '.' identifier
//
// Operators are left associative, and multiplication binds tighter than
// addition and subtraction.  A bracket holding a single factor produces that
// factor directly (e.g. "[!loop]" is just a label reference).
func (g *Grammar) bracketedExpression() parsec.Parser[ast.Operand] {
	var expr parsec.Parser[ast.Operand]
	//
	nested := parsec.Lazy(func() parsec.Parser[ast.Operand] { return expr })
	group := func(open string, close string) parsec.Parser[ast.Operand] {
		return parsec.Between[string, string, ast.Operand](token(parsec.Str(open)), parsec.Str(close))(nested)
	}
	//
	factor := token(parsec.Choice(g.hexLiteral(), g.labelRef(), g.memberRef(), group("(", ")"),
		group("[", "]")))
	term := binary(factor, "*")
	expr = binary(term, "+", "-")
	//
	return group("[", "]")
}

// Matches a reference to a member of a structure laid out at a label (e.g.
// "<Point> !origin.y").
func (g *Grammar) memberRef() parsec.Parser[ast.Operand] {
	var (
		structure = parsec.Between[string, string, string](token(parsec.Str("<")), token(parsec.Str(">")))(
			token(g.identifier))
		label  = parsec.Right(parsec.Optional(parsec.Str("!"), ""), g.identifier)
		member = parsec.Right(parsec.Str("."), g.identifier)
	)
	//
	return parsec.Chain(structure, func(name string) parsec.Parser[ast.Operand] {
		return parsec.Map(parsec.Sequence(label, member), func(names []string) ast.Operand {
			return ast.NewMemberRef(name, names[0], names[1])
		})
	})
}

// Construct a parser for a left-associative chain of binary operations over a
// given operand parser.
func binary(operand parsec.Parser[ast.Operand], operators ...string) parsec.Parser[ast.Operand] {
	var ops []parsec.Parser[string]
	//
	for _, o := range operators {
		ops = append(ops, token(parsec.Str(o)))
	}
	//
	tail := parsec.Chain(parsec.Choice(ops...), func(op string) parsec.Parser[binaryTail] {
		return parsec.Map(operand, func(rhs ast.Operand) binaryTail {
			return binaryTail{[]rune(op)[0], rhs}
		})
	})
	//
	return parsec.Chain(operand, func(lhs ast.Operand) parsec.Parser[ast.Operand] {
		return parsec.Map(parsec.Many(tail), func(tails []binaryTail) ast.Operand {
			result := lhs
			//
			for _, t := range tails {
				result = ast.NewExpression(t.operator, result, t.rhs)
			}
			//
			return result
		})
	})
}

// Match a given parser followed by any amount of whitespace.
func token[T any](p parsec.Parser[T]) parsec.Parser[T] {
	return parsec.Left(p, parsec.OptionalWhitespace)
}
