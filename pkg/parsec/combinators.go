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
package parsec

import "sync"

// ============================================================================
// Transformers
// ============================================================================

// Map runs a parser and, on success, transforms its value.  Failures are
// propagated unchanged and never reach fn.
func Map[A any, B any](p Parser[A], fn func(A) B) Parser[B] {
	return func(c Cursor) Result[B] {
		r := p(c)
		//
		if r.err != nil {
			return failure[B](r.cursor, r.err)
		}
		//
		return success(r.cursor, fn(r.value))
	}
}

// ErrorMap runs a parser and, on failure, transforms its error.  Successful
// results are propagated unchanged.
func ErrorMap[T any](p Parser[T], fn func(*Error) *Error) Parser[T] {
	return func(c Cursor) Result[T] {
		r := p(c)
		//
		if r.err == nil {
			return r
		}
		//
		return failure[T](r.cursor, fn(r.err))
	}
}

// Refine runs a parser and then checks (and converts) its value using fn.  If
// fn rejects the value, the failure is reported at the position where p
// started, since that is where the offending construct begins.
func Refine[A any, B any](p Parser[A], fn func(A) (B, *Error)) Parser[B] {
	return func(c Cursor) Result[B] {
		r := p(c)
		//
		if r.err != nil {
			return failure[B](r.cursor, r.err)
		}
		//
		value, err := fn(r.value)
		//
		if err != nil {
			return failure[B](c, newError(c.index, err.Kind, err.Message, err.Cause))
		}
		//
		return success(r.cursor, value)
	}
}

// Chain runs a parser and, on success, uses its value to decide which parser
// to run next (from the advanced position).  This allows context-sensitive
// grammars, such as choosing an operand parser based on a mnemonic.
func Chain[A any, B any](p Parser[A], fn func(A) Parser[B]) Parser[B] {
	return func(c Cursor) Result[B] {
		r := p(c)
		//
		if r.err != nil {
			return failure[B](r.cursor, r.err)
		}
		//
		return fn(r.value)(r.cursor)
	}
}

// Dispatch parses a tag and then continues with the parser associated with
// that tag in a given table.  Tags missing from the table are rejected
// explicitly via the unknown function, whose error is reported at the start of
// the tag.
func Dispatch[K comparable, T any](tag Parser[K], table map[K]Parser[T], unknown func(K) *Error) Parser[T] {
	lookup := func(key K) (Parser[T], *Error) {
		if p, ok := table[key]; ok {
			return p, nil
		}
		//
		return nil, unknown(key)
	}
	//
	return Chain(Refine(tag, lookup), func(p Parser[T]) Parser[T] { return p })
}

// Lazy defers construction of a parser until it is first run.  This is needed
// for recursive grammars, where a parser refers to itself.
func Lazy[T any](fn func() Parser[T]) Parser[T] {
	var (
		once sync.Once
		p    Parser[T]
	)
	//
	return func(c Cursor) Result[T] {
		once.Do(func() { p = fn() })
		//
		return p(c)
	}
}

// ============================================================================
// Sequencing
// ============================================================================

// Sequence runs each parser in turn, with each starting where the previous one
// finished.  If any parser fails, then the sequence fails immediately with that
// error.  Otherwise, the values of all parsers are returned in order.
func Sequence[T any](parsers ...Parser[T]) Parser[[]T] {
	return func(c Cursor) Result[[]T] {
		var (
			values = make([]T, 0, len(parsers))
			next   = c
		)
		//
		for _, p := range parsers {
			r := p(next)
			//
			if r.err != nil {
				return failure[[]T](r.cursor, r.err)
			}
			//
			values = append(values, r.value)
			next = r.cursor
		}
		//
		return success(next, values)
	}
}

// Left runs two parsers in sequence, keeping only the value of the first.
func Left[A any, B any](left Parser[A], right Parser[B]) Parser[A] {
	return func(c Cursor) Result[A] {
		l := left(c)
		//
		if l.err != nil {
			return l
		}
		//
		r := right(l.cursor)
		//
		if r.err != nil {
			return failure[A](r.cursor, r.err)
		}
		//
		return success(r.cursor, l.value)
	}
}

// Right runs two parsers in sequence, keeping only the value of the second.
func Right[A any, B any](left Parser[A], right Parser[B]) Parser[B] {
	return func(c Cursor) Result[B] {
		l := left(c)
		//
		if l.err != nil {
			return failure[B](l.cursor, l.err)
		}
		//
		return right(l.cursor)
	}
}

// Between constructs a function which wraps a content parser with a left and
// right delimiter, keeping only the value of the content.
func Between[L any, R any, T any](left Parser[L], right Parser[R]) func(Parser[T]) Parser[T] {
	return func(content Parser[T]) Parser[T] {
		return Left(Right(left, content), right)
	}
}

// ============================================================================
// Alternation
// ============================================================================

// Choice tries each parser in turn from the same starting position, returning
// the first success.  A failed alternative consumes nothing.  If every
// alternative fails, the choice fails at the starting position, and the
// alternative which progressed furthest is retained as the cause.
func Choice[T any](parsers ...Parser[T]) Parser[T] {
	return func(c Cursor) Result[T] {
		var cause *Error
		//
		for _, p := range parsers {
			r := p(c)
			//
			if r.err == nil {
				return r
			} else if cause == nil || further(r.err.Deepest(), cause.Deepest()) {
				cause = r.err
			}
		}
		//
		return failure[T](c, newError(c.index, SYNTAX, "unable to match any alternative", cause))
	}
}

// Expect runs a parser and, on failure, replaces its error with one which
// simply names the construct expected.  This is reported at the starting
// position, hiding how far the parser progressed before giving up.
func Expect[T any](p Parser[T], what string) Parser[T] {
	return func(c Cursor) Result[T] {
		if r := p(c); r.err == nil {
			return r
		}
		//
		return failure[T](c, unexpected(c, what))
	}
}

// Optional runs a parser and, if it fails, succeeds without consuming anything
// and produces a given default value instead.
func Optional[T any](p Parser[T], otherwise T) Parser[T] {
	return func(c Cursor) Result[T] {
		if r := p(c); r.err == nil {
			return r
		}
		//
		return success(c, otherwise)
	}
}

// ============================================================================
// Repetition
// ============================================================================

// Many applies a parser repeatedly until it fails, collecting the values
// produced.  The terminating failure is swallowed, hence zero matches is a
// success (with an empty result and the cursor unmoved).
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(c Cursor) Result[[]T] {
		values, next, _ := repeat(p, c)
		//
		return success(next, values)
	}
}

// Many1 is like Many, except that at least one match is required.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return func(c Cursor) Result[[]T] {
		values, next, err := repeat(p, c)
		//
		if len(values) == 0 {
			return failure[[]T](c, newError(c.index, SYNTAX, "expected at least one match", err))
		}
		//
		return success(next, values)
	}
}

// ManyTill applies a parser repeatedly until a terminating parser matches.
// Unlike Many, a failure of the repeated parser is not swallowed: when the
// terminator does not match, the repeated parser must.
func ManyTill[T any, E any](p Parser[T], end Parser[E]) Parser[[]T] {
	return func(c Cursor) Result[[]T] {
		var values = make([]T, 0)
		//
		for {
			if e := end(c); e.err == nil {
				return success(e.cursor, values)
			}
			//
			r := p(c)
			//
			if r.err != nil {
				return failure[[]T](r.cursor, r.err)
			} else if r.cursor.index == c.index {
				return failure[[]T](c, newError(c.index, SYNTAX, "repeated parser consumed nothing", nil))
			}
			//
			values = append(values, r.value)
			c = r.cursor
		}
	}
}

// SepBy matches zero or more occurrences of a parser separated by a given
// separator.  A trailing separator is not consumed.
func SepBy[T any, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return Optional(SepBy1(p, sep), []T{})
}

// SepBy1 matches one or more occurrences of a parser separated by a given
// separator.
func SepBy1[T any, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return func(c Cursor) Result[[]T] {
		first := p(c)
		//
		if first.err != nil {
			return failure[[]T](first.cursor, first.err)
		}
		//
		rest, next, _ := repeat(Right(sep, p), first.cursor)
		//
		return success(next, append([]T{first.value}, rest...))
	}
}

// Apply a parser as many times as possible.  This stops at the first failure,
// or when the parser succeeds without consuming anything (which would
// otherwise loop forever).  The terminating failure is returned, if any.
func repeat[T any](p Parser[T], c Cursor) ([]T, Cursor, *Error) {
	var values = make([]T, 0)
	//
	for {
		r := p(c)
		//
		if r.err != nil {
			return values, c, r.err
		}
		//
		values = append(values, r.value)
		//
		if r.cursor.index == c.index {
			return values, c, nil
		}
		//
		c = r.cursor
	}
}

// ============================================================================
// Locations
// ============================================================================

// Located pairs a value with the region of text from which it was parsed.
type Located[T any] struct {
	Value T
	// Index of the first character consumed.
	Start int
	// One past the index of the last character consumed.
	End int
}

// Locate wraps a parser so that its value records the region of text it was
// parsed from.
func Locate[T any](p Parser[T]) Parser[Located[T]] {
	return func(c Cursor) Result[Located[T]] {
		r := p(c)
		//
		if r.err != nil {
			return failure[Located[T]](r.cursor, r.err)
		}
		//
		return success(r.cursor, Located[T]{r.value, c.index, r.cursor.index})
	}
}
