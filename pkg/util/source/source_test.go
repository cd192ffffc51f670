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
package source

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyntaxError_00(t *testing.T) {
	var (
		file = NewSourceFile("test.asm", []byte("hlt\nmov $2a, r9\r\nhlt"))
		err  = file.SyntaxError(NewSpan(13, 15), "unknown register")
		line = err.FirstEnclosingLine()
	)
	//
	require.Equal(t, 2, line.Number())
	require.Equal(t, 4, line.Start())
	require.Equal(t, "mov $2a, r9", line.String())
	require.Equal(t, "test.asm:2:10: unknown register", err.Error())
}

func TestSyntaxError_01(t *testing.T) {
	var file = NewSourceFile("test.asm", []byte("hlt\nmov"))
	// Errors at the end of the file highlight nothing.
	err := file.SyntaxErrorAt(7, "unexpected end of input")
	span := err.Span()
	require.Equal(t, 7, span.Start())
	require.Equal(t, 0, span.Length())
	//
	line := err.FirstEnclosingLine()
	require.Equal(t, 2, line.Number())
	require.Equal(t, "mov", line.String())
	//
	err = file.SyntaxErrorAt(1, "here")
	span = err.Span()
	require.Equal(t, 1, span.Length())
}

func TestSourceMap_00(t *testing.T) {
	var (
		file   = NewSourceFile("test.asm", []byte("loop:\nhlt"))
		srcmap = NewSourceMap[any](file)
		label  = new(int)
		insn   = new(int)
	)
	//
	srcmap.Put(label, NewSpan(0, 5))
	require.True(t, srcmap.Has(label))
	require.False(t, srcmap.Has(insn))
	require.Equal(t, NewSpan(0, 5), srcmap.Get(label))
	require.Panics(t, func() { srcmap.Put(label, NewSpan(0, 1)) })
	require.Panics(t, func() { srcmap.Get(insn) })
	//
	errs := srcmap.SyntaxErrors(label, "duplicate label")
	require.Len(t, errs, 1)
	require.Equal(t, "test.asm:1:1: duplicate label", errs[0].Error())
	// Unmapped items are reported at the start of the file.
	span := srcmap.SyntaxError(insn, "oops").Span()
	require.Equal(t, 0, span.Start())
	require.Same(t, file, srcmap.Source())
}

func TestSpan_00(t *testing.T) {
	span := NewSpan(3, 7)
	require.Equal(t, 3, span.Start())
	require.Equal(t, 7, span.End())
	require.Equal(t, 4, span.Length())
	require.Panics(t, func() { NewSpan(2, 1) })
}
