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
	"cmp"
	"maps"
	"slices"
)

// Labels is the table of label addresses produced by the first pass of the
// assembler.  Labels are immutable once constructed.
type Labels struct {
	addresses map[string]uint16
}

// Lookup the address of a given label.
func (p Labels) Lookup(name string) (uint16, bool) {
	addr, ok := p.addresses[name]
	return addr, ok
}

// Names returns the declared labels ordered by address (and then by name, for
// labels sharing an address).
func (p Labels) Names() []string {
	names := slices.Collect(maps.Keys(p.addresses))
	//
	slices.SortFunc(names, func(l, r string) int {
		if c := cmp.Compare(p.addresses[l], p.addresses[r]); c != 0 {
			return c
		}
		//
		return cmp.Compare(l, r)
	})
	//
	return names
}

// Len returns the number of declared labels.
func (p Labels) Len() int {
	return len(p.addresses)
}
