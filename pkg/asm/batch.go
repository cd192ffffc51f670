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
	"context"
	"runtime"

	"github.com/consensys/go-asm16/pkg/asm/parser"
	"github.com/consensys/go-asm16/pkg/isa"
	"github.com/consensys/go-asm16/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// AssembleFiles assembles a number of independent source files in parallel,
// using at most the given number of workers (or one per CPU, if this is not
// positive).  Images are returned in the same order as the files, with the
// image for any file which failed to assemble left empty.  Syntax errors are
// likewise reported in file order.  An error is returned only if the context
// is cancelled before all files are assembled.
func AssembleFiles(ctx context.Context, set *isa.Set, files []source.File, workers int) ([]Image,
	[]source.SyntaxError, error) {
	//
	var (
		images  = make([]Image, len(files))
		errs    = make([][]source.SyntaxError, len(files))
		grammar = parser.NewGrammar(set)
		errors  []source.SyntaxError
	)
	//
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	//
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	//
	for i := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			//
			images[i], errs[i] = assemble(set, grammar, &files[i])
			//
			log.Debugf("assembled %s (%d byte(s), %d error(s))", files[i].Filename(), len(images[i].Code),
				len(errs[i]))
			//
			return nil
		})
	}
	//
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	//
	for _, e := range errs {
		errors = append(errors, e...)
	}
	//
	return images, errors, nil
}
