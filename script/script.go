// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package script runs user-supplied Go snippets against a frame through
// the yaegi interpreter, for ad-hoc transforms before reshaping.
package script

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"longform/dataframe"
)

// TransformFunc is the signature a transform script must provide as
// Transform in package transform.
type TransformFunc = func(*dataframe.Frame) (*dataframe.Frame, error)

// ErrNoTransform is returned when a script does not define
// transform.Transform with the expected signature.
var ErrNoTransform = errors.New("script does not define Transform(f *dataframe.Frame) (*dataframe.Frame, error)")

// Runner evaluates transform scripts. Each Runner owns one interpreter
// and is not safe for concurrent use.
type Runner struct {
	interp *interp.Interpreter
	output bytes.Buffer
}

// NewRunner creates an interpreter with the standard library and the
// longform packages available to scripts.
func NewRunner() (*Runner, error) {
	r := &Runner{}
	r.interp = interp.New(interp.Options{
		Stdout: &r.output,
		Stderr: &r.output,
	})
	if err := r.interp.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to load stdlib symbols: %w", err)
	}
	if err := r.interp.Use(Symbols); err != nil {
		return nil, fmt.Errorf("failed to load longform symbols: %w", err)
	}
	return r, nil
}

// Transform evaluates src, which must declare package transform with a
// Transform function, and applies it to the frame. The script may import
// "longform/dataframe" and "longform/reshape".
func (r *Runner) Transform(src string, f *dataframe.Frame) (*dataframe.Frame, error) {
	if _, err := r.interp.Eval(src); err != nil {
		return nil, fmt.Errorf("failed to evaluate script: %w", err)
	}

	v, err := r.interp.Eval("transform.Transform")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTransform, err)
	}
	fn, ok := v.Interface().(TransformFunc)
	if !ok {
		return nil, ErrNoTransform
	}

	out, err := fn(f)
	if err != nil {
		return nil, fmt.Errorf("script transform failed: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("script transform returned no frame")
	}
	return out, nil
}

// Output returns everything the script printed so far.
func (r *Runner) Output() string {
	return r.output.String()
}
