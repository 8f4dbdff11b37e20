// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package capture provides typed sinks that bind matched command-line tokens
// to program variables.
//
// Every sink has the same shape: Matched is called once when its parameter
// appears in the input, then Capture once per token attributed to it.
package capture

import (
	"errors"
	"fmt"

	"github.com/yeetrun/argot/pkg/matcher"
	"tailscale.com/util/set"
)

// ErrNoValues is returned by Capture on sinks that take no values.
var ErrNoValues = errors.New("capture takes no values")

// Scalar stores a single converted value, overwriting the target.
type Scalar[T any] struct {
	target *T
}

// NewScalar returns a sink writing to target.
func NewScalar[T any](target *T) *Scalar[T] {
	return &Scalar[T]{target: target}
}

func (s *Scalar[T]) Nargs() matcher.Nargs { return matcher.Precisely(1) }

func (s *Scalar[T]) Matched() {}

func (s *Scalar[T]) Capture(token string) error {
	v, err := Convert[T](token)
	if err != nil {
		return err
	}
	*s.target = v
	return nil
}

// Render returns the string form of the captured value. Sub-command
// dispatch looks commands up by this string.
func (s *Scalar[T]) Render() string {
	return fmt.Sprint(*s.target)
}

// Switch stores a fixed value when its parameter appears. It takes no values.
type Switch[T any] struct {
	target *T
	value  T
}

// NewSwitch returns a sink that sets *target to value when matched.
func NewSwitch[T any](target *T, value T) *Switch[T] {
	return &Switch[T]{target: target, value: value}
}

func (s *Switch[T]) Nargs() matcher.Nargs { return matcher.Precisely(0) }

func (s *Switch[T]) Matched() { *s.target = s.value }

func (s *Switch[T]) Capture(token string) error {
	return fmt.Errorf("switch given %q: %w", token, ErrNoValues)
}

// Optional stores a single converted value behind a pointer, leaving the
// target nil when its parameter does not appear.
type Optional[T any] struct {
	target **T
}

// NewOptional returns a sink writing to target.
func NewOptional[T any](target **T) *Optional[T] {
	return &Optional[T]{target: target}
}

func (o *Optional[T]) Nargs() matcher.Nargs { return matcher.Precisely(1) }

func (o *Optional[T]) Matched() {}

func (o *Optional[T]) Capture(token string) error {
	v, err := Convert[T](token)
	if err != nil {
		return err
	}
	*o.target = &v
	return nil
}

// Collection appends every converted value to a slice.
type Collection[T any] struct {
	target *[]T
	nargs  matcher.Nargs
}

// NewCollection returns a sink appending to target, accepting nargs values.
func NewCollection[T any](target *[]T, nargs matcher.Nargs) *Collection[T] {
	return &Collection[T]{target: target, nargs: nargs}
}

func (c *Collection[T]) Nargs() matcher.Nargs { return c.nargs }

func (c *Collection[T]) Matched() {}

func (c *Collection[T]) Capture(token string) error {
	v, err := Convert[T](token)
	if err != nil {
		return err
	}
	*c.target = append(*c.target, v)
	return nil
}

// Set adds every converted value to a set, collapsing repeats.
type Set[T comparable] struct {
	target *set.Set[T]
	nargs  matcher.Nargs
}

// NewSet returns a sink adding to target, accepting nargs values.
func NewSet[T comparable](target *set.Set[T], nargs matcher.Nargs) *Set[T] {
	return &Set[T]{target: target, nargs: nargs}
}

func (s *Set[T]) Nargs() matcher.Nargs { return s.nargs }

func (s *Set[T]) Matched() {
	if *s.target == nil {
		*s.target = set.Set[T]{}
	}
}

func (s *Set[T]) Capture(token string) error {
	v, err := Convert[T](token)
	if err != nil {
		return err
	}
	s.Matched()
	s.target.Add(v)
	return nil
}
