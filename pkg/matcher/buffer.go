// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matcher

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OffsetValue is a token together with the byte offset at which it starts
// in the concatenated input.
type OffsetValue struct {
	Offset int
	Token  string
}

// MatchTokens is the finalized set of values attributed to one parameter.
type MatchTokens struct {
	Name   string
	Values []OffsetValue
}

// MatchBuffer collects the values of a single parameter while tokens are
// being fed. A buffer is spent once Close is called.
type MatchBuffer struct {
	name   string
	bound  Bound
	values []OffsetValue
	closed bool
}

// NewMatchBuffer returns an empty buffer for the named parameter.
func NewMatchBuffer(name string, bound Bound) *MatchBuffer {
	return &MatchBuffer{name: name, bound: bound}
}

// Name returns the parameter name the buffer collects for.
func (b *MatchBuffer) Name() string { return b.name }

// Len returns the number of values pushed so far.
func (b *MatchBuffer) Len() int { return len(b.values) }

// Push appends a value. It does not consult IsOpen; callers that care about
// the upper bound must check first.
func (b *MatchBuffer) Push(offset int, token string) {
	if b.closed {
		panic("matcher: push to closed buffer")
	}
	b.values = append(b.values, OffsetValue{Offset: offset, Token: token})
}

// IsOpen reports whether the buffer may accept another value.
func (b *MatchBuffer) IsOpen() bool {
	if hi, ok := b.bound.Hi(); ok {
		return len(b.values) < int(hi)
	}
	return true
}

// CanClose reports whether the buffer holds at least the minimum number of
// values.
func (b *MatchBuffer) CanClose() bool {
	return len(b.values) >= int(b.bound.Lo())
}

// Close finalizes the buffer. It fails with a *CloseError when the number of
// values falls outside the bound.
func (b *MatchBuffer) Close() (MatchTokens, error) {
	if b.closed {
		panic("matcher: buffer already closed")
	}
	b.closed = true
	n := len(b.values)
	if n < int(b.bound.Lo()) {
		return MatchTokens{}, &CloseError{
			Kind:     TooFewValues,
			Name:     b.name,
			Provided: n,
			Expected: int(b.bound.Lo()),
		}
	}
	if hi, ok := b.bound.Hi(); ok && n > int(hi) {
		return MatchTokens{}, &CloseError{
			Kind:     TooManyValues,
			Name:     b.name,
			Provided: n,
			Expected: int(hi),
		}
	}
	return MatchTokens{Name: b.name, Values: b.values}, nil
}

// Matches is the ordered collection of closed parameters, in the order they
// were closed. Each name appears at most once.
type Matches struct {
	m *orderedmap.OrderedMap[string, MatchTokens]
}

func newMatches() *Matches {
	return &Matches{m: orderedmap.New[string, MatchTokens]()}
}

func (ms *Matches) add(mt MatchTokens) {
	ms.m.Set(mt.Name, mt)
}

// Contains reports whether the named parameter was matched.
func (ms *Matches) Contains(name string) bool {
	_, ok := ms.m.Get(name)
	return ok
}

// Get returns the values matched for name.
func (ms *Matches) Get(name string) (MatchTokens, bool) {
	return ms.m.Get(name)
}

// Len returns the number of matched parameters.
func (ms *Matches) Len() int {
	return ms.m.Len()
}

// All returns the matches in closing order.
func (ms *Matches) All() []MatchTokens {
	out := make([]MatchTokens, 0, ms.m.Len())
	for pair := ms.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}
