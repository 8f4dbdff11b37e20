// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matcher

import (
	"fmt"
	"strconv"
)

type nargsKind uint8

const (
	nargsPrecisely nargsKind = iota
	nargsAny
	nargsAtLeastOne
)

// Nargs is the arity a parameter declares: an exact count, zero or more, or
// one or more.
type Nargs struct {
	kind nargsKind
	n    uint8
}

// Precisely declares exactly n values.
func Precisely(n uint8) Nargs { return Nargs{kind: nargsPrecisely, n: n} }

var (
	// Any declares zero or more values.
	Any = Nargs{kind: nargsAny}
	// AtLeastOne declares one or more values.
	AtLeastOne = Nargs{kind: nargsAtLeastOne}
)

// Count returns the exact count for a Precisely arity.
func (n Nargs) Count() (uint8, bool) {
	if n.kind != nargsPrecisely {
		return 0, false
	}
	return n.n, true
}

// IsAny reports whether n is Any.
func (n Nargs) IsAny() bool { return n.kind == nargsAny }

// IsAtLeastOne reports whether n is AtLeastOne.
func (n Nargs) IsAtLeastOne() bool { return n.kind == nargsAtLeastOne }

func (n Nargs) String() string {
	switch n.kind {
	case nargsAny:
		return "*"
	case nargsAtLeastOne:
		return "+"
	}
	return strconv.Itoa(int(n.n))
}

// ParseNargs parses the textual form produced by Nargs.String: a decimal
// count, "*" or "+".
func ParseNargs(s string) (Nargs, error) {
	switch s {
	case "*":
		return Any, nil
	case "+":
		return AtLeastOne, nil
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return Nargs{}, fmt.Errorf("invalid nargs %q: want a count, '*' or '+'", s)
	}
	return Precisely(uint8(n)), nil
}

// Bound is the inclusive range of value counts a parameter accepts. A Bound
// either has an upper limit (Range) or does not (Lower).
type Bound struct {
	lo      uint8
	hi      uint8
	bounded bool
}

// RangeBound returns the bound [lo, hi]. It panics if lo > hi.
func RangeBound(lo, hi uint8) Bound {
	if lo > hi {
		panic(fmt.Sprintf("matcher: invalid range bound [%d, %d]", lo, hi))
	}
	return Bound{lo: lo, hi: hi, bounded: true}
}

// LowerBound returns the bound [lo, ∞).
func LowerBound(lo uint8) Bound {
	return Bound{lo: lo}
}

// BoundOf converts an arity into the bound the matcher enforces.
func BoundOf(n Nargs) Bound {
	switch n.kind {
	case nargsAny:
		return LowerBound(0)
	case nargsAtLeastOne:
		return LowerBound(1)
	}
	return RangeBound(n.n, n.n)
}

// Lo returns the minimum number of values.
func (b Bound) Lo() uint8 { return b.lo }

// Hi returns the maximum number of values, or false when unbounded.
func (b Bound) Hi() (uint8, bool) { return b.hi, b.bounded }

func (b Bound) String() string {
	if b.bounded {
		return fmt.Sprintf("Range(%d, %d)", b.lo, b.hi)
	}
	return fmt.Sprintf("Lower(%d)", b.lo)
}
