// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matcher

import (
	"errors"
	"fmt"
)

// ErrMatcherClosed is returned by Feed and Close once the matcher has been
// closed.
var ErrMatcherClosed = errors.New("token matcher already closed")

// CloseErrorKind says which side of a bound a buffer violated.
type CloseErrorKind int

const (
	TooFewValues CloseErrorKind = iota
	TooManyValues
)

// CloseError is returned when a buffer is closed with a value count outside
// its bound.
type CloseError struct {
	Kind     CloseErrorKind
	Name     string
	Provided int
	Expected int
}

func (e *CloseError) Error() string {
	if e.Kind == TooManyValues {
		return fmt.Sprintf("parameter '%s' got %d values, want at most %d", e.Name, e.Provided, e.Expected)
	}
	return fmt.Sprintf("parameter '%s' got %d values, want at least %d", e.Name, e.Provided, e.Expected)
}

// ConfigErrorKind identifies a matcher construction failure.
type ConfigErrorKind int

const (
	DuplicateOption ConfigErrorKind = iota
	DuplicateShortOption
)

// ConfigError is returned by New when options collide.
type ConfigError struct {
	Kind  ConfigErrorKind
	Name  string
	Short rune
}

func (e *ConfigError) Error() string {
	if e.Kind == DuplicateShortOption {
		return fmt.Sprintf("cannot duplicate the short option '%c'", e.Short)
	}
	return fmt.Sprintf("cannot duplicate the option '%s'", e.Name)
}

// MatchErrorKind identifies why a token stream failed to match.
type MatchErrorKind int

const (
	Undercomplete MatchErrorKind = iota
	Overcomplete
	ArgumentsExhausted
	InvalidOption
	InvalidShortOption
)

func (k MatchErrorKind) String() string {
	switch k {
	case Undercomplete:
		return "Undercomplete"
	case Overcomplete:
		return "Overcomplete"
	case ArgumentsExhausted:
		return "ArgumentsExhausted"
	case InvalidOption:
		return "InvalidOption"
	case InvalidShortOption:
		return "InvalidShortOption"
	}
	return fmt.Sprintf("MatchErrorKind(%d)", int(k))
}

// MatchError is returned by Feed and Close. Offset is the byte offset in the
// concatenated input the error points at.
type MatchError struct {
	Kind   MatchErrorKind
	Name   string
	Short  rune
	Offset int
}

func (e *MatchError) Error() string {
	switch e.Kind {
	case Undercomplete:
		return fmt.Sprintf("not enough tokens provided to parameter '%s'", e.Name)
	case Overcomplete:
		return fmt.Sprintf("too many tokens provided to parameter '%s'", e.Name)
	case ArgumentsExhausted:
		return "no more arguments to match against"
	case InvalidOption:
		return fmt.Sprintf("option '%s' does not exist", e.Name)
	case InvalidShortOption:
		return fmt.Sprintf("short option '%c' does not exist", e.Short)
	}
	return e.Kind.String()
}

// Is matches another *MatchError of the same kind. Name and Short on the
// target are compared only when set, so
// errors.Is(err, &MatchError{Kind: Undercomplete}) matches any parameter.
func (e *MatchError) Is(target error) bool {
	t, ok := target.(*MatchError)
	if !ok || t.Kind != e.Kind {
		return false
	}
	if t.Name != "" && t.Name != e.Name {
		return false
	}
	return t.Short == 0 || t.Short == e.Short
}

func matchErrorFromClose(err error, offset int) *MatchError {
	var ce *CloseError
	if !errors.As(err, &ce) {
		panic(fmt.Sprintf("matcher: unexpected close error %T", err))
	}
	kind := Undercomplete
	if ce.Kind == TooManyValues {
		kind = Overcomplete
	}
	return &MatchError{Kind: kind, Name: ce.Name, Offset: offset}
}
