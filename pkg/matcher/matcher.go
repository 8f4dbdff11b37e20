// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package matcher attributes a flat stream of command-line tokens to the
// options and positional arguments of a command, enforcing each parameter's
// arity. It knows nothing about value types; see package parser for that.
package matcher

import (
	"strings"
	"unicode/utf8"

	"github.com/ef-ds/deque"
	"tailscale.com/types/logger"
	"tailscale.com/util/mak"
)

// OptionConfig describes an option such as --name or -n. Short is zero when
// the option has no short form.
type OptionConfig struct {
	Name  string
	Short rune
	Bound Bound
}

// ArgumentConfig describes a positional argument.
type ArgumentConfig struct {
	Name  string
	Bound Bound
}

// TokenMatcher is the matching state machine. It is fed tokens one at a time
// and then closed exactly once.
//
// Options may appear anywhere and each at most once. Positional arguments are
// consumed in declaration order; an argument takes as many tokens as its
// upper bound allows before yielding to the next one.
type TokenMatcher struct {
	// Logf, if non-nil, receives a trace of how each token was classified.
	Logf logger.Logf

	options   map[string]Bound
	shorts    map[rune]string
	arguments *deque.Deque // of ArgumentConfig
	required  int          // queued arguments with a non-zero lower bound

	fed     int
	matches *Matches
	buffer  *MatchBuffer
	closed  bool
}

// New returns a matcher for the given parameters. It fails with a
// *ConfigError if two options share a name or a short character.
func New(options []OptionConfig, arguments []ArgumentConfig) (*TokenMatcher, error) {
	m := &TokenMatcher{
		options:   make(map[string]Bound, len(options)),
		arguments: deque.New(),
		matches:   newMatches(),
	}
	for _, o := range options {
		if _, ok := m.options[o.Name]; ok {
			return nil, &ConfigError{Kind: DuplicateOption, Name: o.Name}
		}
		m.options[o.Name] = o.Bound
		if o.Short == 0 {
			continue
		}
		if _, ok := m.shorts[o.Short]; ok {
			return nil, &ConfigError{Kind: DuplicateShortOption, Short: o.Short}
		}
		mak.Set(&m.shorts, o.Short, o.Name)
	}
	for _, a := range arguments {
		m.arguments.PushBack(a)
		if a.Bound.Lo() > 0 {
			m.required++
		}
	}
	return m, nil
}

func (m *TokenMatcher) logf(format string, args ...any) {
	if m.Logf != nil {
		m.Logf(format, args...)
	}
}

// Feed attributes one token. On failure the returned *MatchError carries the
// offset of the start of token.
func (m *TokenMatcher) Feed(token string) error {
	if m.closed {
		return ErrMatcherClosed
	}
	var err error
	switch {
	case strings.HasPrefix(token, "--"):
		name, value, hasValue := strings.Cut(token[2:], "=")
		err = m.matchOption(name, value, hasValue)
	case strings.HasPrefix(token, "-") && len(token) > 1:
		cluster, value, hasValue := strings.Cut(token[1:], "=")
		err = m.matchShort(cluster, value, hasValue)
	default:
		err = m.matchArgument(token)
	}
	if err != nil {
		if me, ok := err.(*MatchError); ok {
			me.Offset = m.fed
		}
	}
	m.fed += len(token)
	return err
}

// Fed returns the number of bytes fed so far.
func (m *TokenMatcher) Fed() int { return m.fed }

func (m *TokenMatcher) matchArgument(token string) error {
	if m.buffer == nil || !m.buffer.IsOpen() {
		if m.buffer != nil {
			// A zero-arity argument is over full after its first token.
			mt, err := m.buffer.Close()
			m.buffer = nil
			if err != nil {
				return matchErrorFromClose(err, m.fed)
			}
			m.matches.add(mt)
		}
		next, err := m.nextArgument()
		if err != nil {
			return err
		}
		m.logf("matcher: argument %q opened at offset %d", next.Name(), m.fed)
		m.buffer = next
	}
	m.buffer.Push(m.fed, token)
	return nil
}

func (m *TokenMatcher) nextArgument() (*MatchBuffer, error) {
	v, ok := m.arguments.PopFront()
	if !ok {
		return nil, &MatchError{Kind: ArgumentsExhausted}
	}
	a := v.(ArgumentConfig)
	if a.Bound.Lo() > 0 {
		m.required--
	}
	return NewMatchBuffer(a.Name, a.Bound), nil
}

// takeOption removes name from the available options, so that each option
// matches at most once.
func (m *TokenMatcher) takeOption(name string) (Bound, bool) {
	b, ok := m.options[name]
	if ok {
		delete(m.options, name)
	}
	return b, ok
}

func (m *TokenMatcher) matchOption(name, value string, hasValue bool) error {
	bound, ok := m.takeOption(name)
	if !ok {
		return &MatchError{Kind: InvalidOption, Name: name}
	}
	m.logf("matcher: option %q at offset %d", name, m.fed)
	buf := NewMatchBuffer(name, bound)
	if !hasValue {
		return m.updateBuffer(buf)
	}
	if err := m.updateBuffer(nil); err != nil {
		return err
	}
	// Skip the "--" prefix and the "=" delimiter.
	buf.Push(m.fed+len(name)+3, value)
	return m.closeInto(buf)
}

func (m *TokenMatcher) matchShort(cluster, value string, hasValue bool) error {
	if cluster == "" {
		return &MatchError{Kind: InvalidShortOption, Short: '='}
	}
	for i, c := range cluster {
		name, ok := m.shorts[c]
		if !ok {
			return &MatchError{Kind: InvalidShortOption, Short: c}
		}
		bound, ok := m.takeOption(name)
		if !ok {
			// Already matched through its long name.
			return &MatchError{Kind: InvalidShortOption, Short: c}
		}
		delete(m.shorts, c)
		m.logf("matcher: short option '%c' (%q) at offset %d", c, name, m.fed)
		if i == 0 {
			if err := m.updateBuffer(nil); err != nil {
				return err
			}
		}
		buf := NewMatchBuffer(name, bound)
		if i+utf8.RuneLen(c) < len(cluster) {
			// Only the final flag of a cluster may take values.
			if err := m.closeInto(buf); err != nil {
				return err
			}
			continue
		}
		if !hasValue {
			m.buffer = buf
			return nil
		}
		// Skip the "-" prefix and the "=" delimiter.
		buf.Push(m.fed+len(cluster)+2, value)
		return m.closeInto(buf)
	}
	return nil
}

// updateBuffer closes the current buffer, if any, and makes next current.
func (m *TokenMatcher) updateBuffer(next *MatchBuffer) error {
	prev := m.buffer
	m.buffer = next
	if prev == nil {
		return nil
	}
	return m.closeInto(prev)
}

func (m *TokenMatcher) closeInto(buf *MatchBuffer) error {
	mt, err := buf.Close()
	if err != nil {
		return matchErrorFromClose(err, m.fed)
	}
	m.matches.add(mt)
	return nil
}

// CanClose reports whether Close would succeed given the tokens fed so far.
func (m *TokenMatcher) CanClose() bool {
	if m.closed {
		return false
	}
	if m.buffer != nil && !m.buffer.CanClose() {
		return false
	}
	return m.required == 0
}

// Close finalizes matching. The open buffer is closed, then every argument
// that never received a token is closed empty. Matches is always returned,
// holding whatever closed successfully; the error, if any, is the first
// failure encountered and carries the total number of bytes fed as its
// offset.
func (m *TokenMatcher) Close() (*Matches, error) {
	if m.closed {
		return m.matches, ErrMatcherClosed
	}
	m.closed = true

	var first error
	if m.buffer != nil {
		if mt, err := m.buffer.Close(); err != nil {
			first = err
		} else {
			m.matches.add(mt)
		}
		m.buffer = nil
	}
	for m.arguments.Len() > 0 {
		v, _ := m.arguments.PopFront()
		a := v.(ArgumentConfig)
		mt, err := NewMatchBuffer(a.Name, a.Bound).Close()
		if err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		m.matches.add(mt)
	}
	m.required = 0
	if first != nil {
		return m.matches, matchErrorFromClose(first, m.fed)
	}
	return m.matches, nil
}
