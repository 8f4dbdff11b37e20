// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parser turns matched command-line tokens into typed program
// variables and drives one level of sub-command dispatch.
//
// A Parser binds each parameter name to a Capturable sink (see package
// capture for the stock ones). A ParseUnit pairs a Parser with its help
// Printer, and a GeneralParser runs a root ParseUnit and, when the root
// declares a discriminator argument, the sub-command ParseUnit it selects.
package parser

import (
	"errors"
	"fmt"

	"github.com/yeetrun/argot/pkg/matcher"
	"tailscale.com/types/logger"
	"tailscale.com/util/set"
)

// The help option every parser carries.
const (
	HelpName  = "help"
	HelpShort = 'h'
)

// Capturable receives the tokens matched for one parameter. Matched is
// called once when the parameter appears, then Capture once per token in
// input order.
type Capturable interface {
	Nargs() matcher.Nargs
	Matched()
	Capture(token string) error
}

// Renderer is implemented by sinks that can render their captured value.
// The discriminator's rendering selects the sub-command.
type Renderer interface {
	Render() string
}

// Choice documents one accepted value of a parameter.
type Choice struct {
	Value string
	Help  string
}

// Option is a named parameter such as --name or -n. Short is zero when the
// option has no short form.
type Option struct {
	Name    string
	Short   rune
	Help    string
	Meta    []string
	Choices []Choice
	Sink    Capturable
}

// Argument is a positional parameter.
type Argument struct {
	Name    string
	Help    string
	Meta    []string
	Choices []Choice
	Sink    Capturable
}

var (
	ErrDuplicateParameter   = errors.New("duplicate parameter name")
	ErrMissingSink          = errors.New("parameter has no capture")
	ErrInvalidDiscriminator = errors.New("discriminator must be an argument taking exactly one value")
	ErrZeroArityArgument    = errors.New("positional argument must take at least one value")
)

// ConfigError is returned when a parser is declared inconsistently.
type ConfigError struct {
	Param string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("invalid parser configuration: %v", e.Err)
	}
	return fmt.Sprintf("invalid parser configuration for '%s': %v", e.Param, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ParseError is a failure to match or convert the input. Offset is the byte
// offset, within the concatenated tokens, the failure points at.
type ParseError struct {
	Offset int
	Err    error
}

func (e *ParseError) Error() string { return e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// Discriminee is the discriminator value a parser captured.
type Discriminee struct {
	Name   string
	Offset int
	// Token is the raw input token.
	Token string
	// Value is the rendered captured value, or Token when the sink does not
	// implement Renderer.
	Value string
}

// Action is the outcome of Consume.
type Action struct {
	// Help is set when the help option was given. No captures ran.
	Help bool
	// Discriminee and Remaining are set for parsers with a discriminator.
	Discriminee *Discriminee
	Remaining   []string
}

// Parser matches tokens against a fixed set of parameters and feeds the
// results into their sinks.
type Parser struct {
	// Logf, if non-nil, receives a trace of matching.
	Logf logger.Logf

	options       []matcher.OptionConfig
	arguments     []matcher.ArgumentConfig
	captures      map[string]Capturable
	discriminator string
}

// New returns a parser for the given parameters. A non-empty discriminator
// names the argument that selects a sub-command; such a parser consumes only
// as many tokens as it needs and leaves the rest for the sub-command.
func New(options []Option, arguments []Argument, discriminator string) (*Parser, error) {
	p := &Parser{
		captures:      make(map[string]Capturable, len(options)+len(arguments)),
		discriminator: discriminator,
	}
	p.options = append(p.options, matcher.OptionConfig{
		Name:  HelpName,
		Short: HelpShort,
		Bound: matcher.BoundOf(matcher.Precisely(0)),
	})

	names := set.Set[string]{}
	add := func(name string, sink Capturable) error {
		if names.Contains(name) {
			return &ConfigError{Param: name, Err: ErrDuplicateParameter}
		}
		if sink == nil {
			return &ConfigError{Param: name, Err: ErrMissingSink}
		}
		names.Add(name)
		p.captures[name] = sink
		return nil
	}
	for _, o := range options {
		if err := add(o.Name, o.Sink); err != nil {
			return nil, err
		}
		p.options = append(p.options, matcher.OptionConfig{
			Name:  o.Name,
			Short: o.Short,
			Bound: matcher.BoundOf(o.Sink.Nargs()),
		})
	}
	for _, a := range arguments {
		if err := add(a.Name, a.Sink); err != nil {
			return nil, err
		}
		if a.Sink.Nargs() == matcher.Precisely(0) {
			return nil, &ConfigError{Param: a.Name, Err: ErrZeroArityArgument}
		}
		p.arguments = append(p.arguments, matcher.ArgumentConfig{
			Name:  a.Name,
			Bound: matcher.BoundOf(a.Sink.Nargs()),
		})
	}

	if discriminator != "" {
		ok := false
		for _, a := range arguments {
			if a.Name == discriminator && a.Sink.Nargs() == matcher.Precisely(1) {
				ok = true
			}
		}
		if !ok {
			return nil, &ConfigError{Param: discriminator, Err: ErrInvalidDiscriminator}
		}
	}

	// Surface option collisions, including with the help option, now rather
	// than on first use.
	if _, err := matcher.New(p.options, p.arguments); err != nil {
		var ce *matcher.ConfigError
		if errors.As(err, &ce) && ce.Kind == matcher.DuplicateOption {
			return nil, &ConfigError{Param: ce.Name, Err: err}
		}
		return nil, &ConfigError{Err: err}
	}
	return p, nil
}

// Discriminator returns the name of the discriminator argument, if any.
func (p *Parser) Discriminator() string { return p.discriminator }

// Consume matches tokens and, unless help was requested, captures every
// matched parameter in the order matching closed them. Errors are
// *ParseError.
func (p *Parser) Consume(tokens []string) (Action, error) {
	m, err := matcher.New(p.options, p.arguments)
	if err != nil {
		return Action{}, &ConfigError{Err: err}
	}
	m.Logf = p.Logf

	consumed := len(tokens)
	var feedErr error
	for i, tok := range tokens {
		if feedErr = m.Feed(tok); feedErr != nil {
			break
		}
		if p.discriminator != "" && m.CanClose() {
			consumed = i + 1
			break
		}
	}
	matches, closeErr := m.Close()

	if matches.Contains(HelpName) {
		return Action{Help: true}, nil
	}
	if feedErr != nil {
		return Action{}, asParseError(feedErr)
	}
	if closeErr != nil {
		return Action{}, asParseError(closeErr)
	}

	var action Action
	for _, mt := range matches.All() {
		sink := p.captures[mt.Name]
		sink.Matched()
		for _, v := range mt.Values {
			if err := sink.Capture(v.Token); err != nil {
				return Action{}, &ParseError{Offset: v.Offset, Err: err}
			}
		}
		if mt.Name != p.discriminator {
			continue
		}
		if len(mt.Values) != 1 {
			panic(fmt.Sprintf("parser: discriminator matched %d values", len(mt.Values)))
		}
		d := &Discriminee{
			Name:   mt.Name,
			Offset: mt.Values[0].Offset,
			Token:  mt.Values[0].Token,
			Value:  mt.Values[0].Token,
		}
		if r, ok := sink.(Renderer); ok {
			d.Value = r.Render()
		}
		action.Discriminee = d
	}
	if p.discriminator != "" {
		action.Remaining = tokens[consumed:]
	}
	return action, nil
}

func asParseError(err error) error {
	var me *matcher.MatchError
	if errors.As(err, &me) {
		return &ParseError{Offset: me.Offset, Err: err}
	}
	return &ParseError{Err: err}
}
