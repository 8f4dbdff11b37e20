// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"errors"
	"fmt"
	"os"

	"tailscale.com/types/logger"
)

var (
	// ErrHelp is wrapped by the ExitError returned after help was shown.
	ErrHelp = errors.New("help requested")

	// ErrUnknownSubCommand means the discriminator value names no
	// registered sub-command.
	ErrUnknownSubCommand = errors.New("unknown sub-command")

	// ErrNonInverseDiscriminator means the discriminator token names a
	// registered sub-command but its captured value renders differently,
	// so the lookup missed. The discriminator type's parsing and rendering
	// disagree; this is a programming error, not a user error.
	ErrNonInverseDiscriminator = errors.New("discriminator rendering does not round-trip")
)

// ExitError is returned by ParseTokens when the program should exit. Code
// is 0 after help was shown and 1 after an error was reported.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d: %v", e.Code, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// SubCommandError is returned when the discriminator selects no
// sub-command.
type SubCommandError struct {
	Token string
	Value string
	// NonInverse is set when Token itself is a registered sub-command.
	NonInverse bool
}

func (e *SubCommandError) Error() string {
	if e.NonInverse {
		return fmt.Sprintf("sub-command '%s' was parsed as '%s', which is not registered", e.Token, e.Value)
	}
	return fmt.Sprintf("unknown sub-command '%s'", e.Value)
}

func (e *SubCommandError) Is(target error) bool {
	if e.NonInverse {
		return target == ErrNonInverseDiscriminator
	}
	return target == ErrUnknownSubCommand
}

// ParseUnit is a parser together with the printer documenting it.
type ParseUnit struct {
	parser  *Parser
	printer *Printer
}

// NewParseUnit builds the Parser and Printer for a set of parameters.
func NewParseUnit(options []Option, arguments []Argument, discriminator string) (*ParseUnit, error) {
	p, err := New(options, arguments, discriminator)
	if err != nil {
		return nil, err
	}
	return &ParseUnit{parser: p, printer: NewPrinter(options, arguments)}, nil
}

// Printer returns the unit's help printer.
func (u *ParseUnit) Printer() *Printer { return u.printer }

type outcomeKind int

const (
	outcomeComplete outcomeKind = iota
	outcomeIncomplete
	outcomeExit
)

type outcome struct {
	kind        outcomeKind
	discriminee *Discriminee
	remaining   []string
	exit        *ExitError
}

func (u *ParseUnit) invoke(tokens []string, program string, ui UserInterface, logf logger.Logf) outcome {
	u.parser.Logf = logf
	action, err := u.parser.Consume(tokens)
	if err != nil {
		report(ui, err, tokens)
		return outcome{kind: outcomeExit, exit: &ExitError{Code: 1, Err: err}}
	}
	if action.Help {
		u.printer.PrintHelp(program, ui)
		return outcome{kind: outcomeExit, exit: &ExitError{Code: 0, Err: ErrHelp}}
	}
	if action.Discriminee != nil {
		return outcome{
			kind:        outcomeIncomplete,
			discriminee: action.Discriminee,
			remaining:   action.Remaining,
		}
	}
	return outcome{kind: outcomeComplete}
}

func report(ui UserInterface, err error, tokens []string) {
	ui.PrintError(err)
	var pe *ParseError
	if errors.As(err, &pe) {
		ui.PrintErrorContext(pe.Offset, tokens)
	}
}

// GeneralParser runs a root parser and, when the root has a discriminator,
// the sub-command parser it selects.
type GeneralParser struct {
	program     string
	root        *ParseUnit
	subCommands map[string]*ParseUnit
	ui          UserInterface
	logf        logger.Logf
}

// NewCommand returns a GeneralParser for a program without sub-commands.
func NewCommand(program string, root *ParseUnit) (*GeneralParser, error) {
	if root.parser.Discriminator() != "" {
		return nil, &ConfigError{Param: root.parser.Discriminator(), Err: errors.New("discriminator declared without sub-commands")}
	}
	return &GeneralParser{program: program, root: root, ui: NewConsole()}, nil
}

// NewSubCommand returns a GeneralParser whose root selects one of subs by
// its discriminator's rendered value. Sub-command parsers may not branch
// further.
func NewSubCommand(program string, root *ParseUnit, subs map[string]*ParseUnit) (*GeneralParser, error) {
	if root.parser.Discriminator() == "" {
		return nil, &ConfigError{Err: errors.New("sub-commands declared without a discriminator")}
	}
	for name, sub := range subs {
		if sub.parser.Discriminator() != "" {
			return nil, &ConfigError{Param: name, Err: errors.New("sub-commands cannot nest")}
		}
	}
	return &GeneralParser{program: program, root: root, subCommands: subs, ui: NewConsole()}, nil
}

// SetInterface replaces the Console the parser reports to.
func (g *GeneralParser) SetInterface(ui UserInterface) { g.ui = ui }

// SetLogf sets the trace logger passed down to matching.
func (g *GeneralParser) SetLogf(logf logger.Logf) { g.logf = logf }

// ParseTokens parses tokens, which must not include the program name. It
// returns nil when every parameter was captured and an *ExitError when the
// program should stop instead; help or error output has already been shown
// by then.
func (g *GeneralParser) ParseTokens(tokens []string) error {
	logf := g.logf
	if logf == nil {
		logf = logger.Discard
	}
	out := g.root.invoke(tokens, g.program, g.ui, logf)
	switch out.kind {
	case outcomeComplete:
		return nil
	case outcomeExit:
		return out.exit
	}

	d := out.discriminee
	sub, ok := g.subCommands[d.Value]
	if !ok {
		_, nonInverse := g.subCommands[d.Token]
		err := &ParseError{
			Offset: d.Offset,
			Err:    &SubCommandError{Token: d.Token, Value: d.Value, NonInverse: nonInverse && d.Token != d.Value},
		}
		report(g.ui, err, tokens)
		return &ExitError{Code: 1, Err: err}
	}
	logf("parser: dispatching to sub-command %q with %d tokens", d.Value, len(out.remaining))

	// Offsets reported by the sub-command are relative to its own tokens.
	out = sub.invoke(out.remaining, g.program+" "+d.Value, g.ui, logf)
	switch out.kind {
	case outcomeComplete:
		return nil
	case outcomeExit:
		return out.exit
	}
	panic("parser: sub-command parser returned a discriminee")
}

// Parse parses the process's command-line arguments and exits the process
// when ParseTokens reports it should.
func (g *GeneralParser) Parse() {
	err := g.ParseTokens(os.Args[1:])
	if err == nil {
		return
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		os.Exit(ee.Code)
	}
	os.Exit(1)
}
