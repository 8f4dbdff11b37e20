// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/yeetrun/argot/pkg/capture"
	"github.com/yeetrun/argot/pkg/matcher"
	"github.com/yeetrun/argot/pkg/parser"
	"tailscale.com/util/set"
)

// Program is a built schema: the parser and the store its captures write to.
type Program struct {
	Parser *parser.GeneralParser
	Values *Values
}

// Build turns a schema into a ready-to-run parser.
func Build(s *Schema) (*Program, error) {
	vals := &Values{root: newScope()}
	opts, args, err := params(vals.root, s.Options, s.Arguments)
	if err != nil {
		return nil, err
	}

	if s.Branch == nil {
		if len(s.Commands) > 0 {
			return nil, fmt.Errorf("schema %q: commands declared without a branch argument", s.Program)
		}
		unit, err := parser.NewParseUnit(opts, args, "")
		if err != nil {
			return nil, err
		}
		g, err := parser.NewCommand(s.Program, unit)
		if err != nil {
			return nil, err
		}
		return &Program{Parser: g, Values: vals}, nil
	}

	branch := *s.Branch
	if n, err := branch.Nargs.Nargs(); err != nil || n != matcher.Precisely(1) {
		return nil, fmt.Errorf("branch %q: must take exactly one value", branch.Name)
	}
	names := make([]string, 0, len(s.Commands))
	for name := range s.Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(branch.Choices) == 0 {
		for _, name := range names {
			branch.Choices = append(branch.Choices, Choice{Value: name, Help: s.Commands[name].Help})
		}
	}
	sink, err := sinkFor(vals.root, branch)
	if err != nil {
		return nil, err
	}
	vals.branch = sink
	args = append(args, parser.Argument{
		Name:    branch.Name,
		Help:    branch.Help,
		Meta:    metaOf(branch),
		Choices: choicesOf(branch.Choices),
		Sink:    sink,
	})
	root, err := parser.NewParseUnit(opts, args, branch.Name)
	if err != nil {
		return nil, err
	}

	vals.subs = make(map[string]*scope, len(names))
	subs := make(map[string]*parser.ParseUnit, len(names))
	for _, name := range names {
		cmd := s.Commands[name]
		sc := newScope()
		opts, args, err := params(sc, cmd.Options, cmd.Arguments)
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", name, err)
		}
		unit, err := parser.NewParseUnit(opts, args, "")
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", name, err)
		}
		vals.subs[name] = sc
		subs[name] = unit
	}
	g, err := parser.NewSubCommand(s.Program, root, subs)
	if err != nil {
		return nil, err
	}
	return &Program{Parser: g, Values: vals}, nil
}

func params(sc *scope, options, arguments []Param) ([]parser.Option, []parser.Argument, error) {
	var opts []parser.Option
	for _, p := range options {
		sink, err := sinkFor(sc, p)
		if err != nil {
			return nil, nil, err
		}
		var short rune
		if p.Short != "" {
			short, _ = utf8.DecodeRuneInString(p.Short)
		}
		opts = append(opts, parser.Option{
			Name:    p.Name,
			Short:   short,
			Help:    p.Help,
			Meta:    metaOf(p),
			Choices: choicesOf(p.Choices),
			Sink:    sink,
		})
	}
	var args []parser.Argument
	for _, p := range arguments {
		sink, err := sinkFor(sc, p)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, parser.Argument{
			Name:    p.Name,
			Help:    p.Help,
			Meta:    metaOf(p),
			Choices: choicesOf(p.Choices),
			Sink:    sink,
		})
	}
	return opts, args, nil
}

func metaOf(p Param) []string {
	if p.Type == "" {
		return p.Meta
	}
	return append(slices.Clone(p.Meta), "type: "+p.Type)
}

func choicesOf(cs []Choice) []parser.Choice {
	out := make([]parser.Choice, len(cs))
	for i, c := range cs {
		out[i] = parser.Choice{Value: c.Value, Help: c.Help}
	}
	return out
}

func identity[T any](v T) any { return v }

func stringify[T any](v T) any { return fmt.Sprint(v) }

// sinkFor binds a fresh variable of the parameter's type into sc and returns
// the sink writing to it.
func sinkFor(sc *scope, p Param) (*tracked, error) {
	nargs, err := p.Nargs.Nargs()
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", p.Name, err)
	}
	if c, ok := nargs.Count(); ok && c == 0 {
		var on bool
		return sc.bind(p.Name, capture.NewSwitch(&on, true), func() any { return on }), nil
	}
	if p.Unique {
		switch p.Type {
		case "", "string":
			return bindSet[string](sc, p.Name, nargs, identity[string]), nil
		case "int":
			return bindSet[int64](sc, p.Name, nargs, identity[int64]), nil
		case "uint":
			return bindSet[uint64](sc, p.Name, nargs, identity[uint64]), nil
		case "uuid":
			return bindSet[uuid.UUID](sc, p.Name, nargs, stringify[uuid.UUID]), nil
		}
		return nil, fmt.Errorf("parameter %q: unique is not supported for type %q", p.Name, p.Type)
	}
	switch p.Type {
	case "", "string":
		return bind[string](sc, p.Name, nargs, identity[string]), nil
	case "bool":
		return bind[bool](sc, p.Name, nargs, identity[bool]), nil
	case "int":
		return bind[int64](sc, p.Name, nargs, identity[int64]), nil
	case "uint":
		return bind[uint64](sc, p.Name, nargs, identity[uint64]), nil
	case "float":
		return bind[float64](sc, p.Name, nargs, identity[float64]), nil
	case "duration":
		return bind[time.Duration](sc, p.Name, nargs, stringify[time.Duration]), nil
	case "url":
		return bind[*url.URL](sc, p.Name, nargs, stringify[*url.URL]), nil
	case "uuid":
		return bind[uuid.UUID](sc, p.Name, nargs, stringify[uuid.UUID]), nil
	case "semver":
		return bind[*semver.Version](sc, p.Name, nargs, stringify[*semver.Version]), nil
	}
	return nil, fmt.Errorf("parameter %q: unknown type %q", p.Name, p.Type)
}

func bind[T any](sc *scope, name string, nargs matcher.Nargs, plain func(T) any) *tracked {
	if nargs == matcher.Precisely(1) {
		v := new(T)
		return sc.bind(name, capture.NewScalar(v), func() any { return plain(*v) })
	}
	vs := new([]T)
	return sc.bind(name, capture.NewCollection(vs, nargs), func() any {
		out := make([]any, len(*vs))
		for i, v := range *vs {
			out[i] = plain(v)
		}
		return out
	})
}

func bindSet[T comparable](sc *scope, name string, nargs matcher.Nargs, plain func(T) any) *tracked {
	s := new(set.Set[T])
	return sc.bind(name, capture.NewSet(s, nargs), func() any {
		out := make([]any, 0, s.Len())
		for _, v := range s.Slice() {
			out = append(out, plain(v))
		}
		sort.Slice(out, func(i, j int) bool { return fmt.Sprint(out[i]) < fmt.Sprint(out[j]) })
		return out
	})
}
