// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Subcommand folds numbers with the operation named by its first argument.
//
//	subcommand add 1 2 3
//	subcommand multiply --initial 2 4 5
package main

import (
	"fmt"
	"log"

	"github.com/yeetrun/argot/pkg/capture"
	"github.com/yeetrun/argot/pkg/matcher"
	"github.com/yeetrun/argot/pkg/parser"
)

type operation int

const (
	add operation = iota
	multiply
)

func (o operation) String() string {
	if o == multiply {
		return "multiply"
	}
	return "add"
}

func (o *operation) UnmarshalText(b []byte) error {
	switch string(b) {
	case "add":
		*o = add
	case "multiply":
		*o = multiply
	default:
		return fmt.Errorf("unknown operation %q", b)
	}
	return nil
}

type fold struct {
	initial *int64
	items   []int64
}

func (f *fold) unit() (*parser.ParseUnit, error) {
	return parser.NewParseUnit(
		[]parser.Option{
			{Name: "initial", Help: "Value to start from.", Sink: capture.NewOptional(&f.initial)},
		},
		[]parser.Argument{
			{Name: "items", Help: "Numbers to fold.", Sink: capture.NewCollection(&f.items, matcher.Any)},
		},
		"",
	)
}

func main() {
	var (
		verbose bool
		op      operation
		folds   = map[operation]*fold{add: {}, multiply: {}}
	)
	root, err := parser.NewParseUnit(
		[]parser.Option{
			{Name: "verbose", Short: 'v', Help: "Show each step.", Sink: capture.NewSwitch(&verbose, true)},
		},
		[]parser.Argument{
			{
				Name: "operation",
				Help: "How to combine the numbers.",
				Choices: []parser.Choice{
					{Value: "add", Help: "Sum the numbers."},
					{Value: "multiply", Help: "Multiply the numbers."},
				},
				Sink: capture.NewScalar(&op),
			},
		},
		"operation",
	)
	if err != nil {
		log.Fatalf("subcommand: %v", err)
	}
	subs := map[string]*parser.ParseUnit{}
	for o, f := range folds {
		u, err := f.unit()
		if err != nil {
			log.Fatalf("subcommand: %v", err)
		}
		subs[o.String()] = u
	}
	p, err := parser.NewSubCommand("subcommand", root, subs)
	if err != nil {
		log.Fatalf("subcommand: %v", err)
	}
	p.Parse()

	f := folds[op]
	acc := int64(0)
	if op == multiply {
		acc = 1
	}
	if f.initial != nil {
		acc = *f.initial
	}
	for _, v := range f.items {
		next := acc + v
		if op == multiply {
			next = acc * v
		}
		if verbose {
			fmt.Printf("%s %d %d = %d\n", op, acc, v, next)
		}
		acc = next
	}
	fmt.Println(acc)
}
