// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Summer adds up its arguments.
//
//	summer --initial 10 1 2 3
package main

import (
	"fmt"
	"log"

	"github.com/yeetrun/argot/pkg/capture"
	"github.com/yeetrun/argot/pkg/matcher"
	"github.com/yeetrun/argot/pkg/parser"
)

func main() {
	var (
		initial int64
		items   []int64
		verbose bool
	)
	unit, err := parser.NewParseUnit(
		[]parser.Option{
			{Name: "initial", Short: 'i', Help: "Value to start from.", Sink: capture.NewScalar(&initial)},
			{Name: "verbose", Short: 'v', Help: "Show each step.", Sink: capture.NewSwitch(&verbose, true)},
		},
		[]parser.Argument{
			{Name: "items", Help: "Numbers to add.", Sink: capture.NewCollection(&items, matcher.AtLeastOne)},
		},
		"",
	)
	if err != nil {
		log.Fatalf("summer: %v", err)
	}
	p, err := parser.NewCommand("summer", unit)
	if err != nil {
		log.Fatalf("summer: %v", err)
	}
	p.Parse()

	sum := initial
	for _, v := range items {
		if verbose {
			fmt.Printf("%d + %d\n", sum, v)
		}
		sum += v
	}
	fmt.Println(sum)
}
