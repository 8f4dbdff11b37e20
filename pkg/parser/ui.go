// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/yeetrun/argot/pkg/tui"
)

// UserInterface receives everything a GeneralParser shows the user.
type UserInterface interface {
	// Print shows informational output such as help text.
	Print(msg string)
	// PrintError shows a parse failure.
	PrintError(err error)
	// PrintErrorContext shows the tokens with a marker under offset.
	PrintErrorContext(offset int, tokens []string)
}

// Console is a UserInterface writing help to stdout and errors to stderr.
type Console struct {
	Out io.Writer
	Err io.Writer

	red tui.Colorizer
}

// NewConsole returns a Console on the process's stdout and stderr. Errors
// are red when stderr is a color-capable terminal.
func NewConsole() *Console {
	return &Console{
		Out: os.Stdout,
		Err: os.Stderr,
		red: tui.NewColorizer(tui.ColorEnabled(os.Stderr), color.FgRed, color.Bold),
	}
}

func (c *Console) Print(msg string) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	io.WriteString(c.Out, msg)
}

func (c *Console) PrintError(err error) {
	fmt.Fprintf(c.Err, "%s %v\n", c.red.Wrap("error:"), err)
}

func (c *Console) PrintErrorContext(offset int, tokens []string) {
	line, caret := ErrorContext(offset, tokens)
	fmt.Fprintln(c.Err, line)
	fmt.Fprintln(c.Err, c.red.Wrap(caret))
}

// ErrorContext renders tokens joined by single spaces and a second line with
// a caret under the byte offset, where offsets count token bytes only. An
// offset at or past the end of input points one column past the last token.
func ErrorContext(offset int, tokens []string) (line, caret string) {
	line = strings.Join(tokens, " ")
	col := offset
	if len(tokens) > 0 {
		col += len(tokens) - 1
	}
	start := 0
	for i, t := range tokens {
		if offset < start+len(t) {
			col = offset + i
			break
		}
		start += len(t)
	}
	return line, strings.Repeat(" ", col) + "^"
}
