// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/yeetrun/argot/pkg/matcher"
)

const helpText = "Show this help message and exit."

// Printer renders usage and help text for one parser.
type Printer struct {
	options   []Option
	arguments []Argument
}

// NewPrinter returns a printer documenting the given parameters along with
// the help option.
func NewPrinter(options []Option, arguments []Argument) *Printer {
	pr := &Printer{arguments: arguments}
	pr.options = append(pr.options, Option{
		Name:  HelpName,
		Short: HelpShort,
		Help:  helpText,
		Sink:  helpSink{},
	})
	pr.options = append(pr.options, options...)
	return pr
}

// helpSink only describes the help option's arity; it is never fed.
type helpSink struct{}

func (helpSink) Nargs() matcher.Nargs   { return matcher.Precisely(0) }
func (helpSink) Matched()               {}
func (helpSink) Capture(_ string) error { return nil }

// valueGrammar renders the values a parameter takes, using metavar for each.
func valueGrammar(n matcher.Nargs, metavar string) string {
	if c, ok := n.Count(); ok {
		return strings.TrimSpace(strings.Repeat(metavar+" ", int(c)))
	}
	if n.IsAtLeastOne() {
		return metavar + " [...]"
	}
	return "[" + metavar + " ...]"
}

func optionFlag(o Option) string {
	if o.Short != 0 {
		return "-" + string(o.Short)
	}
	return "--" + o.Name
}

func optionMetavar(o Option) string {
	if len(o.Choices) > 0 {
		return choiceSet(o.Choices)
	}
	return strings.ToUpper(strings.ReplaceAll(o.Name, "-", "_"))
}

func argumentMetavar(a Argument) string {
	if len(a.Choices) > 0 {
		return choiceSet(a.Choices)
	}
	return a.Name
}

func choiceSet(cs []Choice) string {
	vals := make([]string, len(cs))
	for i, c := range cs {
		vals[i] = c.Value
	}
	return "{" + strings.Join(vals, ",") + "}"
}

// Usage returns the one-line usage summary.
func (pr *Printer) Usage(program string) string {
	parts := []string{"usage:", program}
	for _, o := range pr.options {
		grammar := optionFlag(o)
		if v := valueGrammar(o.Sink.Nargs(), optionMetavar(o)); v != "" {
			grammar += " " + v
		}
		parts = append(parts, "["+grammar+"]")
	}
	for _, a := range pr.arguments {
		if v := valueGrammar(a.Sink.Nargs(), argumentMetavar(a)); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

func describe(help string, meta []string) string {
	if len(meta) == 0 {
		return help
	}
	m := "(" + strings.Join(meta, ", ") + ")"
	if help == "" {
		return m
	}
	return help + " " + m
}

// Help returns the full help text: usage, then the positional arguments,
// then the options.
func (pr *Printer) Help(program string) string {
	var b strings.Builder
	b.WriteString(pr.Usage(program))
	b.WriteString("\n")

	if len(pr.arguments) > 0 {
		b.WriteString("\npositional arguments:\n")
		w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, a := range pr.arguments {
			fmt.Fprintf(w, "  %s\t%s\n", argumentMetavar(a), describe(a.Help, a.Meta))
			writeChoices(w, a.Choices)
		}
		w.Flush()
	}

	b.WriteString("\noptions:\n")
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, o := range pr.options {
		label := "--" + o.Name
		if o.Short != 0 {
			label = "-" + string(o.Short) + ", " + label
		}
		if v := valueGrammar(o.Sink.Nargs(), optionMetavar(o)); v != "" {
			label += " " + v
		}
		fmt.Fprintf(w, "  %s\t%s\n", label, describe(o.Help, o.Meta))
		writeChoices(w, o.Choices)
	}
	w.Flush()
	return b.String()
}

func writeChoices(w *tabwriter.Writer, cs []Choice) {
	for _, c := range cs {
		fmt.Fprintf(w, "    %s\t%s\n", c.Value, c.Help)
	}
}

// PrintHelp writes the help text to ui.
func (pr *Printer) PrintHelp(program string, ui UserInterface) {
	ui.Print(pr.Help(program))
}
