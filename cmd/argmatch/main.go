// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command argmatch parses command lines against a schema file and reports
// what each declared parameter captured.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/google/shlex"
	"github.com/shayne/yargs"
	"github.com/yeetrun/argot/pkg/env"
	"github.com/yeetrun/argot/pkg/parser"
	"github.com/yeetrun/argot/pkg/schema"
	"gopkg.in/yaml.v3"
	"tailscale.com/types/logger"
)

const schemaEnv = "ARGMATCH_SCHEMA"

type app struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string

	// tokens follow the first "--" and are never seen by the flag parser.
	tokens  []string
	verbose bool
}

func newApp(stdout, stderr io.Writer, getenv func(string) string) *app {
	return &app{stdout: stdout, stderr: stderr, getenv: getenv}
}

func (a *app) handlers() map[string]yargs.SubcommandHandler {
	return map[string]yargs.SubcommandHandler{
		"match": a.handleMatch,
		"split": a.handleSplit,
		"check": a.handleCheck,
	}
}

// run dispatches args, which exclude the binary name.
func (a *app) run(ctx context.Context, args []string) error {
	args, a.tokens = splitDashes(args)
	globalFlags, remaining, err := parseGlobalFlags(args)
	if err != nil {
		return err
	}
	a.verbose = globalFlags.Verbose
	return yargs.RunSubcommands(ctx, remaining, buildHelpConfig(), globalFlagsParsed{}, a.handlers())
}

// parseGlobalFlags consumes the global flags given before the sub-command
// name. Flags after it belong to the sub-command.
func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	i := slices.IndexFunc(args, func(arg string) bool { return !strings.HasPrefix(arg, "-") })
	if i < 0 {
		i = len(args)
	}
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args[:i], yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	remaining := append([]string{}, result.RemainingArgs...)
	return result.Flags, append(remaining, args[i:]...), nil
}

func splitDashes(args []string) (head, tail []string) {
	for i, arg := range args {
		if arg == "--" {
			return args[:i], args[i+1:]
		}
	}
	return args, nil
}

func stripCommand(args []string, name string) []string {
	if len(args) > 0 && args[0] == name {
		return args[1:]
	}
	return args
}

func (a *app) handleMatch(ctx context.Context, args []string) error {
	result, err := yargs.ParseFlags[matchFlagsParsed](stripCommand(args, "match"))
	if err != nil {
		return err
	}
	flags := result.Flags
	tokens := append([]string{}, result.Args...)
	tokens = append(tokens, result.RemainingArgs...)
	tokens = append(tokens, a.tokens...)
	return a.parseAndPrint(flags.Schema, flags.Format, flags.Verbose, tokens)
}

func (a *app) handleSplit(ctx context.Context, args []string) error {
	result, err := yargs.ParseFlags[splitFlagsParsed](stripCommand(args, "split"))
	if err != nil {
		return err
	}
	flags := result.Flags
	lines := append([]string{}, result.Args...)
	lines = append(lines, a.tokens...)
	if len(lines) != 1 {
		return fmt.Errorf("split takes exactly one command line, got %d", len(lines))
	}
	tokens, err := shlex.Split(lines[0])
	if err != nil {
		return fmt.Errorf("split command line: %w", err)
	}
	return a.parseAndPrint(flags.Schema, flags.Format, flags.Verbose, tokens)
}

func (a *app) handleCheck(ctx context.Context, args []string) error {
	result, err := yargs.ParseFlags[checkFlagsParsed](stripCommand(args, "check"))
	if err != nil {
		return err
	}
	flags := result.Flags
	s, prog, err := a.load(flags.Schema, false)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s: ok\n", s.Program)
	if !flags.Verbose {
		return nil
	}
	return exitStatus(prog.Parser.ParseTokens([]string{"--" + parser.HelpName}))
}

func (a *app) load(path string, verbose bool) (*schema.Schema, *schema.Program, error) {
	if path == "" {
		path = a.getenv(schemaEnv)
	}
	if path == "" {
		return nil, nil, fmt.Errorf("no schema given: use --schema or set %s", schemaEnv)
	}
	s, err := schema.Load(path)
	if err != nil {
		return nil, nil, err
	}
	prog, err := schema.Build(s)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	prog.Parser.SetInterface(&parser.Console{Out: a.stdout, Err: a.stderr})
	if verbose || a.verbose {
		prog.Parser.SetLogf(logger.Logf(log.New(a.stderr, "", 0).Printf))
	}
	return s, prog, nil
}

func (a *app) parseAndPrint(path, format string, verbose bool, tokens []string) error {
	if format == "" {
		format = "yaml"
	}
	if format != "yaml" && format != "json" && format != "env" {
		return fmt.Errorf("unknown output format %q: want yaml, json or env", format)
	}
	_, prog, err := a.load(path, verbose)
	if err != nil {
		return err
	}
	if err := prog.Parser.ParseTokens(tokens); err != nil {
		return exitStatus(err)
	}
	snap := prog.Values.Snapshot()
	switch format {
	case "json":
		b, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, string(b))
	case "env":
		if err := env.Write(a.stdout, "", snap.Values); err != nil {
			return err
		}
		if snap.Command != "" {
			return env.Write(a.stdout, snap.Command, snap.CommandValues)
		}
	default:
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	}
	return nil
}

// exitStatus maps a shown help to success.
func exitStatus(err error) error {
	var ee *parser.ExitError
	if errors.As(err, &ee) && ee.Code == 0 {
		return nil
	}
	return err
}

func printCLIError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var ee *parser.ExitError
	if errors.As(err, &ee) {
		// Already reported by the parser's interface.
		return
	}
	fmt.Fprintln(w, err)
}

func main() {
	a := newApp(os.Stdout, os.Stderr, os.Getenv)
	err := a.run(context.Background(), os.Args[1:])
	if err == nil {
		return
	}
	printCLIError(os.Stderr, err)
	var ee *parser.ExitError
	if errors.As(err, &ee) {
		os.Exit(ee.Code)
	}
	os.Exit(1)
}
