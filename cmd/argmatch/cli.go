// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/shayne/yargs"
)

type globalFlagsParsed struct {
	Verbose bool `flag:"verbose" short:"v" help:"Trace matching to stderr"`
}

type matchFlagsParsed struct {
	Schema  string `flag:"schema" short:"s" help:"Schema file, .yaml, .toml or .json (ARGMATCH_SCHEMA)"`
	Format  string `flag:"format" short:"f" help:"Output format: yaml, json or env"`
	Verbose bool   `flag:"verbose" short:"v" help:"Trace matching to stderr"`
}

type splitFlagsParsed struct {
	Schema  string `flag:"schema" short:"s" help:"Schema file, .yaml, .toml or .json (ARGMATCH_SCHEMA)"`
	Format  string `flag:"format" short:"f" help:"Output format: yaml, json or env"`
	Verbose bool   `flag:"verbose" short:"v" help:"Trace matching to stderr"`
}

type checkFlagsParsed struct {
	Schema  string `flag:"schema" short:"s" help:"Schema file, .yaml, .toml or .json (ARGMATCH_SCHEMA)"`
	Verbose bool   `flag:"verbose" short:"v" help:"Print the generated help text"`
}

func buildHelpConfig() yargs.HelpConfig {
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "argmatch",
			Description: "Parse command lines against a declarative schema and print what each parameter captured.",
			Examples: []string{
				"argmatch match --schema tool.yaml -- -v add 1 2",
				"argmatch split --schema tool.toml 'add --level=3 1 2'",
				"argmatch check --schema tool.json",
			},
		},
		SubCommands: map[string]yargs.SubCommandInfo{
			"match": {
				Name:        "match",
				Description: "Parse the tokens after -- and print the captured values",
				Usage:       "[--schema FILE] [--format yaml|json|env] -- TOKEN...",
				Examples: []string{
					"argmatch match -s tool.yaml -- add 1 2",
					"argmatch match -s tool.yaml -f json -- --level 3 add 4",
					"eval \"$(argmatch match -s tool.yaml -f env -- \"$@\")\"",
				},
			},
			"split": {
				Name:        "split",
				Description: "Split a shell-quoted command line into tokens and parse them",
				Usage:       "[--schema FILE] [--format yaml|json|env] 'COMMAND LINE'",
				Examples: []string{
					"argmatch split -s tool.yaml 'tag -l \"two words\"'",
				},
			},
			"check": {
				Name:        "check",
				Description: "Validate a schema and build its parser",
				Usage:       "[--schema FILE]",
				Examples: []string{
					"argmatch check -s tool.yaml -v",
				},
			},
		},
	}
}
