// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schema describes a command line declaratively, in YAML, TOML or
// JSON, and builds the parser for it.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/yeetrun/argot/pkg/matcher"
	"gopkg.in/yaml.v3"
)

//go:embed schema.schema.json
var schemaData []byte

var compiled *jsonschema.Schema

func init() {
	var err error
	compiled, err = jsonschema.CompileString("schema.schema.json", string(schemaData))
	if err != nil {
		panic(fmt.Errorf("compile command schema: %w", err))
	}
}

// Format is the encoding of a schema document.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("unknown schema format for %q: want .yaml, .yml, .toml or .json", path)
}

// Arity is the textual nargs of a parameter: a count, "*" or "+". Empty
// means one value.
type Arity string

// UnmarshalJSON accepts both a string and a bare number.
func (a *Arity) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(b, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Arity(s)
		return nil
	}
	*a = Arity(b)
	return nil
}

// Nargs parses the arity.
func (a Arity) Nargs() (matcher.Nargs, error) {
	if a == "" {
		return matcher.Precisely(1), nil
	}
	return matcher.ParseNargs(string(a))
}

// Choice documents one accepted value.
type Choice struct {
	Value string `json:"value"`
	Help  string `json:"help,omitempty"`
}

// Param is an option or a positional argument. Short applies to options
// only.
type Param struct {
	Name    string   `json:"name"`
	Short   string   `json:"short,omitempty"`
	Nargs   Arity    `json:"nargs,omitempty"`
	Type    string   `json:"type,omitempty"`
	Unique  bool     `json:"unique,omitempty"`
	Help    string   `json:"help,omitempty"`
	Meta    []string `json:"meta,omitempty"`
	Choices []Choice `json:"choices,omitempty"`
}

// Command is one sub-command.
type Command struct {
	Help      string  `json:"help,omitempty"`
	Options   []Param `json:"options,omitempty"`
	Arguments []Param `json:"arguments,omitempty"`
}

// Schema is a whole command line. When Branch is set, it is the argument
// whose value selects one of Commands.
type Schema struct {
	Program   string             `json:"program"`
	Options   []Param            `json:"options,omitempty"`
	Arguments []Param            `json:"arguments,omitempty"`
	Branch    *Param             `json:"branch,omitempty"`
	Commands  map[string]Command `json:"commands,omitempty"`
}

// Load reads and validates the schema at path.
func Load(path string) (*Schema, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	s, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode parses and validates a schema document.
func Decode(data []byte, format Format) (*Schema, error) {
	var doc any
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case TOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		doc = m
	case JSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown schema format %q", format)
	}

	// Round-trip through JSON so every format validates and decodes the same
	// way.
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalize schema: %w", err)
	}
	var generic any
	if err := json.Unmarshal(normalized, &generic); err != nil {
		return nil, fmt.Errorf("normalize schema: %w", err)
	}
	if err := compiled.Validate(generic); err != nil {
		return nil, fmt.Errorf("validate schema: %w", err)
	}
	var s Schema
	if err := json.Unmarshal(normalized, &s); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return &s, nil
}
