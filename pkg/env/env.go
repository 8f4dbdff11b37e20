// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env renders captured values as shell variable assignments.
package env

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Name joins parts into a variable name: upper case, with '-' and the
// separators between parts turned into '_'. Empty parts are skipped.
func Name(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, strings.ToUpper(strings.ReplaceAll(p, "-", "_")))
		}
	}
	return strings.Join(kept, "_")
}

// Quote returns s in a form a POSIX shell reads back as the same word.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, unsafe) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func unsafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("-_./:@%+,=", r)
}

func render(v any) string {
	vs, ok := v.([]any)
	if !ok {
		return fmt.Sprint(v)
	}
	parts := make([]string, len(vs))
	for i, x := range vs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, " ")
}

// Write writes one NAME=value line per entry of vars, sorted by name.
// Multiple values are joined by single spaces.
func Write(w io.Writer, prefix string, vars map[string]any) error {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s=%s\n", Name(prefix, name), Quote(render(vars[name]))); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}
