// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schema

import (
	"fmt"

	"github.com/yeetrun/argot/pkg/parser"
)

// tracked wraps a sink and remembers whether its parameter appeared.
type tracked struct {
	parser.Capturable
	matched bool
	get     func() any
}

func (t *tracked) Matched() {
	t.matched = true
	t.Capturable.Matched()
}

func (t *tracked) Render() string {
	if r, ok := t.Capturable.(parser.Renderer); ok {
		return r.Render()
	}
	return fmt.Sprint(t.get())
}

type scope struct {
	params map[string]*tracked
}

func newScope() *scope {
	return &scope{params: map[string]*tracked{}}
}

func (sc *scope) bind(name string, sink parser.Capturable, get func() any) *tracked {
	t := &tracked{Capturable: sink, get: get}
	sc.params[name] = t
	return t
}

func (sc *scope) snapshot() map[string]any {
	out := map[string]any{}
	for name, t := range sc.params {
		if t.matched {
			out[name] = t.get()
		}
	}
	return out
}

// Values holds everything a built Program captured.
type Values struct {
	root   *scope
	branch *tracked
	subs   map[string]*scope
}

// Snapshot is the captured state after a parse. Only parameters that
// appeared in the input are present.
type Snapshot struct {
	Values        map[string]any `json:"values" yaml:"values"`
	Command       string         `json:"command,omitempty" yaml:"command,omitempty"`
	CommandValues map[string]any `json:"command_values,omitempty" yaml:"command_values,omitempty"`
}

// Snapshot returns the captured values. The branch argument, when matched,
// also names the sub-command whose values are reported.
func (v *Values) Snapshot() Snapshot {
	s := Snapshot{Values: v.root.snapshot()}
	if v.branch == nil || !v.branch.matched {
		return s
	}
	s.Command = v.branch.Render()
	if sc, ok := v.subs[s.Command]; ok {
		s.CommandValues = sc.snapshot()
	}
	return s
}
