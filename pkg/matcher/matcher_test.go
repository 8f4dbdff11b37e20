// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matcher

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// numbered returns the tokens "0", "1", ... "n-1".
func numbered(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

// offsetsFrom attributes tokens laid end to end starting at start.
func offsetsFrom(start int, tokens []string) []OffsetValue {
	out := []OffsetValue{}
	for _, t := range tokens {
		out = append(out, OffsetValue{Offset: start, Token: t})
		start += len(t)
	}
	return out
}

func feedAll(t *testing.T, m *TokenMatcher, tokens ...string) {
	t.Helper()
	for _, tok := range tokens {
		if err := m.Feed(tok); err != nil {
			t.Fatalf("Feed(%q) = %v", tok, err)
		}
	}
}

func mustNew(t *testing.T, options []OptionConfig, arguments []ArgumentConfig) *TokenMatcher {
	t.Helper()
	m, err := New(options, arguments)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return m
}

func normalize(ms []MatchTokens) []MatchTokens {
	for i := range ms {
		if ms[i].Values == nil {
			ms[i].Values = []OffsetValue{}
		}
	}
	return ms
}

func TestNewDuplicates(t *testing.T) {
	tests := []struct {
		name    string
		options []OptionConfig
		want    *ConfigError
	}{
		{
			name: "duplicate long name",
			options: []OptionConfig{
				{Name: "abc", Bound: RangeBound(1, 1)},
				{Name: "abc", Short: 'a', Bound: RangeBound(1, 1)},
			},
			want: &ConfigError{Kind: DuplicateOption, Name: "abc"},
		},
		{
			name: "duplicate short",
			options: []OptionConfig{
				{Name: "verbose", Short: 'v', Bound: LowerBound(0)},
				{Name: "item", Short: 'v', Bound: LowerBound(0)},
			},
			want: &ConfigError{Kind: DuplicateShortOption, Short: 'v'},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.options, nil)
			var got *ConfigError
			if !errors.As(err, &got) {
				t.Fatalf("New() error = %v, want %v", err, tt.want)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("New() error mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOptionUpperBound(t *testing.T) {
	tests := []struct {
		bound  Bound
		feed   int
		wantOK bool
	}{
		{RangeBound(0, 0), 0, true},
		{RangeBound(0, 0), 1, false},
		{RangeBound(0, 1), 0, true},
		{RangeBound(0, 1), 1, true},
		{RangeBound(0, 1), 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.bound.String()+"/"+strconv.Itoa(tt.feed), func(t *testing.T) {
			m := mustNew(t, []OptionConfig{{Name: "initial", Bound: tt.bound}}, nil)
			feedAll(t, m, "--initial")
			tokens := numbered(tt.feed)
			for i, tok := range tokens {
				err := m.Feed(tok)
				if !tt.wantOK && i == len(tokens)-1 {
					if !errors.Is(err, &MatchError{Kind: ArgumentsExhausted}) {
						t.Fatalf("Feed(%q) = %v, want ArgumentsExhausted", tok, err)
					}
					return
				}
				if err != nil {
					t.Fatalf("Feed(%q) = %v", tok, err)
				}
			}
			got, err := m.Close()
			if err != nil {
				t.Fatalf("Close() = %v", err)
			}
			want := []MatchTokens{{Name: "initial", Values: offsetsFrom(9, tokens)}}
			if diff := cmp.Diff(want, normalize(got.All())); diff != "" {
				t.Fatalf("matches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOptionLowerBound(t *testing.T) {
	tests := []struct {
		bound  Bound
		feed   int
		wantOK bool
	}{
		{LowerBound(0), 0, true},
		{LowerBound(0), 1, true},
		{LowerBound(1), 0, false},
		{LowerBound(1), 1, true},
		{LowerBound(1), 2, true},
		{RangeBound(0, 3), 0, true},
		{RangeBound(0, 3), 1, true},
		{RangeBound(1, 3), 0, false},
		{RangeBound(1, 3), 1, true},
		{RangeBound(1, 3), 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.bound.String()+"/"+strconv.Itoa(tt.feed), func(t *testing.T) {
			m := mustNew(t, []OptionConfig{{Name: "initial", Bound: tt.bound}}, nil)
			tokens := numbered(tt.feed)
			feedAll(t, m, append([]string{"--initial"}, tokens...)...)
			got, err := m.Close()
			if !tt.wantOK {
				want := &MatchError{Kind: Undercomplete, Name: "initial", Offset: tt.feed + 9}
				if diff := cmp.Diff(want, err); diff != "" {
					t.Fatalf("Close() error mismatch (-want +got):\n%s", diff)
				}
				if got.Len() != 0 {
					t.Fatalf("Close() matches = %#v, want none", got.All())
				}
				return
			}
			if err != nil {
				t.Fatalf("Close() = %v", err)
			}
			want := []MatchTokens{{Name: "initial", Values: offsetsFrom(9, tokens)}}
			if diff := cmp.Diff(want, normalize(got.All())); diff != "" {
				t.Fatalf("matches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOptionUnlimited(t *testing.T) {
	for _, n := range []int{0, 1, 2, 10, 100} {
		m := mustNew(t, []OptionConfig{{Name: "initial", Bound: LowerBound(0)}}, nil)
		tokens := numbered(n)
		feedAll(t, m, append([]string{"--initial"}, tokens...)...)
		got, err := m.Close()
		if err != nil {
			t.Fatalf("Close() with %d tokens = %v", n, err)
		}
		want := []MatchTokens{{Name: "initial", Values: offsetsFrom(9, tokens)}}
		if diff := cmp.Diff(want, normalize(got.All())); diff != "" {
			t.Fatalf("%d tokens: matches mismatch (-want +got):\n%s", n, diff)
		}
	}
}

func TestOptionRejected(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   *MatchError
	}{
		{
			name:   "unknown long",
			tokens: []string{"--moot"},
			want:   &MatchError{Kind: InvalidOption, Name: "moot"},
		},
		{
			name:   "repeated long",
			tokens: []string{"--verbose", "--verbose"},
			want:   &MatchError{Kind: InvalidOption, Name: "verbose", Offset: 9},
		},
		{
			name:   "unknown short",
			tokens: []string{"-f"},
			want:   &MatchError{Kind: InvalidShortOption, Short: 'f'},
		},
		{
			name:   "repeated short",
			tokens: []string{"-v", "-v"},
			want:   &MatchError{Kind: InvalidShortOption, Short: 'v', Offset: 2},
		},
		{
			name:   "short repeated via long",
			tokens: []string{"--verbose", "-v"},
			want:   &MatchError{Kind: InvalidShortOption, Short: 'v', Offset: 9},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustNew(t, []OptionConfig{{Name: "verbose", Short: 'v', Bound: LowerBound(0)}}, nil)
			var err error
			for _, tok := range tt.tokens {
				if err = m.Feed(tok); err != nil {
					break
				}
			}
			if diff := cmp.Diff(tt.want, err); diff != "" {
				t.Fatalf("Feed() error mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOptionShort(t *testing.T) {
	tests := []struct {
		tokens      []string
		wantVerbose bool
		wantFlag    []OffsetValue // nil means not matched
	}{
		{[]string{"-v"}, true, nil},
		{[]string{"-f"}, false, []OffsetValue{}},
		{[]string{"-f", "a"}, false, []OffsetValue{{2, "a"}}},
		{[]string{"-f", "a", "bc"}, false, []OffsetValue{{2, "a"}, {3, "bc"}}},
		{[]string{"-vf"}, true, []OffsetValue{}},
		{[]string{"-vf", "a"}, true, []OffsetValue{{3, "a"}}},
		{[]string{"-vf", "a", "bc"}, true, []OffsetValue{{3, "a"}, {4, "bc"}}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.tokens, " "), func(t *testing.T) {
			m := mustNew(t, []OptionConfig{
				{Name: "verbose", Short: 'v', Bound: RangeBound(0, 0)},
				{Name: "flag", Short: 'f', Bound: LowerBound(0)},
			}, nil)
			feedAll(t, m, tt.tokens...)
			got, err := m.Close()
			if err != nil {
				t.Fatalf("Close() = %v", err)
			}
			wantLen := 0
			if tt.wantVerbose {
				wantLen++
				v, ok := got.Get("verbose")
				if !ok || len(v.Values) != 0 {
					t.Fatalf("verbose = %#v, %v; want matched with no values", v, ok)
				}
			}
			if tt.wantFlag != nil {
				wantLen++
				f, ok := got.Get("flag")
				if !ok {
					t.Fatalf("flag not matched")
				}
				if diff := cmp.Diff(tt.wantFlag, normalize([]MatchTokens{f})[0].Values); diff != "" {
					t.Fatalf("flag values mismatch (-want +got):\n%s", diff)
				}
			}
			if got.Len() != wantLen {
				t.Fatalf("Len() = %d, want %d", got.Len(), wantLen)
			}
		})
	}
}

func TestOptionShortTooFew(t *testing.T) {
	m := mustNew(t, []OptionConfig{
		{Name: "verbose", Short: 'v', Bound: LowerBound(1)},
		{Name: "flag", Short: 'f', Bound: LowerBound(0)},
	}, nil)
	err := m.Feed("-vf")
	want := &MatchError{Kind: Undercomplete, Name: "verbose"}
	if diff := cmp.Diff(want, err); diff != "" {
		t.Fatalf("Feed() error mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionEqualsDelimiter(t *testing.T) {
	tests := []struct {
		tokens []string
		want   *OffsetValue // nil means ArgumentsExhausted on the last token
	}{
		{[]string{"--initial="}, &OffsetValue{10, ""}},
		{[]string{"--initial=a"}, &OffsetValue{10, "a"}},
		{[]string{"--initial=a b "}, &OffsetValue{10, "a b "}},
		{[]string{"--initial=a=b"}, &OffsetValue{10, "a=b"}},
		{[]string{"--initial=", "x"}, nil},
		{[]string{"--initial=a", "x"}, nil},
		{[]string{"-i="}, &OffsetValue{3, ""}},
		{[]string{"-i=a"}, &OffsetValue{3, "a"}},
		{[]string{"-i=a b c"}, &OffsetValue{3, "a b c"}},
		{[]string{"-i=", "x"}, nil},
		{[]string{"-i=a", "x"}, nil},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.tokens, " "), func(t *testing.T) {
			m := mustNew(t, []OptionConfig{{Name: "initial", Short: 'i', Bound: LowerBound(0)}}, nil)
			var err error
			for _, tok := range tt.tokens {
				if err != nil {
					t.Fatalf("Feed() = %v before the last token", err)
				}
				err = m.Feed(tok)
			}
			if tt.want == nil {
				if !errors.Is(err, &MatchError{Kind: ArgumentsExhausted}) {
					t.Fatalf("Feed() = %v, want ArgumentsExhausted", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Feed() = %v", err)
			}
			got, err := m.Close()
			if err != nil {
				t.Fatalf("Close() = %v", err)
			}
			want := []MatchTokens{{Name: "initial", Values: []OffsetValue{*tt.want}}}
			if diff := cmp.Diff(want, got.All()); diff != "" {
				t.Fatalf("matches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOptionDashedName(t *testing.T) {
	tests := []struct {
		tokens []string
		limit  uint8
		want   []OffsetValue
	}{
		{[]string{"--super-verbose"}, 0, []OffsetValue{}},
		{[]string{"--super-verbose="}, 1, []OffsetValue{{16, ""}}},
		{[]string{"--super-verbose=a"}, 1, []OffsetValue{{16, "a"}}},
		{[]string{"--super-verbose", "a"}, 1, []OffsetValue{{15, "a"}}},
		{[]string{"--super-verbose", "a", "b"}, 2, []OffsetValue{{15, "a"}, {16, "b"}}},
		{[]string{"-s"}, 0, []OffsetValue{}},
		{[]string{"-s="}, 1, []OffsetValue{{3, ""}}},
		{[]string{"-s=a"}, 1, []OffsetValue{{3, "a"}}},
		{[]string{"-s", "a"}, 1, []OffsetValue{{2, "a"}}},
		{[]string{"-s", "a", "b"}, 2, []OffsetValue{{2, "a"}, {3, "b"}}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.tokens, " "), func(t *testing.T) {
			m := mustNew(t, []OptionConfig{{Name: "super-verbose", Short: 's', Bound: RangeBound(0, tt.limit)}}, nil)
			feedAll(t, m, tt.tokens...)
			got, err := m.Close()
			if err != nil {
				t.Fatalf("Close() = %v", err)
			}
			want := []MatchTokens{{Name: "super-verbose", Values: tt.want}}
			if diff := cmp.Diff(want, normalize(got.All())); diff != "" {
				t.Fatalf("matches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOptionCanClose(t *testing.T) {
	tests := []struct {
		bound Bound
		feed  int
		want  bool
	}{
		{LowerBound(0), 0, true},
		{LowerBound(0), 1, true},
		{LowerBound(1), 0, false},
		{LowerBound(1), 1, true},
		{RangeBound(0, 1), 0, true},
		{RangeBound(0, 1), 1, true},
		{RangeBound(1, 1), 0, false},
		{RangeBound(1, 1), 1, true},
	}
	for _, tt := range tests {
		m := mustNew(t, []OptionConfig{{Name: "initial", Bound: tt.bound}}, nil)
		if !m.CanClose() {
			t.Fatalf("CanClose() = false before any tokens")
		}
		feedAll(t, m, append([]string{"--initial"}, numbered(tt.feed)...)...)
		if got := m.CanClose(); got != tt.want {
			t.Errorf("%v fed %d: CanClose() = %v, want %v", tt.bound, tt.feed, got, tt.want)
		}
	}
}

func TestArgumentUpperBound(t *testing.T) {
	tests := []struct {
		bound   Bound
		feed    int
		wantErr *MatchError
	}{
		{RangeBound(0, 0), 0, nil},
		{RangeBound(0, 0), 1, &MatchError{Kind: Overcomplete, Name: "item", Offset: 1}},
		{RangeBound(0, 1), 0, nil},
		{RangeBound(0, 1), 1, nil},
		{RangeBound(0, 1), 2, &MatchError{Kind: ArgumentsExhausted, Offset: 1}},
		{RangeBound(1, 1), 0, &MatchError{Kind: Undercomplete, Name: "item"}},
		{RangeBound(1, 1), 1, nil},
		{RangeBound(1, 1), 2, &MatchError{Kind: ArgumentsExhausted, Offset: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.bound.String()+"/"+strconv.Itoa(tt.feed), func(t *testing.T) {
			m := mustNew(t, nil, []ArgumentConfig{{Name: "item", Bound: tt.bound}})
			tokens := numbered(tt.feed)
			var err error
			for _, tok := range tokens {
				if err = m.Feed(tok); err != nil {
					break
				}
			}
			if err == nil {
				var got *Matches
				got, err = m.Close()
				if err == nil {
					want := []MatchTokens{{Name: "item", Values: offsetsFrom(0, tokens)}}
					if diff := cmp.Diff(want, normalize(got.All())); diff != "" {
						t.Fatalf("matches mismatch (-want +got):\n%s", diff)
					}
				}
			}
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if tt.wantErr != nil {
				if diff := cmp.Diff(tt.wantErr, err); diff != "" {
					t.Fatalf("error mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestArgumentZeroArityOverfull(t *testing.T) {
	m := mustNew(t, nil, []ArgumentConfig{{Name: "x", Bound: BoundOf(Precisely(0))}})
	feedAll(t, m, "a")
	err := m.Feed("b")
	want := &MatchError{Kind: Overcomplete, Name: "x", Offset: 1}
	if diff := cmp.Diff(want, err); diff != "" {
		t.Fatalf("Feed() error mismatch (-want +got):\n%s", diff)
	}
	if _, err := m.Close(); err != nil {
		t.Fatalf("Close() after a failed feed = %v", err)
	}
}

func TestArgumentLowerBound(t *testing.T) {
	for _, n := range []int{0, 1, 2, 10, 100} {
		m := mustNew(t, nil, []ArgumentConfig{{Name: "item", Bound: LowerBound(1)}})
		tokens := numbered(n)
		feedAll(t, m, tokens...)
		got, err := m.Close()
		if n == 0 {
			want := &MatchError{Kind: Undercomplete, Name: "item"}
			if diff := cmp.Diff(want, err); diff != "" {
				t.Fatalf("Close() error mismatch (-want +got):\n%s", diff)
			}
			if got.Len() != 0 {
				t.Fatalf("Close() matches = %#v, want none", got.All())
			}
			continue
		}
		if err != nil {
			t.Fatalf("Close() with %d tokens = %v", n, err)
		}
		want := []MatchTokens{{Name: "item", Values: offsetsFrom(0, tokens)}}
		if diff := cmp.Diff(want, got.All()); diff != "" {
			t.Fatalf("%d tokens: matches mismatch (-want +got):\n%s", n, diff)
		}
	}
}

func TestArgumentsMultiple(t *testing.T) {
	m := mustNew(t, nil, []ArgumentConfig{
		{Name: "arg1", Bound: RangeBound(1, 2)},
		{Name: "arg2", Bound: LowerBound(1)},
	})
	feedAll(t, m, "a", "b", "c")
	got, err := m.Close()
	if err != nil {
		t.Fatalf("Close() = %v", err)
	}
	want := []MatchTokens{
		{Name: "arg1", Values: []OffsetValue{{0, "a"}, {1, "b"}}},
		{Name: "arg2", Values: []OffsetValue{{2, "c"}}},
	}
	if diff := cmp.Diff(want, got.All()); diff != "" {
		t.Fatalf("matches mismatch (-want +got):\n%s", diff)
	}
}

func TestArgumentsGreedyPredecessor(t *testing.T) {
	m := mustNew(t, nil, []ArgumentConfig{
		{Name: "arg1", Bound: LowerBound(1)},
		{Name: "arg2", Bound: RangeBound(1, 1)},
	})
	feedAll(t, m, "value1", "value2")
	if m.CanClose() {
		t.Fatalf("CanClose() = true with arg2 unfilled")
	}
	got, err := m.Close()
	want := &MatchError{Kind: Undercomplete, Name: "arg2", Offset: 12}
	if diff := cmp.Diff(want, err); diff != "" {
		t.Fatalf("Close() error mismatch (-want +got):\n%s", diff)
	}
	wantMatches := []MatchTokens{{Name: "arg1", Values: []OffsetValue{{0, "value1"}, {6, "value2"}}}}
	if diff := cmp.Diff(wantMatches, got.All()); diff != "" {
		t.Fatalf("partial matches mismatch (-want +got):\n%s", diff)
	}
}

func TestArgumentsOptionBreaker(t *testing.T) {
	m := mustNew(t,
		[]OptionConfig{{Name: "verbose", Bound: RangeBound(0, 0)}},
		[]ArgumentConfig{
			{Name: "arg1", Bound: LowerBound(1)},
			{Name: "arg2", Bound: RangeBound(1, 1)},
		})
	feedAll(t, m, "x", "--verbose", "z")
	got, err := m.Close()
	if err != nil {
		t.Fatalf("Close() = %v", err)
	}
	want := []MatchTokens{
		{Name: "arg1", Values: []OffsetValue{{0, "x"}}},
		{Name: "verbose", Values: []OffsetValue{}},
		{Name: "arg2", Values: []OffsetValue{{10, "z"}}},
	}
	if diff := cmp.Diff(want, normalize(got.All())); diff != "" {
		t.Fatalf("matches mismatch (-want +got):\n%s", diff)
	}
}

func TestArgumentsInterleaved(t *testing.T) {
	tests := []struct {
		name    string
		option  Bound
		tokens  []string
		want    []MatchTokens
		wantErr error
	}{
		{
			name:   "zero arity option between arguments",
			option: RangeBound(0, 0),
			tokens: []string{"x", "y", "--verbose", "z"},
			want: []MatchTokens{
				{Name: "arg1", Values: []OffsetValue{{0, "x"}, {1, "y"}}},
				{Name: "verbose", Values: []OffsetValue{}},
				{Name: "arg2", Values: []OffsetValue{{11, "z"}}},
			},
		},
		{
			name:   "single value option before arguments",
			option: RangeBound(1, 1),
			tokens: []string{"--verbose", "a", "x", "y", "z"},
			want: []MatchTokens{
				{Name: "verbose", Values: []OffsetValue{{9, "a"}}},
				{Name: "arg1", Values: []OffsetValue{{10, "x"}, {11, "y"}, {12, "z"}}},
			},
			wantErr: &MatchError{Kind: Undercomplete, Name: "arg2", Offset: 13},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustNew(t,
				[]OptionConfig{{Name: "verbose", Bound: tt.option}},
				[]ArgumentConfig{
					{Name: "arg1", Bound: LowerBound(1)},
					{Name: "arg2", Bound: RangeBound(1, 1)},
				})
			feedAll(t, m, tt.tokens...)
			got, err := m.Close()
			if diff := cmp.Diff(tt.wantErr, err); diff != "" {
				t.Fatalf("Close() error mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.want, normalize(got.All())); diff != "" {
				t.Fatalf("matches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArgumentsExhausted(t *testing.T) {
	m := mustNew(t, nil, nil)
	err := m.Feed("stray")
	if !errors.Is(err, &MatchError{Kind: ArgumentsExhausted}) {
		t.Fatalf("Feed() = %v, want ArgumentsExhausted", err)
	}
}

func TestCanCloseQueuedArguments(t *testing.T) {
	m := mustNew(t, nil, []ArgumentConfig{
		{Name: "optional", Bound: LowerBound(0)},
		{Name: "required", Bound: RangeBound(1, 1)},
	})
	if m.CanClose() {
		t.Fatalf("CanClose() = true with a required argument queued")
	}
	m2 := mustNew(t, nil, []ArgumentConfig{{Name: "optional", Bound: LowerBound(0)}})
	if !m2.CanClose() {
		t.Fatalf("CanClose() = false with only optional arguments queued")
	}
	got, err := m2.Close()
	if err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if !got.Contains("optional") {
		t.Fatalf("Close() did not close the queued optional argument")
	}
}

func TestSingleUse(t *testing.T) {
	m := mustNew(t, nil, []ArgumentConfig{{Name: "item", Bound: LowerBound(0)}})
	if _, err := m.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := m.Feed("x"); !errors.Is(err, ErrMatcherClosed) {
		t.Fatalf("Feed() after Close = %v, want ErrMatcherClosed", err)
	}
	if _, err := m.Close(); !errors.Is(err, ErrMatcherClosed) {
		t.Fatalf("second Close() = %v, want ErrMatcherClosed", err)
	}
}

func TestBareDashIsArgument(t *testing.T) {
	m := mustNew(t, nil, []ArgumentConfig{{Name: "file", Bound: RangeBound(1, 1)}})
	feedAll(t, m, "-")
	got, err := m.Close()
	if err != nil {
		t.Fatalf("Close() = %v", err)
	}
	want := []MatchTokens{{Name: "file", Values: []OffsetValue{{0, "-"}}}}
	if diff := cmp.Diff(want, got.All()); diff != "" {
		t.Fatalf("matches mismatch (-want +got):\n%s", diff)
	}
}
