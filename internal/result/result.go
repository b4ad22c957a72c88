// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package result holds the outcome of one command-line parse: which module
// and submodule were selected and the values of every flag in scope, keyed by
// destination name.
package result

import (
	"fmt"
	"sort"
	"strconv"
)

// Result is produced by a successful parse and handed to the config hooks,
// which may change it in place.
type Result struct {
	Module    string
	Submodule string
	// Global holds the values of the root (tool-wide) flags.
	Global map[string]any
	// Values holds the values of the selected module or submodule command
	// only. Sibling commands never contribute.
	Values map[string]any
	// Args are the positional arguments left on the selected command.
	Args []string
}

func New() *Result {
	return &Result{
		Global: make(map[string]any),
		Values: make(map[string]any),
	}
}

// Get looks dest up in the selected command's values first, then in the
// global values.
func (r *Result) Get(dest string) (any, bool) {
	if v, ok := r.Values[dest]; ok {
		return v, true
	}
	v, ok := r.Global[dest]
	return v, ok
}

// Set overwrites dest in whichever scope already holds it. Unknown
// destinations are added to Values.
func (r *Result) Set(dest string, v any) {
	if _, ok := r.Values[dest]; !ok {
		if _, ok := r.Global[dest]; ok {
			r.Global[dest] = v
			return
		}
	}
	r.Values[dest] = v
}

func (r *Result) String(dest string) string {
	v, ok := r.Get(dest)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (r *Result) Int(dest string) int {
	v, _ := r.Get(dest)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}

func (r *Result) Float(dest string) float64 {
	v, _ := r.Get(dest)
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	}
	return 0
}

func (r *Result) Bool(dest string) bool {
	v, _ := r.Get(dest)
	b, _ := v.(bool)
	return b
}

// Path returns the selected command path, e.g. "svc start".
func (r *Result) Path() string {
	if r.Submodule == "" {
		return r.Module
	}
	return r.Module + " " + r.Submodule
}

// Keys returns the destinations of both scopes, sorted, without duplicates.
func (r *Result) Keys() []string {
	seen := make(map[string]bool, len(r.Values)+len(r.Global))
	var keys []string
	for _, m := range []map[string]any{r.Global, r.Values} {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}
