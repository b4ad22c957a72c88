// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package hook keeps the callbacks that run after a successful parse.
package hook

import (
	"context"
	"fmt"
	"sync"

	"github.com/apex/log"

	"github.com/staranto/modcli/internal/result"
)

// Config is the category run by the command parser after parsing.
const Config = "config"

// Func receives the parsed result and may modify it.
type Func func(ctx context.Context, r *result.Result) error

// Hook is one registered callback. Test hooks are never run by Run; they
// exist so tests can instrument the pipeline through RunTest.
type Hook struct {
	Name string
	Fn   Func
	Test bool
}

// Registry maps a category to its hooks in registration order. Hooks can
// only be appended.
type Registry struct {
	mu    sync.Mutex
	hooks map[string][]Hook
}

func NewRegistry() *Registry {
	return &Registry{hooks: make(map[string][]Hook)}
}

// Register appends a production hook to category.
func (r *Registry) Register(category, name string, fn Func) {
	r.add(category, Hook{Name: name, Fn: fn})
}

// RegisterTest appends a hook that only RunTest executes.
func (r *Registry) RegisterTest(category, name string, fn Func) {
	r.add(category, Hook{Name: name, Fn: fn, Test: true})
}

func (r *Registry) add(category string, h Hook) {
	if h.Fn == nil {
		panic(fmt.Sprintf("hook %q registered without a function", h.Name))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hooks == nil {
		r.hooks = make(map[string][]Hook)
	}
	r.hooks[category] = append(r.hooks[category], h)
}

// Hooks returns a copy of the hooks registered under category.
func (r *Registry) Hooks(category string) []Hook {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Hook, len(r.hooks[category]))
	copy(out, r.hooks[category])
	return out
}

// Run calls every non-test hook of category in order. The first error stops
// the run and is returned.
func (r *Registry) Run(ctx context.Context, category string, res *result.Result) error {
	return r.run(ctx, category, res, false)
}

// RunTest calls only the test hooks of category.
func (r *Registry) RunTest(ctx context.Context, category string, res *result.Result) error {
	return r.run(ctx, category, res, true)
}

func (r *Registry) run(ctx context.Context, category string, res *result.Result, test bool) error {
	for _, h := range r.Hooks(category) {
		if h.Test != test {
			continue
		}
		log.Debugf("running %s hook %s", category, h.Name)
		if err := h.Fn(ctx, res); err != nil {
			return fmt.Errorf("%s hook %s: %w", category, h.Name, err)
		}
	}
	return nil
}
