// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package module

import (
	"errors"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/staranto/modcli/internal/field"
)

var (
	ErrNotModule     = errors.New("not a module descriptor")
	ErrDuplicateName = errors.New("duplicate name")
	ErrNameMismatch  = errors.New("registry key does not match module name")
)

// Module is implemented only by *Flat and *Compound.
type Module interface {
	ModuleName() string
	ModuleDescription() string
	isModule()
}

// RegisterFunc lets a submodule add flags or arguments to its command beyond
// what a field.Model can express.
type RegisterFunc func(cmd *cli.Command)

// Flat is a module whose fields attach directly under its command.
type Flat struct {
	Name        string
	Description string
	Fields      *field.Model
}

func (m *Flat) ModuleName() string        { return m.Name }
func (m *Flat) ModuleDescription() string { return m.Description }
func (*Flat) isModule()                   {}

// Submodule is one nested command of a Compound module.
type Submodule struct {
	Name     string
	Help     string
	Fields   *field.Model
	Register RegisterFunc
}

// Compound is a module that only dispatches to its submodules.
type Compound struct {
	Name        string
	Description string
	Submodules  []Submodule
}

func (m *Compound) ModuleName() string        { return m.Name }
func (m *Compound) ModuleDescription() string { return m.Description }
func (*Compound) isModule()                   {}

// Submodule returns the submodule called name.
func (m *Compound) Submodule(name string) (Submodule, bool) {
	for _, s := range m.Submodules {
		if s.Name == name {
			return s, true
		}
	}
	return Submodule{}, false
}

// Registry maps module name to descriptor. It is filled before the parser is
// built and only read afterwards.
type Registry map[string]Module

// Add registers m under its own name.
func (r Registry) Add(m Module) error {
	if m == nil {
		return ErrNotModule
	}
	name := m.ModuleName()
	if _, exists := r[name]; exists {
		return fmt.Errorf("module %q: %w", name, ErrDuplicateName)
	}
	r[name] = m
	return nil
}

// MustAdd is Add for static registration; it panics on error.
func (r Registry) MustAdd(mods ...Module) Registry {
	for _, m := range mods {
		if err := r.Add(m); err != nil {
			panic(err.Error())
		}
	}
	return r
}

// Names returns the registered module names, sorted.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for n := range r {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks the shape of every entry: only *Flat and *Compound values,
// keys equal to module names, and unique submodule names. It does not look
// at field kinds; the builder rejects those while translating.
func (r Registry) Validate() error {
	for _, key := range r.Names() {
		switch m := r[key].(type) {
		case *Flat:
			if m == nil {
				return fmt.Errorf("module %q: %w: nil *Flat", key, ErrNotModule)
			}
			if m.Name != key {
				return fmt.Errorf("module %q: %w (%q)", key, ErrNameMismatch, m.Name)
			}
		case *Compound:
			if m == nil {
				return fmt.Errorf("module %q: %w: nil *Compound", key, ErrNotModule)
			}
			if m.Name != key {
				return fmt.Errorf("module %q: %w (%q)", key, ErrNameMismatch, m.Name)
			}
			seen := make(map[string]bool, len(m.Submodules))
			for _, s := range m.Submodules {
				if s.Name == "" {
					return fmt.Errorf("module %q: submodule name must not be empty", key)
				}
				if seen[s.Name] {
					return fmt.Errorf("module %q: submodule %q: %w", key, s.Name, ErrDuplicateName)
				}
				seen[s.Name] = true
			}
		default:
			return fmt.Errorf("module %q: %w: got %T", key, ErrNotModule, r[key])
		}
	}
	return nil
}
