// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package field

import (
	"fmt"
	"strings"
)

// Kind is the closed set of parameter types a Field can carry.
type Kind int

const (
	Float Kind = iota + 1
	String
	Select
	Integer
	Bool
	IncrementalInt
)

var kindNames = map[Kind]string{
	Float:          "float",
	String:         "string",
	Select:         "select",
	Integer:        "integer",
	Bool:           "bool",
	IncrementalInt: "incremental",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind maps a kind name (as written in manifests) to a Kind. Matching is
// case-insensitive and accepts a few common spellings.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "float", "number":
		return Float, nil
	case "string", "str":
		return String, nil
	case "select", "choice":
		return Select, nil
	case "integer", "int":
		return Integer, nil
	case "bool", "boolean":
		return Bool, nil
	case "incremental", "count", "incrementalint":
		return IncrementalInt, nil
	}
	return 0, fmt.Errorf("unrecognized field kind %q", s)
}

// Field is one configurable parameter.
type Field struct {
	Name     string
	Kind     Kind
	Label    string
	Default  any
	Required bool
	// Choices is only meaningful for Select fields. Order is preserved and
	// duplicates are collapsed.
	Choices []string
}

// Option tweaks a Field at construction.
type Option func(*Field)

// Required marks the field as mandatory on the command line.
func Required() Option {
	return func(f *Field) { f.Required = true }
}

// Choices sets the permitted values for a Select field.
func Choices(values ...string) Option {
	return func(f *Field) { f.Choices = dedup(values) }
}

func newField(name string, kind Kind, label string, def any, opts []Option) Field {
	f := Field{Name: name, Kind: kind, Label: label, Default: def}
	for _, o := range opts {
		o(&f)
	}
	return f
}

func NewFloat(name, label string, def float64, opts ...Option) Field {
	return newField(name, Float, label, def, opts)
}

func NewString(name, label, def string, opts ...Option) Field {
	return newField(name, String, label, def, opts)
}

func NewSelect(name, label, def string, opts ...Option) Field {
	return newField(name, Select, label, def, opts)
}

func NewInteger(name, label string, def int, opts ...Option) Field {
	return newField(name, Integer, label, def, opts)
}

func NewBool(name, label string, def bool, opts ...Option) Field {
	return newField(name, Bool, label, def, opts)
}

// NewIncremental declares a counter field: every occurrence of the flag adds
// one to def.
func NewIncremental(name, label string, def int, opts ...Option) Field {
	return newField(name, IncrementalInt, label, def, opts)
}

func dedup(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
