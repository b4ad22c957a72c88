// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package field

import (
	"errors"
	"fmt"
)

// ErrDuplicateField is returned when a Model already holds a field of the
// same name.
var ErrDuplicateField = errors.New("duplicate field")

// Model is a named, ordered collection of Fields. A Model belongs to exactly
// one module or submodule.
type Model struct {
	Name   string
	fields []Field
	index  map[string]int
}

// NewModel builds a Model from fields declared in code. Duplicate names are a
// programming error and panic.
func NewModel(name string, fields ...Field) *Model {
	m := &Model{Name: name}
	for _, f := range fields {
		if err := m.Add(f); err != nil {
			panic(err.Error())
		}
	}
	return m
}

// Add appends f to the model.
func (m *Model) Add(f Field) error {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if f.Name == "" {
		return fmt.Errorf("model %q: field name must not be empty", m.Name)
	}
	if _, exists := m.index[f.Name]; exists {
		return fmt.Errorf("model %q: %w: %s", m.Name, ErrDuplicateField, f.Name)
	}
	m.index[f.Name] = len(m.fields)
	m.fields = append(m.fields, f)
	return nil
}

// Fields returns the fields in declaration order.
func (m *Model) Fields() []Field {
	if m == nil {
		return nil
	}
	out := make([]Field, len(m.fields))
	copy(out, m.fields)
	return out
}

// Lookup returns the field called name.
func (m *Model) Lookup(name string) (Field, bool) {
	if m == nil {
		return Field{}, false
	}
	i, ok := m.index[name]
	if !ok {
		return Field{}, false
	}
	return m.fields[i], true
}

func (m *Model) Len() int {
	if m == nil {
		return 0
	}
	return len(m.fields)
}
