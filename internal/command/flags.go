// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/modcli/internal/field"
)

var (
	ErrUnknownKind = errors.New("unrecognized field kind")
	ErrBadDefault  = errors.New("default does not match field kind")
	// ErrDuplicateFlag is returned when two fields of one command would
	// answer to the same flag name.
	ErrDuplicateFlag = errors.New("duplicate flag name")
)

// Action is how a flag collects its value.
type Action int

const (
	Store Action = iota + 1
	Toggle
	Count
)

func (a Action) String() string {
	switch a {
	case Store:
		return "store"
	case Toggle:
		return "toggle"
	case Count:
		return "count"
	}
	return "unknown"
}

// Coercion is how a raw token is converted.
type Coercion int

const (
	NoCoercion Coercion = iota
	CoerceFloat
	CoerceString
	CoerceInteger
	CoerceBoolean
)

// Resolve maps a field kind to the flag action and coercion used for it.
func Resolve(k field.Kind) (Action, Coercion, error) {
	switch k {
	case field.Float:
		return Store, CoerceFloat, nil
	case field.String, field.Select:
		return Store, CoerceString, nil
	case field.Integer:
		return Store, CoerceInteger, nil
	case field.Bool:
		return Toggle, CoerceBoolean, nil
	case field.IncrementalInt:
		return Count, NoCoercion, nil
	}
	return 0, NoCoercion, fmt.Errorf("%w: %s", ErrUnknownKind, k)
}

// RestingValue is the value a Bool field takes when its flag is absent. The
// flag flips it.
func RestingValue(def any) bool {
	return strings.ToLower(fmt.Sprint(def)) == "true"
}

// FlagSpec describes one emitted flag.
type FlagSpec struct {
	Long     string
	Short    string
	Dest     string
	Action   Action
	Coercion Coercion
	Field    field.Field
}

type binding struct {
	spec  FlagSpec
	value func() any
}

// LongName is the flag text for name, namespaced by prefix when running in
// parallel mode.
func LongName(name, prefix string, parallel bool) string {
	name = strings.ReplaceAll(name, "_", "-")
	if parallel && prefix != "" {
		return prefix + "-" + name
	}
	return name
}

// emitFields appends one flag per field of m to cmd. prefix is the owning
// module name for submodule fields and empty otherwise. Short aliases are
// allocated per call.
func emitFields(cmd *cli.Command, m *field.Model, prefix string, parallel, local bool) ([]binding, error) {
	fields := m.Fields()
	longs := make([]string, 0, len(fields))
	for _, f := range fields {
		longs = append(longs, LongName(f.Name, prefix, parallel))
	}

	alloc := newAllocator(parallel, longs...)
	binds := make([]binding, 0, len(fields))

	taken := map[string]string{}
	for _, n := range cli.HelpFlag.Names() {
		taken[n] = "help"
	}

	for i, f := range fields {
		long := longs[i]
		short := alloc.alias(f.Name, prefix)

		for _, n := range []string{long, short} {
			if n == "" {
				continue
			}
			if owner, ok := taken[n]; ok {
				return nil, fmt.Errorf("field %q: %w: %q already used by %s", f.Name, ErrDuplicateFlag, n, owner)
			}
			taken[n] = fmt.Sprintf("field %q", f.Name)
		}

		fl, b, err := newFlag(f, long, short, local)
		if err != nil {
			return nil, err
		}
		cmd.Flags = append(cmd.Flags, fl)
		binds = append(binds, b)
	}

	return binds, nil
}

func newFlag(f field.Field, long, short string, local bool) (cli.Flag, binding, error) {
	action, coercion, err := Resolve(f.Kind)
	if err != nil {
		return nil, binding{}, fmt.Errorf("field %q: %w", f.Name, err)
	}

	spec := FlagSpec{
		Long:     long,
		Short:    short,
		Dest:     f.Name,
		Action:   action,
		Coercion: coercion,
		Field:    f,
	}

	var aliases []string
	if short != "" {
		aliases = []string{short}
	}

	badDefault := func() (cli.Flag, binding, error) {
		return nil, binding{}, fmt.Errorf("field %q: %w: %s wants %T", f.Name, ErrBadDefault, f.Kind, f.Default)
	}

	switch f.Kind {
	case field.Float:
		def, ok := floatDefault(f.Default)
		if !ok {
			return badDefault()
		}
		v := &def
		return &cli.FloatFlag{
			Name:        long,
			Aliases:     aliases,
			Usage:       f.Label,
			Value:       def,
			Required:    f.Required,
			Local:       local,
			Destination: v,
		}, binding{spec: spec, value: func() any { return *v }}, nil

	case field.String, field.Select:
		def, ok := stringDefault(f.Default)
		if !ok {
			return badDefault()
		}
		v := &def
		fl := &cli.StringFlag{
			Name:        long,
			Aliases:     aliases,
			Usage:       f.Label,
			Value:       def,
			Required:    f.Required,
			Local:       local,
			Destination: v,
		}
		if f.Kind == field.Select && len(f.Choices) > 0 {
			choices := f.Choices
			fl.Usage = fmt.Sprintf("%s (one of: %s)", f.Label, strings.Join(choices, ", "))
			fl.Validator = func(value string) error {
				return FlagValidators(value, ChoiceValidator(choices))
			}
		}
		return fl, binding{spec: spec, value: func() any { return *v }}, nil

	case field.Integer:
		def, ok := intDefault(f.Default)
		if !ok {
			return badDefault()
		}
		v := &def
		return &cli.IntFlag{
			Name:        long,
			Aliases:     aliases,
			Usage:       f.Label,
			Value:       def,
			Required:    f.Required,
			Local:       local,
			Destination: v,
		}, binding{spec: spec, value: func() any { return *v }}, nil

	case field.Bool:
		// The cli flag only records presence; the field value is the resting
		// value flipped when the flag was given.
		rest := RestingValue(f.Default)
		present := new(bool)
		return &cli.BoolFlag{
			Name:        long,
			Aliases:     aliases,
			Usage:       f.Label,
			Required:    f.Required,
			Local:       local,
			HideDefault: true,
			Destination: present,
		}, binding{spec: spec, value: func() any { return *present != rest }}, nil

	case field.IncrementalInt:
		def, ok := intDefault(f.Default)
		if !ok {
			return badDefault()
		}
		n := &def
		return &cli.BoolFlag{
			Name:        long,
			Aliases:     aliases,
			Usage:       f.Label,
			Required:    f.Required,
			Local:       local,
			HideDefault: true,
			Config:      cli.BoolConfig{Count: n},
		}, binding{spec: spec, value: func() any { return *n }}, nil
	}

	return nil, binding{}, fmt.Errorf("field %q: %w: %s", f.Name, ErrUnknownKind, f.Kind)
}

func floatDefault(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func stringDefault(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", true
	case string:
		return s, true
	}
	return "", false
}

func intDefault(v any) (int, bool) {
	switch n := v.(type) {
	case nil:
		return 0, true
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}
