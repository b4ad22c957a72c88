// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/staranto/modcli/internal/field"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		kind     field.Kind
		action   Action
		coercion Coercion
	}{
		{field.Float, Store, CoerceFloat},
		{field.String, Store, CoerceString},
		{field.Select, Store, CoerceString},
		{field.Integer, Store, CoerceInteger},
		{field.Bool, Toggle, CoerceBoolean},
		{field.IncrementalInt, Count, NoCoercion},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			a, c, err := Resolve(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.action, a)
			assert.Equal(t, tt.coercion, c)
		})
	}
}

func TestResolve_UnknownKind(t *testing.T) {
	for _, k := range []field.Kind{0, field.Kind(42)} {
		_, _, err := Resolve(k)
		assert.ErrorIs(t, err, ErrUnknownKind)
	}
}

func TestRestingValue(t *testing.T) {
	assert.True(t, RestingValue(true))
	assert.True(t, RestingValue("True"))
	assert.True(t, RestingValue("TRUE"))
	assert.False(t, RestingValue(false))
	assert.False(t, RestingValue("false"))
	assert.False(t, RestingValue(nil))
	assert.False(t, RestingValue(1))
}

func TestLongName(t *testing.T) {
	assert.Equal(t, "dry-run", LongName("dry_run", "", false))
	assert.Equal(t, "dry-run", LongName("dry_run", "svc", false))
	assert.Equal(t, "svc-dry-run", LongName("dry_run", "svc", true))
	assert.Equal(t, "verbose", LongName("verbose", "", true))
}

func TestAllocator_FirstComeFirstServed(t *testing.T) {
	a := newAllocator(false)
	assert.Equal(t, "a", a.alias("alpha", ""))
	assert.Equal(t, "", a.alias("amber", ""))
	assert.Equal(t, "b", a.alias("beta", ""))
	assert.Equal(t, "", a.alias("help_text", ""))
	assert.Equal(t, "", a.alias("", ""))
}

func TestAllocator_ParallelPrefixWithholdsAlias(t *testing.T) {
	a := newAllocator(true)
	assert.Equal(t, "", a.alias("verbose", "scan"))
	// The letter was claimed even though no alias was emitted.
	assert.Equal(t, "", a.alias("vault", ""))
	assert.Equal(t, "q", a.alias("quiet", ""))

	a = newAllocator(false)
	assert.Equal(t, "v", a.alias("verbose", "scan"))
}

func TestEmitFields_Aliases(t *testing.T) {
	m := field.NewModel("m",
		field.NewString("alpha", "first", ""),
		field.NewString("amber", "second", ""),
		field.NewString("beta", "third", ""),
		field.NewInteger("n", "one letter", 0),
	)
	cmd := &cli.Command{Name: "m"}

	binds, err := emitFields(cmd, m, "", false, true)
	require.NoError(t, err)
	require.Len(t, binds, 4)
	require.Len(t, cmd.Flags, 4)

	assert.Equal(t, []string{"alpha", "a"}, cmd.Flags[0].Names())
	assert.Equal(t, []string{"amber"}, cmd.Flags[1].Names())
	assert.Equal(t, []string{"beta", "b"}, cmd.Flags[2].Names())
	assert.Equal(t, []string{"n"}, cmd.Flags[3].Names())

	assert.Equal(t, "a", binds[0].spec.Short)
	assert.Equal(t, "", binds[1].spec.Short)
	assert.Equal(t, "", binds[3].spec.Short)
}

func TestAllocator_OneLetterLongNamesClaimed(t *testing.T) {
	a := newAllocator(false, "xray", "x")
	assert.Equal(t, "", a.alias("xray", ""))
	assert.Equal(t, "", a.alias("x", ""))
	assert.Equal(t, "y", a.alias("yank", ""))
}

func TestAllocator_FirstCharacterNotByte(t *testing.T) {
	a := newAllocator(false)
	assert.Equal(t, "ü", a.alias("über", ""))
	assert.Equal(t, "é", a.alias("état", ""))
	assert.Equal(t, "", a.alias("übel", ""))
	assert.Equal(t, "", a.alias("\xff", ""))
}

func TestEmitFields_OneLetterFieldAfterLongerField(t *testing.T) {
	m := field.NewModel("m",
		field.NewString("xray", "", "a"),
		field.NewInteger("x", "", 0),
		field.NewBool("yes", "", false),
	)
	cmd := &cli.Command{Name: "m"}

	binds, err := emitFields(cmd, m, "", false, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"xray"}, cmd.Flags[0].Names())
	assert.Equal(t, []string{"x"}, cmd.Flags[1].Names())
	assert.Equal(t, []string{"yes", "y"}, cmd.Flags[2].Names())
	assert.Equal(t, "", binds[0].spec.Short)
}

func TestEmitFields_DuplicateNames(t *testing.T) {
	tests := []struct {
		name   string
		fields []field.Field
	}{
		{"normalized long names", []field.Field{
			field.NewString("dry_run", "", ""),
			field.NewString("dry-run", "", ""),
		}},
		{"help long name", []field.Field{field.NewBool("help", "", false)}},
		{"help short name", []field.Field{field.NewBool("h", "", false)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := emitFields(&cli.Command{Name: "m"}, field.NewModel("m", tt.fields...), "", false, true)
			assert.ErrorIs(t, err, ErrDuplicateFlag)
		})
	}
}

func TestEmitFields_SelectChoices(t *testing.T) {
	m := field.NewModel("m",
		field.NewSelect("format", "format", "json", field.Choices("json", "xml", "json")),
	)
	cmd := &cli.Command{Name: "m"}

	binds, err := emitFields(cmd, m, "", false, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"json", "xml"}, binds[0].spec.Field.Choices)

	fl, ok := cmd.Flags[0].(*cli.StringFlag)
	require.True(t, ok)
	require.NotNil(t, fl.Validator)
	assert.NoError(t, fl.Validator("xml"))
	assert.Error(t, fl.Validator("yaml"))
	assert.Contains(t, fl.Usage, "json, xml")
}

func TestEmitFields_BadInput(t *testing.T) {
	tests := []struct {
		name string
		f    field.Field
		err  error
	}{
		{"unknown kind", field.Field{Name: "x", Kind: field.Kind(99)}, ErrUnknownKind},
		{"zero kind", field.Field{Name: "x"}, ErrUnknownKind},
		{"string for integer", field.Field{Name: "x", Kind: field.Integer, Default: "three"}, ErrBadDefault},
		{"fraction for counter", field.Field{Name: "x", Kind: field.IncrementalInt, Default: 1.5}, ErrBadDefault},
		{"int for string", field.Field{Name: "x", Kind: field.String, Default: 3}, ErrBadDefault},
		{"bool for float", field.Field{Name: "x", Kind: field.Float, Default: true}, ErrBadDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{Name: "m"}
			_, err := emitFields(cmd, field.NewModel("m", tt.f), "", false, true)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestChoiceValidator(t *testing.T) {
	v := ChoiceValidator([]string{"a", "b"})
	assert.NoError(t, FlagValidators("a", v))
	assert.Error(t, FlagValidators("c", v))
	assert.NoError(t, FlagValidators("c"))
}
