// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "float", want: Float},
		{in: "String", want: String},
		{in: "select", want: Select},
		{in: "int", want: Integer},
		{in: "BOOL", want: Bool},
		{in: "count", want: IncrementalInt},
		{in: "uuid", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKind_Valid(t *testing.T) {
	assert.True(t, Bool.Valid())
	assert.False(t, Kind(0).Valid())
	assert.False(t, Kind(42).Valid())
	assert.Equal(t, "kind(42)", Kind(42).String())
	assert.Equal(t, "incremental", IncrementalInt.String())
}

func TestChoices_DedupKeepsOrder(t *testing.T) {
	f := NewSelect("format", "output format", "json", Choices("json", "xml", "json"))
	assert.Equal(t, []string{"json", "xml"}, f.Choices)
	assert.Equal(t, Select, f.Kind)
}

func TestRequiredOption(t *testing.T) {
	f := NewString("host", "target host", "", Required())
	assert.True(t, f.Required)
	assert.False(t, NewString("port", "", "").Required)
}

func TestModel_Order(t *testing.T) {
	m := NewModel("scan",
		NewBool("verbose", "", false),
		NewString("alpha", "", ""),
		NewInteger("beta", "", 1),
	)

	var names []string
	for _, f := range m.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"verbose", "alpha", "beta"}, names)
	assert.Equal(t, 3, m.Len())

	f, ok := m.Lookup("beta")
	require.True(t, ok)
	assert.Equal(t, 1, f.Default)

	_, ok = m.Lookup("gamma")
	assert.False(t, ok)
}

func TestModel_Duplicate(t *testing.T) {
	m := NewModel("x", NewString("a", "", ""))
	err := m.Add(NewInteger("a", "", 0))
	assert.ErrorIs(t, err, ErrDuplicateField)

	assert.Panics(t, func() {
		NewModel("y", NewString("a", "", ""), NewString("a", "", ""))
	})
}

func TestModel_Nil(t *testing.T) {
	var m *Model
	assert.Nil(t, m.Fields())
	assert.Equal(t, 0, m.Len())
	_, ok := m.Lookup("a")
	assert.False(t, ok)
}
