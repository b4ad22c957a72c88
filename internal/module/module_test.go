// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package module

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/modcli/internal/field"
)

type impostor struct {
	*Flat
}

func TestRegistry_AddAndNames(t *testing.T) {
	r := Registry{}
	require.NoError(t, r.Add(&Flat{Name: "report", Description: "reports"}))
	require.NoError(t, r.Add(&Compound{Name: "svc", Description: "services"}))
	require.NoError(t, r.Add(&Flat{Name: "audit"}))

	assert.Equal(t, []string{"audit", "report", "svc"}, r.Names())

	err := r.Add(&Flat{Name: "svc"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	assert.ErrorIs(t, r.Add(nil), ErrNotModule)
}

func TestRegistry_MustAdd(t *testing.T) {
	assert.Panics(t, func() {
		Registry{}.MustAdd(&Flat{Name: "a"}, &Flat{Name: "a"})
	})
	r := Registry{}.MustAdd(&Flat{Name: "a"})
	assert.Len(t, r, 1)
}

func TestRegistry_Validate(t *testing.T) {
	var nilFlat *Flat

	tests := []struct {
		name    string
		reg     Registry
		wantErr error
	}{
		{
			name: "flat and compound",
			reg: Registry{
				"report": &Flat{Name: "report", Fields: field.NewModel("report", field.NewString("path", "", ""))},
				"svc": &Compound{Name: "svc", Submodules: []Submodule{
					{Name: "start"}, {Name: "stop"},
				}},
			},
		},
		{
			name:    "nil entry",
			reg:     Registry{"x": nil},
			wantErr: ErrNotModule,
		},
		{
			name:    "typed nil entry",
			reg:     Registry{"x": nilFlat},
			wantErr: ErrNotModule,
		},
		{
			name:    "foreign implementation",
			reg:     Registry{"x": impostor{&Flat{Name: "x"}}},
			wantErr: ErrNotModule,
		},
		{
			name:    "key mismatch",
			reg:     Registry{"x": &Flat{Name: "y"}},
			wantErr: ErrNameMismatch,
		},
		{
			name: "duplicate submodule",
			reg: Registry{"svc": &Compound{Name: "svc", Submodules: []Submodule{
				{Name: "start"}, {Name: "start"},
			}}},
			wantErr: ErrDuplicateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCompound_Submodule(t *testing.T) {
	c := &Compound{Name: "svc", Submodules: []Submodule{{Name: "start", Help: "start it"}}}
	s, ok := c.Submodule("start")
	require.True(t, ok)
	assert.Equal(t, "start it", s.Help)
	_, ok = c.Submodule("restart")
	assert.False(t, ok)
}
