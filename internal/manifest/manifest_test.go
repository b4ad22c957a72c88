// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/modcli/internal/field"
	"github.com/staranto/modcli/internal/module"
)

func TestLoadDir(t *testing.T) {
	mods, err := LoadDir("testdata")
	require.NoError(t, err)
	require.Len(t, mods, 2)

	deploy, ok := mods[0].(*module.Compound)
	require.True(t, ok, "deploy should be compound, got %T", mods[0])
	assert.Equal(t, "deploy", deploy.Name)
	assert.Equal(t, "ship a release", deploy.Description)
	require.Len(t, deploy.Submodules, 2)

	plan, ok := deploy.Submodule("plan")
	require.True(t, ok)
	assert.Equal(t, "show what would change", plan.Help)
	env, ok := plan.Fields.Lookup("env")
	require.True(t, ok)
	assert.Equal(t, field.Select, env.Kind)
	assert.Equal(t, "dev", env.Default)
	assert.Equal(t, []string{"dev", "stage", "prod"}, env.Choices)
	par, _ := plan.Fields.Lookup("parallelism")
	assert.Equal(t, 4, par.Default)

	apply, _ := deploy.Submodule("apply")
	auto, _ := apply.Fields.Lookup("auto_approve")
	assert.Equal(t, false, auto.Default)
	timeout, _ := apply.Fields.Lookup("timeout")
	assert.Equal(t, 2.5, timeout.Default)

	lint, ok := mods[1].(*module.Flat)
	require.True(t, ok, "lint should be flat, got %T", mods[1])
	var names []string
	for _, f := range lint.Fields.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"strict", "verbose", "path"}, names)
	strict, _ := lint.Fields.Lookup("strict")
	assert.Equal(t, field.Bool, strict.Kind)
	assert.Equal(t, true, strict.Default)
	verbose, _ := lint.Fields.Lookup("verbose")
	assert.Equal(t, field.IncrementalInt, verbose.Kind)
	assert.Equal(t, 0, verbose.Default)
	path, _ := lint.Fields.Lookup("path")
	assert.True(t, path.Required)
	assert.Equal(t, "", path.Default)
}

func TestLoadDir_Missing(t *testing.T) {
	_, err := LoadDir("testdata/nope")
	assert.Error(t, err)
}

func TestParse_Diagnostics(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		summary string
	}{
		{
			name: "unknown kind",
			src: `module "m" {
  field "f" {
    kind = "complex"
  }
}`,
			summary: "Unrecognized field kind",
		},
		{
			name: "both fields and submodules",
			src: `module "m" {
  field "f" {
    kind = "string"
  }
  submodule "s" {
  }
}`,
			summary: "Module has both fields and submodules",
		},
		{
			name: "default of wrong type",
			src: `module "m" {
  field "f" {
    kind    = "integer"
    default = "many"
  }
}`,
			summary: "Invalid default",
		},
		{
			name: "fractional counter",
			src: `module "m" {
  field "f" {
    kind    = "count"
    default = 1.5
  }
}`,
			summary: "Invalid default",
		},
		{
			name: "choices on string",
			src: `module "m" {
  field "f" {
    kind    = "string"
    choices = ["a"]
  }
}`,
			summary: "Choices on a non-select field",
		},
		{
			name: "duplicate field",
			src: `module "m" {
  field "f" {
    kind = "string"
  }
  field "f" {
    kind = "bool"
  }
}`,
			summary: "Duplicate field",
		},
		{
			name: "duplicate submodule",
			src: `module "m" {
  submodule "s" {
  }
  submodule "s" {
  }
}`,
			summary: "Duplicate submodule",
		},
		{
			name: "missing kind",
			src: `module "m" {
  field "f" {
    label = "x"
  }
}`,
			summary: "Missing required argument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mods, diags := Parse([]byte(tt.src), "test.hcl")
			require.True(t, diags.HasErrors())
			assert.Nil(t, mods)
			assert.Equal(t, tt.summary, diags[0].Summary)
		})
	}
}

func TestParse_StringDefaultsConvert(t *testing.T) {
	mods, diags := Parse([]byte(`module "m" {
  field "n" {
    kind    = "int"
    default = "7"
  }
  field "b" {
    kind    = "bool"
    default = "true"
  }
}`), "test.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	flat := mods[0].(*module.Flat)
	n, _ := flat.Fields.Lookup("n")
	assert.Equal(t, 7, n.Default)
	b, _ := flat.Fields.Lookup("b")
	assert.Equal(t, true, b.Default)
}

func TestMerge(t *testing.T) {
	reg := module.Registry{}.MustAdd(&module.Flat{Name: "lint"})
	mods, err := LoadDir("testdata")
	require.NoError(t, err)

	err = Merge(reg, mods)
	assert.ErrorIs(t, err, module.ErrDuplicateName)

	reg = module.Registry{}
	require.NoError(t, Merge(reg, mods))
	assert.Equal(t, []string{"deploy", "lint"}, reg.Names())
	assert.NoError(t, reg.Validate())
}
