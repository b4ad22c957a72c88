// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package manifest loads module descriptors declared in HCL files, so a host
// can grow its registry without recompiling.
//
//	module "deploy" {
//	  description = "ship a release"
//	  submodule "plan" {
//	    help = "show what would change"
//	    field "env" {
//	      kind    = "select"
//	      label   = "target environment"
//	      default = "dev"
//	      choices = ["dev", "prod"]
//	    }
//	  }
//	}
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/apex/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/staranto/modcli/internal/field"
	"github.com/staranto/modcli/internal/module"
)

// Ext is the file extension LoadDir picks up.
const Ext = ".hcl"

type fileSchema struct {
	Modules []*hclModule `hcl:"module,block"`
}

type hclModule struct {
	Name        string          `hcl:"name,label"`
	Description string          `hcl:"description,optional"`
	Fields      []*hclField     `hcl:"field,block"`
	Submodules  []*hclSubmodule `hcl:"submodule,block"`
	DefRange    hcl.Range       `hcl:",def_range"`
}

type hclSubmodule struct {
	Name     string      `hcl:"name,label"`
	Help     string      `hcl:"help,optional"`
	Fields   []*hclField `hcl:"field,block"`
	DefRange hcl.Range   `hcl:",def_range"`
}

type hclField struct {
	Name     string         `hcl:"name,label"`
	Kind     string         `hcl:"kind"`
	Label    string         `hcl:"label,optional"`
	Default  hcl.Expression `hcl:"default,optional"`
	Required bool           `hcl:"required,optional"`
	Choices  []string       `hcl:"choices,optional"`
	DefRange hcl.Range      `hcl:",def_range"`
}

// Parse decodes the modules declared in src. filename is only used in
// diagnostics.
func Parse(src []byte, filename string) ([]module.Module, hcl.Diagnostics) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	return decodeFile(file)
}

// LoadFile parses one manifest file.
func LoadFile(path string) ([]module.Module, error) {
	log.Debugf("loading manifest %s", path)

	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, diags
	}

	mods, diags := decodeFile(file)
	if diags.HasErrors() {
		return nil, diags
	}
	return mods, nil
}

// LoadDir parses every *.hcl file in dir, in name order. Subdirectories are
// not descended into.
func LoadDir(dir string) ([]module.Module, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var mods []module.Module
	for _, n := range names {
		m, err := LoadFile(filepath.Join(dir, n))
		if err != nil {
			return nil, err
		}
		mods = append(mods, m...)
	}
	return mods, nil
}

// Merge adds mods to reg. A name already present in reg is an error.
func Merge(reg module.Registry, mods []module.Module) error {
	for _, m := range mods {
		if err := reg.Add(m); err != nil {
			return err
		}
	}
	return nil
}

func decodeFile(file *hcl.File) ([]module.Module, hcl.Diagnostics) {
	var schema fileSchema
	diags := gohcl.DecodeBody(file.Body, nil, &schema)
	if diags.HasErrors() {
		return nil, diags
	}

	mods := make([]module.Module, 0, len(schema.Modules))
	for _, hm := range schema.Modules {
		m, mDiags := hm.toModule()
		diags = append(diags, mDiags...)
		if m != nil {
			mods = append(mods, m)
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return mods, diags
}

func (hm *hclModule) toModule() (module.Module, hcl.Diagnostics) {
	if len(hm.Fields) > 0 && len(hm.Submodules) > 0 {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Module has both fields and submodules",
			Detail:   fmt.Sprintf("Module %q must declare either field blocks or submodule blocks, not both.", hm.Name),
			Subject:  hm.DefRange.Ptr(),
		}}
	}

	if len(hm.Submodules) == 0 {
		fields, diags := buildModel(hm.Name, hm.Fields)
		if diags.HasErrors() {
			return nil, diags
		}
		return &module.Flat{Name: hm.Name, Description: hm.Description, Fields: fields}, diags
	}

	var diags hcl.Diagnostics
	c := &module.Compound{Name: hm.Name, Description: hm.Description}
	seen := make(map[string]bool, len(hm.Submodules))
	for _, hs := range hm.Submodules {
		if seen[hs.Name] {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate submodule",
				Detail:   fmt.Sprintf("Module %q declares submodule %q more than once.", hm.Name, hs.Name),
				Subject:  hs.DefRange.Ptr(),
			})
			continue
		}
		seen[hs.Name] = true

		fields, fDiags := buildModel(hs.Name, hs.Fields)
		diags = append(diags, fDiags...)
		c.Submodules = append(c.Submodules, module.Submodule{
			Name:   hs.Name,
			Help:   hs.Help,
			Fields: fields,
		})
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return c, diags
}

func buildModel(name string, hfs []*hclField) (*field.Model, hcl.Diagnostics) {
	if len(hfs) == 0 {
		return nil, nil
	}

	var diags hcl.Diagnostics
	m := field.NewModel(name)
	for _, hf := range hfs {
		f, fDiags := hf.toField()
		diags = append(diags, fDiags...)
		if fDiags.HasErrors() {
			continue
		}
		if err := m.Add(f); err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate field",
				Detail:   err.Error(),
				Subject:  hf.DefRange.Ptr(),
			})
		}
	}
	return m, diags
}

func (hf *hclField) toField() (field.Field, hcl.Diagnostics) {
	kind, err := field.ParseKind(hf.Kind)
	if err != nil {
		return field.Field{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unrecognized field kind",
			Detail:   fmt.Sprintf("Field %q: %s.", hf.Name, err),
			Subject:  hf.DefRange.Ptr(),
		}}
	}

	if len(hf.Choices) > 0 && kind != field.Select {
		return field.Field{}, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Choices on a non-select field",
			Detail:   fmt.Sprintf("Field %q is %s; only select fields take choices.", hf.Name, kind),
			Subject:  hf.DefRange.Ptr(),
		}}
	}

	def, diags := decodeDefault(kind, hf.Default)
	if diags.HasErrors() {
		return field.Field{}, diags
	}

	f := field.Field{
		Name:     hf.Name,
		Kind:     kind,
		Label:    hf.Label,
		Default:  def,
		Required: hf.Required,
	}
	if len(hf.Choices) > 0 {
		field.Choices(hf.Choices...)(&f)
	}
	return f, diags
}

// decodeDefault evaluates the default expression and converts it to the Go
// type the flag translator expects for kind. An absent default gives the
// zero value of that type.
func decodeDefault(kind field.Kind, expr hcl.Expression) (any, hcl.Diagnostics) {
	var want cty.Type
	switch kind {
	case field.Float, field.Integer, field.IncrementalInt:
		want = cty.Number
	case field.String, field.Select:
		want = cty.String
	case field.Bool:
		want = cty.Bool
	}

	var diags hcl.Diagnostics
	badDefault := func(err error) (any, hcl.Diagnostics) {
		d := &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid default",
			Detail:   fmt.Sprintf("A %s field needs a %s default: %s.", kind, want.FriendlyName(), err),
		}
		if expr != nil {
			d.Subject = expr.Range().Ptr()
		}
		return nil, append(diags, d)
	}

	val := cty.NullVal(want)
	if expr != nil {
		val, diags = expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
	}

	val, err := convert.Convert(val, want)
	if err != nil {
		return badDefault(err)
	}

	switch kind {
	case field.Float:
		var f float64
		if !val.IsNull() {
			if err := gocty.FromCtyValue(val, &f); err != nil {
				return badDefault(err)
			}
		}
		return f, diags
	case field.Integer, field.IncrementalInt:
		var n int
		if !val.IsNull() {
			if err := gocty.FromCtyValue(val, &n); err != nil {
				return badDefault(err)
			}
		}
		return n, diags
	case field.Bool:
		return !val.IsNull() && val.True(), diags
	default:
		if val.IsNull() {
			return "", diags
		}
		return val.AsString(), diags
	}
}
