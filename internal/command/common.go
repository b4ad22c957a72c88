// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/modcli/internal/field"
	"github.com/staranto/modcli/internal/meta"
	"github.com/staranto/modcli/internal/module"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// leaf is the command that ran, recorded by its Action.
type leaf struct {
	meta  meta.Meta
	binds []binding
	cmd   *cli.Command
}

// ModuleCommandBuilder constructs the cli.Command for one flat module or one
// submodule of a compound module. The builder emits the Field Model's flags,
// hands the command to the Register callback and wires an Action that records
// the selected branch into the tree.
type ModuleCommandBuilder struct {
	Name     string
	Usage    string
	Meta     meta.Meta
	Fields   *field.Model
	Prefix   string
	Parallel bool
	Register module.RegisterFunc
}

// Build returns a configured cli.Command from the builder, along with the
// specs of the flags emitted from the Field Model.
func (b *ModuleCommandBuilder) Build(t *tree) (*cli.Command, []FlagSpec, error) {
	cmd := &cli.Command{
		Name:                   b.Name,
		Usage:                  b.Usage,
		HideHelpCommand:        true,
		UseShortOptionHandling: true,
		Metadata: map[string]any{
			"meta": b.Meta,
		},
	}

	binds, err := emitFields(cmd, b.Fields, b.Prefix, b.Parallel, true)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", b.Meta.Path(), err)
	}

	if b.Register != nil {
		b.Register(cmd)
	}

	cmd.Action = func(_ context.Context, c *cli.Command) error {
		m := GetMeta(c)
		log.Debugf("selected %q with args %v", m.Path(), c.Args().Slice())
		t.leaf = &leaf{meta: m, binds: binds, cmd: c}
		return nil
	}

	return cmd, specsOf(binds), nil
}

// capture copies the values of every flag and positional argument of the
// selected command into a map keyed by destination. Flags and arguments added
// by a Register callback are keyed by their first name.
func (l *leaf) capture() map[string]any {
	values := make(map[string]any, len(l.binds))
	bound := make(map[string]bool, len(l.binds))

	for _, b := range l.binds {
		values[b.spec.Dest] = b.value()
		bound[b.spec.Long] = true
	}

	for _, fl := range l.cmd.Flags {
		names := fl.Names()
		if fl == cli.HelpFlag || len(names) == 0 || bound[names[0]] {
			continue
		}
		values[names[0]] = l.cmd.Value(names[0])
	}

	for _, a := range l.cmd.Arguments {
		if name := argName(a); name != "" {
			values[name] = a.Get()
		}
	}

	return values
}

func argName(a cli.Argument) string {
	switch v := a.(type) {
	case *cli.StringArg:
		return v.Name
	case *cli.StringArgs:
		return v.Name
	case *cli.IntArg:
		return v.Name
	case *cli.IntArgs:
		return v.Name
	case *cli.FloatArg:
		return v.Name
	case *cli.FloatArgs:
		return v.Name
	}
	return ""
}
