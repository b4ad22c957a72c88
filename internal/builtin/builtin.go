// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package builtin

import (
	"github.com/urfave/cli/v3"

	"github.com/staranto/modcli/internal/config"
	"github.com/staranto/modcli/internal/field"
	"github.com/staranto/modcli/internal/module"
	"github.com/staranto/modcli/internal/output"
)

// Registry returns a fresh registry holding the built-in modules.
func Registry() module.Registry {
	return module.Registry{}.MustAdd(Svc(), Scan(), Report())
}

// Global is the model behind the root flags: output shaping for the printed
// result and the -v counter read by the apply_log_level hook.
func Global() *field.Model {
	return field.NewModel("global",
		field.NewSelect("output", "output format", output.Text, field.Choices(output.Formats...)),
		field.NewString("query", "gjson path selecting part of the result", ""),
		field.NewString("filter", "filter rows, e.g. name=dry,scope^svc", ""),
		field.NewString("sort", "sort rows by column, - for descending", ""),
		field.NewBool("color", "color table rows", false),
		field.NewBool("titles", "upper-case table titles", false),
		field.NewString("columns", "table columns as key[:title[:transform]],...", ""),
		field.NewIncremental("verbose", "more logging per -v", 0),
	)
}

// Svc is a compound module with start and stop submodules.
func Svc() *module.Compound {
	cfg := config.In("modules.svc")
	unit, _ := cfg.String("default_unit", "web")
	grace, _ := cfg.Int("grace", 10)

	return &module.Compound{
		Name:        "svc",
		Description: "Start and stop services",
		Submodules: []module.Submodule{
			{
				Name: "start",
				Help: "Start a service",
				Fields: field.NewModel("start",
					field.NewString("unit", "service unit", unit),
					field.NewFloat("delay", "seconds to wait before starting", 0),
					field.NewBool("wait", "block until the unit is up", false),
				),
				Register: func(cmd *cli.Command) {
					cmd.Flags = append(cmd.Flags, &cli.StringSliceFlag{
						Name:  "env",
						Usage: "`KEY=VALUE` passed to the unit (repeatable)",
					})
				},
			},
			{
				Name: "stop",
				Help: "Stop a service",
				Fields: field.NewModel("stop",
					field.NewString("unit", "service unit", unit),
					field.NewInteger("grace", "seconds before the unit is killed", grace),
					field.NewBool("force", "skip the grace period", false),
				),
			},
		},
	}
}

// Scan is a compound module whose run submodule takes a positional target.
func Scan() *module.Compound {
	target, _ := config.In("modules.scan").String("default_unit", "localhost")

	return &module.Compound{
		Name:        "scan",
		Description: "Probe hosts",
		Submodules: []module.Submodule{
			{
				Name: "run",
				Help: "Run a scan against a target",
				Fields: field.NewModel("run",
					field.NewIncremental("verbose", "more detail per -v", 0),
					field.NewString("ports", "port range", "1-1024"),
					field.NewFloat("timeout", "per probe timeout in seconds", 1),
					field.NewSelect("mode", "probe type", "tcp", field.Choices("tcp", "udp", "icmp")),
				),
				Register: func(cmd *cli.Command) {
					cmd.Arguments = append(cmd.Arguments, &cli.StringArg{
						Name:      "target",
						Value:     target,
						UsageText: "host to scan",
					})
				},
			},
		},
	}
}

// Report is a flat module.
func Report() *module.Flat {
	return &module.Flat{
		Name:        "report",
		Description: "Write a report of the last run",
		Fields: field.NewModel("report",
			field.NewBool("dry", "print instead of writing", true),
			field.NewBool("force", "overwrite an existing report", false),
			field.NewString("dry_run_dir", "where dry runs are written", "/tmp/modcli"),
			field.NewString("title", "report title", ""),
		),
	}
}
