// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/modcli/internal/builtin"
	"github.com/staranto/modcli/internal/command"
	"github.com/staranto/modcli/internal/config"
	"github.com/staranto/modcli/internal/hook"
	mylog "github.com/staranto/modcli/internal/log"
	"github.com/staranto/modcli/internal/manifest"
	"github.com/staranto/modcli/internal/output"
	"github.com/staranto/modcli/internal/result"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain(os.Args, os.Stdout, os.Stderr))
}

func realMain(args []string, stdout, stderr io.Writer) int {
	mylog.InitLogger()

	if _, err := config.Load(); err != nil {
		log.Debugf("running without config: %v", err)
	}

	p, err := newParser()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	p.SetOutput(stdout)

	if len(args) < 2 {
		fmt.Fprintln(stderr, "No module specified.")
		args = append(args, "--help")
	}

	res, err := p.ParseAndRunHooks(ctx, args)
	switch {
	case errors.Is(err, command.ErrHelp):
		return 0
	case err != nil:
		fmt.Fprintln(stderr, err)
		return 2
	}

	if err := output.Spit(p.ToolName(), res, outputOptions(res), stdout); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	return 0
}

// newParser builds the parser from the built-in modules, the manifest
// directories listed by the config file and the tool-wide settings found there.
func newParser() (*command.Parser, error) {
	reg := builtin.Registry()

	dirs, err := config.GetStringSlice("manifests", nil)
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		mods, err := manifest.LoadDir(dir)
		if err != nil {
			return nil, err
		}
		if err := manifest.Merge(reg, mods); err != nil {
			return nil, err
		}
		log.Debugf("merged %d manifest modules from %s", len(mods), dir)
	}

	return command.Build(settings(), reg)
}

func settings() command.Settings {
	tool, _ := config.GetString("tool_name", "modcli")
	parallel, _ := config.GetBool("parallel_running", false)

	return command.Settings{
		ToolName:        tool,
		ParallelRunning: parallel,
		Global:          builtin.Global(),
		Hooks:           hooks(),
		Completion:      command.CompletionFunc(enableCompletion),
	}
}

// enableCompletion turns on urfave's completion command and
// --generate-shell-completion flag for the whole tree.
func enableCompletion(root *cli.Command) error {
	root.EnableShellCompletion = true
	return nil
}

func outputOptions(res *result.Result) output.Options {
	g := &result.Result{Values: res.Global}
	return output.Options{
		Format:  g.String("output"),
		Query:   g.String("query"),
		Filter:  g.String("filter"),
		Sort:    g.String("sort"),
		Columns: g.String("columns"),
		Color:   g.Bool("color"),
		Titles:  g.Bool("titles"),
	}
}

func hooks() *hook.Registry {
	r := hook.NewRegistry()
	r.Register(hook.Config, "apply_log_level", applyLogLevel)
	r.Register(hook.Config, "apply_env", applyEnv)
	return r
}
