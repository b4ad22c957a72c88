// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/staranto/modcli/internal/builtin"
	"github.com/staranto/modcli/internal/command"
	"github.com/staranto/modcli/internal/docs"
	"github.com/staranto/modcli/internal/manifest"
)

// Minimal doc generator. Builds the command tree from the built-in modules
// (plus an optional manifest directory) and generates:
//   - docs/commands/<tool>-<cmd>.md
//   - docs/man/share/man1/<tool>-<cmd>.1 via md2man
//   - docs/tldr/<tool>-<cmd>.md

func main() {
	var (
		repoRoot           string
		toolName           string
		manifests          string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.StringVar(&toolName, "tool", "modcli", "tool name used in page titles")
	flag.StringVar(&manifests, "manifests", "", "directory of HCL module manifests to include")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	reg := builtin.Registry()
	if manifests != "" {
		mods, err := manifest.LoadDir(manifests)
		if err != nil {
			fatalf("loading manifests: %v", err)
		}
		if err := manifest.Merge(reg, mods); err != nil {
			fatalf("merging manifests: %v", err)
		}
	}

	p, err := command.Build(command.Settings{ToolName: toolName, Global: builtin.Global()}, reg)
	if err != nil {
		fatalf("building %s: %v", toolName, err)
	}

	pages := docs.Pages(p)
	if len(pages) == 0 {
		fatalf("no commands to document")
	}

	outDir := filepath.Join(repoRoot, "docs")
	if err := docs.Write(outDir, pages, writeOnlyIfChanged); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("wrote %d pages under %s\n", len(pages), outDir)
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}
