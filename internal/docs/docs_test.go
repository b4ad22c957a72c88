// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package docs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/modcli/internal/command"
	"github.com/staranto/modcli/internal/field"
	"github.com/staranto/modcli/internal/module"
)

func testParser(t *testing.T) *command.Parser {
	t.Helper()
	reg := module.Registry{}.MustAdd(
		&module.Flat{
			Name:        "report",
			Description: "Write a report",
			Fields: field.NewModel("report",
				field.NewBool("dry_run", "skip writing", false),
				field.NewSelect("format", "report format", "csv",
					field.Choices("csv", "md"), field.Required()),
			),
		},
		&module.Compound{
			Name:        "svc",
			Description: "manage services",
			Submodules: []module.Submodule{
				{Name: "start", Help: "start a service", Fields: field.NewModel("start", field.NewFloat("delay", "", 1.5))},
				{Name: "stop", Help: "stop a service"},
			},
		},
	)
	p, err := command.Build(command.Settings{ToolName: "tool"}, reg)
	require.NoError(t, err)
	return p
}

func TestPages(t *testing.T) {
	pages := Pages(testParser(t))

	var names []string
	for _, p := range pages {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"tool", "tool-report", "tool-svc", "tool-svc-start", "tool-svc-stop"}, names)
	assert.Equal(t, "tool svc start", pages[3].Title)
}

func TestRender_Flags(t *testing.T) {
	pages := Pages(testParser(t))
	md := string(pages[1].Markdown)

	assert.Contains(t, md, "# tool report\n")
	assert.Contains(t, md, "Write a report.\n")
	assert.Contains(t, md, "| `--dry-run` | `-d` | bool | `false` | skip writing |")
	assert.Contains(t, md, "| `--format` | `-f` | select | `csv` | report format (required) One of: csv, md. |")
	assert.Contains(t, md, "# Run with defaults\ntool report --format csv\n")
	assert.Contains(t, md, "# Flip dry_run\ntool report --format csv --dry-run\n")
}

func TestRender_RootAndCompound(t *testing.T) {
	pages := Pages(testParser(t))

	root := string(pages[0].Markdown)
	assert.Contains(t, root, "tool [global flags] <module> [flags]")
	assert.Contains(t, root, "# Run the report module\ntool report ...\n")
	assert.Contains(t, root, "# Run the svc module\ntool svc ...\n")
	assert.NotContains(t, root, "| Flag |")

	svc := string(pages[2].Markdown)
	assert.Contains(t, svc, "tool svc <submodule> [flags]")
	assert.Contains(t, svc, "manage services.")

	start := string(pages[3].Markdown)
	assert.Contains(t, start, "| `--delay` |")
	assert.Contains(t, start, "`1.5`")
}

func TestRender_TLDR(t *testing.T) {
	pages := Pages(testParser(t))
	tl := string(pages[4].TLDR)
	assert.Equal(t, "# tool svc stop\n\n> stop a service.\n\n- Run with defaults:\n\n`tool svc stop`\n", tl)
}

func TestPage_Man(t *testing.T) {
	pages := Pages(testParser(t))
	man := pages[1].Man()
	assert.NotEmpty(t, man)
	assert.Contains(t, string(man), "report")
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	pages := Pages(testParser(t))
	require.NoError(t, Write(dir, pages, true))

	for _, p := range []string{
		"commands/tool-report.md",
		"man/share/man1/tool-svc-start.1",
		"tldr/tool.md",
	} {
		_, err := os.Stat(filepath.Join(dir, p))
		assert.NoError(t, err, p)
	}

	got, err := os.ReadFile(filepath.Join(dir, "commands", "tool-report.md"))
	require.NoError(t, err)
	assert.Equal(t, pages[1].Markdown, got)
}

func TestWriteFileIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.md")
	require.NoError(t, os.WriteFile(path, []byte("same\n\n"), 0o644))

	require.NoError(t, WriteFileIfChanged(path, []byte("same"), true))
	got, _ := os.ReadFile(path)
	assert.Equal(t, "same\n\n", string(got))

	require.NoError(t, WriteFileIfChanged(path, []byte("same"), false))
	got, _ = os.ReadFile(path)
	assert.Equal(t, "same", string(got))

	require.NoError(t, WriteFileIfChanged(path, []byte("other"), true))
	got, _ = os.ReadFile(path)
	assert.Equal(t, "other", string(got))
}
