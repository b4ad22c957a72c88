// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package docs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	md2man "github.com/cpuguy83/go-md2man/v2/md2man"

	"github.com/staranto/modcli/internal/command"
	"github.com/staranto/modcli/internal/field"
	"github.com/staranto/modcli/internal/output"
)

// Page is the rendered documentation of one command of the tree.
type Page struct {
	// Name is the file stem, e.g. "modcli-svc-start".
	Name     string
	Title    string
	Markdown []byte
	TLDR     []byte
}

// Man converts the page markdown to roff.
func (p Page) Man() []byte {
	return md2man.Render(p.Markdown)
}

// Pages renders one Page per command spec of a built parser, root first.
func Pages(p *command.Parser) []Page {
	pages := make([]Page, 0, len(p.Specs()))
	for _, spec := range p.Specs() {
		pages = append(pages, Render(p.ToolName(), p.Examples(), spec))
	}
	return pages
}

// Render builds the markdown and tldr text for a single command. examples is
// only used for the root page.
func Render(tool, examples string, spec command.CommandSpec) Page {
	title := strings.TrimSpace(tool + " " + spec.Meta.Path())
	page := Page{
		Name:  strings.ReplaceAll(title, " ", "-"),
		Title: title,
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("Short description\n\n")
	fmt.Fprintf(&b, "%s\n\n", shortDesc(title, spec.Usage))

	b.WriteString("Synopsis\n\n")
	fmt.Fprintf(&b, "```\n%s\n```\n\n", synopsis(title, spec))

	if len(spec.Flags) > 0 {
		b.WriteString("Flags\n\n")
		b.WriteString("| Flag | Short | Kind | Default | Description |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, fl := range spec.Flags {
			short := ""
			if fl.Short != "" {
				short = "`-" + fl.Short + "`"
			}
			fmt.Fprintf(&b, "| `--%s` | %s | %s | %s | %s |\n",
				fl.Long, short, fl.Field.Kind, defaultText(fl.Field), describe(fl.Field))
		}
		b.WriteString("\n")
	}

	ex := quickExamples(title, examples, spec)
	b.WriteString("Quick examples\n\n```\n")
	for _, e := range ex {
		fmt.Fprintf(&b, "# %s\n%s\n", e.desc, e.cmd)
	}
	b.WriteString("```\n")

	page.Markdown = []byte(b.String())
	page.TLDR = []byte(tldr(title, shortDesc(title, spec.Usage), ex))
	return page
}

type example struct {
	desc string
	cmd  string
}

func quickExamples(title, examples string, spec command.CommandSpec) []example {
	if spec.Meta.Module == "" {
		var exs []example
		for _, line := range strings.Split(examples, "\n") {
			if line == "" {
				continue
			}
			mod := strings.Fields(line)[1]
			exs = append(exs, example{desc: "Run the " + mod + " module", cmd: line})
		}
		return exs
	}

	exs := []example{{desc: "Run with defaults", cmd: withRequired(title, spec)}}
	for _, fl := range spec.Flags {
		if fl.Field.Required || fl.Action != command.Toggle {
			continue
		}
		exs = append(exs, example{
			desc: "Flip " + fl.Field.Name,
			cmd:  withRequired(title, spec) + " --" + fl.Long,
		})
		break
	}
	return exs
}

func withRequired(title string, spec command.CommandSpec) string {
	cmd := title
	for _, fl := range spec.Flags {
		if fl.Field.Required {
			cmd += " --" + fl.Long + " " + placeholder(fl.Field)
		}
	}
	return cmd
}

func synopsis(title string, spec command.CommandSpec) string {
	switch {
	case spec.Meta.Module == "":
		return title + " [global flags] <module> [flags]"
	case len(spec.Flags) == 0 && spec.Meta.Submodule == "":
		return title + " <submodule> [flags]"
	default:
		return title + " [flags] [args]"
	}
}

func shortDesc(title, usage string) string {
	usage = strings.TrimSpace(usage)
	if usage == "" {
		return title + "."
	}
	if !strings.HasSuffix(usage, ".") {
		usage += "."
	}
	return usage
}

func describe(f field.Field) string {
	d := f.Label
	if f.Required {
		d = strings.TrimSpace(d + " (required)")
	}
	if len(f.Choices) > 0 {
		d = strings.TrimSpace(d + " One of: " + strings.Join(f.Choices, ", ") + ".")
	}
	return d
}

func defaultText(f field.Field) string {
	s := output.InterfaceToString(f.Default)
	if s == "" {
		return ""
	}
	return "`" + s + "`"
}

func placeholder(f field.Field) string {
	if len(f.Choices) > 0 {
		return f.Choices[0]
	}
	return "<" + f.Kind.String() + ">"
}

func tldr(title, desc string, exs []example) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n> %s\n", title, desc)
	for _, e := range exs {
		fmt.Fprintf(&b, "\n- %s:\n\n`%s`\n", e.desc, e.cmd)
	}
	return b.String()
}

// Write renders every page under dir as commands/<name>.md,
// man/share/man1/<name>.1 and tldr/<name>.md.
func Write(dir string, pages []Page, onlyIfChanged bool) error {
	commandsDir := filepath.Join(dir, "commands")
	manDir := filepath.Join(dir, "man", "share", "man1")
	tldrDir := filepath.Join(dir, "tldr")
	for _, d := range []string{commandsDir, manDir, tldrDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", d, err)
		}
	}

	for _, p := range pages {
		files := map[string][]byte{
			filepath.Join(commandsDir, p.Name+".md"): p.Markdown,
			filepath.Join(manDir, p.Name+".1"):       p.Man(),
			filepath.Join(tldrDir, p.Name+".md"):     p.TLDR,
		}
		for path, data := range files {
			if err := WriteFileIfChanged(path, data, onlyIfChanged); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
		log.Debugf("wrote docs for %s", p.Title)
	}
	return nil
}

// WriteFileIfChanged skips the write when the file already holds the same
// content, ignoring surrounding whitespace.
func WriteFileIfChanged(path string, data []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, data, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, data, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(data)) {
		return nil
	}
	return os.WriteFile(path, data, 0o644)
}
