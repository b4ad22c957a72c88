// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/modcli/internal/field"
	"github.com/staranto/modcli/internal/hook"
	"github.com/staranto/modcli/internal/meta"
	"github.com/staranto/modcli/internal/module"
	"github.com/staranto/modcli/internal/result"
)

var (
	ErrNoRegistry    = errors.New("module registry is nil")
	ErrNoToolName    = errors.New("tool name is empty")
	ErrNotModule     = module.ErrNotModule
	ErrDuplicateName = module.ErrDuplicateName

	ErrNoModule    = errors.New("module name required")
	ErrNoSubmodule = errors.New("submodule name required")

	// ErrHelp is returned by Parse when help was shown instead of a command
	// being selected.
	ErrHelp = errors.New("help requested")
)

// Settings are the tool-wide inputs to Build.
type Settings struct {
	ToolName        string
	ParallelRunning bool
	// Global describes the root flags. They show in root help only but are
	// accepted anywhere on the command line.
	Global     *field.Model
	Hooks      *hook.Registry
	Completion CompletionInstaller
}

// CommandSpec describes the Field Model flags of one command of the tree.
type CommandSpec struct {
	Meta  meta.Meta
	Usage string
	Flags []FlagSpec
}

// Parser is a built command tree. Every Parse works on a freshly assembled
// tree so a Parser can be used more than once.
type Parser struct {
	settings Settings
	registry module.Registry
	root     *cli.Command
	specs    []CommandSpec
	examples string
	out      io.Writer
}

type tree struct {
	root   *cli.Command
	global []binding
	specs  []CommandSpec
	leaf   *leaf
}

// Build validates the registry and assembles the command tree. Registry shape
// errors are reported before any flag is emitted.
func Build(s Settings, reg module.Registry) (*Parser, error) {
	if reg == nil {
		return nil, ErrNoRegistry
	}
	if s.ToolName == "" {
		return nil, ErrNoToolName
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	p := &Parser{
		settings: s,
		registry: reg,
		examples: BuildExamples(s.ToolName, reg.Names()),
	}

	t, err := p.assemble()
	if err != nil {
		return nil, err
	}
	p.root = t.root
	p.specs = t.specs

	log.Debugf("built %s with %d modules", s.ToolName, len(reg))
	return p, nil
}

// MustBuild is Build for static registration. It panics on error.
func MustBuild(s Settings, reg module.Registry) *Parser {
	p, err := Build(s, reg)
	if err != nil {
		panic(fmt.Sprintf("command.MustBuild: %v", err))
	}
	return p
}

// Root returns the command tree assembled by Build.
func (p *Parser) Root() *cli.Command {
	return p.root
}

// Specs returns the flag specs of every command, root first, then modules in
// name order with submodules following their module.
func (p *Parser) Specs() []CommandSpec {
	return p.specs
}

// Examples is one "<tool> <module> ..." line per module.
func (p *Parser) Examples() string {
	return p.examples
}

func (p *Parser) ToolName() string {
	return p.settings.ToolName
}

// SetOutput redirects help and usage error text.
func (p *Parser) SetOutput(w io.Writer) {
	p.out = w
	if p.root != nil {
		setWriters(p.root, w)
	}
}

// Parse runs args (os.Args form) through a fresh tree. It returns ErrHelp when
// help was printed and no command was selected.
func (p *Parser) Parse(ctx context.Context, args []string) (*result.Result, error) {
	t, err := p.assemble()
	if err != nil {
		return nil, err
	}

	if err := t.root.Run(ctx, args); err != nil {
		return nil, err
	}
	if t.leaf == nil {
		return nil, ErrHelp
	}

	res := result.New()
	res.Module = t.leaf.meta.Module
	res.Submodule = t.leaf.meta.Submodule
	for _, b := range t.global {
		res.Global[b.spec.Dest] = b.value()
	}
	res.Values = t.leaf.capture()
	res.Args = t.leaf.cmd.Args().Slice()

	log.Debugf("parsed %s: %v", t.leaf.meta.Path(), res.Values)
	return res, nil
}

// ParseAndRunHooks parses args and then runs every non-test config hook
// against the result. A hook error is returned with the result so far.
func (p *Parser) ParseAndRunHooks(ctx context.Context, args []string) (*result.Result, error) {
	res, err := p.Parse(ctx, args)
	if err != nil {
		return nil, err
	}
	if err := p.settings.Hooks.Run(ctx, hook.Config, res); err != nil {
		return res, err
	}
	return res, nil
}

func (p *Parser) assemble() (*tree, error) {
	s := p.settings
	t := &tree{}

	root := &cli.Command{
		Name:                   s.ToolName,
		Usage:                  capitalize(s.ToolName),
		Description:            "Examples:\n" + indent(p.examples),
		HideHelpCommand:        true,
		UseShortOptionHandling: true,
		Metadata: map[string]any{
			"meta": meta.Meta{Tool: s.ToolName},
		},
	}
	root.Action = func(_ context.Context, cmd *cli.Command) error {
		_ = cli.ShowRootCommandHelp(cmd)
		if name := cmd.Args().First(); name != "" {
			return fmt.Errorf("%w: unknown module %q", ErrNoModule, name)
		}
		return ErrNoModule
	}

	global, err := emitFields(root, s.Global, "", s.ParallelRunning, true)
	if err != nil {
		return nil, fmt.Errorf("global flags: %w", err)
	}
	t.global = global
	t.specs = append(t.specs, CommandSpec{
		Meta:  meta.Meta{Tool: s.ToolName},
		Usage: root.Usage,
		Flags: specsOf(global),
	})

	for _, name := range p.registry.Names() {
		cmd, err := p.moduleCommand(t, p.registry[name])
		if err != nil {
			return nil, err
		}
		root.Commands = append(root.Commands, cmd)
	}

	if s.Completion != nil {
		if err := s.Completion.Install(root); err != nil {
			return nil, fmt.Errorf("completion: %w", err)
		}
	}

	if p.out != nil {
		setWriters(root, p.out)
	}
	t.root = root
	return t, nil
}

func (p *Parser) moduleCommand(t *tree, mod module.Module) (*cli.Command, error) {
	tool := p.settings.ToolName

	switch m := mod.(type) {
	case *module.Flat:
		b := &ModuleCommandBuilder{
			Name:     m.Name,
			Usage:    m.Description,
			Meta:     meta.Meta{Tool: tool, Module: m.Name},
			Fields:   m.Fields,
			Parallel: p.settings.ParallelRunning,
		}
		cmd, specs, err := b.Build(t)
		if err != nil {
			return nil, err
		}
		t.specs = append(t.specs, CommandSpec{Meta: b.Meta, Usage: b.Usage, Flags: specs})
		return cmd, nil

	case *module.Compound:
		mm := meta.Meta{Tool: tool, Module: m.Name}
		cmd := &cli.Command{
			Name:            m.Name,
			Usage:           m.Description,
			HideHelpCommand: true,
			Metadata: map[string]any{
				"meta": mm,
			},
		}
		cmd.Action = func(_ context.Context, c *cli.Command) error {
			_ = cli.ShowSubcommandHelp(c)
			if name := c.Args().First(); name != "" {
				return fmt.Errorf("%w: unknown %s submodule %q", ErrNoSubmodule, m.Name, name)
			}
			return fmt.Errorf("%w: %s", ErrNoSubmodule, m.Name)
		}
		t.specs = append(t.specs, CommandSpec{Meta: mm, Usage: m.Description})

		for _, sub := range m.Submodules {
			b := &ModuleCommandBuilder{
				Name:     sub.Name,
				Usage:    sub.Help,
				Meta:     meta.Meta{Tool: tool, Module: m.Name, Submodule: sub.Name},
				Fields:   sub.Fields,
				Prefix:   m.Name,
				Parallel: p.settings.ParallelRunning,
				Register: sub.Register,
			}
			sc, specs, err := b.Build(t)
			if err != nil {
				return nil, err
			}
			cmd.Commands = append(cmd.Commands, sc)
			t.specs = append(t.specs, CommandSpec{Meta: b.Meta, Usage: b.Usage, Flags: specs})
		}
		return cmd, nil
	}

	// Validate has already rejected anything else.
	return nil, fmt.Errorf("%w: %T", ErrNotModule, mod)
}

func specsOf(binds []binding) []FlagSpec {
	specs := make([]FlagSpec, 0, len(binds))
	for _, b := range binds {
		specs = append(specs, b.spec)
	}
	return specs
}

func setWriters(cmd *cli.Command, w io.Writer) {
	cmd.Writer = w
	cmd.ErrWriter = w
	for _, c := range cmd.Commands {
		setWriters(c, w)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func indent(s string) string {
	if s == "" {
		return s
	}
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
