// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

// Meta rides along on every generated command (cli.Command.Metadata["meta"])
// so an action can tell which branch of the tree it is running for.
type Meta struct {
	Tool      string
	Module    string
	Submodule string
}

// Path is the command path below the tool, e.g. "svc start".
func (m Meta) Path() string {
	switch {
	case m.Module == "":
		return ""
	case m.Submodule == "":
		return m.Module
	default:
		return m.Module + " " + m.Submodule
	}
}
