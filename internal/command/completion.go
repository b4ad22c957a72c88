// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import "github.com/urfave/cli/v3"

// CompletionInstaller is handed the root command once the module tree is in
// place. Nothing ships a generator; hosts plug one in through Settings.
type CompletionInstaller interface {
	Install(root *cli.Command) error
}

// CompletionFunc adapts a plain function to CompletionInstaller.
type CompletionFunc func(root *cli.Command) error

func (f CompletionFunc) Install(root *cli.Command) error {
	return f(root)
}
