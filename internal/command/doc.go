// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command builds the modcli command tree from a module registry. It
// translates Field Models into urfave/cli flags, allocates short aliases,
// nests submodule commands under compound modules and runs the config hooks
// once a parse succeeds.
package command
