// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// modcli is the main package for the modcli command line tool. It builds the
// command tree from the built-in modules plus any HCL manifests, parses the
// command line, runs the config hooks and prints the result.
package main
