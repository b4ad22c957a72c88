// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package builtin holds the modules that ship with the modcli binary: svc,
// scan and report. Some defaults are read from the modules.<name> section of
// the config file.
package builtin
