// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package docs renders markdown, man and tldr pages for every command of a
// built parser. tools/docgen drives it.
package docs
