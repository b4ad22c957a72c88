// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders a parsed result as a table, JSON or YAML, with
// optional filtering, sorting and gjson queries.
package output
