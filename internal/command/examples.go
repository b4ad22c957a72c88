// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import "strings"

// BuildExamples renders one usage line per module, in the order given.
func BuildExamples(tool string, modules []string) string {
	lines := make([]string, 0, len(modules))
	for _, m := range modules {
		lines = append(lines, tool+" "+m+" ...")
	}
	return strings.Join(lines, "\n")
}
