// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import "unicode/utf8"

// reservedShort letters are never handed out; -h belongs to help.
var reservedShort = []rune{'h'}

// allocator hands out single-letter aliases for one field.Model emission.
// Letters go to the first field that asks for them, in declaration order.
type allocator struct {
	parallel bool
	claimed  map[rune]bool
}

// newAllocator claims the reserved letters and every one-letter long name up
// front. urfave/cli does not tell -x from --x, so an alias equal to a
// one-letter long name would shadow that field.
func newAllocator(parallel bool, longs ...string) *allocator {
	a := &allocator{parallel: parallel, claimed: make(map[rune]bool)}
	for _, c := range reservedShort {
		a.claimed[c] = true
	}
	for _, l := range longs {
		if utf8.RuneCountInString(l) == 1 {
			r, _ := utf8.DecodeRuneInString(l)
			a.claimed[r] = true
		}
	}
	return a
}

// alias claims the first character of name and returns it as the short
// alias. It returns "" when the character is already taken, or when the
// field belongs to a submodule (prefix set) of a tool running modules in
// parallel. The character is claimed in that last case all the same.
func (a *allocator) alias(name, prefix string) string {
	if name == "" {
		return ""
	}
	c, _ := utf8.DecodeRuneInString(name)
	if c == utf8.RuneError || a.claimed[c] {
		return ""
	}
	a.claimed[c] = true
	if a.parallel && prefix != "" {
		return ""
	}
	return string(c)
}
