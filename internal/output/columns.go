// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Column is one column of the text table.
type Column struct {
	// Key is the dataset key the cell value comes from.
	Key string
	// Include is false for columns hidden with a leading "!".
	Include bool
	// Title is the header text when titles are on.
	Title string
	// Transform is a case and/or length spec applied to each cell, e.g. "U",
	// "l", "12" (truncate) or "-12" (elide the middle).
	Transform string
}

var lengthRe = regexp.MustCompile(`-?\d+`)

// Apply runs the column transform over a rendered cell.
func (c *Column) Apply(value string) string {
	if c.Transform == "" {
		return value
	}

	// The last case letter wins so a column spec can override a global one.
	lastL := strings.LastIndexAny(c.Transform, "lL")
	lastU := strings.LastIndexAny(c.Transform, "uU")
	if lastL > lastU {
		value = strings.ToLower(value)
	} else if lastU > lastL {
		value = strings.ToUpper(value)
	}

	// Same for length.
	match := lengthRe.FindAllString(c.Transform, -1)
	if len(match) == 0 {
		return value
	}
	l, _ := strconv.Atoi(match[len(match)-1])
	abs := l
	if abs < 0 {
		abs = -abs
	}
	r := []rune(value)
	if len(r) <= abs {
		return value
	}
	if l < 0 {
		half := abs/2 - 1
		if half < 1 {
			return string(r[:abs])
		}
		return string(r[:half]) + ".." + string(r[len(r)-half:])
	}
	return string(r[:l])
}

// Columns is the ordered column set of the text table.
type Columns []Column

// DefaultColumns are the dataset keys produced by Dataset.
func DefaultColumns() Columns {
	return Columns{
		{Key: "scope", Include: true, Title: "scope"},
		{Key: "name", Include: true, Title: "name"},
		{Key: "value", Include: true, Title: "value"},
	}
}

// String renders the list back in the form Set accepts.
func (cs *Columns) String() string {
	parts := make([]string, 0, len(*cs))
	for _, c := range *cs {
		key := c.Key
		if !c.Include {
			key = "!" + key
		}
		parts = append(parts, fmt.Sprintf("%s:%s:%s", key, c.Title, c.Transform))
	}
	return strings.Join(parts, ",")
}

// Set applies a comma separated list of key[:title[:transform]] specs. A
// leading "!" hides the column and "*" applies its transform to every column.
// Columns named in the spec move to the front in spec order.
func (cs *Columns) Set(spec string) error {
	if spec == "" {
		return nil
	}

	const (
		keyIdx = iota
		titleIdx
		transformIdx
	)

	var global string
	ordered := make(Columns, 0, len(*cs))
	seen := map[string]bool{}

	for _, s := range strings.Split(spec, ",") {
		fields := strings.Split(s, ":")
		key := strings.TrimSpace(fields[keyIdx])
		include := true
		if strings.HasPrefix(key, "!") {
			include = false
			key = key[1:]
		}

		transform := ""
		if len(fields) > transformIdx {
			transform = strings.TrimSpace(fields[transformIdx])
		}

		if key == "*" {
			global = transform
			continue
		}

		i := cs.index(key)
		if i < 0 {
			return fmt.Errorf("unknown column %q", key)
		}
		if seen[key] {
			return fmt.Errorf("column %q given twice", key)
		}
		seen[key] = true

		c := (*cs)[i]
		c.Include = include
		if len(fields) > titleIdx && strings.TrimSpace(fields[titleIdx]) != "" {
			c.Title = strings.TrimSpace(fields[titleIdx])
		}
		c.Transform = transform
		ordered = append(ordered, c)
	}

	for _, c := range *cs {
		if !seen[c.Key] {
			ordered = append(ordered, c)
		}
	}

	if global != "" {
		for i := range ordered {
			if ordered[i].Transform == "" {
				ordered[i].Transform = global
			} else {
				ordered[i].Transform = global + "," + ordered[i].Transform
			}
		}
	}

	*cs = ordered
	return nil
}

// Visible returns the included columns.
func (cs Columns) Visible() Columns {
	out := make(Columns, 0, len(cs))
	for _, c := range cs {
		if c.Include {
			out = append(out, c)
		}
	}
	return out
}

func (cs *Columns) index(key string) int {
	for i, c := range *cs {
		if c.Key == key {
			return i
		}
	}
	return -1
}
