// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
)

// EnvFilterDelim overrides the "," between filter expressions.
const EnvFilterDelim = "MODCLI_FILTER_DELIM"

// key, optional "!", one operand character, target.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~><@/])(.*)$`)

// Filter is one parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string

	re *regexp.Regexp
}

// BuildFilters parses spec into filters. Malformed expressions and bad
// regular expressions are logged and dropped.
func BuildFilters(spec string) []Filter {
	if spec == "" {
		return nil
	}

	delim := ","
	if d, ok := os.LookupEnv(EnvFilterDelim); ok {
		delim = d
	}

	exprs := strings.Split(spec, delim)
	filters := make([]Filter, 0, len(exprs))
	for _, expr := range exprs {
		parts := filterRegex.FindStringSubmatch(expr)
		if parts == nil {
			log.WithField("filter", expr).Error("invalid filter")
			continue
		}

		f := Filter{
			Key:     parts[1],
			Negate:  strings.HasPrefix(parts[2], "!"),
			Operand: strings.TrimPrefix(parts[2], "!"),
			Target:  parts[3],
		}
		if f.Operand == "/" {
			re, err := regexp.Compile(f.Target)
			if err != nil {
				log.WithError(err).WithField("filter", expr).Error("invalid regex")
				continue
			}
			f.re = re
		}
		filters = append(filters, f)
	}

	return filters
}

// FilterDataset returns the rows matching every filter in spec. Filters on a
// key no row carries are ignored.
func FilterDataset(rows []map[string]interface{}, spec string) []map[string]interface{} {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return rows
	}

	var filtered []map[string]interface{}
	for _, row := range rows {
		if matchAll(row, filters) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

func matchAll(row map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		value, ok := row[f.Key]
		if !ok {
			log.Debugf("filter key not found: %s", f.Key)
			continue
		}
		if !f.Match(value) {
			return false
		}
	}
	return true
}

// Match reports whether value satisfies the filter. Lists and maps only
// support the contains operand "@".
func (f Filter) Match(value any) bool {
	if value == nil {
		return false
	}

	var hit bool
	switch v := value.(type) {
	case []string:
		hit = f.Operand == "@" && containsString(v, f.Target)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
		hit = f.Operand == "@" && containsString(items, f.Target)
	case map[string]any:
		_, found := v[f.Target]
		hit = f.Operand == "@" && found
	default:
		return f.matchScalar(InterfaceToString(v))
	}

	if f.Operand != "@" {
		log.Errorf("operand %q does not apply to %T", f.Operand, value)
		return false
	}
	return hit != f.Negate
}

func (f Filter) matchScalar(value string) bool {
	var hit bool
	switch f.Operand {
	case "=":
		hit = value == f.Target
	case "~":
		hit = strings.EqualFold(value, f.Target)
	case "^":
		hit = strings.HasPrefix(value, f.Target)
	case "@":
		hit = strings.Contains(value, f.Target)
	case ">":
		hit = compare(value, f.Target) > 0
	case "<":
		hit = compare(value, f.Target) < 0
	case "/":
		if f.re == nil {
			return false
		}
		hit = f.re.MatchString(value)
	default:
		log.Error("unsupported filtering operand: " + f.Operand)
		return false
	}
	return hit != f.Negate
}

// compare orders numerically when both sides are numbers, else as strings.
func compare(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
