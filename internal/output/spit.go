// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"

	"github.com/staranto/modcli/internal/config"
	"github.com/staranto/modcli/internal/result"
)

// Formats understood by Spit.
const (
	Text = "text"
	JSON = "json"
	YAML = "yaml"
)

// Formats lists the values accepted for the output flag.
var Formats = []string{Text, JSON, YAML}

// Options carry the global presentation flags.
type Options struct {
	Format string
	// Query is a gjson path evaluated against the JSON document of the
	// result. When set, only the selected value is written.
	Query  string
	Filter string
	Sort   string
	// Columns reorders, hides, retitles or transforms text table columns,
	// see Columns.Set.
	Columns string
	Color  bool
	Titles bool
}

// Document is the serialized form of a result.Result.
type Document struct {
	Tool      string         `json:"tool" yaml:"tool"`
	Module    string         `json:"module" yaml:"module"`
	Submodule string         `json:"submodule,omitempty" yaml:"submodule,omitempty"`
	Global    map[string]any `json:"global" yaml:"global"`
	Values    map[string]any `json:"values" yaml:"values"`
	Args      []string       `json:"args" yaml:"args"`
}

func NewDocument(tool string, res *result.Result) Document {
	args := res.Args
	if args == nil {
		args = []string{}
	}
	return Document{
		Tool:      tool,
		Module:    res.Module,
		Submodule: res.Submodule,
		Global:    res.Global,
		Values:    res.Values,
		Args:      args,
	}
}

// Dataset flattens a result into one row per destination with the keys
// scope, name and value. Rows come out ordered by scope then name.
func Dataset(res *result.Result) []map[string]interface{} {
	var rows []map[string]interface{}
	add := func(scope string, values map[string]any) {
		names := make([]string, 0, len(values))
		for n := range values {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			rows = append(rows, map[string]interface{}{
				"scope": scope,
				"name":  n,
				"value": values[n],
			})
		}
	}
	add("global", res.Global)
	add(res.Path(), res.Values)
	for i, a := range res.Args {
		rows = append(rows, map[string]interface{}{
			"scope": "args",
			"name":  strconv.Itoa(i),
			"value": a,
		})
	}
	return rows
}

// Spit writes res to w in the requested format.
func Spit(tool string, res *result.Result, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	doc := NewDocument(tool, res)

	if opts.Query != "" {
		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		selected := gjson.GetBytes(raw, opts.Query)
		log.Debugf("query %q exists=%v", opts.Query, selected.Exists())
		if !selected.Exists() {
			return fmt.Errorf("query %q matched nothing", opts.Query)
		}
		switch opts.Format {
		case JSON:
			_, err = fmt.Fprintln(w, selected.Raw)
		case YAML:
			var out []byte
			if out, err = yaml.Marshal(selected.Value()); err == nil {
				_, err = w.Write(out)
			}
		default:
			_, err = fmt.Fprintln(w, selected.String())
		}
		return err
	}

	switch opts.Format {
	case JSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case YAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		_, err = w.Write(out)
		return err
	case Text, "":
		cols := DefaultColumns()
		if err := cols.Set(opts.Columns); err != nil {
			return err
		}
		rows := FilterDataset(Dataset(res), opts.Filter)
		SortDataset(rows, opts.Sort)
		TableWriter(rows, cols.Visible(), opts, w)
		return nil
	}

	return fmt.Errorf("unsupported output format %q", opts.Format)
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(
	resultSet []map[string]interface{},
	columns Columns,
	opts Options,
	w io.Writer) {

	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 2)
	log.Debugf("padding: %v", pad)

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(columns))
		for _, c := range columns {
			row = append(row, c.Apply(InterfaceToString(result[c.Key], "-")))
		}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		headers := make([]string, 0, len(columns))
		for _, c := range columns {
			headers = append(headers, strings.ToUpper(c.Title))
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// InterfaceToString converts supported primitive or composite values to a
// string. nil and the empty string render as emptyValue, "" by default.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil {
		return emptyValue[0]
	}
	if rv := reflect.ValueOf(value); (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map) && rv.IsNil() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		if value == "" {
			return emptyValue[0]
		}
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
