package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type format string

const (
	formatTable format = "table"
	formatJSON  format = "json"
	formatYAML  format = "yaml"
)

func parseFormat(s string) (format, error) {
	switch f := format(s); f {
	case formatTable, formatJSON, formatYAML:
		return f, nil
	case "":
		return formatTable, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
}

// result is what a command prints. JSON and YAML encode data; the table
// format prints text when it is set and a table of rows otherwise.
type result struct {
	data    any
	text    string
	headers []string
	rows    [][]string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (c *cli) print(cmd *cobra.Command, r result) error {
	f, err := parseFormat(c.output)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), f, r)
}

func render(w io.Writer, f format, r result) error {
	switch f {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r.data)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r.data); err != nil {
			return err
		}
		return enc.Close()
	}
	if r.rows == nil {
		if r.text == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, r.text)
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(r.headers...).
		Rows(r.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// ok is printed by commands that only have a side effect.
func (c *cli) ok(cmd *cobra.Command, msg string) error {
	return c.print(cmd, result{data: map[string]any{"ok": true, "message": msg}, text: msg})
}
