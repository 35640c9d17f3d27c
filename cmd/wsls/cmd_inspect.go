package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lexcodex/wsls/internal/wsls/tui"
	"github.com/lexcodex/wsls/whitespace/parse"
)

func newInspectCmd() *cobra.Command {
	var (
		flagVisible bool
		flagJSON    bool
		flagTUI     bool
	)
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Tokenize a whitespace program and print what the server sees",
		Long: `Inspect tokenizes a program and prints one row per top-level item:
its node kind, the row:column span, and the decoded payload for numbers,
labels, and control-flow instructions. --visible renders the source with
S/T/L stand-ins, --json emits the rows as JSON, and --tui opens an
interactive browser.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			text := string(data)

			ast, err := parse.Parse(text)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", path, err)
			}
			rows := tokenRows(ast)

			switch {
			case flagTUI:
				return tui.Run(path, parse.ToVisible(text), rows)
			case flagJSON:
				return writeRowsJSON(cmd, rows)
			default:
				if flagVisible {
					fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(parse.ToVisible(text), "\n"))
					fmt.Fprintln(cmd.OutOrStdout())
				}
				return writeRowsTable(cmd, rows)
			}
		},
	}
	cmd.Flags().BoolVar(&flagVisible, "visible", false, "Print the source with S/T/L stand-ins before the token table")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Emit the token rows as JSON")
	cmd.Flags().BoolVar(&flagTUI, "tui", false, "Browse the program in an interactive viewer")
	return cmd
}

func tokenRows(ast *parse.Ast) []tui.TokenRow {
	items := ast.Items()
	rows := make([]tui.TokenRow, 0, len(items))
	for _, item := range items {
		n := item.Node
		start, end := n.StartPoint(), n.EndPoint()
		rows = append(rows, tui.TokenRow{
			Kind:  n.Kind(),
			Span:  fmt.Sprintf("%d:%d-%d:%d", start.Row, start.Column, end.Row, end.Column),
			Label: rowLabel(ast.Tree(), item),
		})
	}
	return rows
}

// rowLabel renders the decoded payload of one top-level item. Items without
// a payload, such as ERROR stretches, get an empty label.
func rowLabel(tree *parse.Tree, item parse.Item) string {
	if item.Flow != nil {
		return item.Flow.String()
	}
	n := item.Node
	switch n.Kind() {
	case "num":
		if num, err := parse.DecodeNum(tree, n); err == nil {
			return num.String()
		}
	case "comment":
		return tree.Text(n)
	default:
		for i := 0; i < n.ChildCount(); i++ {
			child := n.Child(i)
			if child.Kind() != "num" {
				continue
			}
			if num, err := parse.DecodeNum(tree, child); err == nil {
				return num.String()
			}
		}
	}
	return ""
}

func writeRowsTable(cmd *cobra.Command, rows []tui.TokenRow) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tSPAN\tLABEL")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\n", row.Kind, row.Span, row.Label)
	}
	return w.Flush()
}

func writeRowsJSON(cmd *cobra.Command, rows []tui.TokenRow) error {
	type jsonRow struct {
		Kind  string `json:"kind"`
		Span  string `json:"span"`
		Label string `json:"label,omitempty"`
	}
	out := make([]jsonRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, jsonRow(row))
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
