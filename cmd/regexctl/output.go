package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	regexboard "github.com/kailas-cloud/regexboard/pkg/sdk"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderPatterns(w io.Writer, patterns []regexboard.Pattern) {
	t := newTable(w)
	t.AppendHeader(table.Row{"#", "ID", "Regex"})
	for i, p := range patterns {
		t.AppendRow(table.Row{i + 1, p.ID, p.Regex})
	}
	t.Render()
}

func renderMatches(w io.Writer, matches []regexboard.Match) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Pattern", "Regex", "Matched Text", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Matched Text", WidthMax: 40},
	})
	for _, m := range matches {
		t.AppendRow(table.Row{m.Pattern.ID, m.Pattern.Regex, strconv.Quote(m.Text), status(m.Approved)})
	}
	t.SetCaption("%d match(es)", len(matches))
	t.Render()
}

func renderState(w io.Writer, st regexboard.State) {
	renderPatterns(w, st.Patterns)
	renderMatches(w, st.Document.Matches)
}

func renderDocument(w io.Writer, doc regexboard.Document) {
	_, _ = fmt.Fprintln(w, text.WrapSoft(doc.Text, 80))
	_, _ = fmt.Fprintln(w)
	renderMatches(w, doc.Matches)
}

func renderView(w io.Writer, v regexboard.View) {
	t := newTable(w)
	t.SetTitle("Mode: %s", v.Mode)
	t.AppendHeader(table.Row{"", "ID", "Regex", "Pending", "Approved"})
	for _, s := range v.Patterns {
		marker := ""
		if v.Selected != nil && v.Selected.ID == s.Pattern.ID {
			marker = ">"
		}
		t.AppendRow(table.Row{marker, s.Pattern.ID, s.Pattern.Regex, s.Counts.Pending, s.Counts.Approved})
	}
	t.Render()

	if v.Selected == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "\nPending (%d)\n", len(v.Pending))
	renderMatches(w, v.Pending)
	_, _ = fmt.Fprintf(w, "\nApproved (%d)\n", len(v.Approved))
	renderMatches(w, v.Approved)
}

func status(approved bool) string {
	if approved {
		return text.FgGreen.Sprint("approved")
	}
	return text.FgYellow.Sprint("pending")
}
