// Package report accumulates the pipeline's quality metrics into a single
// ordered document and renders it for humans.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const title = "FlexiMart ETL Data Quality Report"

// Metric is a single named counter.
type Metric struct {
	Key   string
	Value int
}

// Section is a flat, ordered group of counters: one per input source plus the
// final load summary.
type Section struct {
	Name    string
	Metrics []Metric
}

type Report struct {
	Sections []Section
}

func (r *Report) AddSection(name string, metrics ...Metric) {
	r.Sections = append(r.Sections, Section{Name: name, Metrics: metrics})
}

// String renders the plain-text report document.
func (r *Report) String() string {
	var b strings.Builder

	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	for _, section := range r.Sections {
		fmt.Fprintf(&b, "[%s]\n", section.Name)
		for _, metric := range section.Metrics {
			fmt.Fprintf(&b, "- %s: %d\n", metric.Key, metric.Value)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Write persists the plain-text report.
func (r *Report) Write(fs afero.Fs, path string) error {
	if err := afero.WriteFile(fs, path, []byte(r.String()), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write report to %s", path)
	}

	return nil
}

// Render prints the report as a table for console output.
func (r *Report) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Section", "Metric", "Value"})

	for i, section := range r.Sections {
		if i > 0 {
			t.AppendSeparator()
		}
		for _, metric := range section.Metrics {
			t.AppendRow(table.Row{section.Name, metric.Key, metric.Value})
		}
	}

	t.Render()
}
