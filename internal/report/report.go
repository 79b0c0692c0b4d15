// Package report renders page views as tables in several output formats:
// aligned terminal tables, JSON, Markdown, and XLSX workbooks.
package report

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// Column describes one table column. Numeric columns hold integer text and
// are right-aligned or typed as numbers where the format allows.
type Column struct {
	Name    string
	Numeric bool
}

// Table is a titled grid of cells. Note is printed in place of the rows when
// the table is empty.
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]string
	Note    string
}

// Header returns the column names.
func (t Table) Header() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// Report is a titled sequence of tables.
type Report struct {
	Title   string
	Summary string
	Tables  []Table
}

// Writer writes a report to its destination and returns the bytes written.
type Writer interface {
	Write(r *Report) (int, error)
}

// Format names an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatXLSX     Format = "xlsx"
)

// Formats lists the supported formats.
var Formats = []Format{FormatTable, FormatJSON, FormatMarkdown, FormatXLSX}

// ParseFormat resolves a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table", "text":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", eris.Errorf("report: unknown format %q", s)
}

// NewWriter returns the writer for format.
func NewWriter(format Format, output io.Writer) (Writer, error) {
	switch format {
	case FormatTable:
		return NewTableWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatXLSX:
		return NewXLSXWriter(output), nil
	}
	return nil, eris.Errorf("report: unknown format %q", format)
}

// MultiWriter writes the same report to several writers, stopping at the
// first error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter combines writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write writes r to every writer and returns the total bytes written.
func (m *MultiWriter) Write(r *Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(r)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// countingWriter tracks bytes written through it.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
