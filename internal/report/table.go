package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	noteStyle   = lipgloss.NewStyle().Italic(true)
)

// TableWriter renders bordered terminal tables.
type TableWriter struct {
	output io.Writer
}

// NewTableWriter creates a TableWriter.
func NewTableWriter(output io.Writer) *TableWriter {
	return &TableWriter{output: output}
}

// Write renders every table of r.
func (w *TableWriter) Write(r *Report) (int, error) {
	var b strings.Builder
	if r.Title != "" {
		b.WriteString(titleStyle.Render(r.Title))
		b.WriteString("\n")
	}
	if r.Summary != "" {
		b.WriteString(r.Summary)
		b.WriteString("\n")
	}
	for _, t := range r.Tables {
		b.WriteString("\n")
		b.WriteString(RenderTable(t))
		b.WriteString("\n")
	}
	return fmt.Fprint(w.output, b.String())
}

// RenderTable renders one table as a string.
func RenderTable(t Table) string {
	var b strings.Builder
	if t.Title != "" {
		b.WriteString(titleStyle.Render(t.Title))
		b.WriteString("\n")
	}
	if len(t.Rows) == 0 {
		b.WriteString(noteStyle.Render(t.Note))
		return b.String()
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Header()...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col < len(t.Columns) && t.Columns[col].Numeric {
				return numberStyle
			}
			return cellStyle
		})
	b.WriteString(tbl.String())
	return b.String()
}
