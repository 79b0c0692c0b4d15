package report

import (
	"encoding/json"
	"io"
	"strconv"
)

// JSONWriter writes reports as JSON. Each table row becomes an object keyed
// by column name, with numeric columns encoded as numbers.
type JSONWriter struct {
	output       io.Writer
	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables indented output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint indents with two spaces.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{output: output}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type jsonReport struct {
	Title   string      `json:"title,omitempty"`
	Summary string      `json:"summary,omitempty"`
	Tables  []jsonTable `json:"tables"`
}

type jsonTable struct {
	Title string           `json:"title,omitempty"`
	Rows  []map[string]any `json:"rows"`
	Note  string           `json:"note,omitempty"`
}

// Write encodes r followed by a newline.
func (w *JSONWriter) Write(r *Report) (int, error) {
	out := jsonReport{Title: r.Title, Summary: r.Summary, Tables: make([]jsonTable, 0, len(r.Tables))}
	for _, t := range r.Tables {
		jt := jsonTable{Title: t.Title, Rows: make([]map[string]any, 0, len(t.Rows))}
		if len(t.Rows) == 0 {
			jt.Note = t.Note
		}
		for _, row := range t.Rows {
			obj := make(map[string]any, len(t.Columns))
			for i, col := range t.Columns {
				if i >= len(row) {
					obj[col.Name] = nil
					continue
				}
				obj[col.Name] = cellValue(col, row[i])
			}
			jt.Rows = append(jt.Rows, obj)
		}
		out.Tables = append(out.Tables, jt)
	}

	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(out, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	return w.output.Write(data)
}

func cellValue(col Column, v string) any {
	if col.Numeric {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return v
}
