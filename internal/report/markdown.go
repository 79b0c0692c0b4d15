package report

import (
	"io"

	"github.com/nao1215/markdown"
)

// MarkdownWriter writes reports as GitHub-flavored Markdown.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write renders r with one section per table.
func (w *MarkdownWriter) Write(r *Report) (int, error) {
	cw := &countingWriter{w: w.output}
	md := markdown.NewMarkdown(cw)

	if r.Title != "" {
		md.H1(r.Title)
		md.PlainText("")
	}
	if r.Summary != "" {
		md.PlainText(r.Summary)
		md.PlainText("")
	}
	for _, t := range r.Tables {
		if t.Title != "" {
			md.H2(t.Title)
			md.PlainText("")
		}
		if len(t.Rows) == 0 {
			md.PlainTextf("*%s*", t.Note)
			md.PlainText("")
			continue
		}
		md.Table(markdown.TableSet{
			Header:    t.Header(),
			Rows:      t.Rows,
			Alignment: alignments(t.Columns),
		})
		md.PlainText("")
	}

	err := md.Build()
	return cw.n, err
}

func alignments(cols []Column) []markdown.TableAlignment {
	out := make([]markdown.TableAlignment, len(cols))
	for i, c := range cols {
		if c.Numeric {
			out[i] = markdown.AlignRight
		}
	}
	return out
}
