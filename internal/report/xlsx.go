package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// maxSheetName is the sheet name length limit of the xlsx format.
const maxSheetName = 31

// XLSXWriter writes reports as workbooks with one sheet per table.
type XLSXWriter struct {
	output io.Writer
}

// NewXLSXWriter creates an XLSXWriter.
func NewXLSXWriter(output io.Writer) *XLSXWriter {
	return &XLSXWriter{output: output}
}

// Write builds the workbook and writes it to the output.
func (w *XLSXWriter) Write(r *Report) (int, error) {
	f, err := Workbook(r)
	if err != nil {
		return 0, err
	}
	cw := &countingWriter{w: w.output}
	if err := f.Write(cw); err != nil {
		return cw.n, eris.Wrap(err, "xlsx: write workbook")
	}
	return cw.n, nil
}

// Workbook converts r into an xlsx file. Numeric columns are stored as
// integer cells.
func Workbook(r *Report) (*xlsx.File, error) {
	f := xlsx.NewFile()
	used := make(map[string]int)

	for i, t := range r.Tables {
		name := sheetName(t.Title, i, used)
		sheet, err := f.AddSheet(name)
		if err != nil {
			return nil, eris.Wrapf(err, "xlsx: add sheet %q", name)
		}

		header := sheet.AddRow()
		for _, col := range t.Columns {
			header.AddCell().SetString(col.Name)
		}
		for _, rowData := range t.Rows {
			row := sheet.AddRow()
			for j, v := range rowData {
				cell := row.AddCell()
				if j < len(t.Columns) && t.Columns[j].Numeric {
					if n, err := strconv.Atoi(v); err == nil {
						cell.SetInt(n)
						continue
					}
				}
				cell.SetString(v)
			}
		}
	}

	if len(f.Sheets) == 0 {
		if _, err := f.AddSheet("Report"); err != nil {
			return nil, eris.Wrap(err, "xlsx: add sheet")
		}
	}
	return f, nil
}

// sheetName derives a unique, valid sheet name from a table title.
func sheetName(title string, index int, used map[string]int) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "Sheet" + strconv.Itoa(index+1)
	}
	if len([]rune(name)) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}

	base := name
	for used[strings.ToLower(name)] > 0 {
		used[strings.ToLower(base)]++
		suffix := " (" + strconv.Itoa(used[strings.ToLower(base)]) + ")"
		trimmed := []rune(base)
		if len(trimmed)+len(suffix) > maxSheetName {
			trimmed = trimmed[:maxSheetName-len(suffix)]
		}
		name = string(trimmed) + suffix
	}
	used[strings.ToLower(name)]++
	return name
}
