package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column describes one column of a command report.
type column struct {
	Title string
	Align text.Align
	// MaxWidth wraps longer cells, zero means unbounded.
	MaxWidth int
}

var (
	pathColumn    = column{Title: "File", Align: text.AlignLeft}
	countColumn   = column{Title: "Frames", Align: text.AlignRight}
	paletteColumn = column{Title: "Palette", Align: text.AlignLeft, MaxWidth: 48}
)

// renderReport renders rows under cols. A non-empty footer is written
// as a closing row spanning the table.
func renderReport(cols []column, rows [][]string, footer string) string {
	if len(cols) == 0 {
		return ""
	}

	tw := table.NewWriter()
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault
	tw.SetStyle(style)

	header := make(table.Row, len(cols))
	configs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		header[i] = c.Title
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       c.Align,
			AlignHeader: text.AlignLeft,
			WidthMax:    c.MaxWidth,
		}
		if c.MaxWidth > 0 {
			configs[i].WidthMaxEnforcer = text.WrapSoft
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(cols))
		for i := range cols {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	if footer != "" {
		f := make(table.Row, len(cols))
		for i := range f {
			f[i] = footer
		}
		tw.AppendFooter(f, table.RowConfig{AutoMerge: true})
	}
	return tw.Render()
}
