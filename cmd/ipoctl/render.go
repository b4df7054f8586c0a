package main

import (
	"fmt"
	"strings"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/JonMunkholm/ipoadmin/internal/table"
)

var toneColors = map[table.Tone]text.Colors{
	table.ToneSuccess: {text.FgGreen},
	table.ToneWarning: {text.FgYellow},
	table.ToneDanger:  {text.FgRed},
	table.ToneInfo:    {text.FgCyan},
	table.ToneMuted:   {text.FgHiBlack},
}

// renderGrid writes grid as a terminal table. Action columns are skipped.
func (a *app) renderGrid(grid table.Grid) {
	if grid.Empty {
		msg := grid.EmptyMessage
		if msg == "" {
			msg = table.DefaultEmptyMessage
		}
		fmt.Fprintln(a.out, msg)
		return
	}

	var keep []int
	hdr := prettytable.Row{}
	for i, h := range grid.Headers {
		if h.Action {
			continue
		}
		keep = append(keep, i)
		hdr = append(hdr, strings.ToUpper(h.Label))
	}

	tw := prettytable.NewWriter()
	tw.SetOutputMirror(a.out)
	tw.SetStyle(prettytable.StyleLight)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.AppendHeader(hdr)

	colored := a.v.GetBool("color")
	for _, r := range grid.Rows {
		row := make(prettytable.Row, 0, len(keep))
		for _, i := range keep {
			c := r.Cells[i]
			if colors, ok := toneColors[c.Tone]; ok && colored {
				row = append(row, colors.Sprint(c.Text))
				continue
			}
			row = append(row, c.Text)
		}
		tw.AppendRow(row)
	}
	tw.Render()
}
