package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"chess-fen/pkg/client"
)

const timeLayout = "2006-01-02 15:04"

func renderGames(games []client.Game) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Title", "FEN", "Saved"})
	for _, g := range games {
		saved := ""
		if !g.CreatedAt.IsZero() {
			saved = g.CreatedAt.Local().Format(timeLayout)
		}
		tw.AppendRow(table.Row{g.ID, g.Title, g.FEN, saved})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: 60, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
