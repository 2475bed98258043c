package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tbourn/go-movie-collection/internal/catalog"
	"github.com/tbourn/go-movie-collection/internal/domain"
	"github.com/tbourn/go-movie-collection/internal/services"
)

// column renders one field of T.
type column[T any] struct {
	header string
	align  text.Align
	cell   func(T) string
}

var movieColumns = []column[domain.Movie]{
	{"Rank", text.AlignRight, func(m domain.Movie) string { return strconv.Itoa(m.Ranking) }},
	{"ID", text.AlignRight, func(m domain.Movie) string { return strconv.FormatUint(uint64(m.ID), 10) }},
	{"Title", text.AlignLeft, func(m domain.Movie) string { return m.Title }},
	{"Year", text.AlignRight, func(m domain.Movie) string { return strconv.Itoa(m.Year) }},
	{"Rating", text.AlignRight, func(m domain.Movie) string { return formatRating(m.Rating) }},
	{"Review", text.AlignLeft, func(m domain.Movie) string { return preview(m.Review, reviewPreviewLen) }},
}

var resultColumns = []column[catalog.SearchResult]{
	{"Catalog ID", text.AlignRight, func(r catalog.SearchResult) string { return strconv.FormatInt(r.ID, 10) }},
	{"Title", text.AlignLeft, func(r catalog.SearchResult) string { return r.Title }},
	{"Year", text.AlignRight, func(r catalog.SearchResult) string {
		if y, err := services.ReleaseYear(r.ReleaseDate); err == nil {
			return strconv.Itoa(y)
		}
		return "-"
	}},
}

// renderTable draws items with one row per item and a rounded border.
func renderTable[T any](cols []column[T], items []T) string {
	if len(cols) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(cols))
	configs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		header[i] = c.header
		configs[i] = table.ColumnConfig{Number: i + 1, Align: c.align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, it := range items {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = c.cell(it)
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}
