package commands

import (
	"carddraw-backend/internal/songs"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

// writeJSON writes `value` to the file at `path`, or stdout when path is empty.
func writeJSON(path string, value any) error {
	var out io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(value)
}

func readSongs(path string) ([]songs.Song, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var result []songs.Song
	err = json.Unmarshal(contents, &result)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return result, nil
}

type folderStats struct {
	songs   int
	singles int
	doubles int
	links   int
}

// renderSummary prints song and chart counts per folder in the order folders first
// appear, `links` may be nil.
func renderSummary(list []songs.Song, links []string) {
	var order []string
	stats := map[string]*folderStats{}
	for i, song := range list {
		folder := song.Folder
		if folder == "" {
			folder = "(none)"
		}
		s, ok := stats[folder]
		if !ok {
			s = &folderStats{}
			stats[folder] = s
			order = append(order, folder)
		}

		s.songs++
		for _, chart := range song.Charts {
			if chart.Style == songs.STYLE_SINGLE {
				s.singles++
			} else {
				s.doubles++
			}
		}
		if links != nil && links[i] != "" {
			s.links++
		}
	}

	t := newTable()
	header := table.Row{"folder", "songs", "single", "double"}
	if links != nil {
		header = append(header, "remywiki")
	}
	t.AppendHeader(header)

	total := folderStats{}
	for _, folder := range order {
		s := stats[folder]
		row := table.Row{folder, s.songs, s.singles, s.doubles}
		if links != nil {
			row = append(row, s.links)
		}
		t.AppendRow(row)

		total.songs += s.songs
		total.singles += s.singles
		total.doubles += s.doubles
		total.links += s.links
	}

	footer := table.Row{"total", total.songs, total.singles, total.doubles}
	if links != nil {
		footer = append(footer, total.links)
	}
	t.AppendFooter(footer)
	t.Render()
}
