package commands

import (
	"carddraw-backend/internal/songlink"
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	linkThreshold float64
	linkUnpaired  bool
)

func init() {
	linkCmd.Flags().Float64Var(&linkThreshold, "threshold", 0.8, "The least similarity a fuzzy pair can have.")
	linkCmd.Flags().BoolVar(&linkUnpaired, "unpaired", false, "Also list the songs that were not paired.")
	rootCmd.AddCommand(linkCmd)
}

var linkCmd = &cobra.Command{
	Use:   "link <skillattack.json> <ziv.json>",
	Short: "Pairs the songs of a skillattack and a ziv scrape by title.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		left, err := readSongs(args[0])
		if err != nil {
			return fmt.Errorf("read skillattack songs: %w", err)
		}
		right, err := readSongs(args[1])
		if err != nil {
			return fmt.Errorf("read ziv songs: %w", err)
		}

		pairs := songlink.Link(left, right, linkThreshold)
		sort.Slice(pairs, func(i, j int) bool {
			return pairs[i].Left < pairs[j].Left
		})

		t := newTable()
		t.AppendHeader(table.Row{"skillattack", "ziv", "correlation"})
		for _, p := range pairs {
			t.AppendRow(table.Row{
				left[p.Left].Name,
				right[p.Right].Name,
				fmt.Sprintf("%.3f", p.Correlation),
			})
		}

		unpairedLeft := songlink.Unpaired(pairs, len(left), true)
		unpairedRight := songlink.Unpaired(pairs, len(right), false)
		if linkUnpaired {
			t.AppendSeparator()
			for _, i := range unpairedLeft {
				t.AppendRow(table.Row{left[i].Name, "", ""})
			}
			for _, i := range unpairedRight {
				t.AppendRow(table.Row{"", right[i].Name, ""})
			}
		}
		t.AppendFooter(table.Row{
			fmt.Sprintf("%d unpaired", len(unpairedLeft)),
			fmt.Sprintf("%d unpaired", len(unpairedRight)),
			fmt.Sprintf("%d pairs", len(pairs)),
		})
		t.Render()
		return nil
	},
}
