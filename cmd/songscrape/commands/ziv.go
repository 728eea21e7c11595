package commands

import (
	"carddraw-backend/internal/components/queue"
	"carddraw-backend/internal/remywiki"
	"carddraw-backend/internal/scrapers/ziv"
	"carddraw-backend/internal/songs"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	zivOut  string
	zivUrl  string
	zivRemy bool
)

func init() {
	zivCmd.Flags().StringVarP(&zivOut, "out", "o", "", "The file to write the songs to, stdout if unset.")
	zivCmd.Flags().StringVar(&zivUrl, "url", "", "The game database page to scrape, overrides the config.")
	zivCmd.Flags().BoolVar(&zivRemy, "remy", false, "Resolve the remywiki link of every song.")
	rootCmd.AddCommand(zivCmd)
}

type zivSong struct {
	songs.Song
	RemyLink string `json:"remyLink,omitempty"`
}

// resolveRemyLinks runs the RemyLink of every song at once, the shared queue is what
// bounds them. A failed song is left without a link.
func resolveRemyLinks(ctx context.Context, list []songs.Song) ([]string, error) {
	links := make([]string, len(list))
	errs := make([]error, len(list))

	var group errgroup.Group
	for i, song := range list {
		if song.RemyLink == nil {
			continue
		}
		group.Go(func() error {
			link, ok, err := song.RemyLink(ctx)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", song.Name, err)
				return nil
			}
			if ok {
				links[i] = link
			}
			return nil
		})
	}
	group.Wait()

	return links, errors.Join(errs...)
}

var zivCmd = &cobra.Command{
	Use:   "ziv [--url <game db url>] [--remy] [-o <path/to/songs.json>]",
	Short: "Scrapes the zenius-i-vanisher.com game database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := cfg.ZivUrl
		if zivUrl != "" {
			url = zivUrl
		}

		q := queue.New(cfg.Concurrency)
		remy := remywiki.NewClient(remywiki.ClientOptions{
			Timeout: cfg.Timeout(),
			Queue:   q,
			Output:  output,
		}, tel)
		client := ziv.NewClient(ziv.ClientOptions{
			Url:               url,
			Timeout:           cfg.Timeout(),
			RequestsPerSecond: cfg.RequestsPerSecond,
			CloudflareBypass:  cfg.CloudflareBypass,
			UserAgent:         cfg.UserAgent,
			Queue:             q,
			Canonicalizer:     remy,
			Output:            output,
		}, tel)

		result, err := client.FetchSongs(cmd.Context())
		if err != nil {
			return err
		}

		var links []string
		if zivRemy {
			links, err = resolveRemyLinks(cmd.Context(), result)
			if err != nil {
				slog.Warn("failed to resolve some remywiki links", "err", err)
			}
		}

		records := make([]zivSong, len(result))
		for i, song := range result {
			records[i] = zivSong{Song: song}
			if links != nil {
				records[i].RemyLink = links[i]
			}
		}

		err = writeJSON(zivOut, records)
		if err != nil {
			return fmt.Errorf("write songs: %w", err)
		}
		if zivOut != "" {
			slog.Info("wrote songs", "path", zivOut, "count", len(result))
			renderSummary(result, links)
		}
		return nil
	},
}
