package commands

import (
	"carddraw-backend/internal/scrapers/skillattack"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var skillattackOut string

func init() {
	skillattackCmd.Flags().StringVarP(&skillattackOut, "out", "o", "", "The file to write the songs to, stdout if unset.")
	rootCmd.AddCommand(skillattackCmd)
}

var skillattackCmd = &cobra.Command{
	Use:   "skillattack [-o <path/to/songs.json>]",
	Short: "Fetches the skillattack.com music list.",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := skillattack.NewClient(skillattack.ClientOptions{
			Url:     cfg.SkillAttackUrl,
			Timeout: cfg.Timeout(),
			Output:  output,
		}, tel)

		result, err := client.FetchSongs(cmd.Context())
		if err != nil {
			return err
		}

		err = writeJSON(skillattackOut, result)
		if err != nil {
			return fmt.Errorf("write songs: %w", err)
		}
		if skillattackOut != "" {
			slog.Info("wrote songs", "path", skillattackOut, "count", len(result))
			renderSummary(result, nil)
		}
		return nil
	},
}
