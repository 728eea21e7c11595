package commands

import (
	"carddraw-backend/internal/songs"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "songscrape.json5"))
	require.NoError(t, err)
	require.Equal(t, defaultConfig, cfg)
}

func TestLoadConfigOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songscrape.json5")
	err := os.WriteFile(path, []byte(`{
		concurrency: 2,
		cloudflare_bypass: true,
		otlp: { traces: { http_endpoint: "http://localhost:4318" } },
	}`), 0600)
	require.NoError(t, err)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Concurrency)
	require.True(t, cfg.CloudflareBypass)
	require.Equal(t, "http://localhost:4318", cfg.Otlp.Traces.HttpEndpoint)
	require.Equal(t, defaultConfig.ZivUrl, cfg.ZivUrl)
	require.Equal(t, defaultConfig.TimeoutSeconds, cfg.TimeoutSeconds)
}

func TestResolveRemyLinks(t *testing.T) {
	failure := errors.New("song page unavailable")
	list := []songs.Song{
		{
			Name: "Linked",
			RemyLink: func(ctx context.Context) (string, bool, error) {
				return "https://remywiki.com/Linked", true, nil
			},
		},
		{
			Name: "Unlinked",
			RemyLink: func(ctx context.Context) (string, bool, error) {
				return "", false, nil
			},
		},
		{
			Name: "Broken",
			RemyLink: func(ctx context.Context) (string, bool, error) {
				return "", false, failure
			},
		},
		{Name: "Text source song"},
	}

	links, err := resolveRemyLinks(context.Background(), list)
	require.ErrorIs(t, err, failure)
	require.ErrorContains(t, err, "Broken")
	require.Equal(t, []string{"https://remywiki.com/Linked", "", "", ""}, links)
}
