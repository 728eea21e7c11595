package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Url         string `json:"url"`
	Concurrency int    `json:"concurrency"`
	Bypass      bool   `json:"bypass"`
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "songscrape.json5"), `{
		// comments are allowed
		url: "https://example.com",
		concurrency: 2,
	}`)
	writeFile(t, filepath.Join(dir, "songscrape.local.json5"), `{ concurrency: 8, bypass: true }`)

	cfg, err := ReadConfig(filepath.Join(dir, "songscrape.json5"), testConfig{
		Url:         "https://default.example.com",
		Concurrency: 1,
	})
	require.NoError(t, err)
	require.Equal(t, testConfig{
		Url:         "https://example.com",
		Concurrency: 8,
		Bypass:      true,
	}, cfg)
}

func TestReadConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "songscrape.json5"), `{ bypass: true }`)

	defaults := testConfig{Url: "https://default.example.com", Concurrency: 6}
	cfg, err := ReadConfig(filepath.Join(dir, "songscrape.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, "https://default.example.com", cfg.Url)
	require.Equal(t, 6, cfg.Concurrency)
	require.True(t, cfg.Bypass)
}

func TestReadConfigMissing(t *testing.T) {
	defaults := testConfig{Concurrency: 6}
	cfg, err := ReadConfig(filepath.Join(t.TempDir(), "missing.json5"), defaults)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Equal(t, defaults, cfg)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.json5"), `{ url: `)

	_, err := ReadConfig(filepath.Join(dir, "broken.json5"), testConfig{})
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrNotExist)
}
