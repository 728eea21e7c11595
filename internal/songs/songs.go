// Package songs is the normalized song/chart model both sources are scraped into.
package songs

import "context"

type Style string

const (
	STYLE_SINGLE Style = "single"
	STYLE_DOUBLE Style = "double"
)

type DiffClass string

const (
	DIFF_BEGINNER  DiffClass = "beginner"
	DIFF_BASIC     DiffClass = "basic"
	DIFF_DIFFICULT DiffClass = "difficult"
	DIFF_EXPERT    DiffClass = "expert"
	DIFF_CHALLENGE DiffClass = "challenge"
)

const (
	FLAG_UNLOCK = "unlock"
	FLAG_SHOCK  = "shock"
)

type Chart struct {
	Lvl       int       `json:"lvl"`
	Style     Style     `json:"style"`
	DiffClass DiffClass `json:"diffClass"`
	// nil when the chart has no flags, never an empty slice
	Flags []string `json:"flags,omitempty"`
}

// LinkFunc lazily resolves an external link for a song. ok is false when the song
// simply has no such link.
type LinkFunc func(ctx context.Context) (link string, ok bool, err error)

type Song struct {
	Name              string  `json:"name"`
	NameTranslation   string  `json:"name_translation,omitempty"`
	Artist            string  `json:"artist"`
	ArtistTranslation string  `json:"artist_translation,omitempty"`
	Bpm               string  `json:"bpm,omitempty"`
	Folder            string  `json:"folder,omitempty"`
	Charts            []Chart `json:"charts"`
	// nil when the song has no flags, never an empty slice
	Flags   []string `json:"flags,omitempty"`
	SaHash  string   `json:"saHash,omitempty"`
	SaIndex string   `json:"saIndex,omitempty"`

	// RemyLink is only set on songs whose source can resolve a RemyWiki page, nothing
	// is fetched until it is called.
	RemyLink LinkFunc `json:"-"`
}
