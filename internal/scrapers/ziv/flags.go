package ziv

import (
	"carddraw-backend/internal/songs"
	"carddraw-backend/pkg/htmlutil"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	no_chart_placeholder = "-"
	notecount_separator  = " / "
	titlebits_separator  = " / "
)

// chartCell is a chart column of a song row, it holds the level as its first
// child and the `step / freeze / shock` counts as its last.
type chartCell struct {
	sel    *goquery.Selection
	tables *Tables
}

func (c chartCell) levelNode() *goquery.Selection {
	return c.sel.Contents().First()
}

func (c chartCell) Level() (int, bool) {
	text := c.levelNode().Text()
	if text == no_chart_placeholder {
		return 0, false
	}
	lvl, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || lvl < 0 {
		return 0, false
	}
	return lvl, true
}

func (c chartCell) Flags() []string {
	var flags []string
	if htmlutil.InlineStyle(c.levelNode(), "color") == c.tables.HighlightColor {
		flags = append(flags, songs.FLAG_UNLOCK)
	}
	shock := parseNoteCounts(c.sel.Contents().Last().Text())[2]
	if !math.IsNaN(shock) && shock > 0 {
		flags = append(flags, songs.FLAG_SHOCK)
	}
	return flags
}

// parseNumber reads a number leniently: surrounding whitespace is ignored and blank
// means zero, anything else unparsable is NaN.
func parseNumber(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// parseNoteCounts reads `step / freeze / shock`, missing counts are NaN and extra
// segments are dropped.
func parseNoteCounts(text string) [3]float64 {
	counts := [3]float64{math.NaN(), math.NaN(), math.NaN()}
	for i, segment := range strings.Split(text, notecount_separator) {
		if i >= len(counts) {
			break
		}
		counts[i] = parseNumber(segment)
	}
	return counts
}

// songFlags reads the lock image that may precede a song's anchor, the image's title
// is `<pack> / <label>` and the label decides the flag.
func songFlags(anchor *goquery.Selection, tables *Tables) []string {
	previous := anchor.Prev()
	if previous.Length() == 0 || goquery.NodeName(previous) != "img" {
		return nil
	}
	if !strings.HasSuffix(previous.AttrOr("src", ""), tables.LockMarker) {
		return nil
	}

	titleBits := strings.Split(previous.AttrOr("title", ""), titlebits_separator)
	if len(titleBits) > 1 && titleBits[1] != "" {
		label := strings.TrimSpace(titleBits[1])
		flag, ok := tables.FlagIndex[label]
		if !ok {
			flag = label
		}
		return []string{flag}
	}
	return []string{songs.FLAG_UNLOCK}
}
