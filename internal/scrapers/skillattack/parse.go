package skillattack

import (
	"bufio"
	"carddraw-backend/internal/songs"
	"html"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// positions of the fields after the index and hash columns
const (
	field_name   = 9
	field_artist = 10
)

// levels are read the way a lenient integer parse would: leading digits count,
// anything after them doesn't
var levelRegex = regexp.MustCompile(`^\s*([+-]?\d+)`)

type levelColumn string

func (c levelColumn) Level() (int, bool) {
	groups := levelRegex.FindStringSubmatch(string(c))
	if len(groups) < 2 {
		return 0, false
	}
	lvl, err := strconv.Atoi(groups[1])
	if err != nil || lvl < 0 {
		return 0, false
	}
	return lvl, true
}

func (c levelColumn) Flags() []string {
	return nil
}

func field(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return fields[i]
}

// ParseLine turns one decoded line of the music list into a song. Missing trailing
// fields are tolerated, they just produce fewer charts or empty strings.
func ParseLine(line string, layout songs.Layout) songs.Song {
	parts := strings.Split(line, "\t")
	index := field(parts, 0)
	hash := field(parts, 1)
	var fields []string
	if len(parts) > 2 {
		fields = parts[2:]
	}

	columns := make([]songs.Column, 0, layout.ChartColumns)
	for i := 0; i < len(fields) && i < layout.ChartColumns; i++ {
		columns = append(columns, levelColumn(fields[i]))
	}

	return songs.Song{
		SaIndex: index,
		SaHash:  hash,
		Name:    html.UnescapeString(field(fields, field_name)),
		Artist:  html.UnescapeString(field(fields, field_artist)),
		Charts:  layout.ExtractCharts(columns),
	}
}

// ReadSongs decodes a Shift_JIS music list and parses every non-blank line of it, the
// songs are returned once the reader is exhausted.
func ReadSongs(r io.Reader, layout songs.Layout) ([]songs.Song, error) {
	decoded := transform.NewReader(r, japanese.ShiftJIS.NewDecoder())
	reader := bufio.NewReader(decoded)

	result := []songs.Song{}
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) != "" {
			result = append(result, ParseLine(line, layout))
		}
		if err == io.EOF {
			return result, nil
		}
	}
}
