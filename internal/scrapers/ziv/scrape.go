package ziv

import (
	"carddraw-backend/internal/components/assert"
	"carddraw-backend/internal/components/telemetry"
	"carddraw-backend/internal/songs"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	report_scrape_headers = "scrape.headers"
	report_scrape_anchors = "scrape.anchors"
)

const (
	header_selector = `th[colspan="11"] span`
	song_selector   = `a[href^="songdb.php"]`
)

var leadingCount = regexp.MustCompile(`^[0-9]*`)

// Release is one of the release headers of the game page along with the amount of
// songs listed under it.
type Release struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Scraper turns a parsed game page into songs.
type Scraper struct {
	tables   Tables
	layout   songs.Layout
	base     *url.URL
	enricher *Enricher
	tel      telemetry.API
}

type ScraperOptions struct {
	// the page's own url, song page links are resolved against it
	Base *url.URL
	// defaults to DefaultTables()
	Tables *Tables
	// defaults to songs.DefaultLayout
	Layout *songs.Layout
	// optional, songs get no RemyLink without it
	Enricher *Enricher
}

func NewScraper(opts ScraperOptions, tel telemetry.API) Scraper {
	assert.NotNil(tel)

	tables := defaultTables
	if opts.Tables != nil {
		tables = *opts.Tables
	}
	layout := songs.DefaultLayout
	if opts.Layout != nil {
		layout = *opts.Layout
	}

	return Scraper{
		tables:   tables.clone(),
		layout:   layout,
		base:     opts.Base,
		enricher: opts.Enricher,
		tel:      tel,
	}
}

// Releases reads the release headers in page order, pairing each with its name from
// the folder table. Headers past the end of the table are reported and left out.
func (s Scraper) Releases(doc *goquery.Document) []Release {
	var releases []Release
	doc.Find(header_selector).Each(func(i int, header *goquery.Selection) {
		if i >= len(s.tables.Folders) {
			s.tel.ReportWarning(
				report_scrape_headers,
				fmt.Errorf("header %d has no known release name", i),
				header.Text(),
			)
			return
		}
		// a header with no leading digits counts as empty
		count, _ := strconv.Atoi(leadingCount.FindString(header.Text()))
		releases = append(releases, Release{
			Name:  s.tables.Folders[i],
			Count: count,
		})
	})
	return releases
}

// ScrapeSongs returns the songs of the page in page order. The song anchors are
// assigned to releases sequentially, the first release taking as many anchors as its
// header counts and so on.
func (s Scraper) ScrapeSongs(doc *goquery.Document) []songs.Song {
	releases := s.Releases(doc)
	for _, release := range releases {
		s.tel.ReportDebug("release", release.Name, release.Count)
	}

	anchors := doc.Find(song_selector)
	result := []songs.Song{}

	loop := 0
	for _, release := range releases {
		for current := 0; current < release.Count; current++ {
			if loop >= anchors.Length() {
				s.tel.ReportWarning(
					report_scrape_anchors,
					fmt.Errorf(
						"headers count more songs than there are anchors (%d)",
						anchors.Length(),
					),
					release.Name,
				)
				return result
			}
			result = append(result, s.song(anchors.Eq(loop), release.Name))
			loop++
		}
	}
	if loop < anchors.Length() {
		s.tel.ReportWarning(
			report_scrape_anchors,
			fmt.Errorf("%d anchors not counted by any header", anchors.Length()-loop),
		)
	}

	return result
}

func (s Scraper) song(anchor *goquery.Selection, folder string) songs.Song {
	row := anchor.Parent().Parent()
	cells := row.Children()

	titleCell := cells.First()
	artistNode := titleCell.Contents().Last()
	if strings.TrimSpace(artistNode.Text()) == "" {
		artistNode = titleCell.Children().Last()
	}

	name := strings.TrimSpace(anchor.Text())
	if corrected, ok := s.tables.TitleCorrections[name]; ok {
		name = corrected
	}

	var columns []songs.Column
	cells.Each(func(i int, cell *goquery.Selection) {
		if i < 2 {
			return
		}
		columns = append(columns, chartCell{sel: cell, tables: &s.tables})
	})

	song := songs.Song{
		Name:              name,
		NameTranslation:   TranslationText(anchor),
		Artist:            strings.TrimSpace(artistNode.Text()),
		ArtistTranslation: TranslationText(artistNode),
		Bpm:               strings.TrimSpace(cells.Eq(1).Text()),
		Folder:            folder,
		Charts:            s.layout.ExtractCharts(columns),
		Flags:             songFlags(anchor, &s.tables),
	}

	if s.enricher != nil {
		if detail := s.detailUrl(anchor); detail != nil {
			song.RemyLink = s.enricher.LinkFunc(detail)
		}
	}

	return song
}

func (s Scraper) detailUrl(anchor *goquery.Selection) *url.URL {
	href, err := url.Parse(strings.TrimSpace(anchor.AttrOr("href", "")))
	if err != nil {
		s.tel.ReportWarning(report_scrape_anchors, fmt.Errorf("parse href: %w", err))
		return nil
	}
	if s.base == nil {
		return href
	}
	return s.base.ResolveReference(href)
}
