package skillattack

import (
	"carddraw-backend/internal/components/assert"
	"carddraw-backend/internal/components/telemetry"
	"carddraw-backend/internal/songs"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	report_client_fetch_songs = "client.fetch-songs"
)

const DEFAULT_URL = "http://skillattack.com/sa4/data/master_music.txt"

type Client struct {
	http   *resty.Client
	url    string
	layout songs.Layout
	tel    telemetry.API
}

type ClientOptions struct {
	// defaults to DEFAULT_URL
	Url string
	// defaults to 30 seconds
	Timeout time.Duration
	// defaults to songs.DefaultLayout
	Layout *songs.Layout
	// optional, receives a dump of every request
	Output telemetry.InstrumentOutput
}

func NewClient(opts ClientOptions, tel telemetry.API) Client {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("skillattack", tel)

	if opts.Url == "" {
		opts.Url = DEFAULT_URL
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	layout := songs.DefaultLayout
	if opts.Layout != nil {
		layout = *opts.Layout
	}

	httpClient := resty.New()
	httpClient.SetTimeout(opts.Timeout)
	telemetry.InstrumentResty(httpClient, tel, opts.Output)

	return Client{
		http:   httpClient,
		url:    opts.Url,
		layout: layout,
		tel:    tel,
	}
}

// FetchSongs downloads the whole music list and returns a song for each of its lines,
// in the order of the list.
func (c Client) FetchSongs(ctx context.Context) ([]songs.Song, error) {
	c.tel.ReportDebug("fetching data from skillattack.com", c.url)

	res, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(c.url)
	if err != nil {
		c.tel.ReportBroken(
			report_client_fetch_songs,
			fmt.Errorf("fetch: %w", err),
			c.url,
		)
		return nil, fmt.Errorf("skillattack: fetch music list: %w", err)
	}
	body := res.RawBody()
	defer body.Close()

	if res.IsError() {
		err := fmt.Errorf("unexpected status %s", res.Status())
		c.tel.ReportBroken(report_client_fetch_songs, err, c.url)
		return nil, fmt.Errorf("skillattack: fetch music list: %w", err)
	}

	result, err := ReadSongs(body, c.layout)
	if err != nil {
		c.tel.ReportBroken(
			report_client_fetch_songs,
			fmt.Errorf("read: %w", err),
			c.url,
		)
		return nil, fmt.Errorf("skillattack: read music list: %w", err)
	}
	if len(result) == 0 {
		c.tel.ReportWarning(
			report_client_fetch_songs,
			fmt.Errorf("no songs found"),
			c.url,
		)
	}

	c.tel.ReportCount("songs", int64(len(result)))
	return result, nil
}
