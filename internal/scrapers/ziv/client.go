package ziv

import (
	"bytes"
	"carddraw-backend/internal/components/assert"
	"carddraw-backend/internal/components/queue"
	"carddraw-backend/internal/components/telemetry"
	"carddraw-backend/internal/songs"
	"context"
	"fmt"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	report_client_fetch_songs = "client.fetch-songs"
)

const (
	DEFAULT_URL         = "https://zenius-i-vanisher.com/v5.2/gamedb.php?gameid=5156&show_notecounts=1&sort=&sort_order=asc"
	DEFAULT_CONCURRENCY = 6
	DEFAULT_USER_AGENT  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"
)

type Client struct {
	http   *resty.Client
	url    string
	tables Tables
	layout *songs.Layout
	enrich *Enricher
	tel    telemetry.API
}

type ClientOptions struct {
	// defaults to DEFAULT_URL
	Url string
	// defaults to 30 seconds
	Timeout time.Duration
	// requests per second across the whole client, 0 means unlimited
	RequestsPerSecond float64
	// routes requests through a transport that looks like a browser to cloudflare
	CloudflareBypass bool
	// defaults to DEFAULT_USER_AGENT
	UserAgent string
	// the queue song page requests wait in, defaults to a queue of DEFAULT_CONCURRENCY
	Queue *queue.Queue
	// canonicalizes the remywiki links found on song pages
	Canonicalizer Canonicalizer
	// defaults to DefaultTables()
	Tables *Tables
	// defaults to songs.DefaultLayout
	Layout *songs.Layout
	// optional, receives a dump of every request
	Output telemetry.InstrumentOutput
}

func NewClient(opts ClientOptions, tel telemetry.API) Client {
	assert.NotNil(tel)
	assert.NotNil(opts.Canonicalizer)

	tel = telemetry.NewScopedAPI("ziv", tel)

	if opts.Url == "" {
		opts.Url = DEFAULT_URL
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DEFAULT_USER_AGENT
	}
	if opts.Queue == nil {
		opts.Queue = queue.New(DEFAULT_CONCURRENCY)
	}
	tables := DefaultTables()
	if opts.Tables != nil {
		tables = opts.Tables.clone()
	}

	httpClient := resty.New()
	httpClient.SetTimeout(opts.Timeout)
	httpClient.SetHeader("user-agent", opts.UserAgent)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(
			httpClient.GetClient().Transport,
		)
	}
	if opts.RequestsPerSecond > 0 {
		limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}
	telemetry.InstrumentResty(httpClient, tel, opts.Output)

	return Client{
		http:   httpClient,
		url:    opts.Url,
		tables: tables,
		layout: opts.Layout,
		enrich: NewEnricher(httpClient, opts.Queue, opts.Canonicalizer, tel),
		tel:    tel,
	}
}

// FetchSongs downloads the game page and scrapes its songs, each song can later
// resolve its RemyWiki link with RemyLink.
func (c Client) FetchSongs(ctx context.Context) ([]songs.Song, error) {
	c.tel.ReportDebug("fetching data from zenius-i-vanisher.com", c.url)

	res, err := c.http.R().
		SetContext(ctx).
		Get(c.url)
	if err != nil {
		c.tel.ReportBroken(
			report_client_fetch_songs,
			fmt.Errorf("fetch: %w", err),
			c.url,
		)
		return nil, fmt.Errorf("ziv: fetch game page: %w", err)
	}
	if res.IsError() {
		err := fmt.Errorf("unexpected status %s", res.Status())
		c.tel.ReportBroken(report_client_fetch_songs, err, c.url)
		return nil, fmt.Errorf("ziv: fetch game page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		c.tel.ReportBroken(
			report_client_fetch_songs,
			fmt.Errorf("parse: %w", err),
			c.url,
		)
		return nil, fmt.Errorf("ziv: parse game page: %w", err)
	}

	scraper := NewScraper(ScraperOptions{
		Base:     c.pageUrl(res),
		Tables:   &c.tables,
		Layout:   c.layout,
		Enricher: c.enrich,
	}, c.tel)
	result := scraper.ScrapeSongs(doc)
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

// pageUrl is the url the page was finally served from, after redirects.
func (c Client) pageUrl(res *resty.Response) *url.URL {
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		return res.RawResponse.Request.URL
	}
	parsed, err := url.Parse(c.url)
	if err != nil {
		return nil
	}
	return parsed
}
