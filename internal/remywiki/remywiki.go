// Package remywiki resolves RemyWiki links to the address the wiki itself considers
// canonical for the page.
package remywiki

import (
	"bytes"
	"carddraw-backend/internal/components/assert"
	"carddraw-backend/internal/components/queue"
	"carddraw-backend/internal/components/telemetry"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/PuerkitoBio/purell"
	"github.com/go-resty/resty/v2"
)

const (
	report_client_canonicalize = "client.canonicalize"
)

const canonical_selector = `link[rel="canonical"]`

const normalize_flags = purell.FlagsSafe |
	purell.FlagRemoveDotSegments |
	purell.FlagRemoveDuplicateSlashes |
	purell.FlagRemoveFragment |
	purell.FlagSortQuery

type Client struct {
	http  *resty.Client
	queue *queue.Queue
	tel   telemetry.API
}

type ClientOptions struct {
	// defaults to 30 seconds
	Timeout time.Duration
	// optional, page requests wait in it when set
	Queue *queue.Queue
	// optional, receives a dump of every request
	Output telemetry.InstrumentOutput
}

func NewClient(opts ClientOptions, tel telemetry.API) Client {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("remywiki", tel)

	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}

	httpClient := resty.New()
	httpClient.SetTimeout(opts.Timeout)
	telemetry.InstrumentResty(httpClient, tel, opts.Output)

	return Client{
		http:  httpClient,
		queue: opts.Queue,
		tel:   tel,
	}
}

// Canonicalize fetches the page behind `link` and returns the normalized href of its
// canonical link, or the normalized `link` itself when the page declares none.
func (c Client) Canonicalize(ctx context.Context, link string) (string, error) {
	input, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		c.tel.ReportWarning(report_client_canonicalize, fmt.Errorf("parse: %w", err), link)
		return "", fmt.Errorf("remywiki: parse link: %w", err)
	}

	var canonical *url.URL
	if c.queue != nil {
		canonical, err = queue.Do(ctx, c.queue, func(ctx context.Context) (*url.URL, error) {
			return c.fetchCanonical(ctx, input)
		})
	} else {
		canonical, err = c.fetchCanonical(ctx, input)
	}
	if err != nil {
		c.tel.ReportBroken(report_client_canonicalize, err, link)
		return "", fmt.Errorf("remywiki: canonicalize: %w", err)
	}

	return Normalize(canonical), nil
}

func (c Client) fetchCanonical(ctx context.Context, page *url.URL) (*url.URL, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(page.String())
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch: unexpected status %s", res.Status())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	href, ok := doc.Find(canonical_selector).First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return page, nil
	}
	canonical, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		c.tel.ReportWarning(
			report_client_canonicalize,
			fmt.Errorf("parse canonical href: %w", err),
			href,
		)
		return page, nil
	}
	return page.ResolveReference(canonical), nil
}

// Normalize returns the form links are compared in: https, lowercase host, no
// fragment, sorted query and no dot segments.
func Normalize(link *url.URL) string {
	copied := *link
	if copied.Scheme == "" || strings.EqualFold(copied.Scheme, "http") {
		copied.Scheme = "https"
	}
	return purell.NormalizeURL(&copied, normalize_flags)
}
