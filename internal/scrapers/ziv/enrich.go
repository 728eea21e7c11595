package ziv

import (
	"bytes"
	"carddraw-backend/internal/components/assert"
	"carddraw-backend/internal/components/queue"
	"carddraw-backend/internal/components/telemetry"
	"carddraw-backend/internal/songs"
	"carddraw-backend/pkg/htmlutil"
	"context"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	report_enricher_remy_link = "enricher.remy-link"
)

const remywiki_selector = `a[href*="remywiki.com"]`

// Canonicalizer resolves a RemyWiki link to the page's canonical address.
type Canonicalizer interface {
	Canonicalize(ctx context.Context, link string) (string, error)
}

// Enricher resolves the RemyWiki link of a song from its detail page. Detail pages
// are fetched through the shared queue, one request per call, nothing is cached.
type Enricher struct {
	http          *resty.Client
	queue         *queue.Queue
	canonicalizer Canonicalizer
	tel           telemetry.API
}

func NewEnricher(
	http *resty.Client,
	q *queue.Queue,
	canonicalizer Canonicalizer,
	tel telemetry.API,
) *Enricher {
	assert.NotNil(http)
	assert.NotNil(q)
	assert.NotNil(canonicalizer)
	assert.NotNil(tel)

	return &Enricher{
		http:          http,
		queue:         q,
		canonicalizer: canonicalizer,
		tel:           tel,
	}
}

// LinkFunc binds RemyLink to a song's detail page.
func (e *Enricher) LinkFunc(detail *url.URL) songs.LinkFunc {
	return func(ctx context.Context) (string, bool, error) {
		return e.RemyLink(ctx, detail)
	}
}

// RemyLink fetches the song's detail page and returns the canonical form of the
// first RemyWiki link on it, ok is false when the page has none.
func (e *Enricher) RemyLink(ctx context.Context, detail *url.URL) (string, bool, error) {
	doc, err := queue.Do(ctx, e.queue, func(ctx context.Context) (*goquery.Document, error) {
		return e.fetchDetail(ctx, detail.String())
	})
	if err != nil {
		e.tel.ReportBroken(report_enricher_remy_link, err, detail.String())
		return "", false, fmt.Errorf("ziv: fetch song page: %w", err)
	}

	anchors := htmlutil.GetAnchors(detail, doc.Find(remywiki_selector).First())
	if len(anchors) == 0 {
		return "", false, nil
	}

	link, err := e.canonicalizer.Canonicalize(ctx, anchors[0].Url.String())
	if err != nil {
		e.tel.ReportBroken(
			report_enricher_remy_link,
			fmt.Errorf("canonicalize: %w", err),
			anchors[0].Url.String(),
		)
		return "", false, fmt.Errorf("ziv: canonicalize remywiki link: %w", err)
	}
	return link, true, nil
}

func (e *Enricher) fetchDetail(ctx context.Context, link string) (*goquery.Document, error) {
	res, err := e.http.R().
		SetContext(ctx).
		Get(link)
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
	return doc, nil
}
