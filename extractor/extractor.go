// Package extractor fetches a product page and resolves a single
// best-effort metadata record by merging structured meta tags (Open Graph,
// Twitter Card) with heuristic fallbacks scraped from the raw markup.
package extractor

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/centscape/preview/models"
)

// Options configure an Extractor. The zero value gives the defaults:
// 15 second fetch timeout and a desktop-browser user agent.
type Options struct {
	// Timeout bounds the page fetch. Default: 15s.
	Timeout time.Duration

	// UserAgent is sent on the fetch request. Default: DefaultUserAgent.
	UserAgent string

	// MaxBodyBytes caps how much of the response body is read. Default: 10 MB.
	MaxBodyBytes int64
}

// Extractor runs the metadata extraction pipeline. It holds no per-request
// state and is safe for concurrent use.
type Extractor struct {
	fetcher *fetcher
	timeout time.Duration
}

// New creates an Extractor with the given options.
func New(opts Options) *Extractor {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Extractor{
		fetcher: newFetcher(opts.UserAgent, opts.MaxBodyBytes),
		timeout: timeout,
	}
}

// ExtractMetadata fetches pageURL and produces the full extraction record:
// structured tag maps, heuristic fallbacks, and the resolved merge.
//
// The pipeline is strictly sequential with one outbound fetch; field-level
// misses degrade to defaults and are never surfaced as errors. Only a failed
// fetch or a document that cannot be parsed at all is returned as an error,
// always a *models.PreviewError identifying the target URL.
func (e *Extractor) ExtractMetadata(ctx context.Context, pageURL string) (*models.ExtractedMetadata, error) {
	start := time.Now()

	fetchCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	body, err := e.fetcher.fetch(fetchCtx, pageURL)
	if err != nil {
		return nil, models.NewPreviewError(
			models.ErrCodeFetchFailed,
			fmt.Sprintf("failed to fetch %s", pageURL),
			err,
		)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, models.NewPreviewError(
			models.ErrCodeParseFailed,
			fmt.Sprintf("failed to parse document at %s", pageURL),
			err,
		)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, models.NewPreviewError(
			models.ErrCodeInvalidURL,
			fmt.Sprintf("unparseable url %s", pageURL),
			err,
		)
	}

	meta := &models.ExtractedMetadata{
		URL:         pageURL,
		Timestamp:   time.Now().UTC(),
		OpenGraph:   extractOpenGraph(doc),
		TwitterCard: extractTwitterCard(doc),
		Fallback:    e.extractFallback(doc, base),
	}
	meta.Resolved = resolve(meta)

	slog.Debug("metadata extracted",
		"url", pageURL,
		"og_tags", len(meta.OpenGraph),
		"twitter_tags", len(meta.TwitterCard),
		"images", len(meta.Fallback.Images),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return meta, nil
}

// extractOpenGraph collects og:, article:, and product: meta tags into one
// map with every colon rewritten to an underscore (og:title → og_title,
// product:price:amount → product_price_amount). Returns nil when the page
// carries no such tags so callers can tell "no structured data" from an
// empty set.
func extractOpenGraph(doc *goquery.Document) models.StructuredTags {
	var og models.StructuredTags

	doc.Find(`meta[property^="og:"], meta[property^="article:"], meta[property^="product:"]`).
		Each(func(_ int, s *goquery.Selection) {
			prop, _ := s.Attr("property")
			content, _ := s.Attr("content")
			if prop == "" || content == "" {
				return
			}
			if og == nil {
				og = make(models.StructuredTags)
			}
			og[strings.ReplaceAll(prop, ":", "_")] = content
		})

	return og
}

// extractTwitterCard collects twitter: meta tags keyed by the tag-local name.
// Returns nil when no tags are present.
func extractTwitterCard(doc *goquery.Document) models.StructuredTags {
	var tw models.StructuredTags

	doc.Find(`meta[name^="twitter:"]`).Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, _ := s.Attr("content")
		if name == "" || content == "" {
			return
		}
		if tw == nil {
			tw = make(models.StructuredTags)
		}
		tw[strings.TrimPrefix(name, "twitter:")] = content
	})

	return tw
}

// extractFallback computes the heuristic view of the page, independent of
// any structured tags.
func (e *Extractor) extractFallback(doc *goquery.Document, base *url.URL) models.FallbackMetadata {
	fb := models.FallbackMetadata{
		Title:       extractTitle(doc),
		Description: extractDescription(doc),
		Images:      collectImages(doc, base),
		Author:      extractAuthor(doc),
		PublishDate: extractPublishDate(doc),
		Language:    extractLanguage(doc),
		SiteName:    extractSiteName(doc),
	}

	if raw, ok := extractPrice(doc); ok {
		if price, parsed := ParsePrice(raw); parsed {
			fb.Price = &price
		}
	}

	return fb
}
