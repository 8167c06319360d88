package models

import "time"

// PriceInfo is a monetary value extracted from page text or structured tags.
// Amount is the numeric magnitude of Raw with thousands separators removed.
// Currency defaults to "USD" when no symbol, code, or word was detected.
type PriceInfo struct {
	Raw      string  `json:"raw"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// ImageCandidate is an image discovered during fallback extraction.
// Src is always an absolute URL; relative values are resolved against the
// page origin before a candidate is considered valid.
type ImageCandidate struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// StructuredTags maps a normalized meta-tag key to its content value.
// Open Graph family keys are rewritten namespace-first (og_title,
// article_author, product_price_amount); Twitter Card keys have the
// "twitter:" prefix stripped. A nil map means no tags were found —
// callers must distinguish that from an empty map.
type StructuredTags map[string]string

// FallbackMetadata is the heuristic view computed from raw markup,
// independent of any structured tags on the page.
type FallbackMetadata struct {
	Title       string           `json:"title,omitempty"`
	Description string           `json:"description,omitempty"`
	Images      []ImageCandidate `json:"images"`
	Price       *PriceInfo       `json:"price,omitempty"`
	Author      string           `json:"author,omitempty"`
	PublishDate string           `json:"publishDate,omitempty"`
	Language    string           `json:"language"`
	SiteName    string           `json:"siteName,omitempty"`
}

// ResolvedMetadata is the single merged record produced by applying source
// precedence (Open Graph → Twitter Card → fallback → default) per field.
type ResolvedMetadata struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Image       string     `json:"image,omitempty"`
	Author      string     `json:"author,omitempty"`
	PublishDate string     `json:"publishDate,omitempty"`
	Price       *PriceInfo `json:"price,omitempty"`
	SiteName    string     `json:"siteName,omitempty"`
	Type        string     `json:"type"`
	Language    string     `json:"language"`
}

// ExtractedMetadata is the top-level record for one extraction attempt.
// Resolved is derived from the other views and never independently mutated.
type ExtractedMetadata struct {
	URL         string           `json:"url"`
	Timestamp   time.Time        `json:"timestamp"`
	OpenGraph   StructuredTags   `json:"openGraph,omitempty"`
	TwitterCard StructuredTags   `json:"twitterCard,omitempty"`
	Fallback    FallbackMetadata `json:"fallback"`
	Resolved    ResolvedMetadata `json:"resolved"`
}

// NormalizedURL is the result of canonicalizing a raw URL string.
// Cleaned is true only when a merchant-specific product identifier was
// extracted; generic tracking-parameter stripping alone leaves it false.
type NormalizedURL struct {
	Original   string `json:"original"`
	Normalized string `json:"normalized"`
	Cleaned    bool   `json:"cleaned"`
	ProductID  string `json:"productId,omitempty"`
	Hostname   string `json:"hostname"`
}
