package models

// ExtractRequest is the payload for POST /extract-metadata.
type ExtractRequest struct {
	// URL is the product page to extract metadata from. Required.
	URL string `json:"url"`

	// TimeoutMs tightens the fetch timeout for this request, in
	// milliseconds. It can only shorten the server default, never extend it.
	// 0 means use the server default (15000).
	TimeoutMs int `json:"timeout_ms,omitempty" binding:"omitempty,min=1,max=60000"`

	// MaxAge enables the response cache when > 0: a cached record younger
	// than MaxAge milliseconds is returned without refetching the page.
	MaxAge int `json:"max_age,omitempty" binding:"omitempty,min=0"`
}

// NormalizeRequest is the payload for POST /normalize-url.
type NormalizeRequest struct {
	// URL is the raw URL to canonicalize. Required.
	URL string `json:"url"`
}

// PreviewRequest is the payload for the legacy POST /preview endpoint.
// Exactly one of URL or RawHTML must be provided; RawHTML is accepted for
// wire compatibility but not implemented.
type PreviewRequest struct {
	URL     string `json:"url,omitempty"`
	RawHTML string `json:"raw_html,omitempty"`
}
