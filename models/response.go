package models

// APIResponse is the common envelope for all JSON endpoints.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// OK wraps data in a successful envelope.
func OK(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// Fail builds a failure envelope with a message and error code.
func Fail(message, code string) APIResponse {
	return APIResponse{Success: false, Error: message, Code: code}
}

// ExtractResponse is the data payload for POST /extract-metadata: the full
// extraction record plus the URL canonicalization that preceded the fetch.
type ExtractResponse struct {
	ExtractedMetadata
	URLTransformation NormalizedURL `json:"urlTransformation"`

	// CacheStatus indicates whether the record was served from cache.
	// Values: "hit", "miss", or empty (caching not requested).
	CacheStatus string `json:"cache_status,omitempty"`
}

// PreviewResponse is the legacy flattened shape served by POST /preview,
// derived from ResolvedMetadata. Price carries the raw price string.
type PreviewResponse struct {
	Title     string  `json:"title"`
	Image     *string `json:"image"`
	Price     *string `json:"price"`
	Currency  *string `json:"currency"`
	SiteName  *string `json:"siteName"`
	SourceURL string  `json:"sourceUrl"`
}

// HealthResponse is the data payload for GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Uptime      string `json:"uptime"`
}

// VersionResponse is the data payload for GET /version.
type VersionResponse struct {
	Version     string `json:"version"`
	Major       int    `json:"major"`
	Minor       int    `json:"minor"`
	Patch       int    `json:"patch"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
}

// ServerInfoResponse is the payload for GET /server-info.
type ServerInfoResponse struct {
	BaseURL     string `json:"baseurl"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
}
