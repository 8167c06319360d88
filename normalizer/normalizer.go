// Package normalizer canonicalizes e-commerce product URLs so that
// tracking-tagged variants of the same page collapse to one stable form,
// keeping duplicate detection and cache keys consistent.
package normalizer

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/centscape/preview/models"
)

// trackingParams are query parameters stripped during generic cleaning.
// Matching is done on the lowercased key.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"ref":          {},
	"source":       {},
	"campaign":     {},
	"medium":       {},
	"fbclid":       {},
	"gclid":        {},
	"msclkid":      {},
	"mc_cid":       {},
	"mc_eid":       {},
	"mc_tc":        {},
	"mc_rid":       {},
}

// merchantRule rebuilds a product URL from its stable identifier.
// When the pattern matches the path, the URL collapses to
// origin + prefix + captured id and everything else is discarded.
type merchantRule struct {
	hostMarker string
	pattern    *regexp.Regexp
	prefix     string
}

var merchantRules = []merchantRule{
	{hostMarker: "amazon", pattern: regexp.MustCompile(`/dp/([A-Z0-9]{10})`), prefix: "/dp/"},
	{hostMarker: "flipkart", pattern: regexp.MustCompile(`/p/([a-zA-Z0-9]+)`), prefix: "/p/"},
	{hostMarker: "myntra", pattern: regexp.MustCompile(`/product/([a-zA-Z0-9-]+)`), prefix: "/product/"},
}

// Normalize canonicalizes a raw URL string. It never fails: unparseable
// input is returned as-is with hostname "unknown".
//
// Known merchants (amazon, flipkart, myntra) are reduced to their stable
// product URL when the product id can be extracted; everything else gets
// generic tracking-parameter removal. Cleaned is true only on the merchant
// path — generic cleaning reports false even when parameters were removed.
func Normalize(raw string) models.NormalizedURL {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return models.NormalizedURL{
			Original:   raw,
			Normalized: raw,
			Cleaned:    false,
			Hostname:   "unknown",
		}
	}

	for _, rule := range merchantRules {
		if !strings.Contains(u.Hostname(), rule.hostMarker) {
			continue
		}
		if m := rule.pattern.FindStringSubmatch(u.Path); m != nil {
			return models.NormalizedURL{
				Original:   raw,
				Normalized: u.Scheme + "://" + u.Host + rule.prefix + m[1],
				Cleaned:    true,
				ProductID:  m[1],
				Hostname:   u.Hostname(),
			}
		}
		break
	}

	return removeTrackingParams(raw, u)
}

// removeTrackingParams strips known tracking parameters while keeping the
// remaining parameters and their values intact.
func removeTrackingParams(raw string, u *url.URL) models.NormalizedURL {
	if u.RawQuery != "" {
		kept := make(url.Values)
		for key, vals := range u.Query() {
			if _, tracking := trackingParams[strings.ToLower(key)]; tracking {
				continue
			}
			kept[key] = vals
		}
		u.RawQuery = kept.Encode()
	}

	return models.NormalizedURL{
		Original:   raw,
		Normalized: u.String(),
		Cleaned:    false,
		Hostname:   u.Hostname(),
	}
}

// IsValidURL reports whether s parses as an absolute http or https URL.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
