package extractor

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/centscape/preview/models"
)

// maxFallbackImages caps the ranked candidate list.
const maxFallbackImages = 10

// Image discovery runs three selector tiers merged into one ordered list so
// that discovery-order tie-breaking stays well defined across tiers:
// structural containers first, attribute-substring hints second, then any
// image with a usable source attribute.
var imageSelectors = compileAll(
	// high priority: hero/featured/product/gallery containers
	".hero-image img",
	".featured-image img",
	".article-image img",
	".product-image img",
	".main-image img",
	".gallery-image img",
	".product-gallery img",
	".image-gallery img",
	".product-photo img",
	".product-thumbnail img",
	"[data-a-image-name] img",
	".a-dynamic-image",
	".a-image-stack-vertical img",
	".product-media img",
	".product-visual img",
	".product-picture img",
	// medium priority: attribute-substring hints
	`img[src*="product"]`,
	`img[src*="image"]`,
	`img[src*="photo"]`,
	`img[alt*="product"]`,
	`img[alt*="image"]`,
	// regular: anything with a source attribute
	"img[src]",
	"img[data-src]",
	"img[data-lazy-src]",
)

// collectImages discovers, filters, deduplicates, and ranks image candidates
// from the document. base is the page URL used to absolutize sources.
func collectImages(doc *goquery.Document, base *url.URL) []models.ImageCandidate {
	seen := make(map[string]struct{})
	var candidates []models.ImageCandidate

	for _, sel := range imageSelectors {
		doc.FindMatcher(sel).Each(func(_ int, s *goquery.Selection) {
			src := firstAttr(s, "src", "data-src", "data-lazy-src")
			if src == "" {
				return
			}

			resolved := resolveImageURL(src, base)
			if !isValidImage(resolved) {
				return
			}
			if _, dup := seen[resolved]; dup {
				return
			}
			seen[resolved] = struct{}{}

			alt, _ := s.Attr("alt")
			candidates = append(candidates, models.ImageCandidate{Src: resolved, Alt: alt})
		})
	}

	candidates = rankImages(candidates)
	if len(candidates) > maxFallbackImages {
		candidates = candidates[:maxFallbackImages]
	}
	return candidates
}

// firstAttr returns the first non-empty attribute value among names.
func firstAttr(s *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v, ok := s.Attr(name); ok && v != "" {
			return v
		}
	}
	return ""
}

// resolveImageURL rewrites src to an absolute URL against the page origin.
// Protocol-relative sources get https; root-relative and bare-relative
// sources are prefixed with the origin.
func resolveImageURL(src string, base *url.URL) string {
	switch {
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	case strings.HasPrefix(src, "/"):
		return base.Scheme + "://" + base.Host + src
	case !strings.HasPrefix(src, "http"):
		return base.Scheme + "://" + base.Host + "/" + src
	}
	return src
}

// isValidImage rejects data URIs, obvious site chrome, and degenerate URLs.
func isValidImage(src string) bool {
	for _, bad := range []string{"data:", "placeholder", "logo", "icon", "avatar", "banner"} {
		if strings.Contains(src, bad) {
			return false
		}
	}
	return len(src) > 10
}

// imagePriority scores a resolved URL: product/main/hero beat generic
// image/photo hints, which beat everything else.
func imagePriority(src string) int {
	switch {
	case strings.Contains(src, "product") || strings.Contains(src, "main") || strings.Contains(src, "hero"):
		return 3
	case strings.Contains(src, "image") || strings.Contains(src, "photo"):
		return 2
	}
	return 1
}

// rankImages orders candidates best-first by priority score, preserving
// discovery order among equals.
func rankImages(candidates []models.ImageCandidate) []models.ImageCandidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return imagePriority(candidates[i].Src) > imagePriority(candidates[j].Src)
	})
	return candidates
}

// bestImage re-ranks a candidate list and returns the top source, used when
// no structured tag supplies an image.
func bestImage(candidates []models.ImageCandidate) string {
	if len(candidates) == 0 {
		return ""
	}
	ranked := rankImages(append([]models.ImageCandidate(nil), candidates...))
	return ranked[0].Src
}
