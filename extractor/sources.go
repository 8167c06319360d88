package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// A source produces one candidate value for a metadata field. Sources are
// evaluated in order until the validator accepts one; rejected values are
// skipped, never retried.
type source func() string

// firstMatch evaluates sources in order and returns the first value the
// validator accepts, or "" when every source misses.
func firstMatch(validate func(string) bool, sources ...source) string {
	for _, src := range sources {
		if v := src(); validate(v) {
			return v
		}
	}
	return ""
}

func nonEmpty(s string) bool { return s != "" }

// selText returns the trimmed text of the first element matching selector.
func selText(doc *goquery.Document, selector string) source {
	return func() string {
		return strings.TrimSpace(doc.Find(selector).First().Text())
	}
}

// selAttr returns the named attribute of the first element matching selector.
func selAttr(doc *goquery.Document, selector, attr string) source {
	return func() string {
		v, _ := doc.Find(selector).First().Attr(attr)
		return v
	}
}

// extractTitle tries the page h1, the document title, title-like classes,
// then test-id hooks. First non-empty trimmed value wins.
func extractTitle(doc *goquery.Document) string {
	return firstMatch(nonEmpty,
		selText(doc, "h1"),
		selText(doc, "title"),
		selText(doc, ".title, .post-title, .article-title, .entry-title"),
		selText(doc, `[data-testid*="title"], [data-test*="title"]`),
	)
}

// extractDescription requires more than 10 characters so boilerplate
// fragments don't win over the real description.
func extractDescription(doc *goquery.Document) string {
	return firstMatch(func(s string) bool { return len(s) > 10 },
		selAttr(doc, `meta[name="description"]`, "content"),
		selText(doc, ".description, .excerpt, .summary, .lead"),
		func() string {
			p := strings.TrimSpace(doc.Find("p").First().Text())
			if runes := []rune(p); len(runes) > 200 {
				p = string(runes[:200])
			}
			return p
		},
	)
}

// extractAuthor accepts values shorter than 100 characters; longer matches
// are usually whole bylines or bio paragraphs, not a name.
func extractAuthor(doc *goquery.Document) string {
	return firstMatch(func(s string) bool { return s != "" && len(s) < 100 },
		selAttr(doc, `meta[name="author"]`, "content"),
		selText(doc, ".author, .byline, .writer"),
		selText(doc, `[rel="author"]`),
		selText(doc, ".post-author, .article-author"),
	)
}

// extractPublishDate accepts only values that parse as a date/time.
func extractPublishDate(doc *goquery.Document) string {
	return firstMatch(isParseableDate,
		selAttr(doc, `meta[name="publish_date"]`, "content"),
		selAttr(doc, "time[datetime]", "datetime"),
		selText(doc, ".published, .date, .post-date"),
	)
}

func isParseableDate(s string) bool {
	if s == "" {
		return false
	}
	_, err := dateparse.ParseAny(s)
	return err == nil
}

// extractLanguage reads the html lang attribute, then the content-language
// meta, defaulting to English.
func extractLanguage(doc *goquery.Document) string {
	lang := firstMatch(nonEmpty,
		selAttr(doc, "html", "lang"),
		selAttr(doc, `meta[http-equiv="content-language"]`, "content"),
	)
	if lang == "" {
		return "en"
	}
	return lang
}

// extractSiteName tries explicit site-name metas, then the last " | "
// segment of the document title (the common "Page | Site" convention).
// A title without the delimiter is its own last segment.
func extractSiteName(doc *goquery.Document) string {
	return firstMatch(nonEmpty,
		selAttr(doc, `meta[name="application-name"]`, "content"),
		selAttr(doc, `meta[name="site_name"]`, "content"),
		func() string {
			title := doc.Find("title").Text()
			parts := strings.Split(title, " | ")
			return strings.TrimSpace(parts[len(parts)-1])
		},
	)
}

// extractPrice runs the two-phase price scan: structured selectors first,
// then locale-aware regexes over the page's visible text.
func extractPrice(doc *goquery.Document) (raw string, ok bool) {
	for _, sel := range priceSelectors {
		text := strings.TrimSpace(doc.FindMatcher(sel).First().Text())
		if text == "" {
			continue
		}
		if _, parsed := ParsePrice(text); parsed {
			return text, true
		}
	}

	bodyText := doc.Find("body").Text()
	for _, re := range priceRegexes {
		if m := re.FindString(bodyText); m != "" {
			return m, true
		}
	}

	return "", false
}
