package extractor

import "github.com/centscape/preview/models"

// resolve merges the structured and fallback views into one record using
// fixed precedence: Open Graph → Twitter Card → fallback heuristic →
// field-specific default. Nothing is merged across sources for a single
// field; whichever source wins supplies the whole value.
func resolve(meta *models.ExtractedMetadata) models.ResolvedMetadata {
	og := meta.OpenGraph
	tw := meta.TwitterCard
	fb := meta.Fallback

	title := firstOf(og["og_title"], tw["title"], fb.Title)
	if title == "" {
		title = "No title found"
	}

	language := fb.Language
	if language == "" {
		language = "en"
	}

	pageType := firstOf(og["og_type"], tw["card"])
	if pageType == "" {
		pageType = "website"
	}

	return models.ResolvedMetadata{
		Title:       title,
		Description: firstOf(og["og_description"], tw["description"], fb.Description),
		Image:       resolveImage(og["og_image"], tw["image"], fb.Images),
		Author:      firstOf(og["article_author"], tw["creator"], fb.Author),
		PublishDate: firstOf(og["article_published_time"], fb.PublishDate),
		Price:       resolvePrice(og, fb.Price),
		SiteName:    firstOf(og["og_site_name"], tw["site"], fb.SiteName),
		Type:        pageType,
		Language:    language,
	}
}

// firstOf returns the first non-empty value.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveImage prefers structured images; the ranked fallback list is
// consulted only when neither structured source has one, taking the single
// top-ranked candidate.
func resolveImage(ogImage, twImage string, fallback []models.ImageCandidate) string {
	if ogImage != "" {
		return ogImage
	}
	if twImage != "" {
		return twImage
	}
	return bestImage(fallback)
}

// resolvePrice treats a structured product price pair as authoritative over
// the fallback-derived price. The currency defaults to USD when the amount
// tag appears without a currency tag.
func resolvePrice(og models.StructuredTags, fallback *models.PriceInfo) *models.PriceInfo {
	if amount, ok := og["product_price_amount"]; ok && amount != "" {
		currency := og["product_price_currency"]
		if currency == "" {
			currency = "USD"
		}
		return &models.PriceInfo{
			Raw:      amount,
			Amount:   parseAmount(amount),
			Currency: currency,
		}
	}
	return fallback
}
