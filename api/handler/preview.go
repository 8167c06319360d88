package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/centscape/preview/cache"
	"github.com/centscape/preview/extractor"
	"github.com/centscape/preview/models"
	"github.com/centscape/preview/normalizer"
)

// Preview returns a handler for the legacy POST /preview endpoint.
//
// The response is the flattened shape older clients consume: title, image,
// raw price string, currency, site name, and the canonical source URL.
// Unlike /extract-metadata it is NOT wrapped in the common envelope.
func Preview(ex *extractor.Extractor, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PreviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.Fail(err.Error(), models.ErrCodeInvalidInput))
			return
		}
		if req.URL == "" && req.RawHTML == "" {
			c.JSON(http.StatusBadRequest, models.Fail(
				"Either url or raw_html must be provided", models.ErrCodeMissingContent))
			return
		}
		if req.RawHTML != "" {
			c.JSON(http.StatusBadRequest, models.Fail(
				"Raw HTML processing not implemented yet", models.ErrCodeNotImplemented))
			return
		}
		if !normalizer.IsValidURL(req.URL) {
			c.JSON(http.StatusBadRequest, models.Fail("Invalid URL provided", models.ErrCodeInvalidURL))
			return
		}

		normalized := normalizer.Normalize(req.URL)

		cacheKey := cache.Key(normalized.Normalized)
		if cc != nil {
			if cached, hit := cc.Get(cacheKey, defaultPreviewMaxAgeMs); hit {
				c.JSON(http.StatusOK, flatten(cached.Resolved, normalized.Normalized))
				return
			}
		}

		meta, err := ex.ExtractMetadata(c.Request.Context(), normalized.Normalized)
		if err != nil {
			respondExtractError(c, err)
			return
		}

		// Fill the shared cache so repeat previews (and /extract-metadata
		// lookups for the same canonical URL) skip the refetch.
		if cc != nil {
			cc.Set(cacheKey, &models.ExtractResponse{
				ExtractedMetadata: *meta,
				URLTransformation: normalized,
			})
		}

		c.JSON(http.StatusOK, flatten(meta.Resolved, normalized.Normalized))
	}
}

// defaultPreviewMaxAgeMs is how stale a cached record may be when the legacy
// endpoint serves it; legacy clients have no way to opt in or out.
const defaultPreviewMaxAgeMs = 60_000

// flatten derives the legacy preview shape from a resolved record.
// Absent optional fields are encoded as JSON null, not omitted.
func flatten(r models.ResolvedMetadata, sourceURL string) models.PreviewResponse {
	resp := models.PreviewResponse{
		Title:     r.Title,
		SourceURL: sourceURL,
	}
	if r.Image != "" {
		resp.Image = &r.Image
	}
	if r.Price != nil {
		resp.Price = &r.Price.Raw
		resp.Currency = &r.Price.Currency
	}
	if r.SiteName != "" {
		resp.SiteName = &r.SiteName
	}
	return resp
}
