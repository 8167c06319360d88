package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/centscape/preview/cache"
	"github.com/centscape/preview/extractor"
	"github.com/centscape/preview/models"
	"github.com/centscape/preview/normalizer"
)

// Extract returns a handler for POST /extract-metadata.
//
// Flow:
//  1. Parse request, validate the URL.
//  2. Normalize the URL; the canonical form is what gets fetched and cached.
//  3. Cache lookup (optional, request-controlled).
//  4. ExtractMetadata on the canonical URL.
//  5. Respond with the record plus the URL transformation.
func Extract(ex *extractor.Extractor, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ExtractRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.Fail(err.Error(), models.ErrCodeInvalidInput))
			return
		}
		if req.URL == "" {
			c.JSON(http.StatusBadRequest, models.Fail("URL is required", models.ErrCodeMissingURL))
			return
		}
		if !normalizer.IsValidURL(req.URL) {
			c.JSON(http.StatusBadRequest, models.Fail("Invalid URL provided", models.ErrCodeInvalidURL))
			return
		}

		normalized := normalizer.Normalize(req.URL)

		cacheKey := cache.Key(normalized.Normalized)
		if cc != nil && req.MaxAge > 0 {
			if cached, hit := cc.Get(cacheKey, req.MaxAge); hit {
				cached.CacheStatus = "hit"
				c.JSON(http.StatusOK, models.OK(cached))
				return
			}
		}

		ctx := c.Request.Context()
		if req.TimeoutMs > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutMs)*time.Millisecond)
			defer cancel()
		}

		meta, err := ex.ExtractMetadata(ctx, normalized.Normalized)
		if err != nil {
			respondExtractError(c, err)
			return
		}

		resp := &models.ExtractResponse{
			ExtractedMetadata: *meta,
			URLTransformation: normalized,
		}

		if cc != nil && req.MaxAge > 0 {
			cc.Set(cacheKey, resp)
			resp.CacheStatus = "miss"
		}

		c.JSON(http.StatusOK, models.OK(resp))
	}
}

// respondExtractError maps a PreviewError to the HTTP status and envelope
// the clients expect. Fetch failures get a dedicated message because they
// usually mean the target site is refusing non-browser traffic.
func respondExtractError(c *gin.Context, err error) {
	var pe *models.PreviewError
	if !errors.As(err, &pe) {
		pe = models.NewPreviewError(models.ErrCodeInternal, "Metadata extraction failed", err)
	}

	switch pe.Code {
	case models.ErrCodeFetchFailed:
		c.JSON(http.StatusBadGateway, models.Fail(
			"Failed to fetch URL - site may be blocking requests", pe.Code))
	case models.ErrCodeParseFailed:
		c.JSON(http.StatusBadGateway, models.Fail(pe.Message, pe.Code))
	case models.ErrCodeInvalidURL, models.ErrCodeInvalidInput:
		c.JSON(http.StatusBadRequest, models.Fail(pe.Message, pe.Code))
	default:
		c.JSON(http.StatusInternalServerError, models.Fail(pe.Message, pe.Code))
	}
}
