package handler

import (
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/centscape/preview/extractor"
	"github.com/centscape/preview/models"
	"github.com/centscape/preview/normalizer"
)

// proxyClient fetches images with a short timeout independent of the page
// fetch timeout.
var proxyClient = &http.Client{Timeout: 10 * time.Second}

// ProxyImage returns a handler for GET /proxy-image?url=<image url>.
//
// Mobile webviews cannot load merchant CDN images directly because of CORS;
// the backend streams them with permissive CORS headers and a 1 hour cache.
func ProxyImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		imageURL := c.Query("url")
		if imageURL == "" {
			c.JSON(http.StatusBadRequest, models.Fail("Image URL is required", models.ErrCodeMissingURL))
			return
		}
		if !normalizer.IsValidURL(imageURL) {
			c.JSON(http.StatusBadRequest, models.Fail("Invalid image URL provided", models.ErrCodeInvalidURL))
			return
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, imageURL, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.Fail("Failed to proxy image", models.ErrCodeProxyFailed))
			return
		}
		req.Header.Set("User-Agent", extractor.DefaultUserAgent)
		req.Header.Set("Accept", "image/webp,image/apng,image/*,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		if u, err := url.Parse(imageURL); err == nil {
			req.Header.Set("Referer", u.Scheme+"://"+u.Host)
		}

		resp, err := proxyClient.Do(req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.Fail("Failed to proxy image", models.ErrCodeProxyFailed))
			return
		}
		defer resp.Body.Close()

		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}

		c.Header("Content-Type", contentType)
		c.Header("Cache-Control", "public, max-age=3600")
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		c.Status(resp.StatusCode)
		_, _ = io.Copy(c.Writer, resp.Body)
	}
}
