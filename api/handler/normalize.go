package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/centscape/preview/models"
	"github.com/centscape/preview/normalizer"
)

// Normalize returns a handler for POST /normalize-url.
// Normalization never fails; even unparseable input produces a pass-through
// record, so the only error case is a missing URL.
func Normalize() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.NormalizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.Fail(err.Error(), models.ErrCodeInvalidInput))
			return
		}
		if req.URL == "" {
			c.JSON(http.StatusBadRequest, models.Fail("URL is required", models.ErrCodeMissingURL))
			return
		}

		c.JSON(http.StatusOK, models.OK(normalizer.Normalize(req.URL)))
	}
}
