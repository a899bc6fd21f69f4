package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page reads ?limit= and ?offset=. Missing or malformed values fall back to
// 20 and 0; limit is capped at 100.
func Page(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
