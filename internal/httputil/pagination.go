package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// DefaultPageSize is used when the client does not supply a pageSize parameter.
const DefaultPageSize = 10

// ParsePagination parses and validates page and pageSize query parameters.
// A page of 0 is treated as page 1. A pageSize above maxPageSize is silently
// downgraded to maxPageSize rather than rejected.
func ParsePagination(c *gin.Context, maxPageSize int) (page, pageSize int, err error) {
	pageStr := c.DefaultQuery("page", "1")
	page, err = strconv.Atoi(pageStr)
	if err != nil || page < 0 {
		return 0, 0, fmt.Errorf("invalid page parameter: must be a non-negative integer")
	}
	if page == 0 {
		page = 1
	}

	pageSizeStr := c.DefaultQuery("pageSize", strconv.Itoa(DefaultPageSize))
	pageSize, err = strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 {
		return 0, 0, fmt.Errorf("invalid pageSize parameter: must be a positive integer")
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize, nil
}
