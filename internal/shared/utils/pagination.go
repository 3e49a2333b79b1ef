package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/faturo-inc/faturo/internal/shared/constants"
)

// Pagination holds parsed pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// PageResult describes one page of a listing. NextPage is the number of the
// following page, or -1 when the current page is the last one; callers stop
// paginating on -1 rather than comparing counts themselves.
type PageResult struct {
	NextPage   int
	TotalPages int
	Total      int64
}

// NewPageResult fills the page metadata for the given position and total.
func NewPageResult(pagination Pagination, total int64) PageResult {
	totalPages := TotalPages(total, pagination.PageSize)
	nextPage := pagination.Page + 1
	if nextPage > totalPages {
		nextPage = -1
	}
	return PageResult{
		NextPage:   nextPage,
		TotalPages: totalPages,
		Total:      total,
	}
}

// ValidatePagination validates and normalizes pagination parameters.
// Page defaults to DefaultPage if less than 1.
// PageSize defaults to DefaultPageSize if less than 1, and is capped at MaxPageSize.
func ValidatePagination(page, pageSize int) Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}

	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	return Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// ParsePagination parses pagination parameters from Gin context query string.
// Returns validated pagination with defaults applied.
func ParsePagination(c *gin.Context) Pagination {
	page := parseQueryInt(c, "page", constants.DefaultPage)
	pageSize := parseQueryInt(c, "page_size", constants.DefaultPageSize)
	return ValidatePagination(page, pageSize)
}

// parseQueryInt parses an integer query parameter with a default value.
func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 1 {
			return n
		}
	}
	return defaultVal
}

// TotalPages calculates total pages for a given total count.
func TotalPages(total int64, pageSize int) int {
	if total == 0 || pageSize == 0 {
		return 1
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages == 0 {
		return 1
	}
	return pages
}
