package api

import (
	"strconv"
	"strings"

	"github.com/blog-platform-api/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// parsePostFilter reads the post listing query parameters. Absent or
// malformed values contribute no predicate; an unparsable isFeatured is
// ignored rather than rejected.
func parsePostFilter(c *gin.Context) models.PostFilter {
	filter := models.PostFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Status:   models.PostStatus(c.Query("status")),
		AuthorID: c.Query("authorId"),
	}

	if raw := c.Query("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}

	if raw := c.Query("isFeatured"); raw != "" {
		if featured, err := strconv.ParseBool(raw); err == nil {
			filter.IsFeatured = &featured
		}
	}

	filter.Page, filter.Limit = parsePagination(c)
	filter.SortBy, filter.SortOrder = parseSorting(c)
	return filter
}

// parsePagination reads page and limit with defaults and bounds
func parsePagination(c *gin.Context) (page, limit int) {
	page = defaultPage
	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}

	limit = defaultLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// parseSorting reads sortBy and sortOrder. Unknown sort fields fall
// back to createdAt; anything other than "asc" sorts descending.
func parseSorting(c *gin.Context) (sortBy, sortOrder string) {
	sortBy = c.DefaultQuery("sortBy", "createdAt")
	if _, ok := models.PostSortColumns[sortBy]; !ok {
		sortBy = "createdAt"
	}

	sortOrder = c.DefaultQuery("sortOrder", "desc")
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	return sortBy, sortOrder
}
