package db

import "github.com/techagentng/blogx/models"

// DefaultPageSize is the fixed number of items per listing page.
const DefaultPageSize = 10

// clampPage resolves a requested page number against the item count. Pages
// start at 1; numbers past the last page resolve to the last page instead of
// failing, and an empty set still has one (empty) page.
func clampPage(page int, count int64) (int, models.Page) {
	if page < 1 {
		page = 1
	}
	totalPages := int((count + DefaultPageSize - 1) / DefaultPageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	meta := models.Page{
		Number:     page,
		Size:       DefaultPageSize,
		TotalItems: count,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
	return (page - 1) * DefaultPageSize, meta
}
