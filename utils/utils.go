package utils

import (
	"math"

	"cropadvisory/models"
)

// CreatePagination creates the pagination metadata for a page of results.
func CreatePagination(totalItems, page, pageSize int) models.PaginationInfo {
	if pageSize <= 0 {
		pageSize = 10 // Default page size
	}
	if page <= 0 {
		page = 1 // Default page
	}

	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))

	return models.PaginationInfo{
		TotalItems:  totalItems,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}
}

// PageBounds clamps the requested page and size and returns the SQL-style
// limit and offset.
func PageBounds(page, pageSize, maxSize int) (int, int, int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if maxSize > 0 && pageSize > maxSize {
		pageSize = maxSize
	}
	// keep the offset representable
	if lastPage := math.MaxInt / pageSize; page > lastPage {
		page = lastPage
	}
	return page, pageSize, pageSize, (page - 1) * pageSize
}
