package utils

import (
	"math"
	"strconv"
)

// ParsePage parses a ?page= query value, defaulting to 1.
func ParsePage(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// TotalPages returns the page count for total items, at least 1.
func TotalPages(total int64, perPage int) int {
	pages := int(math.Ceil(float64(total) / float64(perPage)))
	if pages == 0 {
		pages = 1
	}
	return pages
}
