package core

import (
	"slices"
)

// DefaultWindowWidth is the number of page buttons shown by the browser.
const DefaultWindowWidth = 5

// Paginate returns the 1-based page of items. Out-of-range pages are
// clamped to the first or last page. An empty collection yields page 1 of 0.
func Paginate(items []Record, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	page = min(page, totalPages)
	page = max(page, 1)

	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	return Page{
		Items:      items[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// PageWindow returns up to width consecutive page numbers centred on current
// where possible, for numbered navigation buttons.
func PageWindow(current, totalPages, width int) []int {
	if totalPages <= 0 || width <= 0 {
		return nil
	}

	width = min(width, totalPages)
	current = max(1, min(current, totalPages))

	start := current - width/2
	start = min(start, totalPages-width+1)
	start = max(start, 1)

	window := make([]int, width)
	for i := range window {
		window[i] = start + i
	}
	return window
}

// Recent returns up to limit records with a positive discovery year, most
// recent first. Records from the same year keep their input order.
func Recent(records []Record, limit int) []Record {
	dated := make([]Record, 0, len(records))
	for _, r := range records {
		if r.DiscoveryYear > 0 {
			dated = append(dated, r)
		}
	}

	slices.SortStableFunc(dated, func(a, b Record) int {
		return b.DiscoveryYear - a.DiscoveryYear
	})

	if limit >= 0 && len(dated) > limit {
		dated = dated[:limit]
	}
	return dated
}
