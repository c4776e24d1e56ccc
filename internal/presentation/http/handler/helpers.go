package handler

import (
	"math"
	"time"

	"github.com/glowdesk/glowdesk-api/pkg/pagination"
)

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD query value, returning nil when absent or malformed
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil
	}
	return &t
}

// toCents converts a currency amount to integer cents
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// pageParams builds validated pagination parameters from bound filter values
func pageParams(page, perPage int) *pagination.PaginationParams {
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()
	return params
}
