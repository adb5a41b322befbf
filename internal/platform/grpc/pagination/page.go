// Package pagination normalizes the paging knobs that list endpoints
// accept from untrusted callers.
package pagination

import "fmt"

// PageSizeConfig bounds a requested page size.
type PageSizeConfig struct {
	Default int
	Max     int
}

// OrderByConfig whitelists sort expressions for a listing.
type OrderByConfig struct {
	Default string
	Allowed []string
}

// ClampPageSize resolves a caller-supplied page size against cfg.
// Missing or non-positive requests take the default, oversized ones
// are cut to Max, and the result is always at least one row.
func ClampPageSize(requested int, cfg PageSizeConfig) int {
	size := requested
	if size <= 0 {
		size = cfg.Default
	}
	if cfg.Max > 0 && size > cfg.Max {
		size = cfg.Max
	}
	if size < 1 {
		return 1
	}
	return size
}

// NormalizeOrderBy accepts an order_by expression only when cfg allows
// it, substituting the default for an empty request.
func NormalizeOrderBy(orderBy string, cfg OrderByConfig) (string, error) {
	if orderBy == "" {
		return cfg.Default, nil
	}
	for _, candidate := range cfg.Allowed {
		if candidate == orderBy {
			return orderBy, nil
		}
	}
	return "", fmt.Errorf("invalid order_by: %s", orderBy)
}
