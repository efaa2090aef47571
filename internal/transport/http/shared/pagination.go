package shared

import (
	"net/http"
	"strconv"
)

type Pagination struct {
	Limit  int
	Offset int
}

func queryInt(r *http.Request, key string, fallback int, ok func(int) bool) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || !ok(v) {
		return fallback
	}
	return v
}

// ParsePagination reads limit/offset, clamping limit to maxLimit when set.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	limit := queryInt(r, "limit", defaultLimit, func(v int) bool { return v > 0 })
	offset := queryInt(r, "offset", 0, func(v int) bool { return v >= 0 })
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return Pagination{Limit: limit, Offset: offset}
}
