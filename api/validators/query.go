package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/storerate/storerate-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseQuerySort splits a "column" or "column:desc" sort expression against a
// whitelist of sortable columns.
func ParseQuerySort(r *http.Request, key string, allowed map[string]bool) (string, bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return "", false, nil
	}

	column := raw
	desc := false
	if idx := strings.IndexByte(raw, ':'); idx >= 0 {
		column = raw[:idx]
		switch strings.ToLower(raw[idx+1:]) {
		case "desc":
			desc = true
		case "asc", "":
		default:
			return "", false, pkgerrors.New(pkgerrors.CodeValidation, "sort direction must be asc or desc").WithDetails(map[string]any{"field": key})
		}
	}

	if !allowed[column] {
		return "", false, pkgerrors.New(pkgerrors.CodeValidation, "unsupported sort column").WithDetails(map[string]any{"field": key, "column": column})
	}
	return column, desc, nil
}
