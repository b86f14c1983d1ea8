package validators

import (
	"errors"
	"net/http"
	"strings"
)

var ErrMissingBearerToken = errors.New("missing bearer token")

// ExtractBearerToken pulls the raw token out of the Authorization header.
func ExtractBearerToken(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return "", ErrMissingBearerToken
	}
	if !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return "", ErrMissingBearerToken
	}
	token := strings.TrimSpace(raw[7:])
	if token == "" {
		return "", ErrMissingBearerToken
	}
	return token, nil
}
