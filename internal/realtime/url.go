package realtime

import (
	"fmt"
	"net/url"
	"strings"
)

// buildURL rewrites cfg.Endpoint's scheme from https to wss, trims a
// trailing slash, and appends the realtime path and query string.
func buildURL(cfg Config) (string, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", cfg.Endpoint, err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = fmt.Sprintf("api-version=%s&deployment=%s",
		url.QueryEscape(cfg.API), url.QueryEscape(cfg.Deployment))
	u.Path += "/openai/realtime"
	return u.String(), nil
}
