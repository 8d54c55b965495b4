package openrouter

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const defaultBaseURL = "https://openrouter.ai"

var ErrInvalidBaseURL = errors.New("invalid OPENROUTER_BASE_URL")

var defaultAllowedHosts = map[string]struct{}{
	"openrouter.ai":     {},
	"api.openrouter.ai": {},
}

func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return strings.TrimRight(baseURL, "/")
}

// ParseAllowedHosts splits a comma separated OPENROUTER_ALLOWED_HOSTS value.
func ParseAllowedHosts(csv string) []string {
	var out []string
	for _, h := range strings.Split(csv, ",") {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}

// ValidateBaseURL only accepts absolute https URLs whose host is allow-listed;
// the completion request carries the API key, so it must not leak elsewhere.
func ValidateBaseURL(baseURL string, allowedHosts []string) error {
	baseURL = normalizeBaseURL(baseURL)

	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	invalid := func(reason string) error {
		return fmt.Errorf("%w %q: %s", ErrInvalidBaseURL, u.Redacted(), reason)
	}
	switch {
	case !u.IsAbs() || u.Host == "":
		return invalid("absolute URL with host is required")
	case u.User != nil:
		return invalid("userinfo is not allowed")
	case u.RawQuery != "" || u.Fragment != "":
		return invalid("query and fragment are not allowed")
	case !strings.EqualFold(u.Scheme, "https"):
		return invalid("https is required")
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return invalid("host is required")
	}
	if _, ok := normalizeAllowedHosts(allowedHosts)[host]; !ok {
		return invalid(fmt.Sprintf("host %q is not in OPENROUTER_ALLOWED_HOSTS", host))
	}
	return nil
}

func normalizeAllowedHosts(allowedHosts []string) map[string]struct{} {
	out := make(map[string]struct{}, len(allowedHosts))
	for _, h := range allowedHosts {
		v := strings.ToLower(strings.TrimSpace(h))
		v = strings.TrimPrefix(v, "http://")
		v = strings.TrimPrefix(v, "https://")
		v = strings.Trim(v, "/")
		if i := strings.Index(v, ":"); i >= 0 {
			v = v[:i]
		}
		if v != "" {
			out[v] = struct{}{}
		}
	}
	if len(out) == 0 {
		return defaultAllowedHosts
	}
	return out
}
