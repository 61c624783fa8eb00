package session

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoint is the normalized base url of one remote service instance.
// It is both the store key and the base address of every request.
type Endpoint string

// ParseEndpoint normalizes raw into an Endpoint.
//
// Scheme and host are lowercased, query and fragment are dropped and the
// path always ends with a slash, so "http://Host:8080" and
// "http://host:8080/" name the same endpoint.
func ParseEndpoint(raw string) (Endpoint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty url", ErrInvalidEndpoint)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: %q must use http or https", ErrInvalidEndpoint, raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q has no host", ErrInvalidEndpoint, raw)
	}

	u.Host = strings.ToLower(u.Host)
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	u.RawPath = ""
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	return Endpoint(u.String()), nil
}

// MustParseEndpoint is like ParseEndpoint but panics on error.
func MustParseEndpoint(raw string) Endpoint {
	e, err := ParseEndpoint(raw)
	if err != nil {
		panic(err)
	}
	return e
}

// String implements fmt.Stringer.
func (e Endpoint) String() string {
	return string(e)
}
