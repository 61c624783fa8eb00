package qbittorrent

import (
	"net/http"
	"strings"
)

// FormatToken serializes cookies as "name=value;" pairs in receipt order.
func FormatToken(cookies []*http.Cookie) string {
	var b strings.Builder
	for _, c := range cookies {
		b.WriteString(c.Name)
		b.WriteByte('=')
		b.WriteString(c.Value)
		b.WriteByte(';')
	}
	return b.String()
}

// ParseToken splits a stored token back into cookies. Malformed pairs are skipped.
func ParseToken(token string) []*http.Cookie {
	var cookies []*http.Cookie
	for _, part := range strings.Split(token, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: name, Value: value})
	}
	return cookies
}
