package model

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidURL is returned when a URL cannot be parsed even after
// scheme normalization.
var ErrInvalidURL = errors.New("invalid URL")

// NormalizeURL trims the raw input and prepends "https://" when no
// http(s) scheme is present. Returns ErrInvalidURL if the result still
// has no parseable host.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return "", ErrInvalidURL
	}

	return raw, nil
}

// HostOf returns the host component of a URL, or the input unchanged
// when it cannot be parsed. Used as the title fallback.
func HostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	return parsed.Host
}

// CleanTags trims each tag and drops empty entries. Order is preserved
// and duplicates are kept.
func CleanTags(tags []string) []string {
	cleaned := []string{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return cleaned
}
