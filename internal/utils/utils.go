package utils

import (
	"net"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/idna"
)

// NormalizeIdentifier prepares a user-typed profile identifier for scanning
// and storage. Whitespace is trimmed; when the input looks like a URL it is
// canonicalized so the same profile always keys history the same way. Bare
// handles pass through trimmed but otherwise untouched.
func NormalizeIdentifier(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if !strings.Contains(trimmed, "://") {
		return trimmed
	}
	canonical, err := CanonicalProfileURL(trimmed)
	if err != nil {
		return trimmed
	}
	return canonical
}

// CanonicalProfileURL returns a deterministic canonical form of a profile URL:
// lowercased scheme and host, IDN hosts converted to punycode, default ports
// and fragments dropped, credentials stripped, path cleaned without a trailing
// slash. Query params survive untouched since some platforms key profiles on
// them.
func CanonicalProfileURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &url.Error{Op: "canonicalize", URL: raw, Err: errEmptyURL}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", &url.Error{Op: "canonicalize", URL: raw, Err: errMissingHost}
	}

	u.Scheme = strings.ToLower(u.Scheme)

	// Lowercase host and convert IDN -> punycode
	host := strings.ToLower(u.Hostname())
	if puny, err := idna.Lookup.ToASCII(host); err == nil {
		host = puny
	}

	// Preserve non-default port only
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") || port == "" {
		u.Host = host
	} else {
		u.Host = net.JoinHostPort(host, port)
	}

	// Drop userinfo (credentials)
	u.User = nil

	cleanPath := path.Clean(u.Path)
	if cleanPath == "." || cleanPath == "/" {
		cleanPath = ""
	}
	u.Path = cleanPath

	u.Fragment = ""

	return u.String(), nil
}

var (
	errEmptyURL    = &errStr{"empty url"}
	errMissingHost = &errStr{"missing host"}
)

type errStr struct{ s string }

func (e *errStr) Error() string { return e.s }
