package render

import (
	"net/url"
	"strings"
)

// PublicURL joins baseURL (trailing slash) with redirectPath, percent-
// encoding each path segment individually so directory names with spaces
// survive as valid URLs.
func PublicURL(baseURL, redirectPath string) string {
	segs := strings.Split(redirectPath, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return baseURL + strings.Join(segs, "/")
}

// EncodeTarget re-encodes a stored target URL for embedding in HTML. The
// manifest stores targets unencoded (base URL + raw relative path); the
// net/url round trip percent-encodes the path and query. Unparsable input
// is returned as-is.
func EncodeTarget(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.String()
}
