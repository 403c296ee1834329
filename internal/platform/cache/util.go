package cache

import "net/url"

// safe escapes s for use as one Redis key segment. The escaping is
// injective, so distinct paths never share a key, and ':' never appears.
func safe(s string) string {
	return url.QueryEscape(s)
}
