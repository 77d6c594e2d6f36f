package models

import "strings"

// ResolveImageURL turns a stored image reference into something displayable:
// data URLs and absolute URLs are returned as-is, server-rooted paths are
// prefixed with origin.
func ResolveImageURL(origin, ref string) string {
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "data:image/"),
		strings.HasPrefix(ref, "http://"),
		strings.HasPrefix(ref, "https://"):
		return ref
	case strings.HasPrefix(ref, "/"):
		return strings.TrimRight(origin, "/") + ref
	default:
		return ref
	}
}
