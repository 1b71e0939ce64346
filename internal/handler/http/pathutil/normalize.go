package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/news/[^/]+$`), Template: "/news/:id"},
	{Pattern: regexp.MustCompile(`^/announcements/[^/]+$`), Template: "/announcements/:id"},
	{Pattern: regexp.MustCompile(`^/profile-pages/type/[^/]+$`), Template: "/profile-pages/type/:page_type"},
	{Pattern: regexp.MustCompile(`^/profile-pages/[^/]+$`), Template: "/profile-pages/:id"},
	{Pattern: regexp.MustCompile(`^/downloads/[^/]+/hits$`), Template: "/downloads/:id/hits"},
	{Pattern: regexp.MustCompile(`^/downloads/[^/]+$`), Template: "/downloads/:id"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /news/123) to template format (e.g., /news/:id).
// Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/news/123")                     // "/news/:id"
//	NormalizePath("/downloads/7/hits")             // "/downloads/:id/hits"
//	NormalizePath("/profile-pages/type/sejarah")   // "/profile-pages/type/:page_type"
//	NormalizePath("/health")                       // "/health" (unchanged)
//	NormalizePath("/unknown/path/123")             // "/unknown/path/123" (no match)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/news/123?x=1")   // "/news/:id"
//	NormalizePath("/news/123/")      // "/news/:id"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return path
}
