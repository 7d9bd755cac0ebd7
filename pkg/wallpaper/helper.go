package wallpaper

import "strings"

// extractFilenameFromURL extracts the last path segment of a URL.
func extractFilenameFromURL(url string) string {
	lastSlashIndex := strings.LastIndex(url, "/")
	if lastSlashIndex == len(url)-1 {
		return "" // Trailing slash, no file name
	}
	return url[lastSlashIndex+1:]
}

// titleFromCopyright cuts the photographer credit off a feed copyright line:
// "Badlands National Park, South Dakota (© Jane Doe/Getty)" -> "Badlands National Park, South Dakota".
func titleFromCopyright(copyright string) string {
	if i := strings.Index(copyright, " ("); i != -1 {
		return copyright[:i]
	}
	return copyright
}
