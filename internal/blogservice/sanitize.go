package blogservice

import (
	"regexp"
	"strings"
)

var scriptTagPattern = regexp.MustCompile(`(?is)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

// sanitizeText strips script elements from user supplied text such as comments.
func sanitizeText(text string) string {
	return strings.TrimSpace(scriptTagPattern.ReplaceAllString(text, ""))
}
