package utils

import "github.com/microcosm-cc/bluemonday"

var (
	htmlPolicy = bluemonday.UGCPolicy()
	textPolicy = bluemonday.StrictPolicy()
)

// SanitizeHTML cleans admin-authored rich text (missions, descriptions).
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// SanitizeText strips all markup; used for titles.
func SanitizeText(input string) string {
	return textPolicy.Sanitize(input)
}
