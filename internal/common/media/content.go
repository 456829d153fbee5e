// Package media uploads local images to WordPress and inlines them into post
// content in place of placeholder tokens.
package media

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"
)

const defaultContentType = "image/jpeg"

var contentTypes = map[string]string{
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// ContentTypeFor derives the upload content type from the filename extension
// alone. Unknown or missing extensions fall back to image/jpeg.
func ContentTypeFor(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return defaultContentType
}

// ReplaceFirst substitutes the first literal occurrence of placeholder in
// content. The bool reports whether a substitution happened; an empty
// placeholder never matches.
func ReplaceFirst(content, placeholder, replacement string) (string, bool) {
	if placeholder == "" {
		return content, false
	}
	idx := strings.Index(content, placeholder)
	if idx < 0 {
		return content, false
	}
	return content[:idx] + replacement + content[idx+len(placeholder):], true
}

// escape is applied to every dynamic value embedded in generated markup.
func escape(s string) string {
	return html.EscapeString(s)
}

// ImageMarkup renders the inline tag for a resolved asset.
func ImageMarkup(sourceURL, filename string, assetID int64) string {
	return fmt.Sprintf(`<img src="%s" alt="%s" class="wp-image-%d" />`, escape(sourceURL), escape(filename), assetID)
}

// FailureMarker renders the text left in place of an image that could not be
// uploaded or resolved.
func FailureMarker(filename, message string) string {
	return fmt.Sprintf("[upload error: %s - %s]", escape(filename), escape(message))
}
