package utils

import (
	"encoding/base64"
	"strings"
)

// ParseDataURL decodes a base64 data URL ("data:image/png;base64,...").
// Returns ok=false for anything that is not a well-formed base64 data URL.
func ParseDataURL(s string) (data []byte, contentType string, ok bool) {
	if !strings.HasPrefix(s, "data:") {
		return nil, "", false
	}
	meta, payload, found := strings.Cut(s[len("data:"):], ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return nil, "", false
	}
	contentType = strings.TrimSuffix(meta, ";base64")
	if contentType == "" {
		contentType = "text/plain"
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", false
	}
	return raw, contentType, true
}

// IconExtension maps an image content type to the file extension used for
// icon object keys.
func IconExtension(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/svg+xml":
		return ".svg"
	case "image/webp":
		return ".webp"
	}
	return ".bin"
}
