// Package contenttype maps file extensions to MIME types for the
// Content-Type response header.
package contenttype

import (
	"path"
	"strings"
)

// Default is returned for unknown extensions.
const Default = "application/octet-stream"

// types is never written after init.
var types = map[string]string{
	"html":  "text/html",
	"htm":   "text/html",
	"css":   "text/css",
	"js":    "text/javascript",
	"mjs":   "text/javascript",
	"json":  "application/json",
	"map":   "application/json",
	"xml":   "application/xml",
	"txt":   "text/plain",
	"md":    "text/markdown",
	"csv":   "text/csv",
	"pdf":   "application/pdf",
	"wasm":  "application/wasm",
	"png":   "image/png",
	"jpg":   "image/jpeg",
	"jpeg":  "image/jpeg",
	"gif":   "image/gif",
	"svg":   "image/svg+xml",
	"webp":  "image/webp",
	"avif":  "image/avif",
	"ico":   "image/x-icon",
	"woff":  "font/woff",
	"woff2": "font/woff2",
	"ttf":   "font/ttf",
	"otf":   "font/otf",
	"mp3":   "audio/mpeg",
	"mp4":   "video/mp4",
	"webm":  "video/webm",
}

// Lookup returns the MIME type for ext. ext may carry a leading dot and any
// case. It never fails.
func Lookup(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if t, ok := types[ext]; ok {
		return t
	}
	return Default
}

// ForPath looks up the type of p by its extension.
func ForPath(p string) string {
	return Lookup(path.Ext(p))
}
