// Package httputil provides HTTP verb and media type helpers for OpenAPI documents.
package httputil

import (
	"mime"
	"strings"
)

// HTTP Method Constants
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
	MethodQuery   = "query" // OAS 3.2+ only
)

// methods lists every verb a path item may carry, in canonical emission order.
var methods = []string{
	MethodGet,
	MethodPut,
	MethodPost,
	MethodDelete,
	MethodOptions,
	MethodHead,
	MethodPatch,
	MethodTrace,
	MethodQuery,
}

// Methods returns the operation verbs in canonical order.
// The returned slice is a copy and may be modified by the caller.
func Methods() []string {
	out := make([]string, len(methods))
	copy(out, methods)
	return out
}

// IsMethod reports whether key names an operation within a path item.
// Keys are matched exactly; OpenAPI requires lowercase verbs.
func IsMethod(key string) bool {
	for _, m := range methods {
		if m == key {
			return true
		}
	}
	return false
}

// NormalizeMethod lowercases and trims a user supplied verb.
// It returns "" when the result is not an operation verb.
func NormalizeMethod(m string) string {
	m = strings.ToLower(strings.TrimSpace(m))
	if !IsMethod(m) {
		return ""
	}
	return m
}

// MediaKind classifies a request body media type.
type MediaKind int

const (
	// MediaOther is any media type not covered below (text/plain, application/xml, ...).
	MediaOther MediaKind = iota
	// MediaBinary is opaque content: application/octet-stream, images, audio, video, ...
	MediaBinary
	// MediaForm is application/x-www-form-urlencoded or multipart/form-data.
	MediaForm
	// MediaJSON is application/json or any "+json" structured syntax suffix.
	MediaJSON
)

// String returns the kind name.
func (k MediaKind) String() string {
	switch k {
	case MediaJSON:
		return "json"
	case MediaForm:
		return "form"
	case MediaBinary:
		return "binary"
	default:
		return "other"
	}
}

// ClassifyMediaType returns the kind of mediaType. Parameters (charset, ...) are ignored.
func ClassifyMediaType(mediaType string) MediaKind {
	mt := baseMediaType(mediaType)
	switch {
	case mt == "application/json", mt == "text/json", strings.HasSuffix(mt, "+json"):
		return MediaJSON
	case mt == "application/x-www-form-urlencoded", mt == "multipart/form-data":
		return MediaForm
	case mt == "application/octet-stream", mt == "application/pdf", mt == "application/zip",
		strings.HasPrefix(mt, "image/"), strings.HasPrefix(mt, "audio/"), strings.HasPrefix(mt, "video/"):
		return MediaBinary
	}
	return MediaOther
}

// PreferredMediaType picks the media type whose schema best describes a tool
// argument: JSON first, then form encodings, then anything non-binary, then
// binary. Ties keep the first candidate in the given order. It returns ""
// for an empty list.
func PreferredMediaType(mediaTypes []string) (string, MediaKind) {
	best, bestKind, bestRank := "", MediaOther, -1
	for _, mt := range mediaTypes {
		kind := ClassifyMediaType(mt)
		if r := rank(kind); r > bestRank {
			best, bestKind, bestRank = mt, kind, r
		}
	}
	return best, bestKind
}

func rank(k MediaKind) int {
	switch k {
	case MediaJSON:
		return 3
	case MediaForm:
		return 2
	case MediaOther:
		return 1
	default:
		return 0
	}
}

// IsJSONMediaType reports whether a Content-Type header names JSON.
func IsJSONMediaType(contentType string) bool {
	return ClassifyMediaType(contentType) == MediaJSON
}

// IsYAMLMediaType reports whether a Content-Type header names YAML.
func IsYAMLMediaType(contentType string) bool {
	mt := baseMediaType(contentType)
	return mt == "application/yaml" || mt == "application/x-yaml" ||
		mt == "text/yaml" || mt == "text/x-yaml" || strings.HasSuffix(mt, "+yaml")
}

// IsValidMediaType validates a media type string according to RFC 2045/2046.
// Handles wildcards (*/* and type/*) and prevents invalid combinations (*/subtype).
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}

	if strings.HasSuffix(mediaType, "/*") {
		parts := strings.Split(mediaType, "/")
		return len(parts) == 2 && parts[0] != "" && parts[0] != "*"
	}

	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil
}

func baseMediaType(mediaType string) string {
	if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
		return mt
	}
	mt, _, _ := strings.Cut(mediaType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
