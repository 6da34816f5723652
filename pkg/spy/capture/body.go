package capture

import (
	"encoding/json"
	"fmt"
	"net/url"
	"unicode/utf8"
)

// DerivePath extracts the path+query component from a URL. When the URL
// does not parse as an absolute URL, the raw string is returned verbatim
// so relative-path clients still produce a filterable value.
func DerivePath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return rawURL
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return path
}

// DecodeBody normalizes a raw request or response payload for storage.
// String and byte payloads that parse as JSON become the decoded value;
// non-JSON byte payloads become their string representation. Typed values
// (structs, typed maps and slices) are round-tripped through their JSON
// form so every stored body is built from plain maps, slices, and
// scalars, which is the shape the redaction walk operates on.
func DecodeBody(body any) any {
	switch b := body.(type) {
	case nil:
		return nil
	case string:
		if v, ok := tryDecodeJSON([]byte(b)); ok {
			return v
		}
		return b
	case []byte:
		if v, ok := tryDecodeJSON(b); ok {
			return v
		}
		return string(b)
	case map[string]any, []any:
		return body
	default:
		data, err := json.Marshal(body)
		if err != nil {
			// Not fmt.Sprint: stringifying an unserializable struct
			// would expose fields the redaction walk cannot reach.
			return fmt.Sprintf("<unserializable %T body>", body)
		}
		if v, ok := tryDecodeJSON(data); ok {
			return v
		}
		return string(data)
	}
}

func tryDecodeJSON(data []byte) (any, bool) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false
	}
	return v, true
}

// TruncateBody enforces the configured maximum serialized body length.
//
// String bodies are hard-cut at maxLen characters with a marker noting
// the omitted count. Oversized structured bodies degrade to their
// truncated string representation with the same marker, so a shortened
// body is always recognizable as such.
func TruncateBody(body any, maxLen int) any {
	if body == nil || maxLen <= 0 {
		return body
	}

	if s, ok := body.(string); ok {
		return truncateString(s, maxLen)
	}

	data, err := json.Marshal(body)
	if err != nil || utf8.RuneCount(data) <= maxLen {
		return body
	}
	return truncateString(string(data), maxLen)
}

// truncateString cuts s to maxLen characters, counting runes so a
// multi-byte character is never split.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + truncationMarker(len(runes)-maxLen)
}

func truncationMarker(omitted int) string {
	return fmt.Sprintf("... [truncated, %d chars omitted]", omitted)
}
