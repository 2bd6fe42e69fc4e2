package autofeatured

import (
	"math"
	"strings"
)

// SanitizeKey lowercases s and drops everything but a-z, 0-9, dash and underscore.
func SanitizeKey(s string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// AbsInt reads the leading integer of s and returns its absolute value.
// Anything that does not start with an optionally signed number yields 0.
func AbsInt(s string) uint64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	if s == "" {
		return 0
	}

	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}

	var n uint64

	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := uint64(s[i] - '0')
		if n > (math.MaxInt64-d)/10 {
			return math.MaxInt64
		}

		n = n*10 + d
	}

	return n
}

// Sanitize builds a settings record from raw form input.
// Content type keys are sanitized and deduplicated, a fallback of 0 means none.
func Sanitize(contentTypes []string, fallback string) Settings {
	out := Settings{EnabledContentTypes: make([]string, 0, len(contentTypes))}
	seen := make(map[string]struct{}, len(contentTypes))

	for _, t := range contentTypes {
		key := SanitizeKey(t)
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out.EnabledContentTypes = append(out.EnabledContentTypes, key)
	}

	if id := AbsInt(fallback); id > 0 {
		out.FallbackAssetID = &id
	}

	return out
}
