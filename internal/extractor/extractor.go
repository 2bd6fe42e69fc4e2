// Package extractor finds the first usable image reference in an HTML body.
package extractor

import (
	"context"
	"math"
	"regexp"
	"strconv"
)

var (
	imgElement = regexp.MustCompile(`(?i)<img[^>]+>`)
	srcAttr    = regexp.MustCompile(`src=["']([^"']+)["']`)
	classToken = regexp.MustCompile(`asset-image-(\d+)`)
)

// Resolver maps an image URL to a media asset id. 0 means the URL is unknown.
type Resolver interface {
	ResolveURL(ctx context.Context, url string) uint64
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(ctx context.Context, url string) uint64

// ResolveURL calls f.
func (f ResolverFunc) ResolveURL(ctx context.Context, url string) uint64 {
	return f(ctx, url)
}

// FirstImage returns the asset id of the first img element that resolves.
// Per element the src attribute is tried before an asset-image-N class token.
func FirstImage(ctx context.Context, html string, r Resolver) (uint64, bool) {
	if html == "" {
		return 0, false
	}

	for _, el := range imgElement.FindAllString(html, -1) {
		if m := srcAttr.FindStringSubmatch(el); m != nil && r != nil {
			if id := r.ResolveURL(ctx, m[1]); id > 0 {
				return id, true
			}
		}

		m := classToken.FindStringSubmatch(el)
		if m == nil {
			continue
		}

		// the token wins even when it does not point at a valid id
		id := classID(m[1])
		if id == 0 {
			return 0, false
		}

		return id, true
	}

	return 0, false
}

// classID parses the digits of a class token. Values beyond the signed 64 bit
// range saturate at math.MaxInt64, like the ids of the option sanitizer.
func classID(digits string) uint64 {
	id, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || id > math.MaxInt64 {
		return math.MaxInt64
	}

	return id
}
