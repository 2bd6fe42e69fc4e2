package extractor_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/signalfire/auto-featured/internal/extractor"
)

type mapResolver struct {
	ids   map[string]uint64
	calls []string
}

func (m *mapResolver) ResolveURL(_ context.Context, url string) uint64 {
	m.calls = append(m.calls, url)

	return m.ids[url]
}

func TestFirstImage(t *testing.T) {
	known := map[string]uint64{
		"https://example.com/uploads/a.jpg": 10,
		"https://example.com/uploads/b.jpg": 20,
	}

	testCases := []struct {
		name   string
		html   string
		wantID uint64
		wantOK bool
	}{
		{
			name: "empty body",
		},
		{
			name: "no image element",
			html: `<p>Just text <a href="https://example.com/uploads/a.jpg">link</a></p>`,
		},
		{
			name:   "first resolvable src wins",
			html:   `<img src="https://example.com/uploads/a.jpg"><img src="https://example.com/uploads/b.jpg">`,
			wantID: 10,
			wantOK: true,
		},
		{
			name:   "unresolvable src falls back to class token",
			html:   `<img class="aligncenter asset-image-42" src="https://elsewhere.net/x.png">`,
			wantID: 42,
			wantOK: true,
		},
		{
			name:   "first unresolvable second resolvable",
			html:   `<img src="https://elsewhere.net/x.png"><p>text</p><img src='https://example.com/uploads/b.jpg' alt="b">`,
			wantID: 20,
			wantOK: true,
		},
		{
			name:   "upper case tag",
			html:   `<IMG SRC="x" class="asset-image-7">`,
			wantID: 7,
			wantOK: true,
		},
		{
			name:   "src without quotes is ignored",
			html:   `<img src=https://example.com/uploads/a.jpg class="asset-image-3">`,
			wantID: 3,
			wantOK: true,
		},
		{
			name: "nothing resolves",
			html: `<img src="https://elsewhere.net/x.png"><img alt="no source">`,
		},
		{
			name: "class token zero stops the scan",
			html: `<img class="asset-image-0"><img src="https://example.com/uploads/a.jpg">`,
		},
		{
			name:   "oversized class token saturates",
			html:   `<img class="asset-image-99999999999999999999"><img src="https://example.com/uploads/a.jpg">`,
			wantID: math.MaxInt64,
			wantOK: true,
		},
		{
			name:   "class token above the signed range saturates",
			html:   `<img class="asset-image-18446744073709551615">`,
			wantID: math.MaxInt64,
			wantOK: true,
		},
		{
			name:   "resolvable src beats class token",
			html:   `<img class="asset-image-99" src="https://example.com/uploads/b.jpg">`,
			wantID: 20,
			wantOK: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := &mapResolver{ids: known}

			id, ok := extractor.FirstImage(context.Background(), tc.html, r)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestFirstImageStopsAtFirstHit(t *testing.T) {
	r := &mapResolver{ids: map[string]uint64{"a": 1, "b": 2}}

	id, ok := extractor.FirstImage(context.Background(), `<img src="a"><img src="b">`, r)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), id)
	assert.Equal(t, []string{"a"}, r.calls)
}

func TestFirstImageNilResolver(t *testing.T) {
	id, ok := extractor.FirstImage(context.Background(), `<img src="a" class="asset-image-5">`, nil)
	assert.True(t, ok)
	assert.Equal(t, uint64(5), id)
}

func TestResolverFunc(t *testing.T) {
	r := extractor.ResolverFunc(func(_ context.Context, url string) uint64 {
		if url == "hit" {
			return 3
		}

		return 0
	})

	id, ok := extractor.FirstImage(context.Background(), `<img src="miss"><img src="hit">`, r)
	assert.True(t, ok)
	assert.Equal(t, uint64(3), id)
}
