package media

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mediactrl "github.com/signalfire/auto-featured/internal/db/controller/media"
	"github.com/signalfire/auto-featured/internal/db/dbtest"
	"github.com/signalfire/auto-featured/internal/db/models"
)

func TestResolver(t *testing.T) {
	db := dbtest.Open(t)

	byPath := &models.Media{SiteID: 1, Path: "2026/10/cat.jpg", MimeType: "image/jpeg"}
	require.NoError(t, mediactrl.Create(db, byPath))

	// uploaded before the library moved, only the original URL matches
	byGUID := &models.Media{
		SiteID:   1,
		Path:     "legacy/dog.jpg",
		GUID:     "https://example.com/uploads/old/dog.jpg",
		MimeType: "image/jpeg",
	}
	require.NoError(t, mediactrl.Create(db, byGUID))

	r := NewResolver(db, "https://example.com/uploads/")
	ctx := context.Background()

	testCases := []struct {
		name string
		site uint64
		url  string
		want uint64
	}{
		{name: "path below base url", site: 1, url: "https://example.com/uploads/2026/10/cat.jpg", want: byPath.ID},
		{name: "scheme mismatch", site: 1, url: "http://example.com/uploads/2026/10/cat.jpg", want: byPath.ID},
		{name: "protocol relative", site: 1, url: "//example.com/uploads/2026/10/cat.jpg", want: byPath.ID},
		{name: "query string ignored", site: 1, url: "https://example.com/uploads/2026/10/cat.jpg?ver=2", want: byPath.ID},
		{name: "guid fallback", site: 1, url: "https://example.com/uploads/old/dog.jpg", want: byGUID.ID},
		{name: "external url", site: 1, url: "https://cdn.other.net/2026/10/cat.jpg"},
		{name: "unknown upload", site: 1, url: "https://example.com/uploads/2026/10/missing.jpg"},
		{name: "base url only", site: 1, url: "https://example.com/uploads/"},
		{name: "other site", site: 2, url: "https://example.com/uploads/2026/10/cat.jpg"},
		{name: "empty", site: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.Resolve(ctx, tc.site, tc.url))
			assert.Equal(t, tc.want, r.ForSite(tc.site).ResolveURL(ctx, tc.url))
		})
	}
}
