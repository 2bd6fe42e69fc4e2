package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalfire/auto-featured/internal/db/dbtest"
	"github.com/signalfire/auto-featured/internal/db/models"
)

func seed(t *testing.T) (*models.Media, *models.Media) {
	t.Helper()

	return &models.Media{
			SiteID:   1,
			Path:     "2026/10/cat.jpg",
			GUID:     "https://cdn.example.com/uploads/2026/10/cat.jpg",
			MimeType: "image/jpeg",
		}, &models.Media{
			SiteID:   1,
			Path:     "2026/10/report.pdf",
			GUID:     "https://cdn.example.com/uploads/2026/10/report.pdf",
			MimeType: "application/pdf",
		}
}

func TestLookups(t *testing.T) {
	db := dbtest.Open(t)

	img, doc := seed(t)
	require.NoError(t, Create(db, img))
	require.NoError(t, Create(db, doc))

	got, err := Get(db, 1, img.ID)
	require.NoError(t, err)
	assert.True(t, got.IsImage())

	_, err = Get(db, 2, img.ID)
	require.ErrorIs(t, err, ErrMediaNotFound, "media of another site")

	got, err = FindByPath(db, 1, "2026/10/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.False(t, got.IsImage())

	got, err = FindByGUID(db, 1, img.GUID)
	require.NoError(t, err)
	assert.Equal(t, img.ID, got.ID)

	_, err = FindByPath(db, 1, "missing.jpg")
	require.ErrorIs(t, err, ErrMediaNotFound)

	_, err = Get(nil, 1, 1)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestList(t *testing.T) {
	db := dbtest.Open(t)

	img, doc := seed(t)
	require.NoError(t, Create(db, img))
	require.NoError(t, Create(db, doc))

	all, err := List(db, 1, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, doc.ID, all[0].ID, "newest first")

	images, err := List(db, 1, true)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, img.ID, images[0].ID)
}
