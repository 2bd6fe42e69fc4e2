package lifecycle

import (
	"context"
	"testing"

	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalfire/auto-featured/internal/cache"
	"github.com/signalfire/auto-featured/internal/db/controller/autofeatured"
	"github.com/signalfire/auto-featured/internal/db/controller/setting"
	"github.com/signalfire/auto-featured/internal/db/controller/site"
	"github.com/signalfire/auto-featured/internal/db/dbtest"
)

func TestActivate(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	m := New(db, nil)

	created, err := m.Activate(ctx, 1)
	require.NoError(t, err)
	assert.True(t, created)

	s, err := m.Store().Load(1)
	require.NoError(t, err)
	assert.Equal(t, autofeatured.Defaults(), s)

	fb := uint64(9)
	require.NoError(t, m.Store().Save(1, autofeatured.Settings{EnabledContentTypes: []string{"page"}, FallbackAssetID: &fb}))

	created, err = m.Activate(ctx, 1)
	require.NoError(t, err)
	assert.False(t, created, "existing record is kept")

	s, err = m.Store().Load(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"page"}, s.EnabledContentTypes)

	_, err = m.Activate(ctx, 42)
	require.ErrorIs(t, err, site.ErrSiteNotFound)

	m.Deactivate(ctx, 1)

	s, err = m.Store().Load(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"page"}, s.EnabledContentTypes, "deactivate keeps settings")
}

func TestUninstall(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	c := cache.New(memory.New(), "opt:", 0)
	m := New(db, c)

	second, err := site.Create(db, "blog.example.com", "Blog")
	require.NoError(t, err)

	for _, id := range []uint64{1, second.ID} {
		_, err := m.Activate(ctx, id)
		require.NoError(t, err)

		// warm the cache
		_, err = m.Store().Load(id)
		require.NoError(t, err)
	}

	require.NoError(t, c.Set("unrelated", "value"))

	require.NoError(t, m.Uninstall(ctx, second.ID))

	for _, id := range []uint64{1, second.ID} {
		_, err := setting.Get(db, id, autofeatured.SettingKey)
		require.ErrorIs(t, err, setting.ErrSettingNotFound)

		s, err := m.Store().Load(id)
		require.NoError(t, err)
		assert.Empty(t, s.EnabledContentTypes)
	}

	var v string
	require.ErrorIs(t, c.Get("unrelated", &v), cache.ErrMiss, "cache is flushed")

	require.NoError(t, m.Uninstall(ctx, 1), "uninstall twice is fine")
}

func TestAutoActivate(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	m := New(db, nil)

	created, err := m.AutoActivate(ctx, 1)
	require.NoError(t, err)
	assert.True(t, created, "first start seeds the defaults")

	require.NoError(t, m.Uninstall(ctx, 1))

	uninstalled, err := m.Uninstalled(ctx)
	require.NoError(t, err)
	assert.True(t, uninstalled)

	created, err = m.AutoActivate(ctx, 1)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = setting.Get(db, 1, autofeatured.SettingKey)
	require.ErrorIs(t, err, setting.ErrSettingNotFound, "start after uninstall leaves the settings removed")

	created, err = m.Activate(ctx, 1)
	require.NoError(t, err)
	assert.True(t, created)

	uninstalled, err = m.Uninstalled(ctx)
	require.NoError(t, err)
	assert.False(t, uninstalled, "activate clears the marker")
}
