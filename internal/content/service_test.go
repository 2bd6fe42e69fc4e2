package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalfire/auto-featured/internal/config"
	"github.com/signalfire/auto-featured/internal/db/controller/post"
	"github.com/signalfire/auto-featured/internal/db/dbtest"
	"github.com/signalfire/auto-featured/internal/db/models"
)

type recorder struct {
	kinds []models.PostKind
}

func (r *recorder) hook(_ context.Context, p *models.Post) {
	r.kinds = append(r.kinds, p.Kind)
}

func TestSave(t *testing.T) {
	db := dbtest.Open(t)
	s := NewService(db, config.Content{Revisions: true})

	rec := &recorder{}
	s.OnSave(rec.hook)

	p := &models.Post{Type: "post", Title: "Hello", Body: "<p>hi</p>"}
	require.NoError(t, s.Save(context.Background(), p))

	assert.Equal(t, models.DefaultSiteID, p.SiteID)
	assert.Equal(t, "draft", p.Status)
	assert.Equal(t, []models.PostKind{models.PostKindRevision, models.PostKindCanonical}, rec.kinds)

	rev, err := post.FindChild(db, p.ID, models.PostKindRevision)
	require.NoError(t, err)
	assert.Equal(t, "Hello", rev.Title)
	assert.Equal(t, "inherit", rev.Status)

	p.Title = "Hello again"
	require.NoError(t, s.Save(context.Background(), p))

	n, err := post.CountChildren(db, p.ID, models.PostKindRevision)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSaveWithoutRevisions(t *testing.T) {
	db := dbtest.Open(t)
	s := NewService(db, config.Content{})

	rec := &recorder{}
	s.OnSave(rec.hook)

	p := &models.Post{Type: "page"}
	require.NoError(t, s.Save(context.Background(), p))
	assert.Equal(t, []models.PostKind{models.PostKindCanonical}, rec.kinds)

	n, err := post.CountChildren(db, p.ID, models.PostKindRevision)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSaveRejects(t *testing.T) {
	s := NewService(dbtest.Open(t), config.Content{
		Types: []config.ContentType{{Name: "Recipe"}},
	})

	require.ErrorIs(t, s.Save(context.Background(), &models.Post{Type: "product"}), ErrUnknownType)
	require.ErrorIs(t, s.Save(context.Background(), &models.Post{Type: "post", Kind: models.PostKindRevision}), ErrNotCanonical)
	require.NoError(t, s.Save(context.Background(), &models.Post{Type: "recipe"}))
}

func TestAutosave(t *testing.T) {
	db := dbtest.Open(t)
	s := NewService(db, config.Content{})

	p := &models.Post{Type: "post", Title: "Saved", Body: "saved body"}
	require.NoError(t, s.Save(context.Background(), p))

	rec := &recorder{}
	s.OnSave(rec.hook)

	first, err := s.Autosave(context.Background(), &models.Post{ID: p.ID, Title: "Draft", Body: "draft body"})
	require.NoError(t, err)
	assert.Equal(t, models.PostKindAutosave, first.Kind)
	require.NotNil(t, first.ParentID)
	assert.Equal(t, p.ID, *first.ParentID)

	second, err := s.Autosave(context.Background(), &models.Post{ID: p.ID, Title: "Draft 2"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "autosave is replaced")

	canonical, err := s.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Saved", canonical.Title)

	assert.Equal(t, []models.PostKind{models.PostKindAutosave, models.PostKindAutosave}, rec.kinds)

	_, err = s.Autosave(context.Background(), &models.Post{ID: 999})
	require.ErrorIs(t, err, post.ErrPostNotFound)

	_, err = s.Autosave(context.Background(), &models.Post{ID: first.ID})
	require.ErrorIs(t, err, ErrNotCanonical)
}
