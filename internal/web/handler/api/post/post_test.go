package post

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/signalfire/auto-featured/internal/auth"
	"github.com/signalfire/auto-featured/internal/config"
	"github.com/signalfire/auto-featured/internal/content"
	"github.com/signalfire/auto-featured/internal/db/controller/autofeatured"
	mediactrl "github.com/signalfire/auto-featured/internal/db/controller/media"
	postctrl "github.com/signalfire/auto-featured/internal/db/controller/post"
	"github.com/signalfire/auto-featured/internal/db/dbtest"
	"github.com/signalfire/auto-featured/internal/db/models"
	"github.com/signalfire/auto-featured/internal/featured"
	"github.com/signalfire/auto-featured/internal/media"
	"github.com/signalfire/auto-featured/internal/web/handler"
)

const baseURL = "https://example.com/uploads"

type fixture struct {
	app   *fiber.App
	db    *gorm.DB
	image *models.Media
}

func newFixture(t *testing.T, siteID uint64) *fixture {
	t.Helper()

	db := dbtest.Open(t)
	authService := auth.NewService(db)

	role, err := authService.EnsureRole("author", "", []auth.PermissionInfo{
		{Name: auth.PermPostEdit}, {Name: auth.PermPostRead},
	})
	require.NoError(t, err)

	user, err := auth.NewLocalProvider(db).CreateUser("author", "author@example.com", "secret", role.ID, 1)
	require.NoError(t, err)

	img := &models.Media{SiteID: 1, Path: "2026/10/cat.jpg", MimeType: "image/jpeg"}
	require.NoError(t, mediactrl.Create(db, img))

	store := autofeatured.NewStore(db, nil)
	require.NoError(t, store.Save(1, autofeatured.Defaults()))

	svc := content.NewService(db, config.Content{Revisions: true})
	svc.OnSave(featured.NewAssigner(db, store, media.NewResolver(db, baseURL)).Hook)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.LocalsCurrentUser, *user)
		c.Locals(handler.LocalsSiteID, siteID)

		return c.Next()
	})

	var s Service
	s.Init(app, authService, svc)

	return &fixture{app: app, db: db, image: img}
}

func (f *fixture) do(t *testing.T, method, target string, body interface{}) (*http.Response, models.Post) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	var p models.Post
	if resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	}

	return resp, p
}

func str(s string) *string {
	return &s
}

func TestSaveAssignsFeaturedImage(t *testing.T) {
	f := newFixture(t, 1)

	resp, created := f.do(t, http.MethodPost, Path, Request{
		Title: str("Cats"),
		Body:  str(`<p>Look</p><img src="` + baseURL + `/2026/10/cat.jpg">`),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.Equal(t, "post", created.Type)
	assert.Equal(t, models.PostKindCanonical, created.Kind)
	require.NotNil(t, created.FeaturedMediaID)
	assert.Equal(t, f.image.ID, *created.FeaturedMediaID)

	resp, got := f.do(t, http.MethodGet, Path+"/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Cats", got.Title)
	assert.Equal(t, created.FeaturedMediaID, got.FeaturedMediaID)
}

func TestUpdateKeepsOmittedFields(t *testing.T) {
	f := newFixture(t, 1)

	_, created := f.do(t, http.MethodPost, Path, Request{Type: "page", Title: str("About"), Body: str("text")})

	resp, updated := f.do(t, http.MethodPost, Path, Request{ID: created.ID, Title: str("About us")})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "About us", updated.Title)
	assert.Equal(t, "text", updated.Body)
	assert.Equal(t, "page", updated.Type)
	assert.Nil(t, updated.FeaturedMediaID, "pages are not enabled")
}

func TestAutosave(t *testing.T) {
	f := newFixture(t, 1)

	_, created := f.do(t, http.MethodPost, Path, Request{Title: str("Draft"), Body: str("no image yet")})

	resp, auto := f.do(t, http.MethodPost, Path+"?autosave=true", Request{
		ID:   created.ID,
		Body: str(`<img src="` + baseURL + `/2026/10/cat.jpg">`),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, models.PostKindAutosave, auto.Kind)
	assert.Nil(t, auto.FeaturedMediaID)

	stored, err := postctrl.Get(f.db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "no image yet", stored.Body)
	assert.Nil(t, stored.FeaturedMediaID)

	resp, _ = f.do(t, http.MethodPost, Path, Request{Autosave: true})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestErrors(t *testing.T) {
	f := newFixture(t, 1)

	tests := []struct {
		name   string
		method string
		target string
		body   interface{}
		status int
	}{
		{name: "unknown type", method: http.MethodPost, target: Path, body: Request{Type: "product"}, status: http.StatusUnprocessableEntity},
		{name: "bad status", method: http.MethodPost, target: Path, body: Request{Status: "deleted"}, status: http.StatusBadRequest},
		{name: "unknown post", method: http.MethodPost, target: Path, body: Request{ID: 999}, status: http.StatusNotFound},
		{name: "get unknown", method: http.MethodGet, target: Path + "/999", status: http.StatusNotFound},
		{name: "get bad id", method: http.MethodGet, target: Path + "/abc", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := f.do(t, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestOtherSite(t *testing.T) {
	f := newFixture(t, 2)

	p := &models.Post{SiteID: 1, Type: "post", Title: "site one"}
	require.NoError(t, postctrl.Save(f.db, p))

	resp, _ := f.do(t, http.MethodGet, Path+"/"+itoa(p.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
