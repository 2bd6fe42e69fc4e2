package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalfire/auto-featured/internal/auth"
	"github.com/signalfire/auto-featured/internal/blob"
	"github.com/signalfire/auto-featured/internal/config"
	"github.com/signalfire/auto-featured/internal/content"
	settings "github.com/signalfire/auto-featured/internal/db/controller/autofeatured"
	"github.com/signalfire/auto-featured/internal/db/dbtest"
	medialib "github.com/signalfire/auto-featured/internal/media"
	"github.com/signalfire/auto-featured/internal/web/session"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db := dbtest.Open(t)
	session.Init(memory.New())

	cfg := &config.Config{
		Title: "Auto Featured",
		Webserver: config.Webserver{
			Port:        8080,
			MetricsPath: "/metrics",
			Session:     config.Session{ExpiryTime: time.Hour},
		},
		Media: config.Media{
			BaseURL:       "https://example.com/uploads",
			Driver:        "local",
			Path:          t.TempDir(),
			MaxUploadSize: 1 << 20,
			AllowedTypes:  []string{"jpg", "png"},
		},
	}

	store, err := blob.NewLocal(cfg.Media.Path)
	require.NoError(t, err)

	authService := auth.NewService(db)
	role, err := authService.EnsureRole("admin", "", auth.AllPermissions())
	require.NoError(t, err)

	_, err = auth.NewLocalProvider(db).CreateUser("admin", "admin@example.com", "changeme", role.ID, 1)
	require.NoError(t, err)

	return New(cfg, Deps{
		DB:       db,
		Settings: settings.NewStore(db, nil),
		Content:  content.NewService(db, cfg.Content),
		Library:  medialib.NewLibrary(db, store, cfg.Media),
	})
}

func TestPublicRoutes(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name     string
		target   string
		status   int
		location string
		contains string
	}{
		{name: "check alive", target: CheckAlivePath, status: http.StatusOK, contains: "OK"},
		{name: "metrics", target: "/metrics", status: http.StatusOK, contains: "go_goroutines"},
		{name: "static", target: "/static/css/app.css", status: http.StatusOK, contains: ".login-box"},
		{name: "login page", target: "/login", status: http.StatusOK, contains: `action="/login"`},
		{name: "root", target: "/", status: http.StatusFound, location: "/login"},
		{name: "settings needs login", target: "/settings/auto-featured", status: http.StatusFound, location: "/login"},
		{name: "api needs login", target: "/api/posts/1", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, tt.target, nil), -1)
			require.NoError(t, err)

			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.status, resp.StatusCode)

			if tt.location != "" {
				assert.Equal(t, tt.location, resp.Header.Get("Location"))
			}

			if tt.contains != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), tt.contains)
			}
		})
	}
}

func TestCheckAliveWhileShuttingDown(t *testing.T) {
	s := newTestService(t)
	s.alive.Store(false)

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, CheckAlivePath, nil), -1)
	require.NoError(t, err)

	_ = resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func loginCookie(t *testing.T, s *Service) *http.Cookie {
	t.Helper()

	form := url.Values{"username": {"admin"}, "password": {"changeme"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.App.Test(req, -1)
	require.NoError(t, err)

	_ = resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/settings/auto-featured", resp.Header.Get("Location"))

	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			return &http.Cookie{Name: c.Name, Value: c.Value}
		}
	}

	t.Fatal("no session cookie")

	return nil
}

func settingsPage(t *testing.T, s *Service, cookie *http.Cookie) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/settings/auto-featured", nil)
	req.AddCookie(cookie)

	resp, err := s.App.Test(req, -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(body)
}

func TestLoginAndSettingsPage(t *testing.T) {
	s := newTestService(t)

	page := settingsPage(t, s, loginCookie(t, s))
	assert.Contains(t, page, "Content types")
	assert.Contains(t, page, `name="_csrf"`)
	assert.Contains(t, page, `value="post"`)
	assert.Contains(t, page, `value="0" checked`)
	assert.Contains(t, page, "admin")
}

func TestSettingsPageKeepsMissingFallback(t *testing.T) {
	s := newTestService(t)

	fallback := uint64(999)
	require.NoError(t, settings.NewStore(s.db, nil).Save(1, settings.Settings{
		EnabledContentTypes: []string{"post"},
		FallbackAssetID:     &fallback,
	}))

	page := settingsPage(t, s, loginCookie(t, s))
	assert.NotContains(t, page, `value="0" checked`)
	assert.Contains(t, page, `name="fallback_asset_id" value="999" checked`)
}
