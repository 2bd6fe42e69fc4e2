package site

import (
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sitectrl "github.com/signalfire/auto-featured/internal/db/controller/site"
	"github.com/signalfire/auto-featured/internal/db/dbtest"
	"github.com/signalfire/auto-featured/internal/web/handler"
)

func TestNew(t *testing.T) {
	db := dbtest.Open(t)

	other, err := sitectrl.Create(db, "blog.example.org", "Blog")
	require.NoError(t, err)

	app := fiber.New()
	app.Use(New(db))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(strconv.FormatUint(handler.SiteID(c), 10))
	})

	tests := []struct {
		host string
		want uint64
	}{
		{host: "example.com", want: 1},
		{host: "blog.example.org", want: other.ID},
		{host: "blog.example.org:8080", want: other.ID},
		{host: "unknown.test", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/", nil)
			req.Host = tt.host

			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			body := make([]byte, 32)
			n, _ := resp.Body.Read(body)
			_ = resp.Body.Close()

			assert.Equal(t, strconv.FormatUint(tt.want, 10), string(body[:n]))
		})
	}
}
