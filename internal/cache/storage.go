package cache

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	"github.com/gofiber/storage/mysql/v2"
	"github.com/gofiber/storage/postgres/v3"

	"github.com/signalfire/auto-featured/internal/config"
	"github.com/signalfire/auto-featured/internal/db/dsn"
)

// NewStorage returns a fiber storage for table, backed by the configured database engine.
// SQLite deployments get an in-memory storage, which is private to the process.
func NewStorage(cfg *config.Config, table string) fiber.Storage {
	switch cfg.DB.GormEngine {
	case "mysql":
		return mysql.New(mysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         table,
		})
	case "postgres":
		return postgres.New(postgres.Config{
			ConnectionURI: dsn.URI(cfg),
			Table:         table,
		})
	default:
		return memory.New()
	}
}

// Shared reports whether NewStorage hands out storage every process sees.
// The option cache must only be used when it is, otherwise a command run
// next to the server cannot invalidate what the server cached.
func Shared(cfg *config.Config) bool {
	switch cfg.DB.GormEngine {
	case "mysql", "postgres":
		return true
	default:
		return false
	}
}
