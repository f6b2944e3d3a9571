package httpapi

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/speedkit/splitvault/internal/config"
	"github.com/speedkit/splitvault/internal/ingest"
	"github.com/speedkit/splitvault/internal/repository"
)

// NewServer builds the HTTP API server with all routes registered.
func NewServer(cfg *config.Config, importer ingest.Importer, repo repository.Repository) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dK", cfg.MaxUploadSizeKB)))

	NewHandler(importer, repo).RegisterRoutes(e)

	return e
}
