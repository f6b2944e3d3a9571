package httpapi

import (
	"github.com/labstack/echo/v4"
	"github.com/samber/do/v2"
	"github.com/speedkit/splitvault/internal/config"
	"github.com/speedkit/splitvault/internal/ingest"
	"github.com/speedkit/splitvault/internal/repository"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*echo.Echo, error) {
		cfg := do.MustInvoke[*config.Config](i)
		svc := do.MustInvoke[*ingest.Service](i)
		repo := do.MustInvoke[repository.Repository](i)
		return NewServer(cfg, svc, repo), nil
	})
}
