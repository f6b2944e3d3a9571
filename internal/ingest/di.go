package ingest

import (
	"github.com/samber/do/v2"
	"github.com/speedkit/splitvault/internal/config"
	"github.com/speedkit/splitvault/internal/notify"
	"github.com/speedkit/splitvault/internal/repository"
	"github.com/speedkit/splitvault/internal/webhook"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[repository.Repository](i)
		wh := do.MustInvoke[webhook.Sender](i)
		announcer := do.MustInvoke[notify.Announcer](i)
		return NewService(cfg, repo, wh, announcer), nil
	})
}
