package discord

import (
	"github.com/samber/do/v2"
	"github.com/speedkit/splitvault/internal/config"
	"github.com/speedkit/splitvault/internal/notify"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (notify.Announcer, error) {
		c := do.MustInvoke[*config.Config](i)
		if c.DiscordToken == "" {
			return notify.Noop{}, nil
		}
		return NewAnnouncer(c.DiscordToken, c.DiscordAnnounceChannelID)
	})
}
