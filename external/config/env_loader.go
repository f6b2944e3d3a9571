package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/speedkit/splitvault/internal/config"
)

type envConfig struct {
	Env                      string `env:"ENV" envDefault:"production"`
	HTTPAddr                 string `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseURL              string `env:"DATABASE_URL,required"`
	MaxUploadSizeKB          int    `env:"MAX_UPLOAD_SIZE_KB" envDefault:"4096"`
	ImportWebhookURL         string `env:"IMPORT_WEBHOOK_URL"`
	DiscordToken             string `env:"DISCORD_TOKEN"`
	DiscordAnnounceChannelID string `env:"DISCORD_ANNOUNCE_CHANNEL_ID"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                      raw.Env,
		HTTPAddr:                 raw.HTTPAddr,
		DatabaseURL:              raw.DatabaseURL,
		MaxUploadSizeKB:          raw.MaxUploadSizeKB,
		ImportWebhookURL:         raw.ImportWebhookURL,
		DiscordToken:             raw.DiscordToken,
		DiscordAnnounceChannelID: raw.DiscordAnnounceChannelID,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
