package config

import "fmt"

type Config struct {
	Env                      string
	HTTPAddr                 string
	DatabaseURL              string
	MaxUploadSizeKB          int
	ImportWebhookURL         string
	DiscordToken             string
	DiscordAnnounceChannelID string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if c.MaxUploadSizeKB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE_KB must be positive, got %d", c.MaxUploadSizeKB)
	}
	if c.DiscordToken != "" && c.DiscordAnnounceChannelID == "" {
		return fmt.Errorf("DISCORD_ANNOUNCE_CHANNEL_ID is required when DISCORD_TOKEN is set")
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "HTTP_ADDR", value: c.HTTPAddr},
		{name: "DATABASE_URL", value: c.DatabaseURL},
	}
}

func (c *Config) MaxUploadSizeBytes() int64 {
	return int64(c.MaxUploadSizeKB) * 1024
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
