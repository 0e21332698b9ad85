package config

const redacted = "***"

// RedactedConfig returns a shallow copy of cfg with sensitive fields
// replaced by a placeholder. Use this when logging the active configuration
// so secrets are never accidentally exposed.
func RedactedConfig(cfg *Config) Config {
	out := *cfg

	if out.Database.DSN != "" {
		out.Database.DSN = redacted
	}
	if out.Database.Password != "" {
		out.Database.Password = redacted
	}
	if out.Redis.Password != "" {
		out.Redis.Password = redacted
	}
	if out.Notify.TelegramToken != "" {
		out.Notify.TelegramToken = redacted
	}
	if out.Notify.DiscordWebhookURL != "" {
		out.Notify.DiscordWebhookURL = redacted
	}

	return out
}
