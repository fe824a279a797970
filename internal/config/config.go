package config

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	BotToken string `env:"BOT_TOKEN,required"`
	BotName  string `env:"BOT_NAME,required"`

	// Optional HTTPS proxy for all Bot API traffic
	HTTPProxy string `env:"HTTP_PROXY"`

	// Challenge behavior
	ChallengeTTL time.Duration `env:"CHALLENGE_TTL" envDefault:"5m"`

	// Telegram logging: chat that receives verification notices (0 = off)
	LogChatID int64 `env:"LOG_CHAT_ID"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// HTTPClient builds the client used for Bot API calls, honoring the optional
// proxy setting.
func (c *Config) HTTPClient() (*http.Client, error) {
	client := &http.Client{Timeout: APICallTimeout}
	if c.HTTPProxy == "" {
		return client, nil
	}
	proxyURL, err := url.Parse(c.HTTPProxy)
	if err != nil {
		return nil, fmt.Errorf("parse proxy url: %w", err)
	}
	client.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	return client, nil
}
