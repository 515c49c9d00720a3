// internal/workers/landing/resolve-keyword-page/config.go
package resolvekeywordpage

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
