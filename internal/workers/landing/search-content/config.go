// internal/workers/landing/search-content/config.go
package searchcontent

import "time"

type Config struct {
	Timeout      time.Duration
	DefaultLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      5 * time.Second,
		DefaultLimit: 20,
	}
}
