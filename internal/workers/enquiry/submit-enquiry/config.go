// internal/workers/enquiry/submit-enquiry/config.go
package submitenquiry

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
