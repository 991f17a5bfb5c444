// internal/workers/advisory/sentiment-alert-scan/config.go
package sentimentalertscan

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 60 * time.Second,
	}
}
