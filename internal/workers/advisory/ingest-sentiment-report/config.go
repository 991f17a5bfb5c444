// internal/workers/advisory/ingest-sentiment-report/config.go
package ingestsentimentreport

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
