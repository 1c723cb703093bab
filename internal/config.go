/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Config holds the settings for the archive backends and logging.
type Config struct {
	S3Bucket          string
	S3Prefix          string
	S3Gzip            bool
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	HTTPBaseURL string
	CacheTTL    time.Duration

	LogLevel log.Level
}

// LoadConfig reads configuration from environment variables, after loading
// any of envFiles (".env" if none are given) that exist. Variables already
// set in the environment win over the files.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Debug("config: no .env file loaded, reading from environment variables",
			"error", err)
	}

	getEnv := func(key string, defaultValue string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return defaultValue
	}

	cfg := Config{
		S3Bucket:          getEnv("TOURNEY_S3_BUCKET", ""),
		S3Prefix:          getEnv("TOURNEY_S3_PREFIX", DefaultS3Prefix),
		S3Endpoint:        getEnv("TOURNEY_S3_ENDPOINT", ""),
		S3AccessKeyID:     getEnv("TOURNEY_S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("TOURNEY_S3_SECRET_ACCESS_KEY", ""),
		HTTPBaseURL:       getEnv("TOURNEY_HTTP_BASE_URL", ""),
	}

	var err error
	cfg.S3Gzip, err = strconv.ParseBool(getEnv("TOURNEY_S3_GZIP", "false"))
	if err != nil {
		return cfg, fmt.Errorf("config: invalid TOURNEY_S3_GZIP: %w", err)
	}
	cfg.CacheTTL, err = time.ParseDuration(getEnv("TOURNEY_CACHE_TTL",
		DefaultCacheTTL))
	if err != nil {
		return cfg, fmt.Errorf("config: invalid TOURNEY_CACHE_TTL: %w", err)
	}
	if cfg.CacheTTL < 0 {
		return cfg, fmt.Errorf("config: negative TOURNEY_CACHE_TTL %v", cfg.CacheTTL)
	}
	cfg.LogLevel, err = log.ParseLevel(getEnv("TOURNEY_LOG_LEVEL", "info"))
	if err != nil {
		return cfg, fmt.Errorf("config: invalid TOURNEY_LOG_LEVEL: %w", err)
	}
	if cfg.S3AccessKeyID != "" && cfg.S3SecretAccessKey == "" {
		return cfg, fmt.Errorf("config: TOURNEY_S3_ACCESS_KEY_ID requires TOURNEY_S3_SECRET_ACCESS_KEY")
	}

	return cfg, nil
}
