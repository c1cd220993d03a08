package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Sources SourcesConfig
	Weather WeatherConfig
	Cache   CacheConfig
	Enrich  EnrichConfig
	API     APIConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type SourcesConfig struct {
	BMKGLatestURL string
	BMKGFeltURL   string
	EONETURL      string
	USGSURL       string
	FetchTimeout  time.Duration
	FillerEnabled bool
}

type WeatherConfig struct {
	URL     string
	Timeout time.Duration
}

type CacheConfig struct {
	TTL time.Duration
}

type EnrichConfig struct {
	Workers int
}

type APIConfig struct {
	RateLimitRPS int
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Sources: SourcesConfig{
			BMKGLatestURL: getEnv("BMKG_LATEST_URL", "https://data.bmkg.go.id/DataMKG/TEWS/gempaterkini.json"),
			BMKGFeltURL:   getEnv("BMKG_FELT_URL", "https://data.bmkg.go.id/DataMKG/TEWS/gempadirasakan.json"),
			EONETURL:      getEnv("EONET_URL", "https://eonet.gsfc.nasa.gov/api/v3/events"),
			USGSURL:       getEnv("USGS_URL", "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/significant_month.geojson"),
			FetchTimeout:  getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
			FillerEnabled: getEnvBool("FILLER_ENABLED", true),
		},
		Weather: WeatherConfig{
			URL:     getEnv("WEATHER_URL", "https://api.open-meteo.com/v1/forecast"),
			Timeout: getEnvDuration("WEATHER_TIMEOUT", 10*time.Second),
		},
		Cache: CacheConfig{
			TTL: getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Enrich: EnrichConfig{
			Workers: getEnvInt("ENRICH_WORKERS", 8),
		},
		API: APIConfig{
			RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 5),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Sources.FetchTimeout < time.Second {
		return fmt.Errorf("fetch timeout must be at least 1 second")
	}
	if c.Cache.TTL < time.Minute {
		return fmt.Errorf("cache TTL must be at least 1 minute")
	}
	if c.Enrich.Workers < 1 {
		return fmt.Errorf("enrich worker count must be positive")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
