// Package config loads the kvsession CLI configuration.
//
// Values come from, in increasing priority: built-in defaults, an optional
// YAML file, and KVSESSION_* environment variables. Command-line flags are
// applied by the caller on top of the result.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable the loader reads.
const EnvPrefix = "KVSESSION_"

// Config is the resolved configuration.
type Config struct {
	Redis    RedisConfig   `mapstructure:"redis"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
	LogLevel string        `mapstructure:"log_level"`
	Listen   string        `mapstructure:"listen"`

	// EncryptionKey enables sealed records when set (base64, 32 bytes decoded).
	EncryptionKey string `mapstructure:"encryption_key"`
	// FallbackKeys are older keys still accepted for reading (base64).
	FallbackKeys []string `mapstructure:"fallback_keys"`
}

// RedisConfig describes the Redis node the CLI connects to.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func defaults() map[string]any {
	return map[string]any{
		"redis": map[string]any{
			"addr":     "localhost:6379",
			"password": "",
			"db":       0,
		},
		"prefix":    "sess:",
		"ttl":       "24h",
		"log_level": "info",
		"listen":    ":8080",
	}
}

// envKeys maps environment variable suffixes to config paths.
var envKeys = map[string][]string{
	"REDIS_ADDR":     {"redis", "addr"},
	"REDIS_PASSWORD": {"redis", "password"},
	"REDIS_DB":       {"redis", "db"},
	"PREFIX":         {"prefix"},
	"TTL":            {"ttl"},
	"LOG_LEVEL":      {"log_level"},
	"LISTEN":         {"listen"},
	"ENCRYPTION_KEY": {"encryption_key"},
	"FALLBACK_KEYS":  {"fallback_keys"},
}

// Load resolves the configuration. path may be empty; a non-empty path must exist.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an injectable environment lookup.
func LoadWithEnv(path string, lookup func(string) (string, bool)) (Config, error) {
	raw := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}

		var file map[string]any
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
		merge(raw, file)
	}

	for suffix, path := range envKeys {
		val, ok := lookup(EnvPrefix + suffix)
		if !ok {
			continue
		}
		if suffix == "FALLBACK_KEYS" {
			setPath(raw, path, strings.Split(val, ","))
			continue
		}
		setPath(raw, path, val)
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that decode fine but make no sense.
func (c Config) Validate() error {
	if c.TTL < 0 {
		return fmt.Errorf("invalid config: ttl must not be negative, got %s", c.TTL)
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("invalid config: redis.addr is required")
	}
	if _, _, err := c.Keys(); err != nil {
		return err
	}
	return nil
}

// Keys decodes the encryption keys. active is nil when encryption is disabled.
func (c Config) Keys() (active []byte, fallbacks [][]byte, err error) {
	if c.EncryptionKey == "" {
		return nil, nil, nil
	}

	active, err = decodeKey(c.EncryptionKey)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid config: encryption_key: %w", err)
	}

	for i, k := range c.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid config: fallback_keys[%d]: %w", i, err)
		}
		fallbacks = append(fallbacks, key)
	}
	return active, fallbacks, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}

// merge copies src into dst, descending into nested maps.
func merge(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				merge(existing, sub)
				continue
			}
		}
		dst[k] = v
	}
}

func setPath(m map[string]any, path []string, val any) {
	for _, p := range path[:len(path)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[p] = next
		}
		m = next
	}
	m[path[len(path)-1]] = val
}
