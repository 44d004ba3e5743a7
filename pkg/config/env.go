// Package config provides small helpers for reading typed values from the
// environment. Invalid values fall back to the default and log a warning.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// parseEnv reads key with parse. Unset or empty keys and values parse
// rejects yield def.
func parseEnv[T any](key string, def T, kind string, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		slog.Warn("invalid "+kind+" value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("default", def),
			slog.String("error", err.Error()))
		return def
	}
	return v
}

// GetEnvString returns the value of key, or defaultValue if it is unset or empty.
func GetEnvString(key, defaultValue string) string {
	return parseEnv(key, defaultValue, "string", func(s string) (string, error) { return s, nil })
}

// GetEnvInt returns key parsed as a base-10 integer.
//
// Example:
//
//	count := GetEnvInt("NEWS_COUNT_ON_HOME_PAGE", 10)
func GetEnvInt(key string, defaultValue int) int {
	return parseEnv(key, defaultValue, "integer", func(s string) (int, error) {
		return strconv.Atoi(strings.TrimSpace(s))
	})
}

// GetEnvBool returns key parsed with strconv.ParseBool.
func GetEnvBool(key string, defaultValue bool) bool {
	return parseEnv(key, defaultValue, "boolean", strconv.ParseBool)
}

// GetEnvDuration returns key parsed with time.ParseDuration ("30s", "12h").
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return parseEnv(key, defaultValue, "duration", time.ParseDuration)
}

// GetEnvStringList splits key on commas, trimming whitespace and dropping
// empty items. An empty result falls back to defaultValue.
//
// Example:
//
//	words := GetEnvStringList("BANNED_WORDS", []string{"редиска"})
//	// BANNED_WORDS="редиска, негодяй" -> ["редиска", "негодяй"]
func GetEnvStringList(key string, defaultValue []string) []string {
	items := parseEnv(key, []string(nil), "list", func(s string) ([]string, error) {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out, nil
	})
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
