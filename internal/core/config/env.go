package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: DOCFIXER_[SECTION]_[KEY] (e.g., DOCFIXER_MERGE_ENABLED).
//
// DEBUG is honoured as well: when set to a type's full name it restricts the
// run to that single type.
func ApplyEnvOverrides(cfg *Config) {
	// Paths
	setEnvString(&cfg.Paths.Locale, "DOCFIXER_PATHS_LOCALE")

	// Platform
	setEnvString(&cfg.Platform.Profile, "DOCFIXER_PLATFORM_PROFILE")
	cfg.Platform.Profile = strings.ToLower(strings.TrimSpace(cfg.Platform.Profile))

	// Merge
	setEnvBool(&cfg.Merge.Enabled, "DOCFIXER_MERGE_ENABLED")
	setEnvBool(&cfg.Merge.Debug, "DOCFIXER_MERGE_DEBUG")
	setEnvString(&cfg.Merge.Corpus, "DOCFIXER_MERGE_CORPUS")
	setEnvInt(&cfg.Merge.PageCache, "DOCFIXER_MERGE_PAGE_CACHE")

	// Watch
	setEnvBool(&cfg.Watch.Enabled, "DOCFIXER_WATCH_ENABLED")
	setEnvDuration(&cfg.Watch.Debounce, "DOCFIXER_WATCH_DEBOUNCE")

	// Observability
	setEnvString(&cfg.Observability.MetricsFile, "DOCFIXER_OBSERVABILITY_METRICS_FILE")
	setEnvBool(&cfg.Observability.EnableTracing, "DOCFIXER_OBSERVABILITY_ENABLE_TRACING")
	setEnvString(&cfg.Observability.OTLPEndpoint, "DOCFIXER_OBSERVABILITY_OTLP_ENDPOINT")

	if val, ok := os.LookupEnv("DEBUG"); ok && strings.TrimSpace(val) != "" {
		slog.Debug("restricting run to a single type", "type", val)
		cfg.Filter.Types = []string{strings.TrimSpace(val)}
	}
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = n
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
