package config

import (
	"fmt"
	"strings"

	"docfixer/internal/shared/util"

	"github.com/gobwas/glob"
)

func Validate(cfg *Config) error {
	if err := validateVersion(cfg); err != nil {
		return err
	}
	if err := validatePlatform(cfg); err != nil {
		return err
	}
	if err := validateNaming(cfg); err != nil {
		return err
	}
	if err := validateFilter(cfg); err != nil {
		return err
	}
	if cfg.Merge.PageCache < 0 {
		return fmt.Errorf("merge.page_cache must not be negative, got %d", cfg.Merge.PageCache)
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", cfg.Watch.Debounce)
	}
	return nil
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validatePlatform(cfg *Config) error {
	if _, ok := Profiles[cfg.Platform.Profile]; !ok {
		return fmt.Errorf("platform.profile must be one of: %s, %s; got %q", ProfileMonoTouch, ProfileMonoMac, cfg.Platform.Profile)
	}
	for i, t := range cfg.Platform.StringConstantTypes {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("platform.string_constant_types[%d] must not be empty", i)
		}
	}
	return nil
}

func validateNaming(cfg *Config) error {
	fields := []struct {
		key   string
		value string
	}{
		{"naming.notification_suffix", cfg.Naming.NotificationSuffix},
		{"naming.observe_prefix", cfg.Naming.ObservePrefix},
		{"naming.companion_suffix", cfg.Naming.CompanionSuffix},
		{"naming.placeholder", cfg.Naming.Placeholder},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s must not be empty", f.key)
		}
	}
	if util.ContainsPathSeparator(cfg.Naming.CompanionSuffix) {
		return fmt.Errorf("naming.companion_suffix must not contain path separators, got %q", cfg.Naming.CompanionSuffix)
	}
	return nil
}

func validateFilter(cfg *Config) error {
	for _, group := range []struct {
		key      string
		patterns []string
	}{
		{"filter.include", cfg.Filter.Include},
		{"filter.exclude", cfg.Filter.Exclude},
	} {
		for i, p := range group.patterns {
			if _, err := glob.Compile(p, '.'); err != nil {
				return fmt.Errorf("%s[%d]: invalid pattern %q: %w", group.key, i, p, err)
			}
		}
	}
	return nil
}
