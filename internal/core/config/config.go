package config

import (
	"os"
	"path"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Version       int           `toml:"version"`
	Paths         Paths         `toml:"paths"`
	Platform      Platform      `toml:"platform"`
	Naming        Naming        `toml:"naming"`
	Merge         Merge         `toml:"merge"`
	Filter        Filter        `toml:"filter"`
	Watch         Watch         `toml:"watch"`
	Observability Observability `toml:"observability"`
}

type Paths struct {
	// Locale is the subdirectory of the documentation root holding the
	// per-namespace directories (mdoc uses "en").
	Locale string `toml:"locale"`
}

type Platform struct {
	Profile             string   `toml:"profile"`
	StringConstantTypes []string `toml:"string_constant_types"`
}

type Naming struct {
	NotificationSuffix string `toml:"notification_suffix"`
	ObservePrefix      string `toml:"observe_prefix"`
	CompanionSuffix    string `toml:"companion_suffix"`
	Placeholder        string `toml:"placeholder"`
}

type Merge struct {
	Enabled bool   `toml:"enabled"`
	Debug   bool   `toml:"debug"`
	Corpus  string `toml:"corpus"`

	// PageCache is the number of parsed corpus pages kept in memory.
	PageCache int `toml:"page_cache"`
}

type Filter struct {
	Types   []string `toml:"types"`
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

type Watch struct {
	Enabled  bool          `toml:"enabled"`
	Debounce time.Duration `toml:"debounce"`
}

type Observability struct {
	MetricsFile   string `toml:"metrics_file"`
	EnableTracing bool   `toml:"enable_tracing"`
	OTLPEndpoint  string `toml:"otlp_endpoint"`
}

// Profile describes one binding flavour: the base namespace of the generated
// assembly, the OS named in synthesized prose and where its docset lives.
type Profile struct {
	Namespace string
	OSName    string
	DocSet    string
}

const (
	ProfileMonoTouch = "monotouch"
	ProfileMonoMac   = "monomac"
)

var Profiles = map[string]Profile{
	ProfileMonoTouch: {
		Namespace: "MonoTouch",
		OSName:    "iOS",
		DocSet:    "/Library/Developer/Shared/Documentation/DocSets/com.apple.adc.documentation.AppleiOS5_0.iOSLibrary.docset",
	},
	ProfileMonoMac: {
		Namespace: "MonoMac",
		OSName:    "OS X",
		DocSet:    "/Developer/Documentation/DocSets/com.apple.adc.documentation.AppleSnowLeopard.CoreReference.docset",
	},
}

func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if strings.TrimSpace(cfg.Paths.Locale) == "" {
		cfg.Paths.Locale = "en"
	}
	if strings.TrimSpace(cfg.Platform.Profile) == "" {
		cfg.Platform.Profile = ProfileMonoTouch
	}
	cfg.Platform.Profile = strings.ToLower(strings.TrimSpace(cfg.Platform.Profile))

	if cfg.Naming.NotificationSuffix == "" {
		cfg.Naming.NotificationSuffix = "Notification"
	}
	if cfg.Naming.ObservePrefix == "" {
		cfg.Naming.ObservePrefix = "Observe"
	}
	if cfg.Naming.CompanionSuffix == "" {
		cfg.Naming.CompanionSuffix = "+Notifications"
	}
	if cfg.Naming.Placeholder == "" {
		cfg.Naming.Placeholder = "To be added."
	}

	if cfg.Merge.PageCache == 0 {
		cfg.Merge.PageCache = 64
	}

	// Default debounce if not set.
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
}

// ActiveProfile returns the selected platform profile, falling back to
// MonoTouch for unknown names (Validate rejects those before a run).
func (c *Config) ActiveProfile() Profile {
	if p, ok := Profiles[c.Platform.Profile]; ok {
		return p
	}
	return Profiles[ProfileMonoTouch]
}

// StringConstantTypes lists the return types treated as the platform's
// string-constant type.
func (c *Config) StringConstantTypes() []string {
	if len(c.Platform.StringConstantTypes) > 0 {
		return c.Platform.StringConstantTypes
	}
	return []string{c.ActiveProfile().Namespace + ".Foundation.NSString"}
}

// CorpusRoot is the docset documentation directory mined in merge mode.
func (c *Config) CorpusRoot() string {
	if strings.TrimSpace(c.Merge.Corpus) != "" {
		return c.Merge.Corpus
	}
	return path.Join(c.ActiveProfile().DocSet, "Contents/Resources/Documents/documentation")
}
