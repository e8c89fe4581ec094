package recording

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
)

// Config holds HTTP recording settings read from the environment.
type Config struct {
	// CI is set by most CI systems. Any non-empty value disables recording.
	CI string `env:"CI"`

	// Record overrides the computed default mode outside CI.
	Record Mode `env:"VCR_RECORD"`

	CassetteDir     string `env:"VCR_CASSETTE_DIR" envDefault:"testdata/cassettes"`
	IgnoreLocalhost bool   `env:"VCR_IGNORE_LOCALHOST" envDefault:"true"`

	// AllowUnusedInteractions lets a cassette hold interactions a test never
	// replays. Off by default so stale cassettes fail.
	AllowUnusedInteractions bool `env:"VCR_ALLOW_UNUSED_INTERACTIONS" envDefault:"false"`

	// Secrets names environment variables whose values are scrubbed from
	// recorded interactions.
	Secrets []string `env:"VCR_SECRETS" envSeparator:"," envDefault:"AWS_ACCESS_KEY_ID,AWS_SECRET_ACCESS_KEY,GOOGLE_CLIENT_ID,GOOGLE_CLIENT_SECRET,RADIUS_OAUTH_PROVIDER_APP_ID,RADIUS_OAUTH_PROVIDER_APP_SECRET,RADIUS_OAUTH_PROVIDER_URL"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse recording config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recording config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.CassetteDir == "" {
		return fmt.Errorf("VCR_CASSETTE_DIR is required")
	}

	if c.Record != "" && !c.Record.Valid() {
		return fmt.Errorf("VCR_RECORD must be one of: %s", strings.Join(modeNames(), ", "))
	}

	for _, name := range c.Secrets {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("VCR_SECRETS must not contain empty names")
		}
	}

	return nil
}

// InCI reports whether the CI variable is set.
func (c *Config) InCI() bool {
	return c.CI != ""
}

// DefaultMode returns the record mode for cassettes that don't set one.
//
// CI never records. Otherwise VCR_RECORD wins when set, and a run focused on
// a single test records new cassettes once. Everything else blocks new
// requests so unexpected traffic fails loudly.
func (c *Config) DefaultMode(focused bool) Mode {
	switch {
	case c.InCI():
		return ModeNone
	case c.Record != "":
		return c.Record
	case focused:
		return ModeOnce
	default:
		return ModeNone
	}
}

// Scrubber returns a Scrubber for the configured secrets, reading their
// values from the environment.
func (c *Config) Scrubber() *Scrubber {
	return NewScrubber(c.Secrets, nil)
}

// String returns a representation of the config without secret values.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{CI=%t, Record=%s, CassetteDir=%s, IgnoreLocalhost=%v, AllowUnusedInteractions=%v, Secrets=%d}",
		c.InCI(),
		c.Record,
		c.CassetteDir,
		c.IgnoreLocalhost,
		c.AllowUnusedInteractions,
		len(c.Secrets),
	)
}
