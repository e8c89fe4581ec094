package recording

import (
	"testing"

	"github.com/caarlos0/env/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the variables Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"CI", "VCR_RECORD", "VCR_CASSETTE_DIR", "VCR_IGNORE_LOCALHOST",
		"VCR_ALLOW_UNUSED_INTERACTIONS", "VCR_SECRETS",
	} {
		t.Setenv(name, "")
	}
}

// parseWithoutEnv applies only the struct defaults.
func parseWithoutEnv(cfg *Config) error {
	return env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{}})
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("VCR_CASSETTE_DIR", "testdata/cassettes")
	t.Setenv("VCR_IGNORE_LOCALHOST", "true")
	t.Setenv("VCR_ALLOW_UNUSED_INTERACTIONS", "false")
	t.Setenv("VCR_SECRETS", "AWS_ACCESS_KEY_ID,GOOGLE_CLIENT_SECRET")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.InCI())
	assert.Equal(t, "testdata/cassettes", cfg.CassetteDir)
	assert.True(t, cfg.IgnoreLocalhost)
	assert.False(t, cfg.AllowUnusedInteractions)
	assert.Equal(t, []string{"AWS_ACCESS_KEY_ID", "GOOGLE_CLIENT_SECRET"}, cfg.Secrets)
}

func TestLoadBuiltInDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, parseWithoutEnv(cfg))

	assert.Equal(t, "testdata/cassettes", cfg.CassetteDir)
	assert.True(t, cfg.IgnoreLocalhost)
	assert.Equal(t, []string{
		"AWS_ACCESS_KEY_ID",
		"AWS_SECRET_ACCESS_KEY",
		"GOOGLE_CLIENT_ID",
		"GOOGLE_CLIENT_SECRET",
		"RADIUS_OAUTH_PROVIDER_APP_ID",
		"RADIUS_OAUTH_PROVIDER_APP_SECRET",
		"RADIUS_OAUTH_PROVIDER_URL",
	}, cfg.Secrets)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CI", "true")
	t.Setenv("VCR_RECORD", "new_episodes")
	t.Setenv("VCR_CASSETTE_DIR", "fixtures/http")
	t.Setenv("VCR_IGNORE_LOCALHOST", "false")
	t.Setenv("VCR_SECRETS", "API_TOKEN")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.InCI())
	assert.Equal(t, ModeNewEpisodes, cfg.Record)
	assert.Equal(t, "fixtures/http", cfg.CassetteDir)
	assert.False(t, cfg.IgnoreLocalhost)
	assert.Equal(t, []string{"API_TOKEN"}, cfg.Secrets)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "bad mode",
			env:     map[string]string{"VCR_RECORD": "sometimes"},
			wantErr: "VCR_RECORD must be one of: none, once, new_episodes, all",
		},
		{
			name:    "bad bool",
			env:     map[string]string{"VCR_IGNORE_LOCALHOST": "maybe"},
			wantErr: "failed to parse recording config",
		},
		{
			name:    "empty secret name",
			env:     map[string]string{"VCR_SECRETS": "A,,B"},
			wantErr: "VCR_SECRETS must not contain empty names",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("VCR_CASSETTE_DIR", "testdata/cassettes")
			t.Setenv("VCR_IGNORE_LOCALHOST", "true")
			t.Setenv("VCR_ALLOW_UNUSED_INTERACTIONS", "false")
			t.Setenv("VCR_SECRETS", "A")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.EqualError(t, cfg.Validate(), "VCR_CASSETTE_DIR is required")

	cfg.CassetteDir = "x"
	assert.NoError(t, cfg.Validate())
}

func TestDefaultMode(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		focused bool
		want    Mode
	}{
		{name: "ci", cfg: Config{CI: "1"}, focused: true, want: ModeNone},
		{name: "ci ignores override", cfg: Config{CI: "1", Record: ModeAll}, want: ModeNone},
		{name: "override", cfg: Config{Record: ModeAll}, want: ModeAll},
		{name: "single focused test", focused: true, want: ModeOnce},
		{name: "full run", want: ModeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DefaultMode(tt.focused))
		})
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{CassetteDir: "c", Secrets: []string{"A", "B"}}
	assert.Equal(t,
		"Config{CI=false, Record=, CassetteDir=c, IgnoreLocalhost=false, AllowUnusedInteractions=false, Secrets=2}",
		cfg.String())
}
