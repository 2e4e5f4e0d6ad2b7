package config

import (
	"testing"

	"github.com/datarhei/gpoint"
	"github.com/datarhei/gpoint/config/vars"

	"github.com/stretchr/testify/require"
)

func collectErrors(cfg *Config) []string {
	errors := []string{}

	cfg.Messages(func(level string, v vars.Variable, message string) {
		if level == "error" {
			errors = append(errors, v.Name+": "+message)
		}
	})

	return errors
}

func TestConfigDefaults(t *testing.T) {
	cfg := New()

	require.Equal(t, "%g", cfg.Directive)
	require.Equal(t, 64, cfg.Bits)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Format)
	require.Equal(t, false, cfg.Compare)

	cfg.Validate(true)
	require.False(t, cfg.HasErrors(), collectErrors(cfg))

	spec, err := cfg.Spec()
	require.NoError(t, err)
	require.Equal(t, gpoint.Spec{}, spec)
}

func TestConfigMerge(t *testing.T) {
	t.Setenv("GPOINT_DIRECTIVE", "%-10.3G")
	t.Setenv("GPOINT_BITS", "32")
	t.Setenv("GPOINT_LOG_LEVEL", "debug")
	t.Setenv("GPOINT_LOG_FORMAT", "json")
	t.Setenv("GPOINT_COMPARE", "true")

	cfg := New()
	cfg.Merge()

	require.Equal(t, "%-10.3G", cfg.Directive)
	require.Equal(t, 32, cfg.Bits)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, true, cfg.Compare)
	require.ElementsMatch(t, []string{"directive", "bits", "log.level", "log.format", "compare"}, cfg.Overrides())

	cfg.Validate(true)
	require.False(t, cfg.HasErrors(), collectErrors(cfg))

	spec, err := cfg.Spec()
	require.NoError(t, err)
	require.Equal(t, gpoint.Spec{Minus: true, Width: 10, Precision: 3, HasPrecision: true, Upper: true}, spec)
}

func TestConfigValidate(t *testing.T) {
	cfg := New()

	require.NoError(t, cfg.Set("bits", "16"))
	require.NoError(t, cfg.Set("log.level", "verbose"))
	require.NoError(t, cfg.Set("log.format", "xml"))
	require.NoError(t, cfg.Set("directive", "%f"))

	cfg.Validate(true)
	require.True(t, cfg.HasErrors())

	errors := collectErrors(cfg)
	require.Len(t, errors, 4)
	require.Contains(t, errors, "log.format: must be oneof console json")
	require.Contains(t, errors, "bits: must be oneof 32 64")
	require.Contains(t, errors, "log.level: must be oneof silent error warn info debug")

	require.Error(t, cfg.Set("precision", "3"))
}

func TestConfigMergeErrors(t *testing.T) {
	t.Setenv("GPOINT_BITS", "abc")

	cfg := New()
	cfg.Merge()

	require.Equal(t, 64, cfg.Bits)

	cfg.Validate(false)
	require.True(t, cfg.HasErrors())
	require.Len(t, collectErrors(cfg), 1)

	cfg.Validate(true)
	require.False(t, cfg.HasErrors())
}
