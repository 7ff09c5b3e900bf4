package main

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/ragquery/internal/config"
)

func newTestFlags(t *testing.T) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("ragquery", pflag.ContinueOnError)
	flags.String("endpoint", "", "")
	flags.Int("top-k", 0, "")
	flags.Bool("remote", false, "")
	flags.Int("timeout", 0, "")
	return flags
}

func TestResolveSettingsFlagsBeatConfigFile(t *testing.T) {
	flags := newTestFlags(t)
	require.NoError(t, flags.Parse([]string{"--endpoint", "http://flag.test:9000", "--top-k", "3"}))

	settings := config.Settings{
		Endpoint:       "http://file.test:8000",
		TopK:           9,
		RemoteBackend:  true,
		TimeoutSeconds: 30,
	}

	r := resolveSettings(flags, settings)
	assert.Equal(t, "http://flag.test:9000", r.endpoint)
	assert.Equal(t, 3, r.depth)
	assert.True(t, r.remote, "file value should survive for flags left unset")
	assert.Equal(t, 30*time.Second, r.timeout)
}

func TestResolveSettingsFileWinsWithoutFlags(t *testing.T) {
	flags := newTestFlags(t)
	require.NoError(t, flags.Parse(nil))

	settings := config.Settings{
		Endpoint:       "http://file.test:8000",
		TopK:           7,
		TimeoutSeconds: 45,
	}

	r := resolveSettings(flags, settings)
	assert.Equal(t, "http://file.test:8000", r.endpoint)
	assert.Equal(t, 7, r.depth)
	assert.False(t, r.remote)
	assert.Equal(t, 45*time.Second, r.timeout)
}

func TestResolveSettingsExplicitFlagOverridesFileToFalse(t *testing.T) {
	flags := newTestFlags(t)
	require.NoError(t, flags.Parse([]string{"--remote=false", "--timeout", "10"}))

	settings := config.Settings{RemoteBackend: true, TimeoutSeconds: 30}

	r := resolveSettings(flags, settings)
	assert.False(t, r.remote, "an explicit --remote=false must beat the file")
	assert.Equal(t, 10*time.Second, r.timeout)
}

func TestResolveSettingsZeroConfigLeavesDefaults(t *testing.T) {
	flags := newTestFlags(t)
	require.NoError(t, flags.Parse(nil))

	r := resolveSettings(flags, config.Settings{})
	assert.Empty(t, r.endpoint, "empty endpoint falls through to env/default in api.New")
	assert.Zero(t, r.depth)
	assert.Zero(t, r.timeout)
}
