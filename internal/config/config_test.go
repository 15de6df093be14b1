package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ayuyan.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "Ayuyan", cfg.Bot.Name)
	assert.Equal(t, ".", cfg.Bot.Prefix)
	assert.Equal(t, 2*time.Second, cfg.Bot.Cooldown)
	assert.True(t, cfg.Console.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Discord.Enabled)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[bot]
cooldown = "5s"

[discord]
enabled = true
owners = ["1234"]

[console]
bind_address = "0.0.0.0:9000"
lines_per_second = 0

[random]
seed = 77

[logging]
format = "json"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Bot.Cooldown)
	assert.Equal(t, "Ayuyan", cfg.Bot.Name, "unset keys keep defaults")
	assert.True(t, cfg.Discord.Enabled)
	assert.Equal(t, []string{"1234"}, cfg.Discord.Owners)
	assert.Equal(t, "0.0.0.0:9000", cfg.Console.BindAddress)
	assert.Equal(t, 0, cfg.Console.LinesPerSecond)
	assert.Equal(t, uint64(77), cfg.Random.Seed)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadRejectsBadToml(t *testing.T) {
	_, err := Load(writeConfig(t, "[bot\nname ="))
	assert.Error(t, err)
}

func TestEnvironmentOverridesSecrets(t *testing.T) {
	t.Setenv("AYUYAN_DISCORD_TOKEN", "env-token")
	t.Setenv("AYUYAN_GUILD_ID", "42")
	t.Setenv("AYUYAN_SEED", "9")

	cfg, err := Load(writeConfig(t, `
[discord]
token = "file-token"
application_id = "app"
`))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Discord.Token)
	assert.Equal(t, "app", cfg.Discord.ApplicationID)
	assert.Equal(t, "42", cfg.Discord.GuildID)
	assert.Equal(t, uint64(9), cfg.Random.Seed)
}
