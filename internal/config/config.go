package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Bot       BotConfig       `toml:"bot"`
	Discord   DiscordConfig   `toml:"discord"`
	Console   ConsoleConfig   `toml:"console"`
	Random    RandomConfig    `toml:"random"`
	Data      DataConfig      `toml:"data"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

type BotConfig struct {
	Name     string        `toml:"name"`
	Prefix   string        `toml:"prefix"`   // console command prefix
	Cooldown time.Duration `toml:"cooldown"` // per member, per command
}

type DiscordConfig struct {
	Enabled       bool     `toml:"enabled"`
	Token         string   `toml:"token"`
	ApplicationID string   `toml:"application_id"`
	GuildID       string   `toml:"guild_id"` // empty = global commands
	Owners        []string `toml:"owners"`   // user IDs allowed owner-only commands
}

type ConsoleConfig struct {
	Enabled           bool          `toml:"enabled"`
	BindAddress       string        `toml:"bind_address"`
	OutQueueSize      int           `toml:"out_queue_size"`
	MaxLineLength     int           `toml:"max_line_length"`
	LinesPerSecond    int           `toml:"lines_per_second"` // 0 = unlimited
	ReadTimeout       time.Duration `toml:"read_timeout"`
	WriteTimeout      time.Duration `toml:"write_timeout"`
	OwnerPasswordHash string        `toml:"owner_password_hash"` // bcrypt; empty disables .login
}

type RandomConfig struct {
	Seed uint64 `toml:"seed"` // 0 = seed from crypto/rand
}

type DataConfig struct {
	TablesPath string `toml:"tables_path"` // empty = embedded tables
}

type ScriptingConfig struct {
	Dir string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	BindAddress string `toml:"bind_address"`
}

// secrets are the settings that may come from the environment instead of
// the config file, e.g. AYUYAN_DISCORD_TOKEN.
type secrets struct {
	DiscordToken      string `envconfig:"DISCORD_TOKEN"`
	ApplicationID     string `envconfig:"APPLICATION_ID"`
	GuildID           string `envconfig:"GUILD_ID"`
	OwnerPasswordHash string `envconfig:"OWNER_PASSWORD_HASH"`
	Seed              uint64 `envconfig:"SEED"`
}

const envPrefix = "AYUYAN"

// Load reads the TOML file at path over the defaults, then applies
// environment overrides. A missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv loads an optional .env file and overrides secrets from
// AYUYAN_* variables.
func applyEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	var s secrets
	if err := envconfig.Process(envPrefix, &s); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	if s.DiscordToken != "" {
		cfg.Discord.Token = s.DiscordToken
	}
	if s.ApplicationID != "" {
		cfg.Discord.ApplicationID = s.ApplicationID
	}
	if s.GuildID != "" {
		cfg.Discord.GuildID = s.GuildID
	}
	if s.OwnerPasswordHash != "" {
		cfg.Console.OwnerPasswordHash = s.OwnerPasswordHash
	}
	if s.Seed != 0 {
		cfg.Random.Seed = s.Seed
	}
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Bot: BotConfig{
			Name:     "Ayuyan",
			Prefix:   ".",
			Cooldown: 2 * time.Second,
		},
		Console: ConsoleConfig{
			Enabled:        true,
			BindAddress:    "127.0.0.1:7020",
			OutQueueSize:   64,
			MaxLineLength:  512,
			LinesPerSecond: 10,
			ReadTimeout:    5 * time.Minute,
			WriteTimeout:   10 * time.Second,
		},
		Scripting: ScriptingConfig{
			Dir: "scripts/presets",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			BindAddress: "127.0.0.1:9120",
		},
	}
}
