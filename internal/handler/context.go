package handler

import (
	"context"

	"github.com/ayuyan/bot/internal/config"
	"github.com/ayuyan/bot/internal/data"
	"github.com/ayuyan/bot/internal/dice"
	"github.com/ayuyan/bot/internal/loot"
	"github.com/ayuyan/bot/internal/metrics"
	"github.com/ayuyan/bot/internal/random"
	"go.uber.org/zap"
)

// PresetSource resolves named roll presets.
type PresetSource interface {
	Preset(name string) (dice.RollRequest, error)
	PresetNames() []string
}

// Deps holds shared dependencies injected into all command handlers.
type Deps struct {
	Config  *config.Config
	Log     *zap.Logger
	RNG     random.Sampler
	Tables  *data.Registry
	Presets PresetSource // nil disables the preset command
	Metrics *metrics.Metrics
}

// Invocation is one command request from a transport.
type Invocation struct {
	Path   []string // e.g. ["fetch", "armour"]
	Args   Args
	Member string // transport-scoped caller identity, used for cooldowns
	Owner  bool
}

// Reply is the text sent back to the caller, one message per line.
type Reply struct {
	Lines []string
}

func reply(lines ...string) Reply {
	return Reply{Lines: lines}
}

// Context is passed to a running command.
type Context struct {
	context.Context
	Deps      *Deps
	Log       *zap.Logger
	RequestID string
	Member    string

	drawers map[data.Category]loot.Drawer
	generic *loot.Dispatcher
}
