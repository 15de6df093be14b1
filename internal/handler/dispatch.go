package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ayuyan/bot/internal/condition"
	"github.com/ayuyan/bot/internal/data"
	"github.com/ayuyan/bot/internal/dice"
	"github.com/ayuyan/bot/internal/loot"
	"github.com/ayuyan/bot/internal/metrics"
	"github.com/ayuyan/bot/internal/random"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnknownCommand indicates a path that names no runnable command.
var ErrUnknownCommand = errors.New("handler: unknown command")

const (
	failureReply = "Something went wrong on my end, sorry! (request %s)"
	ownersReply  = "Only my owners can use that one!"
)

// Dispatcher validates and runs command invocations from any transport.
type Dispatcher struct {
	deps      *Deps
	commands  []*Command
	cooldowns *Cooldowns
	drawers   map[data.Category]loot.Drawer
	generic   *loot.Dispatcher
}

func NewDispatcher(deps *Deps) *Dispatcher {
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	d := &Dispatcher{
		deps:      deps,
		cooldowns: NewCooldowns(deps.Config.Bot.Cooldown),
		drawers:   loot.TableCommands(deps.Tables),
		generic:   loot.NewDispatcher(deps.RNG, deps.Tables, deps.Log),
	}
	d.commands = d.catalogue()
	return d
}

// Commands returns the top-level catalogue.
func (d *Dispatcher) Commands() []*Command {
	return d.commands
}

// Command returns the top-level command with the given name, or nil.
func (d *Dispatcher) Command(name string) *Command {
	for _, c := range d.commands {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Resolve walks path to a runnable command and returns it with its
// space-joined name.
func (d *Dispatcher) Resolve(path []string) (*Command, string, error) {
	if len(path) == 0 {
		return nil, "", ErrUnknownCommand
	}
	cmd := d.Command(path[0])
	for _, name := range path[1:] {
		if cmd == nil {
			break
		}
		cmd = cmd.Sub(name)
	}
	if cmd == nil || cmd.Run == nil {
		return nil, "", fmt.Errorf("%w: %s", ErrUnknownCommand, strings.Join(path, " "))
	}
	return cmd, strings.Join(path, " "), nil
}

// Dispatch runs one invocation and always produces a reply. Failures are
// logged with a request id, which the reply repeats.
func (d *Dispatcher) Dispatch(ctx context.Context, inv Invocation) Reply {
	m := d.deps.Metrics

	cmd, name, err := d.Resolve(inv.Path)
	if err != nil {
		m.CommandsTotal.WithLabelValues("unknown", metrics.OutcomeRejected).Inc()
		return reply(fmt.Sprintf("I don't know %q. Try %shelp.", strings.Join(inv.Path, " "), d.deps.Config.Bot.Prefix))
	}
	if msg := cmd.validate(inv.Args); msg != "" {
		m.CommandsTotal.WithLabelValues(name, metrics.OutcomeRejected).Inc()
		return reply(msg, "Usage: "+cmd.Usage(name))
	}
	if cmd.OwnersOnly && !inv.Owner {
		m.CommandsTotal.WithLabelValues(name, metrics.OutcomeRejected).Inc()
		return reply(ownersReply)
	}
	if wait, ok := d.cooldowns.Allow(inv.Member, name); !ok {
		m.CommandsTotal.WithLabelValues(name, metrics.OutcomeCooldown).Inc()
		return reply(fmt.Sprintf("Slow down! Try again in %.1fs.", wait.Seconds()))
	}

	id := uuid.NewString()
	log := d.deps.Log.With(
		zap.String("request", id),
		zap.String("command", name),
		zap.String("member", inv.Member),
	)
	c := &Context{
		Context:   ctx,
		Deps:      d.deps,
		Log:       log,
		RequestID: id,
		Member:    inv.Member,
		drawers:   d.drawers,
		generic:   d.generic,
	}

	r, err := cmd.Run(c, inv.Args)
	if err != nil {
		d.fail(log, name, err)
		return reply(fmt.Sprintf(failureReply, id))
	}
	m.CommandsTotal.WithLabelValues(name, metrics.OutcomeOK).Inc()
	log.Debug("command handled", zap.Strings("reply", r.Lines))
	return r
}

func (d *Dispatcher) fail(log *zap.Logger, name string, err error) {
	d.deps.Metrics.CommandsTotal.WithLabelValues(name, metrics.OutcomeFailed).Inc()
	if component := invariantComponent(err); component != "" {
		d.deps.Metrics.InvariantViolations.WithLabelValues(component).Inc()
		log.Error("internal invariant violated", zap.String("component", component), zap.Error(err))
		return
	}
	log.Error("command failed", zap.Error(err))
}

// invariantComponent names the component whose invariant err reports.
// Validated arguments never reach these errors, so each one is a bug.
func invariantComponent(err error) string {
	switch {
	case errors.Is(err, random.ErrInvalidRange):
		return "random"
	case errors.Is(err, loot.ErrInvariant),
		errors.Is(err, loot.ErrCapacityExceeded),
		errors.Is(err, loot.ErrInvalidCount):
		return "loot"
	case errors.Is(err, condition.ErrInvariant):
		return "condition"
	case errors.Is(err, dice.ErrInvalidCount),
		errors.Is(err, dice.ErrInvalidSides):
		return "dice"
	}
	return ""
}
