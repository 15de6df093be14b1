package handler

import (
	"fmt"

	"github.com/ayuyan/bot/internal/condition"
	"github.com/ayuyan/bot/internal/data"
	"github.com/ayuyan/bot/internal/loot"
	"github.com/ayuyan/bot/internal/render"
	"go.uber.org/zap"
)

const (
	maxTableCount    = 10
	maxMaterialCount = 20
	maxGenericCount  = 20
	maxCoinLimit     = 1000
	maxConditionRank = 100
)

func countOption(max int) Option {
	return Option{
		Name:        "count",
		Description: "Maximum amount of rolls.",
		Kind:        OptionInt,
		Min:         1,
		Max:         max,
	}
}

func (d *Dispatcher) fetchCommand() *Command {
	fetch := &Command{
		Name:        "fetch",
		Description: "Fetch randomized loot, coins and roll conditions.",
	}
	tables := []struct {
		category    data.Category
		description string
		max         int
	}{
		{data.CategoryArmour, "Grab Armour(s) from a table.", maxTableCount},
		{data.CategoryWeapon, "Grab Weapon(s) from a table.", maxTableCount},
		{data.CategoryElixir, "Grab Elixir(s) from a table.", maxTableCount},
		{data.CategoryTincture, "Grab Tincture(s) from a table.", maxTableCount},
		{data.CategoryMaterialArmour, "Grab Armour(s) with their material from a table.", maxMaterialCount},
		{data.CategoryMaterialWeapon, "Grab Weapon(s) with their material from a table.", maxMaterialCount},
	}
	for _, t := range tables {
		fetch.Subcommands = append(fetch.Subcommands, &Command{
			Name:        t.category.String(),
			Description: t.description,
			Options:     []Option{countOption(t.max)},
			Run:         runTable(t.category),
		})
	}

	fetch.Subcommands = append(fetch.Subcommands,
		&Command{
			Name:        "generic",
			Description: "Grab randomized loot from any table.",
			Options:     []Option{countOption(maxGenericCount)},
			Run:         runGeneric,
		},
		&Command{
			Name:        "coin",
			Description: "Grab a randomized amount of coins.",
			Options: []Option{{
				Name:        "limit",
				Description: "Maximum amount of coins.",
				Kind:        OptionInt,
				Min:         1,
				Max:         maxCoinLimit,
			}},
			Run: runCoin,
		},
		&Command{
			Name:        "condition",
			Description: "Grab randomized conditions for a successful dice roll.",
			OwnersOnly:  true,
			Options: []Option{
				{Name: "threshold", Description: "If a Threshold should be required. Default is True.", Kind: OptionBool},
				{Name: "parity", Description: "If a Parity should be required. Default is False.", Kind: OptionBool},
				{Name: "floor", Description: "Limits lower Threshold amount for result. Default is 0.", Kind: OptionInt, Min: 0, Max: maxConditionRank},
				{Name: "ceiling", Description: "Limits upper Threshold amount for result. Default is 20.", Kind: OptionInt, Min: 0, Max: maxConditionRank},
			},
			Run: runCondition,
		},
	)
	return fetch
}

func runTable(c data.Category) RunFunc {
	return func(ctx *Context, args Args) (Reply, error) {
		drawer, ok := ctx.drawers[c]
		if !ok {
			return Reply{}, fmt.Errorf("%w: no drawer for %s", loot.ErrInvariant, c)
		}
		text, n, err := drawer.DrawText(ctx.Deps.RNG, args.Int("count"))
		if err != nil {
			return Reply{}, err
		}
		ctx.Deps.Metrics.LootDrawn.WithLabelValues(c.String()).Add(float64(n))
		return reply(text), nil
	}
}

func runGeneric(ctx *Context, args Args) (Reply, error) {
	frags, err := ctx.generic.DrawGeneric(args.Int("count"))
	if err != nil {
		return Reply{}, err
	}
	for _, f := range frags {
		ctx.Deps.Metrics.LootDrawn.WithLabelValues(f.Category.String()).Inc()
	}
	return reply(render.Fragments(loot.Labels(frags))), nil
}

func runCoin(ctx *Context, args Args) (Reply, error) {
	n, err := loot.Coins(ctx.Deps.RNG, args.Int("limit"))
	if err != nil {
		return Reply{}, err
	}
	return reply(fmt.Sprintf("You found %s coins!", render.Boldf("%d", n))), nil
}

func runCondition(ctx *Context, args Args) (Reply, error) {
	out, err := condition.Generate(ctx.Deps.RNG, condition.Request{
		Threshold: args.Bool("threshold"),
		Parity:    args.Bool("parity"),
		Floor:     args.Int("floor"),
		Ceiling:   args.Int("ceiling"),
	})
	if err != nil {
		return Reply{}, err
	}
	if len(out.Warnings) > 0 {
		ctx.Log.Debug("condition range corrected",
			zap.Int("floor", out.Floor),
			zap.Int("ceiling", out.Ceiling),
		)
	}
	return Reply{Lines: out.Lines()}, nil
}
