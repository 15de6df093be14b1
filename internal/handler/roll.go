package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ayuyan/bot/internal/dice"
	"github.com/ayuyan/bot/internal/scripting"
)

const (
	maxRollCount = 100
	maxRollSides = 200
	maxModifier  = 100
)

func rollCommand() *Command {
	return &Command{
		Name:        "roll",
		Description: "Simple command to roll a die.",
		Options: []Option{
			{Name: "count", Description: "Times die will be rolled.", Kind: OptionInt, Min: 1, Max: maxRollCount},
			{Name: "sides", Description: "Number of sides on die.", Kind: OptionInt, Min: 1, Max: maxRollSides},
			{Name: "sum", Description: "Specify if rolls should be summed up.", Kind: OptionBool},
			{Name: "modifier", Description: "Modifier to be applied to rolls.", Kind: OptionInt, Min: -maxModifier, Max: maxModifier},
		},
		Run: runRoll,
	}
}

func runRoll(ctx *Context, args Args) (Reply, error) {
	return roll(ctx, dice.RollRequest{
		Count:    args.Int("count"),
		Sides:    args.Int("sides"),
		Modifier: args.Int("modifier"),
		Sum:      args.Bool("sum"),
	})
}

func roll(ctx *Context, req dice.RollRequest) (Reply, error) {
	result, err := dice.Roll(ctx.Deps.RNG, req)
	if err != nil {
		return Reply{}, err
	}
	ctx.Deps.Metrics.DiceRolled.Add(float64(len(result.Raw)))
	return reply(result.String()), nil
}

func (d *Dispatcher) presetCommand() *Command {
	return &Command{
		Name:        "preset",
		Description: "Roll a named preset.",
		Options: []Option{
			{Name: "name", Description: "Preset to roll.", Kind: OptionString, Required: true},
		},
		Run: d.runPreset,
	}
}

func (d *Dispatcher) runPreset(ctx *Context, args Args) (Reply, error) {
	name, _ := args.Text("name")
	req, err := ctx.Deps.Presets.Preset(name)
	if errors.Is(err, scripting.ErrUnknownPreset) {
		return reply(
			fmt.Sprintf("I don't know the preset %q.", name),
			"Presets: "+strings.Join(ctx.Deps.Presets.PresetNames(), ", "),
		), nil
	}
	if err != nil {
		return Reply{}, err
	}

	// Presets come from scripts, so hold them to the same bounds as roll.
	if msg := d.Command("roll").validate(rollArgs(req)); msg != "" {
		return reply(fmt.Sprintf("The preset %q is out of bounds: %s", name, msg)), nil
	}
	return roll(ctx, req)
}

func rollArgs(req dice.RollRequest) Args {
	a := NewArgs()
	if req.Count != nil {
		a.SetInt("count", *req.Count)
	}
	if req.Sides != nil {
		a.SetInt("sides", *req.Sides)
	}
	if req.Modifier != nil {
		a.SetInt("modifier", *req.Modifier)
	}
	if req.Sum != nil {
		a.SetBool("sum", *req.Sum)
	}
	return a
}
