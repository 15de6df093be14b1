package handler

import (
	"fmt"
	"strings"
)

const helpFooter = "Consider the following..."

func (d *Dispatcher) catalogue() []*Command {
	cmds := []*Command{
		d.fetchCommand(),
		rollCommand(),
	}
	if d.deps.Presets != nil {
		cmds = append(cmds, d.presetCommand())
	}
	cmds = append(cmds,
		&Command{
			Name:        "help",
			Description: "List commands for " + d.deps.Config.Bot.Name + ".",
			Options: []Option{
				{Name: "command", Description: "Command to describe.", Kind: OptionString},
			},
			Run: d.runHelp,
		},
		&Command{
			Name:        "ping",
			Description: "Check whether " + d.deps.Config.Bot.Name + " is online.",
			Run: func(*Context, Args) (Reply, error) {
				return reply("Pong!"), nil
			},
		},
	)
	return cmds
}

func (d *Dispatcher) runHelp(_ *Context, args Args) (Reply, error) {
	prefix := d.deps.Config.Bot.Prefix
	name, _ := args.Text("command")
	path := strings.Fields(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), prefix)))
	if len(path) == 0 {
		lines := []string{"Commands:"}
		for _, c := range d.commands {
			lines = append(lines, fmt.Sprintf("  %s%s - %s", prefix, c.Name, c.Description))
		}
		return reply(append(lines, helpFooter)...), nil
	}

	cmd := d.Command(path[0])
	for _, p := range path[1:] {
		if cmd == nil {
			break
		}
		cmd = cmd.Sub(p)
	}
	if cmd == nil {
		return reply(fmt.Sprintf("I don't know %q.", name)), nil
	}

	full := strings.Join(path, " ")
	lines := []string{cmd.Description}
	if len(cmd.Subcommands) > 0 {
		for _, s := range cmd.Subcommands {
			lines = append(lines, fmt.Sprintf("  %s%s - %s", prefix, s.Usage(full+" "+s.Name), s.Description))
		}
		return reply(lines...), nil
	}
	lines = append(lines, "Usage: "+prefix+cmd.Usage(full))
	for _, o := range cmd.Options {
		lines = append(lines, "  "+describeOption(o))
	}
	if cmd.OwnersOnly {
		lines = append(lines, "Owners only.")
	}
	return reply(lines...), nil
}

func describeOption(o Option) string {
	switch o.Kind {
	case OptionInt:
		return fmt.Sprintf("%s (%d-%d): %s", o.Name, o.Min, o.Max, o.Description)
	case OptionBool:
		return fmt.Sprintf("%s (true/false): %s", o.Name, o.Description)
	default:
		return fmt.Sprintf("%s: %s", o.Name, o.Description)
	}
}
