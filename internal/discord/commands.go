package discord

import (
	"github.com/ayuyan/bot/internal/handler"
	"github.com/bwmarrin/discordgo"
)

// ApplicationCommands converts the catalogue into slash-command
// definitions. Integer bounds become min/max constraints so Discord
// rejects out-of-range values before they reach the bot.
func ApplicationCommands(cmds []*handler.Command) []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(cmds))
	for _, c := range cmds {
		ac := &discordgo.ApplicationCommand{
			Name:        c.Name,
			Description: c.Description,
		}
		if len(c.Subcommands) > 0 {
			for _, sub := range c.Subcommands {
				ac.Options = append(ac.Options, &discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        sub.Name,
					Description: sub.Description,
					Options:     options(sub.Options),
				})
			}
		} else {
			ac.Options = options(c.Options)
		}
		out = append(out, ac)
	}
	return out
}

func options(opts []handler.Option) []*discordgo.ApplicationCommandOption {
	var out []*discordgo.ApplicationCommandOption
	for _, o := range opts {
		ao := &discordgo.ApplicationCommandOption{
			Name:        o.Name,
			Description: o.Description,
			Required:    o.Required,
		}
		switch o.Kind {
		case handler.OptionInt:
			lo := float64(o.Min)
			ao.Type = discordgo.ApplicationCommandOptionInteger
			ao.MinValue = &lo
			ao.MaxValue = float64(o.Max)
		case handler.OptionBool:
			ao.Type = discordgo.ApplicationCommandOptionBoolean
		default:
			ao.Type = discordgo.ApplicationCommandOptionString
		}
		out = append(out, ao)
	}
	return out
}

// invocation flattens interaction data into a command path and args.
func invocation(data discordgo.ApplicationCommandInteractionData) ([]string, handler.Args) {
	path := []string{data.Name}
	opts := data.Options
	if len(opts) == 1 && opts[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		path = append(path, opts[0].Name)
		opts = opts[0].Options
	}

	args := handler.NewArgs()
	for _, o := range opts {
		switch o.Type {
		case discordgo.ApplicationCommandOptionInteger:
			args.SetInt(o.Name, int(o.IntValue()))
		case discordgo.ApplicationCommandOptionBoolean:
			args.SetBool(o.Name, o.BoolValue())
		case discordgo.ApplicationCommandOptionString:
			args.SetText(o.Name, o.StringValue())
		}
	}
	return path, args
}
