// Package discord serves the command catalogue as Discord slash commands.
package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/ayuyan/bot/internal/config"
	"github.com/ayuyan/bot/internal/handler"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// maxContent is Discord's message length limit.
const maxContent = 2000

// Dispatcher is the command side of the bot.
type Dispatcher interface {
	Commands() []*handler.Command
	Dispatch(ctx context.Context, inv handler.Invocation) handler.Reply
}

// Bot owns the gateway session.
type Bot struct {
	session    *discordgo.Session
	dispatcher Dispatcher
	cfg        config.DiscordConfig
	owners     map[string]bool
	log        *zap.Logger
	ctx        context.Context
}

func New(ctx context.Context, cfg config.DiscordConfig, d Dispatcher, log *zap.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("discord: token not configured")
	}
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	owners := make(map[string]bool, len(cfg.Owners))
	for _, id := range cfg.Owners {
		owners[id] = true
	}
	b := &Bot{
		session:    s,
		dispatcher: d,
		cfg:        cfg,
		owners:     owners,
		log:        log.With(zap.String("transport", "discord")),
		ctx:        ctx,
	}
	s.AddHandler(b.onReady)
	s.AddHandler(b.onInteraction)
	return b, nil
}

// Open connects to the gateway and registers the slash commands. An empty
// guild id registers them globally.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord: open gateway: %w", err)
	}
	appID := b.cfg.ApplicationID
	if appID == "" && b.session.State.User != nil {
		appID = b.session.State.User.ID
	}
	cmds := ApplicationCommands(b.dispatcher.Commands())
	if _, err := b.session.ApplicationCommandBulkOverwrite(appID, b.cfg.GuildID, cmds); err != nil {
		b.session.Close()
		return fmt.Errorf("discord: register commands: %w", err)
	}
	b.log.Info("slash commands registered", zap.Int("commands", len(cmds)), zap.String("guild", b.cfg.GuildID))
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("gateway ready", zap.String("user", r.User.Username), zap.Int("guilds", len(r.Guilds)))
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	r := b.handle(i)
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content(r.Lines)},
	})
	if err != nil {
		b.log.Error("interaction response failed", zap.String("interaction", i.ID), zap.Error(err))
	}
}

func (b *Bot) handle(i *discordgo.InteractionCreate) handler.Reply {
	path, args := invocation(i.ApplicationCommandData())
	member := userID(i)
	return b.dispatcher.Dispatch(b.ctx, handler.Invocation{
		Path:   path,
		Args:   args,
		Member: "discord:" + member,
		Owner:  b.owners[member],
	})
}

// userID is the caller in a guild or in a direct message.
func userID(i *discordgo.InteractionCreate) string {
	switch {
	case i.Member != nil && i.Member.User != nil:
		return i.Member.User.ID
	case i.User != nil:
		return i.User.ID
	}
	return ""
}

func content(lines []string) string {
	s := strings.Join(lines, "\n")
	if len(s) > maxContent {
		s = s[:maxContent-3] + "..."
	}
	return s
}
