package net

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ayuyan/bot/internal/handler"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Dispatcher is the command side of the console.
type Dispatcher interface {
	ParseLine(line string) ([]string, handler.Args, error)
	Dispatch(ctx context.Context, inv handler.Invocation) handler.Reply
}

// Console turns session lines into command invocations. Lines must start
// with the command prefix; ".login" and ".quit" are handled here.
type Console struct {
	dispatcher Dispatcher
	prefix     string
	ownerHash  []byte
	log        *zap.Logger
}

// NewConsole returns a Console. An empty ownerHash disables .login.
func NewConsole(d Dispatcher, prefix, ownerHash string, log *zap.Logger) *Console {
	return &Console{
		dispatcher: d,
		prefix:     prefix,
		ownerHash:  []byte(ownerHash),
		log:        log,
	}
}

// Greeting is sent to each new session.
func (c *Console) Greeting() string {
	return fmt.Sprintf("Hi! Type %shelp for commands.", c.prefix)
}

func (c *Console) HandleLine(ctx context.Context, sess *Session, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if !strings.HasPrefix(line, c.prefix) {
		sess.Send(fmt.Sprintf("Commands start with %q.", c.prefix))
		return
	}
	line = strings.TrimPrefix(line, c.prefix)

	word, rest, _ := strings.Cut(line, " ")
	switch strings.ToLower(word) {
	case "login":
		sess.Send(c.login(sess, strings.TrimSpace(rest)))
		return
	case "quit":
		sess.Send("Bye!")
		sess.Quit()
		return
	}

	path, args, err := c.dispatcher.ParseLine(line)
	if err != nil {
		var usage *handler.UsageError
		if errors.As(err, &usage) {
			sess.Send(usage.Msg)
			return
		}
		c.log.Error("parse console line", zap.Error(err))
		return
	}

	r := c.dispatcher.Dispatch(ctx, handler.Invocation{
		Path:   path,
		Args:   args,
		Member: "console:" + sess.IP,
		Owner:  sess.Owner(),
	})
	sess.Send(r.Lines...)
}

func (c *Console) login(sess *Session, password string) string {
	if len(c.ownerHash) == 0 {
		return "Login is disabled."
	}
	if password == "" {
		return fmt.Sprintf("Usage: %slogin <password>", c.prefix)
	}
	if err := bcrypt.CompareHashAndPassword(c.ownerHash, []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			c.log.Error("owner password hash unusable", zap.Error(err))
		}
		c.log.Warn("console login failed", zap.Uint64("session", sess.ID), zap.String("ip", sess.IP))
		return "Wrong password."
	}
	sess.SetOwner(true)
	c.log.Info("console owner login", zap.Uint64("session", sess.ID), zap.String("ip", sess.IP))
	return "Welcome back!"
}
