package handler

import (
	"fmt"
	"sort"
	"strings"
)

// OptionKind is the value type of a command option.
type OptionKind uint8

const (
	OptionInt OptionKind = iota
	OptionBool
	OptionString
)

// Option describes one optional or required argument. Min and Max bound
// integer options inclusively.
type Option struct {
	Name        string
	Description string
	Kind        OptionKind
	Min, Max    int
	Required    bool
}

// RunFunc executes a command.
type RunFunc func(ctx *Context, args Args) (Reply, error)

// Command is a catalogue entry. A command either runs itself or groups
// subcommands, never both.
type Command struct {
	Name        string
	Description string
	Options     []Option
	Subcommands []*Command
	OwnersOnly  bool
	Run         RunFunc
}

// Sub returns the named subcommand, or nil.
func (c *Command) Sub(name string) *Command {
	for _, s := range c.Subcommands {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Option returns the named option, or nil.
func (c *Command) Option(name string) *Option {
	for i := range c.Options {
		if c.Options[i].Name == name {
			return &c.Options[i]
		}
	}
	return nil
}

// Usage returns a one-line synopsis such as "roll [count] [sides] [sum] [modifier]".
func (c *Command) Usage(path string) string {
	var b strings.Builder
	b.WriteString(path)
	for _, o := range c.Options {
		if o.Required {
			fmt.Fprintf(&b, " <%s>", o.Name)
		} else {
			fmt.Fprintf(&b, " [%s]", o.Name)
		}
	}
	return b.String()
}

// Args holds typed option values keyed by option name.
type Args struct {
	ints    map[string]int
	bools   map[string]bool
	strings map[string]string
}

func NewArgs() Args {
	return Args{
		ints:    make(map[string]int),
		bools:   make(map[string]bool),
		strings: make(map[string]string),
	}
}

func (a Args) SetInt(name string, v int)     { a.ints[name] = v }
func (a Args) SetBool(name string, v bool)   { a.bools[name] = v }
func (a Args) SetText(name string, v string) { a.strings[name] = v }

// Int returns the integer option, or nil when absent.
func (a Args) Int(name string) *int {
	v, ok := a.ints[name]
	if !ok {
		return nil
	}
	return &v
}

// Bool returns the boolean option, or nil when absent.
func (a Args) Bool(name string) *bool {
	v, ok := a.bools[name]
	if !ok {
		return nil
	}
	return &v
}

// Text returns the string option and whether it was given.
func (a Args) Text(name string) (string, bool) {
	v, ok := a.strings[name]
	return v, ok
}

// names returns every option name present, sorted.
func (a Args) names() []string {
	var out []string
	for k := range a.ints {
		out = append(out, k)
	}
	for k := range a.bools {
		out = append(out, k)
	}
	for k := range a.strings {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// validate checks args against the command's options. The returned
// message is user-facing; an empty string means the args are valid.
func (c *Command) validate(args Args) string {
	for _, name := range args.names() {
		if c.Option(name) == nil {
			return fmt.Sprintf("Unknown option %q.", name)
		}
	}
	for _, o := range c.Options {
		switch o.Kind {
		case OptionInt:
			v := args.Int(o.Name)
			if v == nil {
				if o.Required {
					return fmt.Sprintf("Missing %s.", o.Name)
				}
				continue
			}
			if *v < o.Min || *v > o.Max {
				return fmt.Sprintf("%s must be between %d and %d.", o.Name, o.Min, o.Max)
			}
		case OptionBool:
			if o.Required && args.Bool(o.Name) == nil {
				return fmt.Sprintf("Missing %s.", o.Name)
			}
		case OptionString:
			if _, ok := args.Text(o.Name); o.Required && !ok {
				return fmt.Sprintf("Missing %s.", o.Name)
			}
		}
	}
	return ""
}
