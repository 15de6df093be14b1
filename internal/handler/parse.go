package handler

import (
	"fmt"
	"strconv"
	"strings"
)

// UsageError carries a user-facing message for a malformed command line.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func usagef(format string, a ...any) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, a...)}
}

// ParseLine turns a prefix-stripped console line such as
// "roll count=2 sides=6 sum" or "fetch armour 3" into a command path and
// typed arguments. Positional values fill the command's options in order,
// key=value sets one by name and a bare boolean option name sets it true.
func (d *Dispatcher) ParseLine(line string) ([]string, Args, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, Args{}, usagef("Empty command. Try %shelp.", d.deps.Config.Bot.Prefix)
	}

	name := strings.ToLower(fields[0])
	cmd := d.Command(name)
	if cmd == nil {
		return nil, Args{}, usagef("I don't know %q. Try %shelp.", name, d.deps.Config.Bot.Prefix)
	}
	path := []string{name}
	rest := fields[1:]
	for len(cmd.Subcommands) > 0 {
		if len(rest) == 0 {
			return nil, Args{}, usagef("%s needs one of: %s.", strings.Join(path, " "), subNames(cmd))
		}
		sub := strings.ToLower(rest[0])
		next := cmd.Sub(sub)
		if next == nil {
			return nil, Args{}, usagef("%s has no %q. Pick one of: %s.", strings.Join(path, " "), sub, subNames(cmd))
		}
		cmd = next
		path = append(path, sub)
		rest = rest[1:]
	}

	args, err := parseArgs(cmd, rest)
	if err != nil {
		return nil, Args{}, err
	}
	return path, args, nil
}

func parseArgs(cmd *Command, tokens []string) (Args, error) {
	args := NewArgs()
	set := make(map[string]bool)
	next := 0
	for i, tok := range tokens {
		key, val, named := strings.Cut(tok, "=")
		var opt *Option
		switch {
		case named:
			opt = cmd.Option(strings.ToLower(key))
			if opt == nil {
				return Args{}, usagef("Unknown option %q.", key)
			}
		case isBoolFlag(cmd, tok):
			opt = cmd.Option(strings.ToLower(tok))
			val = "true"
		default:
			for next < len(cmd.Options) && set[cmd.Options[next].Name] {
				next++
			}
			if next >= len(cmd.Options) {
				return Args{}, usagef("Too many arguments at %q.", tok)
			}
			opt = &cmd.Options[next]
			val = tok
			// A trailing string option takes the rest of the line.
			if opt.Kind == OptionString && next == len(cmd.Options)-1 {
				val = strings.Join(tokens[i:], " ")
				set[opt.Name] = true
				args.SetText(opt.Name, val)
				return args, nil
			}
		}
		if set[opt.Name] {
			return Args{}, usagef("%s given twice.", opt.Name)
		}
		if err := setValue(args, opt, val); err != nil {
			return Args{}, err
		}
		set[opt.Name] = true
	}
	return args, nil
}

func isBoolFlag(cmd *Command, tok string) bool {
	opt := cmd.Option(strings.ToLower(tok))
	return opt != nil && opt.Kind == OptionBool
}

func setValue(args Args, opt *Option, val string) error {
	switch opt.Kind {
	case OptionInt:
		n, err := strconv.Atoi(val)
		if err != nil {
			return usagef("%s must be a whole number.", opt.Name)
		}
		args.SetInt(opt.Name, n)
	case OptionBool:
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err != nil {
			return usagef("%s must be true or false.", opt.Name)
		}
		args.SetBool(opt.Name, b)
	default:
		args.SetText(opt.Name, val)
	}
	return nil
}

func subNames(cmd *Command) string {
	names := make([]string, len(cmd.Subcommands))
	for i, s := range cmd.Subcommands {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}
