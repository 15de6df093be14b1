// Package condition generates the success conditions for a roll: a
// threshold to reach, a parity to match, both, or neither.
package condition

import (
	"errors"
	"fmt"

	"github.com/ayuyan/bot/internal/random"
	"github.com/ayuyan/bot/internal/render"
)

const (
	DefaultFloor   = 0
	DefaultCeiling = 20
)

// ErrInvariant indicates the parity draw produced a value outside {0, 1}.
var ErrInvariant = errors.New("condition: internal invariant violated")

// Request holds the caller's options. Nil fields take their defaults:
// threshold required, parity not required, range [0, 20).
type Request struct {
	Threshold *bool
	Parity    *bool
	Floor     *int
	Ceiling   *int
}

// Parity is the required parity of a roll.
type Parity uint8

const (
	Even Parity = iota
	Odd
)

func (p Parity) String() string {
	if p == Odd {
		return "odd"
	}
	return "even"
}

// Kind selects which of the four outcome messages applies.
type Kind uint8

const (
	KindNone Kind = iota
	KindThreshold
	KindParity
	KindBoth
)

// Outcome is a generated condition. Warnings carry recoverable input
// problems that the caller should show before the message.
type Outcome struct {
	Kind      Kind
	Threshold int
	Parity    Parity
	Floor     int
	Ceiling   int
	Warnings  []string
}

// WarnInvertedRange is shown when floor is not below ceiling.
const WarnInvertedRange = "The floor can't be greater than the ceiling, silly!"

// Generate draws a threshold and a parity and combines them as requested.
// Both values are always drawn, threshold first, so a seeded source yields
// the same draws whatever combination is requested.
func Generate(rng random.Sampler, req Request) (Outcome, error) {
	threshold := valueOr(req.Threshold, true)
	parity := valueOr(req.Parity, false)
	floor := valueOr(req.Floor, DefaultFloor)
	ceiling := valueOr(req.Ceiling, DefaultCeiling)

	var out Outcome
	if floor >= ceiling {
		out.Warnings = append(out.Warnings, WarnInvertedRange)
		floor, ceiling = DefaultFloor, DefaultCeiling
	}
	out.Floor, out.Ceiling = floor, ceiling

	v, err := rng.Sample(floor, ceiling)
	if err != nil {
		return Outcome{}, fmt.Errorf("threshold: %w", err)
	}
	out.Threshold = v

	p, err := rng.Sample(0, 2)
	if err != nil {
		return Outcome{}, fmt.Errorf("parity: %w", err)
	}
	switch p {
	case 0:
		out.Parity = Even
	case 1:
		out.Parity = Odd
	default:
		return Outcome{}, fmt.Errorf("%w: parity draw %d", ErrInvariant, p)
	}

	switch {
	case threshold && parity:
		out.Kind = KindBoth
	case threshold:
		out.Kind = KindThreshold
	case parity:
		out.Kind = KindParity
	default:
		out.Kind = KindNone
	}
	return out, nil
}

// Message renders the outcome for display.
func (o Outcome) Message() string {
	switch o.Kind {
	case KindThreshold:
		return fmt.Sprintf("You must reach/surpass a threshold of %s!", render.Boldf("%d", o.Threshold))
	case KindParity:
		return fmt.Sprintf("You must have an %s parity!", render.Bold(o.Parity.String()))
	case KindBoth:
		return fmt.Sprintf("Surpass a threshold of %s and have an %s parity!",
			render.Boldf("%d", o.Threshold), render.Bold(o.Parity.String()))
	default:
		return "You're so silly! I can't do nothing!"
	}
}

// Lines returns the warnings followed by the message.
func (o Outcome) Lines() []string {
	lines := make([]string, 0, len(o.Warnings)+1)
	lines = append(lines, o.Warnings...)
	return append(lines, o.Message())
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
