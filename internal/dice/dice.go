// Package dice implements the dice roller: count rolls of a die with the
// given number of sides, an optional per-roll modifier and an optional sum.
package dice

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ayuyan/bot/internal/random"
	"github.com/ayuyan/bot/internal/render"
)

const (
	DefaultCount = 1
	DefaultSides = 20
	// MaxCount bounds the result buffer of a single roll request.
	MaxCount = 128
)

// ErrInvalidSides indicates a die with fewer than one side.
var ErrInvalidSides = errors.New("dice: die must have at least one side")

// ErrInvalidCount indicates a negative or oversized roll count.
var ErrInvalidCount = errors.New("dice: roll count out of range")

// RollRequest holds the caller's options. Nil fields take their defaults.
type RollRequest struct {
	Count    *int
	Sides    *int
	Modifier *int
	Sum      *bool
}

// RollResult captures one roll request.
//
// Values holds the per-roll results in one signed representation: the raw
// rolls when no modifier was given, raw[i]+Modifier otherwise. Total is
// always the sum of Values, so with a modifier m it equals sum(Raw)+len(Raw)*m.
type RollResult struct {
	Sides    int
	Raw      []int
	Modifier *int
	Values   []int
	Summed   bool
	Total    int
}

// Roll performs the request.
//
// Each die is sampled over [1, sides+1), so results are inclusive 1..sides.
// Rolls appear in draw order.
func Roll(rng random.Sampler, request RollRequest) (RollResult, error) {
	count := DefaultCount
	if request.Count != nil {
		count = *request.Count
	}
	sides := DefaultSides
	if request.Sides != nil {
		sides = *request.Sides
	}
	if sides < 1 {
		return RollResult{}, fmt.Errorf("%w: %d", ErrInvalidSides, sides)
	}
	if count < 0 || count > MaxCount {
		return RollResult{}, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	raw := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := rollDie(rng, sides)
		if err != nil {
			return RollResult{}, err
		}
		raw = append(raw, v)
	}

	result := RollResult{
		Sides:  sides,
		Raw:    raw,
		Summed: request.Sum != nil && *request.Sum,
	}

	result.Values = make([]int, len(raw))
	copy(result.Values, raw)
	if request.Modifier != nil {
		m := *request.Modifier
		result.Modifier = &m
		for i := range result.Values {
			result.Values[i] += m
		}
	}
	for _, v := range result.Values {
		result.Total += v
	}
	return result, nil
}

// String renders the total when summed, the per-roll values otherwise.
func (r RollResult) String() string {
	if r.Summed {
		return strconv.Itoa(r.Total)
	}
	return render.Ints(r.Values)
}

// rollDie rolls a die with the provided number of sides.
func rollDie(rng random.Sampler, sides int) (int, error) {
	v, err := rng.Sample(1, sides+1)
	if err != nil {
		return 0, fmt.Errorf("roll d%d: %w", sides, err)
	}
	return v, nil
}
