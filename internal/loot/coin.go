package loot

import (
	"fmt"

	"github.com/ayuyan/bot/internal/random"
)

// DefaultCoinLimit is the exclusive upper bound used when none is given.
const DefaultCoinLimit = 20

// Coins returns a purse of [0, limit) coins.
func Coins(rng random.Sampler, limit *int) (int, error) {
	hi := DefaultCoinLimit
	if limit != nil {
		hi = *limit
	}
	n, err := rng.Sample(0, hi)
	if err != nil {
		return 0, fmt.Errorf("coins: %w", err)
	}
	return n, nil
}
