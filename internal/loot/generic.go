package loot

import (
	"errors"
	"fmt"

	"github.com/ayuyan/bot/internal/data"
	"github.com/ayuyan/bot/internal/random"
	"go.uber.org/zap"
)

// ErrInvariant indicates a draw produced a value the engine can never
// legitimately produce, such as a selector outside the category set.
var ErrInvariant = errors.New("loot: internal invariant violated")

// Dispatcher serves requests that leave the category unspecified: each
// iteration picks one of data.BaseCategories uniformly, then draws once
// from that table.
type Dispatcher struct {
	rng random.Sampler
	reg *data.Registry
	log *zap.Logger
}

func NewDispatcher(rng random.Sampler, reg *data.Registry, log *zap.Logger) *Dispatcher {
	return &Dispatcher{rng: rng, reg: reg, log: log}
}

// Fragment is one generic draw.
type Fragment struct {
	Category data.Category
	Label    string
}

// DrawGeneric performs count category-then-item draws. A nil count draws
// once.
func (d *Dispatcher) DrawGeneric(count *int) ([]Fragment, error) {
	n, err := checkCount(count, GenericCapacity)
	if err != nil {
		return nil, err
	}
	buf := NewBuffer[Fragment](GenericCapacity)
	for i := 0; i < n; i++ {
		category, err := d.selectCategory()
		if err != nil {
			return nil, err
		}
		table := d.reg.Table(category)
		idx, err := d.rng.Sample(0, table.Len())
		if err != nil {
			return nil, fmt.Errorf("draw %s: %w", table.Name(), err)
		}
		if err := buf.Append(Fragment{Category: category, Label: table.LabelAt(idx)}); err != nil {
			return nil, err
		}
	}
	return buf.Items(), nil
}

// Labels returns the display labels of fragments in draw order.
func Labels(fragments []Fragment) []string {
	out := make([]string, len(fragments))
	for i, f := range fragments {
		out[i] = f.Label
	}
	return out
}

func (d *Dispatcher) selectCategory() (data.Category, error) {
	sel, err := d.rng.Sample(0, len(data.BaseCategories))
	if err != nil {
		return 0, fmt.Errorf("select category: %w", err)
	}
	if sel < 0 || sel >= len(data.BaseCategories) {
		d.log.Error("category selector out of range",
			zap.Int("selector", sel),
			zap.Int("categories", len(data.BaseCategories)),
		)
		return 0, fmt.Errorf("%w: category selector %d", ErrInvariant, sel)
	}
	return data.BaseCategories[sel], nil
}
