// Package loot draws items from the loot tables: single-table draws, the
// generic category dispatcher and the coin purse.
package loot

import (
	"fmt"

	"github.com/ayuyan/bot/internal/data"
	"github.com/ayuyan/bot/internal/random"
	"github.com/ayuyan/bot/internal/render"
)

const (
	// TableCapacity bounds the result buffer of a single-table command.
	TableCapacity = 20
	// GenericCapacity bounds the number of generic draws.
	GenericCapacity = 20
)

// Draw samples count entries from table with replacement, in draw order.
// A nil count draws once.
func Draw[T data.Label](rng random.Sampler, table *data.Table[T], count *int, capacity int) ([]T, error) {
	n, err := checkCount(count, capacity)
	if err != nil {
		return nil, err
	}
	buf := NewBuffer[T](capacity)
	for i := 0; i < n; i++ {
		idx, err := rng.Sample(0, table.Len())
		if err != nil {
			return nil, fmt.Errorf("draw %s: %w", table.Name(), err)
		}
		if err := buf.Append(table.At(idx)); err != nil {
			return nil, err
		}
	}
	return buf.Items(), nil
}

// Drawer is a table command whose item type is hidden behind its rendered
// output.
type Drawer interface {
	Category() data.Category
	Capacity() int
	DrawText(rng random.Sampler, count *int) (string, int, error)
}

// TableCommand draws from one table into a buffer of fixed capacity. All
// table subcommands share this one implementation.
type TableCommand[T data.Label] struct {
	category data.Category
	table    *data.Table[T]
	capacity int
}

// NewTableCommand binds a table to its category and buffer capacity.
func NewTableCommand[T data.Label](c data.Category, table *data.Table[T], capacity int) TableCommand[T] {
	return TableCommand[T]{category: c, table: table, capacity: capacity}
}

func (c TableCommand[T]) Category() data.Category { return c.category }
func (c TableCommand[T]) Capacity() int           { return c.capacity }

// Draw returns the drawn items.
func (c TableCommand[T]) Draw(rng random.Sampler, count *int) ([]T, error) {
	return Draw(rng, c.table, count, c.capacity)
}

// DrawText returns the rendered items and how many were drawn.
func (c TableCommand[T]) DrawText(rng random.Sampler, count *int) (string, int, error) {
	items, err := c.Draw(rng, count)
	if err != nil {
		return "", 0, err
	}
	return render.List(items), len(items), nil
}

// TableCommands returns a Drawer for every registry table.
func TableCommands(reg *data.Registry) map[data.Category]Drawer {
	return map[data.Category]Drawer{
		data.CategoryArmour:         NewTableCommand(data.CategoryArmour, reg.Armour(), TableCapacity),
		data.CategoryWeapon:         NewTableCommand(data.CategoryWeapon, reg.Weapon(), TableCapacity),
		data.CategoryElixir:         NewTableCommand(data.CategoryElixir, reg.Elixir(), TableCapacity),
		data.CategoryTincture:       NewTableCommand(data.CategoryTincture, reg.Tincture(), TableCapacity),
		data.CategoryMaterialArmour: NewTableCommand(data.CategoryMaterialArmour, reg.MaterialArmour(), TableCapacity),
		data.CategoryMaterialWeapon: NewTableCommand(data.CategoryMaterialWeapon, reg.MaterialWeapon(), TableCapacity),
	}
}
