package data

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTable indicates a loot table with no entries.
	ErrEmptyTable = errors.New("loot table has no entries")
	// ErrUnknownEntry indicates a table key that names no known item.
	ErrUnknownEntry = errors.New("unknown table entry")
	// ErrIncompleteEntry indicates a material entry missing its metal or item.
	ErrIncompleteEntry = errors.New("incomplete material entry")
)

// Table is an ordered, immutable sequence of loot values. Indices are dense
// in [0, Len()) and Len() is always positive.
type Table[T Label] struct {
	name    string
	entries []T
}

func newTable[T Label](name string, entries []T) (*Table[T], error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyTable)
	}
	return &Table[T]{name: name, entries: entries}, nil
}

// NewTable builds a table from entries. It fails on an empty slice.
func NewTable[T Label](name string, entries ...T) (*Table[T], error) {
	cp := make([]T, len(entries))
	copy(cp, entries)
	return newTable(name, cp)
}

func (t *Table[T]) Name() string { return t.name }
func (t *Table[T]) Len() int     { return len(t.entries) }

// At returns the entry at index i.
func (t *Table[T]) At(i int) T { return t.entries[i] }

// LabelAt returns the display label of the entry at index i.
func (t *Table[T]) LabelAt(i int) string { return t.entries[i].String() }

// Contains reports whether v is one of the table's entries.
func (t *Table[T]) Contains(v T) bool {
	for _, e := range t.entries {
		if e == v {
			return true
		}
	}
	return false
}

// Entries returns a copy of the table's entries in order.
func (t *Table[T]) Entries() []T {
	out := make([]T, len(t.entries))
	copy(out, t.entries)
	return out
}

// Labeled is the type-erased view of a Table used where the item type
// depends on a runtime category.
type Labeled interface {
	Name() string
	Len() int
	LabelAt(i int) string
}

// Category names one of the registry's tables.
type Category uint8

const (
	CategoryArmour Category = iota
	CategoryWeapon
	CategoryElixir
	CategoryTincture
	CategoryMaterialArmour
	CategoryMaterialWeapon
)

var categoryNames = [...]string{
	CategoryArmour:         "armour",
	CategoryWeapon:         "weapon",
	CategoryElixir:         "elixir",
	CategoryTincture:       "tincture",
	CategoryMaterialArmour: "material-armour",
	CategoryMaterialWeapon: "material-weapon",
}

// BaseCategories are the categories the generic dispatcher selects from.
// The selector range is len(BaseCategories).
var BaseCategories = []Category{
	CategoryArmour,
	CategoryWeapon,
	CategoryElixir,
	CategoryTincture,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool { return int(c) < len(categoryNames) }

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", c)
	}
	return categoryNames[c]
}

// ParseCategory resolves a category name such as "material-weapon".
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return 0, false
}

// Registry holds the six loot tables. It is built once at startup and never
// mutated, so it is safe to share between requests.
type Registry struct {
	armour         *Table[Armour]
	weapon         *Table[Weapon]
	elixir         *Table[Elixir]
	tincture       *Table[Tincture]
	materialArmour *Table[Material[Armour]]
	materialWeapon *Table[Material[Weapon]]
}

func (r *Registry) Armour() *Table[Armour]                   { return r.armour }
func (r *Registry) Weapon() *Table[Weapon]                   { return r.weapon }
func (r *Registry) Elixir() *Table[Elixir]                   { return r.elixir }
func (r *Registry) Tincture() *Table[Tincture]               { return r.tincture }
func (r *Registry) MaterialArmour() *Table[Material[Armour]] { return r.materialArmour }
func (r *Registry) MaterialWeapon() *Table[Material[Weapon]] { return r.materialWeapon }

// Table returns the table for c. Category is a closed set and every member
// has a table, so an unknown value is a programming error.
func (r *Registry) Table(c Category) Labeled {
	switch c {
	case CategoryArmour:
		return r.armour
	case CategoryWeapon:
		return r.weapon
	case CategoryElixir:
		return r.elixir
	case CategoryTincture:
		return r.tincture
	case CategoryMaterialArmour:
		return r.materialArmour
	case CategoryMaterialWeapon:
		return r.materialWeapon
	}
	panic(fmt.Sprintf("data: no table for %s", c))
}

// Count returns the total number of entries across all tables.
func (r *Registry) Count() int {
	n := 0
	for c := range categoryNames {
		n += r.Table(Category(c)).Len()
	}
	return n
}
