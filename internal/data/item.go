package data

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label is implemented by every value a loot table can hold.
type Label interface {
	comparable
	fmt.Stringer
}

// Armour is a piece of armour from the armour table.
type Armour uint8

const (
	ArmourPadded Armour = iota
	ArmourLeather
	ArmourChainMail
	ArmourScale
	ArmourPlate
)

// Weapon is a weapon from the weapon table.
type Weapon uint8

const (
	WeaponDagger Weapon = iota
	WeaponShortsword
	WeaponLongsword
	WeaponBattleaxe
	WeaponWarhammer
	WeaponSpear
	WeaponLongbow
)

// Elixir is a drinkable elixir.
type Elixir uint8

const (
	ElixirHealing Elixir = iota
	ElixirVigour
	ElixirClarity
	ElixirSwiftness
	ElixirWarding
)

// Tincture is an alchemical tincture.
type Tincture uint8

const (
	TinctureNightshade Tincture = iota
	TinctureWolfsbane
	TinctureMoonpetal
	TinctureEmberroot
	TinctureFrostleaf
	TinctureBloodmoss
)

// Metal is the material modifier paired with armour and weapons.
type Metal uint8

const (
	MetalIron Metal = iota
	MetalSteel
	MetalSilver
	MetalMithril
	MetalAdamantine
)

var (
	armours   = newEnum[Armour]("armour", "padded", "leather", "chain_mail", "scale", "plate")
	weapons   = newEnum[Weapon]("weapon", "dagger", "shortsword", "longsword", "battleaxe", "warhammer", "spear", "longbow")
	elixirs   = newEnum[Elixir]("elixir", "healing", "vigour", "clarity", "swiftness", "warding")
	tinctures = newEnum[Tincture]("tincture", "nightshade", "wolfsbane", "moonpetal", "emberroot", "frostleaf", "bloodmoss")
	metals    = newEnum[Metal]("metal", "iron", "steel", "silver", "mithril", "adamantine")
)

func (a Armour) String() string   { return armours.label(a) }
func (w Weapon) String() string   { return weapons.label(w) }
func (e Elixir) String() string   { return elixirs.label(e) }
func (t Tincture) String() string { return tinctures.label(t) }
func (m Metal) String() string    { return metals.label(m) }

// enum maps YAML keys to a closed set of values and their display labels.
// Labels are computed once at package init: a cases.Caser must not be
// shared between goroutines.
type enum[T ~uint8] struct {
	kind   string
	keys   []string
	labels []string
	index  map[string]T
}

func newEnum[T ~uint8](kind string, keys ...string) enum[T] {
	title := cases.Title(language.English)
	e := enum[T]{
		kind:   kind,
		keys:   keys,
		labels: make([]string, len(keys)),
		index:  make(map[string]T, len(keys)),
	}
	for i, k := range keys {
		e.labels[i] = title.String(strings.ReplaceAll(k, "_", " "))
		e.index[k] = T(i)
	}
	return e
}

func (e enum[T]) label(v T) string {
	if int(v) >= len(e.labels) {
		return fmt.Sprintf("%s(%d)", e.kind, v)
	}
	return e.labels[v]
}

func (e enum[T]) parse(key string) (T, error) {
	v, ok := e.index[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return 0, fmt.Errorf("%w: %s %q", ErrUnknownEntry, e.kind, key)
	}
	return v, nil
}
