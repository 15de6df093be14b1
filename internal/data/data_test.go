package data

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultRegistry(t *testing.T) {
	r, err := LoadDefaultRegistry()
	require.NoError(t, err)

	assert.Equal(t, 5, r.Armour().Len())
	assert.Equal(t, 7, r.Weapon().Len())
	assert.Equal(t, 5, r.Elixir().Len())
	assert.Equal(t, 6, r.Tincture().Len())
	assert.Positive(t, r.MaterialArmour().Len())
	assert.Positive(t, r.MaterialWeapon().Len())

	for i := 0; i < len(categoryNames); i++ {
		tbl := r.Table(Category(i))
		assert.Positive(t, tbl.Len(), "table %s is empty", Category(i))
	}
	assert.Equal(t, 5+7+5+6+8+9, r.Count())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Chain Mail", ArmourChainMail.String())
	assert.Equal(t, "Longbow", WeaponLongbow.String())
	assert.Equal(t, "Healing", ElixirHealing.String())
	assert.Equal(t, "Moonpetal", TinctureMoonpetal.String())
	assert.Equal(t, "Mithril Plate", Material[Armour]{Metal: MetalMithril, Item: ArmourPlate}.String())
	assert.Equal(t, "armour(200)", Armour(200).String())
}

func TestCategories(t *testing.T) {
	assert.Len(t, BaseCategories, 4)
	for _, c := range BaseCategories {
		assert.True(t, c.Valid())
	}
	assert.False(t, Category(42).Valid())

	c, ok := ParseCategory("material-weapon")
	require.True(t, ok)
	assert.Equal(t, CategoryMaterialWeapon, c)
	assert.Equal(t, "material-weapon", c.String())

	_, ok = ParseCategory("shield")
	assert.False(t, ok)
}

func TestTablePanicsOnUnknownCategory(t *testing.T) {
	r, err := LoadDefaultRegistry()
	require.NoError(t, err)
	assert.Panics(t, func() { r.Table(Category(99)) })
}

const validTables = `
armour: [plate]
weapon: [Dagger]
elixir: [healing]
tincture: [wolfsbane, wolfsbane]
material_armour:
  - { metal: iron, item: plate }
material_weapon:
  - { metal: silver, item: dagger }
`

func TestParseRegistry(t *testing.T) {
	r, err := ParseRegistry([]byte(validTables))
	require.NoError(t, err)

	assert.Equal(t, []Weapon{WeaponDagger}, r.Weapon().Entries())
	assert.Equal(t, []Tincture{TinctureWolfsbane, TinctureWolfsbane}, r.Tincture().Entries())
	assert.Equal(t, Material[Weapon]{Metal: MetalSilver, Item: WeaponDagger}, r.MaterialWeapon().At(0))
	assert.True(t, r.Armour().Contains(ArmourPlate))
	assert.False(t, r.Armour().Contains(ArmourPadded))
}

func TestParseRegistryRejectsBadTables(t *testing.T) {
	tcs := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "empty table",
			yaml: "armour: []\nweapon: [dagger]\nelixir: [healing]\ntincture: [moonpetal]\n" +
				"material_armour: [{metal: iron, item: plate}]\nmaterial_weapon: [{metal: iron, item: dagger}]\n",
			want: ErrEmptyTable,
		},
		{
			name: "missing table",
			yaml: "armour: [plate]\n",
			want: ErrEmptyTable,
		},
		{
			name: "unknown item",
			yaml: "armour: [tower_shield]\n",
			want: ErrUnknownEntry,
		},
		{
			name: "incomplete material",
			yaml: "armour: [plate]\nweapon: [dagger]\nelixir: [healing]\ntincture: [moonpetal]\n" +
				"material_armour: [{metal: iron}]\n",
			want: ErrIncompleteEntry,
		},
		{
			name: "unknown metal",
			yaml: "armour: [plate]\nweapon: [dagger]\nelixir: [healing]\ntincture: [moonpetal]\n" +
				"material_armour: [{metal: bronze, item: plate}]\n",
			want: ErrUnknownEntry,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRegistry([]byte(tc.yaml))
			assert.True(t, errors.Is(err, tc.want), "error = %v, want %v", err, tc.want)
		})
	}
}

func TestLoadRegistryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validTables), 0o600))

	r, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Armour().Len())

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewTable(t *testing.T) {
	_, err := NewTable[Armour]("empty")
	assert.True(t, errors.Is(err, ErrEmptyTable))

	src := []Elixir{ElixirClarity}
	tbl, err := NewTable("elixir", src...)
	require.NoError(t, err)
	src[0] = ElixirWarding
	assert.Equal(t, ElixirClarity, tbl.At(0), "table must not alias its input")
	assert.Equal(t, "Clarity", tbl.LabelAt(0))
	assert.Equal(t, "elixir", tbl.Name())
}
