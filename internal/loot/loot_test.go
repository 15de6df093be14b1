package loot

import (
	"errors"
	"testing"

	"github.com/ayuyan/bot/internal/data"
	"github.com/ayuyan/bot/internal/random"
	"github.com/ayuyan/bot/internal/random/randomtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func intp(v int) *int { return &v }

func registry(t *testing.T) *data.Registry {
	t.Helper()
	r, err := data.LoadDefaultRegistry()
	require.NoError(t, err)
	return r
}

// rogue returns a fixed value regardless of the requested range.
type rogue struct{ v int }

func (r rogue) Sample(int, int) (int, error) { return r.v, nil }

func TestDrawReturnsCountMembers(t *testing.T) {
	reg := registry(t)
	rng := random.New(11)

	for count := 0; count <= TableCapacity; count++ {
		items, err := Draw(rng, reg.Weapon(), intp(count), TableCapacity)
		require.NoError(t, err)
		require.Len(t, items, count)
		for _, it := range items {
			assert.True(t, reg.Weapon().Contains(it), "%v not in weapon table", it)
		}
	}
}

func TestDrawArmourEndToEnd(t *testing.T) {
	reg := registry(t)
	require.Equal(t, 5, reg.Armour().Len())

	rng := randomtest.New(4, 0, 4)
	items, err := Draw(rng, reg.Armour(), intp(3), TableCapacity)
	require.NoError(t, err)

	assert.Equal(t, []data.Armour{data.ArmourPlate, data.ArmourPadded, data.ArmourPlate}, items)
	for _, c := range rng.Calls() {
		assert.Equal(t, randomtest.Call{Low: 0, High: 5}, c)
	}
}

func TestDrawDefaultsToOne(t *testing.T) {
	reg := registry(t)
	items, err := Draw(randomtest.New(2), reg.Elixir(), nil, TableCapacity)
	require.NoError(t, err)
	assert.Equal(t, []data.Elixir{data.ElixirClarity}, items)
}

func TestDrawRejectsBadCounts(t *testing.T) {
	reg := registry(t)
	_, err := Draw(random.New(1), reg.Elixir(), intp(TableCapacity+1), TableCapacity)
	assert.True(t, errors.Is(err, ErrCapacityExceeded))

	_, err = Draw(random.New(1), reg.Elixir(), intp(-1), TableCapacity)
	assert.True(t, errors.Is(err, ErrInvalidCount))
}

func TestTableCommands(t *testing.T) {
	reg := registry(t)
	cmds := TableCommands(reg)
	require.Len(t, cmds, 6)

	for c, cmd := range cmds {
		assert.Equal(t, c, cmd.Category())
		assert.Equal(t, TableCapacity, cmd.Capacity())
	}

	text, n, err := cmds[data.CategoryMaterialArmour].DrawText(randomtest.New(0, 7), intp(2))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "[Iron Chain Mail, Adamantine Plate]", text)
}

func TestDrawGeneric(t *testing.T) {
	reg := registry(t)
	// selector 0 -> armour[4], selector 3 -> tincture[1], selector 2 -> elixir[0]
	rng := randomtest.New(0, 4, 3, 1, 2, 0)
	d := NewDispatcher(rng, reg, zap.NewNop())

	frags, err := d.DrawGeneric(intp(3))
	require.NoError(t, err)
	assert.Equal(t, []Fragment{
		{Category: data.CategoryArmour, Label: "Plate"},
		{Category: data.CategoryTincture, Label: "Wolfsbane"},
		{Category: data.CategoryElixir, Label: "Healing"},
	}, frags)
	assert.Equal(t, []string{"Plate", "Wolfsbane", "Healing"}, Labels(frags))

	calls := rng.Calls()
	require.Len(t, calls, 6)
	assert.Equal(t, randomtest.Call{Low: 0, High: len(data.BaseCategories)}, calls[0])
	assert.Equal(t, randomtest.Call{Low: 0, High: 5}, calls[1])
	assert.Equal(t, randomtest.Call{Low: 0, High: 6}, calls[3])
}

func TestDrawGenericSeeded(t *testing.T) {
	reg := registry(t)
	d := NewDispatcher(random.New(5), reg, zap.NewNop())
	for i := 0; i < 200; i++ {
		frags, err := d.DrawGeneric(intp(GenericCapacity))
		require.NoError(t, err)
		require.Len(t, frags, GenericCapacity)
		for _, f := range frags {
			assert.Contains(t, data.BaseCategories, f.Category)
			assert.NotEmpty(t, f.Label)
		}
	}
}

func TestDrawGenericSelectorInvariant(t *testing.T) {
	reg := registry(t)
	d := NewDispatcher(rogue{v: len(data.BaseCategories)}, reg, zap.NewNop())

	frags, err := d.DrawGeneric(intp(1))
	assert.Nil(t, frags)
	assert.True(t, errors.Is(err, ErrInvariant), "error = %v", err)
}

func TestCoins(t *testing.T) {
	rng := randomtest.New(19, 999)
	n, err := Coins(rng, nil)
	require.NoError(t, err)
	assert.Equal(t, 19, n)

	n, err = Coins(rng, intp(1000))
	require.NoError(t, err)
	assert.Equal(t, 999, n)

	_, err = Coins(random.New(1), intp(0))
	assert.True(t, errors.Is(err, random.ErrInvalidRange))
}

func TestBuffer(t *testing.T) {
	b := NewBuffer[int](2)
	require.NoError(t, b.Append(1))
	require.NoError(t, b.Append(2))
	assert.True(t, errors.Is(b.Append(3), ErrCapacityExceeded))
	assert.Equal(t, []int{1, 2}, b.Items())
	assert.Equal(t, 2, b.Capacity())
}
