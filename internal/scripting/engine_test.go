package scripting

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEngine(t *testing.T, scripts map[string]string) *Engine {
	t.Helper()
	dir := t.TempDir()
	for name, src := range scripts {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600))
	}
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestPresetTable(t *testing.T) {
	e := newEngine(t, map[string]string{
		"a.lua": `presets.fireball = { count = 8, sides = 6, sum = true }`,
	})

	req, err := e.Preset("fireball")
	require.NoError(t, err)
	require.NotNil(t, req.Count)
	require.NotNil(t, req.Sides)
	require.NotNil(t, req.Sum)
	assert.Equal(t, 8, *req.Count)
	assert.Equal(t, 6, *req.Sides)
	assert.True(t, *req.Sum)
	assert.Nil(t, req.Modifier)
}

func TestPresetFunction(t *testing.T) {
	e := newEngine(t, map[string]string{
		"a.lua": `presets.smite = function(name) return { count = 2, sides = 8, modifier = -1 } end`,
	})

	req, err := e.Preset("smite")
	require.NoError(t, err)
	require.NotNil(t, req.Modifier)
	assert.Equal(t, -1, *req.Modifier)
	assert.Nil(t, req.Sum)
}

func TestPresetFunctionError(t *testing.T) {
	e := newEngine(t, map[string]string{
		"a.lua": `presets.broken = function() error("boom") end`,
	})
	_, err := e.Preset("broken")
	assert.Error(t, err)
}

func TestUnknownPreset(t *testing.T) {
	e := newEngine(t, nil)
	_, err := e.Preset("nope")
	assert.True(t, errors.Is(err, ErrUnknownPreset))
}

func TestPresetNames(t *testing.T) {
	e := newEngine(t, map[string]string{
		"a.lua":      `presets.b = { sides = 4 }`,
		"b.lua":      `presets.a = { sides = 6 }`,
		"ignore.txt": `this is not lua`,
	})
	assert.Equal(t, []string{"a", "b"}, e.PresetNames())

	require.NoError(t, e.LoadString(`presets.c = { sides = 8 }`))
	assert.Equal(t, []string{"a", "b", "c"}, e.PresetNames())
}

func TestMissingDirectory(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "none"), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()
	assert.Empty(t, e.PresetNames())
}

func TestBadScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.lua"), []byte(`presets.x = {`), 0o600))
	_, err := NewEngine(dir, zap.NewNop())
	assert.Error(t, err)
}

func TestConcurrentPresets(t *testing.T) {
	e := newEngine(t, map[string]string{
		"a.lua": `presets.d6 = function() return { sides = 6 } end`,
	})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				req, err := e.Preset("d6")
				if err != nil || req.Sides == nil || *req.Sides != 6 {
					t.Errorf("Preset(d6) = %+v, %v", req, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestShippedPresets(t *testing.T) {
	e, err := NewEngine(filepath.Join("..", "..", "scripts", "presets"), zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	assert.Contains(t, e.PresetNames(), "fireball")
	req, err := e.Preset("percentile")
	require.NoError(t, err)
	require.NotNil(t, req.Sides)
	assert.Equal(t, 100, *req.Sides)
}
