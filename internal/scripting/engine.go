package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ayuyan/bot/internal/dice"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// ErrUnknownPreset indicates no script defines the requested preset.
var ErrUnknownPreset = errors.New("scripting: unknown preset")

// Engine wraps a single gopher-lua VM holding the roll presets. A mutex
// serialises VM access so presets can be resolved from concurrent requests.
type Engine struct {
	mu  sync.Mutex
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every script in scriptsDir.
// A missing directory yields an engine with no presets.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	vm.SetGlobal("presets", vm.NewTable())

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load preset scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs a Lua chunk, typically one defining more presets.
func (e *Engine) LoadString(src string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vm.DoString(src)
}

// Preset resolves a named preset into a roll request. A preset is either a
// table {count=, sides=, modifier=, sum=} or a function returning one.
// Absent fields are left nil so the roller applies its defaults.
func (e *Engine) Preset(name string) (dice.RollRequest, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	presets, ok := e.vm.GetGlobal("presets").(*lua.LTable)
	if !ok {
		return dice.RollRequest{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	v := presets.RawGetString(name)
	if fn, ok := v.(*lua.LFunction); ok {
		if err := e.vm.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, lua.LString(name)); err != nil {
			e.log.Error("lua preset error", zap.String("preset", name), zap.Error(err))
			return dice.RollRequest{}, fmt.Errorf("preset %q: %w", name, err)
		}
		v = e.vm.Get(-1)
		e.vm.Pop(1)
	}

	t, ok := v.(*lua.LTable)
	if !ok {
		return dice.RollRequest{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return dice.RollRequest{
		Count:    lOptInt(t, "count"),
		Sides:    lOptInt(t, "sides"),
		Modifier: lOptInt(t, "modifier"),
		Sum:      lOptBool(t, "sum"),
	}, nil
}

// PresetNames returns the defined preset names in sorted order.
func (e *Engine) PresetNames() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	presets, ok := e.vm.GetGlobal("presets").(*lua.LTable)
	if !ok {
		return nil
	}
	var names []string
	presets.ForEach(func(k, _ lua.LValue) {
		if s, ok := k.(lua.LString); ok {
			names = append(names, string(s))
		}
	})
	sort.Strings(names)
	return names
}

// --- Lua helpers ---

// lOptInt reads an optional integer field from a Lua table.
func lOptInt(t *lua.LTable, key string) *int {
	n, ok := t.RawGetString(key).(lua.LNumber)
	if !ok {
		return nil
	}
	v := int(n)
	return &v
}

// lOptBool reads an optional boolean field from a Lua table.
func lOptBool(t *lua.LTable, key string) *bool {
	b, ok := t.RawGetString(key).(lua.LBool)
	if !ok {
		return nil
	}
	v := bool(b)
	return &v
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vm.Close()
}
