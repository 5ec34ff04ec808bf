package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for world generation hooks.
// Single-goroutine access only.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState()

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Shared helpers first, then the hooks that use them
	for _, sub := range []string{"core", "world"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
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

// HasFunc reports whether a global Lua function is defined.
func (e *Engine) HasFunc(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// NaturalRockTypes calls Lua natural_rock_types(tile) and returns the rock
// type names in the order the script lists them. ok is false when the hook
// is missing, fails or returns nothing usable, so the caller can fall back
// to its own table.
func (e *Engine) NaturalRockTypes(tile int) (names []string, ok bool) {
	fn := e.vm.GetGlobal("natural_rock_types")
	if fn == lua.LNil {
		return nil, false
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(tile)); err != nil {
		e.log.Error("lua natural_rock_types error", zap.Int("tile", tile), zap.Error(err))
		return nil, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, isTable := result.(*lua.LTable)
	if !isTable {
		return nil, false
	}
	for i := 1; i <= rt.Len(); i++ {
		if s, isStr := rt.RawGetInt(i).(lua.LString); isStr && s != "" {
			names = append(names, string(s))
		}
	}
	if len(names) == 0 {
		return nil, false
	}
	return names, true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
