package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the tunable game rules
// (difficulty curves). Single-goroutine access only (simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
// Missing subdirectories are skipped, so an empty scripts dir yields an engine
// with no hooks and every caller falls back to its built-in rule.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	for _, sub := range []string{"core", "rules"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			e.vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// NewEngineFromSource creates an engine from a single chunk of Lua source.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("load lua source: %w", err)
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
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

// GrowthContext is the input to the growth_step hook.
type GrowthContext struct {
	Step    time.Duration // current step duration
	Length  int           // chain length after growth, head included
	Speedup float64       // configured multiplier, for scripts that only tweak it
}

// GrowthStep calls Lua growth_step(ctx) and returns the new step duration.
// ok is false when the hook is absent or fails; the caller then applies its
// built-in speed-up.
func (e *Engine) GrowthStep(ctx GrowthContext) (time.Duration, bool) {
	fn := e.vm.GetGlobal("growth_step")
	if fn == lua.LNil {
		return 0, false
	}

	t := e.vm.NewTable()
	t.RawSetString("step_ms", lua.LNumber(float64(ctx.Step)/float64(time.Millisecond)))
	t.RawSetString("length", lua.LNumber(ctx.Length))
	t.RawSetString("speedup", lua.LNumber(ctx.Speedup))

	ms, ok := e.callNumber(fn, "growth_step", t)
	if !ok || ms <= 0 {
		return 0, false
	}
	return time.Duration(ms * float64(time.Millisecond)), true
}

// SpawnInterval calls Lua spawn_interval(elapsed_s, base_s) and returns how
// long the asteroid spawner waits before the next rock.
func (e *Engine) SpawnInterval(elapsed, base time.Duration) (time.Duration, bool) {
	fn := e.vm.GetGlobal("spawn_interval")
	if fn == lua.LNil {
		return 0, false
	}
	s, ok := e.callNumber(fn, "spawn_interval", lua.LNumber(elapsed.Seconds()), lua.LNumber(base.Seconds()))
	if !ok || s <= 0 {
		return 0, false
	}
	return time.Duration(s * float64(time.Second)), true
}

func (e *Engine) callNumber(fn lua.LValue, name string, args ...lua.LValue) (float64, bool) {
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		e.log.Error("lua call failed", zap.String("func", name), zap.Error(err))
		return 0, false
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok {
		e.log.Error("lua returned non-number", zap.String("func", name), zap.String("type", ret.Type().String()))
		return 0, false
	}
	return float64(n), true
}

func (e *Engine) Close() {
	e.vm.Close()
}
