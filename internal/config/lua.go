package config

import (
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/macrokey/internal/action"
	"github.com/dshills/macrokey/internal/input"
	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

const actionTypeName = "macrokey.action"

// ScriptEngine runs Lua binding scripts. Scripts call bind(keys, act)
// with actions built from the registered constructor functions.
type ScriptEngine struct {
	swallow  bool
	bindings []CompiledBinding
}

// NewScriptEngine creates a script engine. swallow is the default
// pass-through policy for bindings that do not set their own.
func NewScriptEngine(swallow bool) *ScriptEngine {
	return &ScriptEngine{swallow: swallow}
}

// Bindings returns the bindings collected from all scripts run so far.
func (e *ScriptEngine) Bindings() []CompiledBinding {
	return e.bindings
}

// RunFile executes a Lua binding script from a file.
func (e *ScriptEngine) RunFile(path string) error {
	L := e.newState()
	defer L.Close()
	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrScript, path, err)
	}
	return nil
}

// RunString executes a Lua binding script from source.
func (e *ScriptEngine) RunString(src string) error {
	L := e.newState()
	defer L.Close()
	if err := L.DoString(src); err != nil {
		return fmt.Errorf("%w: %v", ErrScript, err)
	}
	return nil
}

func (e *ScriptEngine) newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: false})

	mt := L.NewTypeMetatable(actionTypeName)
	L.SetGlobal(actionTypeName, mt)

	L.SetGlobal("bind", L.NewFunction(e.luaBind))
	L.SetGlobal("press", L.NewFunction(luaPress))
	L.SetGlobal("click", L.NewFunction(luaClick))
	L.SetGlobal("hold", L.NewFunction(luaHold))
	L.SetGlobal("release", L.NewFunction(luaRelease))
	L.SetGlobal("text", L.NewFunction(luaText))
	L.SetGlobal("delay", L.NewFunction(luaDelay))
	L.SetGlobal("random_delay", L.NewFunction(luaRandomDelay))
	L.SetGlobal("seq", L.NewFunction(luaSeq))
	L.SetGlobal("repeat_while_held", L.NewFunction(luaRepeat))

	return L
}

// pushAction wraps an action in userdata with the action metatable.
func pushAction(L *lua.LState, act *action.Action) int {
	ud := L.NewUserData()
	ud.Value = act
	L.SetMetatable(ud, L.GetTypeMetatable(actionTypeName))
	L.Push(ud)
	return 1
}

// checkAction extracts an action from the argument at position n.
func checkAction(L *lua.LState, n int) *action.Action {
	ud := L.CheckUserData(n)
	if act, ok := ud.Value.(*action.Action); ok {
		return act
	}
	L.ArgError(n, "action expected")
	return nil
}

func (e *ScriptEngine) luaBind(L *lua.LState) int {
	keys := L.CheckString(1)
	act := checkAction(L, 2)

	swallow := e.swallow
	if L.GetTop() >= 3 {
		opts := L.CheckTable(3)
		if v := opts.RawGetString("swallow"); v != lua.LNil {
			swallow = lua.LVAsBool(v)
		}
	}

	hk, err := input.ParseHotkey(keys)
	if err != nil {
		L.RaiseError("bind: %v", err)
		return 0
	}
	if err := act.Validate(); err != nil {
		L.RaiseError("bind %q: %v", keys, err)
		return 0
	}

	e.bindings = append(e.bindings, CompiledBinding{
		Hotkey:  hk,
		Action:  act,
		Swallow: swallow,
	})
	return 0
}

func checkKey(L *lua.LState, n int) key.Key {
	name := L.CheckString(n)
	k := key.FromName(name)
	if k == key.KeyNone {
		L.ArgError(n, fmt.Sprintf("unknown key %q", name))
	}
	return k
}

func luaPress(L *lua.LState) int {
	return pushAction(L, action.PressKey(checkKey(L, 1)))
}

func luaHold(L *lua.LState) int {
	return pushAction(L, action.HoldKey(checkKey(L, 1)))
}

func luaRelease(L *lua.LState) int {
	return pushAction(L, action.ReleaseKey(checkKey(L, 1)))
}

func luaClick(L *lua.LState) int {
	name := L.CheckString(1)
	b := mouse.FromName(name)
	if b == mouse.ButtonNone {
		L.ArgError(1, fmt.Sprintf("unknown mouse button %q", name))
	}
	return pushAction(L, action.Click(b))
}

func luaText(L *lua.LState) int {
	return pushAction(L, action.TypeText(L.CheckString(1)))
}

func luaDelay(L *lua.LState) int {
	ms := L.CheckInt64(1)
	return pushAction(L, action.Delay(time.Duration(ms)*time.Millisecond))
}

func luaRandomDelay(L *lua.LState) int {
	minMs := L.CheckInt64(1)
	maxMs := L.CheckInt64(2)
	return pushAction(L, action.RandomDelay(
		time.Duration(minMs)*time.Millisecond,
		time.Duration(maxMs)*time.Millisecond,
	))
}

func collectSteps(L *lua.LState, from int) []*action.Action {
	steps := make([]*action.Action, 0, L.GetTop()-from+1)
	for i := from; i <= L.GetTop(); i++ {
		steps = append(steps, checkAction(L, i))
	}
	return steps
}

func luaSeq(L *lua.LState) int {
	return pushAction(L, action.Sequence(collectSteps(L, 1)...))
}

func luaRepeat(L *lua.LState) int {
	ms := L.CheckInt64(1)
	steps := collectSteps(L, 2)
	return pushAction(L, action.RepeatWhileHeld(
		time.Duration(ms)*time.Millisecond, steps...))
}
