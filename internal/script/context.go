package script

import (
	"github.com/Shopify/go-lua"
	"github.com/tidwall/gjson"

	"github.com/boardsmith/boardsmith/internal/action"
	"github.com/boardsmith/boardsmith/internal/element"
)

// pushContext pushes a Lua table describing ctx (player seat, in-progress
// args, and the candidate item when the predicate is a Disabled/Filter
// check) and assigns it as the chunk's "ctx" global, the same
// table-as-namespace convention the teacher's scenario bindings use for
// Scenario/Modifiers.
func pushContext(state *lua.State, ctx *action.Context, item any) {
	state.NewTable()

	if ctx.Player != nil {
		state.PushInteger(ctx.Player.Seat)
		state.SetField(-2, "seat")
	}

	pushValue(state, ctx.Args)
	state.SetField(-2, "args")

	if item != nil {
		pushItem(state, item)
		state.SetField(-2, "item")
	}
}

// registerHelpers installs a read-only "Game" global exposing the handful
// of tree queries a predicate plausibly needs, mirroring the teacher's
// pattern of a global table of RegistryFunctions (Modifiers.mod/hope) rather
// than exposing raw Go objects to the script.
func registerHelpers(state *lua.State, game *element.Game) {
	// Register the element userdata's metatable in this state's registry
	// before anything pushes a *element.GameElement as userdata: go-lua's
	// SetMetaTableNamed looks the name up in the registry and panics if it
	// was never registered with NewMetaTable first. Every call into this
	// package gets a brand-new lua.State (see script.go), so this has to
	// run once per state, not once per process.
	lua.NewMetaTable(state, elementTypeName)
	state.Pop(1)

	helpers := []lua.RegistryFunction{
		{Name: "count", Function: func(s *lua.State) int {
			class := lua.CheckString(s, 1)
			s.PushInteger(game.Count(class))
			return 1
		}},
		{Name: "attr", Function: func(s *lua.State) int {
			ud := lua.CheckUserData(s, 1, elementTypeName)
			el, ok := ud.(*element.GameElement)
			if !ok || el == nil {
				lua.ArgumentError(s, 1, "element expected")
				return 0
			}
			key := lua.CheckString(s, 2)
			pushGJSON(s, el.Attr(key))
			return 1
		}},
	}
	state.NewTable()
	lua.SetFunctions(state, helpers, 0)
	state.SetGlobal("Game")
}

const elementTypeName = "boardsmith.element"

// pushItem pushes item (typically the candidate of a Disabled/Filter check)
// as either a userdata handle (for an element, so Game.attr can inspect it)
// or a plain value.
func pushItem(state *lua.State, item any) {
	if el, ok := item.(*element.GameElement); ok {
		state.PushUserData(el)
		lua.SetMetaTableNamed(state, elementTypeName)
		return
	}
	pushValue(state, item)
}

// pushValue converts a Go value into the equivalent Lua value, the mirror of
// the teacher's luaToGo/tableToGo conversion.
func pushValue(state *lua.State, v any) {
	switch value := v.(type) {
	case nil:
		state.PushNil()
	case bool:
		state.PushBoolean(value)
	case string:
		state.PushString(value)
	case int:
		state.PushInteger(value)
	case int64:
		state.PushInteger(int(value))
	case float64:
		state.PushNumber(value)
	case map[string]any:
		state.NewTable()
		for k, item := range value {
			pushValue(state, item)
			state.SetField(-2, k)
		}
	case []any:
		state.NewTable()
		for i, item := range value {
			pushValue(state, item)
			state.RawSetInt(-2, i+1)
		}
	default:
		state.PushNil()
	}
}

// pushGJSON converts a gjson.Result (the element attribute accessor's
// return type) into the matching Lua value.
func pushGJSON(state *lua.State, result gjson.Result) {
	switch result.Type {
	case gjson.String:
		state.PushString(result.Str)
	case gjson.Number:
		state.PushNumber(result.Num)
	case gjson.True:
		state.PushBoolean(true)
	case gjson.False:
		state.PushBoolean(false)
	case gjson.JSON:
		pushValue(state, result.Value())
	default:
		state.PushNil()
	}
}
