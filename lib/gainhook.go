//----------------------------------------------------------------------
// This file is part of antgen.
// Copyright (C) 2024-present Bernd Fix >Y<,  DO3YQ
//
// antgen is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// antgen is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package lib

import (
	"fmt"
	"plugin"

	lua "github.com/Shopify/go-lua"
)

// GainHook overrides the isotropic-antenna assumption (§1 Non-goals:
// "a pluggable gain hook is declared but not specified further").
// angle is the ray's launch angle in radians; Gain returns a linear
// multiplier applied to the launch amplitude.
type GainHook interface {
	Gain(angle float64) float64
}

//----------------------------------------------------------------------
// LUA-scripted gain hook
//----------------------------------------------------------------------

// LuaGainHook evaluates a user-supplied LUA script on every call: the
// script reads the global `angle` and reports its result via the
// registered `setGain` callback.
type LuaGainHook struct {
	script string
	state  *lua.State
	result float64
}

// NewLuaGainHook prepares script as a gain hook.
func NewLuaGainHook(script string) (*LuaGainHook, error) {
	h := &LuaGainHook{script: script, state: lua.NewState()}
	lua.OpenLibraries(h.state)
	return h, nil
}

// Gain runs the script with the current launch angle (radians) bound
// to the global `angle`; the script reports its result by calling
// setGain(value).
func (h *LuaGainHook) Gain(angle float64) float64 {
	h.result = 1
	h.state.PushNumber(angle)
	h.state.SetGlobal("angle")
	h.state.Register("setGain", func(state *lua.State) int {
		v, _ := state.ToNumber(1)
		h.result = v
		return 0
	})
	if err := lua.DoFile(h.state, h.script); err != nil {
		return 1
	}
	return h.result
}

//----------------------------------------------------------------------
// Native Go plugin gain hook
//----------------------------------------------------------------------

// list of known (and loaded) plugins, keyed by shared-object path.
var plugins = make(map[string]*plugin.Plugin)

// GetPlugin by name. If name is prefixed with '@', it references a
// plugin entry in the configuration (Cfg.Plugins).
func GetPlugin(name string) (pi *plugin.Plugin, err error) {
	var ok bool
	if name[0] == '@' {
		key := name[1:]
		if name, ok = Cfg.Plugins[key]; !ok {
			return nil, fmt.Errorf("referenced plugin '%s' not defined", key)
		}
	}
	if pi, ok = plugins[name]; !ok {
		if pi, err = plugin.Open(name); err == nil {
			plugins[name] = pi
		}
	}
	return
}

// GetSymbol from plugin (exported variable or function)
func GetSymbol[T any](pi *plugin.Plugin, name string) (sym T, err error) {
	var f plugin.Symbol
	if f, err = pi.Lookup(name); err == nil {
		sym = f.(T)
	}
	return
}

// PluginGainHook dispatches to a function named "Gain" (signature
// func(float64) float64) exported by a compiled Go plugin.
type PluginGainHook struct {
	fn func(float64) float64
}

// NewPluginGainHook loads soPath and resolves its Gain symbol.
func NewPluginGainHook(soPath string) (*PluginGainHook, error) {
	pi, err := GetPlugin(soPath)
	if err != nil {
		return nil, err
	}
	fn, err := GetSymbol[func(float64) float64](pi, "Gain")
	if err != nil {
		return nil, fmt.Errorf("plugin '%s' does not export Gain: %w", soPath, err)
	}
	return &PluginGainHook{fn: fn}, nil
}

// Gain calls the plugin's exported function.
func (h *PluginGainHook) Gain(angle float64) float64 {
	return h.fn(angle)
}
