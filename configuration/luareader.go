// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - Lua configuration files
//
// The file runs with the standard Lua libraries and must return one
// table, which is copied onto a structure through its "gluamapper"
// tags.  Besides arg[0] (the file name) the script sees:
//
//   config_dir            directory holding the configuration file
//   getenv_or(name, def)  environment variable or def when unset
package configuration

import (
	"os"
	"path/filepath"
	"reflect"

	"github.com/pkg/errors"
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/bitmark-inc/bulletind/fault"
)

var mapper = gluamapper.Mapper{
	Option: gluamapper.Option{
		NameFunc: func(s string) string { return s },
		TagName:  "gluamapper",
	},
}

// ParseConfigurationFile - run fileName and store its result table
// into the structure that config points to
func ParseConfigurationFile(fileName string, config interface{}) error {
	if v := reflect.ValueOf(config); v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fault.InvalidStructPointer
	}

	L := newState(fileName)
	defer L.Close()

	if err := L.DoFile(fileName); nil != err {
		return errors.Wrapf(err, "execute: %q", fileName)
	}

	result, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		return fault.ConfigurationNotFound
	}

	if err := mapper.Map(result, config); nil != err {
		return errors.Wrapf(err, "map: %q", fileName)
	}
	return nil
}

func newState(fileName string) *lua.LState {
	L := lua.NewState()
	L.OpenLibs()

	arg := L.NewTable()
	arg.RawSetInt(0, lua.LString(fileName))
	L.SetGlobal("arg", arg)

	L.SetGlobal("config_dir", lua.LString(filepath.Dir(fileName)))
	L.SetGlobal("getenv_or", L.NewFunction(getenvOr))

	return L
}

func getenvOr(L *lua.LState) int {
	name := L.CheckString(1)
	def := L.OptString(2, "")
	if value, ok := os.LookupEnv(name); ok {
		L.Push(lua.LString(value))
	} else {
		L.Push(lua.LString(def))
	}
	return 1
}
