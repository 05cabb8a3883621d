// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build !debug

// Package debug includes debugging helpers shared by the bump, dbcell, and
// schemajson packages.
//
// This is the release build of the package: Assert and Log compile down to
// nothing, so none of its callers pay for contract-violation checks or trace
// logging outside of a `-tags debug` build.
package debug

// Enabled is false in release builds.
const Enabled = false

// Log is a no-op in release builds.
func Log(context []any, operation string, format string, args ...any) {}

// Assert is a no-op in release builds. Contract violations it would have
// caught are undefined behavior here, per the caller contracts documented on
// bump.BumpArena, bump.AtomicBumpArena, and dbcell.Cell.
func Assert(cond bool, format string, args ...any) {}

// Value is a value of any type that only exists when the debug tag is
// enabled. In release builds it carries no storage.
type Value[T any] struct{}

// Get panics: Value has no storage outside of debug builds.
func (v *Value[T]) Get() *T { panic("noheap: debug.Value used outside of a debug build") }
