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

package xunsafe

import "unsafe"

// Int is any integer type, including named types whose underlying type is
// an integer. Unlike layout.Int, its terms use ~.
type Int = interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Size returns the size in bytes of T.
func Size[T any]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

// Align returns the required alignment in bytes of T.
func Align[T any]() int {
	var z T
	return int(unsafe.Alignof(z))
}

// BitCast performs an unsafe bitcast from one type to another of the same
// size.
func BitCast[To, From any](v From) To {
	return *(*To)(unsafe.Pointer(&v))
}

// Cast casts a pointer of one type to a pointer of another.
func Cast[To, From any](p *From) *To {
	return (*To)(unsafe.Pointer(p))
}

// Slice builds a []E of the given length out of a raw pointer, via
// unsafe.Slice.
func Slice[P ~*E, E any](p P, length int) []E {
	return unsafe.Slice((*E)(p), length)
}

// String builds a string of the given length out of a raw byte pointer.
func String(p *byte, length int) string {
	return unsafe.String(p, length)
}

// BytesToString reinterprets a []byte as a string with no copy. The caller
// must not mutate b for as long as the returned string is alive.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return String(&b[0], len(b))
}
