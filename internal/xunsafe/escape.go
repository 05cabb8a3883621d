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

var (
	alwaysFalse bool
	sink        unsafe.Pointer //nolint:unused
)

// Escape forces p to be treated as escaping to the heap by the compiler's
// escape analysis. bump.NewArena and bump.NewAtomicArena use this on the
// arena header itself, since Alloc is about to hand out pointers derived
// from it that must outlive the stack frame that constructed it.
func Escape[P ~*E, E any](p P) P {
	if alwaysFalse {
		sink = unsafe.Pointer(p)
	}
	return p
}

// NoEscape hides a pointer from escape analysis, preventing it from being
// promoted to a heap allocation by a conservative compiler pass. Ping uses
// this so that a prefetch hint never itself causes an allocation.
func NoEscape[P ~*E, E any](p P) P {
	//nolint:staticcheck // false positive: xor with 0 is the whole trick.
	return P((AddrOf(p) ^ 0).AssertValid())
}

// Ping reminds the processor that *p should be loaded into the data cache,
// without forcing p to escape to the heap.
func Ping[P ~*E, E any](p P) {
	_ = *NoEscape(p)
}
