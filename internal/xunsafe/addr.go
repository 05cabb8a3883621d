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

// Package xunsafe provides a small, typed layer over Go's unsafe package,
// used by the bump allocator and the zero-copy JSON scanner.
package xunsafe

import (
	"fmt"
	"unsafe"

	"example.com/noheap/internal/xunsafe/layout"
)

// NoCopy is a type that go vet's copylocks check will complain about having
// been copied, by virtue of implementing sync.Locker's method set shape.
type NoCopy [0]noCopyLock

type noCopyLock struct{}

func (*noCopyLock) Lock()   {}
func (*noCopyLock) Unlock() {}

// Addr is a typed raw address: an integer that is known to have come from
// (or point into) a value of type T, without holding a live pointer that the
// GC needs to track.
type Addr[T any] uintptr

// AddrOf gets the address of a pointer.
func AddrOf[P ~*E, E any](p P) Addr[E] {
	return Addr[E](uintptr(unsafe.Pointer(p)))
}

// AssertValid reinterprets this address as a live pointer.
//
// The caller is asserting that the memory this address refers to is still
// reachable through some other root; xunsafe does nothing to verify this.
func (a Addr[T]) AssertValid() *T {
	return (*T)(unsafe.Pointer(a)) //nolint:govet // by design: typed raw address.
}

// Add adds n elements' worth of offset (n*sizeof(T)) to this address.
func (a Addr[T]) Add(n int) Addr[T] {
	return a + Addr[T](n*layout.Size[T]())
}

// Sub computes the number of T-sized elements between a and b.
func (a Addr[T]) Sub(b Addr[T]) int {
	return int(a-b) / layout.Size[T]()
}

// RoundDownTo rounds this address down to the previous address aligned to
// align, which must be a power of two.
func (a Addr[T]) RoundDownTo(align int) Addr[T] {
	return Addr[T](layout.RoundDown(int(a), align))
}

// Misalign returns the byte offsets to the previous and next addresses
// aligned to align, which must be a power of two. If a is already aligned,
// both are zero.
func (a Addr[T]) Misalign(align int) (prev, next int) {
	addr := int(a)
	prev = addr & (align - 1)
	next = (align - addr) & (align - 1)
	return prev, next
}

// Format implements fmt.Formatter, printing addresses in hex.
func (a Addr[T]) Format(state fmt.State, verb rune) {
	if verb == 'v' {
		fmt.Fprintf(state, "%#x", uintptr(a))
		return
	}
	fmt.Fprintf(state, fmt.FormatString(state, verb), uintptr(a))
}
