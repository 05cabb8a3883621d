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

// Package bump provides reclaimable bump allocators backed by a
// caller-supplied buffer.
//
// # Design
//
// Both [BumpArena] and [AtomicBumpArena] serve allocations by moving a
// single "head" pointer downward from the top of a fixed buffer, towards
// its base. This makes the hot path a single masked subtraction instead of
// the align-then-add-then-overflow-check dance that upward growth needs.
//
// Individual calls to Release do not reclaim memory: the arena only resets
// its head back to the top of the buffer when the live allocation count
// returns to zero. This means the arena behaves like a stack of
// same-lifetime allocations that are all freed together, rather than a
// general-purpose allocator; callers that need fine-grained reclaim should
// use a different allocator.
//
// Unlike [internal/arena.Arena] in the broader hyperpb lineage this package
// descends from, a BumpArena never grows: its buffer is supplied once by
// the caller and is never replaced, and it never stores GC-traceable
// pointers, so it carries none of the chunk-growth or reflect-based
// traceable-allocation machinery that a growable arena needs.
package bump

import (
	"unsafe"

	"example.com/noheap/internal/debug"
	"example.com/noheap/internal/xunsafe"
)

// BumpArena is a single-threaded bump allocator backed by a fixed buffer.
//
// A zero BumpArena is not ready to use; construct one with [NewArena].
//
// A BumpArena must not be used concurrently from multiple goroutines; see
// [AtomicBumpArena] for a lock-free variant that can be.
type BumpArena struct {
	_ xunsafe.NoCopy

	lower, upper xunsafe.Addr[byte]
	head         xunsafe.Addr[byte]
	count        int
}

// NewArena constructs a BumpArena backed by buf.
//
// buf's backing array must not be accessed by any other means while the
// arena is live: the arena treats the entire buffer as its own, and hands
// out pointers into it that alias buf.
func NewArena(buf []byte) *BumpArena {
	var lower xunsafe.Addr[byte]
	if len(buf) > 0 {
		lower = xunsafe.AddrOf(&buf[0])
	}
	upper := lower.Add(len(buf))

	a := &BumpArena{
		lower: lower,
		upper: upper,
		head:  upper,
	}
	return xunsafe.Escape(a)
}

// Count returns the number of outstanding (not yet released) allocations.
func (a *BumpArena) Count() int { return a.count }

// Stats returns the current head offset from the buffer's base and the
// live allocation count, for tests and diagnostics.
func (a *BumpArena) Stats() (headOffset, live int) {
	return a.head.Sub(a.lower), a.count
}

// Alloc serves an aligned allocation of size bytes.
//
// align must be a power of two; this is a caller contract, not checked.
//
// A zero-size request always succeeds, returning a non-nil, well-aligned
// pointer that must not be dereferenced, and performs no state change: it
// neither moves head nor increments the live count.
//
// If the request does not fit in the remaining buffer, Alloc returns
// ([unsafe.Pointer)(nil), [ErrOutOfMemory]) and leaves the arena's state
// unchanged.
func (a *BumpArena) Alloc(size, align int) (unsafe.Pointer, error) {
	if size == 0 {
		return unsafe.Pointer(&zeroSize), nil
	}

	newHead, ok := roundedHead(a.head, size, align, a.lower)
	if !ok {
		return nil, ErrOutOfMemory
	}

	oldHead := a.head
	a.head = newHead
	a.count++
	debug.Log(nil, "alloc", "%v:%v, %d:%d", newHead, oldHead, size, align)

	p := newHead.AssertValid()
	xunsafe.Ping(p)
	return unsafe.Pointer(p), nil
}

// Release gives back an allocation of size bytes previously returned by
// Alloc.
//
// A zero-size release is a no-op. Otherwise the live count is decremented;
// if this is the transition from one live allocation to zero, the arena's
// head resets to the top of the buffer, making the whole buffer available
// again.
//
// Releasing a pointer that was not returned by this arena's Alloc, or
// releasing more allocations than were made, is a caller-contract
// violation: debug builds assert on count underflow, release builds leave
// the arena in an inconsistent (unspecified) state.
func (a *BumpArena) Release(size int) {
	if size == 0 {
		return
	}

	debug.Assert(a.count > 0, "bump: Release called with no outstanding allocations")
	a.count--
	if a.count == 0 {
		a.head = a.upper
	}
}

// New allocates a value of type T on the arena and returns a pointer to it,
// or ok=false if the arena is out of memory.
//
// T must not contain any pointers: the arena's buffer is ordinary
// non-pointer memory, so storing a pointer in it would be invisible to the
// garbage collector.
func New[T any](a *BumpArena, value T) (ptr *T, ok bool) {
	size, align := xunsafe.Size[T](), xunsafe.Align[T]()
	p, err := a.Alloc(size, align)
	if err != nil {
		return nil, false
	}

	typed := (*T)(p)
	*typed = value
	return typed, true
}

// roundedHead computes the new head for an allocation of size bytes aligned
// to align, rounding down from head. It reports ok=false if the result
// would underflow or fall below lower.
func roundedHead(head xunsafe.Addr[byte], size, align int, lower xunsafe.Addr[byte]) (xunsafe.Addr[byte], bool) {
	if uintptr(head) < uintptr(size) {
		// Would underflow the address space entirely.
		return 0, false
	}

	newHead := (head - xunsafe.Addr[byte](size)).RoundDownTo(align)
	if newHead < lower {
		return 0, false
	}

	return newHead, true
}

// zeroSize is the address handed out for all zero-size allocations: it is
// never dereferenced, but must be non-nil and well-aligned for any type.
var zeroSize uint64
