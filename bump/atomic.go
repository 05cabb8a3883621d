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

package bump

import (
	"sync/atomic"
	"unsafe"

	"example.com/noheap/internal/debug"
	"example.com/noheap/internal/xunsafe"
)

// AtomicBumpArena is the concurrent counterpart to [BumpArena]: many
// goroutines may call Alloc and Release on the same *AtomicBumpArena at
// once.
//
// It uses the same downward-growing, reset-on-zero-count scheme as
// BumpArena, implemented with a compare-and-swap retry loop over the head
// pointer instead of a mutex. Go's memory model makes every access to a
// single atomic variable sequentially consistent with every other access to
// that variable, which is strictly stronger than the acquire/release
// orderings a lock-free allocator needs in C or Rust; this implementation
// does not attempt to weaken those orderings, since Go does not expose a way
// to do so, and the cost of the extra ordering is not on the fast path here.
type AtomicBumpArena struct {
	_ xunsafe.NoCopy

	lower, upper xunsafe.Addr[byte]
	head         atomic.Uintptr
	count        atomic.Int64
}

// NewAtomicArena constructs an AtomicBumpArena backed by buf, following the
// same aliasing rules as [NewArena].
func NewAtomicArena(buf []byte) *AtomicBumpArena {
	var lower xunsafe.Addr[byte]
	if len(buf) > 0 {
		lower = xunsafe.AddrOf(&buf[0])
	}
	upper := lower.Add(len(buf))

	a := &AtomicBumpArena{lower: lower, upper: upper}
	a.head.Store(uintptr(upper))
	return xunsafe.Escape(a)
}

// Count returns a snapshot of the number of outstanding allocations.
func (a *AtomicBumpArena) Count() int { return int(a.count.Load()) }

// Stats returns a snapshot of the current head offset from the buffer's
// base and the live allocation count.
func (a *AtomicBumpArena) Stats() (headOffset, live int) {
	return xunsafe.Addr[byte](a.head.Load()).Sub(a.lower), int(a.count.Load())
}

// Alloc serves an aligned allocation of size bytes, as [BumpArena.Alloc],
// and is safe to call concurrently with other calls to Alloc and Release.
func (a *AtomicBumpArena) Alloc(size, align int) (unsafe.Pointer, error) {
	if size == 0 {
		return unsafe.Pointer(&zeroSize), nil
	}

	for {
		head := xunsafe.Addr[byte](a.head.Load())
		newHead, ok := roundedHead(head, size, align, a.lower)
		if !ok {
			return nil, ErrOutOfMemory
		}

		if a.head.CompareAndSwap(uintptr(head), uintptr(newHead)) {
			a.count.Add(1)
			debug.Log(nil, "alloc", "%v:%v, %d:%d", newHead, head, size, align)
			p := newHead.AssertValid()
			xunsafe.Ping(p)
			return unsafe.Pointer(p), nil
		}
		// Lost the race with another Alloc or Release; reload and retry.
	}
}

// Release gives back an allocation of size bytes, as [BumpArena.Release],
// and is safe to call concurrently with other calls to Alloc and Release.
//
// Only the goroutine whose Release transitions the live count from one to
// zero resets head; this keeps the reset itself race-free without any
// additional synchronization, since that goroutine is guaranteed to be the
// unique last releaser.
func (a *AtomicBumpArena) Release(size int) {
	if size == 0 {
		return
	}

	prev := a.count.Add(-1) + 1
	debug.Assert(prev > 0, "bump: Release called with no outstanding allocations")
	if prev == 1 {
		a.head.Store(uintptr(a.upper))
	}
}

// NewAtomic allocates a value of type T on the arena and returns a pointer
// to it, or ok=false if the arena is out of memory. See [New] for the
// no-pointers contract on T.
func NewAtomic[T any](a *AtomicBumpArena, value T) (ptr *T, ok bool) {
	size, align := xunsafe.Size[T](), xunsafe.Align[T]()
	p, err := a.Alloc(size, align)
	if err != nil {
		return nil, false
	}

	typed := (*T)(p)
	*typed = value
	return typed, true
}
