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

package dbcell

// The cell's entire synchronization state lives in one atomic 32-bit word,
// split into five bitfields:
//
//   - W (bits 0-1): which slot, if any, currently has a writer in flight.
//   - R (bits 2-3): which slot, if any, currently has readers attached.
//   - RC (bits 6-14): the number of readers currently attached to the R
//     slot.
//   - P (bits 4-5): which slot a new reader should prefer, and therefore
//     which slot a new writer should avoid.
//   - BACKOFF (bit 15): set by a writer that had to pick the slot a reader
//     is about to prefer, telling new readers to wait rather than read
//     stale data out from under the writer repeatedly.
const (
	wmask uint32 = 0x0003
	wsh   uint32 = 0
	flagW1 uint32 = 0x0001
	flagW2 uint32 = 0x0002

	rmask uint32 = 0x000C
	rsh   uint32 = 2
	flagR1 uint32 = 0x0004
	flagR2 uint32 = 0x0008

	rcmask uint32 = 0x7FC0
	rcsh   uint32 = 6

	pmask uint32 = 0x0030
	psh   uint32 = 4
	flagP1 uint32 = 0x0010
	flagP2 uint32 = 0x0020

	flagBackoff uint32 = 0x8000
)

// Combined flag states used by the match arms in Read and WriteUncontended,
// named the same way as the bit patterns they represent.
const (
	w1p1   = flagW1 | flagP1
	w1p2   = flagW1 | flagP2
	w1r2p1 = flagW1 | flagR2 | flagP1
	w1r2p2 = flagW1 | flagR2 | flagP2
	w2p1   = flagW2 | flagP1
	w2p2   = flagW2 | flagP2
	w2r1p1 = flagW2 | flagR1 | flagP1
	w2r1p2 = flagW2 | flagR1 | flagP2
	r1p1   = flagR1 | flagP1
	r1p2   = flagR1 | flagP2
	r2p1   = flagR2 | flagP1
	r2p2   = flagR2 | flagP2
	p1     = flagP1
	p2     = flagP2
)
