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

// Package zc provides helpers for working with zero-copy ranges into a
// shared backing array. schemajson uses it to represent borrowed string
// tokens without ever copying out of the input buffer.
package zc

import (
	"fmt"
	"math"
	"unsafe"

	"example.com/noheap/internal/debug"
	"example.com/noheap/internal/xunsafe"
)

// Range is a []byte relative to some larger byte array, such as the JSON
// input a schemajson.Parser is scanning.
//
// This is a packed representation with the layout
//
//	struct {
//	  offset, len uint32
//	}
//
// The zero value faithfully represents an empty slice at offset 0.
type Range uint64

// New creates a Range over src describing the subslice [start:start+len).
func New(src, start *byte, length int) Range {
	offset := xunsafe.AddrOf(start).Sub(xunsafe.AddrOf(src))
	return NewRaw(offset, length)
}

// NewRaw builds a Range directly out of an offset and a length.
func NewRaw(offset, length int) Range {
	debug.Assert(offset >= 0 && offset <= math.MaxUint32 && length >= 0 && length <= math.MaxUint32,
		"offset/len too large for zc.Range: [%d:%d]", offset, length)
	return Range(uint32(offset)) | Range(uint32(length))<<32
}

// Start returns the start offset of this slice within its source.
func (r Range) Start() int { return int(uint32(r)) }

// End returns the end offset of this slice within its source.
func (r Range) End() int { return r.Start() + r.Len() }

// Len returns the length of this Range.
func (r Range) Len() int { return int(r >> 32) }

// Bytes converts this Range into a byte slice, given its source.
func (r Range) Bytes(src *byte) []byte {
	if r.Len() == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(xunsafe.AddrOf(src).Add(r.Start()).AssertValid()), r.Len())
}

// String converts this Range into a string, given its source, without
// copying.
func (r Range) String(src *byte) string {
	if r.Len() == 0 {
		return ""
	}
	return xunsafe.String((*byte)(xunsafe.AddrOf(src).Add(r.Start()).AssertValid()), r.Len())
}

// Format implements fmt.Formatter.
func (r Range) Format(s fmt.State, verb rune) {
	fmt.Fprintf(s, fmt.FormatString(s, verb), fmt.Sprintf("[%d:%d]", r.Start(), r.End()))
}
