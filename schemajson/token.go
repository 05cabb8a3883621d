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

package schemajson

import "example.com/noheap/internal/zc"

// tokenKind enumerates the lexical tokens of the grammar.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokBool
	tokBraceL
	tokBraceR
	tokBracketL
	tokBracketR
	tokColon
	tokComma
	tokFloat
	tokInt
	tokNull
	tokStr
)

// token is a single lexical token, carrying the literal value for the
// token kinds that have one. String tokens hold a [zc.Range] into the
// source buffer rather than a copied string.
type token struct {
	kind  tokenKind
	b     bool
	f     float64
	i     int64
	str   zc.Range
}

func (t token) equalKind(other token) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case tokBool:
		return t.b == other.b
	default:
		return true
	}
}
