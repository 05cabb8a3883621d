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

import "example.com/noheap/internal/sync2"

// pool recycles *Parser values, avoiding repeated tokenizer allocation for
// callers that decode many documents back to back with the same maxDepth.
var pool = sync2.Pool[Parser]{
	Reset: func(p *Parser) { p.Reset(nil) },
}

// DecodePooled behaves like [Decode], but serves the Parser from a package
// -level pool instead of constructing a new one.
func DecodePooled(src []byte, schema Schema, maxDepth int) error {
	p, drop := pool.Get()
	defer drop()

	if p.tok == nil {
		p.tok = newTokenizer(nil)
	}
	p.MaxDepth = maxDepth
	p.Reset(src)
	return p.parse(&schema)
}
