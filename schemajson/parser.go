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

import "example.com/noheap/internal/xunsafe"

// Parser is a recursive-descent JSON parser that decodes into a [Schema]
// without allocating for any value it recognizes.
//
// A Parser can be reused across calls to [Parser.Decode] and
// [Parser.Validate] via [Parser.Reset]; see [DecodePooled] for a pooled,
// concurrency-safe way to do this.
type Parser struct {
	tok       *tokenizer
	peek      token
	havePeek  bool
	// MaxDepth bounds the recursion the parser will follow into nested
	// objects before failing with MaxDepthExceeded. Arrays do not count
	// against this limit: parseArray passes its own depth to its elements
	// unchanged, while each nested object adds one. Zero means unlimited.
	MaxDepth int
}

// NewParser constructs a Parser with the given maximum object nesting
// depth. A maxDepth of zero means unlimited.
func NewParser(maxDepth int) *Parser {
	return &Parser{tok: newTokenizer(nil), MaxDepth: maxDepth}
}

// Reset rebinds the parser to a new input buffer, discarding any state left
// over from a previous parse.
func (p *Parser) Reset(src []byte) {
	p.tok.reset(src)
	p.peek = token{}
	p.havePeek = false
}

// Validate reports whether src is well-formed JSON, without decoding any of
// it.
func Validate(src []byte, maxDepth int) error {
	p := NewParser(maxDepth)
	p.Reset(src)
	return p.parse(nil)
}

// Decode parses src and writes the values it contains into schema.
func Decode(src []byte, schema Schema, maxDepth int) error {
	p := NewParser(maxDepth)
	p.Reset(src)
	return p.parse(&schema)
}

// Validate validates the buffer currently bound to p via [Parser.Reset].
func (p *Parser) Validate() error { return p.parse(nil) }

// Decode parses the buffer currently bound to p via [Parser.Reset] into
// schema.
func (p *Parser) Decode(schema Schema) error { return p.parse(&schema) }

func (p *Parser) parse(desc *Schema) error {
	if err := p.parseValue(desc, 0); err != nil {
		return err
	}
	return p.assumeComplete()
}

func (p *Parser) parseValue(desc *Schema, depth int) error {
	tok, err := p.nextTok()
	if err != nil {
		return err
	}

	switch tok.kind {
	case tokBraceL:
		if desc != nil && desc.kind == schemaObject {
			return p.parseObj(desc.obj, depth+1)
		}
		if desc != nil {
			return p.typeError(tok, desc)
		}
		return p.parseObj(nil, depth+1)

	case tokBracketL:
		if desc != nil && desc.kind == schemaArray {
			return p.parseArray(desc.arr, depth)
		}
		if desc != nil {
			return p.typeError(tok, desc)
		}
		return p.parseArray(nil, depth)

	case tokBool:
		if desc == nil {
			return nil
		}
		if desc.kind != schemaBool {
			return p.typeError(tok, desc)
		}
		desc.b.assign(tok.b)
		return nil

	case tokFloat:
		if desc == nil {
			return nil
		}
		if desc.kind != schemaFloat {
			return p.typeError(tok, desc)
		}
		desc.f.assign(tok.f)
		return nil

	case tokInt:
		if desc == nil {
			return nil
		}
		switch desc.kind {
		case schemaFloat:
			desc.f.assign(float64(tok.i))
		case schemaInteger:
			desc.i.assign(tok.i)
		default:
			return p.typeError(tok, desc)
		}
		return nil

	case tokNull:
		if desc != nil {
			desc.clear()
		}
		return nil

	case tokStr:
		if desc == nil {
			return nil
		}
		if desc.kind != schemaString {
			return p.typeError(tok, desc)
		}
		desc.s.assign(xunsafe.BytesToString(tok.str.Bytes(&p.tok.src[0])))
		return nil

	case tokBraceR, tokBracketR, tokComma, tokColon:
		return p.tok.err(UnexpectedToken)

	default:
		return p.tok.err(UnexpectedToken)
	}
}

func (p *Parser) typeError(token, *Schema) error {
	return p.tok.err(MismatchedTypes)
}

func (p *Parser) parseObj(fields []Field, depth int) error {
	if p.MaxDepth > 0 && depth > p.MaxDepth {
		return p.tok.err(MaxDepthExceeded)
	}

	done, err := p.advanceIfTok(token{kind: tokBraceR})
	if err != nil {
		return err
	}
	if done {
		for _, f := range fields {
			f.Schema.clear()
		}
		return nil
	}

	for {
		name, err := p.assumeTokStr()
		if err != nil {
			return err
		}
		if err := p.assumeTokKind(tokColon); err != nil {
			return err
		}

		var field *Schema
		for i := range fields {
			if fields[i].Name == name {
				field = &fields[i].Schema
				break
			}
		}

		if err := p.parseValue(field, depth); err != nil {
			return err
		}

		atEnd, err := p.endOfCollection(token{kind: tokBraceR})
		if err != nil {
			return err
		}
		if atEnd {
			return nil
		}
	}
}

func (p *Parser) parseArray(items []Schema, depth int) error {
	done, err := p.advanceIfTok(token{kind: tokBracketR})
	if err != nil {
		return err
	}
	if done {
		for _, v := range items {
			v.clear()
		}
		return nil
	}

	i := 0
	for {
		var elem *Schema
		if items != nil {
			if i >= len(items) {
				return p.tok.err(InsufficientArrayLength)
			}
			elem = &items[i]
		}

		if err := p.parseValue(elem, depth); err != nil {
			return err
		}

		atEnd, err := p.endOfCollection(token{kind: tokBracketR})
		if err != nil {
			return err
		}
		if atEnd {
			return nil
		}
		i++
	}
}

func (p *Parser) endOfCollection(with token) (bool, error) {
	sawComma, err := p.advanceIfTok(token{kind: tokComma})
	if err != nil {
		return false, err
	}
	sawEnd, err := p.advanceIfTok(with)
	if err != nil {
		return false, err
	}

	switch {
	case !sawComma && sawEnd:
		return true, nil
	case sawComma && !sawEnd:
		return false, nil
	case sawComma && sawEnd:
		return false, p.tok.err(UnexpectedTrailingComma)
	default:
		return false, p.tok.err(MissingComma)
	}
}

func (p *Parser) assumeTokKind(kind tokenKind) error {
	tok, err := p.nextTok()
	if err != nil {
		return err
	}
	if tok.kind != kind {
		return p.tok.err(UnexpectedToken)
	}
	return nil
}

func (p *Parser) assumeTokStr() (string, error) {
	tok, err := p.nextTok()
	if err != nil {
		return "", err
	}
	if tok.kind != tokStr {
		return "", p.tok.err(UnexpectedToken)
	}
	return xunsafe.BytesToString(tok.str.Bytes(&p.tok.src[0])), nil
}

func (p *Parser) assumeComplete() error {
	_, err, ok := p.tok.next()
	if err != nil {
		return err
	}
	if ok {
		return p.tok.err(UnexpectedToken)
	}
	return nil
}

func (p *Parser) advanceIfTok(want token) (bool, error) {
	tok, err := p.peekNextTok()
	if err != nil {
		return false, err
	}
	if tok.equalKind(want) {
		p.havePeek = false
		return true, nil
	}
	return false, nil
}

func (p *Parser) nextTok() (token, error) {
	if p.havePeek {
		p.havePeek = false
		return p.peek, nil
	}

	tok, err, ok := p.tok.next()
	if err != nil {
		return token{}, err
	}
	if !ok {
		return token{}, p.tok.err(UnexpectedEOF)
	}
	return tok, nil
}

func (p *Parser) peekNextTok() (token, error) {
	if p.havePeek {
		return p.peek, nil
	}

	tok, err, ok := p.tok.next()
	if err != nil {
		return token{}, err
	}
	if !ok {
		return token{}, p.tok.err(UnexpectedEOF)
	}

	p.peek = tok
	p.havePeek = true
	return tok, nil
}
