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

import (
	"strconv"

	"example.com/noheap/internal/xunsafe"
	"example.com/noheap/internal/zc"
)

// tokenizer turns a byte slice into a stream of tokens, tracking line and
// column for error reporting. It never copies out of src: string tokens
// are returned as [zc.Range]s into it, and number tokens are parsed in
// place into int64 or float64 values.
type tokenizer struct {
	src    []byte
	pos    int
	lineno int
	col    int
}

func newTokenizer(src []byte) *tokenizer {
	return &tokenizer{src: src, lineno: 1}
}

func (t *tokenizer) reset(src []byte) {
	t.src, t.pos, t.lineno, t.col = src, 0, 1, 0
}

func (t *tokenizer) err(kind ErrorKind) *Error {
	return &Error{line: t.lineno, col: t.col, kind: kind}
}

func (t *tokenizer) nextByte() (byte, bool) {
	if t.pos >= len(t.src) {
		return 0, false
	}
	c := t.src[t.pos]
	t.pos++
	t.col++
	return c, true
}

// next returns the next token in src, or ok=false once the input is
// exhausted with no error.
func (t *tokenizer) next() (tok token, err error, ok bool) {
	for {
		c, more := t.nextByte()
		if !more {
			return token{}, nil, false
		}

		switch c {
		case ' ', '\t', '\r':
			continue
		case '\n':
			t.lineno++
			t.col = 0
			continue

		case '{':
			return token{kind: tokBraceL}, nil, true
		case '}':
			return token{kind: tokBraceR}, nil, true
		case '[':
			return token{kind: tokBracketL}, nil, true
		case ']':
			return token{kind: tokBracketR}, nil, true
		case ':':
			return token{kind: tokColon}, nil, true
		case ',':
			return token{kind: tokComma}, nil, true

		case 't':
			if err := t.literal("rue"); err != nil {
				return token{}, err, true
			}
			return token{kind: tokBool, b: true}, nil, true
		case 'f':
			if err := t.literal("alse"); err != nil {
				return token{}, err, true
			}
			return token{kind: tokBool, b: false}, nil, true
		case 'n':
			if err := t.literal("ull"); err != nil {
				return token{}, err, true
			}
			return token{kind: tokNull}, nil, true

		case '"':
			tok, err := t.tokString()
			return tok, err, true

		default:
			if c == '-' || (c >= '0' && c <= '9') {
				tok, err := t.tokNumber()
				return tok, err, true
			}
			return token{}, t.err(UnknownStartOfToken), true
		}
	}
}

func (t *tokenizer) literal(rest string) error {
	for i := 0; i < len(rest); i++ {
		c, ok := t.nextByte()
		if !ok {
			return t.err(UnexpectedEOF)
		}
		if c != rest[i] {
			return t.err(UnknownIdentifier)
		}
	}
	return nil
}

func (t *tokenizer) tokString() (token, error) {
	start := t.pos
	escape := false
	for {
		c, ok := t.nextByte()
		if !ok {
			return token{}, t.err(UnterminatedString)
		}
		if c == '"' && !escape {
			break
		}
		if c == '\\' {
			escape = true
			continue
		}
		if c < 0x20 {
			return token{}, t.err(UnexpectedControlCharacterInString)
		}
		escape = false
	}

	length := t.pos - 1 - start
	return token{kind: tokStr, str: zc.NewRaw(start, length)}, nil
}

// tokNumber scans a number token.
//
// The token ends at the first byte that is not an ASCII digit, '.', or
// '-'; a '.' as the last byte of that span is rejected, since "1." is not
// valid JSON even though Go's strconv happily parses it as a float.
func (t *tokenizer) tokNumber() (token, error) {
	start := t.pos - 1
	length := 1
	isFloat := t.src[start] == '.'

	for t.pos < len(t.src) {
		c := t.src[t.pos]
		if !(c >= '0' && c <= '9' || c == '.' || c == '-') {
			break
		}
		if c == '.' {
			isFloat = true
		}
		t.pos++
		t.col++
		length++
	}

	if t.src[start+length-1] == '.' {
		return token{}, t.err(InvalidNumber)
	}

	raw := xunsafe.BytesToString(t.src[start : start+length])
	if isFloat {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return token{}, t.err(InvalidNumber)
		}
		return token{kind: tokFloat, f: f}, nil
	}

	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return token{}, t.err(InvalidNumber)
	}
	return token{kind: tokInt, i: i}, nil
}
