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

// Optional holds a value that may or may not have been present in the
// decoded JSON. A zero Optional[T] reports Set == false.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Get returns the held value and whether it was set.
func (o Optional[T]) Get() (T, bool) { return o.Value, o.Set }

func (o *Optional[T]) clear() { *o = Optional[T]{} }
func (o *Optional[T]) assign(v T) {
	o.Value = v
	o.Set = true
}

type schemaKind int

const (
	schemaArray schemaKind = iota
	schemaBool
	schemaFloat
	schemaInteger
	schemaObject
	schemaString
)

// Field is a single named entry of an [Object] schema.
type Field struct {
	Name   string
	Schema Schema
}

// Schema describes how a JSON value should be decoded into Go values. It is
// a closed set of variants, constructed with [Array], [Bool], [Float],
// [Integer], [Object], or [Str].
//
// A Schema does not own the memory it decodes into: each leaf schema holds
// a pointer into a destination struct supplied by the caller, and Decode
// mutates through it in place.
type Schema struct {
	kind schemaKind

	arr []Schema
	obj []Field

	b *Optional[bool]
	f *Optional[float64]
	i *Optional[int64]
	s *Optional[string]
}

// Array describes a fixed-length JSON array, with one Schema per element.
// Decoding a shorter array than items leaves the trailing entries
// untouched; decoding a longer array is [InsufficientArrayLength].
func Array(items []Schema) Schema { return Schema{kind: schemaArray, arr: items} }

// Bool describes a JSON boolean, decoded into dst.
func Bool(dst *Optional[bool]) Schema { return Schema{kind: schemaBool, b: dst} }

// Float describes a JSON number, decoded into dst as a float64. Both JSON
// integers and JSON floats are accepted.
func Float(dst *Optional[float64]) Schema { return Schema{kind: schemaFloat, f: dst} }

// Integer describes a JSON number with no fractional part, decoded into
// dst. A JSON float value is [MismatchedTypes] against an Integer schema.
func Integer(dst *Optional[int64]) Schema { return Schema{kind: schemaInteger, i: dst} }

// Object describes a JSON object with a known set of field names. Fields
// present in the JSON but absent from fields are skipped without error;
// fields present in fields but absent from the JSON are left unset.
func Object(fields []Field) Schema { return Schema{kind: schemaObject, obj: fields} }

// Str describes a JSON string, decoded into dst. The decoded string
// aliases the original input buffer; it must not be used after that buffer
// is reused or released.
func Str(dst *Optional[string]) Schema { return Schema{kind: schemaString, s: dst} }

// clear resets every destination reachable from this schema to unset, as
// if the corresponding JSON value had been `null`.
func (s Schema) clear() {
	switch s.kind {
	case schemaArray:
		for _, v := range s.arr {
			v.clear()
		}
	case schemaBool:
		s.b.clear()
	case schemaFloat:
		s.f.clear()
	case schemaInteger:
		s.i.clear()
	case schemaObject:
		for _, f := range s.obj {
			f.Schema.clear()
		}
	case schemaString:
		s.s.clear()
	}
}
