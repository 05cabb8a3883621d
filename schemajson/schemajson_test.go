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

package schemajson_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/noheap/schemajson"
)

func assertErr(t *testing.T, err error, kind schemajson.ErrorKind, line, col int) {
	t.Helper()
	require.Error(t, err)
	var e *schemajson.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, kind, e.Kind())
	assert.Equal(t, line, e.Line())
	assert.Equal(t, col, e.Col())
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	cases := []string{
		`{}`,
		"   {\r\n\t\n} ",
		`[]`,
		"   [\r\n\t\n] ",
		`""`,
	}
	for _, src := range cases {
		assert.NoError(t, schemajson.Validate([]byte(src), 1), "src=%q", src)
	}
}

func TestValidate_ExtraOpeningBrace(t *testing.T) {
	t.Parallel()
	err := schemajson.Validate([]byte(`{{}`), 1)
	assertErr(t, err, schemajson.UnexpectedToken, 1, 2)
}

func TestValidate_ExtraClosingBrace(t *testing.T) {
	t.Parallel()
	err := schemajson.Validate([]byte(`{}}`), 1)
	assertErr(t, err, schemajson.UnexpectedToken, 1, 3)
}

func TestValidate_ExtraOpeningBracket(t *testing.T) {
	t.Parallel()
	err := schemajson.Validate([]byte(`[[]`), 1)
	assertErr(t, err, schemajson.UnexpectedEOF, 1, 3)
}

func TestValidate_ExtraClosingBracket(t *testing.T) {
	t.Parallel()
	err := schemajson.Validate([]byte(`[]]`), 1)
	assertErr(t, err, schemajson.UnexpectedToken, 1, 3)
}

func TestValidate_ArrayTrailingComma(t *testing.T) {
	t.Parallel()
	err := schemajson.Validate([]byte(`[],`), 1)
	assertErr(t, err, schemajson.UnexpectedToken, 1, 3)
}

func TestValidate_ArrayOnlyComma(t *testing.T) {
	t.Parallel()
	err := schemajson.Validate([]byte(`[,]`), 1)
	assertErr(t, err, schemajson.UnexpectedToken, 1, 2)
}

func TestValidate_BackslashInString(t *testing.T) {
	t.Parallel()
	err := schemajson.Validate([]byte(`"\"`), 1)
	assertErr(t, err, schemajson.UnterminatedString, 1, 3)
}

func TestDecode_ArrayCommaInteger(t *testing.T) {
	t.Parallel()

	var i schemajson.Optional[int64]
	schema := schemajson.Array([]schemajson.Schema{schemajson.Integer(&i)})
	err := schemajson.Decode([]byte(`[,1]`), schema, 1)

	assertErr(t, err, schemajson.UnexpectedToken, 1, 2)
	_, set := i.Get()
	assert.False(t, set)
}

func TestDecode_ArrayIntegersNoComma(t *testing.T) {
	t.Parallel()

	var i0, i1 schemajson.Optional[int64]
	schema := schemajson.Array([]schemajson.Schema{
		schemajson.Integer(&i0),
		schemajson.Integer(&i1),
	})
	err := schemajson.Decode([]byte(`[1 1]`), schema, 1)

	assertErr(t, err, schemajson.MissingComma, 1, 4)
	v0, set0 := i0.Get()
	require.True(t, set0)
	assert.EqualValues(t, 1, v0)
	_, set1 := i1.Get()
	assert.False(t, set1)
}

func TestDecode_ShallowDepth(t *testing.T) {
	t.Parallel()
	err := schemajson.Validate([]byte(`{"a":{}}`), 1)
	assertErr(t, err, schemajson.MaxDepthExceeded, 1, 6)
}

func TestDecode_DeepDepth(t *testing.T) {
	t.Parallel()
	src := `{"a":{"b":{"c":{"d":{"e":{"f":{"g":{"h":{"i":{"j":{"k":{}}}}}}}}}}}}`
	err := schemajson.Validate([]byte(src), 10)
	assertErr(t, err, schemajson.MaxDepthExceeded, 1, 51)
}

func TestDecode_Integers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		src  string
		want int64
	}{
		{`{"i":1}`, 1},
		{`{"i":-1}`, -1},
		{`{"i":12345678}`, 12345678},
		{`{"i":-12345678}`, -12345678},
	}
	for _, c := range cases {
		var i schemajson.Optional[int64]
		schema := schemajson.Object([]schemajson.Field{{Name: "i", Schema: schemajson.Integer(&i)}})
		require.NoError(t, schemajson.Decode([]byte(c.src), schema, 1), "src=%q", c.src)
		v, set := i.Get()
		require.True(t, set)
		assert.Equal(t, c.want, v)
	}
}

func TestDecode_Floats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		src  string
		want float64
	}{
		{`{"f":1.0}`, 1.0},
		{`{"f":-1.0}`, -1.0},
	}
	for _, c := range cases {
		var f schemajson.Optional[float64]
		schema := schemajson.Object([]schemajson.Field{{Name: "f", Schema: schemajson.Float(&f)}})
		require.NoError(t, schemajson.Decode([]byte(c.src), schema, 1), "src=%q", c.src)
		v, set := f.Get()
		require.True(t, set)
		assert.InDelta(t, c.want, v, 1e-9)
	}
}

func TestDecode_ArrayOfIntegers(t *testing.T) {
	t.Parallel()

	var a0, a1, a2 schemajson.Optional[int64]
	schema := schemajson.Object([]schemajson.Field{{
		Name: "arr",
		Schema: schemajson.Array([]schemajson.Schema{
			schemajson.Integer(&a0),
			schemajson.Integer(&a1),
			schemajson.Integer(&a2),
		}),
	}})

	require.NoError(t, schemajson.Decode([]byte(`{"arr":[1,-1]}`), schema, 1))

	v0, set0 := a0.Get()
	require.True(t, set0)
	assert.EqualValues(t, 1, v0)

	v1, set1 := a1.Get()
	require.True(t, set1)
	assert.EqualValues(t, -1, v1)

	_, set2 := a2.Get()
	assert.False(t, set2)
}

func TestDecode_ArrayOfDifferentTypes(t *testing.T) {
	t.Parallel()

	var a0 schemajson.Optional[int64]
	var a1 schemajson.Optional[float64]
	schema := schemajson.Object([]schemajson.Field{{
		Name: "arr",
		Schema: schemajson.Array([]schemajson.Schema{
			schemajson.Integer(&a0),
			schemajson.Float(&a1),
		}),
	}})

	require.NoError(t, schemajson.Decode([]byte(`{"arr":[1,1.0]}`), schema, 1))

	v0, _ := a0.Get()
	assert.EqualValues(t, 1, v0)
	v1, _ := a1.Get()
	assert.InDelta(t, 1.0, v1, 1e-9)
}

func TestDecode_ArrayOfObjects(t *testing.T) {
	t.Parallel()

	var name0, name1 schemajson.Optional[string]
	var val0, val1 schemajson.Optional[int64]

	obj0 := schemajson.Object([]schemajson.Field{
		{Name: "name", Schema: schemajson.Str(&name0)},
		{Name: "val", Schema: schemajson.Integer(&val0)},
	})
	obj1 := schemajson.Object([]schemajson.Field{
		{Name: "name", Schema: schemajson.Str(&name1)},
		{Name: "val", Schema: schemajson.Integer(&val1)},
	})
	schema := schemajson.Object([]schemajson.Field{{
		Name:   "arr",
		Schema: schemajson.Array([]schemajson.Schema{obj0, obj1}),
	}})

	src := `{"arr":[{"name":"foo","val":1},{"name":"bar","val":2}]}`
	require.NoError(t, schemajson.Decode([]byte(src), schema, 2))

	n0, _ := name0.Get()
	assert.Equal(t, "foo", n0)
	v0, _ := val0.Get()
	assert.EqualValues(t, 1, v0)
	n1, _ := name1.Get()
	assert.Equal(t, "bar", n1)
	v1, _ := val1.Get()
	assert.EqualValues(t, 2, v1)
}

func TestDecode_Nan(t *testing.T) {
	t.Parallel()

	var f schemajson.Optional[float64]
	schema := schemajson.Object([]schemajson.Field{{Name: "f", Schema: schemajson.Float(&f)}})
	err := schemajson.Decode([]byte(`{"f":nan}`), schema, 1)

	assertErr(t, err, schemajson.UnknownIdentifier, 1, 7)
	_, set := f.Get()
	assert.False(t, set)
}

func TestDecode_NegNan(t *testing.T) {
	t.Parallel()

	var f schemajson.Optional[float64]
	schema := schemajson.Object([]schemajson.Field{{Name: "f", Schema: schemajson.Float(&f)}})
	err := schemajson.Decode([]byte(`{"f":-nan}`), schema, 1)

	assertErr(t, err, schemajson.InvalidNumber, 1, 6)
}

func TestDecode_Inf(t *testing.T) {
	t.Parallel()

	var f schemajson.Optional[float64]
	schema := schemajson.Object([]schemajson.Field{{Name: "f", Schema: schemajson.Float(&f)}})
	err := schemajson.Decode([]byte(`{"f":inf}`), schema, 1)

	assertErr(t, err, schemajson.UnknownStartOfToken, 1, 6)
}

func TestDecode_NegInf(t *testing.T) {
	t.Parallel()

	var f schemajson.Optional[float64]
	schema := schemajson.Object([]schemajson.Field{{Name: "f", Schema: schemajson.Float(&f)}})
	err := schemajson.Decode([]byte(`{"f":-inf}`), schema, 1)

	assertErr(t, err, schemajson.InvalidNumber, 1, 6)
}

func TestDecode_TrailingDotIsInvalidNumber(t *testing.T) {
	t.Parallel()

	var f schemajson.Optional[float64]
	schema := schemajson.Object([]schemajson.Field{{Name: "f", Schema: schemajson.Float(&f)}})
	err := schemajson.Decode([]byte(`{"f":1.}`), schema, 1)

	assertErr(t, err, schemajson.InvalidNumber, 1, 7)
}

func TestDecodePooled_ReusesParser(t *testing.T) {
	t.Parallel()

	var i schemajson.Optional[int64]
	schema := schemajson.Object([]schemajson.Field{{Name: "i", Schema: schemajson.Integer(&i)}})

	for n := int64(0); n < 4; n++ {
		i = schemajson.Optional[int64]{}
		src := fmt.Sprintf(`{"i":%d}`, n)
		require.NoError(t, schemajson.DecodePooled([]byte(src), schema, 1))
		v, set := i.Get()
		require.True(t, set)
		assert.Equal(t, n, v)
	}
}
