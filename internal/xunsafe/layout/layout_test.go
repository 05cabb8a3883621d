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

package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"example.com/noheap/internal/xunsafe/layout"
)

func TestRoundUp(t *testing.T) {
	t.Parallel()

	cases := []struct{ n, align, want int }{
		{0, 8, 0},
		{1, 8, 8},
		{7, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{16, 8, 16},
		{1, 4, 4},
		{4, 4, 4},
		{5, 4, 8},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, layout.RoundUp(c.n, c.align), "RoundUp(%d, %d)", c.n, c.align)
	}
}

func TestRoundDown(t *testing.T) {
	t.Parallel()

	cases := []struct{ n, align, want int }{
		{0, 8, 0},
		{1, 8, 0},
		{8, 8, 8},
		{9, 8, 8},
		{15, 8, 8},
		{16, 8, 16},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, layout.RoundDown(c.n, c.align), "RoundDown(%d, %d)", c.n, c.align)
	}
}

func TestPadding(t *testing.T) {
	t.Parallel()

	cases := []struct{ n, align, want int }{
		{8, 8, 0},
		{9, 8, 7},
		{15, 8, 1},
		{16, 8, 0},
		{0, 8, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, layout.Padding(c.n, c.align), "Padding(%d, %d)", c.n, c.align)
	}
}

func TestSizeAndBits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, layout.Size[uint8]())
	assert.Equal(t, 8, layout.Size[uint64]())
	assert.Equal(t, 8, layout.Bits[uint8]())
	assert.Equal(t, 64, layout.Bits[uint64]())
}
