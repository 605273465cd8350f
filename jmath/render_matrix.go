// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package jmath

import "honnef.co/go/safeish"

// RenderMatrix is a column-major 4x4 matrix carrying a 2D affine transform in
// the layout of the paint uniform blocks. Column 0 holds (a, d), column 1
// holds (b, e), column 2 holds the translation (c, f) and a 1 in row 2. All
// other cells are zero, including the bottom row.
type RenderMatrix [4][4]float32

// NewRenderMatrix assembles the matrix mapping (x, y) to
// (a*x + b*y + c, d*x + e*y + f).
func NewRenderMatrix(a, b, c, d, e, f float32) RenderMatrix {
	return RenderMatrix{
		{a, d, 0, 0},
		{b, e, 0, 0},
		{c, f, 1, 0},
		{0, 0, 0, 0},
	}
}

var IdentityRenderMatrix = NewRenderMatrix(1, 0, 0, 0, 1, 0)

func (m RenderMatrix) Apply(x, y float32) (float32, float32) {
	return m[0][0]*x + m[1][0]*y + m[2][0],
		m[0][1]*x + m[1][1]*y + m[2][1]
}

func (m RenderMatrix) IsFinite() bool {
	for _, col := range m {
		for _, v := range col {
			if !IsFinite32(v) {
				return false
			}
		}
	}
	return true
}

func (m *RenderMatrix) Bytes() []byte {
	return safeish.SliceCast[[]byte](m[:])
}
