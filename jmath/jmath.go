// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package jmath

import (
	"math"
	"structs"

	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
	"honnef.co/go/swfgpu/swf"
)

const Epsilon = 1e-12

func Abs32(f float32) float32 {
	return math32.Abs(f)
}

func IsFinite32(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// Transform is an affine transform in pixel space, laid out the way the GPU
// path pipeline expects it: a column-major 2x2 linear part followed by the
// translation.
type Transform struct {
	_ structs.HostLayout

	Matrix      [4]float32
	Translation [2]float32
}

var Identity = Transform{
	Matrix: [4]float32{1, 0, 0, 1},
}

func (t Transform) Mul(other Transform) Transform {
	return Transform{
		Matrix: [4]float32{
			t.Matrix[0]*other.Matrix[0] + t.Matrix[2]*other.Matrix[1],
			t.Matrix[1]*other.Matrix[0] + t.Matrix[3]*other.Matrix[1],
			t.Matrix[0]*other.Matrix[2] + t.Matrix[2]*other.Matrix[3],
			t.Matrix[1]*other.Matrix[2] + t.Matrix[3]*other.Matrix[3],
		},
		Translation: [2]float32{
			t.Matrix[0]*other.Translation[0] +
				t.Matrix[2]*other.Translation[1] +
				t.Translation[0],
			t.Matrix[1]*other.Translation[0] +
				t.Matrix[3]*other.Translation[1] +
				t.Translation[1],
		},
	}
}

func (t Transform) Apply(x, y float32) (float32, float32) {
	return t.Matrix[0]*x + t.Matrix[2]*y + t.Translation[0],
		t.Matrix[1]*x + t.Matrix[3]*y + t.Translation[1]
}

// TransformFromSWF converts an SWF matrix into a pixel-space transform.
func TransformFromSWF(m swf.Matrix) Transform {
	return Transform{
		Matrix: [4]float32{m.ScaleX, m.RotateSkew0, m.RotateSkew1, m.ScaleY},
		Translation: [2]float32{
			float32(m.TranslateX.ToPixels()),
			float32(m.TranslateY.ToPixels()),
		},
	}
}

// Converts an f32 to IEEE-754 binary16 format represented as the bits of a u16.
// This implementation was adapted from Fabian Giesen's `float_to_half_fast3`()
// function which can be found at <https://gist.github.com/rygorous/2156668#file-gistfile1-cpp-L285>
func Float16(val float32) uint16 {
	const inf32 uint32 = 255 << 23
	const inf16 uint32 = 31 << 23
	const magic uint32 = 15 << 23
	const signMask uint32 = 0x8000_0000
	const roundMask uint32 = ^uint32(0xFFF)

	u := math.Float32bits(val)
	sign := u & signMask
	u = u ^ sign

	// All operands are below 0x80000000, so the compares below are safe as
	// signed compares.

	var output uint16
	if u >= inf32 {
		// NaN -> qNaN and Inf->Inf
		if u > inf32 {
			output = 0x7E00
		} else {
			output = 0x7C00
		}
	} else {
		u := u & roundMask
		u = math.Float32bits(math.Float32frombits(u) * math.Float32frombits(magic))
		u = u - roundMask

		// Clamp to signed infinity if exponent overflowed
		if u > inf16 {
			u = inf16
		}
		output = uint16(u >> 13)
	}
	return output | uint16(sign>>16)
}

// AlignUp rounds n up to the next multiple of alignment, which must be a
// power of two.
func AlignUp[T constraints.Integer](n, alignment T) T {
	return (n + alignment - 1) &^ (alignment - 1)
}
