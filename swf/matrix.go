// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package swf

import "math"

// Matrix is an affine transform as stored in SWF files. The linear components
// are decoded 16.16 fixed-point factors, the translation is in twips.
//
// A point (x, y) is mapped to
//
//	x' = ScaleX*x + RotateSkew1*y + TranslateX
//	y' = RotateSkew0*x + ScaleY*y + TranslateY
type Matrix struct {
	ScaleX      float32
	ScaleY      float32
	RotateSkew0 float32
	RotateSkew1 float32
	TranslateX  Twips
	TranslateY  Twips
}

var IdentityMatrix = Matrix{ScaleX: 1, ScaleY: 1}

func TranslateMatrix(x, y Twips) Matrix {
	return Matrix{ScaleX: 1, ScaleY: 1, TranslateX: x, TranslateY: y}
}

func ScaleMatrix(sx, sy float32) Matrix {
	return Matrix{ScaleX: sx, ScaleY: sy}
}

// Apply maps the point (x, y), given in the matrix's source units, to its
// destination. Translation is added as raw twips.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return float64(m.ScaleX)*x + float64(m.RotateSkew1)*y + float64(m.TranslateX),
		float64(m.RotateSkew0)*x + float64(m.ScaleY)*y + float64(m.TranslateY)
}

// Mul returns the matrix that applies other first and then m.
func (m Matrix) Mul(other Matrix) Matrix {
	tx, ty := m.Apply(float64(other.TranslateX), float64(other.TranslateY))
	return Matrix{
		ScaleX:      m.ScaleX*other.ScaleX + m.RotateSkew1*other.RotateSkew0,
		RotateSkew0: m.RotateSkew0*other.ScaleX + m.ScaleY*other.RotateSkew0,
		RotateSkew1: m.ScaleX*other.RotateSkew1 + m.RotateSkew1*other.ScaleY,
		ScaleY:      m.RotateSkew0*other.RotateSkew1 + m.ScaleY*other.ScaleY,
		TranslateX:  Twips(math.Round(tx)),
		TranslateY:  Twips(math.Round(ty)),
	}
}
