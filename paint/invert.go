// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package paint computes the matrices that map shape-space positions into
// the normalized sampling space of gradient and bitmap fills.
package paint

import (
	"errors"
	"fmt"

	"honnef.co/go/swfgpu/jmath"
	"honnef.co/go/swfgpu/swf"
)

var ErrDegenerateTransform = errors.New("paint transform is not invertible")

// GradientSquareSize is the edge length, in twips, of the square that
// gradients are defined in.
const GradientSquareSize = 32768

// Normalization describes how an inverted paint transform is rescaled into
// [0, 1] sampling space. The x row of the linear part is multiplied by
// LinearX and the y row by LinearY. The translation is divided by
// TranslateDivX/TranslateDivY and then offset by TranslateOffset.
type Normalization struct {
	LinearX         float32
	LinearY         float32
	TranslateDivX   float32
	TranslateDivY   float32
	TranslateOffset float32
}

// GradientSquare maps the gradient square, centered on the origin, to [0, 1].
var GradientSquare = Normalization{
	LinearX:         swf.TwipsPerPixel / float32(GradientSquareSize),
	LinearY:         swf.TwipsPerPixel / float32(GradientSquareSize),
	TranslateDivX:   GradientSquareSize,
	TranslateDivY:   GradientSquareSize,
	TranslateOffset: 0.5,
}

// BitmapNormalization maps a bitmap of width×height pixels to [0, 1].
func BitmapNormalization(width, height uint32) Normalization {
	w := float32(width)
	h := float32(height)
	return Normalization{
		LinearX:       swf.TwipsPerPixel / w,
		LinearY:       swf.TwipsPerPixel / h,
		TranslateDivX: w,
		TranslateDivY: h,
	}
}

// Invert returns the inverse of m, renormalized by n. The result maps a
// position in shape space, in pixels, to paint sampling coordinates.
//
// It returns ErrDegenerateTransform if m's determinant is zero or if any
// component of the result isn't finite.
func Invert(m swf.Matrix, n Normalization) (jmath.RenderMatrix, error) {
	tx := float32(m.TranslateX.Get())
	ty := float32(m.TranslateY.Get())
	det := m.ScaleX*m.ScaleY - m.RotateSkew1*m.RotateSkew0
	if jmath.Abs32(det) < jmath.Epsilon {
		return jmath.RenderMatrix{}, fmt.Errorf("determinant %g: %w", det, ErrDegenerateTransform)
	}

	a := m.ScaleY / det
	b := -m.RotateSkew1 / det
	c := -(tx*m.ScaleY - m.RotateSkew1*ty) / det
	d := -m.RotateSkew0 / det
	e := m.ScaleX / det
	f := (tx*m.RotateSkew0 - m.ScaleX*ty) / det

	a *= n.LinearX
	b *= n.LinearX
	d *= n.LinearY
	e *= n.LinearY

	c = c/n.TranslateDivX + n.TranslateOffset
	f = f/n.TranslateDivY + n.TranslateOffset

	out := jmath.NewRenderMatrix(a, b, c, d, e, f)
	if !out.IsFinite() {
		return jmath.RenderMatrix{}, fmt.Errorf("non-finite inverse (determinant %g): %w", det, ErrDegenerateTransform)
	}
	return out, nil
}

// InvertGradient inverts a gradient fill's matrix into gradient sampling
// space, in which the gradient square spans [0, 1] on both axes.
func InvertGradient(m swf.Matrix) (jmath.RenderMatrix, error) {
	return Invert(m, GradientSquare)
}

// InvertBitmap inverts a bitmap fill's matrix into texture coordinates of a
// width×height bitmap.
func InvertBitmap(m swf.Matrix, width, height uint32) (jmath.RenderMatrix, error) {
	if width == 0 || height == 0 {
		return jmath.RenderMatrix{}, fmt.Errorf("empty %dx%d bitmap: %w", width, height, ErrDegenerateTransform)
	}
	return Invert(m, BitmapNormalization(width, height))
}
