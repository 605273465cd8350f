// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package paint

import (
	"structs"
	"unsafe"

	"honnef.co/go/safeish"
	"honnef.co/go/swfgpu/jmath"
	"honnef.co/go/swfgpu/swf"
)

// maxFocalPoint keeps the focal point strictly inside the gradient circle.
const maxFocalPoint = 0.98

// GradientUniforms is the uniform block of a gradient fill.
//
// This data structure must be kept in sync with the gradient shader.
type GradientUniforms struct {
	_ structs.HostLayout

	// Maps shape space (pixels) to the unit gradient square.
	Matrix jmath.RenderMatrix
	// One of swf.LinearGradient, swf.RadialGradient, swf.FocalGradient.
	Kind uint32
	// One of swf.Pad, swf.Reflect, swf.Repeat.
	Spread        uint32
	Interpolation uint32
	// Row of the gradient ramp image.
	RampIndex  uint32
	FocalPoint float32
	_          [3]uint32 // padding
}

// NewGradientUniforms returns the uniforms for g. It fails with
// ErrDegenerateTransform if g's matrix cannot be inverted.
func NewGradientUniforms(g swf.GradientFill, rampIndex uint32) (GradientUniforms, error) {
	m, err := InvertGradient(g.Matrix)
	if err != nil {
		return GradientUniforms{}, err
	}
	return MakeGradientUniforms(g, m, rampIndex), nil
}

// MakeGradientUniforms returns the uniforms for g using m as the paint
// matrix.
func MakeGradientUniforms(g swf.GradientFill, m jmath.RenderMatrix, rampIndex uint32) GradientUniforms {
	var focal float32
	if g.Kind == swf.FocalGradient {
		focal = min(max(g.FocalPoint, -maxFocalPoint), maxFocalPoint)
	}
	return GradientUniforms{
		Matrix:        m,
		Kind:          uint32(g.Kind),
		Spread:        uint32(g.Spread),
		Interpolation: uint32(g.Interpolation),
		RampIndex:     rampIndex,
		FocalPoint:    focal,
	}
}

func (u *GradientUniforms) Bytes() []byte {
	return safeish.SliceCast[[]byte](unsafe.Slice(u, 1))
}

// BitmapUniforms is the uniform block of a bitmap fill.
//
// This data structure must be kept in sync with the bitmap shader.
type BitmapUniforms struct {
	_ structs.HostLayout

	// Maps shape space (pixels) to texture coordinates.
	Matrix    jmath.RenderMatrix
	Repeating uint32
	Smoothed  uint32
	_         [2]uint32 // padding
}

// NewBitmapUniforms returns the uniforms for b. It fails with
// ErrDegenerateTransform if b's matrix cannot be inverted or the bitmap is
// empty.
func NewBitmapUniforms(b swf.BitmapFill) (BitmapUniforms, error) {
	m, err := InvertBitmap(b.Matrix, b.Width, b.Height)
	if err != nil {
		return BitmapUniforms{}, err
	}
	return MakeBitmapUniforms(b, m), nil
}

func MakeBitmapUniforms(b swf.BitmapFill, m jmath.RenderMatrix) BitmapUniforms {
	u := BitmapUniforms{Matrix: m}
	if b.Repeating {
		u.Repeating = 1
	}
	if b.Smoothed {
		u.Smoothed = 1
	}
	return u
}

func (u *BitmapUniforms) Bytes() []byte {
	return safeish.SliceCast[[]byte](unsafe.Slice(u, 1))
}
