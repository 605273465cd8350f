// Copyright 2022 the Peniko Authors
// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package swf

// RGBA is a straight-alpha sRGB color.
type RGBA struct {
	R, G, B, A uint8
}

// Premultiplied returns c with its color channels multiplied by alpha.
func (c RGBA) Premultiplied() RGBA {
	mul := func(v uint8) uint8 {
		return uint8((uint16(v)*uint16(c.A) + 127) / 255)
	}
	return RGBA{mul(c.R), mul(c.G), mul(c.B), c.A}
}

// FillStyle is one of SolidFill, GradientFill or BitmapFill.
type FillStyle interface {
	isFillStyle()
}

type SolidFill struct {
	Color RGBA
}

type GradientKind int

const (
	LinearGradient GradientKind = iota
	RadialGradient
	FocalGradient
)

type Spread int

const (
	Pad Spread = iota
	Reflect
	Repeat
)

type Interpolation int

const (
	InterpolateRGB Interpolation = iota
	InterpolateLinearRGB
)

type GradientRecord struct {
	// Position along the gradient, 0 at the start and 255 at the end.
	Ratio uint8
	Color RGBA
}

// GradientFill is a gradient defined in the gradient square, a 32768×32768
// twips square centered on the origin. Matrix places the square into shape
// space.
type GradientFill struct {
	Kind          GradientKind
	Spread        Spread
	Interpolation Interpolation
	Records       []GradientRecord
	Matrix        Matrix
	// Only used by FocalGradient, in the range [-1, 1].
	FocalPoint float32
}

// BitmapFill fills with an image of Width×Height pixels. Matrix maps bitmap
// space, in which one pixel is one twip, into shape space.
type BitmapFill struct {
	Width     uint32
	Height    uint32
	Matrix    Matrix
	Repeating bool
	Smoothed  bool
}

func (SolidFill) isFillStyle()    {}
func (GradientFill) isFillStyle() {}
func (BitmapFill) isFillStyle()   {}
