// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package swf contains the value types that the upstream shape model hands to
// the renderer: fixed-point coordinates, affine matrices, draw commands and
// fill styles.
package swf

import "math"

// TwipsPerPixel is the number of twips in one render pixel.
const TwipsPerPixel = 20

// Twips is a fixed-point coordinate in units of 1/20 of a pixel.
type Twips int32

// TwipsFromPixels returns the twips value closest to px pixels.
func TwipsFromPixels(px float64) Twips {
	return Twips(math.Round(px * TwipsPerPixel))
}

// Get returns the raw number of twips.
func (t Twips) Get() int32 { return int32(t) }

// ToPixels converts t to (fractional) pixels.
func (t Twips) ToPixels() float64 { return float64(t) / TwipsPerPixel }
