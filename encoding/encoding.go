// Copyright 2022 the Vello Authors
// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package encoding packs paths, styles and transforms into the flat streams
// consumed by the GPU path pipeline.
package encoding

import (
	"iter"

	"honnef.co/go/curve"
	"honnef.co/go/safeish"
	"honnef.co/go/swfgpu/jmath"
)

type Fill int

const (
	NonZero Fill = iota
	EvenOdd
)

type Encoding struct {
	PathTags        []PathTag
	PathData        []byte
	Transforms      []jmath.Transform
	Styles          []Style
	DrawTags        []DrawTag
	DrawData        []byte
	NumPaths        uint32
	NumPathSegments uint32
	Flags           uint32
}

const (
	forceNextTransform uint32 = 1
	forceNextStyle     uint32 = 2
)

func (enc *Encoding) IsEmpty() bool {
	return len(enc.PathTags) == 0
}

func (enc *Encoding) Reset() {
	enc.PathTags = enc.PathTags[:0]
	enc.PathData = enc.PathData[:0]
	enc.Transforms = enc.Transforms[:0]
	enc.Styles = enc.Styles[:0]
	enc.DrawTags = enc.DrawTags[:0]
	enc.DrawData = enc.DrawData[:0]
	enc.NumPaths = 0
	enc.NumPathSegments = 0
	enc.Flags = 0
}

func (enc *Encoding) EncodeFillStyle(fill Fill) {
	enc.EncodeStyle(styleFromFill(fill))
}

func (enc *Encoding) EncodeStrokeStyle(stroke curve.Stroke) {
	enc.EncodeStyle(styleFromStroke(stroke))
}

func (enc *Encoding) EncodeStyle(style Style) {
	if enc.Flags&forceNextStyle != 0 || len(enc.Styles) == 0 || enc.Styles[len(enc.Styles)-1] != style {
		enc.PathTags = append(enc.PathTags, PathTagStyle)
		enc.Styles = append(enc.Styles, style)
		enc.Flags &^= forceNextStyle
	}
}

// EncodeTransform records transform for the following paths. It returns false
// if transform is already the current transform.
func (enc *Encoding) EncodeTransform(transform jmath.Transform) bool {
	if enc.Flags&forceNextTransform != 0 || len(enc.Transforms) == 0 || enc.Transforms[len(enc.Transforms)-1] != transform {
		enc.PathTags = append(enc.PathTags, PathTagTransform)
		enc.Transforms = append(enc.Transforms, transform)
		enc.Flags &^= forceNextTransform
		return true
	}
	return false
}

func (enc *Encoding) ForceNextTransformAndStyle() {
	enc.Flags |= forceNextTransform | forceNextStyle
}

func (enc *Encoding) EncodePath(isFill bool) *PathEncoder {
	return &PathEncoder{enc: enc, isFill: isFill}
}

// EncodePathElements encodes a complete path. It returns false if the path
// had no segments left after dropping degenerate ones, in which case nothing
// was encoded.
func (enc *Encoding) EncodePathElements(path iter.Seq[curve.PathElement], isFill bool) bool {
	pe := enc.EncodePath(isFill)
	pe.PathElements(path)
	return pe.Finish(true) != 0
}

func (enc *Encoding) PathTagBytes() []byte {
	return safeish.SliceCast[[]byte](enc.PathTags)
}

func (enc *Encoding) TransformBytes() []byte {
	return safeish.SliceCast[[]byte](enc.Transforms)
}

func (enc *Encoding) StyleBytes() []byte {
	return safeish.SliceCast[[]byte](enc.Styles)
}

func (enc *Encoding) DrawTagBytes() []byte {
	return safeish.SliceCast[[]byte](enc.DrawTags)
}
