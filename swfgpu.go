// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package swfgpu prepares SWF shapes for GPU rendering. It builds paths from
// draw commands, encodes them for the path pipeline, computes the sampling
// matrices of gradient and bitmap paints and records the resulting uploads.
//
// The building blocks live in subpackages: swf holds the input types, shape
// builds paths, paint inverts paint transforms, encoding packs paths and
// paints, renderer records uploads and gpu executes them.
package swfgpu

import (
	"honnef.co/go/curve"
	"honnef.co/go/swfgpu/encoding"
	"honnef.co/go/swfgpu/renderer"
	"honnef.co/go/swfgpu/swf"
)

// Shape is a single filled or stroked SWF shape.
type Shape struct {
	Commands []swf.DrawCommand
	Closed   bool
	// Fill paints the shape, or its stroke if Stroke is set. A nil Fill
	// paints nothing.
	Fill swf.FillStyle
	// Stroke, in pixels. If nil, the shape is filled using FillRule.
	Stroke   *curve.Stroke
	FillRule encoding.Fill
	// Transform maps the shape to the stage.
	Transform swf.Matrix
}

// Prepared describes the uploads recorded for a shape.
type Prepared struct {
	// Empty is set if the shape had no drawable segments. Nothing was
	// recorded for it.
	Empty bool
	// PaintSkipped is set if the paint transform was degenerate and the
	// paint was left out.
	PaintSkipped bool

	NumSegments uint32
	// Bounds of the path in local pixel space, as (x0, y0, x1, y1).
	Bounds [4]float64

	PathTags   renderer.BufferProxy
	PathData   renderer.BufferProxy
	Transforms renderer.BufferProxy
	Styles     renderer.BufferProxy
	DrawTags   renderer.BufferProxy
	DrawData   renderer.BufferProxy

	// Uniforms of a gradient or bitmap paint.
	Uniforms    renderer.BufferProxy
	HasUniforms bool
	// Row in the ramp image, for gradients.
	RampIndex uint32
}
