// Copyright 2022 the Vello Authors
// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package encoding

import (
	"encoding/binary"

	"honnef.co/go/swfgpu/swf"
)

type DrawTag uint32

const (
	// No operation.
	DrawTagNop DrawTag = 0

	// Color fill.
	DrawTagColor DrawTag = 0x44

	// Linear gradient fill.
	DrawTagLinearGradient DrawTag = 0x114

	// Radial and focal gradient fill.
	DrawTagRadialGradient DrawTag = 0x29c

	// Image fill.
	DrawTagImage DrawTag = 0x248
)

// InfoSize returns the number of uint32s of info the draw object produces.
func (tag DrawTag) InfoSize() uint32 {
	return uint32((tag >> 6) & 0xf)
}

// EncodeColor appends a solid color paint. The color is stored premultiplied,
// packed as RGBA in a little-endian uint32.
func (enc *Encoding) EncodeColor(c swf.RGBA) {
	p := c.Premultiplied()
	rgba := uint32(p.R) | uint32(p.G)<<8 | uint32(p.B)<<16 | uint32(p.A)<<24
	enc.DrawTags = append(enc.DrawTags, DrawTagColor)
	enc.DrawData = binary.LittleEndian.AppendUint32(enc.DrawData, rgba)
}

// EncodeGradient appends a gradient paint whose uniforms live at index
// uniforms in the gradient uniform array.
func (enc *Encoding) EncodeGradient(kind swf.GradientKind, uniforms uint32) {
	tag := DrawTagLinearGradient
	if kind != swf.LinearGradient {
		tag = DrawTagRadialGradient
	}
	enc.DrawTags = append(enc.DrawTags, tag)
	enc.DrawData = binary.LittleEndian.AppendUint32(enc.DrawData, uniforms)
}

// EncodeImage appends a bitmap paint whose uniforms live at index uniforms in
// the bitmap uniform array.
func (enc *Encoding) EncodeImage(uniforms uint32, width, height uint32) {
	enc.DrawTags = append(enc.DrawTags, DrawTagImage)
	enc.DrawData = binary.LittleEndian.AppendUint32(enc.DrawData, uniforms)
	enc.DrawData = binary.LittleEndian.AppendUint32(enc.DrawData, width<<16|height&0xFFFF)
}
