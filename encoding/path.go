// Copyright 2022 the Vello Authors
// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package encoding

import (
	"encoding/binary"
	"iter"
	"math"
	"structs"

	"honnef.co/go/curve"
	"honnef.co/go/swfgpu/jmath"
)

type Style struct {
	_ structs.HostLayout

	// The upper 16 bits hold flags, see the Flags* constants:
	//
	//	flags: |style|fill|join|start cap|end cap|reserved|
	//	 bits:  0     1    2-3  4-5       6-7     8-15
	//
	// The lower 16 bits hold the miter limit of a stroke as a binary16
	// float. It is ignored for fills and for non-miter joins.
	FlagsAndMiterLimits uint32
	LineWidth           float32
}

const (
	// 0 for a fill, 1 for a stroke
	FlagsStyleBit uint32 = 0x8000_0000

	// 0 for non-zero, 1 for even-odd
	FlagsFillBit uint32 = 0x4000_0000

	FlagsJoinBitsBevel uint32 = 0
	FlagsJoinBitsMiter uint32 = 0x1000_0000
	FlagsJoinBitsRound uint32 = 0x2000_0000
	FlagsJoinMask      uint32 = 0x3000_0000

	flagsCapBitsButt   uint32 = 0
	flagsCapBitsSquare uint32 = 0x0100_0000
	flagsCapBitsRound  uint32 = 0x0200_0000

	FlagsStartCapMask uint32 = 0x0C00_0000
	FlagsEndCapMask   uint32 = 0x0300_0000
	MiterLimitMask    uint32 = 0xFFFF
)

func styleFromFill(fill Fill) Style {
	var fillBit uint32
	if fill == EvenOdd {
		fillBit = FlagsFillBit
	}
	return Style{FlagsAndMiterLimits: fillBit}
}

func capBits(c curve.Cap) uint32 {
	switch c {
	case curve.SquareCap:
		return flagsCapBitsSquare
	case curve.RoundCap:
		return flagsCapBitsRound
	default:
		return flagsCapBitsButt
	}
}

func styleFromStroke(stroke curve.Stroke) Style {
	var join uint32
	switch stroke.Join {
	case curve.BevelJoin:
		join = FlagsJoinBitsBevel
	case curve.MiterJoin:
		join = FlagsJoinBitsMiter
	case curve.RoundJoin:
		join = FlagsJoinBitsRound
	}
	startCap := capBits(stroke.StartCap) << 2
	endCap := capBits(stroke.EndCap)
	miterLimit := uint32(jmath.Float16(float32(stroke.MiterLimit)))
	return Style{
		FlagsAndMiterLimits: FlagsStyleBit | join | startCap | endCap | miterLimit,
		LineWidth:           float32(stroke.Width),
	}
}

type PathTag uint8

const (
	// 32-bit floating point line segment.
	PathTagLineToF32 PathTag = 0x9
	// 32-bit floating point quadratic segment.
	PathTagQuadToF32 PathTag = 0xa
	// 32-bit floating point cubic segment.
	PathTagCubicToF32 PathTag = 0xb

	PathTagTransform PathTag = 0x20
	PathTagPath      PathTag = 0x10
	PathTagStyle     PathTag = 0x40

	// Marks a segment that ends a subpath.
	PathTagSubpathEndBit PathTag = 0x4
	// Set for segments whose points are f32 rather than i16.
	PathTagF32Bit PathTag = 0x8

	PathTagSegmentMask PathTag = 0x3
)

func (tag PathTag) IsSubpathEnd() bool { return tag&PathTagSubpathEndBit != 0 }

// Segment returns the tag with the subpath end bit cleared.
func (tag PathTag) Segment() PathTag { return tag &^ PathTagSubpathEndBit }

type pathState int

const (
	pathStateStart pathState = iota
	pathStateMoveTo
	pathStateNonemptySubpath
)

// PathEncoder appends a single path to an Encoding. Points are in pixels.
type PathEncoder struct {
	enc                  *Encoding
	firstPoint           [2]float32
	firstStartTangentEnd [2]float32
	state                pathState
	numEncodedSegments   uint32
	isFill               bool
}

func (pe *PathEncoder) appendPoints(pts ...[2]float32) {
	for _, pt := range pts {
		pe.enc.PathData = binary.LittleEndian.AppendUint32(pe.enc.PathData, math.Float32bits(pt[0]))
		pe.enc.PathData = binary.LittleEndian.AppendUint32(pe.enc.PathData, math.Float32bits(pt[1]))
	}
}

func (pe *PathEncoder) dropLastPoint() {
	pe.enc.PathData = pe.enc.PathData[:len(pe.enc.PathData)-8]
}

func (pe *PathEncoder) lastPoint() ([2]float32, bool) {
	data := pe.enc.PathData
	n := len(data)
	if n < 8 {
		return [2]float32{}, false
	}
	x := binary.LittleEndian.Uint32(data[n-8 : n-4])
	y := binary.LittleEndian.Uint32(data[n-4 : n])
	return [2]float32{math.Float32frombits(x), math.Float32frombits(y)}, true
}

func (pe *PathEncoder) markSubpathEnd() {
	if tags := pe.enc.PathTags; len(tags) != 0 {
		tags[len(tags)-1] |= PathTagSubpathEndBit
	}
}

func (pe *PathEncoder) pushSegment(tag PathTag, pts ...[2]float32) {
	pe.appendPoints(pts...)
	pe.enc.PathTags = append(pe.enc.PathTags, tag)
	pe.state = pathStateNonemptySubpath
	pe.numEncodedSegments++
}

func (pe *PathEncoder) MoveTo(x, y float32) {
	if pe.isFill {
		pe.Close()
	}
	switch pe.state {
	case pathStateMoveTo:
		// Consecutive moves; only the last one matters.
		pe.dropLastPoint()
	case pathStateNonemptySubpath:
		if !pe.isFill {
			pe.insertStrokeCapMarkerSegment(false)
		}
		pe.markSubpathEnd()
	}
	pe.firstPoint = [2]float32{x, y}
	pe.appendPoints(pe.firstPoint)
	pe.state = pathStateMoveTo
}

// segmentEpsilon is the distance, in pixels, below which points are treated as
// coincident.
const segmentEpsilon float32 = 1e-6

// isZeroLength reports whether the segment from the last point through pts
// fits in an epsilon-sized box.
func (pe *PathEncoder) isZeroLength(pts ...[2]float32) bool {
	p0, ok := pe.lastPoint()
	if !ok {
		panic("unreachable")
	}
	xMin, xMax := p0[0], p0[0]
	yMin, yMax := p0[1], p0[1]
	for _, p := range pts {
		xMin, xMax = min(xMin, p[0]), max(xMax, p[0])
		yMin, yMax = min(yMin, p[1]), max(yMax, p[1])
	}
	return !(xMax-xMin > segmentEpsilon || yMax-yMin > segmentEpsilon)
}

// startTangent returns the first of pts that differs from the subpath's
// start point.
func (pe *PathEncoder) startTangent(pts ...[2]float32) ([2]float32, bool) {
	p0 := pe.firstPoint
	for _, p := range pts {
		if jmath.Abs32(p[0]-p0[0]) > segmentEpsilon || jmath.Abs32(p[1]-p0[1]) > segmentEpsilon {
			return p, true
		}
	}
	return [2]float32{}, false
}

// beginSegment prepares the encoder for a segment ending in end. It returns
// false if the segment must not be encoded.
func (pe *PathEncoder) beginSegment(end [2]float32, pts ...[2]float32) bool {
	if pe.state == pathStateStart {
		if pe.numEncodedSegments == 0 {
			// A leading segment without a move is treated as a move to its
			// end point.
			pe.MoveTo(end[0], end[1])
			return false
		}
		pe.MoveTo(pe.firstPoint[0], pe.firstPoint[1])
	}
	if pe.state == pathStateMoveTo {
		// Avoid zero-length start tangents.
		pt, ok := pe.startTangent(pts...)
		if !ok {
			return false
		}
		pe.firstStartTangentEnd = pt
	}
	return !pe.isZeroLength(pts...)
}

func (pe *PathEncoder) LineTo(x, y float32) {
	p1 := [2]float32{x, y}
	if !pe.beginSegment(p1, p1) {
		return
	}
	pe.pushSegment(PathTagLineToF32, p1)
}

func (pe *PathEncoder) QuadTo(x1, y1, x2, y2 float32) {
	p1 := [2]float32{x1, y1}
	p2 := [2]float32{x2, y2}
	if !pe.beginSegment(p2, p1, p2) {
		return
	}
	pe.pushSegment(PathTagQuadToF32, p1, p2)
}

func (pe *PathEncoder) CubicTo(x1, y1, x2, y2, x3, y3 float32) {
	p1 := [2]float32{x1, y1}
	p2 := [2]float32{x2, y2}
	p3 := [2]float32{x3, y3}
	if !pe.beginSegment(p3, p1, p2, p3) {
		return
	}
	pe.pushSegment(PathTagCubicToF32, p1, p2, p3)
}

func (pe *PathEncoder) Close() {
	switch pe.state {
	case pathStateStart:
		return
	case pathStateMoveTo:
		pe.dropLastPoint()
		pe.state = pathStateStart
		return
	}
	if last, ok := pe.lastPoint(); ok && last != pe.firstPoint {
		pe.appendPoints(pe.firstPoint)
		pe.enc.PathTags = append(pe.enc.PathTags, PathTagLineToF32)
		pe.numEncodedSegments++
	}
	if !pe.isFill {
		pe.insertStrokeCapMarkerSegment(true)
	}
	pe.markSubpathEnd()
	pe.state = pathStateStart
}

func (pe *PathEncoder) PathElements(path iter.Seq[curve.PathElement]) {
	for el := range path {
		switch el.Kind {
		case curve.MoveToKind:
			pe.MoveTo(float32(el.P0.X), float32(el.P0.Y))
		case curve.LineToKind:
			pe.LineTo(float32(el.P0.X), float32(el.P0.Y))
		case curve.QuadToKind:
			pe.QuadTo(float32(el.P0.X), float32(el.P0.Y), float32(el.P1.X), float32(el.P1.Y))
		case curve.CubicToKind:
			pe.CubicTo(
				float32(el.P0.X), float32(el.P0.Y),
				float32(el.P1.X), float32(el.P1.Y),
				float32(el.P2.X), float32(el.P2.Y),
			)
		case curve.ClosePathKind:
			pe.Close()
		}
	}
}

// Finish completes the path and returns the number of encoded segments. If
// insertPathMarker is set and the path isn't empty, a path marker is
// appended.
func (pe *PathEncoder) Finish(insertPathMarker bool) uint32 {
	if pe.isFill {
		pe.Close()
	}
	if pe.state == pathStateMoveTo {
		pe.dropLastPoint()
	}
	if pe.numEncodedSegments != 0 {
		if !pe.isFill && pe.state == pathStateNonemptySubpath {
			pe.insertStrokeCapMarkerSegment(false)
		}
		pe.markSubpathEnd()
		pe.enc.NumPathSegments += pe.numEncodedSegments
		if insertPathMarker {
			pe.enc.PathTags = append(pe.enc.PathTags, PathTagPath)
			pe.enc.NumPaths++
		}
	}
	return pe.numEncodedSegments
}

// insertStrokeCapMarkerSegment encodes the subpath's start tangent after its
// last segment so that the stroker can draw caps (open subpaths) or the
// closing join (closed subpaths).
func (pe *PathEncoder) insertStrokeCapMarkerSegment(isClosed bool) {
	if pe.isFill || pe.state != pathStateNonemptySubpath {
		panic("invalid state")
	}
	if isClosed {
		pe.LineTo(pe.firstStartTangentEnd[0], pe.firstStartTangentEnd[1])
	} else {
		pe.QuadTo(
			pe.firstPoint[0],
			pe.firstPoint[1],
			pe.firstStartTangentEnd[0],
			pe.firstStartTangentEnd[1],
		)
	}
}
