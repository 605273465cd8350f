// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package shape

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/curve"
	"honnef.co/go/swfgpu/swf"
)

func pt(x, y float64) curve.Point { return curve.Point{X: x, Y: y} }

func TestPoint(t *testing.T) {
	tests := []struct {
		x, y swf.Twips
		want curve.Point
	}{
		{0, 0, pt(0, 0)},
		{20, 40, pt(1, 2)},
		{-20, 10, pt(-1, 0.5)},
		{1, -1, pt(0.05, -0.05)},
		{1 << 30, -(1 << 30), pt(float64(1<<30)/20, -float64(1<<30)/20)},
	}
	for _, tt := range tests {
		got := Point(tt.x, tt.y)
		assert.InDelta(t, tt.want.X, got.X, 1e-9)
		assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		assert.Equal(t, tt.x.ToPixels(), got.X)
		assert.Equal(t, tt.y.ToPixels(), got.Y)
	}
}

func TestBuildPathEmpty(t *testing.T) {
	for _, closed := range []bool{false, true} {
		p := BuildPath(nil, closed)
		assert.True(t, p.IsEmpty())
		assert.Equal(t, 0, p.Len())
		assert.False(t, p.Closed)
		assert.Empty(t, slices.Collect(p.Elements()))

		_, ok := p.Bounds()
		assert.False(t, ok)
	}
}

func TestBuildPathClosedTriangle(t *testing.T) {
	p := BuildPath([]swf.DrawCommand{
		swf.MoveTo{X: 0, Y: 0},
		swf.LineTo{X: 20, Y: 0},
		swf.LineTo{X: 20, Y: 20},
	}, true)

	require.True(t, p.Closed)
	assert.Equal(t, []curve.PathElement{
		{Kind: curve.MoveToKind, P0: pt(0, 0)},
		{Kind: curve.LineToKind, P0: pt(1, 0)},
		{Kind: curve.LineToKind, P0: pt(1, 1)},
		{Kind: curve.ClosePathKind},
	}, slices.Collect(p.Elements()))

	bbox, ok := p.Bounds()
	require.True(t, ok)
	assert.Equal(t, [4]float64{0, 0, 1, 1}, bbox)
}

func TestBuildPathOpen(t *testing.T) {
	p := BuildPath([]swf.DrawCommand{
		swf.MoveTo{X: 0, Y: 0},
		swf.LineTo{X: 20, Y: 0},
	}, false)
	assert.False(t, p.Closed)
	assert.Equal(t, 2, p.Len())
	for el := range p.Elements() {
		assert.NotEqual(t, curve.ClosePathKind, el.Kind)
	}
}

func TestBuildPathCurve(t *testing.T) {
	p := BuildPath([]swf.DrawCommand{
		swf.MoveTo{X: 0, Y: 0},
		swf.CurveTo{X1: 40, Y1: -20, X2: 80, Y2: 0},
	}, false)
	assert.Equal(t, []curve.PathElement{
		{Kind: curve.MoveToKind, P0: pt(0, 0)},
		{Kind: curve.QuadToKind, P0: pt(2, -1), P1: pt(4, 0)},
	}, slices.Collect(p.Elements()))

	bbox, ok := p.Bounds()
	require.True(t, ok)
	assert.Equal(t, [4]float64{0, -1, 4, 0}, bbox)
}

func TestBuildPathMidMoveTo(t *testing.T) {
	p := BuildPath([]swf.DrawCommand{
		swf.MoveTo{X: 0, Y: 0},
		swf.LineTo{X: 20, Y: 0},
		swf.MoveTo{X: 100, Y: 100},
		swf.LineTo{X: 120, Y: 100},
	}, true)

	els := slices.Collect(p.Elements())
	require.Len(t, els, 5)
	assert.Equal(t, curve.PathElement{Kind: curve.MoveToKind, P0: pt(5, 5)}, els[2])
	assert.Equal(t, curve.ClosePathKind, els[4].Kind)
	// Only the last subpath gets closed.
	assert.Equal(t, 1, countCloses(els))
}

func TestBuildPathImplicitOrigin(t *testing.T) {
	tests := []struct {
		name     string
		commands []swf.DrawCommand
		want     []curve.PathElement
	}{
		{
			"line",
			[]swf.DrawCommand{
				swf.LineTo{X: 20, Y: 0},
				swf.LineTo{X: 20, Y: 20},
			},
			[]curve.PathElement{
				{Kind: curve.MoveToKind, P0: pt(0, 0)},
				{Kind: curve.LineToKind, P0: pt(1, 0)},
				{Kind: curve.LineToKind, P0: pt(1, 1)},
				{Kind: curve.ClosePathKind},
			},
		},
		{
			"curve",
			[]swf.DrawCommand{
				swf.CurveTo{X1: 20, Y1: 20, X2: 40, Y2: 0},
			},
			[]curve.PathElement{
				{Kind: curve.MoveToKind, P0: pt(0, 0)},
				{Kind: curve.QuadToKind, P0: pt(1, 1), P1: pt(2, 0)},
				{Kind: curve.ClosePathKind},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPath(tt.commands, true)
			assert.Equal(t, tt.want, slices.Collect(p.Elements()))
		})
	}
}

func TestBuildPathExplicitMoveNotDoubled(t *testing.T) {
	p := BuildPath([]swf.DrawCommand{
		swf.MoveTo{X: 20, Y: 20},
		swf.LineTo{X: 40, Y: 20},
	}, false)
	els := slices.Collect(p.Elements())
	require.Len(t, els, 2)
	assert.Equal(t, curve.PathElement{Kind: curve.MoveToKind, P0: pt(1, 1)}, els[0])
}

func countCloses(els []curve.PathElement) int {
	n := 0
	for _, el := range els {
		if el.Kind == curve.ClosePathKind {
			n++
		}
	}
	return n
}
