// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package shape turns SWF draw commands into paths for the encoder.
package shape

import (
	"fmt"
	"iter"
	"slices"

	"honnef.co/go/curve"
	"honnef.co/go/swfgpu/swf"
)

// Point converts a twips coordinate pair to a point in pixels.
func Point(x, y swf.Twips) curve.Point {
	return curve.Point{X: x.ToPixels(), Y: y.ToPixels()}
}

// Path is a sequence of path elements in pixel space.
type Path struct {
	elements []curve.PathElement
	// Closed reports whether the last subpath ends with a close element.
	Closed bool
}

// BuildPath folds commands into a path. The pen starts at the origin: if the
// first command isn't a MoveTo, the path begins with a move to (0, 0). A
// MoveTo after the first command starts a new, open subpath. If closed is
// set, the last subpath is closed back to its start point. An empty command
// list produces an empty path.
func BuildPath(commands []swf.DrawCommand, closed bool) Path {
	var p Path
	if len(commands) != 0 {
		if _, ok := commands[0].(swf.MoveTo); !ok {
			p.elements = append(p.elements, curve.PathElement{
				Kind: curve.MoveToKind,
				P0:   Point(0, 0),
			})
		}
	}
	for _, cmd := range commands {
		switch cmd := cmd.(type) {
		case swf.MoveTo:
			p.elements = append(p.elements, curve.PathElement{
				Kind: curve.MoveToKind,
				P0:   Point(cmd.X, cmd.Y),
			})
		case swf.LineTo:
			p.elements = append(p.elements, curve.PathElement{
				Kind: curve.LineToKind,
				P0:   Point(cmd.X, cmd.Y),
			})
		case swf.CurveTo:
			p.elements = append(p.elements, curve.PathElement{
				Kind: curve.QuadToKind,
				P0:   Point(cmd.X1, cmd.Y1),
				P1:   Point(cmd.X2, cmd.Y2),
			})
		default:
			panic(fmt.Sprintf("unhandled type %T", cmd))
		}
	}
	if closed && len(p.elements) != 0 {
		p.elements = append(p.elements, curve.PathElement{Kind: curve.ClosePathKind})
		p.Closed = true
	}
	return p
}

func (p Path) Len() int { return len(p.elements) }

func (p Path) IsEmpty() bool { return len(p.elements) == 0 }

// Elements returns the path's elements in order.
func (p Path) Elements() iter.Seq[curve.PathElement] {
	return slices.Values(p.elements)
}

// Bounds returns the bounding box of all points of the path, including
// control points, as (x0, y0, x1, y1). It returns false for empty paths.
func (p Path) Bounds() ([4]float64, bool) {
	var (
		bbox [4]float64
		ok   bool
	)
	add := func(pt curve.Point) {
		if !ok {
			bbox = [4]float64{pt.X, pt.Y, pt.X, pt.Y}
			ok = true
			return
		}
		bbox[0] = min(bbox[0], pt.X)
		bbox[1] = min(bbox[1], pt.Y)
		bbox[2] = max(bbox[2], pt.X)
		bbox[3] = max(bbox[3], pt.Y)
	}
	for _, el := range p.elements {
		switch el.Kind {
		case curve.MoveToKind, curve.LineToKind:
			add(el.P0)
		case curve.QuadToKind:
			add(el.P0)
			add(el.P1)
		case curve.CubicToKind:
			add(el.P0)
			add(el.P1)
			add(el.P2)
		}
	}
	return bbox, ok
}
