// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package swf

// DrawCommand is one of MoveTo, LineTo or CurveTo.
type DrawCommand interface {
	isDrawCommand()
}

type MoveTo struct {
	X, Y Twips
}

type LineTo struct {
	X, Y Twips
}

// CurveTo is a quadratic Bézier segment. (X1, Y1) is the control point and
// (X2, Y2) the endpoint.
type CurveTo struct {
	X1, Y1 Twips
	X2, Y2 Twips
}

func (MoveTo) isDrawCommand()  {}
func (LineTo) isDrawCommand()  {}
func (CurveTo) isDrawCommand() {}
