// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package swfgpu

import (
	"errors"
	"fmt"
	"sync"

	"honnef.co/go/swfgpu/encoding"
	"honnef.co/go/swfgpu/jmath"
	"honnef.co/go/swfgpu/paint"
	"honnef.co/go/swfgpu/renderer"
	"honnef.co/go/swfgpu/shape"
	"honnef.co/go/swfgpu/swf"
)

// Preparer records the uploads for shapes. It is safe for concurrent use.
type Preparer struct {
	opts Options

	mu    sync.Mutex
	ramps *renderer.RampCache
}

func NewPreparer(opts Options) *Preparer {
	return &Preparer{
		opts:  opts,
		ramps: renderer.NewRampCache(opts.MaxRamps),
	}
}

// Prepare encodes s and records its buffers in rec. Gradient ramps are
// collected until the next call to FlushRamps.
func (p *Preparer) Prepare(rec *renderer.Recording, s Shape) (Prepared, error) {
	path := shape.BuildPath(s.Commands, s.Closed)

	var enc encoding.Encoding
	enc.EncodeTransform(jmath.TransformFromSWF(s.Transform))
	isFill := s.Stroke == nil
	if isFill {
		enc.EncodeFillStyle(s.FillRule)
	} else {
		enc.EncodeStrokeStyle(*s.Stroke)
	}
	if !enc.EncodePathElements(path.Elements(), isFill) {
		return Prepared{Empty: true}, nil
	}

	var out Prepared
	out.NumSegments = enc.NumPathSegments
	out.Bounds, _ = path.Bounds()

	if err := p.encodePaint(rec, &enc, s.Fill, &out); err != nil {
		return Prepared{}, err
	}

	out.PathTags = rec.Upload("path tags", enc.PathTagBytes())
	out.PathData = rec.Upload("path data", enc.PathData)
	out.Transforms = rec.Upload("transforms", enc.TransformBytes())
	out.Styles = rec.Upload("styles", enc.StyleBytes())
	out.DrawTags = rec.Upload("draw tags", enc.DrawTagBytes())
	out.DrawData = rec.Upload("draw data", enc.DrawData)
	return out, nil
}

func (p *Preparer) encodePaint(
	rec *renderer.Recording,
	enc *encoding.Encoding,
	fill swf.FillStyle,
	out *Prepared,
) error {
	switch fill := fill.(type) {
	case nil:
	case swf.SolidFill:
		enc.EncodeColor(fill.Color)

	case swf.GradientFill:
		m, err := paint.InvertGradient(fill.Matrix)
		m, ok, err := p.degenerate(m, err)
		if err != nil {
			return fmt.Errorf("gradient paint: %w", err)
		}
		if !ok {
			out.PaintSkipped = true
			return nil
		}
		out.RampIndex = p.addRamp(fill.Records, fill.Interpolation)
		u := paint.MakeGradientUniforms(fill, m, out.RampIndex)
		out.Uniforms = rec.UploadUniform("gradient uniforms", u.Bytes())
		out.HasUniforms = true
		enc.EncodeGradient(fill.Kind, 0)

	case swf.BitmapFill:
		m, err := paint.InvertBitmap(fill.Matrix, fill.Width, fill.Height)
		m, ok, err := p.degenerate(m, err)
		if err != nil {
			return fmt.Errorf("bitmap paint: %w", err)
		}
		if !ok {
			out.PaintSkipped = true
			return nil
		}
		u := paint.MakeBitmapUniforms(fill, m)
		out.Uniforms = rec.UploadUniform("bitmap uniforms", u.Bytes())
		out.HasUniforms = true
		enc.EncodeImage(0, fill.Width, fill.Height)

	default:
		panic(fmt.Sprintf("unhandled type %T", fill))
	}
	return nil
}

// degenerate applies the degenerate paint policy to the result of inverting
// a paint transform. It returns false if the paint should be left out.
func (p *Preparer) degenerate(m jmath.RenderMatrix, err error) (jmath.RenderMatrix, bool, error) {
	if err == nil {
		return m, true, nil
	}
	if !errors.Is(err, paint.ErrDegenerateTransform) {
		return jmath.RenderMatrix{}, false, err
	}
	switch p.opts.DegeneratePaint {
	case PolicySkip:
		Logger().Debug("skipping paint", "err", err)
		return jmath.RenderMatrix{}, false, nil
	case PolicyIdentity:
		Logger().Debug("using identity paint matrix", "err", err)
		return jmath.IdentityRenderMatrix, true, nil
	case PolicyError:
		return jmath.RenderMatrix{}, false, err
	default:
		return jmath.RenderMatrix{}, false, fmt.Errorf("%v: %w", p.opts.DegeneratePaint, ErrUnknownPolicy)
	}
}

func (p *Preparer) addRamp(records []swf.GradientRecord, interp swf.Interpolation) uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := p.ramps.Len()
	id := p.ramps.Add(records, interp)
	if p.ramps.Len() > n {
		Logger().Debug("ramp cache grew", "ramps", p.ramps.Len())
	}
	return id
}

// FlushRamps records the ramp image for the gradients prepared since the
// last flush and starts a new cache epoch. It returns false if there are no
// ramps.
func (p *Preparer) FlushRamps(rec *renderer.Recording) (renderer.ImageProxy, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.ramps.Maintain()
	ramps := p.ramps.Ramps()
	if ramps.Height == 0 {
		return renderer.ImageProxy{}, false
	}
	return rec.UploadImage("gradient ramps", ramps.Width, ramps.Height, renderer.Rgba8, ramps.Bytes()), true
}
