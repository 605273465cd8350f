// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package swf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTwipsToPixels(t *testing.T) {
	tests := []struct {
		twips Twips
		want  float64
	}{
		{0, 0},
		{20, 1},
		{-20, -1},
		{1, 0.05},
		{30, 1.5},
		{-16384, -819.2},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tt.twips.ToPixels(), 1e-12, "%d twips", tt.twips)
	}
}

func TestTwipsFromPixels(t *testing.T) {
	assert.Equal(t, Twips(20), TwipsFromPixels(1))
	assert.Equal(t, Twips(-30), TwipsFromPixels(-1.5))
	assert.Equal(t, Twips(1), TwipsFromPixels(0.05))
	assert.Equal(t, int32(400), TwipsFromPixels(20).Get())
}

func TestMatrixApply(t *testing.T) {
	m := Matrix{
		ScaleX:      2,
		ScaleY:      3,
		RotateSkew0: 0.5,
		RotateSkew1: -1,
		TranslateX:  100,
		TranslateY:  -40,
	}
	x, y := m.Apply(10, 20)
	assert.InDelta(t, 2*10-1*20+100, x, 1e-9)
	assert.InDelta(t, 0.5*10+3*20-40, y, 1e-9)

	x, y = IdentityMatrix.Apply(7, -9)
	assert.Equal(t, 7.0, x)
	assert.Equal(t, -9.0, y)
}

func TestMatrixMul(t *testing.T) {
	a := Matrix{ScaleX: 2, ScaleY: 0.5, RotateSkew0: 0.25, RotateSkew1: 1, TranslateX: 40, TranslateY: 60}
	b := Matrix{ScaleX: 1, ScaleY: 2, RotateSkew0: -1, RotateSkew1: 0.5, TranslateX: -20, TranslateY: 10}
	ab := a.Mul(b)

	for _, p := range [][2]float64{{0, 0}, {10, 0}, {0, 10}, {-30, 70}} {
		wantX, wantY := a.Apply(b.Apply(p[0], p[1]))
		gotX, gotY := ab.Apply(p[0], p[1])
		assert.InDelta(t, wantX, gotX, 1e-4)
		assert.InDelta(t, wantY, gotY, 1e-4)
	}

	assert.Equal(t, a, a.Mul(IdentityMatrix))
	assert.Equal(t, TranslateMatrix(60, 80), TranslateMatrix(20, 30).Mul(TranslateMatrix(40, 50)))
	assert.Equal(t, ScaleMatrix(6, 8), ScaleMatrix(2, 4).Mul(ScaleMatrix(3, 2)))
}

func TestRGBAPremultiplied(t *testing.T) {
	assert.Equal(t, RGBA{255, 128, 0, 255}, RGBA{255, 128, 0, 255}.Premultiplied())
	assert.Equal(t, RGBA{0, 0, 0, 0}, RGBA{255, 255, 255, 0}.Premultiplied())
	assert.Equal(t, RGBA{128, 64, 0, 128}, RGBA{255, 128, 0, 128}.Premultiplied())
}
