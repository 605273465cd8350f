// Copyright 2022 the Vello Authors
// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package renderer

import (
	"cmp"
	"encoding/binary"
	"slices"
	"strings"

	"honnef.co/go/color"
	"honnef.co/go/safeish"
	"honnef.co/go/swfgpu/swf"
)

const (
	// RampWidth is the number of samples in a single ramp.
	RampWidth = 256
	// RetainedRamps is the default number of ramps kept across calls to
	// Maintain.
	RetainedRamps = 64
)

// Ramps is an image with one gradient ramp per row.
type Ramps struct {
	// Premultiplied RGBA8, tightly packed.
	Data   [][4]uint8
	Width  uint32
	Height uint32
}

// Bytes returns a byte view of the ramp data.
func (r Ramps) Bytes() []byte {
	return safeish.SliceCast[[]byte](r.Data)
}

type rampCacheEntry struct {
	id    uint32
	epoch uint64
}

// RampCache deduplicates gradient ramps. It is not safe for concurrent use.
type RampCache struct {
	retained int
	epoch    uint64
	// mapping from encoded []GradientRecord
	mapping map[string]*rampCacheEntry
	data    [][4]uint8

	// slice reused across calls to Add, used for building the map key.
	key []byte
}

// NewRampCache returns a cache that keeps up to retained ramps across calls
// to Maintain. A non-positive value selects RetainedRamps.
func NewRampCache(retained int) *RampCache {
	if retained <= 0 {
		retained = RetainedRamps
	}
	return &RampCache{
		retained: retained,
		mapping:  map[string]*rampCacheEntry{},
	}
}

// Maintain starts a new epoch. Ramps past the retention limit are dropped.
func (rc *RampCache) Maintain() {
	rc.epoch++
	if len(rc.data) > rc.retained*RampWidth {
		for k, v := range rc.mapping {
			if v.id >= uint32(rc.retained) {
				delete(rc.mapping, k)
			}
		}
		rc.data = rc.data[:rc.retained*RampWidth]
	}
}

// Add returns the row of the ramp for records interpolated using interp,
// creating it if needed.
func (rc *RampCache) Add(records []swf.GradientRecord, interp swf.Interpolation) uint32 {
	key := rc.key[:0]
	key = append(key, uint8(interp))
	// Adding the number of records makes the key unique for different length
	// sequences that would have the same concatenation.
	key = binary.LittleEndian.AppendUint32(key, uint32(len(records)))
	for _, r := range records {
		key = append(key, r.Ratio, r.Color.R, r.Color.G, r.Color.B, r.Color.A)
	}
	rc.key = key[:0]

	keyStr := safeish.Cast[string](key)
	if entry, ok := rc.mapping[keyStr]; ok {
		entry.epoch = rc.epoch
		return entry.id
	}
	if len(rc.mapping) >= rc.retained {
		for k, entry := range rc.mapping {
			if entry.epoch+2 < rc.epoch {
				delete(rc.mapping, k)
				start := int(entry.id) * RampWidth
				copy(rc.data[start:start+RampWidth], makeRamp(records, interp))
				entry.epoch = rc.epoch
				rc.mapping[strings.Clone(keyStr)] = entry
				return entry.id
			}
		}
	}
	id := uint32(len(rc.data) / RampWidth)
	rc.data = append(rc.data, makeRamp(records, interp)...)
	// Copy the key so it no longer aliases a slice
	rc.mapping[strings.Clone(keyStr)] = &rampCacheEntry{id, rc.epoch}
	return id
}

// Len returns the number of rows.
func (rc *RampCache) Len() int {
	return len(rc.data) / RampWidth
}

func (rc *RampCache) Ramps() Ramps {
	return Ramps{
		Data:   rc.data,
		Width:  RampWidth,
		Height: uint32(len(rc.data) / RampWidth),
	}
}

func lerp8(a, b uint8, t float64) float64 {
	return float64(a) + (float64(b)-float64(a))*t
}

func unorm8(v float64) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}

func toLinear(c swf.RGBA) [3]float64 {
	lc := color.Make(color.SRGB, float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, 1).Convert(color.LinearSRGB)
	return [3]float64{lc.Values[0], lc.Values[1], lc.Values[2]}
}

// lerpLinear interpolates the color channels of a and b in linear sRGB.
// Alpha is interpolated as is.
func lerpLinear(a, b swf.RGBA, t float64) swf.RGBA {
	la, lb := toLinear(a), toLinear(b)
	var v [3]float64
	for k := range v {
		v[k] = la[k] + (lb[k]-la[k])*t
	}
	c := color.Make(color.LinearSRGB, v[0], v[1], v[2], 1).Convert(color.SRGB)
	return swf.RGBA{
		R: unorm8(c.Values[0]),
		G: unorm8(c.Values[1]),
		B: unorm8(c.Values[2]),
		A: uint8(lerp8(a.A, b.A, t) + 0.5),
	}
}

func makeRamp(records []swf.GradientRecord, interp swf.Interpolation) [][4]uint8 {
	out := make([][4]uint8, RampWidth)
	if len(records) == 0 {
		return out
	}
	if !slices.IsSortedFunc(records, cmpRatio) {
		records = slices.Clone(records)
		slices.SortStableFunc(records, cmpRatio)
	}

	j := 0
	for i := range RampWidth {
		// Sample i sits at ratio i, the range of GradientRecord.Ratio.
		for j+1 < len(records) && int(records[j+1].Ratio) < i {
			j++
		}
		var c swf.RGBA
		switch {
		case i <= int(records[0].Ratio):
			c = records[0].Color
		case j+1 >= len(records):
			c = records[j].Color
		default:
			lo, hi := records[j], records[j+1]
			du := float64(hi.Ratio) - float64(lo.Ratio)
			if du == 0 {
				c = hi.Color
			} else {
				t := (float64(i) - float64(lo.Ratio)) / du
				if interp == swf.InterpolateLinearRGB {
					c = lerpLinear(lo.Color, hi.Color, t)
					break
				}
				c = swf.RGBA{
					R: uint8(lerp8(lo.Color.R, hi.Color.R, t) + 0.5),
					G: uint8(lerp8(lo.Color.G, hi.Color.G, t) + 0.5),
					B: uint8(lerp8(lo.Color.B, hi.Color.B, t) + 0.5),
					A: uint8(lerp8(lo.Color.A, hi.Color.A, t) + 0.5),
				}
			}
		}
		p := c.Premultiplied()
		out[i] = [4]uint8{p.R, p.G, p.B, p.A}
	}
	return out
}

func cmpRatio(a, b swf.GradientRecord) int {
	return cmp.Compare(a.Ratio, b.Ratio)
}
