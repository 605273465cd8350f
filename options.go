// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package swfgpu

import (
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"honnef.co/go/swfgpu/renderer"
)

var ErrUnknownPolicy = errors.New("unknown degenerate paint policy")

// DegeneratePolicy selects what happens to a paint whose transform cannot be
// inverted.
type DegeneratePolicy int

const (
	// The paint is left out and the shape draws nothing.
	PolicySkip DegeneratePolicy = iota
	// The identity paint matrix is used instead.
	PolicyIdentity
	// Prepare returns the error.
	PolicyError
)

func (p DegeneratePolicy) String() string {
	switch p {
	case PolicySkip:
		return "skip"
	case PolicyIdentity:
		return "identity"
	case PolicyError:
		return "error"
	default:
		return fmt.Sprintf("DegeneratePolicy(%d)", int(p))
	}
}

func (p DegeneratePolicy) MarshalText() ([]byte, error) {
	switch p {
	case PolicySkip, PolicyIdentity, PolicyError:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("%d: %w", int(p), ErrUnknownPolicy)
	}
}

func (p *DegeneratePolicy) UnmarshalText(b []byte) error {
	switch string(b) {
	case "skip":
		*p = PolicySkip
	case "identity":
		*p = PolicyIdentity
	case "error":
		*p = PolicyError
	default:
		return fmt.Errorf("%q: %w", b, ErrUnknownPolicy)
	}
	return nil
}

type Options struct {
	DegeneratePaint DegeneratePolicy
	// Number of gradient ramps kept between frames.
	MaxRamps int
}

// fileOptions is the TOML form of Options. Absent keys are nil.
type fileOptions struct {
	DegeneratePaint *string `toml:"degenerate_paint"`
	MaxRamps        *int    `toml:"max_ramps"`
}

func DefaultOptions() Options {
	return Options{
		DegeneratePaint: PolicySkip,
		MaxRamps:        renderer.RetainedRamps,
	}
}

// LoadOptions reads TOML-encoded options from r. Keys missing from the input
// keep their default values.
func LoadOptions(r io.Reader) (Options, error) {
	var fopts fileOptions
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fopts); err != nil {
		return Options{}, fmt.Errorf("decode options: %w", err)
	}

	opts := DefaultOptions()
	if fopts.DegeneratePaint != nil {
		if err := opts.DegeneratePaint.UnmarshalText([]byte(*fopts.DegeneratePaint)); err != nil {
			return Options{}, fmt.Errorf("degenerate_paint: %w", err)
		}
	}
	if fopts.MaxRamps != nil {
		opts.MaxRamps = *fopts.MaxRamps
	}
	return opts, nil
}
