// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package renderer records the GPU uploads needed to draw prepared shapes.
package renderer

import (
	"fmt"
	"slices"
	"sync/atomic"

	"honnef.co/go/swfgpu/jmath"
)

// UniformAlignment is the alignment of uniform buffer sizes.
const UniformAlignment = 16

var resourceID atomic.Uint64

func nextResourceID() ResourceID {
	return ResourceID(resourceID.Add(1))
}

type ResourceID uint64

type BufferProxy struct {
	Size uint64
	ID   ResourceID
	Name string
}

func NewBufferProxy(size uint64, name string) BufferProxy {
	return BufferProxy{size, nextResourceID(), name}
}

type ImageFormat int

const (
	Rgba8 ImageFormat = iota
	Bgra8
)

func (f ImageFormat) BytesPerPixel() uint32 {
	switch f {
	case Rgba8, Bgra8:
		return 4
	default:
		panic(fmt.Sprintf("unhandled value %d", f))
	}
}

type ImageProxy struct {
	Width  uint32
	Height uint32
	Format ImageFormat
	ID     ResourceID
	Name   string
}

func NewImageProxy(width, height uint32, format ImageFormat, name string) ImageProxy {
	return ImageProxy{
		Width:  width,
		Height: height,
		Format: format,
		ID:     nextResourceID(),
		Name:   name,
	}
}

// Command is one of *Upload, *UploadUniform or *UploadImage.
type Command interface {
	isCommand()
}

func (*Upload) isCommand()        {}
func (*UploadUniform) isCommand() {}
func (*UploadImage) isCommand()   {}

// Upload creates a storage buffer filled with Data.
type Upload struct {
	Buffer BufferProxy
	Data   []byte
}

// UploadUniform creates a uniform buffer filled with Data.
type UploadUniform struct {
	Buffer BufferProxy
	Data   []byte
}

// UploadImage creates a texture filled with Data, which is tightly packed.
type UploadImage struct {
	Image ImageProxy
	Data  []byte
}

// Recording is an ordered list of uploads. The data of each command is
// copied when it is recorded.
type Recording struct {
	Commands []Command
}

func (rec *Recording) push(cmd Command) {
	rec.Commands = append(rec.Commands, cmd)
}

func (rec *Recording) Upload(name string, data []byte) BufferProxy {
	buf := NewBufferProxy(uint64(len(data)), name)
	rec.push(&Upload{buf, slices.Clone(data)})
	return buf
}

// UploadUniform records a uniform buffer. The data is zero-padded to a
// multiple of UniformAlignment.
func (rec *Recording) UploadUniform(name string, data []byte) BufferProxy {
	size := jmath.AlignUp(len(data), UniformAlignment)
	padded := make([]byte, size)
	copy(padded, data)
	buf := NewBufferProxy(uint64(size), name)
	rec.push(&UploadUniform{buf, padded})
	return buf
}

func (rec *Recording) UploadImage(name string, width, height uint32, format ImageFormat, data []byte) ImageProxy {
	if want := int(width * height * format.BytesPerPixel()); len(data) != want {
		panic(fmt.Sprintf("image %q: got %d bytes, want %d", name, len(data), want))
	}
	img := NewImageProxy(width, height, format, name)
	rec.push(&UploadImage{img, slices.Clone(data)})
	return img
}

func (rec *Recording) Len() int { return len(rec.Commands) }
