// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gpu

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/swfgpu/renderer"
	"honnef.co/go/wgpu"
)

func TestPoolSizeClass(t *testing.T) {
	tests := []struct {
		in, want uint64
	}{
		{1, 2},
		{2, 2},
		{4, 4},
		{5, 6},
		{7, 8},
		{9, 12},
		{100, 128},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, poolSizeClass(tt.in, 1), "size %d", tt.in)
	}
}

func TestBufferSize(t *testing.T) {
	assert.Equal(t, uint64(4), bufferSize(0))
	assert.Equal(t, uint64(4), bufferSize(3))
	assert.Equal(t, uint64(8), bufferSize(5))
	assert.Equal(t, uint64(96), bufferSize(96))
}

func TestPadData(t *testing.T) {
	aligned := []byte{1, 2, 3, 4}
	assert.Equal(t, aligned, padData(aligned))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 0, 0, 0}, padData([]byte{1, 2, 3, 4, 5}))
	assert.Equal(t, []byte{9, 0, 0, 0}, padData([]byte{9}))
}

func TestPooledProperties(t *testing.T) {
	usage := wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
	tests := []struct {
		size uint64
		want uint64
	}{
		{0, 4},
		{3, 4},
		{5, 8},
		{9, 12},
		{64, 64},
		{96, 128},
		{100, 128},
	}
	for _, tt := range tests {
		props := pooledProperties(tt.size, usage)
		assert.Equal(t, tt.want, props.size, "size %d", tt.size)
		assert.Equal(t, usage, props.usages)
	}
}

func TestPoolKeying(t *testing.T) {
	storage := wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc
	uniform := wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst

	var pool Pool
	buf := (*wgpu.Buffer)(unsafe.Pointer(new(uint64)))
	// A buffer created for a 5 byte request has the size class of 8 bytes,
	// which put derives from the buffer itself.
	pool.insert(bufferProperties{size: 8, usages: storage}, buf)
	require.Equal(t, 1, pool.Len())

	_, ok := pool.take(pooledProperties(9, storage))
	assert.False(t, ok, "larger size class")
	_, ok = pool.take(pooledProperties(5, uniform))
	assert.False(t, ok, "other usage")

	got, ok := pool.take(pooledProperties(7, storage))
	require.True(t, ok)
	assert.Same(t, buf, got)
	assert.Zero(t, pool.Len())

	_, ok = pool.take(pooledProperties(7, storage))
	assert.False(t, ok)
}

func TestReleaseEmpty(t *testing.T) {
	var pool Pool
	pool.Release()
	assert.Zero(t, pool.Len())

	res := &Resources{
		Buffers:  map[renderer.ResourceID]*wgpu.Buffer{},
		Textures: map[renderer.ResourceID]Texture{},
		pool:     &pool,
	}
	res.Release()
	assert.Empty(t, res.Buffers)
	assert.Empty(t, res.Textures)
}

func TestImageFormatToWGPU(t *testing.T) {
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, imageFormatToWGPU(renderer.Rgba8))
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, imageFormatToWGPU(renderer.Bgra8))
	assert.Panics(t, func() { imageFormatToWGPU(renderer.ImageFormat(99)) })
}
