// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package gpu executes upload recordings on a wgpu device.
package gpu

import (
	"fmt"
	"math"
	"math/bits"

	"honnef.co/go/swfgpu/jmath"
	"honnef.co/go/swfgpu/renderer"
	"honnef.co/go/wgpu"
)

// CopyBufferAlignment is the alignment of buffer sizes and of the data
// written to them.
const CopyBufferAlignment = 4

// CreateBufferWithData creates a buffer and queues a write of data into it.
// The buffer is at least as large as data, rounded up to
// CopyBufferAlignment.
func CreateBufferWithData(
	dev *wgpu.Device,
	queue *wgpu.Queue,
	data []byte,
	usage wgpu.BufferUsage,
	label string,
) *wgpu.Buffer {
	buf := dev.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  bufferSize(uint64(len(data))),
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	writeBuffer(queue, buf, data)
	return buf
}

func writeBuffer(queue *wgpu.Queue, buf *wgpu.Buffer, data []byte) {
	if len(data) == 0 {
		return
	}
	queue.WriteBuffer(buf, 0, padData(data))
}

// padData zero-pads data to a multiple of CopyBufferAlignment. Aligned data
// is returned as is.
func padData(data []byte) []byte {
	if len(data)%CopyBufferAlignment == 0 {
		return data
	}
	padded := make([]byte, jmath.AlignUp(len(data), CopyBufferAlignment))
	copy(padded, data)
	return padded
}

func bufferSize(n uint64) uint64 {
	return jmath.AlignUp(max(n, CopyBufferAlignment), CopyBufferAlignment)
}

type bufferProperties struct {
	size   uint64
	usages wgpu.BufferUsage
}

// Pool keeps released buffers for reuse by later calls to Pool.Run. The zero
// value is ready to use. A Pool is not safe for concurrent use.
type Pool struct {
	bufs map[bufferProperties][]*wgpu.Buffer
}

// pooledProperties returns the properties of the pooled buffer that serves a
// request for size bytes. Buffers are created with exactly this size, so the
// key computed by put from a buffer matches.
func pooledProperties(size uint64, usage wgpu.BufferUsage) bufferProperties {
	const sizeClassBits = 1

	return bufferProperties{
		size:   poolSizeClass(bufferSize(size), sizeClassBits),
		usages: usage,
	}
}

func (pool *Pool) getBuf(
	size uint64,
	name string,
	usage wgpu.BufferUsage,
	dev *wgpu.Device,
) *wgpu.Buffer {
	props := pooledProperties(size, usage)
	if buf, ok := pool.take(props); ok {
		return buf
	}
	return dev.CreateBuffer(&wgpu.BufferDescriptor{
		Label: name,
		Size:  props.size,
		Usage: usage,
	})
}

func (pool *Pool) take(props bufferProperties) (*wgpu.Buffer, bool) {
	bufVec := pool.bufs[props]
	if len(bufVec) == 0 {
		return nil, false
	}
	buf := bufVec[len(bufVec)-1]
	pool.bufs[props] = bufVec[:len(bufVec)-1]
	return buf, true
}

func (pool *Pool) put(buf *wgpu.Buffer) {
	pool.insert(bufferProperties{
		size:   buf.Size(),
		usages: buf.Usage(),
	}, buf)
}

func (pool *Pool) insert(props bufferProperties, buf *wgpu.Buffer) {
	if pool.bufs == nil {
		pool.bufs = map[bufferProperties][]*wgpu.Buffer{}
	}
	pool.bufs[props] = append(pool.bufs[props], buf)
}

// Len returns the number of pooled buffers.
func (pool *Pool) Len() int {
	n := 0
	for _, bufVec := range pool.bufs {
		n += len(bufVec)
	}
	return n
}

// Release releases all pooled buffers.
func (pool *Pool) Release() {
	for _, bufVec := range pool.bufs {
		for _, buf := range bufVec {
			buf.Release()
		}
	}
	clear(pool.bufs)
}

func poolSizeClass(x uint64, numBits uint32) uint64 {
	if x > 1<<numBits {
		a := bits.LeadingZeros64(x - 1)
		b := (x - 1) | (((math.MaxUint64 / 2) >> numBits) >> a)
		return b + 1
	} else {
		return 1 << numBits
	}
}

type Texture struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
}

// Resources holds the GPU objects created for a recording, keyed by the IDs
// of their proxies.
type Resources struct {
	Buffers  map[renderer.ResourceID]*wgpu.Buffer
	Textures map[renderer.ResourceID]Texture

	pool *Pool
}

// Release frees all resources. Buffers go back to the pool they came from,
// if any.
func (res *Resources) Release() {
	for id, buf := range res.Buffers {
		if res.pool != nil {
			res.pool.put(buf)
		} else {
			buf.Release()
		}
		delete(res.Buffers, id)
	}
	for id, tex := range res.Textures {
		tex.View.Release()
		tex.Texture.Release()
		delete(res.Textures, id)
	}
}

// Run creates and fills a GPU object for every command in rec.
func Run(dev *wgpu.Device, queue *wgpu.Queue, rec *renderer.Recording) *Resources {
	return run(dev, queue, nil, rec)
}

// Run is like the package-level Run but takes buffers from the pool.
func (pool *Pool) Run(dev *wgpu.Device, queue *wgpu.Queue, rec *renderer.Recording) *Resources {
	return run(dev, queue, pool, rec)
}

func run(dev *wgpu.Device, queue *wgpu.Queue, pool *Pool, rec *renderer.Recording) *Resources {
	res := &Resources{
		Buffers:  map[renderer.ResourceID]*wgpu.Buffer{},
		Textures: map[renderer.ResourceID]Texture{},
		pool:     pool,
	}
	newBuf := func(proxy renderer.BufferProxy, usage wgpu.BufferUsage) *wgpu.Buffer {
		if pool != nil {
			return pool.getBuf(proxy.Size, Label("%s", proxy.Name), usage, dev)
		}
		return dev.CreateBuffer(&wgpu.BufferDescriptor{
			Label: Label("%s", proxy.Name),
			Size:  bufferSize(proxy.Size),
			Usage: usage,
		})
	}

	for _, cmd := range rec.Commands {
		switch cmd := cmd.(type) {
		case *renderer.Upload:
			usage := wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst | wgpu.BufferUsageStorage
			buf := newBuf(cmd.Buffer, usage)
			writeBuffer(queue, buf, cmd.Data)
			res.Buffers[cmd.Buffer.ID] = buf

		case *renderer.UploadUniform:
			usage := wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
			buf := newBuf(cmd.Buffer, usage)
			writeBuffer(queue, buf, cmd.Data)
			res.Buffers[cmd.Buffer.ID] = buf

		case *renderer.UploadImage:
			res.Textures[cmd.Image.ID] = uploadImage(dev, queue, cmd.Image, cmd.Data)

		default:
			panic(fmt.Sprintf("unhandled type %T", cmd))
		}
	}
	return res
}

func uploadImage(dev *wgpu.Device, queue *wgpu.Queue, proxy renderer.ImageProxy, data []byte) Texture {
	format := imageFormatToWGPU(proxy.Format)
	blockSize, ok := format.BlockCopySize(wgpu.TextureAspectAll)
	if !ok {
		panic("image format must have a valid block size")
	}
	// Textures cannot be empty.
	width, height := max(proxy.Width, 1), max(proxy.Height, 1)
	texture := dev.CreateTexture(&wgpu.TextureDescriptor{
		Label: Label("%s", proxy.Name),
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Format:        format,
	})
	view := texture.CreateView(&wgpu.TextureViewDescriptor{
		Dimension:       wgpu.TextureViewDimension2D,
		Aspect:          wgpu.TextureAspectAll,
		MipLevelCount:   ^uint32(0),
		ArrayLayerCount: ^uint32(0),
		Format:          format,
	})
	if len(data) > 0 {
		queue.WriteTexture(
			&wgpu.ImageCopyTexture{
				Texture:  texture,
				MipLevel: 0,
				Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
				Aspect:   wgpu.TextureAspectAll,
			},
			data,
			&wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  proxy.Width * blockSize,
				RowsPerImage: proxy.Height,
			},
			&wgpu.Extent3D{
				Width:              proxy.Width,
				Height:             proxy.Height,
				DepthOrArrayLayers: 1,
			},
		)
	}
	return Texture{texture, view}
}

func imageFormatToWGPU(f renderer.ImageFormat) wgpu.TextureFormat {
	switch f {
	case renderer.Rgba8:
		return wgpu.TextureFormatRGBA8Unorm
	case renderer.Bgra8:
		return wgpu.TextureFormatBGRA8Unorm
	default:
		panic(fmt.Sprintf("unhandled value %d", f))
	}
}
