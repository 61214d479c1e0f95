// Copyright 2026 The gorender Authors
// SPDX-License-Identifier: BSD-3-Clause

package ioformat

import (
	"io"

	core "github.com/gorender/core"
	"github.com/gorender/core/mathutil"
	"github.com/gorender/core/shading"
)

// DecodeTexture decodes the texture binary format: a header of four u32
// fields (width, height, mip count, total texel count) followed by RGB
// float triples for every mip level, concatenated level by level from
// largest to smallest. The decoded levels feed shading.NewMipMapFromLevels
// directly; no resampling happens here, mirroring the format's pre-baked
// pyramid. DDS textures are out of scope for this decoder; the asset
// collaborator handles that path.
func DecodeTexture(r io.Reader) (*shading.MipMap, error) {
	width, err := readU32(r)
	if err != nil {
		return nil, core.ErrTruncatedStream
	}
	height, err := readU32(r)
	if err != nil {
		return nil, core.ErrTruncatedStream
	}
	mipCount, err := readU32(r)
	if err != nil {
		return nil, core.ErrTruncatedStream
	}
	totalTexels, err := readU32(r)
	if err != nil {
		return nil, core.ErrTruncatedStream
	}
	if width == 0 || height == 0 || mipCount == 0 {
		return nil, core.ErrUnsupportedPixelFormat
	}

	widths := make([]int, mipCount)
	heights := make([]int, mipCount)
	levels := make([][]mathutil.RGB, mipCount)

	w, h := int(width), int(height)
	var readTexels uint32
	for level := uint32(0); level < mipCount; level++ {
		widths[level] = w
		heights[level] = h
		n := w * h
		texels := make([]mathutil.RGB, n)
		for i := 0; i < n; i++ {
			rCh, err := readF32(r)
			if err != nil {
				return nil, core.ErrTruncatedStream
			}
			gCh, err := readF32(r)
			if err != nil {
				return nil, core.ErrTruncatedStream
			}
			bCh, err := readF32(r)
			if err != nil {
				return nil, core.ErrTruncatedStream
			}
			texels[i] = mathutil.RGB{R: rCh, G: gCh, B: bCh}
		}
		levels[level] = texels
		readTexels += uint32(n)

		if w > 1 {
			w /= 2
		}
		if h > 1 {
			h /= 2
		}
	}
	if readTexels != totalTexels {
		return nil, core.ErrMalformedTexture
	}

	return shading.NewMipMapFromLevels(widths, heights, levels), nil
}
