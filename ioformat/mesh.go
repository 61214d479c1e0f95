// Copyright 2026 The gorender Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ioformat decodes the core's binary asset formats (mesh, texture)
// and reads/writes the PFM output convention. All binary layouts are
// little-endian; malformed input is reported as an asset error rather than
// a panic, per the core's error taxonomy.
package ioformat

import (
	"encoding/binary"
	"io"
	"math"

	core "github.com/gorender/core"
	"github.com/gorender/core/geometry"
	"github.com/gorender/core/mathutil"
)

// ReadMesh decodes the mesh binary format: a header of three u32 counts
// followed by the index buffer and per-vertex attribute arrays, all
// little-endian. The on-disk texcoord array allocates 3 floats per vertex
// but only the first 2 are meaningful; ReadMesh skips the padding float so
// every subsequent vertex read stays aligned.
func ReadMesh(r io.Reader, transform geometry.Transform) (*geometry.TriangleMesh, error) {
	var header [3]uint32
	for i := range header {
		v, err := readU32(r)
		if err != nil {
			return nil, core.ErrTruncatedStream
		}
		header[i] = v
	}
	numIndices, numVertices, hasTangent := header[0], header[1], header[2]
	if numIndices == 0 {
		return nil, core.ErrEmptyMesh
	}
	if numVertices == 0 || numIndices%3 != 0 {
		return nil, core.ErrMalformedMesh
	}

	indices := make([]uint32, numIndices)
	for i := range indices {
		v, err := readU32(r)
		if err != nil {
			return nil, core.ErrTruncatedStream
		}
		indices[i] = v
	}
	for _, idx := range indices {
		if idx >= numVertices {
			return nil, core.ErrMalformedMesh
		}
	}

	positions, err := readVec3Array(r, int(numVertices))
	if err != nil {
		return nil, err
	}
	normals, err := readVec3Array(r, int(numVertices))
	if err != nil {
		return nil, err
	}
	uvs, err := readUVArrayPadded(r, int(numVertices))
	if err != nil {
		return nil, err
	}

	var tangents []mathutil.Vec3
	if hasTangent == 1 {
		tangents, err = readVec3Array(r, int(numVertices))
		if err != nil {
			return nil, err
		}
	} else if hasTangent != 0 {
		return nil, core.ErrMalformedMesh
	}

	return geometry.NewTriangleMesh(transform, indices, positions, normals, tangents, uvs), nil
}

func readVec3Array(r io.Reader, n int) ([]mathutil.Vec3, error) {
	out := make([]mathutil.Vec3, n)
	for i := range out {
		x, err := readF32(r)
		if err != nil {
			return nil, core.ErrTruncatedStream
		}
		y, err := readF32(r)
		if err != nil {
			return nil, core.ErrTruncatedStream
		}
		z, err := readF32(r)
		if err != nil {
			return nil, core.ErrTruncatedStream
		}
		out[i] = mathutil.Vec3{X: x, Y: y, Z: z}
	}
	return out, nil
}

// readUVArrayPadded reads 2 logical floats per vertex followed by one
// unused padding float the writer always allocates per vertex.
func readUVArrayPadded(r io.Reader, n int) ([]mathutil.Vec2, error) {
	out := make([]mathutil.Vec2, n)
	for i := range out {
		u, err := readF32(r)
		if err != nil {
			return nil, core.ErrTruncatedStream
		}
		v, err := readF32(r)
		if err != nil {
			return nil, core.ErrTruncatedStream
		}
		if _, err := readF32(r); err != nil { // padding float
			return nil, core.ErrTruncatedStream
		}
		out[i] = mathutil.Vec2{X: u, Y: v}
	}
	return out, nil
}

func readU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readF32(r io.Reader) (float64, error) {
	v, err := readU32(r)
	if err != nil {
		return 0, err
	}
	return float64(math.Float32frombits(v)), nil
}
