// Copyright 2026 The gorender Authors
// SPDX-License-Identifier: BSD-3-Clause

package ioformat

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	core "github.com/gorender/core"
	"github.com/gorender/core/mathutil"
)

// WritePFM writes a 3-channel Portable Float Map: the ASCII header
// "PF\n<W> <H>\n-1.0\n" followed by width*height RGB float triples,
// little-endian (the "-1.0" scale factor signals little-endian byte
// order to PFM readers). rgb is row-major, top-to-bottom — the order
// film.Film.ToRGBBuffer already produces; any bottom-up-to-top-to-bottom
// flip is the caller's responsibility, not this function's.
func WritePFM(w io.Writer, width, height int, rgb []mathutil.RGB) error {
	if len(rgb) != width*height {
		return fmt.Errorf("ioformat: WritePFM: got %d pixels, want %d (%dx%d)", len(rgb), width*height, width, height)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "PF\n%d %d\n-1.0\n", width, height); err != nil {
		return err
	}

	var buf [4]byte
	for _, c := range rgb {
		if err := writeF32(bw, buf[:], float32(c.R)); err != nil {
			return err
		}
		if err := writeF32(bw, buf[:], float32(c.G)); err != nil {
			return err
		}
		if err := writeF32(bw, buf[:], float32(c.B)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeF32(w io.Writer, buf []byte, v float32) error {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
	_, err := w.Write(buf)
	return err
}

// ReadPFM reads back a file written by WritePFM, returning its width,
// height, and row-major top-to-bottom RGB buffer. Only the 3-channel
// "PF" variant with a negative (little-endian) scale factor is accepted.
func ReadPFM(r io.Reader) (width, height int, rgb []mathutil.RGB, err error) {
	br := bufio.NewReader(r)

	magic, err := readPFMToken(br)
	if err != nil {
		return 0, 0, nil, core.ErrTruncatedStream
	}
	if magic != "PF" {
		return 0, 0, nil, core.ErrUnsupportedPixelFormat
	}

	wTok, err := readPFMToken(br)
	if err != nil {
		return 0, 0, nil, core.ErrTruncatedStream
	}
	hTok, err := readPFMToken(br)
	if err != nil {
		return 0, 0, nil, core.ErrTruncatedStream
	}
	scaleTok, err := readPFMToken(br)
	if err != nil {
		return 0, 0, nil, core.ErrTruncatedStream
	}

	if _, err := fmt.Sscanf(wTok, "%d", &width); err != nil || width <= 0 {
		return 0, 0, nil, core.ErrMalformedTexture
	}
	if _, err := fmt.Sscanf(hTok, "%d", &height); err != nil || height <= 0 {
		return 0, 0, nil, core.ErrMalformedTexture
	}
	var scale float64
	if _, err := fmt.Sscanf(scaleTok, "%g", &scale); err != nil {
		return 0, 0, nil, core.ErrMalformedTexture
	}
	if scale >= 0 {
		// Only the little-endian convention this package writes is supported.
		return 0, 0, nil, core.ErrUnsupportedPixelFormat
	}

	n := width * height
	rgb = make([]mathutil.RGB, n)
	var buf [4]byte
	for i := 0; i < n; i++ {
		rCh, err := readF32Buf(br, buf[:])
		if err != nil {
			return 0, 0, nil, core.ErrTruncatedStream
		}
		gCh, err := readF32Buf(br, buf[:])
		if err != nil {
			return 0, 0, nil, core.ErrTruncatedStream
		}
		bCh, err := readF32Buf(br, buf[:])
		if err != nil {
			return 0, 0, nil, core.ErrTruncatedStream
		}
		rgb[i] = mathutil.RGB{R: rCh, G: gCh, B: bCh}
	}
	return width, height, rgb, nil
}

func readF32Buf(r io.Reader, buf []byte) (float64, error) {
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(buf))), nil
}

// readPFMToken reads one whitespace-delimited ASCII token from the PFM
// header, stopping at (and consuming) the first trailing whitespace byte.
func readPFMToken(r *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == ' ' || b == '\n' || b == '\t' || b == '\r' {
			if len(tok) == 0 {
				continue
			}
			return string(tok), nil
		}
		tok = append(tok, b)
	}
}
