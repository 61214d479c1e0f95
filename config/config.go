// Copyright 2026 The gorender Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config decodes process-wide render tuning from TOML. Scene-
// specific parameters (resolution, samples per pixel, integrator choice)
// still arrive through the out-of-scope scene file; RenderConfig only
// carries tuning that has no natural home there: thread count override,
// default tile size, default max KD-tree depth, gamma, and the default
// film filter radius.
package config

import (
	"github.com/BurntSushi/toml"
)

// RenderConfig is process-wide tuning read once at startup. The zero value
// is not directly usable; call ApplyDefaults (or use Load, which always
// applies them) before reading any field.
type RenderConfig struct {
	// Threads overrides runtime.GOMAXPROCS(0) for the worker pool. 0 means
	// "use GOMAXPROCS".
	Threads int `toml:"threads"`

	// TileSize is the rasterizer's fixed-size screen tile edge length, in
	// pixels (spec.md §4.6 names 64x64 as the nominal tile).
	TileSize int `toml:"tile_size"`

	// MaxKDDepth is the KD-tree depth cap setting; 0 stands for the depth
	// formula 8 + 1.3*log2(N), clamped to 48. kdtree.KDTree takes no depth
	// option and always uses that formula, so no code reads this field.
	MaxKDDepth int `toml:"max_kd_depth"`

	// Gamma is the display gamma setting. No package in this module reads
	// it: the film and the PFM output stay in linear light.
	Gamma float64 `toml:"gamma"`

	// FilterRadius is the default Gaussian reconstruction filter radius in
	// pixels, used when a scene file does not specify one.
	FilterRadius float64 `toml:"filter_radius"`
}

// ApplyDefaults fills any zero-valued field with this core's documented
// default, so a zero-value RenderConfig{} is always usable without a file
// on disk.
func (c *RenderConfig) ApplyDefaults() {
	if c.TileSize == 0 {
		c.TileSize = 64
	}
	if c.Gamma == 0 {
		c.Gamma = 2.2
	}
	if c.FilterRadius == 0 {
		c.FilterRadius = 2.0
	}
	// Threads == 0 is left as is: schedule.New treats a non-positive worker
	// count as runtime.GOMAXPROCS(0). MaxKDDepth is not defaulted either;
	// no code reads it.
}

// Load decodes a RenderConfig from a TOML file at path, applying defaults
// to any field the file leaves unset.
func Load(path string) (RenderConfig, error) {
	var c RenderConfig
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return RenderConfig{}, err
	}
	c.ApplyDefaults()
	return c, nil
}

// Decode decodes a RenderConfig from TOML source text, applying defaults
// to any field the text leaves unset.
func Decode(src string) (RenderConfig, error) {
	var c RenderConfig
	if _, err := toml.Decode(src, &c); err != nil {
		return RenderConfig{}, err
	}
	c.ApplyDefaults()
	return c, nil
}
