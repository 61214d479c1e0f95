// Copyright 2026 The gorender Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package trace implements the Monte-Carlo path-traced core: the camera
// ray generator, the scene container pairing a KD-tree with its lights,
// the surface integrators (Whitted, direct-lighting, path), and the tile
// scheduler that drives them (spec.md §4.8, §4.9).
package trace

import (
	"math"

	"github.com/gorender/core/geometry"
	"github.com/gorender/core/mathutil"
	"github.com/gorender/core/sampling"
)

// Camera generates primary rays (with screen-space differentials for
// texture filtering) from a left-handed lookat basis, per spec.md §6:
// "lookat uses left-handed convention: basis = right, up, forward with
// forward = normalize(target-eye)".
type Camera struct {
	Origin                mathutil.Vec3
	right, up, forward    mathutil.Vec3
	tanHalfFov            float64
	width, height         int
	lensRadius            float64
	focalDistance         float64
}

// NewPerspectiveCamera builds a camera at eye looking toward target, with
// worldUp resolving the roll ambiguity, a vertical field of view in
// degrees (applied to the shorter image axis so a non-square aspect ratio
// never distorts the narrower dimension), and an optional thin-lens depth
// of field (lensRadius == 0 disables it).
func NewPerspectiveCamera(eye, target, worldUp mathutil.Vec3, fovDegrees float64, width, height int, lensRadius, focalDistance float64) *Camera {
	forward := target.Sub(eye).Normalize()
	right := worldUp.Cross(forward).Normalize()
	up := forward.Cross(right)

	return &Camera{
		Origin:        eye,
		right:         right,
		up:            up,
		forward:       forward,
		tanHalfFov:    math.Tan(fovDegrees * math.Pi / 180 / 2),
		width:         width,
		height:        height,
		lensRadius:    lensRadius,
		focalDistance: focalDistance,
	}
}

// cameraSpaceDir maps a continuous image-space coordinate to an
// unnormalized camera-space direction whose Z component is exactly 1 (the
// image plane sits one unit in front of the eye), the form the thin-lens
// focal-plane math below needs before normalizing.
func (c *Camera) cameraSpaceDir(imageX, imageY float64) mathutil.Vec3 {
	sx := 2*(imageX/float64(c.width)) - 1
	sy := 1 - 2*(imageY/float64(c.height)) // screen Y grows downward in image space

	aspect := float64(c.width) / float64(c.height)
	if aspect > 1 {
		sx *= aspect
	} else {
		sy /= aspect
	}
	return mathutil.Vec3{X: sx * c.tanHalfFov, Y: sy * c.tanHalfFov, Z: 1}
}

// ray computes the world-space origin/direction for one image-space
// sample, applying thin-lens depth of field if LensRadius > 0. lensU/lensV
// are the CameraSample's raw [0,1) lens coordinates.
func (c *Camera) ray(imageX, imageY, lensU, lensV float64) (origin, direction mathutil.Vec3) {
	dirCam := c.cameraSpaceDir(imageX, imageY)
	dirWorld := c.right.Mul(dirCam.X).Add(c.up.Mul(dirCam.Y)).Add(c.forward.Mul(dirCam.Z))

	origin = c.Origin
	if c.lensRadius > 0 {
		lu, lv := concentricSampleDisk(lensU, lensV)
		lensOffset := c.right.Mul(lu * c.lensRadius).Add(c.up.Mul(lv * c.lensRadius))
		focus := c.Origin.Add(dirWorld.Mul(c.focalDistance))
		origin = c.Origin.Add(lensOffset)
		return origin, focus.Sub(origin).Normalize()
	}
	return origin, dirWorld.Normalize()
}

// GenerateRay builds a RayDifferential for one CameraSample, with
// auxiliary rays offset by one pixel in image X and Y so later mipmap
// level selection can estimate texture footprint (spec.md §4.9's renderer
// loop calls `camera.generate_ray` then `ray.scale_differentials`).
func (c *Camera) GenerateRay(s sampling.CameraSample) geometry.RayDifferential {
	origin, dir := c.ray(s.ImageX, s.ImageY, s.LensU, s.LensV)
	rd := geometry.RayDifferential{
		Ray:               geometry.NewRay(origin, dir),
		HasDifferentials:  true,
	}
	rd.RxOrigin, rd.RxDirection = c.ray(s.ImageX+1, s.ImageY, s.LensU, s.LensV)
	rd.RyOrigin, rd.RyDirection = c.ray(s.ImageX, s.ImageY+1, s.LensU, s.LensV)
	return rd
}

// concentricSampleDisk maps a unit square sample to a unit disk sample via
// Shirley's concentric mapping, the same construction shading's BxDF
// cosine-hemisphere sampler uses (shading/bxdf.go), duplicated here in
// miniature since lens sampling is this package's only caller.
func concentricSampleDisk(u1, u2 float64) (float64, float64) {
	sx := 2*u1 - 1
	sy := 2*u2 - 1
	if sx == 0 && sy == 0 {
		return 0, 0
	}
	var r, theta float64
	if math.Abs(sx) > math.Abs(sy) {
		r = sx
		theta = (math.Pi / 4) * (sy / sx)
	} else {
		r = sy
		theta = math.Pi/2 - (math.Pi/4)*(sx/sy)
	}
	return r * math.Cos(theta), r * math.Sin(theta)
}
