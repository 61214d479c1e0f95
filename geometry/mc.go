package geometry

import (
	"math"

	"github.com/gorender/core/mathutil"
)

// uniformSampleSphere maps two uniform [0,1) numbers to a uniformly
// distributed direction on the unit sphere, the closed form every
// Shape.Sample over a full sphere reduces to.
func uniformSampleSphere(u1, u2 float64) mathutil.Vec3 {
	z := 1 - 2*u1
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u2
	return mathutil.Vec3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

// uniformSampleCone draws a direction inside the cone of half-angle
// acos(cosThetaMax) around axis w (with orthonormal basis u,v), the
// visible-solid-angle sampling strategy Sphere.SampleFrom uses for a
// sphere seen from outside.
func uniformSampleCone(u1, u2, cosThetaMax float64, u, v, w mathutil.Vec3) mathutil.Vec3 {
	cosTheta := (1-u1)*1 + u1*cosThetaMax
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := u2 * 2 * math.Pi
	local := u.Mul(math.Cos(phi) * sinTheta).Add(v.Mul(math.Sin(phi) * sinTheta)).Add(w.Mul(cosTheta))
	return local
}

// uniformConePdf is the constant solid-angle pdf of uniformSampleCone.
func uniformConePdf(cosThetaMax float64) float64 {
	return 1 / (2 * math.Pi * (1 - cosThetaMax))
}

// uniformSampleTriangle maps two uniform numbers to barycentric
// coordinates (b0,b1) uniformly distributed over a triangle.
func uniformSampleTriangle(u1, u2 float64) (b0, b1 float64) {
	su1 := math.Sqrt(u1)
	b0 = 1 - su1
	b1 = u2 * su1
	return b0, b1
}
