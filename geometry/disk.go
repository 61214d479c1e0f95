package geometry

import (
	"math"

	"github.com/gorender/core/mathutil"
)

// Disk is an analytic annulus in the local z=Height plane, clipped by
// inner/outer radius and a phi sweep (spec.md §4.4: "Disk ... clipped by
// inner/outer radius").
type Disk struct {
	Transform
	Height, Radius, InnerRadius, MaxPhi float64
}

func NewDisk(t Transform, height, radius, innerRadius, maxPhi float64) *Disk {
	return &Disk{Transform: t, Height: height, Radius: radius, InnerRadius: innerRadius, MaxPhi: mathutil.Clamp(maxPhi, 0, 2*math.Pi)}
}

func (d *Disk) LocalBound() mathutil.AABB {
	return mathutil.AABB{
		Min: mathutil.Vec3{X: -d.Radius, Y: -d.Radius, Z: d.Height},
		Max: mathutil.Vec3{X: d.Radius, Y: d.Radius, Z: d.Height},
	}
}

func (d *Disk) WorldBound() mathutil.AABB { return d.LocalBound().Transform(d.LocalToWorld) }

func (d *Disk) Area() float64 {
	return d.MaxPhi * 0.5 * (d.Radius*d.Radius - d.InnerRadius*d.InnerRadius)
}

func (d *Disk) Intersect(ray Ray) (float64, DifferentialGeometry, bool) {
	o := d.WorldToLocal.TransformPoint(ray.Origin)
	dir := d.WorldToLocal.TransformVector(ray.Direction)

	if dir.Z == 0 {
		return 0, DifferentialGeometry{}, false
	}
	thit := (d.Height - o.Z) / dir.Z
	if thit < ray.TMin || thit > ray.TMax {
		return 0, DifferentialGeometry{}, false
	}

	phit := o.Add(dir.Mul(thit))
	distSq := phit.X*phit.X + phit.Y*phit.Y
	if distSq > d.Radius*d.Radius || distSq < d.InnerRadius*d.InnerRadius {
		return 0, DifferentialGeometry{}, false
	}

	phi := math.Atan2(phit.Y, phit.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	if phi > d.MaxPhi {
		return 0, DifferentialGeometry{}, false
	}

	u := phi / d.MaxPhi
	rHit := math.Sqrt(distSq)
	v := (d.Radius - rHit) / (d.Radius - d.InnerRadius)

	dpdu := mathutil.Vec3{X: -d.MaxPhi * phit.Y, Y: d.MaxPhi * phit.X, Z: 0}
	dpdv := mathutil.Vec3{X: phit.X, Y: phit.Y, Z: 0}.Mul((d.InnerRadius - d.Radius) / rHit)

	dg := NewDifferentialGeometry(
		d.LocalToWorld.TransformPoint(phit),
		d.LocalToWorld.TransformVector(dpdu),
		d.LocalToWorld.TransformVector(dpdv),
		mathutil.Vec3{}, mathutil.Vec3{},
		mathutil.Vec2{X: u, Y: v}, d)
	if d.ReverseOrientation != d.SwapsHandedness() {
		dg.Normal = dg.Normal.Neg()
	}
	return thit, dg, true
}

func (d *Disk) IntersectP(ray Ray) bool {
	_, _, ok := d.Intersect(ray)
	return ok
}

func (d *Disk) Sample(u1, u2 float64) (mathutil.Vec3, mathutil.Vec3) {
	x, y := concentricSampleDisk(u1, u2)
	local := mathutil.Vec3{X: x * d.Radius, Y: y * d.Radius, Z: d.Height}
	if d.InnerRadius > 0 || d.MaxPhi < 2*math.Pi {
		// Annulus or partial sweep: uniform in r^2 and phi is uniform in area.
		r := math.Sqrt(mathutil.Lerp(u1, d.InnerRadius*d.InnerRadius, d.Radius*d.Radius))
		phi := u2 * d.MaxPhi
		local = mathutil.Vec3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: d.Height}
	}
	n := d.LocalToWorld.TransformVector(mathutil.Vec3{X: 0, Y: 0, Z: 1}).Normalize()
	if d.ReverseOrientation {
		n = n.Neg()
	}
	return d.LocalToWorld.TransformPoint(local), n
}

func (d *Disk) Pdf(pt mathutil.Vec3) float64 { return uniformAreaPdf(d) }

func (d *Disk) SampleFrom(pt mathutil.Vec3, u1, u2 float64) (mathutil.Vec3, mathutil.Vec3) {
	return d.Sample(u1, u2)
}

func (d *Disk) PdfFrom(pt, wi mathutil.Vec3) float64 { return shapePdfFrom(d, pt, wi) }

// concentricSampleDisk maps [0,1)^2 to the unit disk with low distortion,
// grounded on the original engine's region-based ConcentricSampleDisk.
func concentricSampleDisk(u1, u2 float64) (x, y float64) {
	sx := 2*u1 - 1
	sy := 2*u2 - 1
	if sx == 0 && sy == 0 {
		return 0, 0
	}
	var r, theta float64
	if sx >= -sy {
		if sx > sy {
			r = sx
			if sy > 0 {
				theta = sy / r
			} else {
				theta = 8 + sy/r
			}
		} else {
			r = sy
			theta = 2 - sx/r
		}
	} else {
		if sx <= sy {
			r = -sx
			theta = 4 - sy/r
		} else {
			r = -sy
			theta = 6 + sx/r
		}
	}
	theta *= math.Pi / 4
	return r * math.Cos(theta), r * math.Sin(theta)
}
