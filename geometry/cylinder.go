package geometry

import (
	"math"

	"github.com/gorender/core/mathutil"
)

// Cylinder is an analytic quadric clipped to a z range and phi sweep.
type Cylinder struct {
	Transform
	Radius, ZMin, ZMax, MaxPhi float64
}

func NewCylinder(t Transform, radius, zMin, zMax, maxPhi float64) *Cylinder {
	return &Cylinder{
		Transform: t,
		Radius:    radius,
		ZMin:      math.Min(zMin, zMax),
		ZMax:      math.Max(zMin, zMax),
		MaxPhi:    mathutil.Clamp(maxPhi, 0, 2*math.Pi),
	}
}

func (c *Cylinder) LocalBound() mathutil.AABB {
	return mathutil.AABB{
		Min: mathutil.Vec3{X: -c.Radius, Y: -c.Radius, Z: c.ZMin},
		Max: mathutil.Vec3{X: c.Radius, Y: c.Radius, Z: c.ZMax},
	}
}

func (c *Cylinder) WorldBound() mathutil.AABB { return c.LocalBound().Transform(c.LocalToWorld) }

func (c *Cylinder) Area() float64 { return (c.ZMax - c.ZMin) * c.MaxPhi * c.Radius }

func (c *Cylinder) intersectLocal(ray Ray) (phit mathutil.Vec3, phi, thit float64, ok bool) {
	o := c.WorldToLocal.TransformPoint(ray.Origin)
	d := c.WorldToLocal.TransformVector(ray.Direction)

	a := d.X*d.X + d.Y*d.Y
	b := 2 * (d.X*o.X + d.Y*o.Y)
	cc := o.X*o.X + o.Y*o.Y - c.Radius*c.Radius

	t0, t1, hasRoots := solveQuadratic(a, b, cc)
	if !hasRoots || t0 > ray.TMax || t1 < ray.TMin {
		return phit, 0, 0, false
	}
	thit = t0
	if thit < ray.TMin {
		thit = t1
		if thit > ray.TMax {
			return phit, 0, 0, false
		}
	}

	test := func(t float64) (mathutil.Vec3, float64, bool) {
		p := o.Add(d.Mul(t))
		ph := math.Atan2(p.Y, p.X)
		if ph < 0 {
			ph += 2 * math.Pi
		}
		if p.Z < c.ZMin || p.Z > c.ZMax || ph > c.MaxPhi {
			return p, ph, false
		}
		return p, ph, true
	}

	var pOk bool
	phit, phi, pOk = test(thit)
	if !pOk {
		if thit == t1 || t1 > ray.TMax {
			return phit, 0, 0, false
		}
		thit = t1
		phit, phi, pOk = test(thit)
		if !pOk {
			return phit, 0, 0, false
		}
	}
	return phit, phi, thit, true
}

func (c *Cylinder) Intersect(ray Ray) (float64, DifferentialGeometry, bool) {
	phit, phi, thit, ok := c.intersectLocal(ray)
	if !ok {
		return 0, DifferentialGeometry{}, false
	}
	u := phi / c.MaxPhi
	v := (phit.Z - c.ZMin) / (c.ZMax - c.ZMin)

	dpdu := mathutil.Vec3{X: -c.MaxPhi * phit.Y, Y: c.MaxPhi * phit.X, Z: 0}
	dpdv := mathutil.Vec3{X: 0, Y: 0, Z: c.ZMax - c.ZMin}

	dg := NewDifferentialGeometry(
		c.LocalToWorld.TransformPoint(phit),
		c.LocalToWorld.TransformVector(dpdu),
		c.LocalToWorld.TransformVector(dpdv),
		mathutil.Vec3{}, mathutil.Vec3{},
		mathutil.Vec2{X: u, Y: v}, c)
	if c.ReverseOrientation != c.SwapsHandedness() {
		dg.Normal = dg.Normal.Neg()
	}
	return thit, dg, true
}

func (c *Cylinder) IntersectP(ray Ray) bool {
	_, _, _, ok := c.intersectLocal(ray)
	return ok
}

func (c *Cylinder) Sample(u1, u2 float64) (mathutil.Vec3, mathutil.Vec3) {
	z := mathutil.Lerp(u1, c.ZMin, c.ZMax)
	phi := u2 * c.MaxPhi
	local := mathutil.Vec3{X: c.Radius * math.Cos(phi), Y: c.Radius * math.Sin(phi), Z: z}
	n := c.LocalToWorld.TransformVector(mathutil.Vec3{X: local.X, Y: local.Y, Z: 0}).Normalize()
	if c.ReverseOrientation {
		n = n.Neg()
	}
	return c.LocalToWorld.TransformPoint(local), n
}

func (c *Cylinder) Pdf(pt mathutil.Vec3) float64 { return uniformAreaPdf(c) }

func (c *Cylinder) SampleFrom(pt mathutil.Vec3, u1, u2 float64) (mathutil.Vec3, mathutil.Vec3) {
	return c.Sample(u1, u2)
}

func (c *Cylinder) PdfFrom(pt, wi mathutil.Vec3) float64 { return shapePdfFrom(c, pt, wi) }
