package geometry

import (
	"math"

	"github.com/gorender/core/mathutil"
)

// Sphere is an analytic quadric, optionally clipped to a z range and a phi
// sweep, grounded on the original engine's partial-sphere support (full
// spheres are the zMin=-r, zMax=r, phiMax=2pi case).
type Sphere struct {
	Transform
	Radius           float64
	ZMin, ZMax       float64
	MaxPhi           float64
	MinTheta, MaxTheta float64
}

// NewSphere builds a (possibly partial) sphere. zMin/zMax clip along Z;
// maxPhi sweeps the azimuthal angle from [0, maxPhi).
func NewSphere(t Transform, radius, zMin, zMax, maxPhi float64) *Sphere {
	zMin, zMax = math.Min(zMin, zMax), math.Max(zMin, zMax)
	zMin = mathutil.Clamp(zMin, -radius, radius)
	zMax = mathutil.Clamp(zMax, -radius, radius)
	return &Sphere{
		Transform: t,
		Radius:    radius,
		ZMin:      zMin,
		ZMax:      zMax,
		MinTheta:  math.Acos(mathutil.Clamp(zMin/radius, -1, 1)),
		MaxTheta:  math.Acos(mathutil.Clamp(zMax/radius, -1, 1)),
		MaxPhi:    mathutil.Clamp(maxPhi, 0, 2*math.Pi),
	}
}

func (s *Sphere) LocalBound() mathutil.AABB {
	return mathutil.AABB{
		Min: mathutil.Vec3{X: -s.Radius, Y: -s.Radius, Z: s.ZMin},
		Max: mathutil.Vec3{X: s.Radius, Y: s.Radius, Z: s.ZMax},
	}
}

func (s *Sphere) WorldBound() mathutil.AABB {
	return s.LocalBound().Transform(s.LocalToWorld)
}

func (s *Sphere) Area() float64 {
	return s.MaxPhi * s.Radius * (s.ZMax - s.ZMin)
}

// intersectLocal does the quadratic solve and clip-parameter test shared
// by Intersect and IntersectP, returning the local-space hit point, phi,
// and thit.
func (s *Sphere) intersectLocal(ray Ray) (phit mathutil.Vec3, phi, thit float64, ok bool) {
	o := s.WorldToLocal.TransformPoint(ray.Origin)
	d := s.WorldToLocal.TransformVector(ray.Direction)

	a := d.Dot(d)
	b := 2 * o.Dot(d)
	c := o.Dot(o) - s.Radius*s.Radius

	t0, t1, hasRoots := solveQuadratic(a, b, c)
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
		if p.X == 0 && p.Y == 0 {
			p.X = 1e-5 * s.Radius
		}
		ph := math.Atan2(p.Y, p.X)
		if ph < 0 {
			ph += 2 * math.Pi
		}
		if (s.ZMin > -s.Radius && p.Z < s.ZMin) || (s.ZMax < s.Radius && p.Z > s.ZMax) || ph > s.MaxPhi {
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

func (s *Sphere) Intersect(ray Ray) (float64, DifferentialGeometry, bool) {
	phit, phi, thit, ok := s.intersectLocal(ray)
	if !ok {
		return 0, DifferentialGeometry{}, false
	}

	u := phi / s.MaxPhi
	theta := math.Acos(mathutil.Clamp(phit.Z/s.Radius, -1, 1))
	v := (theta - s.MinTheta) / (s.MaxTheta - s.MinTheta)

	zRadius := math.Sqrt(phit.X*phit.X + phit.Y*phit.Y)
	invZRadius := 1 / zRadius
	cosPhi := phit.X * invZRadius
	sinPhi := phit.Y * invZRadius

	dpdu := mathutil.Vec3{X: -s.MaxPhi * phit.Y, Y: s.MaxPhi * phit.X, Z: 0}
	dTheta := s.MaxTheta - s.MinTheta
	dpdv := mathutil.Vec3{X: phit.Z * cosPhi, Y: phit.Z * sinPhi, Z: -s.Radius * math.Sin(theta)}.Mul(dTheta)

	// The normal comes from the unperturbed hit point: intersectLocal nudges
	// a pole hit off the z axis only to keep phi well defined.
	o := s.WorldToLocal.TransformPoint(ray.Origin)
	n := o.Add(s.WorldToLocal.TransformVector(ray.Direction).Mul(thit)).Normalize()
	dg := NewDifferentialGeometry(
		s.LocalToWorld.TransformPoint(phit),
		s.LocalToWorld.TransformVector(dpdu),
		s.LocalToWorld.TransformVector(dpdv),
		mathutil.Vec3{}, mathutil.Vec3{},
		mathutil.Vec2{X: u, Y: v}, s)
	dg.Normal = s.LocalToWorld.TransformVector(n).Normalize()
	if s.ReverseOrientation != s.SwapsHandedness() {
		dg.Normal = dg.Normal.Neg()
	}
	return thit, dg, true
}

func (s *Sphere) IntersectP(ray Ray) bool {
	_, _, _, ok := s.intersectLocal(ray)
	return ok
}

func (s *Sphere) Sample(u1, u2 float64) (mathutil.Vec3, mathutil.Vec3) {
	local := uniformSampleSphere(u1, u2).Mul(s.Radius)
	if s.ZMin > -s.Radius || s.ZMax < s.Radius || s.MaxPhi < 2*math.Pi {
		// Partial sphere: uniform in z over [ZMin,ZMax] and in phi over
		// [0,MaxPhi) is uniform in area on the clipped surface.
		z := mathutil.Lerp(u1, s.ZMin, s.ZMax)
		r := math.Sqrt(math.Max(0, s.Radius*s.Radius-z*z))
		phi := u2 * s.MaxPhi
		local = mathutil.Vec3{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
	}
	n := s.LocalToWorld.TransformVector(local).Normalize()
	if s.ReverseOrientation {
		n = n.Neg()
	}
	return s.LocalToWorld.TransformPoint(local), n
}

func (s *Sphere) Pdf(pt mathutil.Vec3) float64 { return uniformAreaPdf(s) }

func (s *Sphere) SampleFrom(pt mathutil.Vec3, u1, u2 float64) (mathutil.Vec3, mathutil.Vec3) {
	center := s.LocalToWorld.TransformPoint(mathutil.Vec3{})
	distSq := pt.Sub(center).LengthSq()
	if distSq-s.Radius*s.Radius < 1e-4 {
		return s.Sample(u1, u2)
	}

	wc := center.Sub(pt).Normalize()
	wcX, wcY := mathutil.CoordinateSystem(wc)

	sinThetaMax2 := s.Radius * s.Radius / distSq
	cosThetaMax := math.Sqrt(math.Max(0, 1-sinThetaMax2))

	dir := uniformSampleCone(u1, u2, cosThetaMax, wcX, wcY, wc)
	ray := NewRay(pt, dir)
	ray.TMax = math.Inf(1)

	thit, dg, ok := s.Intersect(ray)
	if !ok {
		thit = center.Sub(pt).Dot(dir)
	}
	p := ray.Eval(thit)
	n := p.Sub(center).Normalize()
	if s.ReverseOrientation {
		n = n.Neg()
	}
	_ = dg
	return p, n
}

func (s *Sphere) PdfFrom(pt, wi mathutil.Vec3) float64 {
	center := s.LocalToWorld.TransformPoint(mathutil.Vec3{})
	distSq := pt.Sub(center).LengthSq()
	if distSq-s.Radius*s.Radius < 1e-4 {
		return shapePdfFrom(s, pt, wi)
	}
	sinThetaMax2 := s.Radius * s.Radius / distSq
	cosThetaMax := math.Sqrt(math.Max(0, 1-sinThetaMax2))
	return uniformConePdf(cosThetaMax)
}
