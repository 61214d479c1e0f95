package geometry

import "github.com/gorender/core/mathutil"

// Triangle is a non-owning view over one face of a TriangleMesh: just the
// mesh back-reference and a face index, never a free-floating pointer to
// per-vertex data (spec.md §9's guidance on back references).
type Triangle struct {
	mesh      *TriangleMesh
	primIndex int
}

func (t *Triangle) vertexIndices() (a, b, c uint32) {
	base := 3 * t.primIndex
	return t.mesh.Indices[base], t.mesh.Indices[base+1], t.mesh.Indices[base+2]
}

func (t *Triangle) positions() (p0, p1, p2 mathutil.Vec3) {
	a, b, c := t.vertexIndices()
	return t.mesh.Positions[a], t.mesh.Positions[b], t.mesh.Positions[c]
}

// uvs returns the per-vertex texture coordinates, defaulting to
// (0,0),(1,0),(1,1) when the mesh carries none (spec.md §4.4).
func (t *Triangle) uvs() (uv0, uv1, uv2 mathutil.Vec2) {
	if t.mesh.UVs == nil {
		return mathutil.Vec2{X: 0, Y: 0}, mathutil.Vec2{X: 1, Y: 0}, mathutil.Vec2{X: 1, Y: 1}
	}
	a, b, c := t.vertexIndices()
	return t.mesh.UVs[a], t.mesh.UVs[b], t.mesh.UVs[c]
}

func (t *Triangle) LocalBound() mathutil.AABB { return t.WorldBound() }

func (t *Triangle) WorldBound() mathutil.AABB {
	p0, p1, p2 := t.positions()
	b := mathutil.EmptyAABB()
	return b.UnionPoint(p0).UnionPoint(p1).UnionPoint(p2)
}

func (t *Triangle) Area() float64 {
	p0, p1, p2 := t.positions()
	return 0.5 * p1.Sub(p0).Cross(p2.Sub(p0)).Length()
}

// Intersect is Möller-Trumbore with a UV-deltas solve for (dpdu,dpdv),
// falling back to an orthonormal basis from the face normal when the UV
// parametric matrix is singular (spec.md §4.4, §7 numerical degeneracy:
// recovered locally, never propagated).
func (t *Triangle) Intersect(ray Ray) (float64, DifferentialGeometry, bool) {
	p0, p1, p2 := t.positions()

	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)
	s1 := ray.Direction.Cross(e2)
	divisor := s1.Dot(e1)
	if divisor == 0 {
		return 0, DifferentialGeometry{}, false
	}
	invDivisor := 1 / divisor

	d := ray.Origin.Sub(p0)
	b1 := d.Dot(s1) * invDivisor
	if b1 < 0 || b1 > 1 {
		return 0, DifferentialGeometry{}, false
	}

	s2 := d.Cross(e1)
	b2 := ray.Direction.Dot(s2) * invDivisor
	if b2 < 0 || b1+b2 > 1 {
		return 0, DifferentialGeometry{}, false
	}

	thit := e2.Dot(s2) * invDivisor
	if thit < ray.TMin || thit > ray.TMax {
		return 0, DifferentialGeometry{}, false
	}

	uv0, uv1, uv2 := t.uvs()
	du1 := uv0.X - uv2.X
	du2 := uv1.X - uv2.X
	dv1 := uv0.Y - uv2.Y
	dv2 := uv1.Y - uv2.Y
	dp1 := p0.Sub(p2)
	dp2 := p1.Sub(p2)

	det := du1*dv2 - dv1*du2
	var dpdu, dpdv mathutil.Vec3
	if det == 0 {
		dpdu, dpdv = mathutil.CoordinateSystem(e2.Cross(e1).Normalize())
	} else {
		invDet := 1 / det
		dpdu = dp1.Mul(dv2 * invDet).Sub(dp2.Mul(dv1 * invDet))
		dpdv = dp2.Mul(du1 * invDet).Sub(dp1.Mul(du2 * invDet))
	}

	b0 := 1 - b1 - b2
	uv := mathutil.Vec2{X: b0*uv0.X + b1*uv1.X + b2*uv2.X, Y: b0*uv0.Y + b1*uv1.Y + b2*uv2.Y}

	dg := NewDifferentialGeometry(ray.Eval(thit), dpdu, dpdv, mathutil.Vec3{}, mathutil.Vec3{}, uv, t.mesh)
	dg.PrimIndex = t.primIndex

	if t.mesh.Normals != nil {
		dg = t.shadingNormalGeometry(dg, b0, b1, b2)
	}
	return thit, dg, true
}

// shadingNormalGeometry blends per-vertex normals and recomputes
// (dndu,dndv) from the same 2x2 UV solve used for dpdu/dpdv (spec.md
// §4.4: "Shading-normal interpolation uses per-vertex normals if present
// and recomputes dndu,dndv via the same 2x2 solve").
func (t *Triangle) shadingNormalGeometry(dg DifferentialGeometry, b0, b1, b2 float64) DifferentialGeometry {
	a, b, c := t.vertexIndices()
	n0, n1, n2 := t.mesh.Normals[a], t.mesh.Normals[b], t.mesh.Normals[c]
	shadingNormal := n0.Mul(b0).Add(n1.Mul(b1)).Add(n2.Mul(b2)).Normalize()

	uv0, uv1, uv2 := t.uvs()
	du1 := uv0.X - uv2.X
	du2 := uv1.X - uv2.X
	dv1 := uv0.Y - uv2.Y
	dv2 := uv1.Y - uv2.Y
	dn1 := n0.Sub(n2)
	dn2 := n1.Sub(n2)
	det := du1*dv2 - dv1*du2
	if det != 0 {
		invDet := 1 / det
		dg.DNDU = dn1.Mul(dv2 * invDet).Sub(dn2.Mul(dv1 * invDet))
		dg.DNDV = dn2.Mul(du1 * invDet).Sub(dn1.Mul(du2 * invDet))
	}
	dg.Normal = shadingNormal
	return dg
}

func (t *Triangle) IntersectP(ray Ray) bool {
	p0, p1, p2 := t.positions()
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)
	s1 := ray.Direction.Cross(e2)
	divisor := s1.Dot(e1)
	if divisor == 0 {
		return false
	}
	invDivisor := 1 / divisor

	d := ray.Origin.Sub(p0)
	b1 := d.Dot(s1) * invDivisor
	if b1 < 0 || b1 > 1 {
		return false
	}
	s2 := d.Cross(e1)
	b2 := ray.Direction.Dot(s2) * invDivisor
	if b2 < 0 || b1+b2 > 1 {
		return false
	}
	thit := e2.Dot(s2) * invDivisor
	return thit >= ray.TMin && thit <= ray.TMax
}

func (t *Triangle) sampleTriangle(u1, u2 float64) (mathutil.Vec3, mathutil.Vec3) {
	b1, b2 := uniformSampleTriangle(u1, u2)
	p0, p1, p2 := t.positions()
	p := p0.Mul(b1).Add(p1.Mul(b2)).Add(p2.Mul(1 - b1 - b2))
	n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	if t.mesh.ReverseOrientation {
		n = n.Neg()
	}
	return p, n
}

func (t *Triangle) Sample(u1, u2 float64) (mathutil.Vec3, mathutil.Vec3) { return t.sampleTriangle(u1, u2) }

func (t *Triangle) Pdf(pt mathutil.Vec3) float64 { return uniformAreaPdf(t) }

func (t *Triangle) SampleFrom(pt mathutil.Vec3, u1, u2 float64) (mathutil.Vec3, mathutil.Vec3) {
	return t.sampleTriangle(u1, u2)
}

func (t *Triangle) PdfFrom(pt, wi mathutil.Vec3) float64 { return shapePdfFrom(t, pt, wi) }
