package geometry

import (
	"github.com/gorender/core/container"
	"github.com/gorender/core/mathutil"
)

// TriangleMesh is an indexed triangle soup with optional per-vertex
// normals/tangents/texcoords. Positions are pre-transformed into world
// space at construction (spec.md §3 TriangleMesh invariant); LocalBound
// is computed from the pre-transform extent before that happens.
//
// TriangleMesh is immutable after construction: there is no vertex
// mutation API, so AreaDistribution never needs to be rebuilt.
type TriangleMesh struct {
	Transform
	Positions  []mathutil.Vec3
	Normals    []mathutil.Vec3 // nil if absent
	Tangents   []mathutil.Vec3 // nil if absent
	UVs        []mathutil.Vec2 // nil if absent
	Indices    []uint32        // len = 3*TriangleCount

	localBound  mathutil.AABB
	surfaceArea float64
	areaDistrib *container.Distribution1D
}

// NewTriangleMesh transforms positions into world space, computes the
// pre-transform local bound, and builds the per-triangle area
// distribution used by Sample/SampleFrom.
func NewTriangleMesh(t Transform, indices []uint32, positions, normals, tangents []mathutil.Vec3, uvs []mathutil.Vec2) *TriangleMesh {
	m := &TriangleMesh{
		Transform: t,
		Positions: make([]mathutil.Vec3, len(positions)),
		Normals:   normals,
		Tangents:  tangents,
		UVs:       uvs,
		Indices:   indices,
	}
	bound := mathutil.EmptyAABB()
	for i, p := range positions {
		bound = bound.UnionPoint(p)
		m.Positions[i] = t.LocalToWorld.TransformPoint(p)
	}
	m.localBound = bound
	m.buildAreaDistribution()
	return m
}

func (m *TriangleMesh) buildAreaDistribution() {
	n := m.TriangleCount()
	areas := make([]float64, n)
	for i := 0; i < n; i++ {
		areas[i] = m.Triangle(i).Area()
		m.surfaceArea += areas[i]
	}
	m.areaDistrib = container.NewDistribution1D(areas)
}

// TriangleCount returns the number of triangles in the mesh.
func (m *TriangleMesh) TriangleCount() int { return len(m.Indices) / 3 }

// Triangle returns a lightweight view over the i-th triangle, the
// primitive the KD-tree actually stores and intersects.
func (m *TriangleMesh) Triangle(i int) *Triangle {
	return &Triangle{mesh: m, primIndex: i}
}

func (m *TriangleMesh) LocalBound() mathutil.AABB { return m.localBound }
func (m *TriangleMesh) WorldBound() mathutil.AABB { return m.localBound.Transform(m.LocalToWorld) }
func (m *TriangleMesh) Area() float64             { return m.surfaceArea }

// Intersect scans every triangle in the mesh; used only as a fallback
// when a caller has a whole-mesh Shape reference rather than a KD-tree
// (the renderer's normal path queries individual Triangle primitives via
// the KD-tree instead).
func (m *TriangleMesh) Intersect(ray Ray) (float64, DifferentialGeometry, bool) {
	best := ray
	var bestDG DifferentialGeometry
	hitAny := false
	for i := 0; i < m.TriangleCount(); i++ {
		if t, dg, ok := m.Triangle(i).Intersect(best); ok {
			best.TMax = t
			bestDG = dg
			hitAny = true
		}
	}
	return best.TMax, bestDG, hitAny
}

func (m *TriangleMesh) IntersectP(ray Ray) bool {
	for i := 0; i < m.TriangleCount(); i++ {
		if m.Triangle(i).IntersectP(ray) {
			return true
		}
	}
	return false
}

func (m *TriangleMesh) Sample(u1, u2 float64) (mathutil.Vec3, mathutil.Vec3) {
	// u2 picks the triangle, then is rescaled to [0,1] within that
	// triangle's CDF bucket so it still places the point uniformly.
	s, _, index := m.areaDistrib.SampleContinuous(u2)
	u2 = mathutil.Clamp(s*float64(m.TriangleCount())-float64(index), 0, 1)
	return m.Triangle(index).sampleTriangle(u1, u2)
}

func (m *TriangleMesh) Pdf(pt mathutil.Vec3) float64 { return uniformAreaPdf(m) }

// SampleFrom implements the specified correctness quirk (spec.md §4.4,
// §9 open question): pick a triangle by area, sample a point on it, then
// re-intersect every triangle along the ray toward that point and return
// the closest actually-visible hit rather than the originally sampled
// point. Left as specified; see DESIGN.md.
func (m *TriangleMesh) SampleFrom(pt mathutil.Vec3, u1, u2 float64) (mathutil.Vec3, mathutil.Vec3) {
	s, _, index := m.areaDistrib.SampleContinuous(u2)
	u2 = mathutil.Clamp(s*float64(m.TriangleCount())-float64(index), 0, 1)
	sampled, _ := m.Triangle(index).sampleTriangle(u1, u2)

	ray := NewRay(pt, sampled.Sub(pt))
	ray.TMax = 1
	var bestDG DifferentialGeometry
	hitAny := false
	thit := 1.0
	for i := 0; i < m.TriangleCount(); i++ {
		if t, dg, ok := m.Triangle(i).Intersect(ray); ok {
			ray.TMax = t
			thit = t
			bestDG = dg
			hitAny = true
		}
	}
	if !hitAny {
		return sampled, mathutil.Vec3{}
	}
	return ray.Eval(thit), bestDG.Normal
}

func (m *TriangleMesh) PdfFrom(pt, wi mathutil.Vec3) float64 { return shapePdfFrom(m, pt, wi) }
