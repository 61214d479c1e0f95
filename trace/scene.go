package trace

import (
	"github.com/gorender/core/geometry"
	"github.com/gorender/core/light"
	"github.com/gorender/core/mathutil"
	"github.com/gorender/core/shading"
)

// Accelerator is the narrow ray-query surface a Scene needs; *kdtree.KDTree
// satisfies it without this package importing kdtree directly (the same
// narrow-interface pattern light.Occluder uses against this same tree).
type Accelerator interface {
	Intersect(ray geometry.Ray) (tHit float64, dg geometry.DifferentialGeometry, ok bool)
	IntersectP(ray geometry.Ray) bool
	WorldBound() mathutil.AABB
}

// Scene pairs an acceleration structure with the lights the integrators
// sample against, plus an optional set of infinite/environment lights
// consulted on a miss (spec.md §4.11: "A Scene holds []Light plus an
// optional list of infinite/environment lights consulted by Path's miss
// case").
// Scene holds the per-primitive Material and AreaLight association as
// handle tables keyed by Shape identity, rather than a back-pointer
// stored on the shape itself (spec.md §9's re-architecture guidance
// against "back references (`Shape*` inside `DifferentialGeometry`)":
// "replace with non-owning handles (indices into a scene table)"). Every
// Shape a KD-tree hit can return is a valid key; a Shape absent from
// Materials has no surface response (degenerate scene construction, not
// a runtime error).
type Scene struct {
	Accel      Accelerator
	Lights     []light.Light
	Infinite   []light.Light
	Materials  map[geometry.Shape]shading.Material
	AreaLights map[geometry.Shape]*light.AreaLight
}

// MaterialFor returns the material bound to shape, or nil if none.
func (s *Scene) MaterialFor(shape geometry.Shape) shading.Material {
	return s.Materials[shape]
}

// AreaLightFor returns the area light whose emitting surface is shape, or
// nil if shape is not emissive.
func (s *Scene) AreaLightFor(shape geometry.Shape) *light.AreaLight {
	return s.AreaLights[shape]
}

// Intersect forwards to the acceleration structure.
func (s *Scene) Intersect(ray geometry.Ray) (float64, geometry.DifferentialGeometry, bool) {
	return s.Accel.Intersect(ray)
}

// IntersectP forwards to the acceleration structure; Scene itself
// satisfies light.Occluder so a VisibilityTester can be resolved directly
// against it.
func (s *Scene) IntersectP(ray geometry.Ray) bool {
	return s.Accel.IntersectP(ray)
}

// BoundingSphereRadius returns the radius of a sphere centered on the
// scene's world bound centroid and containing it, the finite scale
// DirectionalLight.Power needs (spec.md §4.11).
func (s *Scene) BoundingSphereRadius() float64 {
	b := s.Accel.WorldBound()
	return b.Diagonal().Length() / 2
}

// EnvironmentRadiance sums every infinite light's constant contribution
// for a ray that missed every scene primitive (spec.md §4.8 Path: "add
// β·Σ L_e^env when the previous bounce was specular").
func (s *Scene) EnvironmentRadiance(ray geometry.Ray) mathutil.RGB {
	total := mathutil.RGB{}
	for _, l := range s.Infinite {
		_, li, _, _ := l.SampleLi(ray.Origin, 0, 0)
		total = total.Add(li)
	}
	return total
}
