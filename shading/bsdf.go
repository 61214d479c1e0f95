package shading

import (
	"math"

	"github.com/gorender/core/geometry"
	"github.com/gorender/core/mathutil"
)

// maxBxDFs bounds the arena-allocated BxDF set a single BSDF holds,
// mirroring the original engine's fixed MAX_BxDFS array (spec.md §9:
// "POD, arena-allocated BxDFs" rather than a heap-allocated slice of
// interfaces per hit).
const maxBxDFs = 8

// BSDF composes up to maxBxDFs BxDFs sampled in a local shading frame
// built from the hit's differential geometry, and performs the
// world<->local rotation every BxDF call needs.
type BSDF struct {
	ShadingGeometry geometry.DifferentialGeometry
	Eta             float64

	geoNormal                mathutil.Vec3
	normal, tangent, binormal mathutil.Vec3

	bxdfs [maxBxDFs]BxDF
	n     int
}

// NewBSDF builds the shading frame (spec.md §4.5: BxDFs operate in a
// local frame where +z = shading normal) from dgShading, using the
// unrelated geometric normal ngeom only to classify reflection vs.
// transmission in Eval/Sample.
func NewBSDF(dgShading geometry.DifferentialGeometry, ngeom mathutil.Vec3, eta float64) *BSDF {
	normal := dgShading.Normal
	binormal := dgShading.DPDU.Normalize()
	tangent := normal.Cross(binormal)
	return &BSDF{
		ShadingGeometry: dgShading,
		Eta:             eta,
		geoNormal:       ngeom,
		normal:          normal,
		tangent:         tangent,
		binormal:        binormal,
	}
}

// Add appends a BxDF to the set; panics (a programmer error, spec.md §7)
// if the arena-sized bound is exceeded.
func (b *BSDF) Add(bx BxDF) {
	if b.n >= maxBxDFs {
		panic("shading: BSDF exceeded maxBxDFs")
	}
	b.bxdfs[b.n] = bx
	b.n++
}

// NumComponents counts the BxDFs matching flags.
func (b *BSDF) NumComponents(flags Type) int {
	count := 0
	for i := 0; i < b.n; i++ {
		if b.bxdfs[i].Type().Matches(flags) {
			count++
		}
	}
	return count
}

// WorldToLocal rotates a world-space direction into the shading frame
// (binormal, tangent, normal) = (x, y, z).
func (b *BSDF) WorldToLocal(v mathutil.Vec3) mathutil.Vec3 {
	return mathutil.Vec3{X: v.Dot(b.binormal), Y: v.Dot(b.tangent), Z: v.Dot(b.normal)}
}

// LocalToWorld is WorldToLocal's inverse.
func (b *BSDF) LocalToWorld(v mathutil.Vec3) mathutil.Vec3 {
	return mathutil.Vec3{
		X: b.binormal.X*v.X + b.tangent.X*v.Y + b.normal.X*v.Z,
		Y: b.binormal.Y*v.X + b.tangent.Y*v.Y + b.normal.Y*v.Z,
		Z: b.binormal.Z*v.X + b.tangent.Z*v.Y + b.normal.Z*v.Z,
	}
}

// reflectionTransmissionMask drops BSDF_Transmission from flags when
// wiW and woW are on the same side of the geometric normal, and drops
// BSDF_Reflection otherwise -- the BSDF decides reflection/transmission
// by the true geometric normal, not the (possibly bumped) shading normal.
func (b *BSDF) reflectionTransmissionMask(woW, wiW mathutil.Vec3, flags Type) Type {
	if wiW.Dot(b.geoNormal)*woW.Dot(b.geoNormal) > 0 {
		return flags &^ Transmission
	}
	return flags &^ Reflection
}

// Eval sums every matching BxDF's contribution in the world frame.
func (b *BSDF) Eval(woW, wiW mathutil.Vec3, flags Type) mathutil.RGB {
	wi := b.WorldToLocal(wiW)
	wo := b.WorldToLocal(woW)
	flags = b.reflectionTransmissionMask(woW, wiW, flags)

	result := mathutil.RGB{}
	for i := 0; i < b.n; i++ {
		if b.bxdfs[i].Type().Matches(flags) {
			result = result.Add(b.bxdfs[i].Eval(wo, wi))
		}
	}
	return result
}

// Pdf returns the mixture pdf (average of each matching component's pdf)
// for a direction pair, used by MIS weighting of a BSDF-generated sample.
func (b *BSDF) Pdf(woW, wiW mathutil.Vec3, flags Type) float64 {
	wi := b.WorldToLocal(wiW)
	wo := b.WorldToLocal(woW)

	pdf := 0.0
	matching := 0
	for i := 0; i < b.n; i++ {
		if b.bxdfs[i].Type().Matches(flags) {
			matching++
			pdf += b.bxdfs[i].Pdf(wo, wi)
		}
	}
	if matching == 0 {
		return 0
	}
	return pdf / float64(matching)
}

// Sample picks one matching component uniformly (index floor(uComponent *
// matching), clamped), samples it, and — for non-specular results — forms
// the mixture pdf and re-evaluates f from every matching component
// (spec.md §4.5 "BSDF.sample").
func (b *BSDF) Sample(woW mathutil.Vec3, u1, u2, uComponent float64, flags Type) (wiW mathutil.Vec3, f mathutil.RGB, pdf float64, sampledType Type) {
	matching := b.NumComponents(flags)
	if matching == 0 {
		return mathutil.Vec3{}, mathutil.RGB{}, 0, 0
	}

	which := int(math.Floor(float64(matching) * uComponent))
	if which > matching-1 {
		which = matching - 1
	}

	var chosen BxDF
	for i := 0; i < b.n; i++ {
		if b.bxdfs[i].Type().Matches(flags) {
			if which == 0 {
				chosen = b.bxdfs[i]
				break
			}
			which--
		}
	}

	wo := b.WorldToLocal(woW)
	wi, sampledF, samplePdf := chosen.Sample(wo, u1, u2)
	if samplePdf == 0 {
		return mathutil.Vec3{}, mathutil.RGB{}, 0, 0
	}

	sampledType = chosen.Type()
	wiW = b.LocalToWorld(wi)

	pdf = samplePdf
	if sampledType&Specular == 0 && matching > 1 {
		for i := 0; i < b.n; i++ {
			if b.bxdfs[i] != chosen && b.bxdfs[i].Type().Matches(flags) {
				pdf += b.bxdfs[i].Pdf(wo, wi)
			}
		}
	}
	if matching > 1 {
		pdf /= float64(matching)
	}

	if sampledType&Specular == 0 {
		result := mathutil.RGB{}
		evalFlags := b.reflectionTransmissionMask(woW, wiW, flags)
		for i := 0; i < b.n; i++ {
			if b.bxdfs[i].Type().Matches(evalFlags) {
				result = result.Add(b.bxdfs[i].Eval(wo, wi))
			}
		}
		return wiW, result, pdf, sampledType
	}

	return wiW, sampledF, pdf, sampledType
}
