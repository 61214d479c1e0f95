package shading

import (
	"testing"

	"github.com/gorender/core/mathutil"
)

func TestMatteZeroSigmaIsLambertian(t *testing.T) {
	dg := flatDG(mathutil.Vec3{X: 0, Y: 0, Z: 1}, mathutil.Vec3{X: 1, Y: 0, Z: 0}, mathutil.Vec3{X: 0, Y: 1, Z: 0})
	m := Matte{Kd: ConstantTexture{Value: mathutil.RGB{R: 0.8, G: 0.2, B: 0.2}}}
	bsdf := m.GetBSDF(dg, dg)
	if bsdf.n != 1 {
		t.Fatalf("expected exactly one BxDF, got %d", bsdf.n)
	}
	if _, ok := bsdf.bxdfs[0].(Lambertian); !ok {
		t.Errorf("expected Lambertian, got %T", bsdf.bxdfs[0])
	}
}

func TestMatteNonZeroSigmaIsOrenNayar(t *testing.T) {
	dg := flatDG(mathutil.Vec3{X: 0, Y: 0, Z: 1}, mathutil.Vec3{X: 1, Y: 0, Z: 0}, mathutil.Vec3{X: 0, Y: 1, Z: 0})
	m := Matte{
		Kd:    ConstantTexture{Value: mathutil.RGB{R: 0.8, G: 0.2, B: 0.2}},
		Sigma: ConstantTexture{Value: mathutil.RGB{R: 20, G: 20, B: 20}},
	}
	bsdf := m.GetBSDF(dg, dg)
	if _, ok := bsdf.bxdfs[0].(OrenNayar); !ok {
		t.Errorf("expected OrenNayar, got %T", bsdf.bxdfs[0])
	}
}

func TestMirrorBlackReflectanceAddsNothing(t *testing.T) {
	dg := flatDG(mathutil.Vec3{X: 0, Y: 0, Z: 1}, mathutil.Vec3{X: 1, Y: 0, Z: 0}, mathutil.Vec3{X: 0, Y: 1, Z: 0})
	m := Mirror{Kr: ConstantTexture{Value: mathutil.RGB{}}}
	bsdf := m.GetBSDF(dg, dg)
	if bsdf.n != 0 {
		t.Errorf("expected no BxDFs for a black mirror reflectance, got %d", bsdf.n)
	}
}

func TestGlassAddsReflectionAndTransmission(t *testing.T) {
	dg := flatDG(mathutil.Vec3{X: 0, Y: 0, Z: 1}, mathutil.Vec3{X: 1, Y: 0, Z: 0}, mathutil.Vec3{X: 0, Y: 1, Z: 0})
	g := Glass{
		Kr:    ConstantTexture{Value: mathutil.RGB{R: 1, G: 1, B: 1}},
		Kt:    ConstantTexture{Value: mathutil.RGB{R: 1, G: 1, B: 1}},
		Index: ConstantTexture{Value: mathutil.RGB{R: 1.5, G: 1.5, B: 1.5}},
	}
	bsdf := g.GetBSDF(dg, dg)
	if bsdf.n != 2 {
		t.Fatalf("expected 2 BxDFs (reflection+transmission), got %d", bsdf.n)
	}
	if bsdf.Eta != 1.5 {
		t.Errorf("Eta = %v, want 1.5", bsdf.Eta)
	}
}

func TestPlasticLayersDiffuseAndGlossy(t *testing.T) {
	dg := flatDG(mathutil.Vec3{X: 0, Y: 0, Z: 1}, mathutil.Vec3{X: 1, Y: 0, Z: 0}, mathutil.Vec3{X: 0, Y: 1, Z: 0})
	p := Plastic{
		Kd: ConstantTexture{Value: mathutil.RGB{R: 0.5, G: 0.5, B: 0.5}},
		Ks: ConstantTexture{Value: mathutil.RGB{R: 0.3, G: 0.3, B: 0.3}},
	}
	bsdf := p.GetBSDF(dg, dg)
	if bsdf.n != 2 {
		t.Fatalf("expected 2 BxDFs (diffuse+glossy), got %d", bsdf.n)
	}
}
