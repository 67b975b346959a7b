package entities

import (
	"testing"

	"github.com/gonewx/helios/pkg/components"
	"github.com/gonewx/helios/pkg/config"
	"github.com/gonewx/helios/pkg/ecs"
)

// TestNewSunBodyEntity 本体实体携带配置值，参数库键一次性声明完毕
func TestNewSunBodyEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultSunConfig()
	cfg.Radius = 3.0
	cfg.Rotation.Speed = 0.007

	id := NewSunBodyEntity(em, cfg)
	surface, ok := ecs.GetComponent[*components.SurfaceComponent](em, id)
	if !ok {
		t.Fatalf("实体缺少表面组件")
	}

	if surface.Radius != 3.0 {
		t.Errorf("Radius = %v, 期望 3.0", surface.Radius)
	}
	if surface.Speed != 0.007 {
		t.Errorf("Speed = %v, 期望 0.007", surface.Speed)
	}
	if surface.Direction != cfg.Rotation.Direction.ToVec3() {
		t.Errorf("Direction = %v", surface.Direction)
	}
	if surface.Tunables.BaseColor != cfg.Shader.BaseColor.ToColor() {
		t.Errorf("BaseColor 未从配置转换")
	}

	wantKeys := []string{"uTime", "uBaseColor", "uHotColor", "uDeepColor",
		"uEmissiveColor", "uDistortionStrength", "uEmissiveStrength",
		"uFBMFrequency", "uBrightness", "uContrastPower", "uFBMScale",
		"uFBMOffset", "uEmissiveThreshold"}
	if surface.Bank == nil {
		t.Fatalf("参数库为 nil")
	}
	for _, k := range wantKeys {
		if !surface.Bank.Has(k) {
			t.Errorf("参数库缺少键 %s", k)
		}
	}
	if len(surface.Bank.Keys()) != len(wantKeys) {
		t.Errorf("参数库键数 = %d, 期望 %d", len(surface.Bank.Keys()), len(wantKeys))
	}
}

// TestNewCoronaEntity 日冕实体的初始状态
func TestNewCoronaEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cc := &config.DefaultSunConfig().Corona[0]
	cc.Scale = 1.3
	cc.Active = true

	id := NewCoronaEntity(em, cc)
	corona, ok := ecs.GetComponent[*components.CoronaComponent](em, id)
	if !ok {
		t.Fatalf("实体缺少日冕组件")
	}

	if !corona.Active {
		t.Errorf("Active 未从配置传递")
	}
	if corona.GeometryScale != 1.3 {
		t.Errorf("初始 GeometryScale = %v, 期望等于 Scale 1.3", corona.GeometryScale)
	}
	if corona.Tunables.GlowColor != cc.GlowColor.ToColor() {
		t.Errorf("GlowColor 未从配置转换")
	}
	if corona.RotationAccumulator != 0 {
		t.Errorf("初始累加器应为零")
	}

	wantKeys := []string{"uTime", "uGlowColor", "uFlareStrength", "uBaseGlowStrength",
		"uRadialFalloff", "uFlareFalloff", "uEdgeFade", "uBaseGlowThreshold"}
	for _, k := range wantKeys {
		if !corona.Bank.Has(k) {
			t.Errorf("参数库缺少键 %s", k)
		}
	}
}
