package systems

import (
	"math"
	"testing"

	"github.com/gonewx/helios/pkg/components"
	"github.com/gonewx/helios/pkg/ecs"
)

// newTestFlare 构造一个带双层参数库的耀斑实体
func newTestFlare(em *ecs.EntityManager, size, lifetime, turbulence float64) (ecs.EntityID, *components.FlareComponent) {
	flare := &components.FlareComponent{
		Lifetime:   lifetime,
		Size:       size,
		Turbulence: turbulence,
		FlareCount: 2,
		Panels: []*components.FlarePanel{
			{Layer: components.FlareLayerReceding},
			{Layer: components.FlareLayerDeparting},
		},
	}
	for layer := 0; layer < components.FlareLayerCount; layer++ {
		bank := components.NewParameterBank()
		bank.DeclareScalar("uTime", 0)
		bank.DeclareScalar("uOpacity", 0)
		flare.LayerBanks[layer] = bank
	}
	id := em.CreateEntity()
	em.AddComponent(id, flare)
	return id, flare
}

// TestFlarePeakAtHalfLife 中点处淡出值达到峰值 1，面板缩放 = size/10
func TestFlarePeakAtHalfLife(t *testing.T) {
	em := ecs.NewEntityManager()
	_, flare := newTestFlare(em, 10, 2.0, 1.0)
	system := NewFlareSystem(em)

	system.Update(1.0) // age = lifetime/2

	if math.Abs(flare.Fade-1.0) > 1e-12 {
		t.Errorf("中点 Fade = %v, 期望 1.0", flare.Fade)
	}
	if math.Abs(flare.PanelScale-1.0) > 1e-12 {
		t.Errorf("中点 PanelScale = %v, 期望 1.0 (size/10)", flare.PanelScale)
	}
	if got := flare.LayerBanks[0].Scalar("uOpacity"); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("中点 uOpacity = %v, 期望 1.0 (fade²)", got)
	}
}

// TestFlareFadeSymmetricBump 淡出曲线先升后降，且 opacity = fade²
func TestFlareFadeSymmetricBump(t *testing.T) {
	em := ecs.NewEntityManager()
	_, flare := newTestFlare(em, 10, 1.0, 1.0)
	system := NewFlareSystem(em)

	system.Update(0.25) // 上升段
	rising := flare.Fade
	if rising <= 0 || rising >= 1 {
		t.Fatalf("上升段 Fade = %v, 期望 (0, 1)", rising)
	}
	wantOpacity := rising * rising
	if got := flare.LayerBanks[1].Scalar("uOpacity"); math.Abs(got-wantOpacity) > 1e-12 {
		t.Errorf("uOpacity = %v, 期望 fade² = %v", got, wantOpacity)
	}

	system.Update(0.5) // 越过峰值进入下降段 (age = 0.75)
	falling := flare.Fade
	if math.Abs(falling-rising) > 1e-9 {
		// sin 曲线关于中点对称：age=0.25 与 age=0.75 的 fade 相同
		t.Errorf("对称点 Fade 不相等: %v vs %v", rising, falling)
	}
}

// TestFlareDestroyedAtLifetime age 达到 lifetime 时实体销毁
func TestFlareDestroyedAtLifetime(t *testing.T) {
	em := ecs.NewEntityManager()
	id, flare := newTestFlare(em, 10, 1.0, 1.0)
	system := NewFlareSystem(em)

	system.Update(0.999)
	if flare.Destroyed {
		t.Fatalf("生命周期未结束即被销毁")
	}

	system.Update(0.001) // age == lifetime，边界即销毁
	if !flare.Destroyed {
		t.Fatalf("age ≥ lifetime 时未销毁")
	}
	if flare.Fade != 0 || flare.PanelScale != 0 {
		t.Errorf("销毁后 Fade/PanelScale 未清零: %v, %v", flare.Fade, flare.PanelScale)
	}
	if flare.Panels != nil {
		t.Errorf("销毁后面板未释放")
	}

	// 延迟删除：标记在本帧，实际移除在 RemoveMarkedEntities
	if !em.HasEntity(id) {
		t.Errorf("实体应延迟到 RemoveMarkedEntities 才删除")
	}
	em.RemoveMarkedEntities()
	if em.HasEntity(id) {
		t.Errorf("RemoveMarkedEntities 后实体仍存在")
	}
}

// TestFlareDestroyedIsAbsorbing 销毁是吸收态，后续推进全部空操作
func TestFlareDestroyedIsAbsorbing(t *testing.T) {
	em := ecs.NewEntityManager()
	_, flare := newTestFlare(em, 10, 0.5, 1.0)
	system := NewFlareSystem(em)

	system.Update(1.0) // 一步跨过生命周期
	if !flare.Destroyed {
		t.Fatalf("未销毁")
	}
	ageAtDeath := flare.Age

	system.Update(1.0)
	system.Update(1.0)
	if flare.Age != ageAtDeath {
		t.Errorf("销毁后年龄仍在推进: %v -> %v", ageAtDeath, flare.Age)
	}
}

// TestFlareNonPositiveLifetime 非正生命周期在首帧即销毁
func TestFlareNonPositiveLifetime(t *testing.T) {
	em := ecs.NewEntityManager()
	_, flare := newTestFlare(em, 10, 0, 1.0)
	system := NewFlareSystem(em)

	system.Update(0.016)
	if !flare.Destroyed {
		t.Errorf("零生命周期首帧未销毁")
	}
}

// TestFlareLayerTimeByTurbulence 各层噪声时间按 dt×湍流系数推进
func TestFlareLayerTimeByTurbulence(t *testing.T) {
	em := ecs.NewEntityManager()
	_, flare := newTestFlare(em, 10, 10.0, 1.5)
	system := NewFlareSystem(em)

	system.Update(0.5)
	system.Update(0.5)

	want := 2 * 0.5 * 1.5
	for layer, bank := range flare.LayerBanks {
		if got := bank.Scalar("uTime"); math.Abs(got-want) > 1e-12 {
			t.Errorf("层 %d uTime = %v, 期望 %v", layer, got, want)
		}
	}
}
