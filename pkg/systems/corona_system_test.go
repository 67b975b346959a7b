package systems

import (
	"math"
	"testing"

	"github.com/gonewx/helios/pkg/components"
	"github.com/gonewx/helios/pkg/ecs"
	"github.com/gonewx/helios/pkg/utils"
)

// stubViewer 固定位置的观察者
type stubViewer struct {
	pos utils.Vec3
}

func (v *stubViewer) CameraPosition() utils.Vec3 {
	return v.pos
}

// newTestCoronaWorld 构造一个本体 + 单层日冕的测试世界
func newTestCoronaWorld(tunables components.CoronaTunables) (*ecs.EntityManager, *components.SurfaceComponent, *components.CoronaComponent) {
	em := ecs.NewEntityManager()

	surface := &components.SurfaceComponent{Radius: 1}
	bodyID := em.CreateEntity()
	em.AddComponent(bodyID, surface)

	corona := &components.CoronaComponent{
		Active:        true,
		Tunables:      tunables,
		GeometryScale: tunables.Scale,
	}
	coronaID := em.CreateEntity()
	em.AddComponent(coronaID, corona)

	return em, surface, corona
}

// TestCoronaInactiveNoMutation 未激活的日冕层不改动任何状态
func TestCoronaInactiveNoMutation(t *testing.T) {
	em, surface, corona := newTestCoronaWorld(components.CoronaTunables{
		Speed: 1.0, Scale: 1.0, RotationDecay: 0.9, RotationReactivity: 0.5,
	})
	corona.Active = false
	surface.Rotation = utils.V3(0, 1, 0)

	system := NewCoronaSystem(em, &stubViewer{pos: utils.V3(0, 0, 10)})
	for i := 0; i < 10; i++ {
		system.Update(0.016)
	}

	if corona.RotationAccumulator != 0 {
		t.Errorf("未激活层的驱动累加器被改动: %v", corona.RotationAccumulator)
	}
	if corona.ReactiveAccumulator != (utils.Vec3{}) {
		t.Errorf("未激活层的反应累加器被改动: %v", corona.ReactiveAccumulator)
	}
	if corona.HasLastBodyRotation || corona.HasLastViewerPos {
		t.Errorf("未激活层记录了观察状态")
	}
	if corona.SpinZ != 0 {
		t.Errorf("未激活层的自旋被改动: %v", corona.SpinZ)
	}
}

// TestCoronaFirstFrameZeroDelta 首帧没有旋转增量，反应累加器保持为零
func TestCoronaFirstFrameZeroDelta(t *testing.T) {
	em, surface, corona := newTestCoronaWorld(components.CoronaTunables{
		Scale: 1.0, RotationDecay: 0.9, RotationReactivity: 0.5,
	})
	// 本体在日冕观察之前已经转了很久
	surface.Rotation = utils.V3(0.3, 5.0, 0.1)

	NewCoronaSystem(em, nil).Update(0.016)

	if corona.ReactiveAccumulator != (utils.Vec3{}) {
		t.Errorf("首帧反应累加器 = %v, 期望零向量", corona.ReactiveAccumulator)
	}
	if !corona.HasLastBodyRotation || corona.LastBodyRotation != surface.Rotation {
		t.Errorf("首帧应记录基准旋转")
	}
}

// TestCoronaSyncSpin 同步模式：自旋 = 本体 Y 旋转 × 速度 + 反应分量
func TestCoronaSyncSpin(t *testing.T) {
	em, surface, corona := newTestCoronaWorld(components.CoronaTunables{
		SyncWithSun: true, Speed: 0.5, Scale: 1.0,
		RotationDecay: 0.9, RotationReactivity: 0.5,
	})
	surface.Rotation = utils.V3(0, 2.0, 0)

	NewCoronaSystem(em, nil).Update(0.016)

	want := 2.0 * 0.5 // 反应累加器此刻为零
	if math.Abs(corona.SpinZ-want) > 1e-12 {
		t.Errorf("SpinZ = %v, 期望 %v", corona.SpinZ, want)
	}
}

// TestCoronaIndependentSpin 独立模式：自旋按 dt×速度逐帧累加
func TestCoronaIndependentSpin(t *testing.T) {
	em, _, corona := newTestCoronaWorld(components.CoronaTunables{
		Speed: 0.25, Scale: 1.0, RotationDecay: 0.9,
	})

	system := NewCoronaSystem(em, nil)
	system.Update(0.1)
	system.Update(0.1)

	want := 2 * 0.1 * 0.25
	if math.Abs(corona.RotationAccumulator-want) > 1e-12 {
		t.Errorf("RotationAccumulator = %v, 期望 %v", corona.RotationAccumulator, want)
	}
	if math.Abs(corona.SpinZ-want) > 1e-12 {
		t.Errorf("SpinZ = %v, 期望 %v", corona.SpinZ, want)
	}
}

// TestCoronaWrapRotation 回绕模式下自旋累加器始终落在 [-2π, 2π]
func TestCoronaWrapRotation(t *testing.T) {
	em, _, corona := newTestCoronaWorld(components.CoronaTunables{
		Speed: 5.0, Scale: 1.0, WrapRotation: true, RotationDecay: 0.9,
	})

	system := NewCoronaSystem(em, nil)
	for i := 0; i < 1000; i++ {
		system.Update(0.05)
		if math.Abs(corona.RotationAccumulator) > 2*math.Pi+1e-9 {
			t.Fatalf("第 %d 帧累加器 %v 超出 [-2π, 2π]", i, corona.RotationAccumulator)
		}
	}
}

// TestCoronaReactiveConvergence 恒定旋转增量下反应累加器收敛到 Δ·r/(1-d)
func TestCoronaReactiveConvergence(t *testing.T) {
	reactivity := 0.5
	decay := 0.9
	delta := 0.01

	em, surface, corona := newTestCoronaWorld(components.CoronaTunables{
		Scale: 1.0, RotationDecay: decay, RotationReactivity: reactivity,
	})

	system := NewCoronaSystem(em, nil)
	for i := 0; i < 500; i++ {
		surface.Rotation.Z += delta
		system.Update(0.016)
	}

	want := delta * reactivity / (1 - decay)
	if math.Abs(corona.ReactiveAccumulator.Z-want) > 1e-9 {
		t.Errorf("ReactiveAccumulator.Z = %v, 期望收敛到 %v", corona.ReactiveAccumulator.Z, want)
	}

	// 有界性：停止扰动后衰减回零
	for i := 0; i < 2000; i++ {
		system.Update(0.016)
	}
	if math.Abs(corona.ReactiveAccumulator.Z) > 1e-6 {
		t.Errorf("停止扰动后累加器未衰减: %v", corona.ReactiveAccumulator.Z)
	}
}

// TestCoronaMultiAxisWobble 多轴反应把 x/y 分量折算进最终自旋
func TestCoronaMultiAxisWobble(t *testing.T) {
	em, surface, corona := newTestCoronaWorld(components.CoronaTunables{
		Scale: 1.0, RotationDecay: 0.9, RotationReactivity: 0.5,
		EnableMultiAxisReaction: true,
	})

	system := NewCoronaSystem(em, nil)
	system.Update(0.016) // 基准帧

	surface.Rotation.X += 0.2
	system.Update(0.016) // 产生 x 增量，进入反应累加器

	// 下一帧自旋包含 sin/cos 摆动项
	system.Update(0.016)
	want := math.Sin(corona.ReactiveAccumulator.X)*0.15 + math.Cos(corona.ReactiveAccumulator.Y)*0.15
	// 摆动项是 SpinZ 的组成部分之一（此处驱动自旋为 0，反应 z 为 0）
	if math.Abs(corona.SpinZ-want) > 0.05 {
		t.Errorf("SpinZ = %v, 摆动项期望约 %v", corona.SpinZ, want)
	}
}

// TestCoronaPulsingScale 脉动缩放公式
func TestCoronaPulsingScale(t *testing.T) {
	em, _, corona := newTestCoronaWorld(components.CoronaTunables{
		Scale: 1.0, Speed: 1.0, RotationDecay: 0.9,
		EnablePulsing: true, PulseFrequency: 2.0, PulseAmplitude: 0.1,
	})

	NewCoronaSystem(em, nil).Update(0.5)

	// 本帧累加器 = 0.5，首帧旋转增量为零
	want := 1.0 + math.Sin(0.5*2.0)*0.1
	if math.Abs(corona.GeometryScale-want) > 1e-9 {
		t.Errorf("GeometryScale = %v, 期望 %v", corona.GeometryScale, want)
	}
}

// TestCoronaViewerHysteresis 观察者移动不超过阈值时不重算面向
func TestCoronaViewerHysteresis(t *testing.T) {
	em, _, corona := newTestCoronaWorld(components.CoronaTunables{
		Scale: 1.0, RotationDecay: 0.9,
	})
	viewer := &stubViewer{pos: utils.V3(0, 0, 10)}
	system := NewCoronaSystem(em, viewer)

	system.Update(0.016)
	firstFacing := corona.Facing
	if math.Abs(firstFacing.Length()-1) > 1e-9 {
		t.Fatalf("面向应为单位向量: %v", firstFacing)
	}

	// 小于阈值的移动：面向保持不变
	viewer.pos = utils.V3(0.3, 0, 10)
	system.Update(0.016)
	if corona.Facing != firstFacing {
		t.Errorf("阈值内移动触发了重算")
	}

	// 超过阈值的移动：面向更新
	viewer.pos = utils.V3(5, 0, 10)
	system.Update(0.016)
	if corona.Facing == firstFacing {
		t.Errorf("超过阈值的移动未触发重算")
	}
}
