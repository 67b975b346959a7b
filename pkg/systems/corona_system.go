package systems

import (
	"math"

	"github.com/gonewx/helios/pkg/components"
	"github.com/gonewx/helios/pkg/ecs"
	"github.com/gonewx/helios/pkg/utils"
)

// ViewerProvider 提供宿主相机位置
// 日冕层据此面向观察者（公告板化）
type ViewerProvider interface {
	CameraPosition() utils.Vec3
}

// 观察者移动超过该距离才重新计算面向（滞后，避免逐帧三角函数开销）
const viewerMoveThreshold = 0.5

// 多轴反应折算进最终 z 自旋的增益
const multiAxisWobbleGain = 0.15

// CoronaSystem manages the reactive rotation/scale state machine of every
// corona (atmosphere) layer.
//
// The visible spin is the sum of two independent parts:
//   - driven rotation: either synced to the body's y rotation or accumulated
//     from deltaTime, depending on SyncWithSun
//   - reactive rotation: a decaying accumulator fed by the body's per-frame
//     rotation deltas
//
// 把"驱动自旋"和"反应自旋"分开，使日冕看起来与本体物理耦合，
// 但不需要把变换层级硬绑在一起。
type CoronaSystem struct {
	entityManager *ecs.EntityManager
	viewer        ViewerProvider
}

// NewCoronaSystem 创建日冕系统
func NewCoronaSystem(em *ecs.EntityManager, viewer ViewerProvider) *CoronaSystem {
	return &CoronaSystem{
		entityManager: em,
		viewer:        viewer,
	}
}

// Update 对每个日冕层执行一次状态机推进
func (s *CoronaSystem) Update(deltaTime float64) {
	bodyRotation, hasBody := s.bodyRotation()

	entities := ecs.GetEntitiesWith1[*components.CoronaComponent](s.entityManager)
	for _, id := range entities {
		corona, ok := ecs.GetComponent[*components.CoronaComponent](s.entityManager, id)
		if !ok {
			continue
		}
		s.advance(corona, deltaTime, bodyRotation, hasBody)
	}
}

// bodyRotation 读取太阳本体当前旋转（本体实体唯一）
func (s *CoronaSystem) bodyRotation() (utils.Vec3, bool) {
	bodies := ecs.GetEntitiesWith1[*components.SurfaceComponent](s.entityManager)
	for _, id := range bodies {
		if surface, ok := ecs.GetComponent[*components.SurfaceComponent](s.entityManager, id); ok {
			return surface.Rotation, true
		}
	}
	return utils.Vec3{}, false
}

// advance 单个日冕层的每帧状态机
func (s *CoronaSystem) advance(corona *components.CoronaComponent, dt float64, bodyRotation utils.Vec3, hasBody bool) {
	// 1. 未激活：本帧不渲染，跳过所有后续步骤，不改动任何状态
	if !corona.Active {
		return
	}

	t := &corona.Tunables

	// 2. 同步可视参数并推进噪声时间
	s.syncBank(corona)
	if corona.Bank != nil {
		corona.Bank.AddScalar("uTime", dt*t.AnimationSpeed)
	}

	// 3. 本体旋转增量（首帧无增量）
	var delta utils.Vec3
	if hasBody {
		if corona.HasLastBodyRotation {
			delta = bodyRotation.Sub(corona.LastBodyRotation)
		}
		corona.LastBodyRotation = bodyRotation
		corona.HasLastBodyRotation = true
	}

	// 4. 面向观察者：仅当观察者移动超过阈值才重算，并缓存实际使用的位置
	if s.viewer != nil {
		viewerPos := s.viewer.CameraPosition()
		if !corona.HasLastViewerPos || viewerPos.Sub(corona.LastViewerPos).Length() > viewerMoveThreshold {
			corona.Facing = viewerPos.Normalize()
			corona.LastViewerPos = viewerPos
			corona.HasLastViewerPos = true
		}
	}

	// 5. 驱动自旋
	// 独立累加器在两种模式下都推进：脉动相位（步骤 7）依赖它
	corona.RotationAccumulator += dt * t.Speed
	if t.WrapRotation {
		// 回绕到 [-2π, 2π]
		if corona.RotationAccumulator > 2*math.Pi {
			corona.RotationAccumulator -= 4 * math.Pi
		} else if corona.RotationAccumulator < -2*math.Pi {
			corona.RotationAccumulator += 4 * math.Pi
		}
	}

	var spin float64
	if t.SyncWithSun {
		spin = bodyRotation.Y*t.Speed + corona.ReactiveAccumulator.Z
	} else {
		spin = corona.RotationAccumulator + corona.ReactiveAccumulator.Z
	}

	// 6. 反应累加：上一帧的累加值先指数衰减，再叠加本帧增量的响应。
	// 恒定增量 Δ 下收敛到 Δ·reactivity/(1-decay)，模长始终有界
	corona.ReactiveAccumulator = corona.ReactiveAccumulator.
		Scale(t.RotationDecay).
		Add(delta.Scale(t.RotationReactivity))

	// 多轴反应：把 x/y 反应分量的次级振荡折算进最终 z 自旋，
	// 产生对本体运动的"摆动"响应而不被旋转锁定。
	// 该步骤与步骤 4 的观察者分支相互独立触发。
	if t.EnableMultiAxisReaction {
		spin += math.Sin(corona.ReactiveAccumulator.X)*multiAxisWobbleGain +
			math.Cos(corona.ReactiveAccumulator.Y)*multiAxisWobbleGain
	}
	corona.SpinZ = spin

	// 7. 脉动：周期波 + 本体旋转变化强度
	scale := t.Scale
	if t.EnablePulsing {
		deltaMagnitude := math.Sqrt(delta.Dot(delta))
		scale = t.Scale +
			math.Sin(corona.RotationAccumulator*t.PulseFrequency)*t.PulseAmplitude +
			t.ReactiveScaling*deltaMagnitude
	}
	corona.GeometryScale = scale
}

// syncBank 把可调参数拷入参数库
func (s *CoronaSystem) syncBank(corona *components.CoronaComponent) {
	bank := corona.Bank
	if bank == nil {
		return
	}
	t := &corona.Tunables

	bank.SetColor("uGlowColor", t.GlowColor)
	bank.SetScalar("uFlareStrength", t.FlareStrength)
	bank.SetScalar("uBaseGlowStrength", t.BaseGlowStrength)
	bank.SetScalar("uRadialFalloff", t.RadialFalloff)
	bank.SetScalar("uFlareFalloff", t.FlareFalloff)
	bank.SetVec2("uEdgeFade", t.EdgeFadeStart, t.EdgeFadeEnd)
	bank.SetScalar("uBaseGlowThreshold", t.BaseGlowThreshold)
}
