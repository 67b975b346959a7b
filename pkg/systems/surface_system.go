package systems

import (
	"github.com/gonewx/helios/pkg/components"
	"github.com/gonewx/helios/pkg/ecs"
)

// SurfaceSystem 太阳表面动画系统
//
// 每帧做两件事：
//  1. 推进本体状态：累加动画时间，按 Direction[axis] * Speed 递增各轴旋转
//     （不做钳制，非零速度会无界累加，是否回绕由调用方决定）
//  2. 把当前可调参数拷贝进参数库（纯状态前递，无分支、无失败路径）
type SurfaceSystem struct {
	entityManager *ecs.EntityManager
}

// NewSurfaceSystem 创建表面动画系统
func NewSurfaceSystem(em *ecs.EntityManager) *SurfaceSystem {
	return &SurfaceSystem{
		entityManager: em,
	}
}

// Update 更新所有太阳本体实体
func (s *SurfaceSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.SurfaceComponent](s.entityManager)

	for _, id := range entities {
		surface, ok := ecs.GetComponent[*components.SurfaceComponent](s.entityManager, id)
		if !ok {
			continue
		}

		// 推进动画时间
		surface.Elapsed += deltaTime

		// 旋转按"方向 × 速度"逐次递增（每次 advance 一步）
		surface.Rotation.X += surface.Direction.X * surface.Speed
		surface.Rotation.Y += surface.Direction.Y * surface.Speed
		surface.Rotation.Z += surface.Direction.Z * surface.Speed

		s.syncBank(surface)
	}
}

// syncBank 把可调参数拷入参数库（渲染后端只读参数库）
func (s *SurfaceSystem) syncBank(surface *components.SurfaceComponent) {
	bank := surface.Bank
	if bank == nil {
		return
	}
	t := &surface.Tunables

	bank.SetScalar("uTime", surface.Elapsed)
	bank.SetColor("uBaseColor", t.BaseColor)
	bank.SetColor("uHotColor", t.HotColor)
	bank.SetColor("uDeepColor", t.DeepColor)
	bank.SetColor("uEmissiveColor", t.EmissiveColor)
	bank.SetScalar("uDistortionStrength", t.DistortionStrength)
	bank.SetScalar("uEmissiveStrength", t.EmissiveStrength)
	bank.SetScalar("uFBMFrequency", t.FBMFrequency)
	bank.SetScalar("uBrightness", t.Brightness)
	bank.SetScalar("uContrastPower", t.ContrastPower)
	bank.SetScalar("uFBMScale", t.FBMScale)
	bank.SetScalar("uFBMOffset", t.FBMOffset)
	bank.SetVec2("uEmissiveThreshold", t.EmissiveThresholdMin, t.EmissiveThresholdMax)
}
