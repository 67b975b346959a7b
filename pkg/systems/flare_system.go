package systems

import (
	"github.com/gonewx/helios/pkg/components"
	"github.com/gonewx/helios/pkg/ecs"
	"github.com/gonewx/helios/pkg/utils"
)

// FlareSystem 耀斑生命周期系统
//
// 每帧推进所有存活耀斑的年龄并计算淡出曲线：
//
//	fade  = max(sin(π·age/lifetime), 0)   // 0 → 1 → 0 的对称单峰
//	scale = size·fade/10                  // 几何缩放
//	opacity = fade²                       // 着色不透明度，比几何缩放衰减更陡
//
// age ≥ lifetime 时实体自毁：面板释放、参数库丢弃、实体标记删除，
// 全部由 Destroyed 吸收态保护，只发生一次。
type FlareSystem struct {
	entityManager *ecs.EntityManager
}

// NewFlareSystem 创建耀斑系统
func NewFlareSystem(em *ecs.EntityManager) *FlareSystem {
	return &FlareSystem{
		entityManager: em,
	}
}

// Update 推进所有耀斑实体
func (s *FlareSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.FlareComponent](s.entityManager)

	for _, id := range entities {
		flare, ok := ecs.GetComponent[*components.FlareComponent](s.entityManager, id)
		if !ok {
			continue
		}
		s.advance(id, flare, deltaTime)
	}
}

// advance 推进单个耀斑
func (s *FlareSystem) advance(id ecs.EntityID, flare *components.FlareComponent, dt float64) {
	// 吸收态：销毁后任何推进都是空操作
	if flare.Destroyed {
		return
	}

	flare.Age += dt

	// 非正生命周期在首帧即销毁（age ≥ lifetime 恒成立）
	if flare.Age >= flare.Lifetime {
		s.destroy(id, flare)
		return
	}

	normalizedAge := flare.Age / flare.Lifetime
	flare.Fade = utils.FadeBump(normalizedAge)
	flare.PanelScale = flare.Size * flare.Fade / 10

	opacity := flare.Fade * flare.Fade
	for _, bank := range flare.LayerBanks {
		if bank == nil {
			continue
		}
		bank.SetScalar("uOpacity", opacity)
		// 各层内部时间按湍流系数推进
		bank.AddScalar("uTime", dt*flare.Turbulence)
	}
}

// destroy 释放耀斑资源并标记实体删除
// Destroyed 置位后不可逆，资源只释放一次
func (s *FlareSystem) destroy(id ecs.EntityID, flare *components.FlareComponent) {
	if flare.Destroyed {
		return
	}
	flare.Destroyed = true
	flare.Fade = 0
	flare.PanelScale = 0
	flare.Panels = nil // 释放面板网格
	s.entityManager.DestroyEntity(id)
}
