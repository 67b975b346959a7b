package entities

import (
	"github.com/gonewx/helios/pkg/components"
	"github.com/gonewx/helios/pkg/config"
	"github.com/gonewx/helios/pkg/ecs"
)

// NewSunBodyEntity 创建太阳本体实体
//
// 参数库的全部键在这里一次性声明，之后 SurfaceSystem 只原地更新值，
// 键集合在实体生命周期内不变
func NewSunBodyEntity(em *ecs.EntityManager, cfg *config.SunConfig) ecs.EntityID {
	tunables := surfaceTunablesFromConfig(&cfg.Shader)

	bank := components.NewParameterBank()
	bank.DeclareScalar("uTime", 0)
	bank.DeclareColor("uBaseColor", tunables.BaseColor)
	bank.DeclareColor("uHotColor", tunables.HotColor)
	bank.DeclareColor("uDeepColor", tunables.DeepColor)
	bank.DeclareColor("uEmissiveColor", tunables.EmissiveColor)
	bank.DeclareScalar("uDistortionStrength", tunables.DistortionStrength)
	bank.DeclareScalar("uEmissiveStrength", tunables.EmissiveStrength)
	bank.DeclareScalar("uFBMFrequency", tunables.FBMFrequency)
	bank.DeclareScalar("uBrightness", tunables.Brightness)
	bank.DeclareScalar("uContrastPower", tunables.ContrastPower)
	bank.DeclareScalar("uFBMScale", tunables.FBMScale)
	bank.DeclareScalar("uFBMOffset", tunables.FBMOffset)
	bank.DeclareVec2("uEmissiveThreshold", tunables.EmissiveThresholdMin, tunables.EmissiveThresholdMax)

	surface := &components.SurfaceComponent{
		Direction: cfg.Rotation.Direction.ToVec3(),
		Speed:     cfg.Rotation.Speed,
		Radius:    cfg.Radius,
		Tunables:  tunables,
		Bank:      bank,
	}

	id := em.CreateEntity()
	em.AddComponent(id, surface)
	return id
}

// NewCoronaEntity 创建单个日冕层实体
func NewCoronaEntity(em *ecs.EntityManager, cc *config.CoronaConfig) ecs.EntityID {
	tunables := coronaTunablesFromConfig(cc)

	bank := components.NewParameterBank()
	bank.DeclareScalar("uTime", 0)
	bank.DeclareColor("uGlowColor", tunables.GlowColor)
	bank.DeclareScalar("uFlareStrength", tunables.FlareStrength)
	bank.DeclareScalar("uBaseGlowStrength", tunables.BaseGlowStrength)
	bank.DeclareScalar("uRadialFalloff", tunables.RadialFalloff)
	bank.DeclareScalar("uFlareFalloff", tunables.FlareFalloff)
	bank.DeclareVec2("uEdgeFade", tunables.EdgeFadeStart, tunables.EdgeFadeEnd)
	bank.DeclareScalar("uBaseGlowThreshold", tunables.BaseGlowThreshold)

	corona := &components.CoronaComponent{
		Active:        cc.Active,
		Tunables:      tunables,
		Bank:          bank,
		GeometryScale: tunables.Scale,
	}

	id := em.CreateEntity()
	em.AddComponent(id, corona)
	return id
}

// surfaceTunablesFromConfig 配置 → 表面可调参数（构造时一次性转换）
func surfaceTunablesFromConfig(sc *config.ShaderConfig) components.SurfaceTunables {
	return components.SurfaceTunables{
		BaseColor:            sc.BaseColor.ToColor(),
		HotColor:             sc.HotColor.ToColor(),
		DeepColor:            sc.DeepColor.ToColor(),
		EmissiveColor:        sc.EmissiveColor.ToColor(),
		DistortionStrength:   sc.DistortionStrength,
		EmissiveStrength:     sc.EmissiveStrength,
		FBMFrequency:         sc.FBMFrequency,
		Brightness:           sc.Brightness,
		ContrastPower:        sc.ContrastPower,
		FBMScale:             sc.FBMScale,
		FBMOffset:            sc.FBMOffset,
		EmissiveThresholdMin: sc.EmissiveThresholdMin,
		EmissiveThresholdMax: sc.EmissiveThresholdMax,
	}
}

// coronaTunablesFromConfig 配置 → 日冕可调参数
func coronaTunablesFromConfig(cc *config.CoronaConfig) components.CoronaTunables {
	return components.CoronaTunables{
		GlowColor:               cc.GlowColor.ToColor(),
		FlareStrength:           cc.FlareStrength,
		BaseGlowStrength:        cc.BaseGlowStrength,
		RadialFalloff:           cc.RadialFalloff,
		FlareFalloff:            cc.FlareFalloff,
		EdgeFadeStart:           cc.EdgeFadeStart,
		EdgeFadeEnd:             cc.EdgeFadeEnd,
		BaseGlowThreshold:       cc.BaseGlowThreshold,
		AnimationSpeed:          cc.AnimationSpeed,
		Size:                    cc.Size,
		Scale:                   cc.Scale,
		Speed:                   cc.Speed,
		SyncWithSun:             cc.SyncWithSun,
		WrapRotation:            cc.WrapRotation,
		EnablePulsing:           cc.EnablePulsing,
		PulseFrequency:          cc.PulseFrequency,
		PulseAmplitude:          cc.PulseAmplitude,
		EnableMultiAxisReaction: cc.EnableMultiAxisReaction,
		RotationReactivity:      cc.RotationReactivity,
		RotationDecay:           cc.RotationDecay,
		ReactiveScaling:         cc.ReactiveScaling,
	}
}
