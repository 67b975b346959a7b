package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/helios/pkg/utils"
)

// SunConfig 太阳效果的顶层配置
// 对应效果配置文件（YAML）的整体结构：
//
//	seed: 1
//	radius: 1.0
//	rotation:
//	  direction: {x: 0, y: 1, z: 0.05}
//	  speed: 0.05
//	shader: {...}
//	corona:
//	  - active: true
//	    ...
//	solarEruptions:
//	  active: true
//	  minCount: 1
//	  ...
//
// 所有字段都有文档化的默认值（见 DefaultSunConfig），在构造时一次性
// 应用；更新逻辑里不做任何隐式回退
type SunConfig struct {
	Seed           int64          `yaml:"seed"`           // 噪声场种子，相同种子产生相同画面
	Radius         float64        `yaml:"radius"`         // 本体包围球半径
	Rotation       RotationConfig `yaml:"rotation"`       // 本体旋转
	Shader         ShaderConfig   `yaml:"shader"`         // 表面着色参数
	Corona         []CoronaConfig `yaml:"corona"`         // 日冕层列表（可多层）
	SolarEruptions EruptionConfig `yaml:"solarEruptions"` // 喷发调度
}

// VectorConfig 三分量向量
type VectorConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// ColorConfig RGB 颜色，分量范围 [0, 1]
type ColorConfig struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

// ToVec3 转换为运行时向量类型
func (v VectorConfig) ToVec3() utils.Vec3 {
	return utils.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// ToColor 转换为运行时颜色类型
func (c ColorConfig) ToColor() utils.Color {
	return utils.Color{R: c.R, G: c.G, B: c.B}
}

// RotationConfig 本体旋转配置
// Direction 约定为近似单位向量，配置层不做归一化
type RotationConfig struct {
	Direction VectorConfig `yaml:"direction"` // 各轴旋转方向
	Speed     float64      `yaml:"speed"`     // 每次 advance 的旋转速度标量
}

// ShaderConfig 太阳表面着色参数
type ShaderConfig struct {
	BaseColor     ColorConfig `yaml:"baseColor"`
	HotColor      ColorConfig `yaml:"hotColor"`
	DeepColor     ColorConfig `yaml:"deepColor"`
	EmissiveColor ColorConfig `yaml:"emissiveColor"`

	DistortionStrength   float64 `yaml:"distortionStrength"`
	EmissiveStrength     float64 `yaml:"emissiveStrength"`
	FBMFrequency         float64 `yaml:"fbmFrequency"`
	Brightness           float64 `yaml:"brightness"`
	ContrastPower        float64 `yaml:"contrastPower"`
	FBMScale             float64 `yaml:"fbmScale"`
	FBMOffset            float64 `yaml:"fbmOffset"`
	EmissiveThresholdMin float64 `yaml:"emissiveThresholdMin"`
	EmissiveThresholdMax float64 `yaml:"emissiveThresholdMax"`
}

// CoronaConfig 单个日冕层配置
type CoronaConfig struct {
	Active            bool        `yaml:"active"`
	GlowColor         ColorConfig `yaml:"glowColor"`
	FlareStrength     float64     `yaml:"flareStrength"`
	BaseGlowStrength  float64     `yaml:"baseGlowStrength"`
	RadialFalloff     float64     `yaml:"radialFalloff"`
	FlareFalloff      float64     `yaml:"flareFalloff"`
	EdgeFadeStart     float64     `yaml:"edgeFadeStart"`
	EdgeFadeEnd       float64     `yaml:"edgeFadeEnd"`
	BaseGlowThreshold float64     `yaml:"baseGlowThreshold"`
	AnimationSpeed    float64     `yaml:"animationSpeed"`
	Size              float64     `yaml:"size"`
	Scale             float64     `yaml:"scale"`
	Speed             float64     `yaml:"speed"`

	SyncWithSun  bool `yaml:"syncWithSun"`
	WrapRotation bool `yaml:"wrapRotation"`

	EnablePulsing  bool    `yaml:"enablePulsing"`
	PulseFrequency float64 `yaml:"pulseFrequency"`
	PulseAmplitude float64 `yaml:"pulseAmplitude"`

	EnableMultiAxisReaction bool    `yaml:"enableMultiAxisReaction"`
	RotationReactivity      float64 `yaml:"rotationReactivity"`
	RotationDecay           float64 `yaml:"rotationDecay"`
	ReactiveScaling         float64 `yaml:"reactiveScaling"`
}

// EruptionConfig 喷发调度配置
// 时间间隔单位为毫秒
type EruptionConfig struct {
	Active      bool    `yaml:"active"`
	MinCount    float64 `yaml:"minCount"`    // 每次喷发的耀斑数量下限
	MaxCount    float64 `yaml:"maxCount"`    // 数量上限（取 floor(uniform)）
	MinInterval float64 `yaml:"minInterval"` // 两次喷发的最小间隔（毫秒）
	MaxInterval float64 `yaml:"maxInterval"` // 最大间隔（毫秒）

	FlareOptions FlareRangeConfig `yaml:"flareOptions"`
}

// FlareRangeConfig 单个耀斑参数的随机区间
// 整数字段在区间内均匀取值后向下取整
//
// 注意：turbulance 的拼写沿用原始配置键名，保持外部配置契约不变
type FlareRangeConfig struct {
	MinSize         float64 `yaml:"minSize"`
	MaxSize         float64 `yaml:"maxSize"`
	MinLifetime     float64 `yaml:"minLifetime"`
	MaxLifetime     float64 `yaml:"maxLifetime"`
	MinPlasmaTrails int     `yaml:"minPlasmaTrails"`
	MaxPlasmaTrails int     `yaml:"maxPlasmaTrails"`
	MinFlareCount   int     `yaml:"minFlareCount"`
	MaxFlareCount   int     `yaml:"maxFlareCount"`
	MinTurbulence   float64 `yaml:"minTurbulance"`
	MaxTurbulence   float64 `yaml:"maxTurbulance"`

	Shader FlareShaderConfig `yaml:"shader"`
}

// FlareShaderConfig 耀斑着色参数
type FlareShaderConfig struct {
	InnerColor    ColorConfig `yaml:"innerColor"`
	OuterColor    ColorConfig `yaml:"outerColor"`
	FBMFrequency  float64     `yaml:"fbmFrequency"`
	ContrastPower float64     `yaml:"contrastPower"`
	FBMScale      float64     `yaml:"fbmScale"`
	FBMOffset     float64     `yaml:"fbmOffset"`
}

// DefaultSunConfig 返回默认配置
// 所有默认值集中在这里，其它代码不做隐式回退
func DefaultSunConfig() *SunConfig {
	return &SunConfig{
		Seed:   1,
		Radius: 1.0,
		Rotation: RotationConfig{
			Direction: VectorConfig{X: 0, Y: 1, Z: 0.05},
			Speed:     0.003,
		},
		Shader: ShaderConfig{
			BaseColor:            ColorConfig{R: 1.0, G: 0.55, B: 0.10},
			HotColor:             ColorConfig{R: 1.0, G: 0.95, B: 0.60},
			DeepColor:            ColorConfig{R: 0.45, G: 0.08, B: 0.02},
			EmissiveColor:        ColorConfig{R: 1.0, G: 0.80, B: 0.30},
			DistortionStrength:   0.3,
			EmissiveStrength:     1.2,
			FBMFrequency:         2.5,
			Brightness:           1.0,
			ContrastPower:        1.6,
			FBMScale:             1.4,
			FBMOffset:            -0.1,
			EmissiveThresholdMin: 0.68,
			EmissiveThresholdMax: 0.92,
		},
		Corona: []CoronaConfig{
			{
				Active:                  true,
				GlowColor:               ColorConfig{R: 1.0, G: 0.60, B: 0.15},
				FlareStrength:           1.1,
				BaseGlowStrength:        0.55,
				RadialFalloff:           2.2,
				FlareFalloff:            3.5,
				EdgeFadeStart:           0.75,
				EdgeFadeEnd:             1.0,
				BaseGlowThreshold:       0.35,
				AnimationSpeed:          0.35,
				Size:                    2.4,
				Scale:                   1.0,
				Speed:                   0.12,
				SyncWithSun:             false,
				WrapRotation:            true,
				EnablePulsing:           true,
				PulseFrequency:          0.8,
				PulseAmplitude:          0.06,
				EnableMultiAxisReaction: true,
				RotationReactivity:      0.5,
				RotationDecay:           0.9,
				ReactiveScaling:         0.35,
			},
		},
		SolarEruptions: EruptionConfig{
			Active:      true,
			MinCount:    1,
			MaxCount:    3,
			MinInterval: 4000,
			MaxInterval: 12000,
			FlareOptions: FlareRangeConfig{
				MinSize:         6,
				MaxSize:         14,
				MinLifetime:     3,
				MaxLifetime:     7,
				MinPlasmaTrails: 2,
				MaxPlasmaTrails: 5,
				MinFlareCount:   2,
				MaxFlareCount:   4,
				MinTurbulence:   0.5,
				MaxTurbulence:   1.5,
				Shader: FlareShaderConfig{
					InnerColor:    ColorConfig{R: 1.0, G: 0.85, B: 0.40},
					OuterColor:    ColorConfig{R: 0.90, G: 0.25, B: 0.05},
					FBMFrequency:  3.0,
					ContrastPower: 1.4,
					FBMScale:      1.3,
					FBMOffset:     -0.05,
				},
			},
		},
	}
}

// LoadSunConfig 从 YAML 文件加载配置
// 解析结果叠加在默认配置之上，随后做一次 Normalize
func LoadSunConfig(path string) (*SunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取太阳配置失败: %w", err)
	}
	return ParseSunConfig(data)
}

// ParseSunConfig 从 YAML 字节解析配置
func ParseSunConfig(data []byte) (*SunConfig, error) {
	cfg := DefaultSunConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析太阳配置失败: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize 规范化配置
//
// 这是一个软实时视觉系统：非法配置通过钳制或退化为零宽区间来消化，
// 绝不让渲染循环崩溃（宁可画面不对，也不中断宿主应用）
func (c *SunConfig) Normalize() {
	if c.Radius <= 0 {
		c.Radius = 1.0
	}
	if c.Shader.EmissiveThresholdMax < c.Shader.EmissiveThresholdMin {
		c.Shader.EmissiveThresholdMax = c.Shader.EmissiveThresholdMin
	}
	if c.Shader.FBMFrequency <= 0 {
		c.Shader.FBMFrequency = 1.0
	}

	for i := range c.Corona {
		co := &c.Corona[i]
		// 衰减率必须落在 (0, 1)，否则反应累加器会发散或瞬间清零
		co.RotationDecay = clamp(co.RotationDecay, 1e-4, 1-1e-4)
		if co.EdgeFadeEnd < co.EdgeFadeStart {
			co.EdgeFadeEnd = co.EdgeFadeStart
		}
		if co.Size <= 0 {
			co.Size = 1.0
		}
		if co.Scale <= 0 {
			co.Scale = 1.0
		}
	}

	e := &c.SolarEruptions
	if e.MinCount < 0 {
		e.MinCount = 0
	}
	if e.MaxCount < e.MinCount {
		e.MaxCount = e.MinCount
	}
	if e.MinInterval < 0 {
		e.MinInterval = 0
	}
	if e.MaxInterval < e.MinInterval {
		e.MaxInterval = e.MinInterval
	}

	f := &e.FlareOptions
	if f.MaxSize < f.MinSize {
		f.MaxSize = f.MinSize
	}
	if f.MaxLifetime < f.MinLifetime {
		f.MaxLifetime = f.MinLifetime
	}
	if f.MinPlasmaTrails < 0 {
		f.MinPlasmaTrails = 0
	}
	if f.MaxPlasmaTrails < f.MinPlasmaTrails {
		f.MaxPlasmaTrails = f.MinPlasmaTrails
	}
	if f.MinFlareCount < 0 {
		f.MinFlareCount = 0
	}
	if f.MaxFlareCount < f.MinFlareCount {
		f.MaxFlareCount = f.MinFlareCount
	}
	if f.MaxTurbulence < f.MinTurbulence {
		f.MaxTurbulence = f.MinTurbulence
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
