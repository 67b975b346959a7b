package entities

import (
	"math"
	"math/rand"

	"github.com/gonewx/helios/pkg/components"
	"github.com/gonewx/helios/pkg/ecs"
	"github.com/gonewx/helios/pkg/utils"
)

// 耀斑面板绕法线扇形展开的固定锥角（弧度）
const flareConeAngle = math.Pi / 6

// NewFlareEntity 在本体包围球上随机位置生成一个耀斑实体
//
// 生成几何：
//  1. 包围球上均匀随机取点（z 分量均匀 + 方位角均匀），该点方向即外法线，
//     乘以半径变换到世界空间（本体位于原点）
//  2. 以法线构造切平面正交基；法线与参考上方向近平行时换参考轴，
//     避免退化（见 utils.OrthoBasis）
//  3. 两个视觉层各 FlareCount 个面板绕法线对称展开，每个面板在固定
//     锥角内倾斜，并通过"参考轴对齐到展开方向"的旋转独立定向
//
// FlareCount <= 0 是可接受的退化输入：不生成实体，返回 (0, false)
func NewFlareEntity(em *ecs.EntityManager, rng *rand.Rand, radius float64, opts components.FlareOptions) (ecs.EntityID, bool) {
	if opts.FlareCount <= 0 {
		return 0, false
	}

	// 包围球上均匀随机点
	z := rng.Float64()*2 - 1
	theta := rng.Float64() * 2 * math.Pi
	ring := math.Sqrt(math.Max(1-z*z, 0))
	normal := utils.V3(ring*math.Cos(theta), ring*math.Sin(theta), z)
	position := normal.Scale(radius)

	right, _ := utils.OrthoBasis(normal)

	panels := make([]*components.FlarePanel, 0, components.FlareLayerCount*opts.FlareCount)
	for layer := 0; layer < components.FlareLayerCount; layer++ {
		for i := 0; i < opts.FlareCount; i++ {
			azimuth := 2 * math.Pi * float64(i) / float64(opts.FlareCount)
			// 倾斜轴先绕法线转到本面板的方位，再把法线绕它转出锥角
			tiltAxis := utils.RotateAround(right, normal, azimuth)
			dir := utils.RotateAround(normal, tiltAxis, flareConeAngle).Normalize()
			panelRight, panelUp := utils.OrthoBasis(dir)
			panels = append(panels, &components.FlarePanel{
				Layer: layer,
				Dir:   dir,
				Right: panelRight,
				Up:    panelUp,
			})
		}
	}

	flare := &components.FlareComponent{
		SpawnPosition: position,
		Normal:        normal,
		Lifetime:      opts.Lifetime,
		Size:          opts.Size,
		Turbulence:    opts.Turbulence,
		PlasmaTrails:  opts.PlasmaTrails,
		FlareCount:    opts.FlareCount,
		Shader:        opts.Shader,
		Panels:        panels,
	}
	for layer := 0; layer < components.FlareLayerCount; layer++ {
		flare.LayerBanks[layer] = newFlareLayerBank(&opts.Shader)
	}

	id := em.CreateEntity()
	em.AddComponent(id, flare)
	return id, true
}

// newFlareLayerBank 为耀斑的一个视觉层声明参数库
func newFlareLayerBank(shader *components.FlareShaderOptions) *components.ParameterBank {
	bank := components.NewParameterBank()
	bank.DeclareScalar("uTime", 0)
	bank.DeclareScalar("uOpacity", 0)
	bank.DeclareColor("uInnerColor", shader.InnerColor)
	bank.DeclareColor("uOuterColor", shader.OuterColor)
	bank.DeclareScalar("uFBMFrequency", shader.FBMFrequency)
	bank.DeclareScalar("uContrastPower", shader.ContrastPower)
	bank.DeclareScalar("uFBMScale", shader.FBMScale)
	bank.DeclareScalar("uFBMOffset", shader.FBMOffset)
	return bank
}
