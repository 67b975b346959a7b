package systems

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/helios/internal/noise"
	"github.com/gonewx/helios/pkg/components"
	"github.com/gonewx/helios/pkg/ecs"
	"github.com/gonewx/helios/pkg/utils"
)

// 本体网格细分：径向环数 × 周向段数
const (
	bodyRings    = 18
	bodySegments = 40
)

// 日冕盘的周向段数
const coronaSegments = 64

// RenderSystem 把效果层画到 ebiten 屏幕上
//
// 这是宿主渲染上下文的一个具体实现：正交投影，本体画成逐顶点着色的
// 三角网（颜色来自噪声场 + 本体参数库），日冕画成加法混合的辉光盘，
// 耀斑面板画成加法混合的四边形。它只读各组件的参数库，从不写入。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	field         *noise.Field

	whiteImage *ebiten.Image

	// 预生成的单位半球网格（正面），每帧只重算顶点颜色
	meshDirs    []utils.Vec3 // 单位球面方向
	meshIndices []uint16
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, field *noise.Field) *RenderSystem {
	r := &RenderSystem{
		entityManager: em,
		field:         field,
	}
	r.whiteImage = ebiten.NewImage(3, 3)
	r.whiteImage.Fill(color.White)
	r.buildBodyMesh()
	return r
}

// buildBodyMesh 构建正面半球的极坐标三角网
// 环 i 的归一化半径 r=i/bodyRings，深度 z=sqrt(1-r²)
func (r *RenderSystem) buildBodyMesh() {
	// 中心顶点
	r.meshDirs = append(r.meshDirs, utils.V3(0, 0, 1))

	for i := 1; i <= bodyRings; i++ {
		ring := float64(i) / bodyRings
		z := math.Sqrt(math.Max(1-ring*ring, 0))
		for j := 0; j < bodySegments; j++ {
			a := 2 * math.Pi * float64(j) / bodySegments
			r.meshDirs = append(r.meshDirs, utils.V3(ring*math.Cos(a), ring*math.Sin(a), z))
		}
	}

	ringStart := func(i int) int {
		if i == 0 {
			return 0
		}
		return 1 + (i-1)*bodySegments
	}

	// 中心扇
	for j := 0; j < bodySegments; j++ {
		next := (j + 1) % bodySegments
		r.meshIndices = append(r.meshIndices,
			0, uint16(ringStart(1)+j), uint16(ringStart(1)+next))
	}
	// 环间四边形
	for i := 1; i < bodyRings; i++ {
		in := ringStart(i)
		out := ringStart(i + 1)
		for j := 0; j < bodySegments; j++ {
			next := (j + 1) % bodySegments
			r.meshIndices = append(r.meshIndices,
				uint16(in+j), uint16(out+j), uint16(out+next),
				uint16(in+j), uint16(out+next), uint16(in+next))
		}
	}
}

// Draw 渲染一帧：日冕（底层）→ 本体 → 耀斑（顶层）
func (r *RenderSystem) Draw(screen *ebiten.Image) {
	surface := r.findBody()
	if surface == nil {
		return
	}

	bounds := screen.Bounds()
	cx := float64(bounds.Dx()) / 2
	cy := float64(bounds.Dy()) / 2
	// 本体半径占短边的比例
	px := 0.26 * math.Min(float64(bounds.Dx()), float64(bounds.Dy())) / surface.Radius

	r.drawCoronas(screen, surface, cx, cy, px)
	r.drawBody(screen, surface, cx, cy, px)
	r.drawFlares(screen, surface, cx, cy, px)
}

func (r *RenderSystem) findBody() *components.SurfaceComponent {
	for _, id := range ecs.GetEntitiesWith1[*components.SurfaceComponent](r.entityManager) {
		if surface, ok := ecs.GetComponent[*components.SurfaceComponent](r.entityManager, id); ok {
			return surface
		}
	}
	return nil
}

// drawBody 逐顶点采样噪声场给半球网格着色
func (r *RenderSystem) drawBody(screen *ebiten.Image, surface *components.SurfaceComponent, cx, cy, px float64) {
	bank := surface.Bank
	if bank == nil {
		return
	}

	uTime := bank.Scalar("uTime")
	baseColor := bank.Color("uBaseColor")
	hotColor := bank.Color("uHotColor")
	deepColor := bank.Color("uDeepColor")
	emissiveColor := bank.Color("uEmissiveColor")
	distortion := bank.Scalar("uDistortionStrength")
	emissiveStrength := bank.Scalar("uEmissiveStrength")
	brightness := bank.Scalar("uBrightness")
	contrastPower := bank.Scalar("uContrastPower")
	fbmScale := bank.Scalar("uFBMScale")
	fbmOffset := bank.Scalar("uFBMOffset")
	thresholdMin, thresholdMax := bank.Vec2("uEmissiveThreshold")

	r.field.SetFrequency(bank.Scalar("uFBMFrequency"))

	vertices := make([]ebiten.Vertex, len(r.meshDirs))
	for i, dir := range r.meshDirs {
		// 表面图案随本体旋转移动：按旋转欧拉角变换采样坐标
		sample := rotateEuler(dir, surface.Rotation)

		// 域扰动：低频噪声推挤采样点，产生翻涌感
		warp := r.field.Sample(sample, uTime*0.5)
		sample = sample.Scale(1 + distortion*(warp-0.5))

		// 两级整形：对比度曲线 → 仿射重映射
		n := r.field.Sample(sample, uTime)
		n = noise.Contrast(n, contrastPower)
		n = noise.Remap(n, fbmScale, fbmOffset)

		// 深层 → 基础 → 高温 的双段混色
		c := utils.MixColor(deepColor, utils.MixColor(baseColor, hotColor, n), n)

		// 自发光：阈值区间内线性升起（零宽区间退化为阶跃）
		var emissive float64
		if n >= thresholdMin {
			if thresholdMax > thresholdMin {
				emissive = utils.Clamp((n-thresholdMin)/(thresholdMax-thresholdMin), 0, 1)
			} else {
				emissive = 1
			}
		}
		c = utils.AddColor(c, utils.ScaleColor(emissiveColor, emissive*emissiveStrength*n))

		// 边缘减光：用深度分量模拟球面光照
		limb := 0.35 + 0.65*dir.Z
		c = utils.ScaleColor(c, brightness*limb)

		vertices[i] = ebiten.Vertex{
			DstX:   float32(cx + dir.X*surface.Radius*px),
			DstY:   float32(cy - dir.Y*surface.Radius*px),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(utils.Clamp(c.R, 0, 1)),
			ColorG: float32(utils.Clamp(c.G, 0, 1)),
			ColorB: float32(utils.Clamp(c.B, 0, 1)),
			ColorA: 1,
		}
	}

	screen.DrawTriangles(vertices, r.meshIndices, r.whiteImage, &ebiten.DrawTrianglesOptions{})
}

// drawCoronas 画所有激活的日冕层（加法混合的辉光盘）
func (r *RenderSystem) drawCoronas(screen *ebiten.Image, surface *components.SurfaceComponent, cx, cy, px float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.CoronaComponent](r.entityManager) {
		corona, ok := ecs.GetComponent[*components.CoronaComponent](r.entityManager, id)
		if !ok || !corona.Active {
			continue
		}
		r.drawCorona(screen, corona, surface, cx, cy, px)
	}
}

func (r *RenderSystem) drawCorona(screen *ebiten.Image, corona *components.CoronaComponent, surface *components.SurfaceComponent, cx, cy, px float64) {
	bank := corona.Bank
	if bank == nil {
		return
	}
	t := &corona.Tunables

	uTime := bank.Scalar("uTime")
	glowColor := bank.Color("uGlowColor")
	flareStrength := bank.Scalar("uFlareStrength")
	baseGlowStrength := bank.Scalar("uBaseGlowStrength")
	radialFalloff := bank.Scalar("uRadialFalloff")
	flareFalloff := bank.Scalar("uFlareFalloff")
	fadeStart, fadeEnd := bank.Vec2("uEdgeFade")
	baseGlowThreshold := bank.Scalar("uBaseGlowThreshold")

	outerRadius := surface.Radius * t.Size * corona.GeometryScale * px

	// 盘面网格：中心 + 若干同心环，逐顶点算辉光强度
	const glowRings = 10
	var vertices []ebiten.Vertex
	var indices []uint16

	appendVertex := func(rn, angle float64) {
		// 喷射分量：沿盘缘方向采样噪声，叠加自旋
		dir := utils.V3(math.Cos(angle+corona.SpinZ), math.Sin(angle+corona.SpinZ), 0)
		n := r.field.Sample(dir, uTime)

		glow := baseGlowStrength * math.Pow(1-rn, radialFalloff)
		if n > baseGlowThreshold {
			glow += flareStrength * (n - baseGlowThreshold) * math.Pow(1-rn, flareFalloff)
		}

		// 边缘淡出
		if rn > fadeStart && fadeEnd > fadeStart {
			glow *= 1 - utils.EaseInOutCubic(utils.Clamp((rn-fadeStart)/(fadeEnd-fadeStart), 0, 1))
		} else if rn > fadeStart {
			glow = 0 // 零宽淡出区间退化为硬截断
		}
		glow = utils.Clamp(glow, 0, 1)

		vertices = append(vertices, ebiten.Vertex{
			DstX:   float32(cx + math.Cos(angle)*rn*outerRadius),
			DstY:   float32(cy - math.Sin(angle)*rn*outerRadius),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(glowColor.R * glow),
			ColorG: float32(glowColor.G * glow),
			ColorB: float32(glowColor.B * glow),
			ColorA: float32(glow),
		})
	}

	appendVertex(0, 0) // 中心
	for i := 1; i <= glowRings; i++ {
		rn := float64(i) / glowRings
		for j := 0; j < coronaSegments; j++ {
			appendVertex(rn, 2*math.Pi*float64(j)/coronaSegments)
		}
	}

	ringStart := func(i int) int {
		if i == 0 {
			return 0
		}
		return 1 + (i-1)*coronaSegments
	}
	for j := 0; j < coronaSegments; j++ {
		next := (j + 1) % coronaSegments
		indices = append(indices, 0, uint16(ringStart(1)+j), uint16(ringStart(1)+next))
	}
	for i := 1; i < glowRings; i++ {
		in := ringStart(i)
		out := ringStart(i + 1)
		for j := 0; j < coronaSegments; j++ {
			next := (j + 1) % coronaSegments
			indices = append(indices,
				uint16(in+j), uint16(out+j), uint16(out+next),
				uint16(in+j), uint16(out+next), uint16(in+next))
		}
	}

	opts := &ebiten.DrawTrianglesOptions{Blend: ebiten.BlendLighter}
	screen.DrawTriangles(vertices, indices, r.whiteImage, opts)
}

// drawFlares 画所有存活耀斑的面板
func (r *RenderSystem) drawFlares(screen *ebiten.Image, surface *components.SurfaceComponent, cx, cy, px float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.FlareComponent](r.entityManager) {
		flare, ok := ecs.GetComponent[*components.FlareComponent](r.entityManager, id)
		if !ok || flare.Destroyed {
			continue
		}
		r.drawFlare(screen, flare, surface, cx, cy, px)
	}
}

func (r *RenderSystem) drawFlare(screen *ebiten.Image, flare *components.FlareComponent, surface *components.SurfaceComponent, cx, cy, px float64) {
	project := func(p utils.Vec3) (float32, float32) {
		return float32(cx + p.X*px), float32(cy - p.Y*px)
	}

	for _, panel := range flare.Panels {
		bank := flare.LayerBanks[panel.Layer]
		if bank == nil {
			continue
		}
		opacity := bank.Scalar("uOpacity")
		if panel.Layer == components.FlareLayerReceding {
			opacity *= 0.6 // 回落层更暗
		}
		if opacity <= 0 {
			continue
		}

		// 背面面板不画（朝向远离观察者）
		if flare.SpawnPosition.Z+panel.Dir.Z*0.5 < -0.1 {
			continue
		}

		length := flare.PanelScale * surface.Radius
		width := length * 0.35

		base := flare.SpawnPosition
		tip := base.Add(panel.Dir.Scale(length))
		baseHalf := panel.Right.Scale(width / 2)
		tipHalf := panel.Right.Scale(width * 0.15 / 2)

		inner := bank.Color("uInnerColor")
		outer := bank.Color("uOuterColor")

		corners := [4]utils.Vec3{
			base.Sub(baseHalf), base.Add(baseHalf),
			tip.Add(tipHalf), tip.Sub(tipHalf),
		}
		colors := [4]utils.Color{inner, inner, outer, outer}

		vertices := make([]ebiten.Vertex, 4)
		for i := range corners {
			x, y := project(corners[i])
			vertices[i] = ebiten.Vertex{
				DstX: x, DstY: y,
				SrcX: 1, SrcY: 1,
				ColorR: float32(colors[i].R * opacity),
				ColorG: float32(colors[i].G * opacity),
				ColorB: float32(colors[i].B * opacity),
				ColorA: float32(opacity),
			}
		}

		opts := &ebiten.DrawTrianglesOptions{Blend: ebiten.BlendLighter}
		screen.DrawTriangles(vertices, []uint16{0, 1, 2, 0, 2, 3}, r.whiteImage, opts)
	}
}

// rotateEuler 依次绕 X、Y、Z 轴旋转
func rotateEuler(v, rot utils.Vec3) utils.Vec3 {
	v = utils.RotateAround(v, utils.V3(1, 0, 0), rot.X)
	v = utils.RotateAround(v, utils.V3(0, 1, 0), rot.Y)
	v = utils.RotateAround(v, utils.V3(0, 0, 1), rot.Z)
	return v
}
