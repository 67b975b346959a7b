// Package noise provides the fractal noise field that drives the sun
// surface pattern and flare coloring.
//
// The field is a pure function of (position, time) for a fixed seed:
// sampling the same coordinates always returns the same value, which keeps
// the visual output reproducible and the shaping logic testable.
package noise

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/gonewx/helios/pkg/utils"
)

// fbmOctaves FBM 叠加的倍频程数量
// 每个倍频程频率 ×2、振幅 ×0.5（经典分形布朗运动）
const fbmOctaves = 5

// Field 基于 OpenSimplex 的分形噪声场
// 不持有任何随帧变化的状态，时间由调用方作为采样参数传入
type Field struct {
	noise     opensimplex.Noise
	frequency float64 // 基础采样频率
	timeScale float64 // 时间维度的采样速率
}

// NewField 创建一个噪声场
// 相同的 seed 产生完全相同的场；frequency <= 0 时退化为 1
func NewField(seed int64, frequency float64) *Field {
	if frequency <= 0 {
		frequency = 1
	}
	return &Field{
		noise:     opensimplex.New(seed),
		frequency: frequency,
		timeScale: 1,
	}
}

// SetFrequency 调整基础采样频率（非正值忽略）
func (f *Field) SetFrequency(freq float64) {
	if freq > 0 {
		f.frequency = freq
	}
}

// Sample 采样分形噪声，返回 [0, 1] 区间的标量
// position 为三维空间坐标，t 为动画时间（秒）
func (f *Field) Sample(p utils.Vec3, t float64) float64 {
	var total, norm float64
	amplitude := 1.0
	frequency := f.frequency

	for i := 0; i < fbmOctaves; i++ {
		total += f.noise.Eval4(
			p.X*frequency,
			p.Y*frequency,
			p.Z*frequency,
			t*f.timeScale,
		) * amplitude
		norm += amplitude
		amplitude *= 0.5
		frequency *= 2
	}

	// Eval4 返回 [-1, 1]，归一化到 [0, 1]
	return utils.Clamp(total/norm*0.5+0.5, 0, 1)
}

// Contrast 对噪声值施加对比度曲线：pow(n, power)
// power > 1 压暗中间调（更锐利的"热斑"），power < 1 提亮
// power <= 0 视为退化输入，返回原值
func Contrast(n, power float64) float64 {
	if power <= 0 {
		return n
	}
	return math.Pow(n, power)
}

// Remap 对噪声值做仿射重映射并钳制到 [0, 1]：clamp(n*scale + offset)
// 所有"冷/热"视觉调参都通过 Contrast + Remap 两级整形暴露为参数，
// 而不是改动噪声函数本身
func Remap(n, scale, offset float64) float64 {
	return utils.Clamp(n*scale+offset, 0, 1)
}
