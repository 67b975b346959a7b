package components

import "github.com/gonewx/helios/pkg/utils"

// ParamKind 参数值的类型标签
type ParamKind int

const (
	ParamScalar ParamKind = iota // 标量
	ParamVec2                    // 二维向量（如阈值区间）
	ParamColor                   // RGB 颜色
)

// paramValue 单个命名参数的当前值
// 同一个键的类型在声明后不再改变
type paramValue struct {
	kind  ParamKind
	x, y  float64
	color utils.Color
}

// ParameterBank 着色参数库
//
// 每个由着色参数驱动的组件（太阳表面、日冕层、耀斑的双层）各自持有
// 一个 ParameterBank。渲染后端每帧读取，但永远不写入。
//
// 不变式：键集合在构造（工厂的 Declare 阶段）之后保持不变——
// Set 只能原地更新已声明键的值，对未声明键静默忽略，不会扩张键集合。
type ParameterBank struct {
	values map[string]*paramValue
	keys   []string // 按声明顺序保存，Keys() 返回副本
}

// NewParameterBank 创建一个空参数库
// 所有键必须在组件工厂中通过 Declare* 一次性声明完毕
func NewParameterBank() *ParameterBank {
	return &ParameterBank{
		values: make(map[string]*paramValue),
	}
}

// DeclareScalar 声明一个标量参数并设置初始值
// 重复声明同名键只更新值，不会产生重复键
func (b *ParameterBank) DeclareScalar(name string, v float64) {
	if pv, ok := b.values[name]; ok {
		pv.kind = ParamScalar
		pv.x = v
		return
	}
	b.values[name] = &paramValue{kind: ParamScalar, x: v}
	b.keys = append(b.keys, name)
}

// DeclareVec2 声明一个二维向量参数并设置初始值
func (b *ParameterBank) DeclareVec2(name string, x, y float64) {
	if pv, ok := b.values[name]; ok {
		pv.kind = ParamVec2
		pv.x, pv.y = x, y
		return
	}
	b.values[name] = &paramValue{kind: ParamVec2, x: x, y: y}
	b.keys = append(b.keys, name)
}

// DeclareColor 声明一个颜色参数并设置初始值
func (b *ParameterBank) DeclareColor(name string, c utils.Color) {
	if pv, ok := b.values[name]; ok {
		pv.kind = ParamColor
		pv.color = c
		return
	}
	b.values[name] = &paramValue{kind: ParamColor, color: c}
	b.keys = append(b.keys, name)
}

// SetScalar 更新已声明的标量参数
// 未声明的键忽略（逐帧热路径，不打日志）
func (b *ParameterBank) SetScalar(name string, v float64) {
	if pv, ok := b.values[name]; ok && pv.kind == ParamScalar {
		pv.x = v
	}
}

// AddScalar 对已声明的标量参数做增量累加（时间类 uniform 专用）
func (b *ParameterBank) AddScalar(name string, dv float64) {
	if pv, ok := b.values[name]; ok && pv.kind == ParamScalar {
		pv.x += dv
	}
}

// SetVec2 更新已声明的二维向量参数
func (b *ParameterBank) SetVec2(name string, x, y float64) {
	if pv, ok := b.values[name]; ok && pv.kind == ParamVec2 {
		pv.x, pv.y = x, y
	}
}

// SetColor 更新已声明的颜色参数
func (b *ParameterBank) SetColor(name string, c utils.Color) {
	if pv, ok := b.values[name]; ok && pv.kind == ParamColor {
		pv.color = c
	}
}

// Scalar 读取标量参数，未声明返回 0
func (b *ParameterBank) Scalar(name string) float64 {
	if pv, ok := b.values[name]; ok && pv.kind == ParamScalar {
		return pv.x
	}
	return 0
}

// Vec2 读取二维向量参数，未声明返回 (0, 0)
func (b *ParameterBank) Vec2(name string) (x, y float64) {
	if pv, ok := b.values[name]; ok && pv.kind == ParamVec2 {
		return pv.x, pv.y
	}
	return 0, 0
}

// Color 读取颜色参数，未声明返回黑色
func (b *ParameterBank) Color(name string) utils.Color {
	if pv, ok := b.values[name]; ok && pv.kind == ParamColor {
		return pv.color
	}
	return utils.Color{}
}

// Has 检查键是否已声明
func (b *ParameterBank) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Keys 返回声明键集合的副本（声明顺序）
func (b *ParameterBank) Keys() []string {
	out := make([]string, len(b.keys))
	copy(out, b.keys)
	return out
}
