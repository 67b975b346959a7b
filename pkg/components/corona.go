package components

import "github.com/gonewx/helios/pkg/utils"

// CoronaTunables 日冕层（大气辉光盘）的可调参数
type CoronaTunables struct {
	GlowColor         utils.Color // 辉光颜色
	FlareStrength     float64     // 辉光喷射分量强度
	BaseGlowStrength  float64     // 基础辉光强度
	RadialFalloff     float64     // 径向衰减指数
	FlareFalloff      float64     // 喷射分量衰减指数
	EdgeFadeStart     float64     // 边缘淡出起点（归一化半径）
	EdgeFadeEnd       float64     // 边缘淡出终点（归一化半径）
	BaseGlowThreshold float64     // 基础辉光的噪声阈值
	AnimationSpeed    float64     // 噪声时间推进速率
	Size              float64     // 辉光盘半径（相对本体半径的倍数）
	Scale             float64     // 基础几何缩放
	Speed             float64     // 自旋速度

	SyncWithSun  bool // 自旋与本体 Y 轴旋转同步
	WrapRotation bool // 独立累加模式下将自旋回绕到 [-2π, 2π]

	EnablePulsing  bool    // 启用脉动缩放
	PulseFrequency float64 // 脉动频率
	PulseAmplitude float64 // 脉动振幅

	EnableMultiAxisReaction bool    // 将 x/y 反应分量折算进最终 z 自旋（摆动）
	RotationReactivity      float64 // 本体旋转增量 → 反应累加器的增益
	RotationDecay           float64 // 反应累加器每帧衰减率，必须在 (0, 1)
	ReactiveScaling         float64 // 旋转变化强度 → 缩放脉冲的增益
}

// CoronaComponent 日冕层组件
//
// 状态字段与组件同生命周期，外部永不重置。
// ReactiveAccumulator 每帧先按 RotationDecay 衰减再叠加旋转增量的响应，
// 因此无论运行多久其模长都有界（等比级数收敛）。
type CoronaComponent struct {
	Active   bool
	Tunables CoronaTunables
	Bank     *ParameterBank

	// 驱动自旋：同步模式直接取本体旋转，独立模式逐帧累加
	RotationAccumulator float64

	// 反应自旋：对本体旋转扰动的衰减响应
	ReactiveAccumulator utils.Vec3

	// 上一帧观察到的本体旋转（首帧无增量）
	LastBodyRotation    utils.Vec3
	HasLastBodyRotation bool

	// 上一次实际用于面向观察者的观察者位置（滞后更新）
	LastViewerPos    utils.Vec3
	HasLastViewerPos bool

	// 每帧计算输出，渲染后端只读
	Facing        utils.Vec3 // 指向观察者的单位方向
	SpinZ         float64    // 最终可见自旋角（弧度）
	GeometryScale float64    // 最终几何缩放
}
