package components

import "github.com/gonewx/helios/pkg/utils"

// 耀斑的两个视觉层
// 回落层表现贴回表面的等离子体，喷出层表现离开表面的部分
const (
	FlareLayerReceding  = 0 // 回落层
	FlareLayerDeparting = 1 // 喷出层
)

// FlareLayerCount 每个耀斑固定的视觉层数
const FlareLayerCount = 2

// FlareShaderOptions 耀斑双层共用的着色参数
type FlareShaderOptions struct {
	InnerColor    utils.Color // 根部颜色
	OuterColor    utils.Color // 尖端颜色
	FBMFrequency  float64     // 噪声基础频率
	ContrastPower float64     // 对比度幂
	FBMScale      float64     // 仿射重映射 scale
	FBMOffset     float64     // 仿射重映射 offset
}

// FlareOptions 生成一个耀斑实体所需的全部参数
// 由喷发调度器通过随机区间生成（见 entities.GenerateRandomFlareOptions）
type FlareOptions struct {
	Size         float64 // 尺寸系数（面板缩放 = Size*fade/10）
	Lifetime     float64 // 生命周期（秒），非正值导致首帧即销毁
	PlasmaTrails int     // 等离子体尾迹数量（预留字段，暂未参与渲染）
	FlareCount   int     // 扇形面板数量，0 表示不生成任何面板
	Turbulence   float64 // 湍流系数，各层噪声时间按 dt*Turbulence 推进
	Shader       FlareShaderOptions
}

// FlarePanel 耀斑的单个朝向面板
// 面板沿生成点法线在固定锥角内对称展开，渲染为双面四边形
type FlarePanel struct {
	Layer int        // FlareLayerReceding / FlareLayerDeparting
	Dir   utils.Vec3 // 展开后的朝向（世界空间单位向量）
	Right utils.Vec3 // 面板姿态基：横向
	Up    utils.Vec3 // 面板姿态基：纵向
}

// FlareComponent 瞬态耀斑实体
//
// 生命周期：spawned → active（逐帧累加年龄）→ destroyed，线性不可逆。
// Destroyed 为吸收态：销毁后任何操作都是空操作，面板与参数库只释放一次。
type FlareComponent struct {
	SpawnPosition utils.Vec3 // 世界空间生成点（本体包围球上均匀随机）
	Normal        utils.Vec3 // 生成点外法线

	Age          float64
	Lifetime     float64
	Size         float64
	Turbulence   float64
	PlasmaTrails int // 预留字段
	FlareCount   int

	Shader FlareShaderOptions

	// 面板网格，长度 = FlareLayerCount × FlareCount，销毁时置 nil
	Panels []*FlarePanel

	// 双层各自的参数库（uTime / uOpacity 等）
	LayerBanks [FlareLayerCount]*ParameterBank

	// 每帧计算输出
	Fade       float64 // 当前淡出值 max(sin(π·age/lifetime), 0)
	PanelScale float64 // 当前面板缩放 Size*Fade/10

	Destroyed bool
}
