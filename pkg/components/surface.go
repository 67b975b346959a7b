package components

import "github.com/gonewx/helios/pkg/utils"

// SurfaceTunables 太阳表面着色的可调参数
// 由配置初始化，宿主 UI 可在运行期修改；SurfaceSystem 每帧将
// 当前值拷贝进参数库，渲染后端只读参数库
type SurfaceTunables struct {
	BaseColor     utils.Color // 基础色
	HotColor      utils.Color // 高温区颜色
	DeepColor     utils.Color // 低温深层颜色
	EmissiveColor utils.Color // 自发光颜色

	DistortionStrength   float64 // 表面扰动强度
	EmissiveStrength     float64 // 自发光强度
	FBMFrequency         float64 // 噪声基础频率
	Brightness           float64 // 整体亮度
	ContrastPower        float64 // 对比度幂（噪声整形第一级）
	FBMScale             float64 // 仿射重映射 scale（第二级）
	FBMOffset            float64 // 仿射重映射 offset（第二级）
	EmissiveThresholdMin float64 // 自发光阈值下限
	EmissiveThresholdMax float64 // 自发光阈值上限
}

// SurfaceComponent 太阳本体组件
//
// Rotation 每次 advance 按 Direction[axis] * Speed 递增，不做归一化
// 也不做回绕（是否回绕由调用方决定）
type SurfaceComponent struct {
	Elapsed   float64    // 已累计的动画时间（秒）
	Rotation  utils.Vec3 // 当前旋转（欧拉角，弧度）
	Direction utils.Vec3 // 旋转方向（约定为近似单位向量，不强制）
	Speed     float64    // 旋转速度标量
	Radius    float64    // 本体包围球半径（宿主几何查询的结果）

	Tunables SurfaceTunables
	Bank     *ParameterBank
}
