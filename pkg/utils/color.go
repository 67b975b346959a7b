package utils

// Color RGB 颜色，分量范围 [0, 1]
// 渲染后端在绘制时再转换为具体的颜色格式
type Color struct {
	R, G, B float64
}

// MixColor 在两个颜色之间线性插值
// t=0 返回 a，t=1 返回 b
func MixColor(a, b Color, t float64) Color {
	return Color{
		R: Lerp(a.R, b.R, t),
		G: Lerp(a.G, b.G, t),
		B: Lerp(a.B, b.B, t),
	}
}

// ScaleColor 按亮度系数缩放颜色（不做钳制，由调用方控制范围）
func ScaleColor(c Color, s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

// AddColor 颜色相加（用于叠加自发光分量）
func AddColor(a, b Color) Color {
	return Color{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B}
}
