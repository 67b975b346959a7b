package utils

import "math"

// Vec3 三维向量
// 用于表示世界坐标、旋转角（欧拉角，弧度）和方向
type Vec3 struct {
	X, Y, Z float64
}

// V3 构造一个 Vec3（简写形式）
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add 向量加法
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 向量减法
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 标量缩放
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross 叉积
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length 向量长度
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize 归一化
// 零向量返回零向量（调用方需保证方向向量非零）
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// OrthoBasis 根据法线构造切平面正交基 (right, up)
// 当法线与参考上方向接近平行时（|n·up| > 0.99），换用 X 轴作为参考轴，
// 避免叉积退化为零向量
func OrthoBasis(normal Vec3) (right, up Vec3) {
	ref := Vec3{0, 1, 0}
	if math.Abs(normal.Dot(ref)) > 0.99 {
		ref = Vec3{1, 0, 0}
	}
	right = normal.Cross(ref).Normalize()
	up = normal.Cross(right).Normalize()
	return right, up
}

// RotateAround 将向量 v 绕单位轴 axis 旋转 angle 弧度（Rodrigues 公式）
func RotateAround(v, axis Vec3, angle float64) Vec3 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return v.Scale(cos).
		Add(axis.Cross(v).Scale(sin)).
		Add(axis.Scale(axis.Dot(v) * (1 - cos)))
}
