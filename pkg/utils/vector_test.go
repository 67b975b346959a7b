package utils

import (
	"math"
	"testing"
)

func vecAlmostEqual(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

// TestVec3Basics 基础向量运算
func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(-1, 0.5, 2)

	if got := a.Add(b); got != V3(0, 2.5, 5) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != V3(2, 1.5, 1) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != V3(2, 4, 6) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 6 {
		t.Errorf("Dot = %v, 期望 6", got)
	}
	if got := V3(1, 0, 0).Cross(V3(0, 1, 0)); got != V3(0, 0, 1) {
		t.Errorf("Cross = %v, 期望 (0, 0, 1)", got)
	}
	if got := V3(3, 4, 0).Length(); got != 5 {
		t.Errorf("Length = %v, 期望 5", got)
	}
}

// TestNormalize 归一化，零向量返回零向量
func TestNormalize(t *testing.T) {
	n := V3(0, 3, 4).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("归一化后长度 = %v", n.Length())
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("零向量归一化 = %v, 期望零向量", got)
	}
}

// TestOrthoBasis 正交基构造，含近平行退化分支
func TestOrthoBasis(t *testing.T) {
	normals := []Vec3{
		V3(0, 0, 1),
		V3(1, 0, 0),
		V3(0, 1, 0),   // 与参考上方向完全平行，走退化分支
		V3(0, -1, 0),  // 反向平行
		V3(0.01, 0.999, 0.01).Normalize(), // 近平行
		V3(0.5, -0.3, 0.8).Normalize(),
	}

	for _, n := range normals {
		right, up := OrthoBasis(n)
		if math.Abs(right.Length()-1) > 1e-9 || math.Abs(up.Length()-1) > 1e-9 {
			t.Errorf("OrthoBasis(%v): 基向量非单位长度 (%v, %v)", n, right.Length(), up.Length())
		}
		if math.Abs(right.Dot(n)) > 1e-9 || math.Abs(up.Dot(n)) > 1e-9 || math.Abs(right.Dot(up)) > 1e-9 {
			t.Errorf("OrthoBasis(%v): 基不正交", n)
		}
		if math.IsNaN(right.X) || math.IsNaN(up.X) {
			t.Errorf("OrthoBasis(%v): 出现 NaN", n)
		}
	}
}

// TestRotateAround Rodrigues 旋转公式
func TestRotateAround(t *testing.T) {
	// 绕 Z 轴转 90°: x → y
	got := RotateAround(V3(1, 0, 0), V3(0, 0, 1), math.Pi/2)
	if !vecAlmostEqual(got, V3(0, 1, 0), 1e-12) {
		t.Errorf("绕 Z 转 90° = %v, 期望 (0, 1, 0)", got)
	}

	// 绕轴本身旋转不变
	got = RotateAround(V3(0, 0, 2), V3(0, 0, 1), 1.23)
	if !vecAlmostEqual(got, V3(0, 0, 2), 1e-12) {
		t.Errorf("绕自身轴旋转 = %v, 期望不变", got)
	}

	// 旋转保长
	v := V3(1, 2, 3)
	got = RotateAround(v, V3(0, 1, 0).Normalize(), 0.7)
	if math.Abs(got.Length()-v.Length()) > 1e-12 {
		t.Errorf("旋转改变了长度: %v -> %v", v.Length(), got.Length())
	}

	// 360° 回到原点
	got = RotateAround(v, V3(1, 1, 1).Normalize(), 2*math.Pi)
	if !vecAlmostEqual(got, v, 1e-9) {
		t.Errorf("360° 旋转 = %v, 期望 %v", got, v)
	}
}
