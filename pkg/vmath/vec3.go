// Package vmath 提供玩法核心使用的三维向量与四元数运算
//
// 坐标系约定（与宿主 AR 框架一致）：Y 轴向上，水平面为 XZ 平面，
// 绕 Y 轴的偏航角 yaw = 0 时朝向 +Z。
package vmath

import "math"

// Vec3 三维向量（单位：米）
type Vec3 struct {
	X, Y, Z float64
}

// Zero 零向量
var Zero = Vec3{}

// Up 世界坐标系向上方向
var Up = Vec3{0, 1, 0}

// V3 构造向量的便捷函数
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add 向量相加
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub 向量相减
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale 数乘
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot 点积
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// LenSq 长度平方
func (v Vec3) LenSq() float64 {
	return v.Dot(v)
}

// Len 长度
func (v Vec3) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize 返回单位向量
// 零向量返回零向量，调用方需自行处理退化情况
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	inv := 1.0 / l
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// Horizontal 投影到水平面（Y 置零）
func (v Vec3) Horizontal() Vec3 {
	return Vec3{v.X, 0, v.Z}
}

// Midpoint 两点中点
func Midpoint(a, b Vec3) Vec3 {
	return a.Add(b).Scale(0.5)
}

// ApproxEqual 判断两个向量在容差内相等
func ApproxEqual(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

// Clamp 将 x 限制在 [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 将 x 限制在 [0, 1]
func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}
