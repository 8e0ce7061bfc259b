package vmath

import "math"

// Quat 单位四元数，表示三维旋转
type Quat struct {
	X, Y, Z, W float64
}

// IdentityQuat 单位旋转
var IdentityQuat = Quat{W: 1}

// QuatFromYaw 构造绕 Y 轴旋转 yaw 弧度的四元数
func QuatFromYaw(yaw float64) Quat {
	s, c := math.Sincos(yaw / 2)
	return Quat{Y: s, W: c}
}

// Yaw 提取四元数绕 Y 轴的航向角（弧度，范围 (-π, π]）
//
// 通过旋转 +Z 后在水平面上的投影计算，忽略俯仰与横滚。
func (q Quat) Yaw() float64 {
	f := q.Rotate(Vec3{0, 0, 1})
	return math.Atan2(f.X, f.Z)
}

// Rotate 用四元数旋转向量
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2w(u×v) + 2u×(u×v)
	u := Vec3{q.X, q.Y, q.Z}
	t := cross(u, v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(cross(u, t))
}

// YawForward 偏航角对应的水平前向单位向量
func YawForward(yaw float64) Vec3 {
	s, c := math.Sincos(yaw)
	return Vec3{s, 0, c}
}

// YawRight 偏航角对应的水平右向单位向量
func YawRight(yaw float64) Vec3 {
	s, c := math.Sincos(yaw)
	return Vec3{c, 0, -s}
}

// WrapAngle 将角度规范到 [0, 2π)
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}
