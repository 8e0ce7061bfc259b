package components

import "github.com/gonewx/ghosthustlers/pkg/vmath"

// TransformComponent 实体的世界变换
type TransformComponent struct {
	Position  vmath.Vec3
	RotationY float64 // 绕 Y 轴的偏航角（弧度）
	Scale     float64 // 均匀缩放倍率
	Alpha     float64 // 透明度倍率
}
