package components

import "github.com/gonewx/ghosthustlers/pkg/gameplay"

// HealthBarComponent 幽灵头顶血条的呈现状态
type HealthBarComponent struct {
	Visible bool

	FillScaleX  float64
	FillOffsetX float64
	Color       gameplay.RGBA

	// Yaw 朝向相机的偏航角；相机视线退化时保持上一帧的值
	Yaw float64
}
