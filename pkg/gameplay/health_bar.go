package gameplay

import (
	"math"

	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

// RGBA 颜色，各分量 ∈ [0, 1]
type RGBA struct {
	R, G, B, A float64
}

// HealthBarParams 血条几何参数
type HealthBarParams struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Depth   float64 `yaml:"depth"`
	YOffset float64 `yaml:"yOffset"` // 血条位于幽灵上方的高度
	Alpha   float64 `yaml:"alpha"`   // 填充条透明度
}

// DefaultHealthBarParams 默认血条参数
func DefaultHealthBarParams() HealthBarParams {
	return HealthBarParams{
		Width:   0.15,
		Height:  0.01,
		Depth:   0.02,
		YOffset: 0.3,
		Alpha:   0.9,
	}
}

// HealthBarView 血条填充的呈现结果
type HealthBarView struct {
	FillScaleX  float64
	FillOffsetX float64
	Color       RGBA
}

// PresentHealthBar 将生命值映射为填充缩放、偏移和颜色（透明度固定 0.9）
func PresentHealthBar(health, width float64) HealthBarView {
	p := DefaultHealthBarParams()
	p.Width = width
	return p.Present(health)
}

// Present 将生命值映射为血条填充
//
// 填充条左端固定，向左侧锚点收缩；颜色 >0.5 时黄→绿，≤0.5 时红→黄。
func (p HealthBarParams) Present(health float64) HealthBarView {
	h := vmath.Clamp01(health)

	var c RGBA
	if h > 0.5 {
		t := (h - 0.5) * 2
		c = RGBA{R: 1 - t, G: 0.5 + 0.5*t, B: 0, A: p.Alpha}
	} else {
		t := h * 2
		c = RGBA{R: 1, G: 0.8 * t, B: 0, A: p.Alpha}
	}

	return HealthBarView{
		FillScaleX:  p.Width * h,
		FillOffsetX: -p.Width * (1 - h) / 2,
		Color:       c,
	}
}

// minBillboardProjection 相机前向水平投影的最小长度平方
const minBillboardProjection = 0.001

// BillboardYaw 计算血条朝向相机所需的偏航角
//
// 将相机前向投影到水平面后取航向，与幽灵自身的自转无关。
// 相机几乎垂直向上/向下看时投影退化，返回 ok=false，调用方保持上一帧朝向。
func BillboardYaw(cameraForward vmath.Vec3) (yaw float64, ok bool) {
	h := cameraForward.Horizontal()
	if h.LenSq() <= minBillboardProjection {
		return 0, false
	}
	return math.Atan2(h.X, h.Z), true
}
