package game

import (
	"github.com/gonewx/ghosthustlers/pkg/gameplay"
	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

// ========================================
// 宿主 → 核心
// ========================================

// InputKind 触屏/鼠标事件类型
type InputKind int

const (
	// InputPressDown 按下
	InputPressDown InputKind = iota
	// InputRelease 抬起（含取消）
	InputRelease
)

// ScreenPoint 屏幕坐标（像素）
type ScreenPoint struct {
	X, Y float64
}

// InputEvent 按下/抬起事件
// Timestamp 为宿主时钟的秒数，只用于计算按压时长
type InputEvent struct {
	Kind        InputKind
	ScreenPoint ScreenPoint
	Timestamp   float64
}

// ========================================
// 核心 → 宿主
// ========================================

// EntityPart 变换更新针对的对象
type EntityPart int

const (
	// PartGhost 幽灵本体
	PartGhost EntityPart = iota
	// PartHealthBarBackground 血条底板
	PartHealthBarBackground
	// PartHealthBarFill 血条填充
	PartHealthBarFill
)

// String 返回部件名称
func (p EntityPart) String() string {
	switch p {
	case PartGhost:
		return "ghost"
	case PartHealthBarBackground:
		return "health_bar_bg"
	case PartHealthBarFill:
		return "health_bar_fill"
	default:
		return "unknown"
	}
}

// EntityTransformUpdate 幽灵及其血条子物体的世界变换
type EntityTransformUpdate struct {
	Part      EntityPart
	Position  vmath.Vec3
	RotationY float64
	Scale     vmath.Vec3
	Alpha     float64
	Color     gameplay.RGBA
}

// BeamUpdate 光束视觉
// Active 为 false 时其余字段无意义，宿主隐藏光束
type BeamUpdate struct {
	Active bool
	Origin vmath.Vec3
	End    vmath.Vec3
	Radius float64
}

// VisibilityToggle 界面元素可见性
type VisibilityToggle struct {
	HealthBar     bool
	PlaneVisuals  bool
	Crosshair     bool
	RespawnButton bool
}

// StatusKind 状态提示类型
type StatusKind int

const (
	StatusScanning StatusKind = iota
	StatusGhostAppeared
	StatusGhostCaptured
	StatusPlacementFailed
	StatusTrackingLost
)

// String 返回提示类型名称
func (k StatusKind) String() string {
	switch k {
	case StatusScanning:
		return "scanning"
	case StatusGhostAppeared:
		return "ghost_appeared"
	case StatusGhostCaptured:
		return "ghost_captured"
	case StatusPlacementFailed:
		return "placement_failed"
	case StatusTrackingLost:
		return "tracking_lost"
	default:
		return "unknown"
	}
}

// StatusTextEvent 状态栏文本与底部提示
// Hint 为空表示隐藏提示
type StatusTextEvent struct {
	Kind StatusKind
	Text string
	Hint string
}

// 状态文本
const (
	textScanning      = "Scanning for surfaces..."
	hintScanning      = "Point your camera at a flat surface"
	textGhostAppeared = "Ghost appeared! Hold screen to fire beam!"
	textGhostCaptured = "Ghost captured!"
	textTrackingLost  = "Tracking lost - move your device slowly"
	textLoadFailed    = "Failed to load ghost: "
)
