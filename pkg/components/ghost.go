package components

import (
	"github.com/google/uuid"

	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

// Lifecycle 幽灵生命周期阶段
type Lifecycle int

const (
	// LifecycleHovering 悬浮中，可被光束命中
	LifecycleHovering Lifecycle = iota
	// LifecycleCapturing 捕获动画播放中
	LifecycleCapturing
	// LifecycleDestroyed 已销毁（实体即将被清理）
	LifecycleDestroyed
)

// String 返回阶段名称（用于日志）
func (l Lifecycle) String() string {
	switch l {
	case LifecycleHovering:
		return "hovering"
	case LifecycleCapturing:
		return "capturing"
	case LifecycleDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// GhostComponent 目标幽灵的玩法状态
// 场景中同一时刻最多只有一个拥有此组件的实体
type GhostComponent struct {
	// EncounterID 本次遭遇的唯一标识（日志关联用）
	EncounterID uuid.UUID

	// BasePosition 放置时确定的静止位置，之后不再修改
	BasePosition vmath.Vec3

	// IsShaking 本帧是否正被光束命中
	IsShaking bool

	// ElapsedHover 放置以来的悬浮累计时间（秒），捕获动画期间不再增长
	ElapsedHover float64

	Lifecycle Lifecycle

	// EncounterTime 放置以来的总时长（秒），用于统计捕获耗时
	EncounterTime float64
}

// Alive 是否还能被光束攻击
func (g *GhostComponent) Alive() bool {
	return g.Lifecycle == LifecycleHovering
}
