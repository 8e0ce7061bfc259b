package components

import "github.com/gonewx/ghosthustlers/pkg/vmath"

// BeamComponent 质子光束
// 每帧重新计算端点，只有 PulseElapsed 跨帧累积
type BeamComponent struct {
	Active       bool
	Origin       vmath.Vec3
	End          vmath.Vec3
	PulseElapsed float64
	Radius       float64

	// IsHit 最近一次瞄准检测结果
	IsHit bool
	// GeometryValid 端点距离足够，宿主可据此更新光束几何
	GeometryValid bool
}
