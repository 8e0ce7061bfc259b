package gameplay

import "github.com/gonewx/ghosthustlers/pkg/vmath"

// PlaneAlignment 平面朝向
type PlaneAlignment int

const (
	// AlignmentOther 竖直或倾斜平面
	AlignmentOther PlaneAlignment = iota
	// AlignmentHorizontal 朝上的水平面（地板、桌面）
	AlignmentHorizontal
)

// String 返回朝向名称（用于日志）
func (a PlaneAlignment) String() string {
	if a == AlignmentHorizontal {
		return "horizontal"
	}
	return "other"
}

// PlaneCandidate 宿主跟踪器提供的平面估计，核心只读
type PlaneCandidate struct {
	ID        string
	Alignment PlaneAlignment
	Center    vmath.Vec3
	Rotation  vmath.Quat
	ExtentX   float64
	ExtentZ   float64
	Tracking  bool
}

// PlacementPose 幽灵实例化的位姿
type PlacementPose struct {
	Position vmath.Vec3
	Rotation vmath.Quat
}

// RaycastHit 屏幕点射线命中平面的结果
type RaycastHit struct {
	Position vmath.Vec3
	Rotation vmath.Quat
}

// PlaneEvent 跟踪器推送的平面变化
type PlaneEvent struct {
	Added   []PlaneCandidate
	Updated []PlaneCandidate
}

// PlacementParams 放置参数
type PlacementParams struct {
	// MinExtent 平面任一方向的尺寸必须严格大于此值（米）
	MinExtent float64 `yaml:"minPlaneExtent"`
	// TapThreshold 按下到抬起短于此时长（秒）视为点击
	TapThreshold float64 `yaml:"tapThreshold"`
}

// DefaultPlacementParams 默认放置参数
func DefaultPlacementParams() PlacementParams {
	return PlacementParams{
		MinExtent:    0.3,
		TapThreshold: 0.2,
	}
}

// IsSuitablePlane 判断平面是否可用于自动放置
func IsSuitablePlane(p PlaneCandidate, minExtent float64) bool {
	if p.Alignment != AlignmentHorizontal || !p.Tracking {
		return false
	}
	return p.ExtentX > minExtent || p.ExtentZ > minExtent
}

// Select 返回第一个合格平面的中心位姿
func Select(candidates []PlaneCandidate, minExtent float64) (PlacementPose, bool) {
	for _, p := range candidates {
		if IsSuitablePlane(p, minExtent) {
			return PlacementPose{Position: p.Center, Rotation: p.Rotation}, true
		}
	}
	return PlacementPose{}, false
}

// PlacementSelector 过滤平面事件，每轮放置最多给出一个位姿
//
// 一旦给出位姿（无论来自平面还是点击射线），选择器即解除武装，
// 直到 Reset（重生）后才会再次响应平面事件。
type PlacementSelector struct {
	minExtent float64
	notified  bool
}

// NewPlacementSelector 创建放置选择器
func NewPlacementSelector(minExtent float64) *PlacementSelector {
	return &PlacementSelector{minExtent: minExtent}
}

// Armed 是否仍在等待放置
func (s *PlacementSelector) Armed() bool {
	return !s.notified
}

// HandlePlaneEvent 处理一次平面变化事件
// 先检查新增平面，再检查更新的平面（可能已长到足够大）
func (s *PlacementSelector) HandlePlaneEvent(ev PlaneEvent) (PlacementPose, bool) {
	if s.notified {
		return PlacementPose{}, false
	}
	if pose, ok := Select(ev.Added, s.minExtent); ok {
		s.notified = true
		return pose, true
	}
	if pose, ok := Select(ev.Updated, s.minExtent); ok {
		s.notified = true
		return pose, true
	}
	return PlacementPose{}, false
}

// SelectFromRaycast 点击放置路径，宿主返回命中即成功
func (s *PlacementSelector) SelectFromRaycast(hit RaycastHit) PlacementPose {
	s.notified = true
	return PlacementPose{Position: hit.Position, Rotation: hit.Rotation}
}

// FirstTracked 在当前已跟踪的平面中查找合格者（重生时立即放置用）
func (s *PlacementSelector) FirstTracked(planes []PlaneCandidate) (PlacementPose, bool) {
	if s.notified {
		return PlacementPose{}, false
	}
	pose, ok := Select(planes, s.minExtent)
	if ok {
		s.notified = true
	}
	return pose, ok
}

// Reset 重新武装选择器
func (s *PlacementSelector) Reset() {
	s.notified = false
}
