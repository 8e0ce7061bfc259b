package game

import "github.com/gonewx/ghosthustlers/pkg/gameplay"

// Host 是状态机与 AR/渲染宿主之间的窄适配接口
//
// 三端客户端（或桌面预览工具）各自实现此接口，
// 玩法逻辑不直接接触任何引擎对象。所有方法都在帧回调线程上同步调用。
type Host interface {
	// SpawnGhost 在位姿处实例化幽灵模型；返回错误表示资源加载失败
	SpawnGhost(pose gameplay.PlacementPose) error
	// DestroyGhost 移除幽灵模型及其血条
	DestroyGhost()

	// Raycast 从屏幕点向已检测平面发射射线
	Raycast(point ScreenPoint) (gameplay.RaycastHit, bool)
	// TrackedPlanes 返回当前正在跟踪的全部平面（重生时立即放置用）
	TrackedPlanes() []gameplay.PlaneCandidate

	UpdateEntityTransform(update EntityTransformUpdate)
	UpdateBeam(update BeamUpdate)
	SetVisibility(toggle VisibilityToggle)
	SetStatus(status StatusTextEvent)
}

// NopHost 所有方法均为空操作的宿主，可嵌入只关心部分回调的实现
type NopHost struct{}

var _ Host = NopHost{}

func (NopHost) SpawnGhost(gameplay.PlacementPose) error { return nil }
func (NopHost) DestroyGhost()                           {}
func (NopHost) Raycast(ScreenPoint) (gameplay.RaycastHit, bool) {
	return gameplay.RaycastHit{}, false
}
func (NopHost) TrackedPlanes() []gameplay.PlaneCandidate     { return nil }
func (NopHost) UpdateEntityTransform(EntityTransformUpdate) {}
func (NopHost) UpdateBeam(BeamUpdate)                       {}
func (NopHost) SetVisibility(VisibilityToggle)              {}
func (NopHost) SetStatus(StatusTextEvent)                   {}
