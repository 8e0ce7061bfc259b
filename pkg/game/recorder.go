package game

import "github.com/gonewx/ghosthustlers/pkg/gameplay"

// Recorder 记录所有输出的宿主实现
// 用于单元测试和无界面的校验工具，不依赖任何 AR 会话
type Recorder struct {
	// 宿主状态（由调用方预先设置）
	Planes       []gameplay.PlaneCandidate
	RaycastHit   *gameplay.RaycastHit
	SpawnErr     error
	RaycastCalls []ScreenPoint

	// 记录的输出
	Spawned    []gameplay.PlacementPose
	Destroyed  int
	Transforms map[EntityPart]EntityTransformUpdate
	Beams      []BeamUpdate
	Visibility []VisibilityToggle
	Statuses   []StatusTextEvent
}

var _ Host = (*Recorder)(nil)

// NewRecorder 创建记录宿主
func NewRecorder() *Recorder {
	return &Recorder{Transforms: make(map[EntityPart]EntityTransformUpdate)}
}

func (r *Recorder) SpawnGhost(pose gameplay.PlacementPose) error {
	if r.SpawnErr != nil {
		return r.SpawnErr
	}
	r.Spawned = append(r.Spawned, pose)
	return nil
}

func (r *Recorder) DestroyGhost() {
	r.Destroyed++
	clear(r.Transforms)
}

func (r *Recorder) Raycast(point ScreenPoint) (gameplay.RaycastHit, bool) {
	r.RaycastCalls = append(r.RaycastCalls, point)
	if r.RaycastHit == nil {
		return gameplay.RaycastHit{}, false
	}
	return *r.RaycastHit, true
}

func (r *Recorder) TrackedPlanes() []gameplay.PlaneCandidate {
	return r.Planes
}

func (r *Recorder) UpdateEntityTransform(update EntityTransformUpdate) {
	r.Transforms[update.Part] = update
}

func (r *Recorder) UpdateBeam(update BeamUpdate) {
	r.Beams = append(r.Beams, update)
}

func (r *Recorder) SetVisibility(toggle VisibilityToggle) {
	r.Visibility = append(r.Visibility, toggle)
}

func (r *Recorder) SetStatus(status StatusTextEvent) {
	r.Statuses = append(r.Statuses, status)
}

// LastStatus 最近一次状态提示
func (r *Recorder) LastStatus() StatusTextEvent {
	if len(r.Statuses) == 0 {
		return StatusTextEvent{}
	}
	return r.Statuses[len(r.Statuses)-1]
}

// LastVisibility 最近一次可见性
func (r *Recorder) LastVisibility() VisibilityToggle {
	if len(r.Visibility) == 0 {
		return VisibilityToggle{}
	}
	return r.Visibility[len(r.Visibility)-1]
}

// LastBeam 最近一次光束更新
func (r *Recorder) LastBeam() BeamUpdate {
	if len(r.Beams) == 0 {
		return BeamUpdate{}
	}
	return r.Beams[len(r.Beams)-1]
}
