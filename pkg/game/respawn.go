package game

import (
	"github.com/google/uuid"

	"github.com/gonewx/ghosthustlers/pkg/components"
	"github.com/gonewx/ghosthustlers/pkg/ecs"
	"github.com/gonewx/ghosthustlers/pkg/telemetry"
	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

// Respawn 销毁当前幽灵并回到 Scanning
//
// 若宿主此时已有正在跟踪的合适平面，立即在第一个平面上重新放置；
// 否则等待下一次平面事件或点击放置。Scanning 状态下调用无效。
// 放置失败时返回包装了 ErrPlacementFailed 的错误，状态保持 Scanning。
func (m *StateMachine) Respawn() error {
	if m.state == StateScanning {
		return nil
	}
	from := m.state

	m.stopBeam()
	m.destroyGhost()
	m.entityManager.RemoveMarkedEntities()
	m.press = pressState{}
	m.selector.Reset()
	m.setPlaneVisuals(true)
	m.setState(StateScanning)

	pose, ok := m.selector.FirstTracked(m.host.TrackedPlanes())
	m.metrics.RecordRespawn(ok)
	m.logger.Info().Stringer("from", from).Bool("immediate", ok).Msg("respawn requested")
	if !ok {
		return nil
	}
	return m.place(pose, telemetry.SourceRespawn)
}

// BeamSnapshot 光束状态快照
type BeamSnapshot struct {
	Active bool
	IsHit  bool
	Origin vmath.Vec3
	End    vmath.Vec3
	Radius float64
}

// Snapshot 状态机的只读快照，供调试工具和测试使用
type Snapshot struct {
	State        State
	HasGhost     bool
	EncounterID  uuid.UUID
	Lifecycle    components.Lifecycle
	Health       float64
	IsShaking    bool
	ElapsedHover float64
	Position     vmath.Vec3
	Scale        float64
	Alpha        float64
	Firing       bool
	Beam         BeamSnapshot
	TrackingLost bool
}

// Snapshot 返回当前状态快照
func (m *StateMachine) Snapshot() Snapshot {
	snap := Snapshot{
		State:        m.state,
		Firing:       m.firing,
		TrackingLost: m.trackingLost,
	}

	if b, ok := ecs.GetComponent[*components.BeamComponent](m.entityManager, m.beamID); ok {
		snap.Beam = BeamSnapshot{
			Active: b.Active,
			IsHit:  b.IsHit,
			Origin: b.Origin,
			End:    b.End,
			Radius: b.Radius,
		}
	}

	if !m.hasGhost() {
		return snap
	}
	ghost := m.ghost()
	tr, _ := ecs.GetComponent[*components.TransformComponent](m.entityManager, m.ghostID)
	snap.HasGhost = true
	snap.EncounterID = ghost.EncounterID
	snap.Lifecycle = ghost.Lifecycle
	snap.Health = m.health().Health
	snap.IsShaking = ghost.IsShaking
	snap.ElapsedHover = ghost.ElapsedHover
	snap.Position = tr.Position
	snap.Scale = tr.Scale
	snap.Alpha = tr.Alpha
	return snap
}
