package mobile

import (
	"sort"

	"github.com/gonewx/ghosthustlers/pkg/game"
	"github.com/gonewx/ghosthustlers/pkg/gameplay"
	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

// listenerHost 把 game.Host 回调展开为 Listener 的标量参数
// 并维护原生侧推送过来的平面表（重生时立即放置用）
type listenerHost struct {
	listener Listener
	planes   map[string]gameplay.PlaneCandidate
}

var _ game.Host = (*listenerHost)(nil)

func newListenerHost(l Listener) *listenerHost {
	return &listenerHost{
		listener: l,
		planes:   make(map[string]gameplay.PlaneCandidate),
	}
}

func (h *listenerHost) SpawnGhost(pose gameplay.PlacementPose) error {
	p, q := pose.Position, pose.Rotation
	return h.listener.SpawnGhost(p.X, p.Y, p.Z, q.X, q.Y, q.Z, q.W)
}

func (h *listenerHost) DestroyGhost() {
	h.listener.DestroyGhost()
}

func (h *listenerHost) Raycast(point game.ScreenPoint) (gameplay.RaycastHit, bool) {
	hit := h.listener.Raycast(point.X, point.Y)
	if hit == nil {
		return gameplay.RaycastHit{}, false
	}
	return gameplay.RaycastHit{
		Position: vmath.V3(hit.X, hit.Y, hit.Z),
		Rotation: vmath.Quat{X: hit.QX, Y: hit.QY, Z: hit.QZ, W: hit.QW},
	}, true
}

// TrackedPlanes 按 ID 排序，保证重生时选中的平面稳定
func (h *listenerHost) TrackedPlanes() []gameplay.PlaneCandidate {
	ids := make([]string, 0, len(h.planes))
	for id := range h.planes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	planes := make([]gameplay.PlaneCandidate, 0, len(ids))
	for _, id := range ids {
		planes = append(planes, h.planes[id])
	}
	return planes
}

func (h *listenerHost) UpdateEntityTransform(u game.EntityTransformUpdate) {
	h.listener.UpdateTransform(u.Part.String(),
		u.Position.X, u.Position.Y, u.Position.Z,
		u.RotationY,
		u.Scale.X, u.Scale.Y, u.Scale.Z,
		u.Alpha,
		u.Color.R, u.Color.G, u.Color.B, u.Color.A)
}

func (h *listenerHost) UpdateBeam(u game.BeamUpdate) {
	h.listener.UpdateBeam(u.Active,
		u.Origin.X, u.Origin.Y, u.Origin.Z,
		u.End.X, u.End.Y, u.End.Z,
		u.Radius)
}

func (h *listenerHost) SetVisibility(v game.VisibilityToggle) {
	h.listener.SetVisibility(v.HealthBar, v.PlaneVisuals, v.Crosshair, v.RespawnButton)
}

func (h *listenerHost) SetStatus(s game.StatusTextEvent) {
	h.listener.SetStatus(s.Kind.String(), s.Text, s.Hint)
}
