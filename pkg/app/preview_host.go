package app

import (
	"errors"
	"math"

	"github.com/gonewx/ghosthustlers/pkg/game"
	"github.com/gonewx/ghosthustlers/pkg/gameplay"
	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

// errSimulatedSpawnFailure 预览中按 X 键模拟的模型加载失败
var errSimulatedSpawnFailure = errors.New("simulated model load failure")

// TopDownView 俯视投影：世界 X 向右，世界 Z 向下，Y 被忽略
type TopDownView struct {
	CenterX, CenterY float64 // 世界原点在屏幕上的位置
	PixelsPerMeter   float64
}

// ToScreen 世界坐标转屏幕坐标
func (v TopDownView) ToScreen(p vmath.Vec3) (x, y float64) {
	return v.CenterX + p.X*v.PixelsPerMeter, v.CenterY + p.Z*v.PixelsPerMeter
}

// ToWorld 屏幕坐标转世界水平坐标（Y 由调用方给出）
func (v TopDownView) ToWorld(x, y, worldY float64) vmath.Vec3 {
	return vmath.V3((x-v.CenterX)/v.PixelsPerMeter, worldY, (y-v.CenterY)/v.PixelsPerMeter)
}

// PreviewHost 桌面预览用的宿主实现
//
// 场景中只有一个合成的水平面；状态机的输出被缓存下来供 Draw 使用。
type PreviewHost struct {
	view TopDownView

	// Plane 合成平面，Revealed 之前跟踪器“看不到”它
	Plane    gameplay.PlaneCandidate
	Revealed bool
	// FailSpawn 为 true 时 SpawnGhost 返回错误
	FailSpawn bool

	GhostSpawned bool
	Transforms   map[game.EntityPart]game.EntityTransformUpdate
	Beam         game.BeamUpdate
	Visibility   game.VisibilityToggle
	Status       game.StatusTextEvent
}

var _ game.Host = (*PreviewHost)(nil)

// NewPreviewHost 创建预览宿主
func NewPreviewHost(view TopDownView, plane gameplay.PlaneCandidate) *PreviewHost {
	return &PreviewHost{
		view:       view,
		Plane:      plane,
		Transforms: make(map[game.EntityPart]game.EntityTransformUpdate),
	}
}

func (h *PreviewHost) SpawnGhost(gameplay.PlacementPose) error {
	if h.FailSpawn {
		return errSimulatedSpawnFailure
	}
	h.GhostSpawned = true
	return nil
}

func (h *PreviewHost) DestroyGhost() {
	h.GhostSpawned = false
	clear(h.Transforms)
}

// Raycast 屏幕点落在已显露平面的矩形范围内即命中
func (h *PreviewHost) Raycast(point game.ScreenPoint) (gameplay.RaycastHit, bool) {
	if !h.Revealed {
		return gameplay.RaycastHit{}, false
	}
	p := h.view.ToWorld(point.X, point.Y, h.Plane.Center.Y)
	local := p.Sub(h.Plane.Center)
	if math.Abs(local.X) > h.Plane.ExtentX/2 || math.Abs(local.Z) > h.Plane.ExtentZ/2 {
		return gameplay.RaycastHit{}, false
	}
	return gameplay.RaycastHit{Position: p, Rotation: h.Plane.Rotation}, true
}

func (h *PreviewHost) TrackedPlanes() []gameplay.PlaneCandidate {
	if !h.Revealed {
		return nil
	}
	return []gameplay.PlaneCandidate{h.Plane}
}

func (h *PreviewHost) UpdateEntityTransform(u game.EntityTransformUpdate) {
	h.Transforms[u.Part] = u
}

func (h *PreviewHost) UpdateBeam(u game.BeamUpdate) {
	h.Beam = u
}

func (h *PreviewHost) SetVisibility(v game.VisibilityToggle) {
	h.Visibility = v
}

func (h *PreviewHost) SetStatus(s game.StatusTextEvent) {
	h.Status = s
}
