package systems

import (
	"github.com/gonewx/ghosthustlers/pkg/components"
	"github.com/gonewx/ghosthustlers/pkg/ecs"
	"github.com/gonewx/ghosthustlers/pkg/gameplay"
)

// CaptureSystem 播放捕获时的缩小淡出动画
type CaptureSystem struct {
	entityManager *ecs.EntityManager
	params        gameplay.CaptureParams
}

// NewCaptureSystem 创建捕获动画系统
func NewCaptureSystem(em *ecs.EntityManager, params gameplay.CaptureParams) *CaptureSystem {
	return &CaptureSystem{
		entityManager: em,
		params:        params,
	}
}

// Begin 让幽灵进入捕获阶段
// 停止受击抖动，以当前缩放和透明度作为动画起点
func (s *CaptureSystem) Begin(ghostID ecs.EntityID) bool {
	ghost, ok := ecs.GetComponent[*components.GhostComponent](s.entityManager, ghostID)
	if !ok || !ghost.Alive() {
		return false
	}
	transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, ghostID)

	ghost.Lifecycle = components.LifecycleCapturing
	ghost.IsShaking = false

	ecs.AddComponent(s.entityManager, ghostID, &components.CaptureAnimationComponent{
		StartScale: transform.Scale,
		StartAlpha: transform.Alpha,
	})
	return true
}

// Update 推进所有未完成的捕获动画
func (s *CaptureSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.CaptureAnimationComponent, *components.TransformComponent](s.entityManager)

	for _, id := range entities {
		anim, _ := ecs.GetComponent[*components.CaptureAnimationComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		if anim.Done {
			continue
		}

		anim.Elapsed += deltaTime
		view := s.params.Frame(anim.Elapsed, anim.StartScale, anim.StartAlpha)
		transform.Scale = view.Scale
		transform.Alpha = view.Alpha
		anim.Done = view.Done
	}
}

// IsDone 轮询捕获动画是否已完成
func (s *CaptureSystem) IsDone(ghostID ecs.EntityID) bool {
	anim, ok := ecs.GetComponent[*components.CaptureAnimationComponent](s.entityManager, ghostID)
	return ok && anim.Done
}
