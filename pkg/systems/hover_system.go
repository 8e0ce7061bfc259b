package systems

import (
	"github.com/gonewx/ghosthustlers/pkg/components"
	"github.com/gonewx/ghosthustlers/pkg/ecs"
	"github.com/gonewx/ghosthustlers/pkg/gameplay"
)

// HoverSystem 驱动幽灵的悬浮、自转与受击抖动
type HoverSystem struct {
	entityManager *ecs.EntityManager
	params        gameplay.HoverParams
	jitter        gameplay.JitterSource
}

// NewHoverSystem 创建悬浮系统
// jitter 为 nil 时使用全局随机源
func NewHoverSystem(em *ecs.EntityManager, params gameplay.HoverParams, jitter gameplay.JitterSource) *HoverSystem {
	return &HoverSystem{
		entityManager: em,
		params:        params,
		jitter:        jitter,
	}
}

// Update 推进悬浮时间并写入变换
// 只处理 Hovering 阶段的幽灵，捕获动画期间位置和朝向保持冻结
func (s *HoverSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.GhostComponent, *components.TransformComponent](s.entityManager)

	for _, id := range entities {
		ghost, _ := ecs.GetComponent[*components.GhostComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		if !ghost.Alive() {
			continue
		}

		ghost.ElapsedHover += deltaTime
		ghost.EncounterTime += deltaTime

		hover := s.params.Hover(ghost.ElapsedHover)
		pos := ghost.BasePosition.Add(hover.Offset)
		if ghost.IsShaking {
			pos = pos.Add(s.params.ShakeJitter(s.jitter))
		}

		transform.Position = pos
		transform.RotationY = hover.RotationY
	}
}
