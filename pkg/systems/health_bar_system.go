package systems

import (
	"github.com/gonewx/ghosthustlers/pkg/components"
	"github.com/gonewx/ghosthustlers/pkg/ecs"
	"github.com/gonewx/ghosthustlers/pkg/gameplay"
)

// HealthBarSystem 将生命值映射到血条，并让可见的血条朝向相机
type HealthBarSystem struct {
	entityManager *ecs.EntityManager
	params        gameplay.HealthBarParams
}

// NewHealthBarSystem 创建血条系统
func NewHealthBarSystem(em *ecs.EntityManager, params gameplay.HealthBarParams) *HealthBarSystem {
	return &HealthBarSystem{
		entityManager: em,
		params:        params,
	}
}

// Update 刷新所有血条
func (s *HealthBarSystem) Update(camera gameplay.CameraPose) {
	entities := ecs.GetEntitiesWith2[*components.HealthBarComponent, *components.HealthComponent](s.entityManager)

	for _, id := range entities {
		bar, _ := ecs.GetComponent[*components.HealthBarComponent](s.entityManager, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)

		view := s.params.Present(health.Health)
		bar.FillScaleX = view.FillScaleX
		bar.FillOffsetX = view.FillOffsetX
		bar.Color = view.Color

		if !bar.Visible {
			continue
		}
		if yaw, ok := gameplay.BillboardYaw(camera.Forward); ok {
			bar.Yaw = yaw
		}
	}
}
