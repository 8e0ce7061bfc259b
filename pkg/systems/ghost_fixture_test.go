package systems

import (
	"github.com/gonewx/ghosthustlers/pkg/components"
	"github.com/gonewx/ghosthustlers/pkg/ecs"
	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

// fixedJitter 总是返回同一个值的抖动源
type fixedJitter float64

func (f fixedJitter) Float64() float64 { return float64(f) }

// spawnTestGhost 在 base 处创建一个满血的悬浮幽灵
func spawnTestGhost(em *ecs.EntityManager, base vmath.Vec3) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.GhostComponent{BasePosition: base})
	ecs.AddComponent(em, id, &components.HealthComponent{Health: 1})
	ecs.AddComponent(em, id, &components.TransformComponent{Position: base, Scale: 1, Alpha: 1})
	ecs.AddComponent(em, id, &components.HealthBarComponent{})
	return id
}

func spawnTestBeam(em *ecs.EntityManager) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.BeamComponent{})
	return id
}
