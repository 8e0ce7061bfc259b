package systems

import (
	"github.com/gonewx/ghosthustlers/pkg/components"
	"github.com/gonewx/ghosthustlers/pkg/ecs"
	"github.com/gonewx/ghosthustlers/pkg/gameplay"
)

// BeamSystem 光束的瞄准检测与伤害积分
//
// 每帧只做解析式的角度检测（gameplay.AimParams.Aim），
// 与渲染用的模型网格无关。
type BeamSystem struct {
	entityManager *ecs.EntityManager
	aim           gameplay.AimParams
	damage        gameplay.DamageParams
	beam          gameplay.BeamParams
}

// NewBeamSystem 创建光束系统
func NewBeamSystem(em *ecs.EntityManager, aim gameplay.AimParams, damage gameplay.DamageParams, beam gameplay.BeamParams) *BeamSystem {
	return &BeamSystem{
		entityManager: em,
		aim:           aim,
		damage:        damage,
		beam:          beam,
	}
}

// Start 开始发射：重置脉冲计时
func (s *BeamSystem) Start(beamID ecs.EntityID) {
	b, ok := ecs.GetComponent[*components.BeamComponent](s.entityManager, beamID)
	if !ok {
		return
	}
	b.Active = true
	b.PulseElapsed = 0
	b.Radius = s.beam.Radius(0)
	b.IsHit = false
	b.GeometryValid = false
}

// Stop 停止发射
func (s *BeamSystem) Stop(beamID ecs.EntityID) {
	b, ok := ecs.GetComponent[*components.BeamComponent](s.entityManager, beamID)
	if !ok {
		return
	}
	b.Active = false
	b.IsHit = false
	b.GeometryValid = false
}

// Update 对存活的幽灵做一次命中检测并扣血
//
// 返回值表示本帧生命值是否恰好归零（调用方据此开始捕获序列）。
// 光束未激活、幽灵不存在或已进入捕获阶段时不做任何事。
func (s *BeamSystem) Update(deltaTime float64, camera gameplay.CameraPose, beamID, ghostID ecs.EntityID) bool {
	b, ok := ecs.GetComponent[*components.BeamComponent](s.entityManager, beamID)
	if !ok || !b.Active {
		return false
	}

	ghost, ok := ecs.GetComponent[*components.GhostComponent](s.entityManager, ghostID)
	if !ok || !ghost.Alive() {
		return false
	}
	health, _ := ecs.GetComponent[*components.HealthComponent](s.entityManager, ghostID)
	transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, ghostID)

	b.PulseElapsed += deltaTime
	b.Radius = s.beam.Radius(b.PulseElapsed)

	res := s.aim.Aim(camera.Position, camera.Forward, transform.Position)
	b.Origin = res.BeamOrigin
	b.End = res.BeamEnd
	b.IsHit = res.IsHit
	b.GeometryValid = res.BeamEnd.Sub(res.BeamOrigin).Len() >= gameplay.MinBeamLength

	ghost.IsShaking = res.IsHit
	if !res.IsHit {
		return false
	}

	health.Health = s.damage.Apply(health.Health, true, deltaTime)
	return gameplay.IsDepleted(health.Health)
}
