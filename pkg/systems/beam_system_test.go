package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/ghosthustlers/pkg/components"
	"github.com/gonewx/ghosthustlers/pkg/ecs"
	"github.com/gonewx/ghosthustlers/pkg/gameplay"
	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

func newTestBeamSystem(em *ecs.EntityManager) *BeamSystem {
	return NewBeamSystem(em, gameplay.DefaultAimParams(), gameplay.DefaultDamageParams(), gameplay.DefaultBeamParams())
}

func TestBeamSystem_InactiveDoesNothing(t *testing.T) {
	em := ecs.NewEntityManager()
	ghostID := spawnTestGhost(em, vmath.V3(0, 0, -2))
	beamID := spawnTestBeam(em)
	system := newTestBeamSystem(em)

	cam := gameplay.CameraPose{Forward: vmath.V3(0, 0, -1)}
	assert.False(t, system.Update(1, cam, beamID, ghostID))

	health, _ := ecs.GetComponent[*components.HealthComponent](em, ghostID)
	assert.Equal(t, 1.0, health.Health)
}

func TestBeamSystem_ContinuousHitCaptures(t *testing.T) {
	em := ecs.NewEntityManager()
	ghostID := spawnTestGhost(em, vmath.V3(0, 0, -2))
	beamID := spawnTestBeam(em)
	system := newTestBeamSystem(em)
	system.Start(beamID)

	cam := gameplay.CameraPose{Forward: vmath.V3(0, 0, -1)}
	health, _ := ecs.GetComponent[*components.HealthComponent](em, ghostID)
	ghost, _ := ecs.GetComponent[*components.GhostComponent](em, ghostID)
	beam, _ := ecs.GetComponent[*components.BeamComponent](em, beamID)

	want := []float64{0.75, 0.5, 0.25, 0}
	for i := range want {
		depleted := system.Update(1, cam, beamID, ghostID)
		assert.InDelta(t, want[i], health.Health, 1e-12)
		assert.Equal(t, i == 3, depleted)
		assert.True(t, ghost.IsShaking)
		assert.True(t, beam.IsHit)
		assert.Equal(t, vmath.V3(0, 0, -2), beam.End)
		assert.True(t, beam.GeometryValid)
	}
}

func TestBeamSystem_MissStopsShaking(t *testing.T) {
	em := ecs.NewEntityManager()
	ghostID := spawnTestGhost(em, vmath.V3(0, 0, -2))
	beamID := spawnTestBeam(em)
	system := newTestBeamSystem(em)
	system.Start(beamID)

	onTarget := gameplay.CameraPose{Forward: vmath.V3(0, 0, -1)}
	offTarget := gameplay.CameraPose{Forward: vmath.V3(1, 0, 0)}

	system.Update(0.5, onTarget, beamID, ghostID)
	ghost, _ := ecs.GetComponent[*components.GhostComponent](em, ghostID)
	require.True(t, ghost.IsShaking)

	system.Update(0.5, offTarget, beamID, ghostID)
	assert.False(t, ghost.IsShaking)

	health, _ := ecs.GetComponent[*components.HealthComponent](em, ghostID)
	assert.InDelta(t, 0.875, health.Health, 1e-12, "miss does not regenerate")

	beam, _ := ecs.GetComponent[*components.BeamComponent](em, beamID)
	assert.True(t, vmath.ApproxEqual(vmath.V3(2.3, 0, 0), beam.End, 1e-12))
}

func TestBeamSystem_PulseResetsOnStart(t *testing.T) {
	em := ecs.NewEntityManager()
	ghostID := spawnTestGhost(em, vmath.V3(0, 0, -2))
	beamID := spawnTestBeam(em)
	system := newTestBeamSystem(em)

	system.Start(beamID)
	cam := gameplay.CameraPose{Forward: vmath.V3(0, 1, 0)}
	system.Update(0.3, cam, beamID, ghostID)
	beam, _ := ecs.GetComponent[*components.BeamComponent](em, beamID)
	assert.InDelta(t, 0.3, beam.PulseElapsed, 1e-12)

	system.Stop(beamID)
	assert.False(t, beam.Active)
	system.Start(beamID)
	assert.Zero(t, beam.PulseElapsed)
	assert.InDelta(t, 0.02, beam.Radius, 1e-12)
}

func TestBeamSystem_IgnoresCapturingGhost(t *testing.T) {
	em := ecs.NewEntityManager()
	ghostID := spawnTestGhost(em, vmath.V3(0, 0, -2))
	beamID := spawnTestBeam(em)
	system := newTestBeamSystem(em)
	system.Start(beamID)

	ghost, _ := ecs.GetComponent[*components.GhostComponent](em, ghostID)
	ghost.Lifecycle = components.LifecycleCapturing

	cam := gameplay.CameraPose{Forward: vmath.V3(0, 0, -1)}
	assert.False(t, system.Update(1, cam, beamID, ghostID))
	assert.False(t, ghost.IsShaking)
}
