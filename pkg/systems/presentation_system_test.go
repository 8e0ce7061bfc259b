package systems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/ghosthustlers/pkg/components"
	"github.com/gonewx/ghosthustlers/pkg/ecs"
	"github.com/gonewx/ghosthustlers/pkg/gameplay"
	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

func TestHealthBarSystem(t *testing.T) {
	em := ecs.NewEntityManager()
	id := spawnTestGhost(em, vmath.Zero)
	system := NewHealthBarSystem(em, gameplay.DefaultHealthBarParams())

	health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
	bar, _ := ecs.GetComponent[*components.HealthBarComponent](em, id)
	health.Health = 0.5

	// 隐藏时只更新填充，不更新朝向
	system.Update(gameplay.CameraPose{Forward: vmath.V3(1, 0, 0)})
	assert.InDelta(t, 0.075, bar.FillScaleX, 1e-12)
	assert.Zero(t, bar.Yaw)

	bar.Visible = true
	system.Update(gameplay.CameraPose{Forward: vmath.V3(1, 0, 0)})
	assert.InDelta(t, math.Pi/2, bar.Yaw, 1e-12)

	// 垂直向下看时保留上一帧朝向
	system.Update(gameplay.CameraPose{Forward: vmath.V3(0, -1, 0)})
	assert.InDelta(t, math.Pi/2, bar.Yaw, 1e-12)
}

func TestCaptureSystem(t *testing.T) {
	em := ecs.NewEntityManager()
	id := spawnTestGhost(em, vmath.Zero)
	system := NewCaptureSystem(em, gameplay.DefaultCaptureParams())

	ghost, _ := ecs.GetComponent[*components.GhostComponent](em, id)
	ghost.IsShaking = true
	require.True(t, system.Begin(id))
	assert.Equal(t, components.LifecycleCapturing, ghost.Lifecycle)
	assert.False(t, ghost.IsShaking)

	// 已在捕获中，不能重复开始
	assert.False(t, system.Begin(id))

	tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	system.Update(0.25)
	assert.False(t, system.IsDone(id))
	assert.InDelta(t, 0.505, tr.Scale, 1e-12)
	assert.InDelta(t, 0.5, tr.Alpha, 1e-12)

	system.Update(0.25)
	assert.True(t, system.IsDone(id))
	assert.InDelta(t, 0.01, tr.Scale, 1e-12)
	assert.InDelta(t, 0, tr.Alpha, 1e-12)

	// 完成后不再变化
	system.Update(1)
	assert.InDelta(t, 0.01, tr.Scale, 1e-12)
}
