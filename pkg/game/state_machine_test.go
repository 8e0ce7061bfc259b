package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/ghosthustlers/pkg/components"
	"github.com/gonewx/ghosthustlers/pkg/config"
	"github.com/gonewx/ghosthustlers/pkg/gameplay"
	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

// zeroJitter 抖动恒为 0（Float64 返回 0.5 → 2*0.5-1 = 0）
type zeroJitter struct{}

func (zeroJitter) Float64() float64 { return 0.5 }

var (
	floorCenter = vmath.V3(0, 0, -1)

	// 站在原点正对幽灵
	aimedCamera = gameplay.CameraPose{Position: vmath.Zero, Forward: vmath.V3(0, 0, -1)}
	// 背对幽灵
	awayCamera = gameplay.CameraPose{Position: vmath.Zero, Forward: vmath.V3(0, 0, 1)}
)

func floorPlane() gameplay.PlaneCandidate {
	return gameplay.PlaneCandidate{
		ID:        "floor",
		Alignment: gameplay.AlignmentHorizontal,
		Center:    floorCenter,
		Rotation:  vmath.IdentityQuat,
		ExtentX:   0.5,
		ExtentZ:   0.5,
		Tracking:  true,
	}
}

func newTestMachine(t *testing.T, rec *Recorder) *StateMachine {
	t.Helper()
	m, err := NewStateMachine(rec, Options{Jitter: zeroJitter{}})
	require.NoError(t, err)
	return m
}

// placeOnFloor 通过平面事件放置幽灵
func placeOnFloor(t *testing.T, m *StateMachine) {
	t.Helper()
	m.HandlePlaneEvent(gameplay.PlaneEvent{Added: []gameplay.PlaneCandidate{floorPlane()}})
	m.Tick(0, aimedCamera)
	require.Equal(t, StatePlaced, m.State())
}

func press(m *StateMachine, ts float64) {
	m.HandleInput(InputEvent{Kind: InputPressDown, Timestamp: ts})
}

func release(m *StateMachine, ts float64) {
	m.HandleInput(InputEvent{Kind: InputRelease, ScreenPoint: ScreenPoint{X: 100, Y: 200}, Timestamp: ts})
}

// captureGhost 持续命中直到捕获完成
func captureGhost(t *testing.T, m *StateMachine) {
	t.Helper()
	press(m, 0)
	for i := 0; i < 4; i++ {
		m.Tick(1, aimedCamera)
	}
	m.Tick(0.5, aimedCamera)
	require.Equal(t, StateCaptured, m.State())
}

func TestNewStateMachine(t *testing.T) {
	t.Run("starts scanning", func(t *testing.T) {
		rec := NewRecorder()
		m := newTestMachine(t, rec)

		assert.Equal(t, StateScanning, m.State())
		assert.Equal(t, StatusScanning, rec.LastStatus().Kind)
		assert.Equal(t, textScanning, rec.LastStatus().Text)
		assert.Equal(t, hintScanning, rec.LastStatus().Hint)
		assert.Equal(t, VisibilityToggle{PlaneVisuals: true}, rec.LastVisibility())
		assert.False(t, m.Snapshot().HasGhost)
	})

	t.Run("nil host", func(t *testing.T) {
		_, err := NewStateMachine(nil, Options{})
		assert.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := config.DefaultGameplayConfig()
		cfg.Damage.CaptureTime = 0
		_, err := NewStateMachine(NewRecorder(), Options{Config: cfg})
		assert.Error(t, err)
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "scanning", StateScanning.String())
	assert.Equal(t, "placed", StatePlaced.String())
	assert.Equal(t, "capturing", StateCapturing.String())
	assert.Equal(t, "captured", StateCaptured.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestPlaneEventPlacement(t *testing.T) {
	tests := []struct {
		name      string
		event     gameplay.PlaneEvent
		wantState State
	}{
		{
			name:      "large horizontal plane added",
			event:     gameplay.PlaneEvent{Added: []gameplay.PlaneCandidate{floorPlane()}},
			wantState: StatePlaced,
		},
		{
			name:      "plane grows large enough",
			event:     gameplay.PlaneEvent{Updated: []gameplay.PlaneCandidate{floorPlane()}},
			wantState: StatePlaced,
		},
		{
			name: "plane too small",
			event: gameplay.PlaneEvent{Added: []gameplay.PlaneCandidate{func() gameplay.PlaneCandidate {
				p := floorPlane()
				p.ExtentX, p.ExtentZ = 0.3, 0.2
				return p
			}()}},
			wantState: StateScanning,
		},
		{
			name: "vertical plane",
			event: gameplay.PlaneEvent{Added: []gameplay.PlaneCandidate{func() gameplay.PlaneCandidate {
				p := floorPlane()
				p.Alignment = gameplay.AlignmentOther
				return p
			}()}},
			wantState: StateScanning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecorder()
			m := newTestMachine(t, rec)

			m.HandlePlaneEvent(tt.event)
			assert.Equal(t, StateScanning, m.State(), "events are applied on the next tick")

			m.Tick(0.016, aimedCamera)
			assert.Equal(t, tt.wantState, m.State())
			if tt.wantState != StatePlaced {
				assert.Empty(t, rec.Spawned)
				return
			}

			require.Len(t, rec.Spawned, 1)
			assert.Equal(t, floorCenter, rec.Spawned[0].Position)
			assert.Equal(t, StatusGhostAppeared, rec.LastStatus().Kind)
			assert.Empty(t, rec.LastStatus().Hint)
			assert.Equal(t, VisibilityToggle{Crosshair: true}, rec.LastVisibility())

			snap := m.Snapshot()
			assert.True(t, snap.HasGhost)
			assert.Equal(t, 1.0, snap.Health)
			assert.Equal(t, components.LifecycleHovering, snap.Lifecycle)
			assert.False(t, snap.IsShaking)
		})
	}
}

func TestSecondPlaneEventIgnored(t *testing.T) {
	rec := NewRecorder()
	m := newTestMachine(t, rec)
	placeOnFloor(t, m)

	other := floorPlane()
	other.ID = "table"
	other.Center = vmath.V3(2, 0.7, -2)
	m.HandlePlaneEvent(gameplay.PlaneEvent{Added: []gameplay.PlaneCandidate{other}})
	m.Tick(0.016, aimedCamera)

	assert.Len(t, rec.Spawned, 1)
	assert.Equal(t, StatePlaced, m.State())
}

func TestTapPlacement(t *testing.T) {
	hit := gameplay.RaycastHit{Position: vmath.V3(0.4, 0, -1.5), Rotation: vmath.IdentityQuat}

	tests := []struct {
		name        string
		hit         *gameplay.RaycastHit
		held        float64
		wantState   State
		wantRaycast int
	}{
		{name: "short tap on plane", hit: &hit, held: 0.15, wantState: StatePlaced, wantRaycast: 1},
		{name: "short tap misses", hit: nil, held: 0.15, wantState: StateScanning, wantRaycast: 1},
		{name: "long press", hit: &hit, held: 0.5, wantState: StateScanning, wantRaycast: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecorder()
			rec.RaycastHit = tt.hit
			m := newTestMachine(t, rec)

			press(m, 10)
			release(m, 10+tt.held)
			m.Tick(0.016, aimedCamera)

			assert.Equal(t, tt.wantState, m.State())
			assert.Len(t, rec.RaycastCalls, tt.wantRaycast)
			if tt.wantRaycast > 0 {
				assert.Equal(t, ScreenPoint{X: 100, Y: 200}, rec.RaycastCalls[0])
			}
			if tt.wantState == StatePlaced {
				require.Len(t, rec.Spawned, 1)
				assert.Equal(t, hit.Position, rec.Spawned[0].Position)
			}
		})
	}
}

func TestTapWithPlacedGhostDoesNothing(t *testing.T) {
	rec := NewRecorder()
	rec.RaycastHit = &gameplay.RaycastHit{Position: vmath.V3(1, 0, -1)}
	m := newTestMachine(t, rec)
	placeOnFloor(t, m)

	press(m, 0)
	release(m, 0.1)
	m.Tick(0.016, aimedCamera)

	assert.Equal(t, StatePlaced, m.State())
	assert.Empty(t, rec.RaycastCalls)
	assert.Len(t, rec.Spawned, 1)
}

func TestReleaseWithoutPressIgnored(t *testing.T) {
	rec := NewRecorder()
	rec.RaycastHit = &gameplay.RaycastHit{Position: vmath.V3(1, 0, -1)}
	m := newTestMachine(t, rec)

	release(m, 5)
	m.Tick(0.016, aimedCamera)

	assert.Equal(t, StateScanning, m.State())
	assert.Empty(t, rec.RaycastCalls)
}

func TestBeamDamageAndCapture(t *testing.T) {
	rec := NewRecorder()
	m := newTestMachine(t, rec)
	placeOnFloor(t, m)

	press(m, 0)
	wantHealth := []float64{0.75, 0.5, 0.25, 0}
	for i, want := range wantHealth {
		m.Tick(1, aimedCamera)
		snap := m.Snapshot()
		assert.InDelta(t, want, snap.Health, 1e-12, "tick %d", i+1)
		assert.Equal(t, StateCapturing, m.State(), "tick %d", i+1)
	}

	// 第 4 帧生命值归零：光束停止，开始缩小淡出
	snap := m.Snapshot()
	assert.Equal(t, components.LifecycleCapturing, snap.Lifecycle)
	assert.False(t, snap.Firing)
	assert.False(t, snap.IsShaking)
	assert.False(t, rec.LastBeam().Active)

	m.Tick(0.25, aimedCamera)
	assert.Equal(t, StateCapturing, m.State())
	assert.InDelta(t, 1-0.5*0.99, m.Snapshot().Scale, 1e-9)
	assert.InDelta(t, 0.5, m.Snapshot().Alpha, 1e-9)

	m.Tick(0.25, aimedCamera)
	assert.Equal(t, StateCaptured, m.State())
	assert.False(t, m.Snapshot().HasGhost)
	assert.Equal(t, 1, rec.Destroyed)
	assert.Equal(t, StatusGhostCaptured, rec.LastStatus().Kind)
	assert.Equal(t, VisibilityToggle{RespawnButton: true}, rec.LastVisibility())
}

func TestBeamVisualsAndHealthBar(t *testing.T) {
	rec := NewRecorder()
	m := newTestMachine(t, rec)
	placeOnFloor(t, m)

	press(m, 0)
	m.Tick(0.1, aimedCamera)

	assert.True(t, m.Snapshot().IsShaking)
	assert.True(t, rec.LastVisibility().HealthBar)

	beam := rec.LastBeam()
	require.True(t, beam.Active)
	assert.InDelta(t, 0.02, beam.Radius, 0.005+1e-9)
	assert.InDelta(t, -0.3, beam.Origin.Z, 1e-9)
	assert.Equal(t, floorCenter, beam.End, "aimed at the pose of the previous frame")

	ghost := rec.Transforms[PartGhost]
	bg, ok := rec.Transforms[PartHealthBarBackground]
	require.True(t, ok)
	assert.InDelta(t, ghost.Position.Y+0.3, bg.Position.Y, 1e-9)
	assert.Equal(t, vmath.V3(0.15, 0.01, 0.02), bg.Scale)

	fill, ok := rec.Transforms[PartHealthBarFill]
	require.True(t, ok)
	health := m.Snapshot().Health
	assert.InDelta(t, 0.15*health, fill.Scale.X, 1e-9)
	assert.InDelta(t, 0.9, fill.Alpha, 1e-9)
}

func TestMissingBeamKeepsHealth(t *testing.T) {
	rec := NewRecorder()
	m := newTestMachine(t, rec)
	placeOnFloor(t, m)

	press(m, 0)
	m.Tick(1, awayCamera)

	snap := m.Snapshot()
	assert.Equal(t, 1.0, snap.Health)
	assert.False(t, snap.IsShaking)
	assert.Equal(t, StateCapturing, m.State())

	beam := rec.LastBeam()
	require.True(t, beam.Active)
	assert.InDelta(t, 2.3, beam.End.Z, 1e-9)
}

func TestReleaseStopsBeam(t *testing.T) {
	rec := NewRecorder()
	m := newTestMachine(t, rec)
	placeOnFloor(t, m)

	press(m, 0)
	m.Tick(1, aimedCamera)
	release(m, 1)
	m.Tick(0.016, aimedCamera)

	snap := m.Snapshot()
	assert.Equal(t, StatePlaced, m.State())
	assert.False(t, snap.Firing)
	assert.False(t, snap.IsShaking)
	assert.InDelta(t, 0.75, snap.Health, 1e-12, "health never regenerates")
	assert.False(t, rec.LastBeam().Active)
	assert.True(t, rec.LastVisibility().HealthBar, "damaged ghost keeps its health bar")
}

func TestZeroCameraForwardSkipsAim(t *testing.T) {
	rec := NewRecorder()
	m := newTestMachine(t, rec)
	placeOnFloor(t, m)

	press(m, 0)
	m.Tick(1, gameplay.CameraPose{})

	assert.Equal(t, 1.0, m.Snapshot().Health)
}

func TestNegativeDeltaTime(t *testing.T) {
	rec := NewRecorder()
	m := newTestMachine(t, rec)
	placeOnFloor(t, m)

	m.Tick(-1, aimedCamera)
	assert.Equal(t, 0.0, m.Snapshot().ElapsedHover)

	m.Tick(0.5, aimedCamera)
	assert.InDelta(t, 0.5, m.Snapshot().ElapsedHover, 1e-12)
}

func TestReleaseDuringTeardownIgnored(t *testing.T) {
	rec := NewRecorder()
	m := newTestMachine(t, rec)
	placeOnFloor(t, m)

	press(m, 0)
	for i := 0; i < 4; i++ {
		m.Tick(1, aimedCamera)
	}
	release(m, 4.5)
	m.Tick(0.1, aimedCamera)
	assert.Equal(t, StateCapturing, m.State())

	m.Tick(0.5, aimedCamera)
	assert.Equal(t, StateCaptured, m.State())
}

func TestRespawn(t *testing.T) {
	t.Run("immediate placement on tracked plane", func(t *testing.T) {
		rec := NewRecorder()
		m := newTestMachine(t, rec)
		placeOnFloor(t, m)
		first := m.Snapshot().EncounterID
		captureGhost(t, m)

		rec.Planes = []gameplay.PlaneCandidate{floorPlane()}
		require.NoError(t, m.Respawn())

		assert.Equal(t, StatePlaced, m.State())
		assert.Len(t, rec.Spawned, 2)
		snap := m.Snapshot()
		assert.True(t, snap.HasGhost)
		assert.Equal(t, 1.0, snap.Health)
		assert.False(t, snap.IsShaking)
		assert.Equal(t, components.LifecycleHovering, snap.Lifecycle)
		assert.NotEqual(t, first, snap.EncounterID)
	})

	t.Run("waits for planes", func(t *testing.T) {
		rec := NewRecorder()
		m := newTestMachine(t, rec)
		placeOnFloor(t, m)
		captureGhost(t, m)

		require.NoError(t, m.Respawn())
		assert.Equal(t, StateScanning, m.State())
		assert.Equal(t, StatusScanning, rec.LastStatus().Kind)
		assert.Equal(t, VisibilityToggle{PlaneVisuals: true}, rec.LastVisibility())

		m.HandlePlaneEvent(gameplay.PlaneEvent{Updated: []gameplay.PlaneCandidate{floorPlane()}})
		m.Tick(0.016, aimedCamera)
		assert.Equal(t, StatePlaced, m.State())
	})

	t.Run("while firing", func(t *testing.T) {
		rec := NewRecorder()
		m := newTestMachine(t, rec)
		placeOnFloor(t, m)
		press(m, 0)
		m.Tick(1, aimedCamera)

		require.NoError(t, m.Respawn())
		assert.Equal(t, StateScanning, m.State())
		assert.Equal(t, 1, rec.Destroyed)
		assert.False(t, rec.LastBeam().Active)
		assert.False(t, m.Snapshot().Firing)
	})

	t.Run("ignored while scanning", func(t *testing.T) {
		rec := NewRecorder()
		rec.Planes = []gameplay.PlaneCandidate{floorPlane()}
		m := newTestMachine(t, rec)

		require.NoError(t, m.Respawn())
		assert.Equal(t, StateScanning, m.State())
		assert.Empty(t, rec.Spawned)
	})
}

func TestPlacementFailure(t *testing.T) {
	rec := NewRecorder()
	rec.SpawnErr = errors.New("model missing")
	m := newTestMachine(t, rec)

	m.HandlePlaneEvent(gameplay.PlaneEvent{Added: []gameplay.PlaneCandidate{floorPlane()}})
	m.Tick(0.016, aimedCamera)

	assert.Equal(t, StateScanning, m.State())
	assert.False(t, m.Snapshot().HasGhost)
	assert.Equal(t, StatusPlacementFailed, rec.LastStatus().Kind)
	assert.Equal(t, "Failed to load ghost: model missing", rec.LastStatus().Text)

	// 选择器已重新武装，下一次平面更新再试
	rec.SpawnErr = nil
	m.HandlePlaneEvent(gameplay.PlaneEvent{Updated: []gameplay.PlaneCandidate{floorPlane()}})
	m.Tick(0.016, aimedCamera)
	assert.Equal(t, StatePlaced, m.State())
}

func TestRespawnPlacementFailure(t *testing.T) {
	rec := NewRecorder()
	m := newTestMachine(t, rec)
	placeOnFloor(t, m)
	captureGhost(t, m)

	rec.Planes = []gameplay.PlaneCandidate{floorPlane()}
	rec.SpawnErr = errors.New("out of memory")

	err := m.Respawn()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPlacementFailed)
	assert.Equal(t, StateScanning, m.State())
	assert.Equal(t, StatusPlacementFailed, rec.LastStatus().Kind)
}

func TestTrackingLost(t *testing.T) {
	rec := NewRecorder()
	m := newTestMachine(t, rec)
	placeOnFloor(t, m)

	m.SetTrackingLost(true)
	assert.Equal(t, StatusTrackingLost, rec.LastStatus().Kind)
	assert.Equal(t, textTrackingLost, rec.LastStatus().Text)
	assert.True(t, m.Snapshot().TrackingLost)

	n := len(rec.Statuses)
	m.SetTrackingLost(true)
	assert.Len(t, rec.Statuses, n, "repeated notification is not re-emitted")

	m.SetTrackingLost(false)
	assert.Equal(t, StatusGhostAppeared, rec.LastStatus().Kind)
}

func TestCustomGhostVisuals(t *testing.T) {
	cfg := config.DefaultGameplayConfig()
	cfg.Ghost.Scale = 2
	cfg.Ghost.Alpha = 0.8

	rec := NewRecorder()
	m, err := NewStateMachine(rec, Options{Config: cfg, Jitter: zeroJitter{}})
	require.NoError(t, err)
	placeOnFloor(t, m)

	ghost := rec.Transforms[PartGhost]
	assert.Equal(t, vmath.V3(2, 2, 2), ghost.Scale)
	assert.InDelta(t, 0.8, ghost.Alpha, 1e-12)
}
