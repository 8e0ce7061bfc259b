package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gonewx/ghosthustlers/pkg/components"
	"github.com/gonewx/ghosthustlers/pkg/config"
	"github.com/gonewx/ghosthustlers/pkg/ecs"
	"github.com/gonewx/ghosthustlers/pkg/gameplay"
	"github.com/gonewx/ghosthustlers/pkg/logging"
	"github.com/gonewx/ghosthustlers/pkg/systems"
	"github.com/gonewx/ghosthustlers/pkg/telemetry"
	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

// ErrPlacementFailed 宿主无法实例化幽灵（如模型加载失败）
var ErrPlacementFailed = errors.New("ghost placement failed")

// State 游戏状态
type State int

const (
	// StateScanning 寻找平面中，场景里没有幽灵
	StateScanning State = iota
	// StatePlaced 幽灵已放置，光束未发射
	StatePlaced
	// StateCapturing 光束发射中，或捕获动画播放中
	StateCapturing
	// StateCaptured 幽灵已被捕获并销毁，等待重生
	StateCaptured
)

// String 返回状态名称
func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StatePlaced:
		return "placed"
	case StateCapturing:
		return "capturing"
	case StateCaptured:
		return "captured"
	default:
		return "unknown"
	}
}

// healthBarBackgroundColor 血条底板颜色
var healthBarBackgroundColor = gameplay.RGBA{R: 0.2, G: 0.2, B: 0.2, A: 0.8}

// Options 状态机可选依赖
type Options struct {
	// Config 玩法参数，nil 时使用默认值
	Config *config.GameplayConfig
	// Logger nil 时不输出日志
	Logger *zerolog.Logger
	// Metrics nil 时不记录指标
	Metrics *telemetry.Metrics
	// Jitter 受击抖动随机源，nil 时使用全局随机源
	Jitter gameplay.JitterSource
}

// pressState 一次按压手势
type pressState struct {
	active    bool
	timestamp float64
}

// StateMachine 捉鬼玩法状态机
//
// 持有唯一的幽灵实体和光束实体，把宿主事件路由给各个系统，
// 并把变换、可见性和状态文本推送回宿主。
//
// 平面事件和输入事件先入队，在下一次 Tick 开始时按到达顺序处理；
// Respawn 和 SetTrackingLost 是界面命令，立即生效。
// 非并发安全：所有方法必须在同一个帧回调线程上调用。
type StateMachine struct {
	cfg     *config.GameplayConfig
	host    Host
	logger  zerolog.Logger
	metrics *telemetry.Metrics

	entityManager *ecs.EntityManager
	selector      *gameplay.PlacementSelector

	hoverSystem     *systems.HoverSystem
	beamSystem      *systems.BeamSystem
	healthBarSystem *systems.HealthBarSystem
	captureSystem   *systems.CaptureSystem

	state   State
	ghostID ecs.EntityID
	beamID  ecs.EntityID
	firing  bool
	press   pressState
	pending []any

	trackingLost  bool
	failureReason string

	visibility     VisibilityToggle
	sentVisibility VisibilityToggle
	visibilitySent bool
	status         StatusTextEvent
	statusSent     bool
}

// NewStateMachine 创建状态机并进入 Scanning 状态
func NewStateMachine(host Host, opts Options) (*StateMachine, error) {
	if host == nil {
		return nil, errors.New("host is required")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultGameplayConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gameplay config: %w", err)
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.Noop()
	}

	em := ecs.NewEntityManager()
	m := &StateMachine{
		cfg:             cfg,
		host:            host,
		logger:          logging.Component(logger, "GameStateMachine"),
		metrics:         metrics,
		entityManager:   em,
		selector:        gameplay.NewPlacementSelector(cfg.Placement.MinExtent),
		hoverSystem:     systems.NewHoverSystem(em, cfg.Hover, opts.Jitter),
		beamSystem:      systems.NewBeamSystem(em, cfg.Aim, cfg.Damage, cfg.Beam),
		healthBarSystem: systems.NewHealthBarSystem(em, cfg.HealthBar),
		captureSystem:   systems.NewCaptureSystem(em, cfg.Capture),
	}

	// 光束实体贯穿整个会话，只重置字段
	m.beamID = em.CreateEntity()
	ecs.AddComponent(em, m.beamID, &components.BeamComponent{})

	m.visibility.PlaneVisuals = true
	m.setState(StateScanning)
	return m, nil
}

// State 当前状态
func (m *StateMachine) State() State {
	return m.state
}

// HandlePlaneEvent 平面跟踪变化（下一帧处理）
func (m *StateMachine) HandlePlaneEvent(ev gameplay.PlaneEvent) {
	m.pending = append(m.pending, ev)
}

// HandleInput 按下/抬起事件（下一帧处理）
func (m *StateMachine) HandleInput(ev InputEvent) {
	m.pending = append(m.pending, ev)
}

// Tick 推进一帧
//
// deltaTime 为距上一帧的秒数（负值按 0 处理）；camera 为本帧相机位姿。
func (m *StateMachine) Tick(deltaTime float64, camera gameplay.CameraPose) {
	if deltaTime < 0 || math.IsNaN(deltaTime) {
		deltaTime = 0
	}
	camera.Forward = camera.Forward.Normalize()

	m.drainPending()

	if m.hasGhost() {
		m.updateGhost(deltaTime, camera)
	}

	m.entityManager.RemoveMarkedEntities()
}

func (m *StateMachine) drainPending() {
	// 处理过程中可能不会再入队，但仍先取出当前批次
	batch := m.pending
	m.pending = nil
	for _, ev := range batch {
		switch e := ev.(type) {
		case gameplay.PlaneEvent:
			m.processPlaneEvent(e)
		case InputEvent:
			m.processInput(e)
		}
	}
}

func (m *StateMachine) updateGhost(deltaTime float64, camera gameplay.CameraPose) {
	// 捕获动画从开始后的下一帧起推进
	m.captureSystem.Update(deltaTime)
	if m.captureSystem.IsDone(m.ghostID) {
		m.finishCapture()
		return
	}

	if m.firing && camera.Forward.LenSq() > 0 {
		depleted := m.beamSystem.Update(deltaTime, camera, m.beamID, m.ghostID)
		if m.ghost().IsShaking {
			m.setHealthBarVisible(true)
		}
		m.emitBeam()
		if depleted {
			m.beginCapture()
		}
	}

	m.hoverSystem.Update(deltaTime)
	m.healthBarSystem.Update(camera)
	m.emitTransforms()
}

// ========================================
// 放置
// ========================================

func (m *StateMachine) processPlaneEvent(ev gameplay.PlaneEvent) {
	if m.state != StateScanning {
		return
	}
	pose, ok := m.selector.HandlePlaneEvent(ev)
	if !ok {
		return
	}
	if err := m.place(pose, telemetry.SourcePlane); err != nil {
		m.logger.Warn().Err(err).Msg("automatic placement failed")
	}
}

func (m *StateMachine) tapPlace(point ScreenPoint) {
	if m.state != StateScanning || !m.selector.Armed() {
		return
	}
	hit, ok := m.host.Raycast(point)
	if !ok {
		m.logger.Debug().Float64("x", point.X).Float64("y", point.Y).Msg("tap raycast found no plane")
		return
	}
	pose := m.selector.SelectFromRaycast(hit)
	if err := m.place(pose, telemetry.SourceRaycast); err != nil {
		m.logger.Warn().Err(err).Msg("tap placement failed")
	}
}

// place 实例化幽灵；宿主失败时保持 Scanning 并重新武装选择器
func (m *StateMachine) place(pose gameplay.PlacementPose, source string) error {
	if m.hasGhost() {
		return nil
	}

	if err := m.host.SpawnGhost(pose); err != nil {
		m.selector.Reset()
		m.metrics.RecordPlacementFailure(source)
		m.failureReason = err.Error()
		m.applyStatus()
		return fmt.Errorf("%w: %w", ErrPlacementFailed, err)
	}

	em := m.entityManager
	id := em.CreateEntity()
	ghost := &components.GhostComponent{
		EncounterID:  uuid.New(),
		BasePosition: pose.Position,
		Lifecycle:    components.LifecycleHovering,
	}
	ecs.AddComponent(em, id, ghost)
	ecs.AddComponent(em, id, &components.HealthComponent{Health: 1})
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: pose.Position,
		Scale:    m.cfg.Ghost.Scale,
		Alpha:    m.cfg.Ghost.Alpha,
	})
	ecs.AddComponent(em, id, &components.HealthBarComponent{})
	m.ghostID = id

	m.metrics.RecordPlacement(source)
	m.logger.Info().
		Str("encounter", ghost.EncounterID.String()).
		Str("source", source).
		Float64("x", pose.Position.X).
		Float64("y", pose.Position.Y).
		Float64("z", pose.Position.Z).
		Msg("ghost placed")

	m.setPlaneVisuals(false)
	m.setState(StatePlaced)
	return nil
}

// ========================================
// 输入
// ========================================

func (m *StateMachine) processInput(ev InputEvent) {
	switch ev.Kind {
	case InputPressDown:
		if m.press.active {
			return
		}
		m.press = pressState{active: true, timestamp: ev.Timestamp}
		if m.state == StatePlaced && m.ghostAlive() {
			m.startBeam()
		}

	case InputRelease:
		if !m.press.active {
			m.logger.Debug().Msg("release without press ignored")
			return
		}
		held := ev.Timestamp - m.press.timestamp
		m.press = pressState{}

		m.stopBeam()

		// 短按：没有幽灵时为点击放置，有幽灵时为空操作
		if held < m.cfg.Placement.TapThreshold && m.state == StateScanning {
			m.tapPlace(ev.ScreenPoint)
		}
	}
}

// ========================================
// 光束与捕获
// ========================================

func (m *StateMachine) startBeam() {
	if m.firing || !m.ghostAlive() {
		return
	}
	m.firing = true
	m.beamSystem.Start(m.beamID)
	m.setHealthBarVisible(true)
	m.setState(StateCapturing)
}

// stopBeam 松开扳机
func (m *StateMachine) stopBeam() {
	if !m.firing {
		return
	}
	m.firing = false
	m.beamSystem.Stop(m.beamID)
	m.host.UpdateBeam(BeamUpdate{Active: false})

	if !m.hasGhost() {
		return
	}
	ghost := m.ghost()
	ghost.IsShaking = false
	if !ghost.Alive() {
		return
	}
	if m.health().Health >= 1 {
		m.setHealthBarVisible(false)
	}
	if m.state == StateCapturing {
		m.setState(StatePlaced)
	}
}

// beginCapture 生命值归零：停止光束并开始缩小淡出
// 状态保持 Capturing，直到动画完成
func (m *StateMachine) beginCapture() {
	m.firing = false
	m.beamSystem.Stop(m.beamID)
	m.host.UpdateBeam(BeamUpdate{Active: false})

	if !m.captureSystem.Begin(m.ghostID) {
		return
	}
	ghost := m.ghost()
	m.logger.Info().
		Str("encounter", ghost.EncounterID.String()).
		Float64("encounter_seconds", ghost.EncounterTime).
		Msg("ghost health depleted, capture sequence started")
}

// finishCapture 捕获动画完成：销毁幽灵并进入 Captured
func (m *StateMachine) finishCapture() {
	ghost := m.ghost()
	m.metrics.RecordCapture(ghost.EncounterTime)
	m.logger.Info().Str("encounter", ghost.EncounterID.String()).Msg("ghost captured")

	m.destroyGhost()
	m.setState(StateCaptured)
}

func (m *StateMachine) destroyGhost() {
	if !m.hasGhost() {
		return
	}
	m.ghost().Lifecycle = components.LifecycleDestroyed
	m.entityManager.DestroyEntity(m.ghostID)
	m.entityManager.RemoveMarkedEntities()
	m.ghostID = ecs.InvalidEntity
	m.host.DestroyGhost()
	m.setHealthBarVisible(false)
}

// ========================================
// 界面
// ========================================

func (m *StateMachine) setState(s State) {
	if m.state != s {
		m.logger.Debug().Stringer("from", m.state).Stringer("to", s).Msg("state changed")
	}
	m.state = s
	if s != StateScanning {
		m.failureReason = ""
	}

	m.visibility.Crosshair = s == StatePlaced || s == StateCapturing
	m.visibility.RespawnButton = s == StateCaptured
	m.emitVisibility()
	m.applyStatus()
}

// SetTrackingLost 宿主报告跟踪丢失/恢复
// 丢失期间状态栏显示提示，恢复后还原当前状态的文本
func (m *StateMachine) SetTrackingLost(lost bool) {
	if m.trackingLost == lost {
		return
	}
	m.trackingLost = lost
	m.logger.Debug().Bool("lost", lost).Msg("tracking state changed")
	m.applyStatus()
}

func (m *StateMachine) applyStatus() {
	var st StatusTextEvent
	switch {
	case m.trackingLost:
		st = StatusTextEvent{Kind: StatusTrackingLost, Text: textTrackingLost}
	case m.state == StateScanning && m.failureReason != "":
		st = StatusTextEvent{Kind: StatusPlacementFailed, Text: textLoadFailed + m.failureReason, Hint: hintScanning}
	case m.state == StateScanning:
		st = StatusTextEvent{Kind: StatusScanning, Text: textScanning, Hint: hintScanning}
	case m.state == StateCaptured:
		st = StatusTextEvent{Kind: StatusGhostCaptured, Text: textGhostCaptured}
	default:
		st = StatusTextEvent{Kind: StatusGhostAppeared, Text: textGhostAppeared}
	}

	if m.statusSent && st == m.status {
		return
	}
	m.status = st
	m.statusSent = true
	m.host.SetStatus(st)
}

func (m *StateMachine) setHealthBarVisible(visible bool) {
	if m.hasGhost() {
		bar, _ := ecs.GetComponent[*components.HealthBarComponent](m.entityManager, m.ghostID)
		bar.Visible = visible
	}
	m.visibility.HealthBar = visible
	m.emitVisibility()
}

func (m *StateMachine) setPlaneVisuals(visible bool) {
	m.visibility.PlaneVisuals = visible
	m.emitVisibility()
}

func (m *StateMachine) emitVisibility() {
	if m.visibilitySent && m.visibility == m.sentVisibility {
		return
	}
	m.visibilitySent = true
	m.sentVisibility = m.visibility
	m.host.SetVisibility(m.visibility)
}

func (m *StateMachine) emitBeam() {
	b, _ := ecs.GetComponent[*components.BeamComponent](m.entityManager, m.beamID)
	if !b.Active || !b.GeometryValid {
		return
	}
	m.host.UpdateBeam(BeamUpdate{
		Active: true,
		Origin: b.Origin,
		End:    b.End,
		Radius: b.Radius,
	})
}

func (m *StateMachine) emitTransforms() {
	tr, _ := ecs.GetComponent[*components.TransformComponent](m.entityManager, m.ghostID)
	m.host.UpdateEntityTransform(EntityTransformUpdate{
		Part:      PartGhost,
		Position:  tr.Position,
		RotationY: tr.RotationY,
		Scale:     vmath.V3(tr.Scale, tr.Scale, tr.Scale),
		Alpha:     tr.Alpha,
	})

	bar, _ := ecs.GetComponent[*components.HealthBarComponent](m.entityManager, m.ghostID)
	if !bar.Visible {
		return
	}

	// 血条作为幽灵的子物体随其缩放，但朝向只跟随相机
	p := m.cfg.HealthBar
	s := tr.Scale
	anchor := tr.Position.Add(vmath.V3(0, p.YOffset*s, 0))
	m.host.UpdateEntityTransform(EntityTransformUpdate{
		Part:      PartHealthBarBackground,
		Position:  anchor,
		RotationY: bar.Yaw,
		Scale:     vmath.V3(p.Width*s, p.Height*s, p.Depth*s),
		Alpha:     healthBarBackgroundColor.A,
		Color:     healthBarBackgroundColor,
	})
	m.host.UpdateEntityTransform(EntityTransformUpdate{
		Part:      PartHealthBarFill,
		Position:  anchor.Add(vmath.YawRight(bar.Yaw).Scale(bar.FillOffsetX * s)),
		RotationY: bar.Yaw,
		Scale:     vmath.V3(bar.FillScaleX*s, p.Height*1.2*s, p.Depth*1.1*s),
		Alpha:     bar.Color.A,
		Color:     bar.Color,
	})
}

// ========================================
// 实体访问
// ========================================

func (m *StateMachine) hasGhost() bool {
	return m.ghostID != ecs.InvalidEntity
}

func (m *StateMachine) ghost() *components.GhostComponent {
	g, _ := ecs.GetComponent[*components.GhostComponent](m.entityManager, m.ghostID)
	return g
}

func (m *StateMachine) health() *components.HealthComponent {
	h, _ := ecs.GetComponent[*components.HealthComponent](m.entityManager, m.ghostID)
	return h
}

func (m *StateMachine) ghostAlive() bool {
	return m.hasGhost() && m.ghost().Alive() && m.health().Health > 0
}
