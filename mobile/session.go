// Package mobile 提供 gomobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包，
// 原生客户端负责 AR 会话、平面检测和渲染，通过 Session 驱动玩法核心。
// 导出的 API 只使用 gomobile 可绑定的类型。
//
// 构建：
//
//	# Android
//	gomobile bind -target android -androidapi 23 -javapkg com.gonewx.ghosthustlers -o build/android/ghosthustlers.aar ./mobile
//
//	# iOS (仅 macOS)
//	gomobile bind -target ios -o build/ios/GhostHustlers.xcframework ./mobile
package mobile

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gonewx/ghosthustlers"
	"github.com/gonewx/ghosthustlers/pkg/config"
	"github.com/gonewx/ghosthustlers/pkg/game"
	"github.com/gonewx/ghosthustlers/pkg/gameplay"
	"github.com/gonewx/ghosthustlers/pkg/logging"
	"github.com/gonewx/ghosthustlers/pkg/telemetry"
	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

// Session 一局捉鬼玩法
//
// 原生侧可能在不同线程上投递回调（ARSession 代理、触摸事件、渲染循环），
// 所有方法都通过互斥锁串行化后再交给状态机。
type Session struct {
	mu      sync.Mutex
	host    *listenerHost
	machine *game.StateMachine
	logger  zerolog.Logger
}

// NewSession 创建会话
//
// configYAML 为空时使用内置的 data/gameplay.yaml。
func NewSession(configYAML string, listener Listener) (*Session, error) {
	return newSession(configYAML, listener, false)
}

// NewVerboseSession 与 NewSession 相同，但输出 Debug 级别日志（调试构建用）
func NewVerboseSession(configYAML string, listener Listener) (*Session, error) {
	return newSession(configYAML, listener, true)
}

func newSession(configYAML string, listener Listener, verbose bool) (*Session, error) {
	if listener == nil {
		return nil, errors.New("listener is required")
	}

	var (
		cfg *config.GameplayConfig
		err error
	)
	if configYAML == "" {
		cfg, err = ghosthustlers.LoadEmbeddedGameplayConfig()
	} else {
		cfg, err = config.ParseGameplayConfig([]byte(configYAML))
	}
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Options{Verbose: verbose, Writer: os.Stderr})
	metrics, err := telemetry.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to init metrics: %w", err)
	}

	host := newListenerHost(listener)
	machine, err := game.NewStateMachine(host, game.Options{
		Config:  cfg,
		Logger:  &logger,
		Metrics: metrics,
	})
	if err != nil {
		return nil, err
	}

	return &Session{
		host:    host,
		machine: machine,
		logger:  logging.Component(logger, "Session"),
	}, nil
}

// AddPlane 跟踪器检测到新平面
// horizontal 为 false 表示竖直或倾斜平面（不会用于放置）
func (s *Session) AddPlane(id string, horizontal bool, cx, cy, cz, qx, qy, qz, qw, extentX, extentZ float64, tracking bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.storePlane(id, horizontal, cx, cy, cz, qx, qy, qz, qw, extentX, extentZ, tracking)
	s.machine.HandlePlaneEvent(gameplay.PlaneEvent{Added: []gameplay.PlaneCandidate{p}})
}

// UpdatePlane 已跟踪平面的尺寸或位姿变化
func (s *Session) UpdatePlane(id string, horizontal bool, cx, cy, cz, qx, qy, qz, qw, extentX, extentZ float64, tracking bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.storePlane(id, horizontal, cx, cy, cz, qx, qy, qz, qw, extentX, extentZ, tracking)
	s.machine.HandlePlaneEvent(gameplay.PlaneEvent{Updated: []gameplay.PlaneCandidate{p}})
}

// RemovePlane 平面被跟踪器合并或移除
func (s *Session) RemovePlane(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.host.planes, id)
}

func (s *Session) storePlane(id string, horizontal bool, cx, cy, cz, qx, qy, qz, qw, extentX, extentZ float64, tracking bool) gameplay.PlaneCandidate {
	alignment := gameplay.AlignmentOther
	if horizontal {
		alignment = gameplay.AlignmentHorizontal
	}
	p := gameplay.PlaneCandidate{
		ID:        id,
		Alignment: alignment,
		Center:    vmath.V3(cx, cy, cz),
		Rotation:  vmath.Quat{X: qx, Y: qy, Z: qz, W: qw},
		ExtentX:   extentX,
		ExtentZ:   extentZ,
		Tracking:  tracking,
	}
	s.host.planes[id] = p
	return p
}

// Tick 每帧调用一次
// deltaTime 为秒；相机位置与前向均为世界坐标
func (s *Session) Tick(deltaTime, camX, camY, camZ, fwdX, fwdY, fwdZ float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.machine.Tick(deltaTime, gameplay.CameraPose{
		Position: vmath.V3(camX, camY, camZ),
		Forward:  vmath.V3(fwdX, fwdY, fwdZ),
	})
}

// PressDown 手指按下；timestamp 为秒
func (s *Session) PressDown(x, y, timestamp float64) {
	s.input(game.InputPressDown, x, y, timestamp)
}

// Release 手指抬起或触摸被取消
func (s *Session) Release(x, y, timestamp float64) {
	s.input(game.InputRelease, x, y, timestamp)
}

func (s *Session) input(kind game.InputKind, x, y, timestamp float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.machine.HandleInput(game.InputEvent{
		Kind:        kind,
		ScreenPoint: game.ScreenPoint{X: x, Y: y},
		Timestamp:   timestamp,
	})
}

// Respawn 重生按钮
func (s *Session) Respawn() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.machine.Respawn(); err != nil {
		s.logger.Warn().Err(err).Msg("respawn placement failed")
		return err
	}
	return nil
}

// SetTrackingLost AR 跟踪状态变化
func (s *Session) SetTrackingLost(lost bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machine.SetTrackingLost(lost)
}

// StateName 当前状态：scanning / placed / capturing / captured
func (s *Session) StateName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State().String()
}

// Health 当前幽灵生命值；没有幽灵时为 0
func (s *Session) Health() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.machine.Snapshot()
	if !snap.HasGhost {
		return 0
	}
	return snap.Health
}

// EncounterID 当前幽灵的遭遇 ID（用于日志关联）；没有幽灵时为空
func (s *Session) EncounterID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.machine.Snapshot()
	if !snap.HasGhost {
		return ""
	}
	return snap.EncounterID.String()
}
