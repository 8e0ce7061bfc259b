// Package app 提供桌面预览宿主
//
// 在没有 AR 设备时用 Ebitengine 窗口模拟宿主：一个合成的水平面延迟出现并逐渐长大，
// 键盘移动相机，鼠标左键作为扳机/点击放置。渲染为俯视图。
// cmd/ghost_preview 通过 NewApp() 启动。
package app

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"github.com/gonewx/ghosthustlers"
	"github.com/gonewx/ghosthustlers/pkg/config"
	"github.com/gonewx/ghosthustlers/pkg/game"
	"github.com/gonewx/ghosthustlers/pkg/gameplay"
	"github.com/gonewx/ghosthustlers/pkg/logging"
	"github.com/gonewx/ghosthustlers/pkg/telemetry"
	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

// 窗口逻辑尺寸
const (
	ScreenWidth  = 800
	ScreenHeight = 600
)

const (
	tickDelta     = 1.0 / 60.0
	moveSpeed     = 1.5 // 米/秒
	turnSpeed     = 1.5 // 弧度/秒
	ghostRadius   = 0.15
	planeStartExt = 0.1
)

// Config 定义预览启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// GameplayConfigPath 玩法配置文件，为空时使用内置配置
	GameplayConfigPath string
	// PlaneDelay 合成平面出现前的秒数
	PlaneDelay float64
	// PlaneGrowTime 平面从很小长到完整尺寸的秒数
	PlaneGrowTime float64
	// PlaneExtent 平面最终边长（米）
	PlaneExtent float64
	// CameraHeight 相机离地高度（米）
	CameraHeight float64
}

// DefaultConfig 默认预览配置
func DefaultConfig() Config {
	return Config{
		PlaneDelay:    1.5,
		PlaneGrowTime: 1.0,
		PlaneExtent:   1.2,
		CameraHeight:  1.4,
	}
}

// App 预览应用，实现 ebiten.Game 接口
type App struct {
	cfg     Config
	logger  zerolog.Logger
	host    *PreviewHost
	machine *game.StateMachine
	camera  FlyCamera
	view    TopDownView

	clock        float64
	planeExtent  float64
	trackingLost bool

	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp 创建预览应用
func NewApp(cfg Config) (*App, error) {
	logger := logging.New(logging.Options{Verbose: cfg.Verbose, Pretty: true})

	var (
		gameplayCfg *config.GameplayConfig
		err         error
	)
	if cfg.GameplayConfigPath != "" {
		gameplayCfg, err = config.LoadGameplayConfig(cfg.GameplayConfigPath)
	} else {
		gameplayCfg, err = ghosthustlers.LoadEmbeddedGameplayConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load gameplay config: %w", err)
	}

	metrics, err := telemetry.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to init metrics: %w", err)
	}

	view := TopDownView{
		CenterX:        ScreenWidth / 2,
		CenterY:        ScreenHeight / 2,
		PixelsPerMeter: 150,
	}
	plane := gameplay.PlaneCandidate{
		ID:        "preview-floor",
		Alignment: gameplay.AlignmentHorizontal,
		Center:    vmath.V3(0, 0, -0.5),
		Rotation:  vmath.IdentityQuat,
		ExtentX:   planeStartExt,
		ExtentZ:   planeStartExt,
		Tracking:  true,
	}
	host := NewPreviewHost(view, plane)

	machine, err := game.NewStateMachine(host, game.Options{
		Config:  gameplayCfg,
		Logger:  &logger,
		Metrics: metrics,
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:         cfg,
		logger:      logging.Component(logger, "App"),
		host:        host,
		machine:     machine,
		view:        view,
		planeExtent: planeStartExt,
		camera:      FlyCamera{Position: vmath.V3(0, cfg.CameraHeight, 1.5)},
	}
	a.camera.LookAt(plane.Center)
	a.logger.Info().Float64("plane_delay", cfg.PlaneDelay).Msg("preview started")
	return a, nil
}

// Machine 返回状态机（测试和调试用）
func (a *App) Machine() *game.StateMachine {
	return a.machine
}

// Host 返回预览宿主
func (a *App) Host() *PreviewHost {
	return a.host
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	a.handleWindowKeys()
	a.handleCameraKeys()
	a.handleGameKeys()
	a.handleMouse()
	a.Step(tickDelta)
	return nil
}

// Step 推进合成平面和状态机，不读取任何输入
func (a *App) Step(deltaTime float64) {
	a.clock += deltaTime
	a.advancePlane()
	a.machine.Tick(deltaTime, a.camera.Pose())
}

// advancePlane 平面延迟出现后逐渐长大，每次变化都作为平面事件推送
func (a *App) advancePlane() {
	if a.clock < a.cfg.PlaneDelay {
		return
	}

	if !a.host.Revealed {
		a.host.Revealed = true
		a.logger.Info().Msg("synthetic plane detected")
		a.machine.HandlePlaneEvent(gameplay.PlaneEvent{Added: []gameplay.PlaneCandidate{a.host.Plane}})
		return
	}

	if a.planeExtent >= a.cfg.PlaneExtent {
		return
	}
	grow := 1.0
	if a.cfg.PlaneGrowTime > 0 {
		grow = vmath.Clamp01((a.clock - a.cfg.PlaneDelay) / a.cfg.PlaneGrowTime)
	}
	a.planeExtent = planeStartExt + (a.cfg.PlaneExtent-planeStartExt)*grow
	a.host.Plane.ExtentX = a.planeExtent
	a.host.Plane.ExtentZ = a.planeExtent
	a.machine.HandlePlaneEvent(gameplay.PlaneEvent{Updated: []gameplay.PlaneCandidate{a.host.Plane}})
}

func (a *App) handleWindowKeys() {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}
}

func (a *App) handleCameraKeys() {
	var forward, right, yaw, pitch float64
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		forward++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		forward--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		right++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		right--
	}
	// 俯视图中航向角增大为逆时针
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		yaw++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		yaw--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		pitch++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		pitch--
	}

	a.camera.Move(forward*moveSpeed*tickDelta, right*moveSpeed*tickDelta)
	a.camera.Turn(yaw*turnSpeed*tickDelta, pitch*turnSpeed*tickDelta)
}

func (a *App) handleGameKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := a.machine.Respawn(); err != nil {
			a.logger.Warn().Err(err).Msg("respawn failed")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		a.trackingLost = !a.trackingLost
		a.machine.SetTrackingLost(a.trackingLost)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		a.host.FailSpawn = !a.host.FailSpawn
		a.logger.Info().Bool("fail_spawn", a.host.FailSpawn).Msg("spawn failure simulation toggled")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) && a.host.GhostSpawned {
		if t, ok := a.host.Transforms[game.PartGhost]; ok {
			a.camera.LookAt(t.Position)
		}
	}
}

func (a *App) handleMouse() {
	x, y := ebiten.CursorPosition()
	point := game.ScreenPoint{X: float64(x), Y: float64(y)}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		a.machine.HandleInput(game.InputEvent{Kind: game.InputPressDown, ScreenPoint: point, Timestamp: a.clock})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		a.machine.HandleInput(game.InputEvent{Kind: game.InputRelease, ScreenPoint: point, Timestamp: a.clock})
	}
}

// ========================================
// 绘制
// ========================================

var (
	backgroundColor = color.NRGBA{R: 24, G: 24, B: 32, A: 255}
	planeColor      = color.NRGBA{R: 80, G: 200, B: 220, A: 90}
	ghostColor      = color.NRGBA{R: 235, G: 235, B: 255, A: 255}
	beamColor       = color.NRGBA{R: 120, G: 255, B: 120, A: 220}
	cameraColor     = color.NRGBA{R: 255, G: 200, B: 80, A: 255}
)

// Draw 绘制俯视图和状态文本
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	a.drawPlane(screen)
	a.drawGhost(screen)
	a.drawBeam(screen)
	a.drawCamera(screen)
	a.drawOverlay(screen)
}

func (a *App) drawPlane(screen *ebiten.Image) {
	if !a.host.Revealed || !a.host.Visibility.PlaneVisuals {
		return
	}
	p := a.host.Plane
	x, y := a.view.ToScreen(p.Center.Sub(vmath.V3(p.ExtentX/2, 0, p.ExtentZ/2)))
	ppm := a.view.PixelsPerMeter
	vector.DrawFilledRect(screen, float32(x), float32(y),
		float32(p.ExtentX*ppm), float32(p.ExtentZ*ppm), planeColor, false)
}

func (a *App) drawGhost(screen *ebiten.Image) {
	t, ok := a.host.Transforms[game.PartGhost]
	if !ok {
		return
	}
	ppm := a.view.PixelsPerMeter
	x, y := a.view.ToScreen(t.Position)

	c := ghostColor
	c.A = uint8(vmath.Clamp01(t.Alpha) * 255)
	r := float32(ghostRadius * t.Scale.X * ppm)
	vector.DrawFilledCircle(screen, float32(x), float32(y), r, c, true)

	// 自转朝向
	fx, fy := a.view.ToScreen(t.Position.Add(vmath.YawForward(t.RotationY).Scale(ghostRadius * t.Scale.X)))
	vector.StrokeLine(screen, float32(x), float32(y), float32(fx), float32(fy), 2, backgroundColor, true)

	if !a.host.Visibility.HealthBar {
		return
	}
	bg, okBg := a.host.Transforms[game.PartHealthBarBackground]
	fill, okFill := a.host.Transforms[game.PartHealthBarFill]
	if !okBg || !okFill {
		return
	}

	// 俯视图里血条画成屏幕对齐的横条
	const barPixels = 60.0
	ratio := 0.0
	if bg.Scale.X > 0 {
		ratio = fill.Scale.X / bg.Scale.X
	}
	bx := float32(x - barPixels/2)
	by := float32(y) - r - 12
	vector.DrawFilledRect(screen, bx, by, barPixels, 6, toColor(bg.Color), false)
	vector.DrawFilledRect(screen, bx, by, float32(barPixels*ratio), 6, toColor(fill.Color), false)
}

func (a *App) drawBeam(screen *ebiten.Image) {
	b := a.host.Beam
	if !b.Active {
		return
	}
	x0, y0 := a.view.ToScreen(b.Origin)
	x1, y1 := a.view.ToScreen(b.End)
	width := float32(math.Max(1, b.Radius*2*a.view.PixelsPerMeter))
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), width, beamColor, true)
}

func (a *App) drawCamera(screen *ebiten.Image) {
	x, y := a.view.ToScreen(a.camera.Position)
	fx, fy := a.view.ToScreen(a.camera.Position.Add(vmath.YawForward(a.camera.Yaw).Scale(0.3)))
	vector.DrawFilledCircle(screen, float32(x), float32(y), 6, cameraColor, true)
	vector.StrokeLine(screen, float32(x), float32(y), float32(fx), float32(fy), 2, cameraColor, true)
}

func (a *App) drawOverlay(screen *ebiten.Image) {
	st := a.host.Status
	ebitenutil.DebugPrintAt(screen, st.Text, 10, 10)
	if st.Hint != "" {
		ebitenutil.DebugPrintAt(screen, st.Hint, 10, ScreenHeight-30)
	}

	snap := a.machine.Snapshot()
	info := fmt.Sprintf("state: %s  health: %.2f  pitch: %.2f", snap.State, snap.Health, a.camera.Pitch)
	ebitenutil.DebugPrintAt(screen, info, 10, 30)

	if a.host.Visibility.Crosshair {
		ebitenutil.DebugPrintAt(screen, "+", ScreenWidth/2-3, ScreenHeight/2-8)
	}
	if a.host.Visibility.RespawnButton {
		ebitenutil.DebugPrintAt(screen, "[R] Respawn", ScreenWidth-100, ScreenHeight-30)
	}
	ebitenutil.DebugPrintAt(screen,
		"WASD move  arrows turn/pitch  LMB fire/tap  F face ghost  T tracking  X fail spawn",
		10, 50)
}

func toColor(c gameplay.RGBA) color.NRGBA {
	return color.NRGBA{
		R: uint8(vmath.Clamp01(c.R) * 255),
		G: uint8(vmath.Clamp01(c.G) * 255),
		B: uint8(vmath.Clamp01(c.B) * 255),
		A: uint8(vmath.Clamp01(c.A) * 255),
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
