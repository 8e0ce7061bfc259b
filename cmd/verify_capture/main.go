// verify_capture 无界面地跑一遍完整的捉鬼流程并校验捕获时长
//
// 用固定的 deltaTime 持续瞄准幽灵，记录每次状态切换；
// 生命值耗尽时刻或捕获动画时长偏离配置超过容差时以非零状态退出。
//
// 用法:
//
//	go run ./cmd/verify_capture --dt 0.016 --verbose
package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/gonewx/ghosthustlers"
	"github.com/gonewx/ghosthustlers/internal/cli"
	"github.com/gonewx/ghosthustlers/pkg/components"
	"github.com/gonewx/ghosthustlers/pkg/config"
	"github.com/gonewx/ghosthustlers/pkg/game"
	"github.com/gonewx/ghosthustlers/pkg/gameplay"
	"github.com/gonewx/ghosthustlers/pkg/logging"
	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

// scenario 一次校验运行的参数
type scenario struct {
	Gameplay  *config.GameplayConfig
	DeltaTime float64
	Timeout   float64
}

// transition 一次状态切换
type transition struct {
	At   float64
	From game.State
	To   game.State
}

// report 运行结果，时间均相对扳机按下
type report struct {
	DepletedAt  float64
	CapturedAt  float64
	Transitions []transition

	ExpectedDepletion float64
	ExpectedTeardown  float64
}

// errTimeout 超时仍未捕获
var errTimeout = errors.New("capture did not complete before timeout")

// check 校验时长偏差
func (r report) check(tolerance float64) error {
	var errs []error
	if d := math.Abs(r.DepletedAt - r.ExpectedDepletion); d > tolerance {
		errs = append(errs, fmt.Errorf("health depleted at %.4fs, expected %.4fs (off by %.4fs)",
			r.DepletedAt, r.ExpectedDepletion, d))
	}
	teardown := r.CapturedAt - r.DepletedAt
	if d := math.Abs(teardown - r.ExpectedTeardown); d > tolerance {
		errs = append(errs, fmt.Errorf("capture animation took %.4fs, expected %.4fs (off by %.4fs)",
			teardown, r.ExpectedTeardown, d))
	}
	return errors.Join(errs...)
}

// runScenario 放置 → 按住扳机持续命中 → 等待捕获完成
func runScenario(s scenario, logger zerolog.Logger) (report, error) {
	rep := report{
		ExpectedDepletion: s.Gameplay.Damage.CaptureTime,
		ExpectedTeardown:  s.Gameplay.Capture.Duration,
	}

	floor := gameplay.PlaneCandidate{
		ID:        "floor",
		Alignment: gameplay.AlignmentHorizontal,
		Center:    vmath.V3(0, 0, -1),
		Rotation:  vmath.IdentityQuat,
		ExtentX:   1,
		ExtentZ:   1,
		Tracking:  true,
	}
	camera := gameplay.CameraPose{Position: vmath.Zero, Forward: vmath.V3(0, 0, -1)}

	rec := game.NewRecorder()
	rec.Planes = []gameplay.PlaneCandidate{floor}
	machine, err := game.NewStateMachine(rec, game.Options{Config: s.Gameplay, Logger: &logger})
	if err != nil {
		return rep, err
	}

	machine.HandlePlaneEvent(gameplay.PlaneEvent{Added: []gameplay.PlaneCandidate{floor}})
	machine.Tick(0, camera)
	if machine.State() != game.StatePlaced {
		return rep, fmt.Errorf("ghost not placed, state %s", machine.State())
	}

	machine.HandleInput(game.InputEvent{Kind: game.InputPressDown})

	elapsed := 0.0
	prev := machine.State()
	depleted := false
	for elapsed < s.Timeout {
		machine.Tick(s.DeltaTime, camera)
		elapsed += s.DeltaTime

		if st := machine.State(); st != prev {
			rep.Transitions = append(rep.Transitions, transition{At: elapsed, From: prev, To: st})
			logger.Info().Float64("t", elapsed).Stringer("from", prev).Stringer("to", st).Msg("state transition")
			prev = st
		}

		snap := machine.Snapshot()
		if !depleted && snap.HasGhost && snap.Lifecycle == components.LifecycleCapturing {
			depleted = true
			rep.DepletedAt = elapsed
			logger.Info().Float64("t", elapsed).Msg("health depleted")
		}
		if prev == game.StateCaptured {
			rep.CapturedAt = elapsed
			return rep, nil
		}
	}
	return rep, fmt.Errorf("%w (%.1fs)", errTimeout, s.Timeout)
}

func main() {
	fs := cli.NewFlagSet("verify_capture")
	fs.Float64("dt", 1.0/60.0, "fixed frame delta in seconds")
	fs.Float64("timeout", 30, "simulated seconds before giving up")
	fs.Float64("tolerance", 0, "allowed timing deviation in seconds (0 = one frame)")
	fs.Float64("capture-time", 0, "override damage.captureTime (0 = keep config)")

	v, err := cli.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.New(logging.Options{Verbose: v.GetBool(cli.KeyVerbose), Pretty: true})
	// 本工具的输出就是切换记录，至少保留 Info
	if !v.GetBool(cli.KeyVerbose) {
		logger = logger.Level(zerolog.InfoLevel)
	}

	var gameplayCfg *config.GameplayConfig
	if path := v.GetString(cli.KeyGameplay); path != "" {
		gameplayCfg, err = config.LoadGameplayConfig(path)
	} else {
		gameplayCfg, err = ghosthustlers.LoadEmbeddedGameplayConfig()
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load gameplay config")
	}
	if ct := v.GetFloat64("capture-time"); ct > 0 {
		gameplayCfg.Damage.CaptureTime = ct
	}

	dt := v.GetFloat64("dt")
	if dt <= 0 {
		logger.Fatal().Float64("dt", dt).Msg("dt must be positive")
	}
	tolerance := v.GetFloat64("tolerance")
	if tolerance <= 0 {
		tolerance = dt
	}

	rep, err := runScenario(scenario{
		Gameplay:  gameplayCfg,
		DeltaTime: dt,
		Timeout:   v.GetFloat64("timeout"),
	}, logger)
	if err != nil {
		logger.Error().Err(err).Msg("scenario failed")
		os.Exit(1)
	}

	if err := rep.check(tolerance); err != nil {
		logger.Error().Err(err).Msg("capture timing deviates from config")
		os.Exit(1)
	}
	logger.Info().
		Float64("depleted_at", rep.DepletedAt).
		Float64("captured_at", rep.CapturedAt).
		Msg("capture timing OK")
}
