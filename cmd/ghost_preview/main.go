// ghost_preview 在桌面窗口中预览捉鬼玩法
//
// 用法:
//
//	go run ./cmd/ghost_preview --plane-delay 2 --verbose
//
// 所有参数也可以通过 GHOST_ 前缀的环境变量或 --config 设置文件提供。
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"github.com/gonewx/ghosthustlers/internal/cli"
	"github.com/gonewx/ghosthustlers/pkg/app"
)

func main() {
	defaults := app.DefaultConfig()

	fs := cli.NewFlagSet("ghost_preview")
	fs.Float64("plane-delay", defaults.PlaneDelay, "seconds before the synthetic plane is detected")
	fs.Float64("plane-grow-time", defaults.PlaneGrowTime, "seconds for the plane to reach its full size")
	fs.Float64("plane-extent", defaults.PlaneExtent, "final plane edge length in meters")
	fs.Float64("camera-height", defaults.CameraHeight, "camera height above the floor in meters")

	v, err := cli.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg := app.Config{
		Verbose:            v.GetBool(cli.KeyVerbose),
		GameplayConfigPath: v.GetString(cli.KeyGameplay),
		PlaneDelay:         v.GetFloat64("plane-delay"),
		PlaneGrowTime:      v.GetFloat64("plane-grow-time"),
		PlaneExtent:        v.GetFloat64("plane-extent"),
		CameraHeight:       v.GetFloat64("camera-height"),
	}

	previewApp, err := app.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "preview init failed: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowTitle("Ghost Hustlers - preview")
	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(previewApp); err != nil {
		fmt.Fprintf(os.Stderr, "preview exited: %v\n", err)
		os.Exit(1)
	}
}
