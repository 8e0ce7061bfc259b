package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/ghosthustlers/pkg/gameplay"
)

// DefaultGameplayConfigPath 默认玩法配置文件位置
const DefaultGameplayConfigPath = "data/gameplay.yaml"

// GameplayConfig 玩法调参配置
//
// 所有数值与三个原生客户端保持一致，缺省字段使用 DefaultGameplayConfig 的值。
//
// 配置文件位置: data/gameplay.yaml
type GameplayConfig struct {
	Placement gameplay.PlacementParams `yaml:"placement"`
	Hover     gameplay.HoverParams     `yaml:"hover"`
	Aim       gameplay.AimParams       `yaml:"aim"`
	Damage    gameplay.DamageParams    `yaml:"damage"`
	HealthBar gameplay.HealthBarParams `yaml:"healthBar"`
	Capture   gameplay.CaptureParams   `yaml:"capture"`
	Beam      gameplay.BeamParams      `yaml:"beam"`
	Ghost     GhostConfig              `yaml:"ghost"`
}

// GhostConfig 幽灵生成时的视觉倍率
type GhostConfig struct {
	Scale float64 `yaml:"scale"`
	Alpha float64 `yaml:"alpha"`
}

// DefaultGameplayConfig 返回内置默认配置
func DefaultGameplayConfig() *GameplayConfig {
	return &GameplayConfig{
		Placement: gameplay.DefaultPlacementParams(),
		Hover:     gameplay.DefaultHoverParams(),
		Aim:       gameplay.DefaultAimParams(),
		Damage:    gameplay.DefaultDamageParams(),
		HealthBar: gameplay.DefaultHealthBarParams(),
		Capture:   gameplay.DefaultCaptureParams(),
		Beam:      gameplay.DefaultBeamParams(),
		Ghost:     GhostConfig{Scale: 1, Alpha: 1},
	}
}

// LoadGameplayConfig 从 YAML 文件加载玩法配置
//
// 参数:
//   - path: 配置文件路径（如 "data/gameplay.yaml"）
//
// 返回:
//   - *GameplayConfig: 在默认值之上覆盖文件内容后的配置
//   - error: 读取、解析或校验失败
func LoadGameplayConfig(path string) (*GameplayConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gameplay config: %w", err)
	}
	return ParseGameplayConfig(data)
}

// ParseGameplayConfig 解析 YAML 内容（移动端直接传入嵌入的配置文本）
func ParseGameplayConfig(data []byte) (*GameplayConfig, error) {
	cfg := DefaultGameplayConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gameplay config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gameplay config: %w", err)
	}
	return cfg, nil
}

// Validate 校验配置
//
// 时长、周期、半径、尺寸必须为正；缩放/透明度必须在 (0, 1] 或为正。
func (c *GameplayConfig) Validate() error {
	var errs []error

	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", name, v))
		}
	}
	unit := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", name, v))
		}
	}

	positive("placement.minPlaneExtent", c.Placement.MinExtent)
	positive("placement.tapThreshold", c.Placement.TapThreshold)
	positive("hover.period", c.Hover.Period)
	positive("hover.rotationPeriod", c.Hover.RotationPeriod)
	if c.Hover.ShakeIntensity < 0 {
		errs = append(errs, fmt.Errorf("hover.shakeIntensity must be >= 0, got %v", c.Hover.ShakeIntensity))
	}
	positive("aim.hitRadius", c.Aim.HitRadius)
	positive("aim.maxDistance", c.Aim.MaxDistance)
	positive("aim.minDistance", c.Aim.MinDistance)
	positive("aim.beamMissLength", c.Aim.BeamMissLength)
	positive("damage.captureTime", c.Damage.CaptureTime)
	positive("healthBar.width", c.HealthBar.Width)
	unit("healthBar.alpha", c.HealthBar.Alpha)
	positive("capture.duration", c.Capture.Duration)
	if c.Capture.MinScale <= 0 || c.Capture.MinScale >= 1 {
		errs = append(errs, fmt.Errorf("capture.minScale must be within (0, 1), got %v", c.Capture.MinScale))
	}
	positive("beam.baseRadius", c.Beam.BaseRadius)
	if c.Beam.PulseAmplitude >= c.Beam.BaseRadius {
		errs = append(errs, fmt.Errorf("beam.pulseAmplitude (%v) must be smaller than beam.baseRadius (%v)",
			c.Beam.PulseAmplitude, c.Beam.BaseRadius))
	}
	positive("ghost.scale", c.Ghost.Scale)
	unit("ghost.alpha", c.Ghost.Alpha)

	return errors.Join(errs...)
}
