package gameplay

import (
	"math"
	"math/rand/v2"

	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

// HoverParams 悬浮动画参数
type HoverParams struct {
	Amplitude      float64 `yaml:"amplitude"`      // 上下浮动幅度（米）
	Period         float64 `yaml:"period"`         // 浮动周期（秒）
	RotationPeriod float64 `yaml:"rotationPeriod"` // 自转一圈用时（秒）
	ShakeIntensity float64 `yaml:"shakeIntensity"` // 受击抖动幅度（米）
}

// DefaultHoverParams 默认悬浮参数：±5cm / 1.5s，8s 自转一圈，±1cm 抖动
func DefaultHoverParams() HoverParams {
	return HoverParams{
		Amplitude:      0.05,
		Period:         1.5,
		RotationPeriod: 8,
		ShakeIntensity: 0.01,
	}
}

// HoverOffset 相对基准位置的局部偏移
type HoverOffset struct {
	Offset    vmath.Vec3
	RotationY float64
}

// Hover 根据累计悬浮时长计算偏移
// X/Z 始终为 0，抖动由调用方按 IsShaking 叠加
func (p HoverParams) Hover(elapsed float64) HoverOffset {
	y := p.Amplitude * math.Sin(elapsed*2*math.Pi/p.Period)
	rot := vmath.WrapAngle(elapsed * 2 * math.Pi / p.RotationPeriod)
	return HoverOffset{
		Offset:    vmath.Vec3{Y: y},
		RotationY: rot,
	}
}

// JitterSource 抖动随机源，*rand.Rand 满足此接口
type JitterSource interface {
	Float64() float64
}

type globalJitter struct{}

func (globalJitter) Float64() float64 { return rand.Float64() }

// DefaultJitter 使用全局随机源（不设种子，每帧结果不同）
var DefaultJitter JitterSource = globalJitter{}

// ShakeJitter 生成受击抖动：X、Z 各自独立均匀分布于 [-ShakeIntensity, ShakeIntensity]
func (p HoverParams) ShakeJitter(src JitterSource) vmath.Vec3 {
	if src == nil {
		src = DefaultJitter
	}
	return vmath.Vec3{
		X: (src.Float64()*2 - 1) * p.ShakeIntensity,
		Z: (src.Float64()*2 - 1) * p.ShakeIntensity,
	}
}
