package gameplay

import "math"

// MinBeamLength 光束端点距离小于此值时跳过几何更新
const MinBeamLength = 0.001

// BeamParams 光束视觉参数
type BeamParams struct {
	BaseRadius     float64 `yaml:"baseRadius"`
	PulseFrequency float64 `yaml:"pulseFrequency"` // Hz
	PulseAmplitude float64 `yaml:"pulseAmplitude"`
}

// DefaultBeamParams 默认光束参数
func DefaultBeamParams() BeamParams {
	return BeamParams{
		BaseRadius:     0.02,
		PulseFrequency: 6,
		PulseAmplitude: 0.005,
	}
}

// Radius 脉冲中的光束半径
func (p BeamParams) Radius(pulseElapsed float64) float64 {
	return p.BaseRadius + p.PulseAmplitude*math.Sin(pulseElapsed*2*math.Pi*p.PulseFrequency)
}
