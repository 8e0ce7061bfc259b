package gameplay

import "math"

// DamageParams 伤害参数
type DamageParams struct {
	// CaptureTime 从满血到捕获所需的持续命中时间（秒）
	CaptureTime float64 `yaml:"captureTime"`
}

// DefaultDamageParams 默认 4 秒捕获
func DefaultDamageParams() DamageParams {
	return DamageParams{CaptureTime: 4}
}

// ApplyDamage 积分一帧命中时间
// 未命中时生命值不变（不回血）；结果不小于 0
func ApplyDamage(health float64, isHit bool, deltaTime, captureTime float64) float64 {
	if !isHit {
		return health
	}
	return math.Max(0, health-deltaTime/captureTime)
}

// Apply 使用参数中的捕获时间积分一帧
func (p DamageParams) Apply(health float64, isHit bool, deltaTime float64) float64 {
	return ApplyDamage(health, isHit, deltaTime, p.CaptureTime)
}

// IsDepleted 生命值是否已归零（钳制后精确等于 0）
func IsDepleted(health float64) bool {
	return health == 0
}
