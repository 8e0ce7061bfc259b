package gameplay

import (
	"math"

	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

// AimParams 瞄准检测参数
type AimParams struct {
	HitRadius       float64 `yaml:"hitRadius"`       // 目标等效球半径
	MaxDistance     float64 `yaml:"maxDistance"`     // 超过此距离不算命中
	MinDistance     float64 `yaml:"minDistance"`     // 计算角阈值时的距离下限
	BeamStartOffset float64 `yaml:"beamStartOffset"` // 光束起点在相机前方的距离（越过近裁剪面）
	BeamMissLength  float64 `yaml:"beamMissLength"`  // 未命中时光束长度
}

// DefaultAimParams 默认瞄准参数
func DefaultAimParams() AimParams {
	return AimParams{
		HitRadius:       0.25,
		MaxDistance:     10,
		MinDistance:     0.1,
		BeamStartOffset: 0.3,
		BeamMissLength:  2,
	}
}

// AimResult 单帧瞄准结果
type AimResult struct {
	IsHit      bool
	BeamOrigin vmath.Vec3
	BeamEnd    vmath.Vec3
	Distance   float64
	AimAngle   float64
	Threshold  float64
}

// Aim 角度命中检测
//
// 不对模型网格做物理射线检测：目标被视为半径 HitRadius 的球，
// 当相机前向与目标方向的夹角小于该球在当前距离下的半张角时即为命中。
// cameraForward 需为单位向量。
func (p AimParams) Aim(cameraPos, cameraForward, target vmath.Vec3) AimResult {
	origin := cameraPos.Add(cameraForward.Scale(p.BeamStartOffset))

	toTarget := target.Sub(cameraPos)
	distance := toTarget.Len()
	direction := toTarget.Normalize()

	dot := vmath.Clamp(cameraForward.Dot(direction), -1, 1)
	// 距离下限，防止贴脸时阈值发散
	threshold := math.Atan2(p.HitRadius, math.Max(distance, p.MinDistance))
	angle := math.Acos(dot)

	res := AimResult{
		IsHit:      angle < threshold && distance < p.MaxDistance,
		BeamOrigin: origin,
		Distance:   distance,
		AimAngle:   angle,
		Threshold:  threshold,
	}
	if res.IsHit {
		res.BeamEnd = target
	} else {
		res.BeamEnd = origin.Add(cameraForward.Scale(p.BeamMissLength))
	}
	return res
}

// CameraPose 宿主每帧提供的相机位姿，Forward 为单位向量
type CameraPose struct {
	Position vmath.Vec3
	Forward  vmath.Vec3
}
