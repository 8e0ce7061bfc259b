package gameplay

import "github.com/gonewx/ghosthustlers/pkg/vmath"

// CaptureParams 捕获动画参数
type CaptureParams struct {
	Duration float64 `yaml:"duration"` // 缩小淡出总时长（秒）
	MinScale float64 `yaml:"minScale"` // 结束时相对初始缩放的比例，避免零缩放
}

// DefaultCaptureParams 0.5 秒缩小到 1%
func DefaultCaptureParams() CaptureParams {
	return CaptureParams{
		Duration: 0.5,
		MinScale: 0.01,
	}
}

// CaptureView 捕获动画的单帧结果
type CaptureView struct {
	Scale float64
	Alpha float64
	Done  bool
}

// Frame 计算已播放 elapsed 秒时的缩放与透明度
func (p CaptureParams) Frame(elapsed, scale0, alpha0 float64) CaptureView {
	t := vmath.Clamp01(elapsed / p.Duration)
	return CaptureView{
		Scale: scale0 * (1 - t*(1-p.MinScale)),
		Alpha: alpha0 * (1 - t),
		Done:  t >= 1,
	}
}
