package components

// CaptureAnimationComponent 捕获时的缩小淡出动画
// 动画完成后 Done 置为 true，由状态机轮询并销毁实体
type CaptureAnimationComponent struct {
	Elapsed    float64
	StartScale float64
	StartAlpha float64
	Done       bool
}
