package mobile

// Listener 由原生宿主（Swift / Kotlin）实现的回调接口
//
// 只使用 gomobile 可绑定的类型。所有回调都在调用 Session 方法的线程上同步触发，
// 回调内不得再调用同一个 Session 的方法（会死锁）。
type Listener interface {
	// SpawnGhost 在世界坐标位姿处实例化幽灵模型；返回错误表示模型加载失败
	SpawnGhost(x, y, z, qx, qy, qz, qw float64) error
	// DestroyGhost 移除幽灵模型及其血条
	DestroyGhost()

	// Raycast 从屏幕点向已检测平面发射射线，未命中返回 nil
	Raycast(x, y float64) *RaycastHit

	// UpdateTransform 更新幽灵（part="ghost"）或血条子物体
	// （"health_bar_bg" / "health_bar_fill"）的世界变换
	UpdateTransform(part string, x, y, z, rotationY, scaleX, scaleY, scaleZ, alpha, r, g, b, a float64)
	// UpdateBeam active 为 false 时隐藏光束，其余参数无意义
	UpdateBeam(active bool, originX, originY, originZ, endX, endY, endZ, radius float64)
	// SetVisibility 界面元素可见性
	SetVisibility(healthBar, planeVisuals, crosshair, respawnButton bool)
	// SetStatus 状态栏文本；kind 为 scanning / ghost_appeared / ghost_captured /
	// placement_failed / tracking_lost，hint 为空表示隐藏提示
	SetStatus(kind, text, hint string)
}

// RaycastHit 射线命中平面的位姿
type RaycastHit struct {
	X, Y, Z        float64
	QX, QY, QZ, QW float64
}

// NewRaycastHit 创建命中结果（供原生侧调用）
func NewRaycastHit(x, y, z, qx, qy, qz, qw float64) *RaycastHit {
	return &RaycastHit{X: x, Y: y, Z: z, QX: qx, QY: qy, QZ: qz, QW: qw}
}
