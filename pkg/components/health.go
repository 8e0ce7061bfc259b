package components

// HealthComponent 幽灵生命值
// Health ∈ [0, 1]，生成时为 1.0，只减不增（重生时随实体一起重建）
type HealthComponent struct {
	Health float64
}
