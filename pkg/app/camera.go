package app

import (
	"math"

	"github.com/gonewx/ghosthustlers/pkg/gameplay"
	"github.com/gonewx/ghosthustlers/pkg/vmath"
)

// 俯仰角范围（弧度），避免前向与竖直方向重合
const (
	minPitch = -1.4
	maxPitch = 1.4
)

// FlyCamera 模拟手持设备的相机：水平移动、转向、俯仰
type FlyCamera struct {
	Position vmath.Vec3
	Yaw      float64
	Pitch    float64
}

// Forward 单位前向向量
func (c *FlyCamera) Forward() vmath.Vec3 {
	sy, cy := math.Sincos(c.Yaw)
	sp, cp := math.Sincos(c.Pitch)
	return vmath.V3(sy*cp, sp, cy*cp)
}

// Pose 转换为状态机需要的相机位姿
func (c *FlyCamera) Pose() gameplay.CameraPose {
	return gameplay.CameraPose{Position: c.Position, Forward: c.Forward()}
}

// Move 沿水平前向/右向移动（米）
func (c *FlyCamera) Move(forward, right float64) {
	c.Position = c.Position.
		Add(vmath.YawForward(c.Yaw).Scale(forward)).
		Add(vmath.YawRight(c.Yaw).Scale(right))
}

// Turn 调整航向与俯仰（弧度）
func (c *FlyCamera) Turn(dYaw, dPitch float64) {
	c.Yaw = vmath.WrapAngle(c.Yaw + dYaw)
	c.Pitch = vmath.Clamp(c.Pitch+dPitch, minPitch, maxPitch)
}

// LookAt 朝向目标点
func (c *FlyCamera) LookAt(target vmath.Vec3) {
	d := target.Sub(c.Position)
	h := d.Horizontal().Len()
	if h == 0 && d.Y == 0 {
		return
	}
	c.Yaw = math.Atan2(d.X, d.Z)
	c.Pitch = vmath.Clamp(math.Atan2(d.Y, h), minPitch, maxPitch)
}
