// Package gameplay 包含捉鬼玩法的全部纯计算逻辑
//
// 本包不持有任何宿主（AR 会话、渲染、UI）对象，也不读取时钟：
// 所有函数只依赖调用方传入的参数和累计的 deltaTime，
// 因此同一组输入总会得到同一组输出（抖动噪声除外，见 ShakeJitter）。
//
// 组件划分：
//   - PlacementSelector: 平面/射线候选 → 放置位姿
//   - HoverParams: 悬浮与自转动画
//   - AimParams: 相机与目标之间的角度命中检测
//   - DamageParams: 命中时间积分为生命值
//   - HealthBarParams: 生命值 → 血条填充与颜色
//   - CaptureParams: 捕获时的缩小淡出动画
//   - BeamParams: 光束脉冲半径
package gameplay
