package components

import (
	"image/color"

	"github.com/decker502/tapreward/internal/particle"
	"github.com/decker502/tapreward/pkg/render"
)

// ParticleComponent 彩纸粒子的运行时状态
//
// 位置保存在 PositionComponent 中，由 ParticleBurstSystem 每帧推进。
// 纯数据组件，不包含方法。
type ParticleComponent struct {
	// Velocity (速度, 像素/秒)
	VelocityX float64
	VelocityY float64

	// Rotation (旋转, 角度)
	Rotation        float64
	AngularVelocity float64 // 度/秒

	// Scale 当前缩放，TargetScale 为弹出动画的终点
	Scale       float64
	TargetScale float64

	// Alpha 透明度, 0-1
	Alpha float64

	Tint color.RGBA

	// Lifecycle (生命周期, 秒)
	SpawnTime float64 // 生成时刻（系统时钟）
	Age       float64
	Lifetime  float64

	// 曲线的时间轴为 Age
	ScaleCurve particle.Curve
	AlphaCurve particle.Curve

	// Sprite 挂载到渲染表面的节点
	Sprite *render.Sprite
}
