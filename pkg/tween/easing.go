// Package tween 提供由主循环驱动的补间与定时器
package tween

import "math"

// EaseFunc 缓动函数，输入进度 t ∈ [0, 1]
type EaseFunc func(t float64) float64

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EaseLinear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（推荐用于"飞向目标"动画）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseOutBack 回弹缓出
// 特点：略微冲过终点再回落（宝箱弹开）
// 公式：f(t) = 1 + c3(t-1)³ + c1(t-1)²，c1 = 1.70158，c3 = c1 + 1
func EaseOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	u := t - 1
	return 1 + c3*u*u*u + c1*u*u
}

// EaseInBack 回弹缓入，EaseOutBack 的逆过程
func EaseInBack(t float64) float64 {
	return 1 - EaseOutBack(1-t)
}

// Yoyo 把缓动函数变成往返：前半段 0→1，后半段 1→0
func Yoyo(ease EaseFunc) EaseFunc {
	if ease == nil {
		ease = EaseLinear
	}
	return func(t float64) float64 {
		if t < 0.5 {
			return ease(t * 2)
		}
		return ease((1 - t) * 2)
	}
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
