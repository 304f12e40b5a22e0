// Package particle provides keyframe curves and random helpers shared by
// the confetti burst.
package particle

import (
	"math"
	"math/rand"
)

// Interpolation 关键帧之间的插值方式
type Interpolation string

const (
	Linear  Interpolation = "Linear"
	EaseOut Interpolation = "EaseOut"
)

// Keyframe represents a single keyframe in an animation curve.
// Time is an absolute age in seconds.
type Keyframe struct {
	Time  float64
	Value float64
}

// Curve 一条按时间排序的关键帧曲线及其插值方式
type Curve struct {
	Keyframes     []Keyframe
	Interpolation Interpolation
}

// Sample 返回曲线在 age 秒时的值
func (c Curve) Sample(age float64) float64 {
	return EvaluateKeyframes(c.Keyframes, age, c.Interpolation)
}

// EvaluateKeyframes calculates the interpolated value at time t.
//
// Keyframes must be sorted by Time. Before the first keyframe the first
// value is held, after the last keyframe the last value is held.
func EvaluateKeyframes(keyframes []Keyframe, t float64, interpolation Interpolation) float64 {
	if len(keyframes) == 0 {
		return 0
	}
	if len(keyframes) == 1 || t <= keyframes[0].Time {
		return keyframes[0].Value
	}

	for i := 0; i < len(keyframes)-1; i++ {
		k0 := keyframes[i]
		k1 := keyframes[i+1]
		if t > k1.Time {
			continue
		}

		duration := k1.Time - k0.Time
		if duration <= 0 {
			return k1.Value
		}
		ratio := applyInterpolation((t-k0.Time)/duration, interpolation)
		return k0.Value + ratio*(k1.Value-k0.Value)
	}

	return keyframes[len(keyframes)-1].Value
}

func applyInterpolation(ratio float64, interpolation Interpolation) float64 {
	ratio = math.Max(0, math.Min(1, ratio))
	switch interpolation {
	case EaseOut:
		return 1 - (1-ratio)*(1-ratio)
	default:
		// 未知插值方式按线性处理
		return ratio
	}
}

// RandomInRange returns a random float64 in the range [min, max].
// A nil rng falls back to the package-level source.
func RandomInRange(rng *rand.Rand, min, max float64) float64 {
	if min >= max {
		return min
	}
	if rng == nil {
		return min + rand.Float64()*(max-min)
	}
	return min + rng.Float64()*(max-min)
}

// RandomIntInRange returns a random int in the closed range [min, max].
func RandomIntInRange(rng *rand.Rand, min, max int) int {
	if min >= max {
		return min
	}
	if rng == nil {
		return min + rand.Intn(max-min+1)
	}
	return min + rng.Intn(max-min+1)
}
