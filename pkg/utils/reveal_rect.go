package utils

import (
	"math"

	"github.com/decker502/tapreward/pkg/render"
)

// Clamp01 将 v 限制在 [0, 1]，NaN 视为 0
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ComputeRevealRect 计算进度条填充的可见区域
//
// 填充图以 (originX, originY) 为中心、尺寸为 width x height。
// 可见区域固定从左边缘开始，宽度为 width*progress，高度不变。
// progress 超出 [0, 1] 时被截断。用作 Sprite.Clip 时纹理被裁剪而非缩放。
func ComputeRevealRect(originX, originY, width, height, progress float64) render.Rect {
	p := Clamp01(progress)
	return render.Rect{
		X: originX - width/2,
		Y: originY - height/2,
		W: width * p,
		H: height,
	}
}
