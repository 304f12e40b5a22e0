package utils

import (
	"strconv"
	"strings"
)

// FormatNumber 将资源数值格式化为紧凑显示
//
//	>= 1e6: 保留两位小数，去掉末尾的 0 和小数点，加 "M"（1500000 -> "1.5M"）
//	>= 1e3: 同上，加 "K"（37720 -> "37.72K"）
//	其他:   原样输出整数
func FormatNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return trimDecimal(float64(n)/1_000_000) + "M"
	case n >= 1_000:
		return trimDecimal(float64(n)/1_000) + "K"
	default:
		return strconv.Itoa(n)
	}
}

func trimDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
