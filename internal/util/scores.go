package util

import (
	"math"
	"strconv"
	"strings"
)

// Round2 保留两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatScore 先按两位小数取整，再以最短形式渲染，整数补 ".0"：
// 12 -> "12.0"，6.666 -> "6.67"，5.25 -> "5.25"。
func FormatScore(v float64) string {
	s := strconv.FormatFloat(Round2(v), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatRatio 计分板中的 "earned/possible" 字面量
func FormatRatio(earned, possible float64) string {
	return FormatScore(earned) + "/" + FormatScore(possible)
}
