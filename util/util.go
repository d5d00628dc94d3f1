package util

import (
	"encoding/json"

	"golang.org/x/exp/constraints"
)

////////////////////////////////////////////////////////////////////////////////
// 通用工具函数
////////////////////////////////////////////////////////////////////////////////

// Clamp 将数值限制在 [lo, hi] 区间内
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ConvertToFloat 将任意数值类型转换为float64
func ConvertToFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}
