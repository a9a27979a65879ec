package holiday

import (
	"context"
	"time"
)

// Result 单日假日查询结果
// 查询失败不用 Result 表达：Source.Lookup 返回非 nil error 表示"查询失败"，
// 调用方不得将其与"确认非假日"混淆（上层按 fail-open 策略自行降级）。
type Result struct {
	IsHoliday bool   `json:"is_holiday"`
	Name      string `json:"name,omitempty"`
}

// Source 公共假日数据源
// date 仅取其年月日；实现方负责归一化
type Source interface {
	Lookup(ctx context.Context, date time.Time) (Result, error)
}

// DateKey 统一的日期键格式
func DateKey(date time.Time) string {
	return date.Format("2006-01-02")
}
