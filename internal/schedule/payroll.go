package schedule

import "time"

// 薪资周期为固定双周（14 天），以配置的锚点周一对齐。
// 任意日期恰好落在一个周期内；锚点之前的日期同样按 14 天向前对齐。

// PayPeriod 薪资双周周期
type PayPeriod struct {
	Start time.Time `json:"start"` // 周期首日（周一）
	End   time.Time `json:"end"`   // 周期末日（第二个周日）
}

// PeriodFor 计算包含 date 的薪资双周周期
// anchor 为任意一个周期首日；非周一的锚点会先归一化到所在周的周一
func PeriodFor(date, anchor time.Time) PayPeriod {
	anchorStart := WeekStart(anchor)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, anchorStart.Location())

	days := int(day.Sub(anchorStart).Hours() / 24)
	offset := days % 14
	if offset < 0 {
		offset += 14
	}

	start := day.AddDate(0, 0, -offset)
	return PayPeriod{Start: start, End: start.AddDate(0, 0, 13)}
}

// Contains 判断日期是否落在周期内
func (p PayPeriod) Contains(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, p.Start.Location())
	return !d.Before(p.Start) && !d.After(p.End)
}
