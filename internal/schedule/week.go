package schedule

import "time"

// 一周按周一锚定：所有周相关计算统一使用 WeekStart 归一化，
// 避免解析端与校验端对"本周"的归属产生分歧

// DaysPerWeek 每周天数
const DaysPerWeek = 7

// WeekStart 返回给定日期所在周的周一（当日零点，保留时区）
func WeekStart(date time.Time) time.Time {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // 周日按 7 处理
	}
	daysFromMonday := weekday - 1
	d := date.AddDate(0, 0, -daysFromMonday)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// WeekEnd 返回给定日期所在周的周日（当日零点）
func WeekEnd(date time.Time) time.Time {
	return WeekStart(date).AddDate(0, 0, 6)
}

// InWeek 判断 date 是否落在 weekStart 锚定的一周内（含周一与周日）
func InWeek(weekStart, date time.Time) bool {
	start := WeekStart(weekStart)
	idx := DayIndex(start, date)
	return idx >= 0 && idx < DaysPerWeek
}

// DayIndex 返回 date 相对 weekStart 的天序号（周一=0 … 周日=6）
// 不在该周内时返回负数或 >=7 的值，由调用方判断
func DayIndex(weekStart, date time.Time) int {
	start := WeekStart(weekStart)
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, start.Location())
	return int(d.Sub(start).Hours() / 24)
}

// IsWeekend 判断是否为周六或周日
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DateKey 统一的日期键格式（用于按日去重）
func DateKey(date time.Time) string {
	return date.Format("2006-01-02")
}
