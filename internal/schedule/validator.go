package schedule

import (
	"fmt"
	"time"
)

// 每周可填报天数预算：一周内允许填报工时的"不同日历日"数量
// 上限来自该周有效排班的工作日数。已有记录的日期不再消耗预算，
// 因此达到上限后仍可向已使用的日期追加或编辑记录。

// Usage 一周的天数预算使用情况（纯派生数据）
type Usage struct {
	WeekStart     time.Time `json:"week_start"`
	DaysAllowed   int       `json:"days_allowed"`
	DaysWorked    int       `json:"days_worked"`
	DaysRemaining int       `json:"days_remaining"`

	usedDays map[string]bool
}

// EvaluateUsage 统计一周内已使用的天数预算
// entryDates 为已有工时记录的日期集合；不在 weekStart 锚定周内的日期
// 会被重新校验并忽略（窗口在此重算，不信任调用方的过滤）
func EvaluateUsage(weekStart time.Time, entryDates []time.Time, daysAllowed int) Usage {
	start := WeekStart(weekStart)

	used := make(map[string]bool)
	for _, d := range entryDates {
		if !InWeek(start, d) {
			continue
		}
		used[DateKey(d)] = true
	}

	worked := len(used)
	remaining := daysAllowed - worked
	if remaining < 0 {
		remaining = 0
	}

	return Usage{
		WeekStart:     start,
		DaysAllowed:   daysAllowed,
		DaysWorked:    worked,
		DaysRemaining: remaining,
		usedDays:      used,
	}
}

// IsAtLimit 是否已达到本周天数上限
func (u Usage) IsAtLimit() bool {
	return u.DaysWorked >= u.DaysAllowed
}

// CanAddToDate 判断指定日期是否可新增工时记录
// 已有记录的日期恒可追加（不消耗新预算）；
// 全新日期仅在未达上限时放行
func (u Usage) CanAddToDate(date time.Time) bool {
	if u.usedDays[DateKey(date)] {
		return true
	}
	return !u.IsAtLimit()
}

// Message 面向用户的预算状态说明
func (u Usage) Message() string {
	if u.DaysRemaining > 0 {
		return fmt.Sprintf("本周还可填报 %d 天", u.DaysRemaining)
	}
	if u.IsAtLimit() {
		return "本周可填报天数已用完，仍可编辑已有记录的日期"
	}
	return ""
}
