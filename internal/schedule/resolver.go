package schedule

// 周排班解析：全局默认排班与周覆盖排班二选一。
// WeekSchedule 为带标签变体，解析为 EffectiveWeek 时只有一处穷举分支，
// 覆盖存在即整周生效，与全局 working_days 的取值无关。

// scheduleKind 排班变体标签
type scheduleKind int

const (
	kindDefault scheduleKind = iota
	kindOverride
)

// WeekSchedule 某用户某周的排班来源
// 两种变体：Default(workingDays) 或 Override(七天小时数)
type WeekSchedule struct {
	kind          scheduleKind
	workingDays   int
	overrideHours [7]float64
}

// DefaultSchedule 构造全局默认排班变体
// workingDays 为从周一起算的标准工作日数，应在 [0,5] 内（由服务层校验）
func DefaultSchedule(workingDays int) WeekSchedule {
	return WeekSchedule{kind: kindDefault, workingDays: workingDays}
}

// OverrideSchedule 构造周覆盖排班变体
func OverrideSchedule(hoursByDay [7]float64) WeekSchedule {
	return WeekSchedule{kind: kindOverride, overrideHours: hoursByDay}
}

// EffectiveWeek 解析后的一周有效工时视图（派生数据，不落库）
type EffectiveWeek struct {
	// HoursByDay 周一起算的七天小时数
	HoursByDay [7]float64 `json:"hours_by_day"`
	// HasOverride 该周是否由周覆盖排班生效
	HasOverride bool `json:"has_override"`
}

// Resolve 将排班变体解析为一周有效工时
// 默认变体：前 workingDays 个工作日各 standardDayHours 小时，其余（含周末）为 0；
// 覆盖变体：七天取值原样生效
func (s WeekSchedule) Resolve(standardDayHours float64) EffectiveWeek {
	switch s.kind {
	case kindOverride:
		return EffectiveWeek{HoursByDay: s.overrideHours, HasOverride: true}
	default:
		var hours [7]float64
		for i := 0; i < s.workingDays && i < 5; i++ {
			hours[i] = standardDayHours
		}
		return EffectiveWeek{HoursByDay: hours}
	}
}

// TotalHours 一周总工时
func (w EffectiveWeek) TotalHours() float64 {
	var total float64
	for _, h := range w.HoursByDay {
		total += h
	}
	return total
}

// WorkingDayCount 有效工作日数（小时数 > 0 的天数）
// 工作日天数预算直接从此派生，避免与解析结果漂移
func (w EffectiveWeek) WorkingDayCount() int {
	count := 0
	for _, h := range w.HoursByDay {
		if h > 0 {
			count++
		}
	}
	return count
}
