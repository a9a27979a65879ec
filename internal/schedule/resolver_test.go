package schedule

import (
	"testing"
	"time"
)

const stdHours = 8.0

func TestDefaultSchedule_AllWorkingDayCounts(t *testing.T) {
	// working_days ∈ [0,5]：前 N 个工作日各 8 小时，周末恒为 0
	for days := 0; days <= 5; days++ {
		week := DefaultSchedule(days).Resolve(stdHours)

		if week.HasOverride {
			t.Errorf("working_days=%d: 默认排班不应标记 HasOverride", days)
		}

		nonZero := 0
		for i, h := range week.HoursByDay {
			if h > 0 {
				nonZero++
				if i >= 5 {
					t.Errorf("working_days=%d: 周末第 %d 天不应有工时", days, i)
				}
				if h != stdHours {
					t.Errorf("working_days=%d: 第 %d 天期望 %.1f 小时，实际 %.1f", days, i, stdHours, h)
				}
				if i >= days {
					t.Errorf("working_days=%d: 第 %d 天不应有工时", days, i)
				}
			}
		}
		if nonZero != days {
			t.Errorf("working_days=%d: 期望 %d 个非零天，实际 %d", days, days, nonZero)
		}
		if got := week.WorkingDayCount(); got != days {
			t.Errorf("working_days=%d: WorkingDayCount 期望 %d，实际 %d", days, days, got)
		}
		if got := week.TotalHours(); got != float64(days)*stdHours {
			t.Errorf("working_days=%d: TotalHours 期望 %.1f，实际 %.1f", days, float64(days)*stdHours, got)
		}
	}
}

func TestDefaultSchedule_ThreeDays(t *testing.T) {
	// 样例：working_days=3 → [8,8,8,0,0,0,0]，周总工时 24
	week := DefaultSchedule(3).Resolve(stdHours)

	want := [7]float64{8, 8, 8, 0, 0, 0, 0}
	if week.HoursByDay != want {
		t.Errorf("期望 %v，实际 %v", want, week.HoursByDay)
	}
	if week.TotalHours() != 24 {
		t.Errorf("期望周总工时 24，实际 %.1f", week.TotalHours())
	}
}

func TestOverrideSchedule_Verbatim(t *testing.T) {
	// 覆盖排班七天取值原样生效，与全局 working_days 无关
	cases := [][7]float64{
		{4, 4, 4, 4, 4, 0, 0},
		{0, 0, 0, 0, 0, 8, 8},
		{10.5, 0, 7.25, 0, 3, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
	}

	for _, hours := range cases {
		week := OverrideSchedule(hours).Resolve(stdHours)
		if !week.HasOverride {
			t.Errorf("覆盖排班应标记 HasOverride: %v", hours)
		}
		if week.HoursByDay != hours {
			t.Errorf("期望 %v，实际 %v", hours, week.HoursByDay)
		}
	}
}

func TestOverrideSchedule_FiveHalfDays(t *testing.T) {
	// 样例：每天 4 小时 × 5 → 周总工时 20，有效工作日 5
	week := OverrideSchedule([7]float64{4, 4, 4, 4, 4, 0, 0}).Resolve(stdHours)

	if week.TotalHours() != 20 {
		t.Errorf("期望周总工时 20，实际 %.1f", week.TotalHours())
	}
	if week.WorkingDayCount() != 5 {
		t.Errorf("期望 5 个有效工作日，实际 %d", week.WorkingDayCount())
	}
}

func TestWeekStart_Normalization(t *testing.T) {
	// 2024-06-03 为周一
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   time.Time
	}{
		{"周一当天", monday},
		{"周三", monday.AddDate(0, 0, 2)},
		{"周日", monday.AddDate(0, 0, 6)},
		{"周一带时间", time.Date(2024, 6, 3, 17, 45, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		if got := WeekStart(tc.in); !got.Equal(monday) {
			t.Errorf("%s: 期望 %v，实际 %v", tc.name, monday, got)
		}
	}
}

func TestDayIndex_And_InWeek(t *testing.T) {
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		if got := DayIndex(monday, d); got != i {
			t.Errorf("第 %d 天: DayIndex 期望 %d，实际 %d", i, i, got)
		}
		if !InWeek(monday, d) {
			t.Errorf("第 %d 天应在本周内", i)
		}
	}

	if InWeek(monday, monday.AddDate(0, 0, -1)) {
		t.Error("上周日不应在本周内")
	}
	if InWeek(monday, monday.AddDate(0, 0, 7)) {
		t.Error("下周一不应在本周内")
	}
}
