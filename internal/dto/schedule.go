package dto

// ── 排班模块 DTO ──

// WeekScheduleResponse 一周有效排班响应
type WeekScheduleResponse struct {
	UserID           string     `json:"user_id"`
	WeekStart        string     `json:"week_start"` // 周一，格式 2006-01-02
	HoursByDay       [7]float64 `json:"hours_by_day"`
	HasOverride      bool       `json:"has_override"`
	TotalWeeklyHours float64    `json:"total_weekly_hours"`
	WorkingDayCount  int        `json:"working_day_count"`
	Notes            string     `json:"notes,omitempty"`
}

// UpdateGlobalScheduleRequest 更新全局排班请求
type UpdateGlobalScheduleRequest struct {
	WorkingDays         *int  `json:"working_days"`
	AllowHolidayEntries *bool `json:"allow_holiday_entries"`
}

// GlobalScheduleResponse 全局排班响应
type GlobalScheduleResponse struct {
	UserID              string `json:"user_id"`
	WorkingDays         int    `json:"working_days"`
	AllowHolidayEntries bool   `json:"allow_holiday_entries"`
}

// UpsertOverrideRequest 周覆盖排班 upsert 请求
// WeekStart 可为一周内任意日期，服务端归一化到周一
type UpsertOverrideRequest struct {
	WeekStart      string  `json:"week_start" binding:"required"`
	MondayHours    float64 `json:"monday_hours"`
	TuesdayHours   float64 `json:"tuesday_hours"`
	WednesdayHours float64 `json:"wednesday_hours"`
	ThursdayHours  float64 `json:"thursday_hours"`
	FridayHours    float64 `json:"friday_hours"`
	SaturdayHours  float64 `json:"saturday_hours"`
	SundayHours    float64 `json:"sunday_hours"`
	Notes          *string `json:"notes"`
}

// PayPeriodResponse 薪资双周周期响应
type PayPeriodResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
