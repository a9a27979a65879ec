package dto

// ── 工时记录模块 DTO ──

// CreateEntryRequest 新建工时记录请求
type CreateEntryRequest struct {
	EntryDate   string  `json:"entry_date" binding:"required"` // 格式 2006-01-02
	HoursLogged float64 `json:"hours_logged" binding:"required"`
	Description string  `json:"description"`
}

// EntryResponse 工时记录响应
type EntryResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	EntryDate      string  `json:"entry_date"`
	HoursLogged    float64 `json:"hours_logged"`
	Description    string  `json:"description,omitempty"`
	ApprovalStatus string  `json:"approval_status"`
	ApprovedBy     *string `json:"approved_by,omitempty"`
	ApprovedAt     *string `json:"approved_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// WeekStatusResponse 一周天数预算状态响应
type WeekStatusResponse struct {
	WeekStart     string          `json:"week_start"`
	DaysAllowed   int             `json:"days_allowed"`
	DaysWorked    int             `json:"days_worked"`
	DaysRemaining int             `json:"days_remaining"`
	IsAtLimit     bool            `json:"is_at_limit"`
	Message       string          `json:"message,omitempty"`
	Days          []DayStatusItem `json:"days"`
}

// DayStatusItem 一周内单日状态
type DayStatusItem struct {
	Date           string  `json:"date"`
	ScheduledHours float64 `json:"scheduled_hours"`
	HasEntries     bool    `json:"has_entries"`
	CanAdd         bool    `json:"can_add"`
	IsWeekend      bool    `json:"is_weekend"`
}

// HolidayCheckResponse 假日锁定判定响应
type HolidayCheckResponse struct {
	IsValid     bool   `json:"is_valid"`
	Message     string `json:"message,omitempty"`
	HolidayName string `json:"holiday_name,omitempty"`
	Degraded    bool   `json:"degraded,omitempty"`
}
