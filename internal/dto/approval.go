package dto

// ── 审批模块 DTO ──

// 审批动作
const (
	ApprovalActionApprove = "approve"
	ApprovalActionReject  = "reject"
)

// ApprovalDecisionRequest 审批决定请求
type ApprovalDecisionRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

// PendingEntryResponse 待审批工时记录响应
type PendingEntryResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name,omitempty"`
	EntryDate   string  `json:"entry_date"`
	HoursLogged float64 `json:"hours_logged"`
	Description string  `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
