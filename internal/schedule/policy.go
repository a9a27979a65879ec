package schedule

import (
	"fmt"
	"time"

	"rosterhub/backend/internal/model"
	"rosterhub/backend/pkg/holiday"
)

// 假日填报锁定策略：
//   - 管理员具备假日锁定豁免能力，任何日期均放行（假日仅附带提示信息）
//   - 非管理员在公共假日受 allow_holiday_entries 许可开关控制
//   - 周末不在此处硬性拦截：非管理员的周末记录走待审批流（见 InitialApprovalStatus）
//   - 假日查询失败时放行（可用性优先于严格性），由调用方标记 Degraded 并记日志

// LockDecision 假日锁定判定结果（派生数据，不落库）
type LockDecision struct {
	Allowed     bool   `json:"is_valid"`
	Message     string `json:"message,omitempty"`
	HolidayName string `json:"holiday_name,omitempty"`
	// Degraded 表示假日查询失败、按 fail-open 放行
	Degraded bool `json:"degraded,omitempty"`
}

// CanBypassHolidayLock 假日锁定豁免能力判定
// 以能力谓词而非散落的角色字符串比较表达，便于后续扩展（如经理部分豁免）
func CanBypassHolidayLock(role string) bool {
	return role == model.RoleAdmin
}

// DecideHolidayLock 判定指定日期能否创建工时记录
func DecideHolidayLock(role string, allowHolidayEntries bool, res holiday.Result) LockDecision {
	if CanBypassHolidayLock(role) {
		d := LockDecision{Allowed: true}
		if res.IsHoliday {
			// 管理员不拦截，但仍提示假日信息供界面展示
			d.HolidayName = res.Name
			d.Message = fmt.Sprintf("%s 为公共假日", res.Name)
		}
		return d
	}

	if !res.IsHoliday {
		return LockDecision{Allowed: true}
	}

	if allowHolidayEntries {
		return LockDecision{
			Allowed:     true,
			HolidayName: res.Name,
			Message:     fmt.Sprintf("%s 为公共假日，您已获准在假日填报工时", res.Name),
		}
	}

	return LockDecision{
		Allowed:     false,
		HolidayName: res.Name,
		Message:     fmt.Sprintf("%s 为公共假日，不允许填报工时，请联系管理员申请假日填报权限", res.Name),
	}
}

// DecideFailOpen 假日查询失败时的降级判定：放行但标记降级
func DecideFailOpen() LockDecision {
	return LockDecision{Allowed: true, Degraded: true}
}

// InitialApprovalStatus 新建工时记录的初始审批状态
// 非管理员的周末记录进入 pending 待审批；其余情况直接 approved
func InitialApprovalStatus(role string, date time.Time) string {
	if IsWeekend(date) && !CanBypassHolidayLock(role) {
		return model.ApprovalPending
	}
	return model.ApprovalApproved
}
