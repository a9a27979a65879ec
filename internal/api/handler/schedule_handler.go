package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"rosterhub/backend/internal/dto"
	"rosterhub/backend/internal/model"
	"rosterhub/backend/internal/service"
	"rosterhub/backend/pkg/response"
)

// ScheduleHandler 排班模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// GetWeek 查询某周的有效排班
// GET /api/v1/schedules/week?date=2025-06-02&user_id=xxx
// user_id 缺省为本人；查询他人排班需要 manager/admin 角色
func (h *ScheduleHandler) GetWeek(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "date 不能为空")
		return
	}

	targetID := c.DefaultQuery("user_id", callerID)
	if targetID != callerID && role != model.RoleManager && role != model.RoleAdmin {
		response.Forbidden(c, 10003, "无权限查询他人排班")
		return
	}

	result, err := h.scheduleSvc.GetWeek(c.Request.Context(), targetID, date)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// GetGlobal 查询指定用户的全局排班（管理端）
// GET /api/v1/schedules/global/:user_id
func (h *ScheduleHandler) GetGlobal(c *gin.Context) {
	targetID := c.Param("user_id")
	if targetID == "" {
		response.BadRequest(c, 10001, "user_id 不能为空")
		return
	}

	result, err := h.scheduleSvc.GetGlobal(c.Request.Context(), targetID)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateGlobal 更新指定用户的全局排班（管理端）
// PUT /api/v1/schedules/global/:user_id
func (h *ScheduleHandler) UpdateGlobal(c *gin.Context) {
	targetID := c.Param("user_id")
	if targetID == "" {
		response.BadRequest(c, 10001, "user_id 不能为空")
		return
	}

	var req dto.UpdateGlobalScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.SetGlobal(c.Request.Context(), targetID, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// UpsertOverride 写入指定用户某周的覆盖排班（管理端）
// PUT /api/v1/schedules/overrides/:user_id
func (h *ScheduleHandler) UpsertOverride(c *gin.Context) {
	targetID := c.Param("user_id")
	if targetID == "" {
		response.BadRequest(c, 10001, "user_id 不能为空")
		return
	}

	var req dto.UpsertOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.SetOverride(c.Request.Context(), targetID, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// ListOverrides 查询指定用户最近的覆盖排班（管理端）
// GET /api/v1/schedules/overrides/:user_id?limit=12
func (h *ScheduleHandler) ListOverrides(c *gin.Context) {
	targetID := c.Param("user_id")
	if targetID == "" {
		response.BadRequest(c, 10001, "user_id 不能为空")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))

	result, err := h.scheduleSvc.ListOverrides(c.Request.Context(), targetID, limit)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": result})
}

// DeleteOverride 删除指定用户某周的覆盖排班，回退到全局默认（管理端）
// DELETE /api/v1/schedules/overrides/:user_id?date=2025-06-02
func (h *ScheduleHandler) DeleteOverride(c *gin.Context) {
	targetID := c.Param("user_id")
	if targetID == "" {
		response.BadRequest(c, 10001, "user_id 不能为空")
		return
	}

	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "date 不能为空")
		return
	}

	if err := h.scheduleSvc.RevertToDefault(c.Request.Context(), targetID, date); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetPayPeriod 查询日期所属的薪资双周周期
// GET /api/v1/payroll/period?date=2025-06-02
func (h *ScheduleHandler) GetPayPeriod(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "date 不能为空")
		return
	}

	result, err := h.scheduleSvc.PayPeriod(c.Request.Context(), date)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// handleScheduleError 统一处理排班模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 12001, "日期格式无效")
	case errors.Is(err, service.ErrWorkingDaysOutOfRange):
		response.BadRequest(c, 12002, "working_days 必须在 0-5 之间")
	case errors.Is(err, service.ErrHoursOutOfRange):
		response.BadRequest(c, 12003, "单日小时数必须在 0-24 之间")
	default:
		response.InternalError(c)
	}
}
