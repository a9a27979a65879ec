package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"rosterhub/backend/internal/dto"
	"rosterhub/backend/internal/service"
	"rosterhub/backend/pkg/response"
)

// EntryHandler 工时记录模块 HTTP 处理器
type EntryHandler struct {
	entrySvc service.EntryService
}

// NewEntryHandler 创建 EntryHandler
func NewEntryHandler(entrySvc service.EntryService) *EntryHandler {
	return &EntryHandler{entrySvc: entrySvc}
}

// Create 新建工时记录
// POST /api/v1/entries
func (h *EntryHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.entrySvc.Create(c.Request.Context(), userID, role, &req)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.Created(c, result)
}

// ListWeek 查询本人某周的工时记录
// GET /api/v1/entries/week?date=2025-06-02
func (h *EntryHandler) ListWeek(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "date 不能为空")
		return
	}

	result, err := h.entrySvc.ListWeek(c.Request.Context(), userID, date)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, gin.H{"list": result})
}

// WeekStatus 查询本人某周的天数预算状态
// GET /api/v1/entries/week-status?date=2025-06-02
func (h *EntryHandler) WeekStatus(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "date 不能为空")
		return
	}

	result, err := h.entrySvc.WeekStatus(c.Request.Context(), userID, date)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, result)
}

// HolidayCheck 预检指定日期能否填报工时
// GET /api/v1/entries/holiday-check?date=2025-04-25
func (h *EntryHandler) HolidayCheck(c *gin.Context) {
	userID, ok := MustGetUserID(c)
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

	result, err := h.entrySvc.HolidayCheck(c.Request.Context(), userID, role, date)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	response.OK(c, result)
}

// handleEntryError 统一处理工时记录模块业务错误
func (h *EntryHandler) handleEntryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 13001, "日期格式无效")
	case errors.Is(err, service.ErrEntryHoursInvalid):
		response.BadRequest(c, 13002, "hours_logged 必须大于 0 且不超过单日上限")
	case errors.Is(err, service.ErrDayBudgetExhausted):
		response.Forbidden(c, 13003, "本周可填报天数已用完")
	case errors.Is(err, service.ErrHolidayLocked):
		response.Forbidden(c, 13004, "公共假日不允许填报工时")
	default:
		response.InternalError(c)
	}
}
