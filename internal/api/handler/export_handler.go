package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"rosterhub/backend/internal/model"
	"rosterhub/backend/internal/service"
	"rosterhub/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportWeek 导出单周工时表
// GET /api/v1/export/week?date=2025-06-02&user_id=xxx
// user_id 缺省为本人；导出他人工时表需要 manager/admin 角色
func (h *ExportHandler) ExportWeek(c *gin.Context) {
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
		response.Forbidden(c, 10003, "无权限导出他人工时表")
		return
	}

	buf, filename, err := h.exportSvc.ExportWeek(c.Request.Context(), targetID, date)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 15001, "日期格式无效")
	case errors.Is(err, service.ErrExportUserNotFound):
		response.NotFound(c, 15002, "导出目标用户不存在")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
