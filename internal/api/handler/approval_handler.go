package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"rosterhub/backend/internal/dto"
	"rosterhub/backend/internal/service"
	"rosterhub/backend/pkg/response"
)

// ApprovalHandler 审批模块 HTTP 处理器
type ApprovalHandler struct {
	approvalSvc service.ApprovalService
}

// NewApprovalHandler 创建 ApprovalHandler
func NewApprovalHandler(approvalSvc service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvalSvc: approvalSvc}
}

// ListPending 查询待审批队列
// GET /api/v1/approvals/pending?page=1&page_size=20
func (h *ApprovalHandler) ListPending(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.approvalSvc.ListPending(c.Request.Context(), (page-1)*pageSize, pageSize)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, items, total, page, pageSize)
}

// Decide 审批待处理记录
// POST /api/v1/approvals/:id
func (h *ApprovalHandler) Decide(c *gin.Context) {
	entryID := c.Param("id")
	if entryID == "" {
		response.BadRequest(c, 10001, "记录ID不能为空")
		return
	}

	approverID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ApprovalDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.approvalSvc.Decide(c.Request.Context(), entryID, approverID, &req); err != nil {
		h.handleApprovalError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleApprovalError 统一处理审批模块业务错误
func (h *ApprovalHandler) handleApprovalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, 14001, "工时记录不存在")
	case errors.Is(err, service.ErrApprovalConflict):
		response.Conflict(c, 14002, "该记录已被处理，请刷新后重试")
	case errors.Is(err, service.ErrInvalidAction):
		response.BadRequest(c, 14003, "审批动作无效")
	default:
		response.InternalError(c)
	}
}
