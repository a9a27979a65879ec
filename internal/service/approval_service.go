package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"rosterhub/backend/internal/dto"
	"rosterhub/backend/internal/model"
	"rosterhub/backend/internal/repository"
	pkgerrors "rosterhub/backend/pkg/errors"
)

// ── 审批模块业务错误 ──

var (
	ErrEntryNotFound    = errors.New("工时记录不存在")
	ErrApprovalConflict = errors.New("该记录已被处理，请刷新后重试")
	ErrInvalidAction    = errors.New("审批动作无效")
)

// ApprovalService 周末工时审批业务接口
// approved / rejected 均为终态，状态迁移只允许从 pending 出发，
// 并发审批由条件更新裁决（后到者收到冲突错误）
type ApprovalService interface {
	ListPending(ctx context.Context, offset, limit int) ([]dto.PendingEntryResponse, int64, error)
	Decide(ctx context.Context, entryID, approverID string, req *dto.ApprovalDecisionRequest) error
}

type approvalService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewApprovalService 创建 ApprovalService 实例
func NewApprovalService(repo *repository.Repository, logger *zap.Logger) ApprovalService {
	return &approvalService{repo: repo, logger: logger}
}

func (s *approvalService) ListPending(ctx context.Context, offset, limit int) ([]dto.PendingEntryResponse, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	entries, total, err := s.repo.Entry.ListPending(ctx, offset, limit)
	if err != nil {
		s.logger.Error("查询待审批记录失败", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.PendingEntryResponse, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		item := dto.PendingEntryResponse{
			ID:          e.EntryID,
			UserID:      e.UserID,
			EntryDate:   e.EntryDate.Format(dateLayout),
			HoursLogged: e.HoursLogged,
			Description: e.Description,
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		}
		if e.User != nil {
			item.UserName = e.User.Name
		}
		resp = append(resp, item)
	}
	return resp, total, nil
}

func (s *approvalService) Decide(ctx context.Context, entryID, approverID string, req *dto.ApprovalDecisionRequest) error {
	var status string
	switch req.Action {
	case dto.ApprovalActionApprove:
		status = model.ApprovalApproved
	case dto.ApprovalActionReject:
		status = model.ApprovalRejected
	default:
		return ErrInvalidAction
	}

	err := s.repo.Entry.UpdateApproval(ctx, entryID, status, approverID, time.Now())
	if err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			// 记录不存在与已被处理这里走同一条件更新；区分两者需要再查一次
			if _, getErr := s.repo.Entry.GetByID(ctx, entryID); errors.Is(getErr, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return ErrApprovalConflict
		}
		s.logger.Error("更新审批状态失败", zap.Error(err))
		return err
	}

	s.logger.Info("审批完成",
		zap.String("entry_id", entryID),
		zap.String("approver_id", approverID),
		zap.String("status", status),
	)
	return nil
}
