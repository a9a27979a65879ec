package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"rosterhub/backend/internal/dto"
	"rosterhub/backend/internal/model"
	"rosterhub/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestApprovalService(t *testing.T) (ApprovalService, *repository.Repository, string) {
	t.Helper()
	repo := newTestRepos()
	svc := NewApprovalService(repo, zap.NewNop())

	entry := &model.TimesheetEntry{
		UserID:         "u1",
		EntryDate:      mustParseDay(t, "2025-06-07"),
		HoursLogged:    4,
		ApprovalStatus: model.ApprovalPending,
	}
	if err := repo.Entry.Create(context.Background(), entry); err != nil {
		t.Fatalf("预置待审批记录失败: %v", err)
	}
	return svc, repo, entry.EntryID
}

// ── ListPending 测试 ──

func TestApprovalService_ListPending(t *testing.T) {
	svc, repo, _ := setupTestApprovalService(t)

	// 再放一条已批准记录，不应出现在队列中
	repo.Entry.Create(context.Background(), &model.TimesheetEntry{
		UserID: "u2", EntryDate: mustParseDay(t, "2025-06-03"),
		HoursLogged: 8, ApprovalStatus: model.ApprovalApproved,
	})

	items, total, err := svc.ListPending(context.Background(), 0, 20)
	if err != nil {
		t.Fatalf("ListPending 应成功: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("期望 1 条待审批记录，实际 total=%d len=%d", total, len(items))
	}
	if items[0].EntryDate != "2025-06-07" {
		t.Errorf("期望日期 2025-06-07，实际=%s", items[0].EntryDate)
	}
}

// ── Decide 测试 ──

func TestApprovalService_Decide_Approve(t *testing.T) {
	svc, repo, entryID := setupTestApprovalService(t)

	err := svc.Decide(context.Background(), entryID, "mgr-1", &dto.ApprovalDecisionRequest{
		Action: dto.ApprovalActionApprove,
	})
	if err != nil {
		t.Fatalf("Decide 应成功: %v", err)
	}

	entry, err := repo.Entry.GetByID(context.Background(), entryID)
	if err != nil {
		t.Fatalf("查询记录失败: %v", err)
	}
	if entry.ApprovalStatus != model.ApprovalApproved {
		t.Errorf("期望状态 approved，实际=%s", entry.ApprovalStatus)
	}
	if entry.ApprovedBy == nil || *entry.ApprovedBy != "mgr-1" {
		t.Error("期望记录审批人 mgr-1")
	}
	if entry.ApprovedAt == nil {
		t.Error("期望记录审批时间")
	}
}

func TestApprovalService_Decide_Reject(t *testing.T) {
	svc, repo, entryID := setupTestApprovalService(t)

	err := svc.Decide(context.Background(), entryID, "mgr-1", &dto.ApprovalDecisionRequest{
		Action: dto.ApprovalActionReject,
	})
	if err != nil {
		t.Fatalf("Decide 应成功: %v", err)
	}

	entry, _ := repo.Entry.GetByID(context.Background(), entryID)
	if entry.ApprovalStatus != model.ApprovalRejected {
		t.Errorf("期望状态 rejected，实际=%s", entry.ApprovalStatus)
	}
}

func TestApprovalService_Decide_ConflictOnSecondDecision(t *testing.T) {
	svc, _, entryID := setupTestApprovalService(t)

	req := &dto.ApprovalDecisionRequest{Action: dto.ApprovalActionApprove}
	if err := svc.Decide(context.Background(), entryID, "mgr-1", req); err != nil {
		t.Fatalf("首次审批应成功: %v", err)
	}

	// 终态不可再迁移，后到者收到冲突
	err := svc.Decide(context.Background(), entryID, "mgr-2", &dto.ApprovalDecisionRequest{
		Action: dto.ApprovalActionReject,
	})
	if !errors.Is(err, ErrApprovalConflict) {
		t.Errorf("期望 ErrApprovalConflict，实际: %v", err)
	}
}

func TestApprovalService_Decide_NotFound(t *testing.T) {
	svc, _, _ := setupTestApprovalService(t)

	err := svc.Decide(context.Background(), "missing-id", "mgr-1", &dto.ApprovalDecisionRequest{
		Action: dto.ApprovalActionApprove,
	})
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("期望 ErrEntryNotFound，实际: %v", err)
	}
}
