package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"rosterhub/backend/internal/model"
)

func TestExportService_ExportWeek(t *testing.T) {
	repo := newTestRepos()
	svc := NewExportService(testConfig(), repo, zap.NewNop())

	repo.User.Create(context.Background(), &model.User{
		UserID: "u1", Name: "李四", Email: "lisi@example.com", Role: model.RoleEmployee,
	})
	repo.Entry.Create(context.Background(), &model.TimesheetEntry{
		UserID: "u1", EntryDate: mustParseDay(t, "2025-06-03"),
		HoursLogged: 7.5, Description: "迭代开发", ApprovalStatus: model.ApprovalApproved,
	})

	buf, filename, err := svc.ExportWeek(context.Background(), "u1", "2025-06-03")
	if err != nil {
		t.Fatalf("ExportWeek 应成功: %v", err)
	}
	if buf == nil || buf.Len() == 0 {
		t.Fatal("期望非空 Excel 内容")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("期望 .xlsx 文件名，实际=%s", filename)
	}
	if !strings.Contains(filename, "2025-06-02") {
		t.Errorf("文件名应包含周起始日期，实际=%s", filename)
	}
}

func TestExportService_ExportWeek_UserNotFound(t *testing.T) {
	repo := newTestRepos()
	svc := NewExportService(testConfig(), repo, zap.NewNop())

	_, _, err := svc.ExportWeek(context.Background(), "missing", "2025-06-03")
	if !errors.Is(err, ErrExportUserNotFound) {
		t.Errorf("期望 ErrExportUserNotFound，实际: %v", err)
	}
}
