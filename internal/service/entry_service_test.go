package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"rosterhub/backend/internal/dto"
	"rosterhub/backend/internal/model"
	"rosterhub/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestEntryService() (EntryService, *repository.Repository, *stubHolidaySource) {
	repo := newTestRepos()
	src := newStubHolidaySource()
	svc := NewEntryService(testConfig(), repo, src, zap.NewNop())
	return svc, repo, src
}

func mustParseDay(t *testing.T, date string) time.Time {
	t.Helper()
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		t.Fatalf("测试日期无效: %v", err)
	}
	return day
}

func mustCreateEntry(t *testing.T, svc EntryService, userID, role, date string, hours float64) *dto.EntryResponse {
	t.Helper()
	result, err := svc.Create(context.Background(), userID, role, &dto.CreateEntryRequest{
		EntryDate:   date,
		HoursLogged: hours,
	})
	if err != nil {
		t.Fatalf("创建 %s 的记录应成功: %v", date, err)
	}
	return result
}

// ── Create 测试 ──

func TestEntryService_Create_WeekdayIsApproved(t *testing.T) {
	svc, _, _ := setupTestEntryService()

	// 2025-06-03 是周二
	result := mustCreateEntry(t, svc, "u1", model.RoleEmployee, "2025-06-03", 7.5)
	if result.ApprovalStatus != model.ApprovalApproved {
		t.Errorf("工作日记录期望 approved，实际=%s", result.ApprovalStatus)
	}
}

func TestEntryService_Create_WeekendGoesPending(t *testing.T) {
	svc, repo, _ := setupTestEntryService()
	// 预算放开到 7 天，保证周六不被预算拦截
	repo.WeeklyOverride.Upsert(context.Background(), &model.WeeklyOverride{
		UserID: "u1", WeekStartDate: mustParseDay(t, "2025-06-02"),
		MondayHours: 8, TuesdayHours: 8, WednesdayHours: 8, ThursdayHours: 8,
		FridayHours: 8, SaturdayHours: 8, SundayHours: 8,
	})

	// 2025-06-07 是周六
	result := mustCreateEntry(t, svc, "u1", model.RoleEmployee, "2025-06-07", 4)
	if result.ApprovalStatus != model.ApprovalPending {
		t.Errorf("非管理员周末记录期望 pending，实际=%s", result.ApprovalStatus)
	}

	// 管理员周末记录不走审批流
	admin := mustCreateEntry(t, svc, "u2", model.RoleAdmin, "2025-06-07", 4)
	if admin.ApprovalStatus != model.ApprovalApproved {
		t.Errorf("管理员周末记录期望 approved，实际=%s", admin.ApprovalStatus)
	}
}

func TestEntryService_Create_DayBudgetExhausted(t *testing.T) {
	svc, repo, _ := setupTestEntryService()
	repo.WorkSchedule.Upsert(context.Background(), &model.WorkSchedule{UserID: "u1", WorkingDays: 2})

	mustCreateEntry(t, svc, "u1", model.RoleEmployee, "2025-06-02", 8)
	mustCreateEntry(t, svc, "u1", model.RoleEmployee, "2025-06-03", 8)

	// 第三个不同日期应被预算拒绝
	_, err := svc.Create(context.Background(), "u1", model.RoleEmployee, &dto.CreateEntryRequest{
		EntryDate: "2025-06-04", HoursLogged: 8,
	})
	if !errors.Is(err, ErrDayBudgetExhausted) {
		t.Errorf("期望 ErrDayBudgetExhausted，实际: %v", err)
	}

	// 已使用的日期仍可追加
	mustCreateEntry(t, svc, "u1", model.RoleEmployee, "2025-06-03", 1.5)
}

func TestEntryService_Create_HolidayBlockedForEmployee(t *testing.T) {
	svc, _, src := setupTestEntryService()
	src.holidays["2025-06-09"] = "King's Birthday"

	_, err := svc.Create(context.Background(), "u1", model.RoleEmployee, &dto.CreateEntryRequest{
		EntryDate: "2025-06-09", HoursLogged: 8,
	})
	if !errors.Is(err, ErrHolidayLocked) {
		t.Errorf("期望 ErrHolidayLocked，实际: %v", err)
	}
}

func TestEntryService_Create_HolidayAllowedWithPermission(t *testing.T) {
	svc, repo, src := setupTestEntryService()
	src.holidays["2025-06-09"] = "King's Birthday"
	repo.WorkSchedule.Upsert(context.Background(), &model.WorkSchedule{
		UserID: "u1", WorkingDays: 5, AllowHolidayEntries: true,
	})

	mustCreateEntry(t, svc, "u1", model.RoleEmployee, "2025-06-09", 8)
}

func TestEntryService_Create_HolidayBypassForAdmin(t *testing.T) {
	svc, _, src := setupTestEntryService()
	src.holidays["2025-06-09"] = "King's Birthday"

	mustCreateEntry(t, svc, "admin-1", model.RoleAdmin, "2025-06-09", 8)
}

func TestEntryService_Create_FailOpenOnLookupError(t *testing.T) {
	svc, _, src := setupTestEntryService()
	src.err = errors.New("假日 API 不可达")

	// 查询失败不应拦截创建
	mustCreateEntry(t, svc, "u1", model.RoleEmployee, "2025-06-03", 8)
}

func TestEntryService_Create_RejectsInvalidHours(t *testing.T) {
	svc, _, _ := setupTestEntryService()

	for _, hours := range []float64{0, -2, 25} {
		_, err := svc.Create(context.Background(), "u1", model.RoleEmployee, &dto.CreateEntryRequest{
			EntryDate: "2025-06-03", HoursLogged: hours,
		})
		if !errors.Is(err, ErrEntryHoursInvalid) {
			t.Errorf("hours=%v 期望 ErrEntryHoursInvalid，实际: %v", hours, err)
		}
	}
}

// ── WeekStatus 测试 ──

func TestEntryService_WeekStatus(t *testing.T) {
	svc, repo, _ := setupTestEntryService()
	repo.WorkSchedule.Upsert(context.Background(), &model.WorkSchedule{UserID: "u1", WorkingDays: 2})

	mustCreateEntry(t, svc, "u1", model.RoleEmployee, "2025-06-02", 8)

	status, err := svc.WeekStatus(context.Background(), "u1", "2025-06-05")
	if err != nil {
		t.Fatalf("WeekStatus 应成功: %v", err)
	}
	if status.WeekStart != "2025-06-02" {
		t.Errorf("期望周起始=2025-06-02，实际=%s", status.WeekStart)
	}
	if status.DaysAllowed != 2 || status.DaysWorked != 1 || status.DaysRemaining != 1 {
		t.Errorf("期望预算 2/1/1，实际 %d/%d/%d", status.DaysAllowed, status.DaysWorked, status.DaysRemaining)
	}
	if len(status.Days) != 7 {
		t.Fatalf("期望 7 天明细，实际=%d", len(status.Days))
	}
	// 周一已有记录
	if !status.Days[0].HasEntries || !status.Days[0].CanAdd {
		t.Error("周一应标记已有记录且可追加")
	}
	// 周六周日应标记周末
	if !status.Days[5].IsWeekend || !status.Days[6].IsWeekend {
		t.Error("周六周日应标记 IsWeekend")
	}
	if status.Days[0].ScheduledHours != 8 || status.Days[2].ScheduledHours != 0 {
		t.Errorf("排班小时不符: %v / %v", status.Days[0].ScheduledHours, status.Days[2].ScheduledHours)
	}
}

func TestEntryService_WeekStatus_AtLimit(t *testing.T) {
	svc, repo, _ := setupTestEntryService()
	repo.WorkSchedule.Upsert(context.Background(), &model.WorkSchedule{UserID: "u1", WorkingDays: 1})

	mustCreateEntry(t, svc, "u1", model.RoleEmployee, "2025-06-02", 8)

	status, err := svc.WeekStatus(context.Background(), "u1", "2025-06-02")
	if err != nil {
		t.Fatalf("WeekStatus 应成功: %v", err)
	}
	if !status.IsAtLimit {
		t.Error("预算用完后 IsAtLimit 应为 true")
	}
	// 已用日期仍可追加，新日期不可
	if !status.Days[0].CanAdd {
		t.Error("已有记录的周一应仍可追加")
	}
	if status.Days[1].CanAdd {
		t.Error("预算用完后全新的周二不应可新增")
	}
}

// ── HolidayCheck 测试 ──

func TestEntryService_HolidayCheck(t *testing.T) {
	svc, _, src := setupTestEntryService()
	src.holidays["2025-04-25"] = "Anzac Day"

	result, err := svc.HolidayCheck(context.Background(), "u1", model.RoleEmployee, "2025-04-25")
	if err != nil {
		t.Fatalf("HolidayCheck 应成功: %v", err)
	}
	if result.IsValid {
		t.Error("无许可的员工在假日应被拦截")
	}
	if result.HolidayName != "Anzac Day" {
		t.Errorf("期望假日名称透出，实际=%q", result.HolidayName)
	}

	// 非假日放行
	ok, err := svc.HolidayCheck(context.Background(), "u1", model.RoleEmployee, "2025-04-28")
	if err != nil {
		t.Fatalf("HolidayCheck 应成功: %v", err)
	}
	if !ok.IsValid {
		t.Error("非假日应放行")
	}
}

func TestEntryService_HolidayCheck_DegradedOnError(t *testing.T) {
	svc, _, src := setupTestEntryService()
	src.err = errors.New("假日 API 超时")

	result, err := svc.HolidayCheck(context.Background(), "u1", model.RoleEmployee, "2025-04-25")
	if err != nil {
		t.Fatalf("HolidayCheck 应成功: %v", err)
	}
	if !result.IsValid || !result.Degraded {
		t.Errorf("查询失败应 fail-open 且标记降级，实际 valid=%v degraded=%v", result.IsValid, result.Degraded)
	}
}
