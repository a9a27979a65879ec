package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"rosterhub/backend/internal/model"
	"rosterhub/backend/internal/schedule"
	pkgerrors "rosterhub/backend/pkg/errors"
	"rosterhub/backend/pkg/holiday"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, _, _ int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

// ── Mock WorkScheduleRepository ──

type mockWorkScheduleRepo struct {
	schedules map[string]*model.WorkSchedule // userID → schedule
}

func newMockWorkScheduleRepo() *mockWorkScheduleRepo {
	return &mockWorkScheduleRepo{schedules: make(map[string]*model.WorkSchedule)}
}

func (m *mockWorkScheduleRepo) GetByUser(_ context.Context, userID string) (*model.WorkSchedule, error) {
	if s, ok := m.schedules[userID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkScheduleRepo) Upsert(_ context.Context, s *model.WorkSchedule) error {
	if s.ScheduleID == "" {
		s.ScheduleID = "sched-" + s.UserID
	}
	m.schedules[s.UserID] = s
	return nil
}

// ── Mock WeeklyOverrideRepository ──

type mockWeeklyOverrideRepo struct {
	overrides map[string]*model.WeeklyOverride // "userID:weekStart" → override
}

func newMockWeeklyOverrideRepo() *mockWeeklyOverrideRepo {
	return &mockWeeklyOverrideRepo{overrides: make(map[string]*model.WeeklyOverride)}
}

func overrideKey(userID string, weekStart time.Time) string {
	return userID + ":" + schedule.DateKey(weekStart)
}

func (m *mockWeeklyOverrideRepo) GetByUserAndWeek(_ context.Context, userID string, weekStart time.Time) (*model.WeeklyOverride, error) {
	if o, ok := m.overrides[overrideKey(userID, weekStart)]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWeeklyOverrideRepo) Upsert(_ context.Context, o *model.WeeklyOverride) error {
	if o.OverrideID == "" {
		o.OverrideID = "ovr-" + overrideKey(o.UserID, o.WeekStartDate)
	}
	m.overrides[overrideKey(o.UserID, o.WeekStartDate)] = o
	return nil
}

func (m *mockWeeklyOverrideRepo) DeleteByUserAndWeek(_ context.Context, userID string, weekStart time.Time) error {
	delete(m.overrides, overrideKey(userID, weekStart))
	return nil
}

func (m *mockWeeklyOverrideRepo) ListByUser(_ context.Context, userID string, _ int) ([]model.WeeklyOverride, error) {
	var result []model.WeeklyOverride
	for _, o := range m.overrides {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	return result, nil
}

// ── Mock EntryRepository ──

type mockEntryRepo struct {
	entries map[string]*model.TimesheetEntry
	nextID  int
}

func newMockEntryRepo() *mockEntryRepo {
	return &mockEntryRepo{entries: make(map[string]*model.TimesheetEntry)}
}

func (m *mockEntryRepo) Create(_ context.Context, e *model.TimesheetEntry) error {
	if e.EntryID == "" {
		m.nextID++
		e.EntryID = fmt.Sprintf("entry-%d", m.nextID)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	m.entries[e.EntryID] = e
	return nil
}

func (m *mockEntryRepo) GetByID(_ context.Context, id string) (*model.TimesheetEntry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEntryRepo) ListByUserAndDateRange(_ context.Context, userID string, from, to time.Time) ([]model.TimesheetEntry, error) {
	var result []model.TimesheetEntry
	for _, e := range m.entries {
		if e.UserID != userID {
			continue
		}
		if e.EntryDate.Before(from) || e.EntryDate.After(to) {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockEntryRepo) ListPending(_ context.Context, _, _ int) ([]model.TimesheetEntry, int64, error) {
	var result []model.TimesheetEntry
	for _, e := range m.entries {
		if e.ApprovalStatus == model.ApprovalPending {
			result = append(result, *e)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockEntryRepo) UpdateApproval(_ context.Context, id, status, approverID string, decidedAt time.Time) error {
	e, ok := m.entries[id]
	if !ok || e.ApprovalStatus != model.ApprovalPending {
		return pkgerrors.ErrOptimisticLock
	}
	e.ApprovalStatus = status
	e.ApprovedBy = &approverID
	e.ApprovedAt = &decidedAt
	return nil
}

// ── Stub 假日数据源 ──

// stubHolidaySource 固定返回预置结果；err 非 nil 时模拟查询失败
type stubHolidaySource struct {
	holidays map[string]string // "2006-01-02" → 假日名称
	err      error
}

func newStubHolidaySource() *stubHolidaySource {
	return &stubHolidaySource{holidays: make(map[string]string)}
}

func (s *stubHolidaySource) Lookup(_ context.Context, date time.Time) (holiday.Result, error) {
	if s.err != nil {
		return holiday.Result{}, s.err
	}
	if name, ok := s.holidays[holiday.DateKey(date)]; ok {
		return holiday.Result{IsHoliday: true, Name: name}, nil
	}
	return holiday.Result{}, nil
}
