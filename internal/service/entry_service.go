package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"rosterhub/backend/config"
	"rosterhub/backend/internal/dto"
	"rosterhub/backend/internal/model"
	"rosterhub/backend/internal/repository"
	"rosterhub/backend/internal/schedule"
	"rosterhub/backend/pkg/holiday"
)

// ── 工时记录模块业务错误 ──

var (
	ErrDayBudgetExhausted = errors.New("本周可填报天数已用完")
	ErrHolidayLocked      = errors.New("公共假日不允许填报工时")
	ErrEntryHoursInvalid  = errors.New("hours_logged 必须大于 0 且不超过单日上限")
)

// EntryService 工时记录业务接口
//
// 创建记录的校验顺序：小时数 → 天数预算 → 假日锁定。
// 假日查询失败按 fail-open 放行并记日志（可用性优先于严格性），
// 周末记录对非管理员进入待审批流。
type EntryService interface {
	Create(ctx context.Context, userID, role string, req *dto.CreateEntryRequest) (*dto.EntryResponse, error)
	ListWeek(ctx context.Context, userID string, date string) ([]dto.EntryResponse, error)
	WeekStatus(ctx context.Context, userID string, date string) (*dto.WeekStatusResponse, error)
	HolidayCheck(ctx context.Context, userID, role string, date string) (*dto.HolidayCheckResponse, error)
}

type entryService struct {
	cfg        *config.Config
	repo       *repository.Repository
	holidaySrc holiday.Source
	logger     *zap.Logger
}

// NewEntryService 创建 EntryService 实例
func NewEntryService(
	cfg *config.Config,
	repo *repository.Repository,
	holidaySrc holiday.Source,
	logger *zap.Logger,
) EntryService {
	return &entryService{cfg: cfg, repo: repo, holidaySrc: holidaySrc, logger: logger}
}

func (s *entryService) Create(ctx context.Context, userID, role string, req *dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	day, err := time.Parse(dateLayout, req.EntryDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// 1. 小时数边界
	if req.HoursLogged <= 0 || req.HoursLogged > s.cfg.Schedule.MaxDayHours {
		return nil, ErrEntryHoursInvalid
	}

	// 2. 天数预算（已有记录的日期不消耗新预算）
	usage, err := s.weekUsage(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if !usage.CanAddToDate(day) {
		return nil, ErrDayBudgetExhausted
	}

	// 3. 假日锁定
	decision := s.holidayDecision(ctx, userID, role, day)
	if !decision.Allowed {
		return nil, ErrHolidayLocked
	}
	if decision.Degraded {
		s.logger.Warn("假日查询降级，按放行处理",
			zap.String("user_id", userID),
			zap.String("date", req.EntryDate),
		)
	}

	entry := &model.TimesheetEntry{
		UserID:         userID,
		EntryDate:      day,
		HoursLogged:    req.HoursLogged,
		Description:    req.Description,
		ApprovalStatus: schedule.InitialApprovalStatus(role, day),
	}

	if err := s.repo.Entry.Create(ctx, entry); err != nil {
		s.logger.Error("创建工时记录失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("工时记录已创建",
		zap.String("entry_id", entry.EntryID),
		zap.String("user_id", userID),
		zap.String("date", req.EntryDate),
		zap.String("approval_status", entry.ApprovalStatus),
	)

	resp := toEntryResponse(entry)
	return &resp, nil
}

func (s *entryService) ListWeek(ctx context.Context, userID string, date string) ([]dto.EntryResponse, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	weekStart := schedule.WeekStart(day)

	entries, err := s.repo.Entry.ListByUserAndDateRange(ctx, userID, weekStart, schedule.WeekEnd(day))
	if err != nil {
		s.logger.Error("查询周工时记录失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.EntryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, toEntryResponse(&entries[i]))
	}
	return resp, nil
}

func (s *entryService) WeekStatus(ctx context.Context, userID string, date string) (*dto.WeekStatusResponse, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	weekStart := schedule.WeekStart(day)

	ws, _, err := resolveWeekSchedule(ctx, s.repo, &s.cfg.Schedule, userID, weekStart)
	if err != nil {
		s.logger.Error("解析周排班失败", zap.Error(err))
		return nil, err
	}
	week := ws.Resolve(s.cfg.Schedule.StandardDayHours)

	entries, err := s.repo.Entry.ListByUserAndDateRange(ctx, userID, weekStart, schedule.WeekEnd(day))
	if err != nil {
		s.logger.Error("查询周工时记录失败", zap.Error(err))
		return nil, err
	}
	dates := make([]time.Time, 0, len(entries))
	for i := range entries {
		dates = append(dates, entries[i].EntryDate)
	}

	usage := schedule.EvaluateUsage(weekStart, dates, week.WorkingDayCount())

	days := make([]dto.DayStatusItem, 0, schedule.DaysPerWeek)
	for i := 0; i < schedule.DaysPerWeek; i++ {
		d := weekStart.AddDate(0, 0, i)
		days = append(days, dto.DayStatusItem{
			Date:           d.Format(dateLayout),
			ScheduledHours: week.HoursByDay[i],
			HasEntries:     hasEntryOn(dates, d),
			CanAdd:         usage.CanAddToDate(d),
			IsWeekend:      schedule.IsWeekend(d),
		})
	}

	return &dto.WeekStatusResponse{
		WeekStart:     weekStart.Format(dateLayout),
		DaysAllowed:   usage.DaysAllowed,
		DaysWorked:    usage.DaysWorked,
		DaysRemaining: usage.DaysRemaining,
		IsAtLimit:     usage.IsAtLimit(),
		Message:       usage.Message(),
		Days:          days,
	}, nil
}

func (s *entryService) HolidayCheck(ctx context.Context, userID, role string, date string) (*dto.HolidayCheckResponse, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	decision := s.holidayDecision(ctx, userID, role, day)
	return &dto.HolidayCheckResponse{
		IsValid:     decision.Allowed,
		Message:     decision.Message,
		HolidayName: decision.HolidayName,
		Degraded:    decision.Degraded,
	}, nil
}

// weekUsage 统计指定日期所在周的天数预算使用情况
func (s *entryService) weekUsage(ctx context.Context, userID string, day time.Time) (schedule.Usage, error) {
	weekStart := schedule.WeekStart(day)

	ws, _, err := resolveWeekSchedule(ctx, s.repo, &s.cfg.Schedule, userID, weekStart)
	if err != nil {
		s.logger.Error("解析周排班失败", zap.Error(err))
		return schedule.Usage{}, err
	}
	week := ws.Resolve(s.cfg.Schedule.StandardDayHours)

	entries, err := s.repo.Entry.ListByUserAndDateRange(ctx, userID, weekStart, schedule.WeekEnd(day))
	if err != nil {
		s.logger.Error("查询周工时记录失败", zap.Error(err))
		return schedule.Usage{}, err
	}
	dates := make([]time.Time, 0, len(entries))
	for i := range entries {
		dates = append(dates, entries[i].EntryDate)
	}

	return schedule.EvaluateUsage(weekStart, dates, week.WorkingDayCount()), nil
}

// holidayDecision 执行假日锁定判定，查询失败时 fail-open
func (s *entryService) holidayDecision(ctx context.Context, userID, role string, day time.Time) schedule.LockDecision {
	allowHoliday := false
	global, err := s.repo.WorkSchedule.GetByUser(ctx, userID)
	if err == nil {
		allowHoliday = global.AllowHolidayEntries
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询假日填报许可失败", zap.Error(err))
	}

	res, err := s.holidaySrc.Lookup(ctx, day)
	if err != nil {
		s.logger.Warn("假日查询失败，fail-open 放行",
			zap.String("date", day.Format(dateLayout)),
			zap.Error(err),
		)
		return schedule.DecideFailOpen()
	}

	return schedule.DecideHolidayLock(role, allowHoliday, res)
}

func hasEntryOn(dates []time.Time, day time.Time) bool {
	key := schedule.DateKey(day)
	for _, d := range dates {
		if schedule.DateKey(d) == key {
			return true
		}
	}
	return false
}

func toEntryResponse(entry *model.TimesheetEntry) dto.EntryResponse {
	resp := dto.EntryResponse{
		ID:             entry.EntryID,
		UserID:         entry.UserID,
		EntryDate:      entry.EntryDate.Format(dateLayout),
		HoursLogged:    entry.HoursLogged,
		Description:    entry.Description,
		ApprovalStatus: entry.ApprovalStatus,
		ApprovedBy:     entry.ApprovedBy,
		CreatedAt:      entry.CreatedAt.Format(time.RFC3339),
	}
	if entry.ApprovedAt != nil {
		at := entry.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &at
	}
	return resp
}
