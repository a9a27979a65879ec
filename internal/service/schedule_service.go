package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"rosterhub/backend/config"
	"rosterhub/backend/internal/dto"
	"rosterhub/backend/internal/model"
	"rosterhub/backend/internal/repository"
	"rosterhub/backend/internal/schedule"
)

// ── 排班模块业务错误 ──

var (
	ErrWorkingDaysOutOfRange = errors.New("working_days 必须在 0-5 之间")
	ErrHoursOutOfRange       = errors.New("单日小时数必须在 0-24 之间")
	ErrInvalidDate           = errors.New("日期格式无效，应为 YYYY-MM-DD")
)

const dateLayout = "2006-01-02"

// ScheduleService 排班业务接口
//
// 设计说明：
//   - GetWeek 接受一周内任意日期，服务端归一化到周一后解析
//   - 全局排班记录缺失不视为错误，按配置的兜底工作日数解析
//   - 周覆盖整周生效；RevertToDefault 幂等，重复删除不报错
type ScheduleService interface {
	GetWeek(ctx context.Context, userID string, date string) (*dto.WeekScheduleResponse, error)
	GetGlobal(ctx context.Context, userID string) (*dto.GlobalScheduleResponse, error)
	SetGlobal(ctx context.Context, userID string, req *dto.UpdateGlobalScheduleRequest) (*dto.GlobalScheduleResponse, error)
	SetOverride(ctx context.Context, userID string, req *dto.UpsertOverrideRequest) (*dto.WeekScheduleResponse, error)
	ListOverrides(ctx context.Context, userID string, limit int) ([]dto.WeekScheduleResponse, error)
	RevertToDefault(ctx context.Context, userID string, date string) error
	PayPeriod(ctx context.Context, date string) (*dto.PayPeriodResponse, error)
}

type scheduleService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{cfg: cfg, repo: repo, logger: logger}
}

// resolveWeekSchedule 查询用户某周的排班变体：
// 覆盖存在则取覆盖，否则取全局 working_days（记录缺失时用配置兜底）
func resolveWeekSchedule(
	ctx context.Context,
	repo *repository.Repository,
	cfg *config.ScheduleConfig,
	userID string,
	weekStart time.Time,
) (schedule.WeekSchedule, *model.WeeklyOverride, error) {
	override, err := repo.WeeklyOverride.GetByUserAndWeek(ctx, userID, weekStart)
	if err == nil {
		return schedule.OverrideSchedule(override.HoursByDay()), override, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return schedule.WeekSchedule{}, nil, err
	}

	global, err := repo.WorkSchedule.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return schedule.DefaultSchedule(cfg.DefaultWorkingDays), nil, nil
		}
		return schedule.WeekSchedule{}, nil, err
	}
	return schedule.DefaultSchedule(global.WorkingDays), nil, nil
}

func (s *scheduleService) GetWeek(ctx context.Context, userID string, date string) (*dto.WeekScheduleResponse, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	weekStart := schedule.WeekStart(day)

	ws, override, err := resolveWeekSchedule(ctx, s.repo, &s.cfg.Schedule, userID, weekStart)
	if err != nil {
		s.logger.Error("查询周排班失败", zap.Error(err))
		return nil, err
	}

	week := ws.Resolve(s.cfg.Schedule.StandardDayHours)

	resp := &dto.WeekScheduleResponse{
		UserID:           userID,
		WeekStart:        weekStart.Format(dateLayout),
		HoursByDay:       week.HoursByDay,
		HasOverride:      week.HasOverride,
		TotalWeeklyHours: week.TotalHours(),
		WorkingDayCount:  week.WorkingDayCount(),
	}
	if override != nil && override.Notes != nil {
		resp.Notes = *override.Notes
	}
	return resp, nil
}

func (s *scheduleService) GetGlobal(ctx context.Context, userID string) (*dto.GlobalScheduleResponse, error) {
	global, err := s.repo.WorkSchedule.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 记录缺失时返回兜底视图，不报错
			return &dto.GlobalScheduleResponse{
				UserID:      userID,
				WorkingDays: s.cfg.Schedule.DefaultWorkingDays,
			}, nil
		}
		s.logger.Error("查询全局排班失败", zap.Error(err))
		return nil, err
	}
	return &dto.GlobalScheduleResponse{
		UserID:              global.UserID,
		WorkingDays:         global.WorkingDays,
		AllowHolidayEntries: global.AllowHolidayEntries,
	}, nil
}

func (s *scheduleService) SetGlobal(ctx context.Context, userID string, req *dto.UpdateGlobalScheduleRequest) (*dto.GlobalScheduleResponse, error) {
	// 越界值直接拒绝，不做静默钳制
	if req.WorkingDays != nil && (*req.WorkingDays < 0 || *req.WorkingDays > 5) {
		return nil, ErrWorkingDaysOutOfRange
	}

	// 以现有记录（或兜底默认）为基底做部分更新
	current, err := s.GetGlobal(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := model.WorkSchedule{
		UserID:              userID,
		WorkingDays:         current.WorkingDays,
		AllowHolidayEntries: current.AllowHolidayEntries,
	}
	if req.WorkingDays != nil {
		next.WorkingDays = *req.WorkingDays
	}
	if req.AllowHolidayEntries != nil {
		next.AllowHolidayEntries = *req.AllowHolidayEntries
	}

	if err := s.repo.WorkSchedule.Upsert(ctx, &next); err != nil {
		s.logger.Error("写入全局排班失败", zap.Error(err))
		return nil, err
	}

	return &dto.GlobalScheduleResponse{
		UserID:              userID,
		WorkingDays:         next.WorkingDays,
		AllowHolidayEntries: next.AllowHolidayEntries,
	}, nil
}

func (s *scheduleService) SetOverride(ctx context.Context, userID string, req *dto.UpsertOverrideRequest) (*dto.WeekScheduleResponse, error) {
	day, err := time.Parse(dateLayout, req.WeekStart)
	if err != nil {
		return nil, ErrInvalidDate
	}
	weekStart := schedule.WeekStart(day)

	hours := [7]float64{
		req.MondayHours, req.TuesdayHours, req.WednesdayHours, req.ThursdayHours,
		req.FridayHours, req.SaturdayHours, req.SundayHours,
	}
	for _, h := range hours {
		if h < 0 || h > s.cfg.Schedule.MaxDayHours {
			return nil, fmt.Errorf("%w: %.2f", ErrHoursOutOfRange, h)
		}
	}

	override := &model.WeeklyOverride{
		UserID:        userID,
		WeekStartDate: weekStart,
		Notes:         req.Notes,
	}
	override.SetHoursByDay(hours)

	if err := s.repo.WeeklyOverride.Upsert(ctx, override); err != nil {
		s.logger.Error("写入周覆盖排班失败", zap.Error(err))
		return nil, err
	}

	week := schedule.OverrideSchedule(hours).Resolve(s.cfg.Schedule.StandardDayHours)
	resp := &dto.WeekScheduleResponse{
		UserID:           userID,
		WeekStart:        weekStart.Format(dateLayout),
		HoursByDay:       week.HoursByDay,
		HasOverride:      true,
		TotalWeeklyHours: week.TotalHours(),
		WorkingDayCount:  week.WorkingDayCount(),
	}
	if req.Notes != nil {
		resp.Notes = *req.Notes
	}
	return resp, nil
}

func (s *scheduleService) ListOverrides(ctx context.Context, userID string, limit int) ([]dto.WeekScheduleResponse, error) {
	if limit <= 0 || limit > 52 {
		limit = 12
	}

	overrides, err := s.repo.WeeklyOverride.ListByUser(ctx, userID, limit)
	if err != nil {
		s.logger.Error("查询周覆盖排班列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.WeekScheduleResponse, 0, len(overrides))
	for i := range overrides {
		o := &overrides[i]
		week := schedule.OverrideSchedule(o.HoursByDay()).Resolve(s.cfg.Schedule.StandardDayHours)
		item := dto.WeekScheduleResponse{
			UserID:           o.UserID,
			WeekStart:        o.WeekStartDate.Format(dateLayout),
			HoursByDay:       week.HoursByDay,
			HasOverride:      true,
			TotalWeeklyHours: week.TotalHours(),
			WorkingDayCount:  week.WorkingDayCount(),
		}
		if o.Notes != nil {
			item.Notes = *o.Notes
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func (s *scheduleService) RevertToDefault(ctx context.Context, userID string, date string) error {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return ErrInvalidDate
	}
	weekStart := schedule.WeekStart(day)

	// 覆盖本就不存在时同样成功（幂等删除）
	if err := s.repo.WeeklyOverride.DeleteByUserAndWeek(ctx, userID, weekStart); err != nil {
		s.logger.Error("删除周覆盖排班失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *scheduleService) PayPeriod(ctx context.Context, date string) (*dto.PayPeriodResponse, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// 锚点已在配置校验阶段确认可解析
	anchor, err := time.Parse(dateLayout, s.cfg.Schedule.PayrollAnchor)
	if err != nil {
		return nil, err
	}

	period := schedule.PeriodFor(day, anchor)
	return &dto.PayPeriodResponse{
		Start: period.Start.Format(dateLayout),
		End:   period.End.Format(dateLayout),
	}, nil
}
