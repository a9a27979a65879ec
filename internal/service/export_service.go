package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"rosterhub/backend/config"
	"rosterhub/backend/internal/model"
	"rosterhub/backend/internal/repository"
	"rosterhub/backend/internal/schedule"
)

// ── 导出模块业务错误 ──

var (
	ErrExportUserNotFound = errors.New("导出目标用户不存在")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 一期仅实现单用户单周工时表导出为 Excel (.xlsx)
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - 排班小时来自该周有效排班（覆盖优先），与工时记录逐日对照
type ExportService interface {
	// ExportWeek 导出某用户某周的工时表
	// 返回值：buf（Excel 内容）, filename（建议文件名）, error
	ExportWeek(ctx context.Context, userID string, date string) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportWeek — 导出单周工时表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "工时表"
//   - 行：周一 ~ 周日，每天一行
//   - 列：日期 / 星期 / 排班小时 / 实际填报小时 / 审批状态 / 备注
//   - 末行：合计

var weekdayNames = [7]string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

func (s *exportService) ExportWeek(ctx context.Context, userID string, date string) (*bytes.Buffer, string, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, "", ErrInvalidDate
	}
	weekStart := schedule.WeekStart(day)

	// 1. 确认用户存在（文件名使用姓名）
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrExportUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 解析该周有效排班
	ws, _, err := resolveWeekSchedule(ctx, s.repo, &s.cfg.Schedule, userID, weekStart)
	if err != nil {
		s.logger.Error("解析周排班失败", zap.Error(err))
		return nil, "", err
	}
	week := ws.Resolve(s.cfg.Schedule.StandardDayHours)

	// 3. 查询该周工时记录，按日聚合
	entries, err := s.repo.Entry.ListByUserAndDateRange(ctx, userID, weekStart, schedule.WeekEnd(day))
	if err != nil {
		s.logger.Error("查询周工时记录失败", zap.Error(err))
		return nil, "", err
	}

	type dayAgg struct {
		logged float64
		status string
		desc   string
	}
	byDay := make(map[string]*dayAgg)
	for i := range entries {
		e := &entries[i]
		key := schedule.DateKey(e.EntryDate)
		agg, ok := byDay[key]
		if !ok {
			agg = &dayAgg{status: e.ApprovalStatus}
			byDay[key] = agg
		}
		agg.logged += e.HoursLogged
		if e.ApprovalStatus == model.ApprovalPending {
			// 同日多条记录时，存在待审批即整日标记待审批
			agg.status = model.ApprovalPending
		}
		if e.Description != "" {
			if agg.desc != "" {
				agg.desc += "; "
			}
			agg.desc += e.Description
		}
	}

	// 4. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "工时表"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"日期", "星期", "排班小时", "实际填报小时", "审批状态", "备注"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	var totalScheduled, totalLogged float64
	for i := 0; i < schedule.DaysPerWeek; i++ {
		d := weekStart.AddDate(0, 0, i)
		row := i + 2
		agg := byDay[schedule.DateKey(d)]

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), d.Format(dateLayout))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), weekdayNames[i])
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), week.HoursByDay[i])
		totalScheduled += week.HoursByDay[i]
		if agg != nil {
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), agg.logged)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), agg.status)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), agg.desc)
			totalLogged += agg.logged
		}
	}

	totalRow := schedule.DaysPerWeek + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "合计")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", totalRow), totalScheduled)
	f.SetCellValue(sheet, fmt.Sprintf("D%d", totalRow), totalLogged)

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "F", "F", 30)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("工时表_%s_%s.xlsx", user.Name, weekStart.Format(dateLayout))
	return buf, filename, nil
}
