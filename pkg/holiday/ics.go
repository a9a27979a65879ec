package holiday

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
)

// ICSSource 基于 iCalendar (RFC 5545) 假日日历的数据源
// 各州政府均发布公共假日 .ics 订阅文件，可下载后作为 API 不可用时的兜底。
// 文件在构造时一次性解析，Lookup 为纯内存查询。
type ICSSource struct {
	days   map[string]string // dateKey → holidayName
	logger *zap.Logger
}

// NewICSSource 解析本地 ICS 文件并构建 ICSSource
func NewICSSource(path string, logger *zap.Logger) (*ICSSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开假日日历文件失败: %w", err)
	}
	defer f.Close()

	return parseICS(f, logger)
}

// parseICS 从 Reader 解析 ICS 内容
func parseICS(r io.Reader, logger *zap.Logger) (*ICSSource, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("解析假日日历失败: %w", err)
	}

	days := make(map[string]string)
	for _, event := range cal.Events() {
		// 假日事件均为全天事件；个别日历以带时间的 DTSTART 表示，做兼容
		start, err := event.GetAllDayStartAt()
		if err != nil {
			start, err = event.GetStartAt()
			if err != nil {
				continue
			}
		}

		name := ""
		if prop := event.GetProperty(ics.ComponentPropertySummary); prop != nil {
			name = prop.Value
		}
		if name == "" {
			continue
		}

		days[DateKey(start)] = name
	}

	logger.Info("假日日历已加载", zap.Int("count", len(days)))

	return &ICSSource{days: days, logger: logger}, nil
}

// Lookup 查询指定日期是否为公共假日
func (s *ICSSource) Lookup(_ context.Context, date time.Time) (Result, error) {
	if name, ok := s.days[DateKey(date)]; ok {
		return Result{IsHoliday: true, Name: name}, nil
	}
	return Result{}, nil
}
