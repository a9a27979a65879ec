package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultFetchTimeout = 10 * time.Second

// apiHoliday 公共假日 API 的单条记录（Nager.Date v3 结构）
type apiHoliday struct {
	Date      string   `json:"date"`      // "2024-06-03"
	LocalName string   `json:"localName"` // 本地名称
	Name      string   `json:"name"`      // 英文名称
	Counties  []string `json:"counties"`  // 适用辖区；空表示全国
	Global    bool     `json:"global"`
}

// APISource 基于公共假日 HTTP API 的数据源
// 按年份整批拉取并在进程内缓存，单日查询在缓存命中后为纯内存操作
type APISource struct {
	httpClient  *http.Client
	baseURL     string
	countryCode string
	subdivision string
	logger      *zap.Logger

	mu    sync.RWMutex
	years map[int]map[string]string // year → dateKey → holidayName
}

// NewAPISource 创建 APISource
func NewAPISource(baseURL, countryCode, subdivision string, timeout time.Duration, logger *zap.Logger) *APISource {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &APISource{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		countryCode: countryCode,
		subdivision: subdivision,
		logger:      logger,
		years:       make(map[int]map[string]string),
	}
}

// Lookup 查询指定日期是否为公共假日
func (s *APISource) Lookup(ctx context.Context, date time.Time) (Result, error) {
	year := date.Year()

	s.mu.RLock()
	dayMap, ok := s.years[year]
	s.mu.RUnlock()

	if !ok {
		var err error
		dayMap, err = s.fetchYear(ctx, year)
		if err != nil {
			return Result{}, err
		}
		s.mu.Lock()
		s.years[year] = dayMap
		s.mu.Unlock()
	}

	if name, found := dayMap[DateKey(date)]; found {
		return Result{IsHoliday: true, Name: name}, nil
	}
	return Result{}, nil
}

// fetchYear 整年拉取并按辖区过滤
func (s *APISource) fetchYear(ctx context.Context, year int) (map[string]string, error) {
	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", s.baseURL, year, s.countryCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("构建假日查询请求失败: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("假日 API 请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("假日 API 返回状态 %d", resp.StatusCode)
	}

	var holidays []apiHoliday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("解析假日 API 响应失败: %w", err)
	}

	dayMap := make(map[string]string, len(holidays))
	for _, h := range holidays {
		if !s.applies(h) {
			continue
		}
		name := h.LocalName
		if name == "" {
			name = h.Name
		}
		dayMap[h.Date] = name
	}

	s.logger.Info("假日数据已加载",
		zap.Int("year", year),
		zap.String("country", s.countryCode),
		zap.String("subdivision", s.subdivision),
		zap.Int("count", len(dayMap)),
	)

	return dayMap, nil
}

// applies 判断假日是否适用于配置的辖区
// 全国性假日适用所有辖区；区域性假日需辖区代码匹配
func (s *APISource) applies(h apiHoliday) bool {
	if h.Global || len(h.Counties) == 0 {
		return true
	}
	if s.subdivision == "" {
		return false
	}
	for _, c := range h.Counties {
		if c == s.subdivision {
			return true
		}
	}
	return false
}
