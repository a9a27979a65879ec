package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rosterhub/backend/internal/model"
)

// WeeklyOverrideRepository 周排班覆盖数据访问接口
type WeeklyOverrideRepository interface {
	// GetByUserAndWeek 查询用户某周的覆盖记录；不存在时返回 gorm.ErrRecordNotFound
	GetByUserAndWeek(ctx context.Context, userID string, weekStart time.Time) (*model.WeeklyOverride, error)
	// Upsert 以 (user_id, week_start_date) 为冲突键写入覆盖记录
	Upsert(ctx context.Context, override *model.WeeklyOverride) error
	// DeleteByUserAndWeek 删除用户某周的覆盖记录，不存在时静默成功（幂等）
	DeleteByUserAndWeek(ctx context.Context, userID string, weekStart time.Time) error
	// ListByUser 查询用户的全部覆盖记录，按周倒序
	ListByUser(ctx context.Context, userID string, limit int) ([]model.WeeklyOverride, error)
}

// weeklyOverrideRepo WeeklyOverrideRepository 的 GORM 实现
type weeklyOverrideRepo struct {
	db *gorm.DB
}

// NewWeeklyOverrideRepo 创建 WeeklyOverrideRepository 实例
func NewWeeklyOverrideRepo(db *gorm.DB) WeeklyOverrideRepository {
	return &weeklyOverrideRepo{db: db}
}

func (r *weeklyOverrideRepo) GetByUserAndWeek(ctx context.Context, userID string, weekStart time.Time) (*model.WeeklyOverride, error) {
	var override model.WeeklyOverride
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start_date = ?", userID, weekStart).
		First(&override).Error
	if err != nil {
		return nil, err
	}
	return &override, nil
}

func (r *weeklyOverrideRepo) Upsert(ctx context.Context, override *model.WeeklyOverride) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "week_start_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"monday_hours", "tuesday_hours", "wednesday_hours", "thursday_hours",
				"friday_hours", "saturday_hours", "sunday_hours", "notes", "updated_at",
			}),
		}).
		Create(override).Error
}

func (r *weeklyOverrideRepo) DeleteByUserAndWeek(ctx context.Context, userID string, weekStart time.Time) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND week_start_date = ?", userID, weekStart).
		Delete(&model.WeeklyOverride{}).Error
}

func (r *weeklyOverrideRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.WeeklyOverride, error) {
	var overrides []model.WeeklyOverride
	db := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("week_start_date DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}
