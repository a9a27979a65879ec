package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rosterhub/backend/internal/model"
)

// WorkScheduleRepository 全局排班数据访问接口
type WorkScheduleRepository interface {
	// GetByUser 查询用户的全局排班；不存在时返回 gorm.ErrRecordNotFound，
	// 由服务层按兜底默认值处理（记录缺失不是错误）
	GetByUser(ctx context.Context, userID string) (*model.WorkSchedule, error)
	// Upsert 以 user_id 为冲突键写入全局排班
	Upsert(ctx context.Context, schedule *model.WorkSchedule) error
}

// workScheduleRepo WorkScheduleRepository 的 GORM 实现
type workScheduleRepo struct {
	db *gorm.DB
}

// NewWorkScheduleRepo 创建 WorkScheduleRepository 实例
func NewWorkScheduleRepo(db *gorm.DB) WorkScheduleRepository {
	return &workScheduleRepo{db: db}
}

func (r *workScheduleRepo) GetByUser(ctx context.Context, userID string) (*model.WorkSchedule, error) {
	var schedule model.WorkSchedule
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *workScheduleRepo) Upsert(ctx context.Context, schedule *model.WorkSchedule) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"working_days", "allow_holiday_entries", "updated_at"}),
		}).
		Create(schedule).Error
}
