package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"rosterhub/backend/internal/model"
	pkgerrors "rosterhub/backend/pkg/errors"
)

// EntryRepository 工时记录数据访问接口
type EntryRepository interface {
	Create(ctx context.Context, entry *model.TimesheetEntry) error
	GetByID(ctx context.Context, id string) (*model.TimesheetEntry, error)
	// ListByUserAndDateRange 查询用户在 [from, to] 闭区间内的工时记录
	ListByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]model.TimesheetEntry, error)
	// ListPending 查询全部待审批记录（预加载用户），按提交时间升序
	ListPending(ctx context.Context, offset, limit int) ([]model.TimesheetEntry, int64, error)
	// UpdateApproval 将待审批记录置为 approved/rejected；
	// 记录已不处于 pending 时返回 pkgerrors.ErrOptimisticLock
	UpdateApproval(ctx context.Context, id, status, approverID string, decidedAt time.Time) error
}

// entryRepo EntryRepository 的 GORM 实现
type entryRepo struct {
	db *gorm.DB
}

// NewEntryRepo 创建 EntryRepository 实例
func NewEntryRepo(db *gorm.DB) EntryRepository {
	return &entryRepo{db: db}
}

func (r *entryRepo) Create(ctx context.Context, entry *model.TimesheetEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *entryRepo) GetByID(ctx context.Context, id string) (*model.TimesheetEntry, error) {
	var entry model.TimesheetEntry
	err := r.db.WithContext(ctx).
		Where("entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepo) ListByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]model.TimesheetEntry, error) {
	var entries []model.TimesheetEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_date >= ? AND entry_date <= ?", userID, from, to).
		Order("entry_date ASC, created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepo) ListPending(ctx context.Context, offset, limit int) ([]model.TimesheetEntry, int64, error) {
	var entries []model.TimesheetEntry
	var total int64

	db := r.db.WithContext(ctx).Model(&model.TimesheetEntry{}).
		Where("approval_status = ?", model.ApprovalPending)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("User").
		Offset(offset).Limit(limit).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// UpdateApproval 审批状态只允许从 pending 出发做单次迁移，
// 用条件更新保证两个审批人并发处理同一条记录时只有一人成功
func (r *entryRepo) UpdateApproval(ctx context.Context, id, status, approverID string, decidedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.TimesheetEntry{}).
		Where("entry_id = ? AND approval_status = ?", id, model.ApprovalPending).
		Updates(map[string]interface{}{
			"approval_status": status,
			"approved_by":     approverID,
			"approved_at":     decidedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}
