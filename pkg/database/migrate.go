package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations 启动时将数据库结构迁移到最新版本
// 迁移脚本随二进制嵌入，重复执行无副作用
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("读取内嵌迁移脚本失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("初始化迁移实例失败: %w", err)
	}

	switch err := m.Up(); {
	case err == nil:
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("数据库结构已是最新")
	default:
		return fmt.Errorf("应用迁移脚本失败: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		// dirty 说明上次迁移中断，需人工确认后再启动
		return fmt.Errorf("迁移版本 %d 处于 dirty 状态", version)
	}
	logger.Info("数据库迁移完成", zap.Uint("version", version))

	return nil
}
