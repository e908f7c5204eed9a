package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lxKylin/meeting-room/internal/domain"
)

// MigrateDB 按依赖顺序迁移全部表结构，返回错误以便调用者知道迁移是否成功。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	// 关联表 user_roles 和 role_permissions 由 many2many 标签生成
	models := []interface{}{
		&domain.Permission{},
		&domain.Role{},
		&domain.User{},
		&domain.MeetingRoom{},
		&domain.Booking{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			logrus.Errorf("Failed to auto-migrate %T: %v", m, err)
			return fmt.Errorf("failed to auto-migrate %T: %w", m, err)
		}
	}

	logrus.Info("Database migration completed successfully")
	return nil
}
