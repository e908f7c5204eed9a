package setup

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lxKylin/meeting-room/internal/domain"
)

// 初始账号的默认密码
const (
	seedAdminPassword = "111111"
	seedUserPassword  = "222222"
)

// SeedData 写入初始权限、角色、账号和会议室。
// 已存在管理员账号时跳过，可重复调用。
func SeedData(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return fmt.Errorf("seed: check admin user: %w", err)
	}
	if count > 0 {
		logrus.Info("Seed data already present, skipping")
		return nil
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash admin password: %w", err)
	}
	userHash, err := bcrypt.GenerateFromPassword([]byte(seedUserPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash user password: %w", err)
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		permissions := []domain.Permission{
			{Code: domain.PermRoomManage, Description: "manage meeting rooms"},
			{Code: domain.PermBookingApprove, Description: "approve, reject and unbind bookings"},
			{Code: domain.PermUserManage, Description: "list, freeze and unfreeze users"},
			{Code: domain.PermStatisticsView, Description: "view booking statistics"},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&permissions).Error; err != nil {
			return fmt.Errorf("create permissions: %w", err)
		}

		adminRole := domain.Role{Name: domain.RoleAdmin, Permissions: permissions}
		userRole := domain.Role{Name: domain.RoleUser}
		if err := tx.Create(&adminRole).Error; err != nil {
			return fmt.Errorf("create admin role: %w", err)
		}
		if err := tx.Create(&userRole).Error; err != nil {
			return fmt.Errorf("create user role: %w", err)
		}

		users := []domain.User{
			{
				Username: "admin", Password: string(adminHash), NickName: "admin",
				Email: "admin@example.com", PhoneNumber: "13233323333", IsAdmin: true,
				Roles: []domain.Role{adminRole},
			},
			{
				Username: "zhangsan", Password: string(userHash), NickName: "zhangsan",
				Email: "zhangsan@example.com", Roles: []domain.Role{userRole},
			},
		}
		if err := tx.Omit("Roles.*").Create(&users).Error; err != nil {
			return fmt.Errorf("create users: %w", err)
		}

		rooms := []domain.MeetingRoom{
			{Name: "木星", Capacity: 10, Location: "一层西", Equipment: "白板", Description: "冲突时找王五"},
			{Name: "金星", Capacity: 5, Location: "二层东", Equipment: "", Description: "冲突时找李四"},
			{Name: "天王星", Capacity: 30, Location: "三层东", Equipment: "白板，电视", Description: "冲突时找张三"},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rooms).Error; err != nil {
			return fmt.Errorf("create meeting rooms: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logrus.WithError(err).Warn("Seed data partially present, skipping")
			return nil
		}
		return fmt.Errorf("seed: %w", err)
	}

	logrus.Info("Seed data created")
	return nil
}
