package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/lxKylin/meeting-room/internal/domain"
)

// GormRoleRepository 是 RoleRepository 接口的 GORM 实现
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository 创建 GormRoleRepository 实例
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	if db == nil {
		panic("database connection cannot be nil for GormRoleRepository")
	}
	return &GormRoleRepository{db: db}
}

// FindByNames 按名称批量查找角色
func (r *GormRoleRepository) FindByNames(ctx context.Context, names []string) ([]domain.Role, error) {
	var roles []domain.Role
	if len(names) == 0 {
		return roles, nil
	}
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("gorm: find roles by names %v: %w", names, err)
	}
	return roles, nil
}
