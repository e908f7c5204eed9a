package repository

import (
	"context"

	"github.com/lxKylin/meeting-room/internal/domain"
)

// RoleRepository 角色数据的访问接口。
type RoleRepository interface {
	// FindByNames 按名称批量查找角色，不存在的名称会被忽略。
	FindByNames(ctx context.Context, names []string) ([]domain.Role, error)
}
