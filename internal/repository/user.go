package repository

import (
	"context"

	"github.com/lxKylin/meeting-room/internal/domain"
)

// UserFilter 用户列表的模糊查询条件，空字段表示不过滤。
type UserFilter struct {
	Username string
	NickName string
	Email    string
	Pagination
}

// UserRepository 定义了用户数据的存储和检索操作。
type UserRepository interface {
	// FindByID 根据 ID 查找用户，同时加载角色和权限。
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// FindByUsername 根据用户名查找用户，同时加载角色和权限。
	// adminOnly 为 true 时只匹配管理员账号。
	FindByUsername(ctx context.Context, username string, adminOnly bool) (*domain.User, error)

	// FindFirstAdmin 返回第一个管理员，用于发送催办邮件。
	FindFirstAdmin(ctx context.Context) (*domain.User, error)

	// Create 插入新用户，用户名冲突时返回 ErrDuplicateEntry。
	Create(ctx context.Context, user *domain.User) error

	// Save 更新用户的基本字段。
	Save(ctx context.Context, user *domain.User) error

	// UpdateFrozen 设置冻结状态，用户不存在时返回 ErrNotFound。
	UpdateFrozen(ctx context.Context, id uint, frozen bool) error

	// List 分页查询用户，返回当前页和总数。
	List(ctx context.Context, filter UserFilter) ([]domain.User, int64, error)
}
