package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lxKylin/meeting-room/internal/domain"
	"github.com/lxKylin/meeting-room/internal/repository"
)

// GormUserRepository 是 UserRepository 接口的 GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository 创建 GormUserRepository 实例
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	if db == nil {
		panic("database connection cannot be nil for GormUserRepository")
	}
	return &GormUserRepository{db: db}
}

// withRoles 预加载角色及其权限
func (r *GormUserRepository) withRoles(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Roles.Permissions")
}

// FindByID 实现根据用户 ID 查找用户
func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.withRoles(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: find user by id %d: %w", id, err)
	}
	return &user, nil
}

// FindByUsername 实现根据用户名查找用户
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string, adminOnly bool) (*domain.User, error) {
	var user domain.User
	query := r.withRoles(ctx).Where("username = ?", username)
	if adminOnly {
		query = query.Where("is_admin = ?", true)
	}
	err := query.First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: find user by username '%s': %w", username, err)
	}
	return &user, nil
}

// FindFirstAdmin 按 ID 取第一个管理员
func (r *GormUserRepository) FindFirstAdmin(ctx context.Context) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("is_admin = ?", true).Order("id").First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: find first admin: %w", err)
	}
	return &user, nil
}

// Create 插入用户，同时写入 user_roles 关联
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Omit("Roles.*").Create(user).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: create user (username: %s): %w", user.Username, err)
	}
	return nil
}

// Save 更新用户资料，不修改角色关联
func (r *GormUserRepository) Save(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Omit("Roles").Save(user).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save user (id: %d, username: %s): %w", user.ID, user.Username, err)
	}
	return nil
}

// UpdateFrozen 修改冻结状态
func (r *GormUserRepository) UpdateFrozen(ctx context.Context, id uint, frozen bool) error {
	result := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("is_frozen", frozen)
	if result.Error != nil {
		return fmt.Errorf("gorm: update frozen for user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		// 状态未变化时 MySQL 也返回 0 行，需要区分用户是否存在
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("gorm: count user %d: %w", id, err)
		}
		if count == 0 {
			return repository.ErrUserNotFound
		}
	}
	return nil
}

// List 分页模糊查询
func (r *GormUserRepository) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.User{})
	if filter.Username != "" {
		query = query.Where("username LIKE ?", likePattern(filter.Username))
	}
	if filter.NickName != "" {
		query = query.Where("nick_name LIKE ?", likePattern(filter.NickName))
	}
	if filter.Email != "" {
		query = query.Where("email LIKE ?", likePattern(filter.Email))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("gorm: count users: %w", err)
	}

	var users []domain.User
	err := query.Order("id").Offset(filter.Offset()).Limit(filter.Limit()).Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("gorm: list users: %w", err)
	}
	return users, total, nil
}
