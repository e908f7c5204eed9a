package domain

// Role 是一组权限的集合。
type Role struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(20);uniqueIndex;not null" json:"name"`
	Permissions []Permission `gorm:"many2many:role_permissions;" json:"permissions"`
}

// Permission 是一个权限码，例如 "room:manage"。
type Permission struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Description string `gorm:"type:varchar(100)" json:"description"`
}

// 内置角色与权限码
const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	PermRoomManage     = "room:manage"
	PermBookingApprove = "booking:approve"
	PermUserManage     = "user:manage"
	PermStatisticsView = "statistics:view"
)

// EffectivePermissions 合并所有角色的权限码并去重，保持首次出现的顺序。
func EffectivePermissions(roles []Role) []string {
	seen := make(map[string]struct{})
	perms := make([]string, 0)
	for _, role := range roles {
		for _, p := range role.Permissions {
			if _, ok := seen[p.Code]; ok {
				continue
			}
			seen[p.Code] = struct{}{}
			perms = append(perms, p.Code)
		}
	}
	return perms
}

// RoleNames 提取角色名。
func RoleNames(roles []Role) []string {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}
	return names
}
