// Package domain 定义了预定系统使用的数据模型。
package domain

import "time"

// User 表示系统用户，Roles 通过 user_roles 中间表关联。
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"type:varchar(50);uniqueIndex:idx_username;not null" json:"username"`
	Password    string    `gorm:"type:varchar(100);not null" json:"-"` // bcrypt 哈希
	NickName    string    `gorm:"type:varchar(50)" json:"nickName"`
	Email       string    `gorm:"type:varchar(191);not null" json:"email"`
	HeadPic     string    `gorm:"type:varchar(255)" json:"headPic"`
	PhoneNumber string    `gorm:"type:varchar(20)" json:"phoneNumber"`
	IsFrozen    bool      `gorm:"not null;default:false" json:"isFrozen"`
	IsAdmin     bool      `gorm:"not null;default:false;index" json:"isAdmin"`
	Roles       []Role    `gorm:"many2many:user_roles;" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updateTime"`
}

// Permissions 返回用户当前的有效权限集合。
func (u *User) Permissions() []string {
	return EffectivePermissions(u.Roles)
}

// RoleNames 返回用户拥有的角色名。
func (u *User) RoleNames() []string {
	return RoleNames(u.Roles)
}
