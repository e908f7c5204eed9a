package dto

import "time"

// RegisterUserRequest 注册
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	NickName string `json:"nickName" binding:"required,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"required,email"`
	Captcha  string `json:"captcha" binding:"required"`
}

func (r RegisterUserRequest) Validate() FieldErrors {
	return ValidateTags(r)
}

// LoginUserRequest 普通用户和管理员登录共用
type LoginUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginUserRequest) Validate() FieldErrors {
	return ValidateTags(r)
}

// UpdatePasswordRequest 忘记密码时通过邮箱验证码重置
type UpdatePasswordRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Captcha  string `json:"captcha" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func (r UpdatePasswordRequest) Validate() FieldErrors {
	return ValidateTags(r)
}

// UpdateUserRequest 修改个人信息，验证码发往账号当前邮箱
type UpdateUserRequest struct {
	HeadPic     string `json:"headPic" binding:"max=255"`
	NickName    string `json:"nickName" binding:"max=50"`
	PhoneNumber string `json:"phoneNumber" binding:"max=20"`
	Email       string `json:"email" binding:"omitempty,email"`
	Captcha     string `json:"captcha" binding:"required"`
}

func (r UpdateUserRequest) Validate() FieldErrors {
	return ValidateTags(r)
}

// UserListQuery 用户列表查询参数
type UserListQuery struct {
	Username string `form:"username"`
	NickName string `form:"nickName"`
	Email    string `form:"email"`
	PageNo   int    `form:"pageNo" binding:"gte=0"`
	PageSize int    `form:"pageSize" binding:"gte=0"`
}

func (q UserListQuery) Validate() FieldErrors {
	return ValidateTags(q)
}

// UserInfoVO 返回给客户端的用户信息，不含密码
type UserInfoVO struct {
	ID          uint      `json:"id"`
	Username    string    `json:"username"`
	NickName    string    `json:"nickName"`
	Email       string    `json:"email"`
	HeadPic     string    `json:"headPic"`
	PhoneNumber string    `json:"phoneNumber"`
	IsFrozen    bool      `json:"isFrozen"`
	IsAdmin     bool      `json:"isAdmin"`
	CreateTime  time.Time `json:"createTime"`
	Roles       []string  `json:"roles"`
	Permissions []string  `json:"permissions"`
}

// LoginUserVO 登录结果
type LoginUserVO struct {
	UserInfo     UserInfoVO `json:"userInfo"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}

// UserListVO 用户分页结果
type UserListVO struct {
	Users      []UserInfoVO `json:"users"`
	TotalCount int64        `json:"totalCount"`
}
