package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/lxKylin/meeting-room/internal/domain"
	"github.com/lxKylin/meeting-room/internal/dto"
	"github.com/lxKylin/meeting-room/internal/repository"
)

// AuthService 负责注册、登录和 token 刷新。
type AuthService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	captcha  *CaptchaService
	tokens   *TokenIssuer
}

// NewAuthService 创建 AuthService 实例。
func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, captcha *CaptchaService, tokens *TokenIssuer) *AuthService {
	if userRepo == nil || roleRepo == nil {
		panic("UserRepository and RoleRepository cannot be nil for AuthService")
	}
	if captcha == nil || tokens == nil {
		panic("CaptchaService and TokenIssuer cannot be nil for AuthService")
	}
	return &AuthService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		captcha:  captcha,
		tokens:   tokens,
	}
}

// Register 校验注册验证码后创建普通用户。
func (s *AuthService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logCtx := logrus.WithFields(logrus.Fields{"username": req.Username, "email": req.Email})

	if err := s.captcha.Verify(ctx, PurposeRegister, req.Email, req.Captcha); err != nil {
		logCtx.WithError(err).Warn("Registration rejected: captcha check failed")
		return nil, err
	}

	existing, err := s.userRepo.FindByUsername(ctx, req.Username, false)
	if err == nil && existing != nil {
		logCtx.Warn("Registration rejected: username taken")
		return nil, ErrUserExists
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		logCtx.WithError(err).Error("Database error while checking username")
		return nil, ErrInternalServer
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during registration")
		return nil, ErrInternalServer
	}

	roles, err := s.roleRepo.FindByNames(ctx, []string{domain.RoleUser})
	if err != nil {
		logCtx.WithError(err).Error("Failed to load default role")
		return nil, ErrInternalServer
	}

	user := &domain.User{
		Username: req.Username,
		NickName: req.NickName,
		Password: hashed,
		Email:    req.Email,
		Roles:    roles,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("Registration rejected: duplicate entry")
			return nil, ErrUserExists
		}
		logCtx.WithError(err).Error("Database error during user creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User registered successfully")
	return user, nil
}

// Login 校验账号密码并签发 token，admin 为 true 时只允许管理员登录。
func (s *AuthService) Login(ctx context.Context, req dto.LoginUserRequest, admin bool) (*dto.LoginUserVO, error) {
	logCtx := logrus.WithFields(logrus.Fields{"username": req.Username, "admin": admin})

	user, err := s.userRepo.FindByUsername(ctx, req.Username, admin)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Login attempt failed: user not found")
			return nil, ErrAuthenticationFailed
		}
		logCtx.WithError(err).Error("Login attempt failed: error finding user")
		return nil, ErrInternalServer
	}

	if !checkPassword(req.Password, user.Password) {
		logCtx.Warn("Login attempt failed: invalid password")
		return nil, ErrAuthenticationFailed
	}
	if user.IsFrozen {
		logCtx.Warn("Login attempt failed: account frozen")
		return nil, ErrAccountFrozen
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		logCtx.WithError(err).Error("Failed to issue tokens during login")
		return nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in successfully")
	return &dto.LoginUserVO{
		UserInfo:     toUserInfoVO(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Refresh 用 refresh token 重新加载用户并签发新的一对 token，
// 期间角色或权限的变化会反映到新 token 中。
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, admin bool) (*TokenPair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		logrus.WithError(err).Warn("Refresh rejected: invalid refresh token")
		return nil, ErrTokenInvalid
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": claims.UserID, "admin": admin})

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Refresh rejected: user no longer exists")
			return nil, ErrTokenInvalid
		}
		logCtx.WithError(err).Error("Refresh failed: error loading user")
		return nil, ErrInternalServer
	}
	if admin && !user.IsAdmin {
		logCtx.Warn("Refresh rejected: user is not an administrator")
		return nil, ErrTokenInvalid
	}
	if user.IsFrozen {
		logCtx.Warn("Refresh rejected: account is frozen")
		return nil, ErrAccountFrozen
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		logCtx.WithError(err).Error("Failed to issue tokens during refresh")
		return nil, ErrInternalServer
	}
	return &pair, nil
}

// hashPassword 使用 bcrypt 对密码进行哈希处理
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

// checkPassword 验证提供的密码是否与存储的哈希匹配
func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func toUserInfoVO(u *domain.User) dto.UserInfoVO {
	return dto.UserInfoVO{
		ID:          u.ID,
		Username:    u.Username,
		NickName:    u.NickName,
		Email:       u.Email,
		HeadPic:     u.HeadPic,
		PhoneNumber: u.PhoneNumber,
		IsFrozen:    u.IsFrozen,
		IsAdmin:     u.IsAdmin,
		CreateTime:  u.CreatedAt,
		Roles:       u.RoleNames(),
		Permissions: u.Permissions(),
	}
}
