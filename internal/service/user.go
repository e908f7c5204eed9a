package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/lxKylin/meeting-room/internal/dto"
	"github.com/lxKylin/meeting-room/internal/repository"
)

// UserService 负责个人信息维护和后台用户管理。
type UserService struct {
	userRepo repository.UserRepository
	captcha  *CaptchaService
}

// NewUserService 创建 UserService 实例。
func NewUserService(userRepo repository.UserRepository, captcha *CaptchaService) *UserService {
	if userRepo == nil || captcha == nil {
		panic("UserRepository and CaptchaService cannot be nil for UserService")
	}
	return &UserService{userRepo: userRepo, captcha: captcha}
}

// Info 返回当前用户的信息。
func (s *UserService) Info(ctx context.Context, userID uint) (*dto.UserInfoVO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to load user info")
		return nil, ErrInternalServer
	}
	vo := toUserInfoVO(user)
	return &vo, nil
}

// SendProfileCaptcha 向当前用户的邮箱发送修改信息的验证码。
func (s *UserService) SendProfileCaptcha(ctx context.Context, userID uint) error {
	info, err := s.Info(ctx, userID)
	if err != nil {
		return err
	}
	return s.captcha.Send(ctx, PurposeUpdateUser, info.Email)
}

// UpdatePassword 凭邮箱验证码重置密码，邮箱必须与账号一致。
func (s *UserService) UpdatePassword(ctx context.Context, req dto.UpdatePasswordRequest) error {
	logCtx := logrus.WithFields(logrus.Fields{"username": req.Username, "email": req.Email})

	user, err := s.userRepo.FindByUsername(ctx, req.Username, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to load user for password update")
		return ErrInternalServer
	}
	if user.Email != req.Email {
		logCtx.Warn("Password update rejected: email mismatch")
		return ErrEmailMismatch
	}
	// 账号和邮箱确认后再消费验证码
	if err := s.captcha.Verify(ctx, PurposeUpdatePassword, req.Email, req.Captcha); err != nil {
		return err
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password")
		return ErrInternalServer
	}
	user.Password = hashed
	if err := s.userRepo.Save(ctx, user); err != nil {
		logCtx.WithError(err).Error("Failed to save new password")
		return ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("Password updated")
	return nil
}

// UpdateProfile 修改昵称、头像、手机号或邮箱，空字段保持不变。
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req dto.UpdateUserRequest) error {
	logCtx := logrus.WithField("user_id", userID)

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to load user for profile update")
		return ErrInternalServer
	}

	if err := s.captcha.Verify(ctx, PurposeUpdateUser, user.Email, req.Captcha); err != nil {
		return err
	}

	if req.NickName != "" {
		user.NickName = req.NickName
	}
	if req.HeadPic != "" {
		user.HeadPic = req.HeadPic
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		logCtx.WithError(err).Error("Failed to save profile")
		return ErrInternalServer
	}
	logCtx.Info("Profile updated")
	return nil
}

// Freeze 冻结用户，重复冻结不报错。
func (s *UserService) Freeze(ctx context.Context, userID uint) error {
	return s.setFrozen(ctx, userID, true)
}

// Unfreeze 解冻用户。
func (s *UserService) Unfreeze(ctx context.Context, userID uint) error {
	return s.setFrozen(ctx, userID, false)
}

func (s *UserService) setFrozen(ctx context.Context, userID uint, frozen bool) error {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "frozen": frozen})
	if err := s.userRepo.UpdateFrozen(ctx, userID, frozen); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to update frozen flag")
		return ErrInternalServer
	}
	logCtx.Info("User frozen flag updated")
	return nil
}

// List 分页查询用户。
func (s *UserService) List(ctx context.Context, q dto.UserListQuery) (*dto.UserListVO, error) {
	users, total, err := s.userRepo.List(ctx, repository.UserFilter{
		Username:   q.Username,
		NickName:   q.NickName,
		Email:      q.Email,
		Pagination: repository.Pagination{Page: q.PageNo, PageSize: q.PageSize},
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to list users")
		return nil, ErrInternalServer
	}

	vos := make([]dto.UserInfoVO, 0, len(users))
	for i := range users {
		vos = append(vos, toUserInfoVO(&users[i]))
	}
	return &dto.UserListVO{Users: vos, TotalCount: total}, nil
}
