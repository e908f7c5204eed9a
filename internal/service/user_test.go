package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lxKylin/meeting-room/internal/domain"
	"github.com/lxKylin/meeting-room/internal/dto"
	"github.com/lxKylin/meeting-room/internal/repository"
	"github.com/lxKylin/meeting-room/internal/repository/mocks"
	"github.com/lxKylin/meeting-room/internal/service"
)

func newUserService() (*service.UserService, *mocks.UserRepository, *mocks.CacheRepository, *fakeMailer) {
	users := new(mocks.UserRepository)
	cache := new(mocks.CacheRepository)
	mailer := &fakeMailer{}
	captcha := service.NewCaptchaService(cache, mailer, nil)
	return service.NewUserService(users, captcha), users, cache, mailer
}

func TestUserService_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	req := dto.UpdatePasswordRequest{Username: "zhangsan", Email: "zhangsan@example.com", Captcha: "123456", Password: "newpass"}

	t.Run("success", func(t *testing.T) {
		svc, users, cache, _ := newUserService()
		cache.On("Get", ctx, "update_password_captcha_zhangsan@example.com").Return("123456", nil).Once()
		cache.On("Delete", ctx, "update_password_captcha_zhangsan@example.com").Return(nil).Once()
		users.On("FindByUsername", ctx, "zhangsan", false).Return(userWithRoles(), nil).Once()
		users.On("Save", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("newpass")) == nil
		})).Return(nil).Once()

		require.NoError(t, svc.UpdatePassword(ctx, req))
		users.AssertExpectations(t)
	})

	t.Run("email mismatch keeps the code", func(t *testing.T) {
		svc, users, cache, _ := newUserService()
		other := req
		other.Email = "other@example.com"
		users.On("FindByUsername", ctx, "zhangsan", false).Return(userWithRoles(), nil).Once()

		err := svc.UpdatePassword(ctx, other)
		assert.ErrorIs(t, err, service.ErrEmailMismatch)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unknown username keeps the code", func(t *testing.T) {
		svc, users, cache, _ := newUserService()
		typo := req
		typo.Username = "zhangsna"
		users.On("FindByUsername", ctx, "zhangsna", false).Return(nil, repository.ErrNotFound).Once()

		err := svc.UpdatePassword(ctx, typo)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
		cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("wrong captcha", func(t *testing.T) {
		svc, users, cache, _ := newUserService()
		users.On("FindByUsername", ctx, "zhangsan", false).Return(userWithRoles(), nil).Once()
		cache.On("Get", ctx, mock.Anything).Return("000000", nil).Once()

		err := svc.UpdatePassword(ctx, req)
		assert.ErrorIs(t, err, service.ErrCaptchaIncorrect)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestUserService_UpdateProfile_UsesCurrentEmailForCaptcha(t *testing.T) {
	ctx := context.Background()
	svc, users, cache, _ := newUserService()

	users.On("FindByID", ctx, uint(7)).Return(userWithRoles(), nil).Once()
	cache.On("Get", ctx, "update_user_captcha_zhangsan@example.com").Return("123456", nil).Once()
	cache.On("Delete", ctx, "update_user_captcha_zhangsan@example.com").Return(nil).Once()
	users.On("Save", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.NickName == "张三" && u.Email == "new@example.com" && u.Username == "zhangsan"
	})).Return(nil).Once()

	err := svc.UpdateProfile(ctx, 7, dto.UpdateUserRequest{NickName: "张三", Email: "new@example.com", Captcha: "123456"})
	require.NoError(t, err)
	users.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestUserService_SendProfileCaptcha(t *testing.T) {
	ctx := context.Background()
	svc, users, cache, mailer := newUserService()
	users.On("FindByID", ctx, uint(7)).Return(userWithRoles(), nil).Once()
	cache.On("Set", ctx, "update_user_captcha_zhangsan@example.com", mock.Anything, service.CaptchaTTL).Return(nil).Once()

	require.NoError(t, svc.SendProfileCaptcha(ctx, 7))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "zhangsan@example.com", mailer.sent[0].To)
}

func TestUserService_FreezeAndList(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newUserService()

	users.On("UpdateFrozen", ctx, uint(7), true).Return(nil).Once()
	users.On("UpdateFrozen", ctx, uint(99), false).Return(repository.ErrNotFound).Once()
	require.NoError(t, svc.Freeze(ctx, 7))
	assert.ErrorIs(t, svc.Unfreeze(ctx, 99), service.ErrUserNotFound)

	users.On("List", ctx, repository.UserFilter{
		Username:   "zh",
		Pagination: repository.Pagination{Page: 2, PageSize: 5},
	}).Return([]domain.User{*userWithRoles()}, int64(6), nil).Once()

	vo, err := svc.List(ctx, dto.UserListQuery{Username: "zh", PageNo: 2, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(6), vo.TotalCount)
	require.Len(t, vo.Users, 1)
	assert.Equal(t, []string{domain.RoleUser}, vo.Users[0].Roles)
	users.AssertExpectations(t)
}
