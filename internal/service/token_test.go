package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxKylin/meeting-room/internal/domain"
	"github.com/lxKylin/meeting-room/internal/service"
)

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	issuer := newTestIssuer()
	user := userWithRoles()

	pair, err := issuer.IssuePair(user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := issuer.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "zhangsan", claims.Username)
	assert.Equal(t, []string{domain.RoleUser}, claims.Roles)
	assert.True(t, claims.HasPermission(domain.PermStatisticsView))
	assert.False(t, claims.HasPermission(domain.PermRoomManage))

	refresh, err := issuer.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), refresh.UserID)
	assert.Empty(t, refresh.Permissions, "refresh token 不携带权限")
}

func TestTokenIssuer_RejectsWrongType(t *testing.T) {
	issuer := newTestIssuer()
	pair, err := issuer.IssuePair(userWithRoles())
	require.NoError(t, err)

	_, err = issuer.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, service.ErrWrongTokenType)

	_, err = issuer.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, service.ErrWrongTokenType)
}

func TestTokenIssuer_RejectsExpiredAndForeignTokens(t *testing.T) {
	short, err := service.NewTokenIssuer("test-secret", time.Nanosecond, time.Nanosecond)
	require.NoError(t, err)
	pair, err := short.IssuePair(userWithRoles())
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	_, err = short.ParseAccess(pair.AccessToken)
	assert.Error(t, err, "过期 token 应被拒绝")

	other, err := service.NewTokenIssuer("another-secret", 0, 0)
	require.NoError(t, err)
	fresh, err := other.IssuePair(userWithRoles())
	require.NoError(t, err)
	_, err = newTestIssuer().ParseAccess(fresh.AccessToken)
	assert.Error(t, err, "其他密钥签发的 token 应被拒绝")

	_, err = newTestIssuer().ParseAccess("not-a-jwt")
	assert.Error(t, err)
}

func TestNewTokenIssuer_EmptySecret(t *testing.T) {
	_, err := service.NewTokenIssuer("", time.Minute, time.Hour)
	assert.Error(t, err)
}
