package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePermissions_Dedup(t *testing.T) {
	roles := []Role{
		{Name: RoleAdmin, Permissions: []Permission{{Code: PermRoomManage}, {Code: PermBookingApprove}}},
		{Name: RoleUser, Permissions: []Permission{{Code: PermBookingApprove}, {Code: PermStatisticsView}}},
	}

	perms := EffectivePermissions(roles)

	assert.Equal(t, []string{PermRoomManage, PermBookingApprove, PermStatisticsView}, perms)
	assert.Equal(t, []string{RoleAdmin, RoleUser}, RoleNames(roles))
}

func TestEffectivePermissions_NoRoles(t *testing.T) {
	u := &User{}
	assert.Empty(t, u.Permissions())
	assert.NotNil(t, u.Permissions(), "空权限集合应序列化为 []")
}
