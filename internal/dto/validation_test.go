package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTags_UsesJSONNames(t *testing.T) {
	errs := RegisterUserRequest{Username: "zhangsan", Password: "123", Email: "not-an-email"}.Validate()

	assert.ElementsMatch(t, []string{"nickName", "password", "email", "captcha"}, errs.Fields())
	byField := map[string]string{}
	for _, e := range errs {
		byField[e.Field] = e.Message
	}
	assert.Equal(t, "nickName cannot be empty", byField["nickName"])
	assert.Equal(t, "password must be at least 6 characters", byField["password"])
	assert.Equal(t, "invalid email format", byField["email"])
}

func TestValidateTags_FormNamesAndPointers(t *testing.T) {
	long := "0123456789012345678901234567890123456789012345678901234567890"
	errs := UpdateMeetingRoomRequest{Equipment: &long}.Validate()
	assert.ElementsMatch(t, []string{"id", "equipment"}, errs.Fields())

	errs = BookingListQuery{PageNo: -1}.Validate()
	assert.Equal(t, []string{"pageNo"}, errs.Fields())

	assert.Empty(t, UpdateUserRequest{Captcha: "123456"}.Validate())
}

func TestCreateBookingRequest_Validate(t *testing.T) {
	now := time.Now()
	ok := CreateBookingRequest{MeetingRoomID: 1, StartTime: now.UnixMilli(), EndTime: now.Add(time.Hour).UnixMilli()}
	assert.Empty(t, ok.Validate())

	reversed := ok
	reversed.EndTime = now.Add(-time.Hour).UnixMilli()
	assert.Equal(t, []string{"endTime"}, reversed.Validate().Fields())

	// 缺少时间时只报缺失，不再比较先后
	missing := CreateBookingRequest{MeetingRoomID: 1, StartTime: now.UnixMilli()}
	errs := missing.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "endTime cannot be empty", errs[0].Message)
}

func TestStatisticsQuery_Validate(t *testing.T) {
	assert.Empty(t, StatisticsQuery{StartTime: "2026-10-01", EndTime: "2026-10-31 23:59:59"}.Validate())
	assert.ElementsMatch(t, []string{"startTime", "endTime"}, StatisticsQuery{}.Validate().Fields())
	assert.Equal(t, []string{"startTime"}, StatisticsQuery{StartTime: "yesterday", EndTime: "2026-10-31"}.Validate().Fields())
	assert.Equal(t, []string{"endTime"}, StatisticsQuery{StartTime: "2026-10-31", EndTime: "2026-10-01"}.Validate().Fields())
}
