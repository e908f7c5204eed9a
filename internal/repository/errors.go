package repository

import "errors"

// 通用的存储库错误
var (
	// ErrNotFound 表示请求的记录未找到
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry 表示尝试插入或更新的数据违反了唯一约束
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
	// ErrConflict 表示预定时段与已有的有效预定重叠
	ErrConflict = errors.New("repository: booking time conflict")
	// ErrInvalidTransition 表示预定当前状态不允许改为目标状态
	ErrInvalidTransition = errors.New("repository: booking status transition not allowed")
	// ErrCacheMiss 表示缓存中不存在该 key
	ErrCacheMiss = errors.New("repository: cache miss")
)

// 特定资源的错误
var (
	ErrUserNotFound    = ErrNotFound
	ErrRoomNotFound    = ErrNotFound
	ErrBookingNotFound = ErrNotFound
)
