package repository

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination 分页参数，Page 从 1 开始。
type Pagination struct {
	Page     int
	PageSize int
}

// Normalize 修正越界的分页参数。
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset 跳过的记录数
func (p Pagination) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Limit 每页记录数
func (p Pagination) Limit() int {
	return p.Normalize().PageSize
}
