package request

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type PaginatedRequest struct {
	Page  int `json:"page" validate:"min=1"`
	Limit int `json:"limit" validate:"min=1,max=100"`
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize()
}

// PageSize is Limit bounded to [1, 100], defaulting to 10.
func (p PaginatedRequest) PageSize() int {
	if p.Limit < 1 {
		return defaultPageSize
	}
	if p.Limit > maxPageSize {
		return maxPageSize
	}
	return p.Limit
}
