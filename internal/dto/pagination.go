package dto

// PageParams are the common pagination query parameters.
type PageParams struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize,default=10" binding:"omitempty,min=1,max=100"`
}

// Offset converts page/pageSize into a SQL offset.
func (p PageParams) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Limit()
}

// Limit returns the effective page size.
func (p PageParams) Limit() int {
	if p.PageSize < 1 {
		return 10
	}
	return p.PageSize
}

// PageResponse is the list envelope shared by all paginated endpoints.
type PageResponse[T any] struct {
	Items           []T  `json:"items"`
	Page            int  `json:"page"`
	PageSize        int  `json:"pageSize"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// NewPageResponse assembles the envelope from a page of items and the total
// row count.
func NewPageResponse[T any](items []T, page, pageSize, totalCount int) PageResponse[T] {
	if items == nil {
		items = []T{}
	}
	if pageSize < 1 {
		pageSize = 10
	}
	totalPages := (totalCount + pageSize - 1) / pageSize
	return PageResponse[T]{
		Items:           items,
		Page:            page,
		PageSize:        pageSize,
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		HasPreviousPage: page > 1,
		HasNextPage:     page < totalPages,
	}
}
