package model

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

func NewPaging(page, size, total int) Paging {
	p := Paging{Page: page, PageSize: size, TotalElements: total, TotalPages: 1}
	if size > 0 && total > 0 {
		p.TotalPages = (total + size - 1) / size
	}
	return p
}

// Offset is the number of rows to skip for a 1-based page.
func (p Paging) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
