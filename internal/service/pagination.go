package service

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination describes the page returned alongside a list.
type Pagination struct {
	Page       int `json:"page"`
	Size       int `json:"size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Page is a slice of results plus its pagination block.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NormalizePage clamps page and size to their accepted ranges.
func NormalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

func offsetOf(page, size int) int {
	return (page - 1) * size
}

func newPagination(page, size, total int) Pagination {
	return Pagination{
		Page:       page,
		Size:       size,
		TotalItems: total,
		TotalPages: (total + size - 1) / size,
	}
}

func newPage[T any](items []T, page, size, total int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Pagination: newPagination(page, size, total)}
}
