package kernel

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize clamps the options to sane values.
func (p PaginationOptions) Normalize() PaginationOptions {
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

type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

// Paginate slices an already filtered, ordered list.
func Paginate[T any](items []T, opts PaginationOptions) *Paginated[T] {
	opts = opts.Normalize()
	total := len(items)

	start := (opts.Page - 1) * opts.PageSize
	if start > total {
		start = total
	}
	end := start + opts.PageSize
	if end > total {
		end = total
	}

	page := make([]T, end-start)
	copy(page, items[start:end])

	return &Paginated[T]{
		Items: page,
		Page: Page{
			Number: opts.Page,
			Size:   opts.PageSize,
			Total:  total,
			Pages:  (total + opts.PageSize - 1) / opts.PageSize,
		},
		Empty: len(page) == 0,
	}
}
