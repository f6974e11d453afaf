package repository

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

// Page represents a simple limit/offset window for listing operations.
// I keep it intentionally small; advanced filtering belongs to higher layers.
type Page struct {
	Limit  int
	Offset int
}

// Sanitize clamps the window to sane bounds.
func (p Page) Sanitize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// PageResult carries a slice of items and the total count matching the query.
// I return the total so clients can compute pagination without an extra round trip.
type PageResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Paginate cuts an in-memory slice down to the window.
func Paginate[T any](items []T, p Page) PageResult[T] {
	p = p.Sanitize()
	out := PageResult[T]{Items: make([]T, 0), Total: len(items)}
	if p.Offset >= len(items) {
		return out
	}
	end := min(p.Offset+p.Limit, len(items))
	out.Items = append(out.Items, items[p.Offset:end]...)
	return out
}
