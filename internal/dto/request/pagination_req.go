package request

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Pagination holds normalized page parameters parsed from the query string.
type Pagination struct {
	Page    int
	PerPage int
}

// Normalize clamps out-of-range values back to sane defaults.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}
