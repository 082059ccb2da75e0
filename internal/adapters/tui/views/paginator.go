package views

// Paginator tracks a cursor over a list and the page it falls on.
// The page shown is always the one containing the cursor.
type Paginator struct {
	size   int
	total  int
	cursor int
}

// NewPaginator creates a paginator showing size rows per page
func NewPaginator(size int) *Paginator {
	if size <= 0 {
		size = 10
	}
	return &Paginator{size: size}
}

// SetPageSize changes the rows per page, e.g. after a resize. Zero is ignored.
func (p *Paginator) SetPageSize(size int) {
	if size > 0 {
		p.size = size
	}
}

// SetTotal sets the list length, pulling the cursor back inside it
func (p *Paginator) SetTotal(total int) {
	p.total = max(total, 0)
	p.SetCursor(p.cursor)
}

// Cursor returns the absolute index under the cursor
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor, clamped to the list
func (p *Paginator) SetCursor(i int) {
	p.cursor = max(min(i, p.total-1), 0)
}

// CursorUp moves up one row, reporting whether it moved
func (p *Paginator) CursorUp() bool {
	return p.move(p.cursor - 1)
}

// CursorDown moves down one row, reporting whether it moved
func (p *Paginator) CursorDown() bool {
	return p.move(p.cursor + 1)
}

// NextPage jumps to the first row of the next page
func (p *Paginator) NextPage() bool {
	return p.move(p.offset() + p.size)
}

// PrevPage jumps to the first row of the previous page
func (p *Paginator) PrevPage() bool {
	return p.move(p.offset() - p.size)
}

func (p *Paginator) move(i int) bool {
	if i < 0 || i >= p.total {
		return false
	}
	p.cursor = i
	return true
}

func (p *Paginator) offset() int {
	return p.cursor / p.size * p.size
}

// VisibleRange returns the half-open [start, end) rows of the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.offset()
	return start, min(start+p.size, p.total)
}

// CurrentPage is 1-based
func (p *Paginator) CurrentPage() int {
	return p.offset()/p.size + 1
}

// TotalPages is at least 1, even for an empty list
func (p *Paginator) TotalPages() int {
	return max((p.total+p.size-1)/p.size, 1)
}

// Reset empties the list and moves the cursor home
func (p *Paginator) Reset() {
	p.total = 0
	p.cursor = 0
}
