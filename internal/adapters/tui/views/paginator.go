package views

// Paginator keeps a cursor inside a window of pageSize rows
type Paginator struct {
	pageSize int
	offset   int
	cursor   int
	total    int
}

// NewPaginator creates a paginator showing pageSize rows at a time
func NewPaginator(pageSize int) *Paginator {
	p := &Paginator{}
	p.SetPageSize(pageSize)
	return p
}

// SetPageSize changes the window height, keeping the cursor visible
func (p *Paginator) SetPageSize(n int) {
	p.pageSize = max(n, 1)
	p.follow()
}

// SetTotal sets the number of rows and clamps the cursor
func (p *Paginator) SetTotal(total int) {
	p.total = max(total, 0)
	p.cursor = min(p.cursor, max(p.total-1, 0))
	p.follow()
}

// Cursor returns the absolute cursor position
func (p *Paginator) Cursor() int {
	return p.cursor
}

// Up moves the cursor one row up
func (p *Paginator) Up() {
	if p.cursor > 0 {
		p.cursor--
		p.follow()
	}
}

// Down moves the cursor one row down
func (p *Paginator) Down() {
	if p.cursor < p.total-1 {
		p.cursor++
		p.follow()
	}
}

// PageUp moves the cursor one page up
func (p *Paginator) PageUp() {
	p.cursor = max(p.cursor-p.pageSize, 0)
	p.follow()
}

// PageDown moves the cursor one page down
func (p *Paginator) PageDown() {
	p.cursor = max(min(p.cursor+p.pageSize, p.total-1), 0)
	p.follow()
}

// Visible returns the half-open range of rows to render
func (p *Paginator) Visible() (start, end int) {
	return p.offset, min(p.offset+p.pageSize, p.total)
}

// Page returns the 1-based page of the cursor and the page count
func (p *Paginator) Page() (current, pages int) {
	pages = max((p.total+p.pageSize-1)/p.pageSize, 1)
	return p.offset/p.pageSize + 1, pages
}

// follow scrolls the window so that it contains the cursor
func (p *Paginator) follow() {
	if p.cursor < p.offset || p.cursor >= p.offset+p.pageSize {
		p.offset = (p.cursor / p.pageSize) * p.pageSize
	}
}
