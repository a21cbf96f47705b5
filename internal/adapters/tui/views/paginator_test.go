package views

import "testing"

func TestPaginator(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	for range 4 {
		p.Down()
	}
	if p.Cursor() != 4 {
		t.Fatalf("cursor = %d, want 4", p.Cursor())
	}
	if start, end := p.Visible(); start != 3 || end != 6 {
		t.Errorf("visible = [%d,%d), want [3,6)", start, end)
	}
	if cur, pages := p.Page(); cur != 2 || pages != 3 {
		t.Errorf("page = %d/%d, want 2/3", cur, pages)
	}

	p.PageDown()
	if p.Cursor() != 6 {
		t.Errorf("page down should stop at the last row, cursor = %d", p.Cursor())
	}
	if start, end := p.Visible(); start != 6 || end != 7 {
		t.Errorf("visible = [%d,%d), want [6,7)", start, end)
	}

	p.SetTotal(2)
	if p.Cursor() != 1 {
		t.Errorf("cursor not clamped after shrinking, got %d", p.Cursor())
	}
	if start, _ := p.Visible(); start != 0 {
		t.Errorf("window should scroll back, start = %d", start)
	}

	p.PageUp()
	p.Up()
	if p.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", p.Cursor())
	}
}

func TestPaginatorEmpty(t *testing.T) {
	p := NewPaginator(0)
	p.SetTotal(0)
	p.Down()
	p.PageDown()

	if p.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", p.Cursor())
	}
	if start, end := p.Visible(); start != 0 || end != 0 {
		t.Errorf("visible = [%d,%d), want empty", start, end)
	}
	if cur, pages := p.Page(); cur != 1 || pages != 1 {
		t.Errorf("page = %d/%d, want 1/1", cur, pages)
	}
}
