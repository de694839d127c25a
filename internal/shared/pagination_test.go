package shared

import (
	"net/http/httptest"
	"testing"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 35)
	if p.Page != 2 || p.Limit != 10 || p.Total != 35 || p.TotalPages != 4 {
		t.Fatalf("unexpected pagination: %+v", p)
	}

	empty := NewPagination(1, 10, 0)
	if empty.TotalPages != 0 {
		t.Fatalf("empty listing should have 0 pages, got %d", empty.TotalPages)
	}
}

func TestPageParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/posts?page=3&limit=25", nil)
	page, limit := PageParams(r, 10, 100)
	if page != 3 || limit != 25 {
		t.Fatalf("unexpected params: %d/%d", page, limit)
	}

	r = httptest.NewRequest("GET", "/posts?page=-1&limit=junk", nil)
	page, limit = PageParams(r, 10, 100)
	if page != 1 || limit != 10 {
		t.Fatalf("bad input must fall back to defaults, got %d/%d", page, limit)
	}

	r = httptest.NewRequest("GET", "/posts?limit=10000", nil)
	_, limit = PageParams(r, 10, 100)
	if limit != 100 {
		t.Fatalf("limit must clamp to max, got %d", limit)
	}
}

func TestOffset(t *testing.T) {
	if Offset(1, 10) != 0 || Offset(3, 10) != 20 || Offset(0, 10) != 0 {
		t.Fatal("unexpected offsets")
	}
}
