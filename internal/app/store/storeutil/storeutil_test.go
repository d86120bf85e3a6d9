package storeutil

import (
	"math"
	"testing"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, size         int64
		wantPage, wantSize int64
	}{
		{0, 0, 1, 500},
		{-2, 1001, 1, 1000},
		{4, 25, 4, 25},
		{math.MaxInt64, 25, math.MaxInt64 / 1000, 25},
	}
	for _, tt := range tests {
		p, s := ClampPage(tt.page, tt.size, 500, 1000)
		if p != tt.wantPage || s != tt.wantSize {
			t.Errorf("ClampPage(%d, %d) = %d, %d, want %d, %d", tt.page, tt.size, p, s, tt.wantPage, tt.wantSize)
		}
	}
}

func TestPaginate(t *testing.T) {
	opts := Paginate(50, 3)
	if opts.Limit == nil || *opts.Limit != 50 {
		t.Errorf("Limit = %v, want 50", opts.Limit)
	}
	if opts.Skip == nil || *opts.Skip != 100 {
		t.Errorf("Skip = %v, want 100", opts.Skip)
	}

	def := Paginate(0, 0)
	if *def.Limit != 20 || *def.Skip != 0 {
		t.Errorf("defaults = limit %d skip %d, want 20 and 0", *def.Limit, *def.Skip)
	}
}

func TestPaginate_HugePageDoesNotOverflow(t *testing.T) {
	for _, limit := range []int64{1, 7, 500, 1000} {
		opts := Paginate(limit, math.MaxInt64)
		if opts.Skip == nil || *opts.Skip < 0 {
			t.Errorf("Paginate(%d, MaxInt64) skip = %v, want non-negative", limit, opts.Skip)
		}
	}

	page, size := ClampPage(math.MaxInt64, 1000, 500, 1000)
	if skip := *Paginate(size, page).Skip; skip < 0 || skip > math.MaxInt64-size {
		t.Errorf("skip after ClampPage = %d", skip)
	}
}
