package paginator

import "testing"

func TestAdjust(t *testing.T) {
	t.Run("defaults invalid values", func(t *testing.T) {
		q := PaginateQuery{Page: 0, Limit: -1}
		q.Adjust()
		if q.Page != defaultPage || q.Limit != defaultLimit {
			t.Errorf("unexpected query after adjust: %+v", q)
		}
	})

	t.Run("caps the limit", func(t *testing.T) {
		q := PaginateQuery{Page: 2, Limit: 10000}
		q.Adjust()
		if q.Limit != maxLimit {
			t.Errorf("expected limit %d, got %d", maxLimit, q.Limit)
		}
		if q.Page != 2 {
			t.Errorf("valid page must not change, got %d", q.Page)
		}
	})
}

func TestOffset(t *testing.T) {
	q := PaginateQuery{Page: 3, Limit: 20}
	if got := q.Offset(); got != 40 {
		t.Errorf("expected offset 40, got %d", got)
	}
}

func TestToResponse(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		resp := Paginator{Total: 45, Count: 20, PerPage: 20, CurrentPage: 2}.ToResponse()
		if resp.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", resp.TotalPages)
		}
		if !resp.HasNext || !resp.HasPrev {
			t.Errorf("middle page must have both neighbours: %+v", resp)
		}
	})

	t.Run("empty result", func(t *testing.T) {
		resp := Paginator{Total: 0, PerPage: 20, CurrentPage: 1}.ToResponse()
		if resp.TotalPages != 0 || resp.HasNext || resp.HasPrev {
			t.Errorf("unexpected response for empty result: %+v", resp)
		}
	})
}
