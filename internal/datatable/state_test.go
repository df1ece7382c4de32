package datatable

import "testing"

func TestNewViewState(t *testing.T) {
	s := NewViewState()
	want := ViewState{Search: "", SortField: "", SortDir: Asc, Page: 1, PageSize: 10}
	if s != want {
		t.Fatalf("initial state = %+v, want %+v", s, want)
	}
}

func TestApplySort_Toggle(t *testing.T) {
	s := NewViewState().ApplySort("name")
	if s.SortField != "name" || s.SortDir != Asc {
		t.Fatalf("first click: %+v", s)
	}

	s = s.ApplySort("name")
	if s.SortDir != Desc {
		t.Fatalf("second click should be desc, got %s", s.SortDir)
	}

	s = s.ApplySort("name")
	if s.SortDir != Asc {
		t.Fatalf("third click should return to asc, got %s", s.SortDir)
	}
}

func TestApplySort_OtherFieldResetsToAsc(t *testing.T) {
	s := NewViewState().ApplySort("name").ApplySort("name")
	if s.SortDir != Desc {
		t.Fatal("setup: expected desc")
	}

	s = s.ApplySort("amount")
	if s.SortField != "amount" || s.SortDir != Asc {
		t.Fatalf("switching column should reset to asc, got %+v", s)
	}
}

func TestResetOnChange(t *testing.T) {
	base := NewViewState().ApplyPage(4)

	if got := base.ApplySearch("raj").Page; got != 1 {
		t.Fatalf("search: page = %d, want 1", got)
	}
	if got := base.ApplyDataChange().Page; got != 1 {
		t.Fatalf("data change: page = %d, want 1", got)
	}
	if got := base.ApplyPageSize(25).Page; got != 1 {
		t.Fatalf("page size: page = %d, want 1", got)
	}
	if got := base.ApplySort("name").Page; got != 4 {
		t.Fatalf("sort must keep the page, got %d", got)
	}
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	s := NewViewState()
	_ = s.ApplySearch("x")
	_ = s.ApplySort("name")
	_ = s.ApplyPage(3)
	_ = s.ApplyPageSize(50)
	if s != NewViewState() {
		t.Fatalf("receiver changed: %+v", s)
	}
}

func TestApplyPageSize_SameSizeKeepsPage(t *testing.T) {
	s := NewViewState().ApplyPage(4)
	if got := s.ApplyPageSize(DefaultPageSize); got != s {
		t.Fatalf("same page size changed state: %+v", got)
	}
}

func TestApplyColumnFilter(t *testing.T) {
	s := NewViewState().ApplyPage(4).ApplyColumnFilter("branch", "Rampur")
	if s.FilterKey != "branch" || s.FilterValue != "Rampur" || s.Page != 1 {
		t.Fatalf("state = %+v", s)
	}
	s = s.ApplyColumnFilter("branch", "")
	if s.FilterKey != "" || s.FilterValue != "" {
		t.Fatalf("empty value should clear the filter: %+v", s)
	}
}

func TestApplyPageSize_IgnoresNonPositive(t *testing.T) {
	s := NewViewState().ApplyPage(2)
	got := s.ApplyPageSize(0)
	if got != s {
		t.Fatalf("ApplyPageSize(0) changed state: %+v", got)
	}
}
