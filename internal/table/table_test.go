package table

import (
	"testing"
)

func TestTable_FilterResetsPage(t *testing.T) {
	tbl := New(listingColumns(), Options[listing]{})
	tbl.SetPage(2)
	tbl.SetFilter("ipo")

	s := tbl.State()
	if s.PageIndex != 0 || s.GlobalFilter != "ipo" {
		t.Errorf("state = %+v, want filter ipo on page 0", s)
	}
}

func TestTable_ToggleSort(t *testing.T) {
	tbl := New(listingColumns(), Options[listing]{})

	want := []Direction{DirAsc, DirDesc, DirNone, DirAsc}
	for i, dir := range want {
		tbl.ToggleSort("name")
		if got := tbl.State().SortDirection("name"); got != dir {
			t.Errorf("toggle %d: direction = %q, want %q", i+1, got, dir)
		}
	}

	tbl.ToggleSort("actions")
	if got := tbl.State().SortDirection("name"); got != DirAsc {
		t.Errorf("toggling an unsortable column changed sort to %q", got)
	}
}

func TestTable_Paging(t *testing.T) {
	tbl := New(listingColumns(), Options[listing]{})
	recs := manyListings(25)

	tbl.Render(recs)
	if !tbl.NextPage() || !tbl.NextPage() {
		t.Fatal("NextPage failed before the last page")
	}
	v := tbl.Render(recs)
	if v.Pagination.PageIndex != 2 {
		t.Fatalf("PageIndex = %d, want 2", v.Pagination.PageIndex)
	}
	if tbl.NextPage() {
		t.Error("NextPage succeeded on the last page")
	}

	if !tbl.PrevPage() {
		t.Error("PrevPage failed on page 2")
	}
	tbl.SetPage(0)
	if tbl.PrevPage() {
		t.Error("PrevPage succeeded on page 0")
	}
}

func TestTable_RenderWritesBackClamp(t *testing.T) {
	tbl := New(listingColumns(), Options[listing]{})
	tbl.SetPage(9)
	tbl.Render(manyListings(25))

	if got := tbl.State().PageIndex; got != 2 {
		t.Errorf("PageIndex after render = %d, want 2", got)
	}
}

func TestTable_SetPageSize(t *testing.T) {
	tbl := New(listingColumns(), Options[listing]{})
	tbl.SetPage(1)
	tbl.SetPageSize(20)

	v := tbl.Render(manyListings(25))
	if v.Pagination.PageSize != 20 || v.Pagination.PageIndex != 0 || len(v.Rows) != 20 {
		t.Errorf("pagination = %+v rows %d", v.Pagination, len(v.Rows))
	}

	tbl.SetPageSize(0)
	if tbl.State().PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want default", tbl.State().PageSize)
	}
}

func TestTable_ResetView(t *testing.T) {
	tbl := New(listingColumns(), Options[listing]{})
	tbl.SetFilter("tech")
	tbl.ToggleSort("price")
	tbl.SetPage(1)

	tbl.ResetView()
	s := tbl.State()
	if s.GlobalFilter != "" || len(s.Sort) != 0 || s.PageIndex != 0 || s.PageSize != DefaultPageSize {
		t.Errorf("state after reset = %+v", s)
	}
}

func TestTable_Bind(t *testing.T) {
	tbl := New(listingColumns(), Options[listing]{})
	tbl.SetFilter("tech")

	if tbl.Bind("remote:1") {
		t.Error("first Bind reported a reset")
	}
	if tbl.State().GlobalFilter != "tech" {
		t.Error("first Bind dropped the filter")
	}
	if tbl.Bind("remote:1") {
		t.Error("Bind to the same source reported a reset")
	}
	if !tbl.Bind("remote:2") {
		t.Error("Bind to a new source did not reset")
	}
	s := tbl.State()
	if s.GlobalFilter != "" || s.Source != "remote:2" {
		t.Errorf("state after rebind = %+v", s)
	}
}

func TestTable_Click(t *testing.T) {
	var clicked []string
	tbl := New(listingColumns(), Options[listing]{
		OnRowClick: func(l listing) { clicked = append(clicked, l.ID) },
	})

	if tbl.Click(0) {
		t.Error("Click before Render dispatched")
	}

	tbl.ToggleSort("price")
	tbl.Render(sampleListings())

	if !tbl.Click(0) || !tbl.Click(2) {
		t.Fatal("Click on a visible row did not dispatch")
	}
	if tbl.Click(3) || tbl.Click(-1) {
		t.Error("Click outside the visible rows dispatched")
	}
	if len(clicked) != 2 || clicked[0] != "2" || clicked[1] != "3" {
		t.Errorf("clicked = %v, want [2 3]", clicked)
	}
}

func TestTable_ClickWithoutHandler(t *testing.T) {
	tbl := New(listingColumns(), Options[listing]{})
	tbl.Render(sampleListings())
	if tbl.Click(0) {
		t.Error("Click without OnRowClick reported dispatch")
	}
}
