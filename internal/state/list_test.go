package state

import (
	"testing"

	"github.com/agisilaos/skydesk/internal/model"
)

func sampleLocations() []model.Location {
	return []model.Location{
		{ID: 1, Code: "HAN", LocationName: "Hanoi", AirportName: "Noi Bai"},
		{ID: 2, Code: "SGN", LocationName: "Ho Chi Minh City", AirportName: "Tan Son Nhat"},
		{ID: 3, Code: "DAD", LocationName: "Da Nang", AirportName: "Da Nang International"},
	}
}

func TestSearchFiltersWithoutMutatingSource(t *testing.T) {
	c := NewLocations(10)
	c.Replace(sampleLocations())

	c.Search("ha")
	got := c.Filtered()
	if len(got) != 2 {
		t.Fatalf("expected Hanoi and Tan Son Nhat to match, got %d: %+v", len(got), got)
	}
	if c.Len() != 3 {
		t.Fatalf("source list mutated: %d items", c.Len())
	}

	c.Search("")
	if len(c.Filtered()) != 3 {
		t.Fatalf("clearing the term should restore the full view")
	}
}

func TestSearchResetsToFirstPage(t *testing.T) {
	c := NewLocations(1)
	c.Replace(sampleLocations())
	c.SetPage(3)
	if c.Page() != 3 {
		t.Fatalf("setup: page = %d", c.Page())
	}

	c.Search("da")
	if c.Page() != 1 {
		t.Fatalf("term change should reset to page 1, got %d", c.Page())
	}
}

func TestPaginationSlicesFilteredView(t *testing.T) {
	c := NewLocations(2)
	c.Replace(sampleLocations())

	if c.TotalPages() != 2 {
		t.Fatalf("total pages = %d", c.TotalPages())
	}
	if got := c.PageItems(); len(got) != 2 {
		t.Fatalf("page 1 size = %d", len(got))
	}
	c.SetPage(2)
	got := c.PageItems()
	if len(got) != 1 || got[0].Code != "DAD" {
		t.Fatalf("page 2 = %+v", got)
	}
}

func TestSetPageClampsToBounds(t *testing.T) {
	c := NewLocations(2)
	c.Replace(sampleLocations())

	c.SetPage(99)
	if c.Page() != 2 {
		t.Fatalf("page should clamp to last, got %d", c.Page())
	}
	c.SetPage(-5)
	if c.Page() != 1 {
		t.Fatalf("page should clamp to first, got %d", c.Page())
	}
}

func TestUpsertMatchesByIDNotPosition(t *testing.T) {
	c := NewLocations(10)
	c.Replace(sampleLocations())

	c.Upsert(model.Location{ID: 2, Code: "SGN", LocationName: "Saigon", AirportName: "Tan Son Nhat"})
	if c.Len() != 3 {
		t.Fatalf("upsert of known ID should replace, len = %d", c.Len())
	}
	got, ok := c.Get("2")
	if !ok || got.LocationName != "Saigon" {
		t.Fatalf("expected updated record, got %+v", got)
	}

	c.Upsert(model.Location{ID: 9, Code: "PQC", LocationName: "Phu Quoc"})
	if c.Len() != 4 {
		t.Fatalf("upsert of new ID should append, len = %d", c.Len())
	}
}

func TestRemoveShrinksAndClampsPage(t *testing.T) {
	c := NewLocations(2)
	c.Replace(sampleLocations())
	c.SetPage(2)

	if !c.Remove("3") {
		t.Fatalf("remove of known ID should succeed")
	}
	if c.Page() != 1 {
		t.Fatalf("page should clamp after the last page emptied, got %d", c.Page())
	}
	if c.Remove("3") {
		t.Fatalf("second remove of same ID should be a no-op")
	}
}
