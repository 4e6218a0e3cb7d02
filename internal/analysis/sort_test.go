package analysis

import (
	"testing"
	"time"

	"shoetracker/internal/config"
	"shoetracker/internal/store"
)

func summary(name string, purchased time.Time, total float64, daysRemaining *int, last *time.Time) ShoeSummary {
	return ShoeSummary{
		Shoe: store.Shoe{ID: name, Name: name, Purchased: purchased},
		Metrics: ShoeMetrics{
			TotalKilometers: total,
			DaysRemaining:   daysRemaining,
			LastWorkoutDate: last,
		},
	}
}

func intPtr(v int) *int {
	return &v
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func names(shoes []ShoeSummary) []string {
	out := make([]string, len(shoes))
	for i, s := range shoes {
		out[i] = s.Shoe.Name
	}
	return out
}

func equalNames(got []ShoeSummary, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i, s := range got {
		if s.Shoe.Name != want[i] {
			return false
		}
	}
	return true
}

func testShoes() []ShoeSummary {
	return []ShoeSummary{
		summary("pegasus", date(2024, 3, 1), 320, intPtr(40), timePtr(date(2024, 6, 1))),
		summary("Clifton", date(2023, 9, 1), 610, nil, nil),
		summary("endorphin", date(2024, 1, 15), 120, intPtr(12), timePtr(date(2024, 6, 20))),
		summary("Adios", date(2024, 5, 1), 80, nil, timePtr(date(2024, 5, 2))),
	}
}

func TestSortShoes(t *testing.T) {
	tests := []struct {
		option config.ShoesSortOption
		want   []string
	}{
		{config.SortDaysRemaining, []string{"endorphin", "pegasus", "Clifton", "Adios"}},
		{config.SortRecentlyUsed, []string{"endorphin", "pegasus", "Adios", "Clifton"}},
		{config.SortName, []string{"Adios", "Clifton", "endorphin", "pegasus"}},
		{config.SortTotalDistance, []string{"Clifton", "pegasus", "endorphin", "Adios"}},
		{config.SortAge, []string{"Clifton", "endorphin", "pegasus", "Adios"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.option), func(t *testing.T) {
			shoes := testShoes()
			SortShoes(shoes, tt.option)
			if !equalNames(shoes, tt.want...) {
				t.Errorf("SortShoes(%s) = %v, want %v", tt.option, names(shoes), tt.want)
			}
		})
	}
}

func TestSortArchived(t *testing.T) {
	tests := []struct {
		option config.ArchiveSortOption
		want   []string
	}{
		{config.ArchiveSortAge, []string{"Clifton", "endorphin", "pegasus", "Adios"}},
		{config.ArchiveSortName, []string{"Adios", "Clifton", "endorphin", "pegasus"}},
		{config.ArchiveSortTotalDistance, []string{"Clifton", "pegasus", "endorphin", "Adios"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.option), func(t *testing.T) {
			shoes := testShoes()
			SortArchived(shoes, tt.option)
			if !equalNames(shoes, tt.want...) {
				t.Errorf("SortArchived(%s) = %v, want %v", tt.option, names(shoes), tt.want)
			}
		})
	}
}

func TestSearchByName(t *testing.T) {
	shoes := testShoes()

	if got := SearchByName(shoes, "  "); len(got) != len(shoes) {
		t.Errorf("blank query kept %d shoes, want %d", len(got), len(shoes))
	}
	if got := SearchByName(shoes, "CLIF"); !equalNames(got, "Clifton") {
		t.Errorf("SearchByName(CLIF) = %v, want [Clifton]", names(got))
	}
	if got := SearchByName(shoes, "s"); !equalNames(got, "pegasus", "Adios") {
		t.Errorf("SearchByName(s) = %v, want [pegasus Adios]", names(got))
	}
	if got := SearchByName(shoes, "vaporfly"); len(got) != 0 {
		t.Errorf("SearchByName(vaporfly) = %v, want none", names(got))
	}
}
