package analysis

import (
	"sort"
	"strings"

	"shoetracker/internal/config"
	"shoetracker/internal/store"
)

// ShoeSummary pairs a shoe with its derived metrics for listing
type ShoeSummary struct {
	Shoe    store.Shoe
	Metrics ShoeMetrics
}

// SortShoes orders shoes in rotation. Shoes without a projection or without
// workouts sort last under the options that depend on them.
func SortShoes(shoes []ShoeSummary, option config.ShoesSortOption) {
	switch option {
	case config.SortName:
		sortByName(shoes)
	case config.SortTotalDistance:
		sortByTotalDistance(shoes)
	case config.SortAge:
		sortByPurchased(shoes)
	case config.SortRecentlyUsed:
		sort.SliceStable(shoes, func(i, j int) bool {
			a, b := shoes[i].Metrics.LastWorkoutDate, shoes[j].Metrics.LastWorkoutDate
			if a == nil || b == nil {
				return a != nil
			}
			return a.After(*b)
		})
	default:
		sort.SliceStable(shoes, func(i, j int) bool {
			a, b := shoes[i].Metrics.DaysRemaining, shoes[j].Metrics.DaysRemaining
			if a == nil || b == nil {
				return a != nil
			}
			return *a < *b
		})
	}
}

// SortArchived orders retired shoes
func SortArchived(shoes []ShoeSummary, option config.ArchiveSortOption) {
	switch option {
	case config.ArchiveSortName:
		sortByName(shoes)
	case config.ArchiveSortTotalDistance:
		sortByTotalDistance(shoes)
	default:
		sortByPurchased(shoes)
	}
}

// SearchByName keeps shoes whose name contains query, ignoring case.
// An empty query keeps everything.
func SearchByName(shoes []ShoeSummary, query string) []ShoeSummary {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return shoes
	}

	var matches []ShoeSummary
	for _, s := range shoes {
		if strings.Contains(strings.ToLower(s.Shoe.Name), query) {
			matches = append(matches, s)
		}
	}
	return matches
}

func sortByName(shoes []ShoeSummary) {
	sort.SliceStable(shoes, func(i, j int) bool {
		return strings.ToLower(shoes[i].Shoe.Name) < strings.ToLower(shoes[j].Shoe.Name)
	})
}

func sortByTotalDistance(shoes []ShoeSummary) {
	sort.SliceStable(shoes, func(i, j int) bool {
		return shoes[i].Metrics.TotalKilometers > shoes[j].Metrics.TotalKilometers
	})
}

// Oldest purchase first
func sortByPurchased(shoes []ShoeSummary) {
	sort.SliceStable(shoes, func(i, j int) bool {
		return shoes[i].Shoe.Purchased.Before(shoes[j].Shoe.Purchased)
	})
}
