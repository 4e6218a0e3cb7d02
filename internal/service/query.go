package service

import (
	"sort"

	"shoetracker/internal/analysis"
	"shoetracker/internal/store"
)

// ShoeDetail contains everything shown for a single shoe
type ShoeDetail struct {
	Shoe     store.Shoe
	Metrics  analysis.ShoeMetrics
	Insights analysis.Insights
	Workouts []store.Workout // most recent first
}

// List returns shoes in rotation or retired shoes with their metrics, sorted
// by the configured option and filtered by name when search is set
func (s *ShoeService) List(archived bool, search string) ([]analysis.ShoeSummary, error) {
	shoes, err := s.repo.ListShoes(archived)
	if err != nil {
		return nil, err
	}

	byShoe, err := s.repo.WorkoutsByShoe()
	if err != nil {
		return nil, err
	}

	now := s.now()
	summaries := make([]analysis.ShoeSummary, len(shoes))
	for i, shoe := range shoes {
		summaries[i] = analysis.ShoeSummary{
			Shoe:    shoe,
			Metrics: analysis.ComputeShoeMetrics(shoe, byShoe[shoe.ID], now),
		}
	}

	summaries = analysis.SearchByName(summaries, search)
	if archived {
		analysis.SortArchived(summaries, s.prefs.ArchiveSort)
	} else {
		analysis.SortShoes(summaries, s.prefs.Sort)
	}

	return summaries, nil
}

// Detail recomputes metrics and chart series for one shoe
func (s *ShoeService) Detail(id string) (*ShoeDetail, error) {
	shoe, err := s.repo.GetShoe(id)
	if err != nil {
		return nil, err
	}

	workouts, err := s.repo.ListWorkouts(id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	recent := make([]store.Workout, len(workouts))
	copy(recent, workouts)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})

	return &ShoeDetail{
		Shoe:     *shoe,
		Metrics:  analysis.ComputeShoeMetrics(*shoe, workouts, now),
		Insights: analysis.BuildInsights(*shoe, workouts, s.Calendar(), now),
		Workouts: recent,
	}, nil
}
